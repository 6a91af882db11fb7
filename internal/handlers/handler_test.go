package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fspruce/helpful-living/internal/config"
	dbpkg "github.com/fspruce/helpful-living/internal/db"
	"github.com/fspruce/helpful-living/internal/flash"
	"github.com/fspruce/helpful-living/internal/models"
	"github.com/fspruce/helpful-living/internal/routes"
)

// ======================================================
// APP FIXTURE
// ======================================================

type testApp struct {
	router  *gin.Engine
	db      *gorm.DB
	cfg     *config.Config
	flashes flash.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh connection would be a fresh empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		BusinessName:  "Helpful Living",
		BusinessEmail: "hello@helpfulliving.example",
		BusinessPhone: "0117 496 0123",
		MediaMaxWidth: 1200,
	}

	flashes := flash.NewMemoryStore()

	r := gin.New()
	routes.RegisterRoutes(r, db, cfg, flashes, nil)

	return &testApp{router: r, db: db, cfg: cfg, flashes: flashes}
}

// ======================================================
// REQUEST HELPERS
// ======================================================

// getJSON / postJSON / postForm run one request through the full router,
// middleware included.

func (a *testApp) getJSON(t *testing.T, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) doJSON(t *testing.T, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ======================================================
// DATA HELPERS
// ======================================================

func (a *testApp) createUser(t *testing.T, email string, staff bool) *models.User {
	t.Helper()

	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "x",
		IsStaff:      staff,
	}
	require.NoError(t, a.db.Create(&user).Error)
	return &user
}

func (a *testApp) bearerFor(t *testing.T, user *models.User) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"staff": user.IsStaff,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(a.cfg.JWTSecret))
	require.NoError(t, err)
	return signed
}

func (a *testApp) seedService(t *testing.T, name, slug string, available bool) *models.Service {
	t.Helper()

	service := models.Service{
		Name:      name,
		Slug:      slug,
		Available: available,
	}
	require.NoError(t, a.db.Create(&service).Error)
	return &service
}

func bookingForm() url.Values {
	return url.Values{
		"first_name":                 {"Jamie"},
		"last_name":                  {"Fletcher"},
		"email_address":              {"jamie@example.com"},
		"phone_number":               {"07700900123"},
		"booking_date":               {"2026-09-15"},
		"earliest_availability_hour": {"9"},
		"earliest_availability_min":  {"0"},
		"latest_availability_hour":   {"17"},
		"latest_availability_min":    {"30"},
	}
}

// createGuestBooking posts the booking form and returns the access token.
func (a *testApp) createGuestBooking(t *testing.T) string {
	t.Helper()

	w := a.postForm(t, "/api/bookings/book-service", bookingForm(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	token, _ := decode(t, w)["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}
