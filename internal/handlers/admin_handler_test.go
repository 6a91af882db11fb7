package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fspruce/helpful-living/internal/models"
)

// ======================================================
// ACCESS CONTROL
// ======================================================

func TestAdminRequiresStaff(t *testing.T) {
	app := newTestApp(t)

	t.Run("anonymous", func(t *testing.T) {
		w := app.getJSON(t, "/api/admin/services", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("authenticated non-staff", func(t *testing.T) {
		user := app.createUser(t, "user@example.com", false)

		w := app.getJSON(t, "/api/admin/services", app.bearerFor(t, user))
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "staff_only", decode(t, w)["error"])
	})

	t.Run("staff", func(t *testing.T) {
		staff := app.createUser(t, "staff@example.com", true)

		w := app.getJSON(t, "/api/admin/services", app.bearerFor(t, staff))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

// ======================================================
// SERVICES
// ======================================================

func TestAdminServiceCRUD(t *testing.T) {
	app := newTestApp(t)
	staff := app.createUser(t, "staff@example.com", true)
	bearer := app.bearerFor(t, staff)

	// Create, slug derived from the name.
	w := app.doJSON(t, http.MethodPost, "/api/admin/services", map[string]any{
		"name":        "Garden Maintenance",
		"description": "Lawns, hedges and borders.",
		"available":   true,
	}, bearer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode(t, w)
	assert.Equal(t, "garden-maintenance", created["slug"])
	id := created["id"].(float64)

	// Patch a single field, the rest stays.
	w = app.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/admin/services/%.0f", id),
		map[string]any{"excerpt": "Seasonal garden care."}, bearer)
	require.Equal(t, http.StatusOK, w.Code)

	updated := decode(t, w)
	assert.Equal(t, "Garden Maintenance", updated["name"])
	assert.Equal(t, "Seasonal garden care.", updated["excerpt"])
	assert.Equal(t, true, updated["available"])

	// List with the availability filter.
	w = app.getJSON(t, "/api/admin/services?available=true", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])

	// Delete.
	w = app.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/admin/services/%.0f", id), nil, bearer)
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	app.db.Model(&models.Service{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestAdminServiceDuplicateSlug(t *testing.T) {
	app := newTestApp(t)
	app.seedService(t, "Garden Maintenance", "garden-maintenance", true)
	staff := app.createUser(t, "staff@example.com", true)

	w := app.doJSON(t, http.MethodPost, "/api/admin/services", map[string]any{
		"name": "Garden Maintenance",
	}, app.bearerFor(t, staff))
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "service_exists", decode(t, w)["error"])
}

// ======================================================
// CLIENTS
// ======================================================

func TestAdminClientListAndUpdate(t *testing.T) {
	app := newTestApp(t)
	staff := app.createUser(t, "staff@example.com", true)
	bearer := app.bearerFor(t, staff)

	service := app.seedService(t, "Garden Maintenance", "garden-maintenance", true)

	client := models.Client{
		FirstName: "Jamie",
		LastName:  "Fletcher",
		Email:     "jamie@example.com",
	}
	require.NoError(t, app.db.Create(&client).Error)

	// Leads first, filtered search.
	w := app.getJSON(t, "/api/admin/clients?query=fletch&is_client=false", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])

	// Promote the lead and record which services they take.
	w = app.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/admin/clients/%d", client.ID),
		map[string]any{
			"is_client":   true,
			"service_ids": []uint{service.ID},
		}, bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Client
	require.NoError(t, app.db.Preload("Services").First(&stored, client.ID).Error)
	assert.True(t, stored.IsClient)
	require.Len(t, stored.Services, 1)
	assert.Equal(t, "Garden Maintenance", stored.Services[0].Name)
}

// ======================================================
// BOOKINGS
// ======================================================

func TestAdminConfirmBooking(t *testing.T) {
	app := newTestApp(t)
	app.createGuestBooking(t)

	staff := app.createUser(t, "staff@example.com", true)
	bearer := app.bearerFor(t, staff)

	w := app.getJSON(t, "/api/admin/bookings?confirmed=false", bearer)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.EqualValues(t, 1, body["total"])
	id := body["data"].([]any)[0].(map[string]any)["id"].(float64)

	w = app.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/admin/bookings/%.0f/confirm", id), nil, bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["confirmed"])

	// Confirming twice is an error.
	w = app.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/admin/bookings/%.0f/confirm", id), nil, bearer)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "already_confirmed", decode(t, w)["error"])
}

func TestAdminConfirmUnknownBooking(t *testing.T) {
	app := newTestApp(t)
	staff := app.createUser(t, "staff@example.com", true)

	w := app.doJSON(t, http.MethodPatch, "/api/admin/bookings/999/confirm", nil, app.bearerFor(t, staff))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
