package handlers_test

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ======================================================
// CREATE
// ======================================================

func TestBookingCreateAsGuest(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm(t, "/api/bookings/book-service", bookingForm(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)

	token, _ := body["access_token"].(string)
	assert.Len(t, token, 48)

	booking, _ := body["booking"].(map[string]any)
	require.NotNil(t, booking)
	assert.Equal(t, "Jamie", booking["first_name"])
	assert.Equal(t, "jamie@example.com", booking["email"])
	assert.Equal(t, "2026-09-15", booking["booking_date"])
	assert.Equal(t, "09:00", booking["earliest"])
	assert.Equal(t, "17:30", booking["latest"])
	assert.Equal(t, false, booking["confirmed"])
}

func TestBookingCreateWithService(t *testing.T) {
	app := newTestApp(t)
	service := app.seedService(t, "Garden Maintenance", "garden-maintenance", true)

	form := bookingForm()
	form.Set("services", strconv.Itoa(int(service.ID)))

	w := app.postForm(t, "/api/bookings/book-service", form, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	booking := decode(t, w)["booking"].(map[string]any)
	services, _ := booking["services"].([]any)
	require.Len(t, services, 1)
	assert.Equal(t, "Garden Maintenance", services[0])
}

func TestBookingCreateRejectsSecondBooking(t *testing.T) {
	app := newTestApp(t)
	app.createGuestBooking(t)

	w := app.postForm(t, "/api/bookings/book-service", bookingForm(), "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "booking_failed", decode(t, w)["error"])
}

func TestBookingCreateValidation(t *testing.T) {
	app := newTestApp(t)

	t.Run("missing fields", func(t *testing.T) {
		form := bookingForm()
		form.Del("email_address")

		w := app.postForm(t, "/api/bookings/book-service", form, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		form := bookingForm()
		form.Set("booking_date", "next tuesday")

		w := app.postForm(t, "/api/bookings/book-service", form, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_date", decode(t, w)["error"])
	})

	t.Run("bad time", func(t *testing.T) {
		form := bookingForm()
		form.Set("latest_availability_hour", "25")

		w := app.postForm(t, "/api/bookings/book-service", form, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_time", decode(t, w)["error"])
	})
}

// ======================================================
// ENTRY
// ======================================================

func TestBookingEntryShowsFormToGuests(t *testing.T) {
	app := newTestApp(t)
	app.seedService(t, "Garden Maintenance", "garden-maintenance", true)
	app.seedService(t, "Hidden", "hidden", false)

	w := app.getJSON(t, "/api/bookings", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["has_booking"])

	services, _ := body["services"].([]any)
	require.Len(t, services, 1)
}

func TestBookingEntryRedirectsAccountWithBooking(t *testing.T) {
	app := newTestApp(t)
	user := app.createUser(t, "jamie@example.com", false)
	bearer := app.bearerFor(t, user)

	w := app.postForm(t, "/api/bookings/book-service", bookingForm(), bearer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.getJSON(t, "/api/bookings", bearer)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["has_booking"])
	assert.Equal(t, "/api/bookings/info", body["redirect"])
}

func TestBookingEntryPrefillsAccountDetails(t *testing.T) {
	app := newTestApp(t)
	user := app.createUser(t, "jamie@example.com", false)

	w := app.getJSON(t, "/api/bookings", app.bearerFor(t, user))
	require.Equal(t, http.StatusOK, w.Code)

	userData, _ := decode(t, w)["user_data"].(map[string]any)
	require.NotNil(t, userData)
	assert.Equal(t, "jamie@example.com", userData["email"])
}

func TestBookingEntryWithServiceSlug(t *testing.T) {
	app := newTestApp(t)
	app.seedService(t, "Garden Maintenance", "garden-maintenance", true)

	w := app.getJSON(t, "/api/bookings/garden-maintenance", "")
	require.Equal(t, http.StatusOK, w.Code)

	selected, _ := decode(t, w)["selected_service"].(map[string]any)
	require.NotNil(t, selected)
	assert.Equal(t, "Garden Maintenance", selected["name"])
}

func TestBookingEntryWithUnknownSlug(t *testing.T) {
	app := newTestApp(t)

	w := app.getJSON(t, "/api/bookings/no-such-service", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ======================================================
// INFO
// ======================================================

func TestBookingInfoByAccessKey(t *testing.T) {
	app := newTestApp(t)
	token := app.createGuestBooking(t)

	w := app.getJSON(t, "/api/bookings/info?access_key="+token, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["has_booking"])

	booking := body["booking"].(map[string]any)
	assert.Equal(t, "jamie@example.com", booking["email"])
}

func TestBookingInfoPromptsGuestForKey(t *testing.T) {
	app := newTestApp(t)
	app.createGuestBooking(t)

	w := app.getJSON(t, "/api/bookings/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["access_key_required"])
}

func TestBookingInfoRejectsBadKey(t *testing.T) {
	app := newTestApp(t)
	app.createGuestBooking(t)

	w := app.getJSON(t, "/api/bookings/info?access_key=wrong", "")
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "invalid_access_key", decode(t, w)["error"])
}

func TestBookingInfoRoutesAccountWithoutBooking(t *testing.T) {
	app := newTestApp(t)
	user := app.createUser(t, "sam@example.com", false)

	w := app.getJSON(t, "/api/bookings/info", app.bearerFor(t, user))
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["has_booking"])
	assert.Equal(t, "/api/bookings", body["redirect"])
}

func TestBookingInfoBySession(t *testing.T) {
	app := newTestApp(t)
	user := app.createUser(t, "jamie@example.com", false)
	bearer := app.bearerFor(t, user)

	w := app.postForm(t, "/api/bookings/book-service", bookingForm(), bearer)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.getJSON(t, "/api/bookings/info", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["has_booking"])
}

// ======================================================
// UPDATE
// ======================================================

func updateForm(token string) url.Values {
	return url.Values{
		"access_token":               {token},
		"booking_date":               {"2026-09-20"},
		"earliest_availability_hour": {"10"},
		"earliest_availability_min":  {"0"},
		"latest_availability_hour":   {"16"},
		"latest_availability_min":    {"0"},
	}
}

func TestBookingUpdateRoundTrip(t *testing.T) {
	app := newTestApp(t)
	token := app.createGuestBooking(t)

	w := app.postForm(t, "/api/bookings/edit", updateForm(token), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	redirect, _ := body["redirect"].(string)
	require.True(t, strings.HasPrefix(redirect, "/api/bookings/info?ticket="))

	// Following the redirect consumes the ticket: the flash and the
	// updated booking come back without prompting for the key again.
	w = app.getJSON(t, redirect, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body = decode(t, w)
	assert.Equal(t, true, body["has_booking"])

	f, _ := body["flash"].(map[string]any)
	require.NotNil(t, f)
	assert.Equal(t, "success", f["status"])

	booking := body["booking"].(map[string]any)
	assert.Equal(t, "2026-09-20", booking["booking_date"])
	assert.Equal(t, "10:00", booking["earliest"])
	assert.Equal(t, "16:00", booking["latest"])

	// The ticket is one-shot. A replay without the key gets the prompt.
	w = app.getJSON(t, redirect, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["access_key_required"])
}

func TestBookingUpdateUnorderedWindowFlashesError(t *testing.T) {
	app := newTestApp(t)
	token := app.createGuestBooking(t)

	form := updateForm(token)
	form.Set("earliest_availability_hour", "14")
	form.Set("earliest_availability_min", "30")
	form.Set("latest_availability_hour", "13")
	form.Set("latest_availability_min", "0")

	w := app.postForm(t, "/api/bookings/edit", form, "")
	require.Equal(t, http.StatusOK, w.Code)

	redirect := decode(t, w)["redirect"].(string)

	w = app.getJSON(t, redirect, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	f, _ := body["flash"].(map[string]any)
	require.NotNil(t, f)
	assert.Equal(t, "error", f["status"])
	assert.Equal(t, "Latest time must be after earliest time.", f["message"])

	// The booking still renders, unchanged.
	booking := body["booking"].(map[string]any)
	assert.Equal(t, "09:00", booking["earliest"])
	assert.Equal(t, "17:30", booking["latest"])
}

func TestBookingUpdateRequiresToken(t *testing.T) {
	app := newTestApp(t)
	app.createGuestBooking(t)

	w := app.postForm(t, "/api/bookings/edit", updateForm(""), "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "access_token_required", decode(t, w)["error"])
}

func TestBookingUpdateRejectsBadToken(t *testing.T) {
	app := newTestApp(t)
	app.createGuestBooking(t)

	w := app.postForm(t, "/api/bookings/edit", updateForm("wrong"), "")
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "invalid_access_key", decode(t, w)["error"])
}

// ======================================================
// CANCEL
// ======================================================

func TestBookingCancelNotImplemented(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm(t, "/api/bookings/cancel", url.Values{}, "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}
