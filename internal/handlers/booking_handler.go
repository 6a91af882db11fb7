package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fspruce/helpful-living/internal/dto"
	"github.com/fspruce/helpful-living/internal/flash"
	"github.com/fspruce/helpful-living/internal/httperr"
	"github.com/fspruce/helpful-living/internal/httpresp"
	"github.com/fspruce/helpful-living/internal/logging"
	"github.com/fspruce/helpful-living/internal/middleware"
	"github.com/fspruce/helpful-living/internal/models"
	ucBooking "github.com/fspruce/helpful-living/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type BookingHandler struct {
	db      *gorm.DB
	flashes flash.Store

	createUC *ucBooking.CreateBooking
	infoUC   *ucBooking.GetBookingInfo
	updateUC *ucBooking.UpdateBooking
}

func NewBookingHandler(
	db *gorm.DB,
	flashes flash.Store,
	createUC *ucBooking.CreateBooking,
	infoUC *ucBooking.GetBookingInfo,
	updateUC *ucBooking.UpdateBooking,
) *BookingHandler {
	return &BookingHandler{
		db:       db,
		flashes:  flashes,
		createUC: createUC,
		infoUC:   infoUC,
		updateUC: updateUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateBookingRequest struct {
	FirstName    string `form:"first_name" json:"first_name" binding:"required"`
	LastName     string `form:"last_name" json:"last_name" binding:"required"`
	EmailAddress string `form:"email_address" json:"email_address" binding:"required,email"`
	PhoneNumber  string `form:"phone_number" json:"phone_number" binding:"required"`

	// Optional single service id; an id that resolves to nothing is
	// skipped silently.
	ServiceID uint `form:"services" json:"services"`

	BookingDate string `form:"booking_date" json:"booking_date" binding:"required"`

	EarliestHour string `form:"earliest_availability_hour" json:"earliest_availability_hour" binding:"required"`
	EarliestMin  string `form:"earliest_availability_min" json:"earliest_availability_min" binding:"required"`
	LatestHour   string `form:"latest_availability_hour" json:"latest_availability_hour" binding:"required"`
	LatestMin    string `form:"latest_availability_min" json:"latest_availability_min" binding:"required"`
}

type BookingInfoRequest struct {
	AccessKey string `form:"access_key" json:"access_key"`
}

type UpdateBookingRequest struct {
	// Guests must carry the token in the payload, a stored session
	// value is not enough.
	AccessToken string `form:"access_token" json:"access_token"`

	BookingDate string `form:"booking_date" json:"booking_date" binding:"required"`

	EarliestHour string `form:"earliest_availability_hour" json:"earliest_availability_hour" binding:"required"`
	EarliestMin  string `form:"earliest_availability_min" json:"earliest_availability_min" binding:"required"`
	LatestHour   string `form:"latest_availability_hour" json:"latest_availability_hour" binding:"required"`
	LatestMin    string `form:"latest_availability_min" json:"latest_availability_min" binding:"required"`
}

////////////////////////////////////////////////////////
// ENTRY (booking form bootstrap)
////////////////////////////////////////////////////////

// Entry serves the booking entry point. Authenticated users who already
// hold a booking are pointed at the info page instead of the form.
func (h *BookingHandler) Entry(c *gin.Context) {
	userID := middleware.SessionUserID(c)

	if userID != nil {
		if _, err := h.infoUC.Execute(
			c.Request.Context(),
			ucBooking.InfoInput{UserID: userID},
		); err == nil {
			httpresp.OK(c, gin.H{
				"has_booking": true,
				"redirect":    "/api/bookings/info",
			})
			return
		}
	}

	h.renderForm(c, nil, userID)
}

// EntryWithService pre-seeds the booking form with one service.
func (h *BookingHandler) EntryWithService(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	var service models.Service
	if err := h.db.
		Where("slug = ? AND available = ?", slug, true).
		First(&service).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	h.renderForm(c, &service, middleware.SessionUserID(c))
}

func (h *BookingHandler) renderForm(
	c *gin.Context,
	seed *models.Service,
	userID *uint,
) {
	var services []models.Service
	h.db.
		Where("available = ?", true).
		Order("name ASC").
		Find(&services)

	payload := gin.H{
		"has_booking": false,
		"services":    services,
	}
	if seed != nil {
		payload["selected_service"] = seed
	}

	// Pre-fill the form from the account, the way the old site did.
	if userID != nil {
		var user models.User
		if err := h.db.First(&user, *userID).Error; err == nil {
			payload["user_data"] = gin.H{
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"email":      user.Email,
			}
		}
	}

	httpresp.OK(c, payload)
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill in all required fields.")
		return
	}

	b, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.EmailAddress,
			PhoneNumber:  req.PhoneNumber,
			UserID:       middleware.SessionUserID(c),
			ServiceID:    req.ServiceID,
			BookingDate:  req.BookingDate,
			EarliestHour: req.EarliestHour,
			EarliestMin:  req.EarliestMin,
			LatestHour:   req.LatestHour,
			LatestMin:    req.LatestMin,
		},
	)

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Booking date must be a valid calendar date.")
		case httperr.IsBusiness(err, "invalid_time"):
			httperr.BadRequest(c, "invalid_time", "Availability times must be valid hour and minute values.")
		case httperr.IsBusiness(err, "booking_exists"):
			httperr.Conflict(c, "booking_failed", "We could not create your booking. You may already have an active booking with us.")
		default:
			logging.L().Error("booking create failed", zap.Error(err))
			httperr.Internal(c, "booking_failed", "We could not create your booking. Please try again later.")
		}
		return
	}

	// The token is the guest's only way back in, so it is returned once
	// here with the confirmation.
	c.JSON(http.StatusCreated, gin.H{
		"booking":      dto.NewBookingInfoDTO(b),
		"access_token": b.AccessToken,
	})
}

////////////////////////////////////////////////////////
// INFO (read)
////////////////////////////////////////////////////////

func (h *BookingHandler) Info(c *gin.Context) {
	var req BookingInfoRequest
	if c.Request.Method == http.MethodPost {
		if err := c.ShouldBind(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid request.")
			return
		}
	} else {
		req.AccessKey = c.Query("access_key")
	}

	userID := middleware.SessionUserID(c)

	// A just-consumed ticket carries the outcome of an edit, and for
	// guests the token needed to re-render the booking once without
	// prompting again. A carried token outranks the session, exactly
	// once.
	var carried *flash.Flash
	if ticket := c.Query("ticket"); ticket != "" {
		if f, err := h.flashes.Take(c.Request.Context(), ticket); err == nil {
			carried = f
		}
	}

	in := ucBooking.InfoInput{UserID: userID, AccessToken: req.AccessKey}
	if carried != nil && carried.AccessToken != "" {
		in = ucBooking.InfoInput{AccessToken: carried.AccessToken}
	}

	b, err := h.infoUC.Execute(c.Request.Context(), in)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "no_booking"):
			// Not an error: route the account to booking creation.
			httpresp.OK(c, gin.H{
				"has_booking": false,
				"redirect":    "/api/bookings",
			})
		case httperr.IsBusiness(err, "access_key_required"):
			httpresp.OK(c, gin.H{
				"access_key_required": true,
			})
		case httperr.IsBusiness(err, "invalid_access_key"):
			httperr.Forbidden(c, "invalid_access_key", "Invalid access key. Please check the key from your booking confirmation and try again.")
		default:
			logging.L().Error("booking info failed", zap.Error(err))
			httperr.Internal(c, "booking_info_failed", "Could not load your booking.")
		}
		return
	}

	payload := gin.H{
		"has_booking": true,
		"booking":     dto.NewBookingInfoDTO(b),
	}
	if carried != nil {
		payload["flash"] = gin.H{
			"status":  carried.Status,
			"message": carried.Message,
		}
	}

	httpresp.OK(c, payload)
}

////////////////////////////////////////////////////////
// UPDATE (edit)
////////////////////////////////////////////////////////

func (h *BookingHandler) Update(c *gin.Context) {
	var req UpdateBookingRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill in all required fields.")
		return
	}

	userID := middleware.SessionUserID(c)

	_, err := h.updateUC.Execute(
		c.Request.Context(),
		ucBooking.UpdateBookingInput{
			UserID:       userID,
			AccessToken:  req.AccessToken,
			BookingDate:  req.BookingDate,
			EarliestHour: req.EarliestHour,
			EarliestMin:  req.EarliestMin,
			LatestHour:   req.LatestHour,
			LatestMin:    req.LatestMin,
		},
	)

	switch {
	case err == nil:
		h.redirectWithFlash(c, flash.Flash{
			Status:      flash.StatusSuccess,
			Message:     "Your booking has been updated.",
			AccessToken: guestToken(userID, req.AccessToken),
		})

	case httperr.IsBusiness(err, "no_booking"):
		httpresp.OK(c, gin.H{
			"has_booking": false,
			"redirect":    "/api/bookings",
		})

	case httperr.IsBusiness(err, "access_key_required"):
		httperr.BadRequest(c, "access_token_required", "An access token is required to edit this booking.")

	case httperr.IsBusiness(err, "invalid_access_key"):
		httperr.Forbidden(c, "invalid_access_key", "Invalid access key. Please check the key from your booking confirmation and try again.")

	case httperr.IsBusiness(err, "invalid_date"):
		h.redirectWithFlash(c, flash.Flash{
			Status:      flash.StatusError,
			Message:     "Booking date must be a valid calendar date.",
			AccessToken: guestToken(userID, req.AccessToken),
		})

	case httperr.IsBusiness(err, "invalid_time"):
		h.redirectWithFlash(c, flash.Flash{
			Status:      flash.StatusError,
			Message:     "Availability times must be valid hour and minute values.",
			AccessToken: guestToken(userID, req.AccessToken),
		})

	case httperr.IsBusiness(err, "latest_not_after_earliest"):
		h.redirectWithFlash(c, flash.Flash{
			Status:      flash.StatusError,
			Message:     "Latest time must be after earliest time.",
			AccessToken: guestToken(userID, req.AccessToken),
		})

	default:
		logging.L().Error("booking update failed", zap.Error(err))
		httperr.Internal(c, "booking_update_failed", "We could not update your booking. Please try again later.")
	}
}

// redirectWithFlash parks the edit outcome in a one-shot ticket and sends
// the caller back to the info page, which consumes it. Guests get their
// token carried along so they are not prompted for it again.
func (h *BookingHandler) redirectWithFlash(c *gin.Context, f flash.Flash) {
	ticket, err := h.flashes.Put(c.Request.Context(), f)
	if err != nil {
		logging.L().Error("flash store failed", zap.Error(err))
		// Degrade to an inline response rather than losing the outcome.
		httpresp.OK(c, gin.H{
			"status":  f.Status,
			"message": f.Message,
		})
		return
	}

	httpresp.OK(c, gin.H{
		"ticket":   ticket,
		"redirect": "/api/bookings/info?ticket=" + ticket,
	})
}

func guestToken(userID *uint, token string) string {
	if userID != nil {
		return ""
	}
	return strings.TrimSpace(token)
}

////////////////////////////////////////////////////////
// CANCEL (stub)
////////////////////////////////////////////////////////

// Cancel is a deliberately unimplemented extension point. The route
// exists so clients have a stable place to call once cancellation gets
// real semantics.
func (h *BookingHandler) Cancel(c *gin.Context) {
	httperr.NotImplemented(c, "not_implemented", "Booking cancellation is not available yet. Please contact us to cancel your booking.")
}
