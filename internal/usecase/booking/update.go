package booking

import (
	"context"
	"time"

	"github.com/fspruce/helpful-living/internal/audit"
	domain "github.com/fspruce/helpful-living/internal/domain/booking"
	"github.com/fspruce/helpful-living/internal/httperr"
	"github.com/fspruce/helpful-living/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type UpdateBookingInput struct {
	// Authenticated users always update the booking resolved from
	// their own account. Guests must carry the token in the payload.
	UserID      *uint
	AccessToken string

	BookingDate string // YYYY-MM-DD

	EarliestHour string
	EarliestMin  string
	LatestHour   string
	LatestMin    string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateBooking {
	return &UpdateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	b, err := resolveBooking(ctx, uc.repo, in.UserID, in.AccessToken)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", in.BookingDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	earliest, err := domain.ComposeHHMM(in.EarliestHour, in.EarliestMin)
	if err != nil {
		return nil, err
	}

	latest, err := domain.ComposeHHMM(in.LatestHour, in.LatestMin)
	if err != nil {
		return nil, err
	}

	// Unlike creation, edits enforce a strictly ordered window.
	if !domain.WindowOrdered(earliest, latest) {
		return nil, httperr.ErrBusiness("latest_not_after_earliest")
	}

	// Date and window only. Token and client linkage never change here.
	if err := uc.repo.UpdateBookingWindow(
		ctx,
		b.ID,
		date,
		earliest,
		latest,
	); err != nil {
		return nil, err
	}

	b.BookingDate = date
	b.Earliest = earliest
	b.Latest = latest

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
