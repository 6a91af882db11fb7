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

type CreateBookingInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string

	// Authenticated account, nil for guests.
	UserID *uint

	// Optional single service, zero for none.
	ServiceID uint

	BookingDate string // YYYY-MM-DD

	EarliestHour string
	EarliestMin  string
	LatestHour   string
	LatestMin    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

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

	// Creation does not check window ordering, only the edit path does.

	b, err := uc.repo.CreateBooking(ctx, domain.CreateInput{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		UserID:      in.UserID,
		ServiceID:   in.ServiceID,
		BookingDate: date,
		Earliest:    earliest,
		Latest:      latest,
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("booking_exists")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
