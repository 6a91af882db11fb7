package booking

import (
	"context"
	"time"

	"github.com/fspruce/helpful-living/internal/models"
)

// CreateInput carries everything the transactional create needs: the
// client fields for the upsert-by-email, the optional service to attach
// and the booking fields proper.
type CreateInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string

	// Authenticated account to link the client to, nil for guests.
	UserID *uint

	// Zero means no service was chosen.
	ServiceID uint

	BookingDate time.Time
	Earliest    string
	Latest      string
}

type Repository interface {
	// -------- Catalog --------
	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Client --------
	FindClientByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Client, error)

	FindClientByEmail(
		ctx context.Context,
		email string,
	) (*models.Client, error)

	// -------- Booking --------
	FindBookingByClientID(
		ctx context.Context,
		clientID uint,
	) (*models.Booking, error)

	FindBookingByToken(
		ctx context.Context,
		token string,
	) (*models.Booking, error)

	// CreateBooking runs the whole create inside one transaction:
	// upsert the client by email, insert the booking with a fresh
	// access token, then best-effort attach the chosen service.
	CreateBooking(
		ctx context.Context,
		in CreateInput,
	) (*models.Booking, error)

	// UpdateBookingWindow mutates date and window fields only. Token
	// and client linkage are immutable through this path.
	UpdateBookingWindow(
		ctx context.Context,
		bookingID uint,
		date time.Time,
		earliest string,
		latest string,
	) error
}
