package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/fspruce/helpful-living/internal/domain/booking"
	"github.com/fspruce/helpful-living/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) FindClientByUserID(
	ctx context.Context,
	userID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *BookingGormRepository) FindClientByEmail(
	ctx context.Context,
	email string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) FindBookingByClientID(
	ctx context.Context,
	clientID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where("client_id = ?", clientID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) FindBookingByToken(
	ctx context.Context,
	token string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where("access_token = ?", token).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBooking spans find-or-create client through booking insert in one
// transaction, so a failure partway cannot leave a half-written booking.
// The service attach is best-effort inside the same boundary: an unknown
// id is skipped silently.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	in domain.CreateInput,
) (*models.Booking, error) {

	var created *models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		email := strings.ToLower(strings.TrimSpace(in.Email))

		var client models.Client
		err := tx.Where("email = ?", email).First(&client).Error

		switch {
		case err == nil:
			// Existing client. Link the authenticated account
			// opportunistically if the row is still unlinked.
			if in.UserID != nil && client.UserID == nil {
				client.UserID = in.UserID
				if err := tx.Model(&client).
					Update("user_id", in.UserID).Error; err != nil {
					return err
				}
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			client = models.Client{
				UserID:      in.UserID,
				FirstName:   in.FirstName,
				LastName:    in.LastName,
				Email:       email,
				PhoneNumber: in.PhoneNumber,
			}
			if err := tx.Create(&client).Error; err != nil {
				return err
			}

		default:
			return err
		}

		token, err := domain.NewAccessToken()
		if err != nil {
			return err
		}

		b := models.Booking{
			ClientID:    client.ID,
			BookingDate: in.BookingDate,
			Earliest:    in.Earliest,
			Latest:      in.Latest,
			Confirmed:   false,
			AccessToken: token,
		}

		// The unique index on client_id rejects a second booking for
		// the same client here.
		if err := tx.Create(&b).Error; err != nil {
			return err
		}

		if in.ServiceID != 0 {
			var service models.Service
			err := tx.First(&service, in.ServiceID).Error
			if err == nil {
				if err := tx.Model(&b).
					Association("Services").
					Append(&service); err != nil {
					return err
				}
				b.Services = []models.Service{service}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		b.Client = client
		created = &b
		return nil
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BookingGormRepository) UpdateBookingWindow(
	ctx context.Context,
	bookingID uint,
	date time.Time,
	earliest string,
	latest string,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]any{
			"booking_date": date,
			"earliest":     earliest,
			"latest":       latest,
		}).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
