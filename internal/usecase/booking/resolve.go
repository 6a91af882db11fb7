package booking

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/fspruce/helpful-living/internal/domain/booking"
	"github.com/fspruce/helpful-living/internal/httperr"
	"github.com/fspruce/helpful-living/internal/models"
)

// resolveBooking matches a request to the one booking it is authorized to
// see: by the linked account when a session user is given, otherwise by
// exact access-token match. Read-only.
//
// Business outcomes:
//   - "no_booking"         authenticated, but no client row or no booking
//     yet; the caller should route to creation
//   - "access_key_required" guest without a token
//   - "invalid_access_key"  token matches no booking
func resolveBooking(
	ctx context.Context,
	repo domain.Repository,
	userID *uint,
	accessToken string,
) (*models.Booking, error) {

	if userID != nil {
		client, err := repo.FindClientByUserID(ctx, *userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusiness("no_booking")
			}
			return nil, err
		}

		b, err := repo.FindBookingByClientID(ctx, client.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusiness("no_booking")
			}
			return nil, err
		}
		return b, nil
	}

	token := strings.TrimSpace(accessToken)
	if token == "" {
		return nil, httperr.ErrBusiness("access_key_required")
	}

	b, err := repo.FindBookingByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invalid_access_key")
		}
		return nil, err
	}
	return b, nil
}
