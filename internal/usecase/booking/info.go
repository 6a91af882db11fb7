package booking

import (
	"context"

	domain "github.com/fspruce/helpful-living/internal/domain/booking"
	"github.com/fspruce/helpful-living/internal/models"
)

type InfoInput struct {
	// Session identity wins when set; the token path is only taken for
	// guests (or when a just-edited token is carried forward once).
	UserID      *uint
	AccessToken string
}

type GetBookingInfo struct {
	repo domain.Repository
}

func NewGetBookingInfo(repo domain.Repository) *GetBookingInfo {
	return &GetBookingInfo{repo: repo}
}

func (uc *GetBookingInfo) Execute(
	ctx context.Context,
	in InfoInput,
) (*models.Booking, error) {
	return resolveBooking(ctx, uc.repo, in.UserID, in.AccessToken)
}
