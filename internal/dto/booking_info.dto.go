package dto

import (
	domain "github.com/fspruce/helpful-living/internal/domain/booking"
	"github.com/fspruce/helpful-living/internal/models"
)

type BookingInfoDTO struct {
	ID          uint     `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	BookingDate string   `json:"booking_date"`
	Earliest    string   `json:"earliest"`
	Latest      string   `json:"latest"`
	Confirmed   bool     `json:"confirmed"`
	Services    []string `json:"services"`
}

func NewBookingInfoDTO(b *models.Booking) BookingInfoDTO {
	services := make([]string, 0, len(b.Services))
	for _, s := range b.Services {
		services = append(services, s.Name)
	}

	return BookingInfoDTO{
		ID:          b.ID,
		FirstName:   b.Client.FirstName,
		LastName:    b.Client.LastName,
		Email:       b.Client.Email,
		PhoneNumber: b.Client.PhoneNumber,
		BookingDate: b.BookingDate.Format("2006-01-02"),
		Earliest:    domain.FormatHHMM(b.Earliest),
		Latest:      domain.FormatHHMM(b.Latest),
		Confirmed:   b.Confirmed,
		Services:    services,
	}
}
