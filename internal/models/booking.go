package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// One active booking per client, enforced by the unique index.
	ClientID uint   `gorm:"uniqueIndex;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	Services []Service `gorm:"many2many:booking_services;" json:"services"`

	BookingDate time.Time `gorm:"type:date" json:"booking_date"`

	// Preferred time-of-day window, stored as zero-padded HHMM strings.
	// No timezone semantics apply.
	Earliest string `gorm:"size:4;not null" json:"earliest"`
	Latest   string `gorm:"size:4;not null" json:"latest"`

	Confirmed bool `gorm:"default:false" json:"confirmed"`

	// Generated once at insert, never regenerated. Sole credential for
	// guest access.
	AccessToken string `gorm:"size:48;uniqueIndex;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
