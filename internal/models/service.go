package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Slug string `gorm:"size:200;uniqueIndex;not null" json:"slug"`

	Description string `gorm:"type:text" json:"description"`
	Excerpt     string `gorm:"type:text" json:"excerpt"`

	// Storage key of the service image, empty until one is uploaded.
	Image string `gorm:"size:255" json:"image"`

	Available bool `gorm:"default:false" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
