package models

import "time"

// Client is a person we serve, or a lead we may serve yet. Email uniquely
// identifies a client whether or not they hold a login account.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Optional link to a login account. Deleting the account removes the
	// client row as well.
	UserID *uint `gorm:"uniqueIndex" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	FirstName   string `gorm:"size:200;not null" json:"first_name"`
	LastName    string `gorm:"size:200;not null" json:"last_name"`
	Email       string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PhoneNumber string `gorm:"size:20" json:"phone_number"`

	// False marks a lead, true a confirmed client.
	IsClient bool `gorm:"default:false" json:"is_client"`

	Services []Service `gorm:"many2many:client_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
