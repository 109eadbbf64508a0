package models

import "time"

// UserAddress is one entry in a user's address book. A user may mark at
// most one address as the default shipping address.
type UserAddress struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	AddressType  string    `json:"address_type"` // e.g. "home", "work"
	FullName     string    `gorm:"not null" json:"full_name"`
	AddressLine1 string    `gorm:"not null" json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `gorm:"not null" json:"city"`
	State        string    `gorm:"not null" json:"state"`
	PostalCode   string    `gorm:"not null" json:"postal_code"`
	Country      string    `gorm:"not null" json:"country"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
