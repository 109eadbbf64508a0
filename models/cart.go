package models

import "time"

// CartItem is one row of a user's persistent cart. Customization fields
// travel with the item into the order when checkout completes.
type CartItem struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	ProductID         uint      `gorm:"not null" json:"product_id"`
	Product           Product   `json:"product,omitempty"`
	Quantity          int       `gorm:"not null" json:"quantity"`
	CustomizationText string    `json:"customization_text,omitempty"`
	ImagePath         string    `json:"image_path,omitempty"`
	Whatsapp          string    `json:"whatsapp,omitempty"`
	UseDefault        bool      `json:"use_default"`
	AddedAt           time.Time `gorm:"autoCreateTime" json:"added_at"`
}

// BuyNowSelection is the single-item checkout path that bypasses the
// persistent cart. It is never written to Postgres: the checkout store
// keeps it in Redis under the buyer's id with its own expiry.
type BuyNowSelection struct {
	ProductID         uint   `json:"product_id"`
	Quantity          int    `json:"quantity"`
	CustomizationText string `json:"customization_text,omitempty"`
	ImagePath         string `json:"image_path,omitempty"`
	Whatsapp          string `json:"whatsapp,omitempty"`
	UseDefault        bool   `json:"use_default"`
}
