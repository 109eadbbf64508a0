package models

import "time"

type User struct {
	ID             uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string        `gorm:"not null" json:"name"`
	Email          string        `gorm:"unique;not null" json:"email"`
	Password       string        `gorm:"not null" json:"-"`
	ProfilePicture string        `json:"profile_picture,omitempty"`
	Addresses      []UserAddress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	Orders         []Order       `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}
