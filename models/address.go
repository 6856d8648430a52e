package models

import (
	"time"

	"gorm.io/gorm"
)

// Address is a reusable shipping profile owned by a user. Addresses are
// created opportunistically when a checkout completes with a freshly
// entered address; they are never updated or deleted afterwards.
type Address struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Phone     string         `gorm:"not null" json:"phone"`
	Address   string         `gorm:"not null" json:"address"` // composed house/road/landmark line
	City      string         `gorm:"not null" json:"city"`
	State     string         `gorm:"not null" json:"state"`
	Pincode   string         `gorm:"not null" json:"pincode"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Address model
func (Address) TableName() string {
	return "user_addresses"
}
