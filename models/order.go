package models

import (
	"time"

	"gorm.io/gorm"
)

// Order represents a single product purchase request with shipping and
// status metadata. Exactly one live pending order may exist per
// (user, product) pair; a partial unique index enforces this at the
// database layer.
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	User            User           `gorm:"foreignKey:UserID" json:"-"`
	ProductID       string         `gorm:"not null;index" json:"product_id"` // references products.product_id
	Product         Product        `gorm:"foreignKey:ProductID;references:ProductID" json:"product"`
	Quantity        int            `gorm:"not null;check:quantity > 0" json:"quantity"`
	Status          string         `gorm:"not null;default:'pending';index" json:"status"`
	TotalPrice      float64        `gorm:"not null" json:"total_price"` // grand total, collected on delivery
	PaymentMethod   string         `gorm:"not null;default:'COD'" json:"payment_method"`
	ShippingName    string         `gorm:"not null" json:"shipping_name"`
	ShippingPhone   string         `gorm:"not null" json:"shipping_phone"`
	ShippingAddress string         `gorm:"not null" json:"shipping_address"`
	ShippingCity    string         `gorm:"not null" json:"shipping_city"`
	ShippingState   string         `gorm:"not null" json:"shipping_state"`
	ShippingPincode string         `gorm:"not null" json:"shipping_pincode"`
	Email           string         `json:"email"` // contact email for notifications
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
