package models

import (
	"time"

	"gorm.io/gorm"
)

// Stock status labels shown on the product page. Stock is a manually set
// label, not a counted quantity.
const (
	StockInStock     = "in_stock"
	StockOutOfStock  = "out_of_stock"
	StockFastSelling = "fast_selling"
)

// Product represents a catalog item. ProductID is the operator-assigned
// public identifier used in URLs and order references; ID is internal.
type Product struct {
	ID              uint           `gorm:"primaryKey" json:"-"`
	ProductID       string         `gorm:"uniqueIndex;not null" json:"product_id"`
	Name            string         `gorm:"not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Category        string         `gorm:"index" json:"category"`
	ActualPrice     float64        `gorm:"not null" json:"actual_price"`
	WholesalePrice  float64        `json:"wholesale_price,omitempty"`
	SalePrice       float64        `gorm:"not null" json:"sale_price"`
	ImageS3Key      *string        `json:"image_s3_key,omitempty"`
	ImageURL        string         `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL
	ReturnAvailable bool           `gorm:"default:true" json:"return_available"`
	StockStatus     string         `gorm:"not null;default:'in_stock'" json:"stock_status"` // in_stock, out_of_stock, fast_selling
	AverageRating   float64        `json:"average_rating"`
	TotalReviews    int            `json:"total_reviews"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Purchasable reports whether checkout may proceed for this product
func (p *Product) Purchasable() bool {
	return p.StockStatus != StockOutOfStock
}
