package models

import (
	"time"

	"gorm.io/gorm"
)

// Review represents a customer review on a product
type Review struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	ProductID        string         `gorm:"not null;index" json:"product_id"` // references products.product_id
	ReviewerName     string         `gorm:"not null" json:"reviewer_name"`
	Rating           int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment          string         `gorm:"type:text" json:"comment"`
	ImageS3Key       *string        `json:"image_s3_key,omitempty"`
	ReviewImageURL   string         `gorm:"-" json:"review_image_url,omitempty"` // computed field, presigned URL
	VerifiedPurchase bool           `json:"verified_purchase"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
