package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/buynic/storefront-api/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestEnsurePendingOrderIndex(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, EnsurePendingOrderIndex(db))

	// Running the migration twice must be a no-op
	assert.NoError(t, EnsurePendingOrderIndex(db))
}

func TestPendingOrderIndex_BlocksDuplicatePending(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, EnsurePendingOrderIndex(db))

	user := models.User{Auth0ID: "auth0|u1", Name: "U", Email: "u@example.com", Role: "customer"}
	db.Create(&user)
	product := models.Product{ProductID: "prod-1", Name: "Bottle", Category: "kitchen",
		ActualPrice: 399, SalePrice: 150, StockStatus: models.StockInStock}
	db.Create(&product)

	newOrder := func(status string) *models.Order {
		return &models.Order{
			UserID: user.ID, ProductID: product.ProductID, Quantity: 1,
			Status: status, TotalPrice: 179, PaymentMethod: "COD",
			ShippingName: "U", ShippingPhone: "9876543210",
			ShippingAddress: "12 MG Road", ShippingCity: "Bengaluru",
			ShippingState: "Karnataka", ShippingPincode: "560038",
		}
	}

	assert.NoError(t, db.Create(newOrder(models.StatusPending)).Error)

	// Second pending order for the same pair is rejected at the database layer
	assert.Error(t, db.Create(newOrder(models.StatusPending)).Error)

	// Non-pending rows do not collide
	assert.NoError(t, db.Create(newOrder(models.StatusOrdered)).Error)

	// A soft-deleted pending row frees the slot
	db.Where("status = ?", models.StatusPending).Delete(&models.Order{})
	assert.NoError(t, db.Create(newOrder(models.StatusPending)).Error)
}
