package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/buynic/storefront-api/config"
	"github.com/buynic/storefront-api/models"
	"github.com/buynic/storefront-api/services"
)

// ProductForm is the admin create/update payload. ProductID is assigned by
// the operator and is immutable after creation.
type ProductForm struct {
	ProductID       string  `json:"product_id"`
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Category        string  `json:"category" binding:"required"`
	ActualPrice     float64 `json:"actual_price" binding:"required,gt=0"`
	WholesalePrice  float64 `json:"wholesale_price"`
	SalePrice       float64 `json:"sale_price" binding:"required,gt=0"`
	ImageS3Key      *string `json:"image_s3_key"`
	ReturnAvailable *bool   `json:"return_available"`
	StockStatus     string  `json:"stock_status"`

	// Create-only seeding of the displayed rating
	InitialRating       float64  `json:"initial_rating"`
	InitialReviewsCount int      `json:"initial_reviews_count"`
	ReviewImageURLs     []string `json:"review_image_urls"`
}

var validStockStatuses = map[string]bool{
	models.StockInStock:     true,
	models.StockOutOfStock:  true,
	models.StockFastSelling: true,
}

// CreateProduct handles POST /api/v1/admin/products
func CreateProduct(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}

	var form ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if strings.TrimSpace(form.ProductID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Product ID is required",
			},
		})
		return
	}

	stockStatus := form.StockStatus
	if stockStatus == "" {
		stockStatus = models.StockInStock
	}
	if !validStockStatuses[stockStatus] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown stock status: " + stockStatus,
			},
		})
		return
	}

	returnAvailable := true
	if form.ReturnAvailable != nil {
		returnAvailable = *form.ReturnAvailable
	}

	product := models.Product{
		ProductID:       form.ProductID,
		Name:            form.Name,
		Description:     form.Description,
		Category:        form.Category,
		ActualPrice:     form.ActualPrice,
		WholesalePrice:  form.WholesalePrice,
		SalePrice:       form.SalePrice,
		ImageS3Key:      form.ImageS3Key,
		ReturnAvailable: returnAvailable,
		StockStatus:     stockStatus,
		AverageRating:   form.InitialRating,
		TotalReviews:    form.InitialReviewsCount,
	}

	db := config.GetDB()
	if err := db.Create(&product).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "unique") || strings.Contains(errMsg, "duplicate") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_EXISTS",
					"message": "A product with this ID already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Creation failed",
				"details": err.Error(),
			},
		})
		return
	}

	// Optional review seeding so a new listing doesn't look empty
	rating := int(form.InitialRating)
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	for _, url := range form.ReviewImageURLs {
		url := strings.TrimSpace(url)
		if url == "" {
			continue
		}
		key := url
		seed := models.Review{
			ProductID:        product.ProductID,
			ReviewerName:     "Buynic Customer",
			Rating:           rating,
			Comment:          "Great product!",
			ImageS3Key:       &key,
			VerifiedPurchase: true,
		}
		if err := db.Create(&seed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Product created but review seeding failed",
					"details": err.Error(),
				},
			})
			return
		}
	}

	services.PublishProductChange(services.EventInsert, product.ProductID)

	attachProductImageURL(&product)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct handles PUT /api/v1/admin/products/:product_id
func UpdateProduct(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}

	db := config.GetDB()
	productID := c.Param("product_id")

	var product models.Product
	if err := db.Where("product_id = ?", productID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	var form ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if form.StockStatus != "" && !validStockStatuses[form.StockStatus] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown stock status: " + form.StockStatus,
			},
		})
		return
	}

	product.Name = form.Name
	product.Description = form.Description
	product.Category = form.Category
	product.ActualPrice = form.ActualPrice
	product.WholesalePrice = form.WholesalePrice
	product.SalePrice = form.SalePrice
	if form.ImageS3Key != nil {
		product.ImageS3Key = form.ImageS3Key
	}
	if form.ReturnAvailable != nil {
		product.ReturnAvailable = *form.ReturnAvailable
	}
	if form.StockStatus != "" {
		product.StockStatus = form.StockStatus
	}

	if err := db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Update failed",
				"details": err.Error(),
			},
		})
		return
	}

	services.PublishProductChange(services.EventUpdate, product.ProductID)

	attachProductImageURL(&product)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/v1/admin/products/:product_id
func DeleteProduct(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}

	db := config.GetDB()
	productID := c.Param("product_id")

	var product models.Product
	if err := db.Where("product_id = ?", productID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	if err := db.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Delete failed",
				"details": err.Error(),
			},
		})
		return
	}

	services.PublishProductChange(services.EventDelete, product.ProductID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}
