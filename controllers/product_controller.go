package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/buynic/storefront-api/config"
	"github.com/buynic/storefront-api/middleware"
	"github.com/buynic/storefront-api/models"
	"github.com/buynic/storefront-api/services"
)

// attachProductImageURL fills the computed ImageURL field from the image
// service. Missing keys and presign failures leave the field empty.
func attachProductImageURL(product *models.Product) {
	if product == nil || product.ImageS3Key == nil {
		return
	}
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}
	url, err := imageService.GetImageURL(*product.ImageS3Key)
	if err != nil {
		log.Printf("Failed to generate image URL for product %s: %v", product.ProductID, err)
		return
	}
	product.ImageURL = url
}

func attachReviewImageURL(review *models.Review) {
	if review == nil || review.ImageS3Key == nil {
		return
	}
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}
	url, err := imageService.GetImageURL(*review.ImageS3Key)
	if err != nil {
		log.Printf("Failed to generate image URL for review %d: %v", review.ID, err)
		return
	}
	review.ReviewImageURL = url
}

// ListProducts handles GET /api/v1/products - the catalog, newest first,
// optionally filtered by category
func ListProducts(c *gin.Context) {
	db := config.GetDB()
	query := db.Order("created_at DESC")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load products",
				"details": err.Error(),
			},
		})
		return
	}

	for i := range products {
		attachProductImageURL(&products[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// GetProduct handles GET /api/v1/products/:product_id
func GetProduct(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.Where("product_id = ?", c.Param("product_id")).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	attachProductImageURL(&product)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// ListReviews handles GET /api/v1/products/:product_id/reviews
func ListReviews(c *gin.Context) {
	db := config.GetDB()

	var reviews []models.Review
	if err := db.Where("product_id = ?", c.Param("product_id")).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load reviews",
				"details": err.Error(),
			},
		})
		return
	}

	for i := range reviews {
		attachReviewImageURL(&reviews[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reviews,
	})
}

// CreateReviewRequest represents the request body for posting a review
type CreateReviewRequest struct {
	Rating     int     `json:"rating" binding:"required,gte=1,lte=5"`
	Comment    string  `json:"comment"`
	ImageS3Key *string `json:"image_s3_key"`
}

// CreateReview handles POST /api/v1/products/:product_id/reviews - inserts
// a review and folds its rating into the product's aggregate in a single
// SQL expression, so concurrent reviews accumulate instead of clobbering
// each other.
func CreateReview(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return
	}

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

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Rating must be between 1 and 5",
				"details": err.Error(),
			},
		})
		return
	}

	// A reviewer who has bought the product gets the verified badge
	var purchases int64
	db.Model(&models.Order{}).
		Where("user_id = ? AND product_id = ?", user.ID, productID).
		Count(&purchases)

	review := models.Review{
		ProductID:        productID,
		ReviewerName:     user.Name,
		Rating:           req.Rating,
		Comment:          strings.TrimSpace(req.Comment),
		ImageS3Key:       req.ImageS3Key,
		VerifiedPurchase: purchases > 0,
	}

	if err := db.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save review",
				"details": err.Error(),
			},
		})
		return
	}

	// Atomic accumulate: never read-then-write the aggregate
	if err := db.Model(&models.Product{}).Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"average_rating": gorm.Expr(
				"(average_rating * total_reviews + ?) / (total_reviews + 1)", req.Rating),
			"total_reviews": gorm.Expr("total_reviews + 1"),
		}).Error; err != nil {
		log.Printf("Failed to update rating aggregate for product %s: %v", productID, err)
	}

	services.PublishProductChange(services.EventUpdate, productID)

	attachReviewImageURL(&review)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    review,
	})
}
