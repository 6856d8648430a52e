package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/buynic/storefront-api/config"
	"github.com/buynic/storefront-api/middleware"
	"github.com/buynic/storefront-api/models"
	"github.com/buynic/storefront-api/services"
	"github.com/buynic/storefront-api/utils"
)

// BeginCheckout handles GET /api/v1/checkout/begin - stage 1 of the buy-now
// flow. It gates on stock, loads the customer's saved addresses and returns
// the price quote for the requested quantity. The client either picks a
// saved address or fills the new-address form, then calls PlaceOrder.
func BeginCheckout(c *gin.Context) {
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

	quantity := 1
	if raw := c.Query("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil || quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Quantity must be a positive integer",
				},
			})
			return
		}
	}

	productID := c.Query("product_id")
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

	if !product.Purchasable() {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "OUT_OF_STOCK",
				"message": "This product is currently out of stock",
			},
		})
		return
	}

	var addresses []models.Address
	if err := db.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&addresses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load saved addresses",
				"details": err.Error(),
			},
		})
		return
	}

	attachProductImageURL(&product)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"product":              product,
			"addresses":            addresses,
			"requires_new_address": len(addresses) == 0,
			"quote":                utils.ComputeTotals(product.SalePrice, quantity),
		},
	})
}

// PlaceOrderRequest is the stage 2 confirmation payload. The customer either
// references a saved address or supplies the full new-address form.
type PlaceOrderRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	AddressID *uint  `json:"address_id"`
	utils.ShippingForm
}

// PlaceOrder handles POST /api/v1/orders - converts a buy request into a
// persisted pending order. A freshly entered address is saved for reuse,
// a duplicate pending order for the same product is rejected, and the store
// operator is notified of the new order (best effort).
func PlaceOrder(c *gin.Context) {
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

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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

	newAddress := req.AddressID == nil
	if newAddress {
		// Fresh form entry: every field except road area and landmark is
		// required and the phone must normalize to 10 digits
		if vErr := req.ShippingForm.Validate(); vErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    vErr.Code,
					"message": vErr.Message,
					"fields":  vErr.Fields,
				},
			})
			return
		}
	} else {
		var saved models.Address
		if err := db.Where("id = ? AND user_id = ?", *req.AddressID, user.ID).First(&saved).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ADDRESS_NOT_FOUND",
					"message": "Saved address not found",
				},
			})
			return
		}
		req.ShippingForm = utils.ShippingForm{
			Name:    saved.Name,
			Phone:   saved.Phone,
			Address: saved.Address,
			City:    saved.City,
			State:   saved.State,
			Pincode: saved.Pincode,
		}
	}

	var product models.Product
	if err := db.Where("product_id = ?", req.ProductID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	if !product.Purchasable() {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "OUT_OF_STOCK",
				"message": "This product is currently out of stock",
			},
		})
		return
	}

	// Duplicate suppression: one live pending order per (user, product).
	// The partial unique index backstops this check against concurrent
	// checkouts; see the insert error handling below.
	var existing models.Order
	dupErr := db.Where("user_id = ? AND product_id = ? AND status = ?",
		user.ID, req.ProductID, models.StatusPending).First(&existing).Error
	if dupErr == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_ORDER",
				"message": "You already have a pending order for this product. Please check 'My Orders' to track or manage it.",
			},
		})
		return
	}
	if !errors.Is(dupErr, gorm.ErrRecordNotFound) {
		// Only a definite "no pending order" may proceed; anything else
		// would turn a store hiccup into a skipped duplicate check
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Order failed",
				"details": dupErr.Error(),
			},
		})
		return
	}

	composedAddress := req.ShippingForm.ComposedAddress()

	if newAddress {
		address := models.Address{
			UserID:  user.ID,
			Name:    req.Name,
			Phone:   req.Phone,
			Address: composedAddress,
			City:    req.City,
			State:   req.State,
			Pincode: req.Pincode,
		}
		if err := db.Create(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Order failed",
					"details": err.Error(),
				},
			})
			return
		}
	}

	totals := utils.ComputeTotals(product.SalePrice, req.Quantity)

	order := models.Order{
		UserID:          user.ID,
		ProductID:       product.ProductID,
		Quantity:        req.Quantity,
		Status:          models.StatusPending,
		TotalPrice:      totals.GrandTotal,
		PaymentMethod:   "COD",
		ShippingName:    req.Name,
		ShippingPhone:   req.Phone,
		ShippingAddress: composedAddress,
		ShippingCity:    req.City,
		ShippingState:   req.State,
		ShippingPincode: req.Pincode,
		Email:           user.Email,
	}

	if err := db.Create(&order).Error; err != nil {
		// The partial unique index rejects a concurrent second pending
		// order for the same product; report it as the duplicate it is
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "unique") || strings.Contains(errMsg, "duplicate") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_ORDER",
					"message": "You already have a pending order for this product. Please check 'My Orders' to track or manage it.",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Order failed",
				"details": err.Error(),
			},
		})
		return
	}

	attachProductImageURL(&product)
	order.Product = product

	// Best-effort operator notification; a delivery failure never fails
	// the checkout and never surfaces to the customer
	if emailService := services.GetEmailService(); emailService != nil {
		notification := services.NewOrderNotification{
			OrderID:       order.ID,
			CustomerName:  order.ShippingName,
			CustomerEmail: order.Email,
			TotalAmount:   order.TotalPrice,
			Address: fmt.Sprintf("%s, %s, %s - %s",
				order.ShippingAddress, order.ShippingCity, order.ShippingState, order.ShippingPincode),
			Product: services.ProductLine{
				Name:     product.Name,
				ID:       product.ProductID,
				ImageURL: product.ImageURL,
				Quantity: order.Quantity,
				Price:    product.SalePrice,
			},
		}
		if err := emailService.SendNewOrderNotification(notification); err != nil {
			log.Printf("Failed to send admin notification for order %d: %v", order.ID, err)
		}
	}

	services.PublishOrderChange(services.EventInsert, strconv.FormatUint(uint64(order.ID), 10))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"order":  order,
			"totals": totals,
		},
	})
}
