package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/buynic/storefront-api/config"
	"github.com/buynic/storefront-api/middleware"
	"github.com/buynic/storefront-api/models"
	"github.com/buynic/storefront-api/services"
)

// requireAdmin resolves the calling user and verifies the admin role.
// It writes the error response and returns nil when the caller is not
// allowed through.
func requireAdmin(c *gin.Context) *models.User {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil
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
		return nil
	}

	if user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "This account is not authorized for admin access",
			},
		})
		return nil
	}

	return &user
}

// ListAllOrders handles GET /api/v1/admin/orders - the operator's order list
// with optional status filter and creation-time sorting
func ListAllOrders(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}

	db := config.GetDB()
	query := db.Preload("Product")

	if status := c.Query("status"); status != "" && status != "all" {
		if !models.IsValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown order status: " + status,
				},
			})
			return
		}
		query = query.Where("status = ?", status)
	}

	sort := "created_at DESC"
	if c.Query("sort") == "oldest" {
		sort = "created_at ASC"
	}

	var orders []models.Order
	if err := query.Order(sort).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
				"details": err.Error(),
			},
		})
		return
	}

	for i := range orders {
		attachProductImageURL(&orders[i].Product)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// UpdateOrderStatusRequest is the operator's status mutation request.
// Confirm must be true to execute a cancellation; a cancel request without
// it returns confirmation_required and performs no mutation.
type UpdateOrderStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Confirm bool   `json:"confirm"`
}

// UpdateOrderStatus handles PUT /api/v1/admin/orders/:id/status - moves an
// order through its lifecycle, enforcing the transition rules, and notifies
// the customer on confirmation, delivery and cancellation.
func UpdateOrderStatus(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}

	var req UpdateOrderStatusRequest
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

	db := config.GetDB()
	var order models.Order
	if err := db.Preload("Product").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if !models.CanTransition(order.Status, req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TRANSITION_DENIED",
				"message": models.TransitionError(order.Status, req.Status),
			},
		})
		return
	}

	// Cancellation is destructive: require the explicit confirmation step
	// before mutating anything
	if req.Status == models.StatusCancelled && !req.Confirm {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"confirmation_required": true,
				"message":               "Re-send the request with confirm set to true to cancel this order.",
			},
		})
		return
	}

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", req.Status).Error; err != nil {
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

	// Re-read rather than trusting a local patch; other sessions mutate
	// orders concurrently
	var updated models.Order
	if err := db.Preload("Product").First(&updated, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
				"details": err.Error(),
			},
		})
		return
	}

	services.PublishOrderChange(services.EventUpdate, strconv.FormatUint(uint64(order.ID), 10))

	dispatchStatusEmail(order, req.Status)

	attachProductImageURL(&updated.Product)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// dispatchStatusEmail sends the customer notification matching a status
// transition. Each dispatch is independent and best effort: failures are
// logged and never roll back the status change.
func dispatchStatusEmail(order models.Order, newStatus string) {
	if order.Email == "" {
		return
	}
	emailService := services.GetEmailService()
	if emailService == nil {
		return
	}

	customerName := order.ShippingName
	if customerName == "" {
		customerName = "Customer"
	}
	line := services.ProductLine{
		Name:     order.Product.Name,
		ID:       order.ProductID,
		ImageURL: order.Product.ImageURL,
		Quantity: order.Quantity,
		Price:    order.Product.SalePrice,
	}

	switch {
	case newStatus == models.StatusOrdered && order.Status != models.StatusOrdered:
		err := emailService.SendOrderConfirmation(services.OrderConfirmation{
			OrderID:       order.ID,
			CustomerName:  customerName,
			CustomerEmail: order.Email,
			TotalAmount:   order.TotalPrice,
			Product:       line,
		})
		if err != nil {
			log.Printf("Failed to send confirmation email for order %d: %v", order.ID, err)
		}
	case newStatus == models.StatusDelivered && order.Status != models.StatusDelivered:
		err := emailService.SendOrderDelivered(services.OrderDelivered{
			OrderID:       order.ID,
			CustomerName:  customerName,
			CustomerEmail: order.Email,
			Product:       line,
		})
		if err != nil {
			log.Printf("Failed to send delivered email for order %d: %v", order.ID, err)
		}
	case newStatus == models.StatusCancelled && order.Status != models.StatusCancelled:
		err := emailService.SendOrderCancelled(services.OrderCancelled{
			OrderID:       order.ID,
			CustomerName:  customerName,
			CustomerEmail: order.Email,
			Product:       line,
		})
		if err != nil {
			log.Printf("Failed to send cancellation email for order %d: %v", order.ID, err)
		}
	}
}
