package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/buynic/storefront-api/config"
	"github.com/buynic/storefront-api/middleware"
	"github.com/buynic/storefront-api/models"
	"github.com/buynic/storefront-api/services"
)

// ListMyOrders handles GET /api/v1/orders - the customer's own orders,
// newest first
func ListMyOrders(c *gin.Context) {
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

	var orders []models.Order
	if err := db.Preload("Product").Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
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

// CancelMyOrder handles DELETE /api/v1/orders/:id - a customer withdraws a
// pending order. Once the operator has confirmed it, cancellation goes
// through the delivery partner instead.
func CancelMyOrder(c *gin.Context) {
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

	var order models.Order
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if order.Status != models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CANNOT_CANCEL",
				"message": "Cannot cancel this order. Please request cancellation with the delivery partner.",
			},
		})
		return
	}

	if err := db.Delete(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to cancel order",
				"details": err.Error(),
			},
		})
		return
	}

	services.PublishOrderChange(services.EventDelete, strconv.FormatUint(uint64(order.ID), 10))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order cancelled and removed successfully",
	})
}
