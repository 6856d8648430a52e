package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buynic/storefront-api/services"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// SubmitContactForm handles POST /api/v1/contact - relays a message from a
// visitor to the store operator. Unlike order notifications this dispatch
// is the whole point of the request, so a delivery failure is reported.
func SubmitContactForm(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name, email and message are all required",
				"details": err.Error(),
			},
		})
		return
	}

	emailService := services.GetEmailService()
	if emailService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMAIL_ERROR",
				"message": "Email delivery is not configured",
			},
		})
		return
	}

	err := emailService.SendContactMessage(services.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMAIL_ERROR",
				"message": "Failed to send your message, please try again later",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message sent successfully",
	})
}
