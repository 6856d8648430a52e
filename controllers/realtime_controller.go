package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buynic/storefront-api/services"
)

// streamChanges pipes broker events for one collection to the client as
// server-sent events until the client disconnects. Consumers treat each
// event as an invalidation token and refetch what they display.
func streamChanges(c *gin.Context, collection, key string) {
	broker := services.GetRealtimeBroker()
	if broker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REALTIME_UNAVAILABLE",
				"message": "Change feed is not configured",
			},
		})
		return
	}

	events, cancel := broker.Subscribe(collection, key)
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case evt, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", evt)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// StreamOrderChanges handles GET /api/v1/admin/realtime/orders - the
// operator console's live order feed
func StreamOrderChanges(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}
	streamChanges(c, services.OrdersCollection, "")
}

// StreamProductChanges handles GET /api/v1/realtime/products - product page
// live updates, optionally filtered to a single product
func StreamProductChanges(c *gin.Context) {
	streamChanges(c, services.ProductsCollection, c.Query("product_id"))
}
