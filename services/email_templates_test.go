package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderNewOrderNotification(t *testing.T) {
	body := renderNewOrderNotification(NewOrderNotification{
		OrderID:       42,
		CustomerName:  "Asha Verma",
		CustomerEmail: "asha@example.com",
		TotalAmount:   500,
		Address:       "12 MG Road, Bengaluru, Karnataka - 560038",
		Product:       ProductLine{Name: "Steel Water Bottle", ID: "bottle-1l", Quantity: 2, Price: 250},
	})

	assert.Contains(t, body, "Order #42")
	assert.Contains(t, body, "Asha Verma")
	assert.Contains(t, body, "asha@example.com")
	assert.Contains(t, body, "12 MG Road")
	assert.Contains(t, body, "₹500.00") // 250 x 2
	assert.Contains(t, body, "Action Required")
}

func TestRenderOrderConfirmation_IncludesPricing(t *testing.T) {
	body := renderOrderConfirmation(OrderConfirmation{
		OrderID:      7,
		CustomerName: "Asha Verma",
		TotalAmount:  179,
		Product:      ProductLine{Name: "Steel Water Bottle", ID: "bottle-1l", Quantity: 1, Price: 150},
	})

	assert.Contains(t, body, "Order #7")
	assert.Contains(t, body, "Confirmed")
	assert.Contains(t, body, "₹179.00")
}

func TestRenderDeliveredAndCancelled_OmitPricing(t *testing.T) {
	line := ProductLine{Name: "Steel Water Bottle", ID: "bottle-1l", Quantity: 1, Price: 150}

	delivered := renderOrderDelivered(OrderDelivered{OrderID: 7, CustomerName: "Asha", Product: line})
	assert.Contains(t, delivered, "Delivered")
	assert.Contains(t, delivered, "Steel Water Bottle")
	assert.NotContains(t, delivered, "₹")

	cancelled := renderOrderCancelled(OrderCancelled{OrderID: 7, CustomerName: "Asha", Product: line})
	assert.Contains(t, cancelled, "Cancelled")
	assert.Contains(t, cancelled, "No payment was collected")
	assert.NotContains(t, cancelled, "₹")
}

func TestRenderTemplates_EscapeHTML(t *testing.T) {
	body := renderContactMessage(ContactMessage{
		Name:    "<script>alert(1)</script>",
		Email:   "x@example.com",
		Message: "hello & goodbye",
	})

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "hello &amp; goodbye")
}
