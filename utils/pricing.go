package utils

import "math"

const (
	// FreeDeliveryThreshold is the item subtotal above which delivery is free
	FreeDeliveryThreshold = 199.0
	// FlatDeliveryFee is charged when the subtotal does not exceed the threshold
	FlatDeliveryFee = 29.0
)

// OrderTotals is the price breakdown shown at checkout and stored on the order
type OrderTotals struct {
	ItemTotal   float64 `json:"item_total"`
	DeliveryFee float64 `json:"delivery_fee"`
	GrandTotal  float64 `json:"grand_total"`
}

// Round2 rounds a currency amount to 2 decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotals calculates the item subtotal, delivery fee and grand total
// for a sale price and quantity. Amounts are rounded to 2 decimal places
// both before and after the fee is added. Delivery is free only when the
// subtotal strictly exceeds the threshold: a 199.00 subtotal still pays
// the flat fee.
func ComputeTotals(salePrice float64, quantity int) OrderTotals {
	itemTotal := Round2(salePrice * float64(quantity))

	deliveryFee := FlatDeliveryFee
	if itemTotal > FreeDeliveryThreshold {
		deliveryFee = 0
	}

	return OrderTotals{
		ItemTotal:   itemTotal,
		DeliveryFee: deliveryFee,
		GrandTotal:  Round2(itemTotal + deliveryFee),
	}
}
