package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name        string
		salePrice   float64
		quantity    int
		itemTotal   float64
		deliveryFee float64
		grandTotal  float64
	}{
		{"below threshold pays flat fee", 150, 1, 150, 29, 179},
		{"above threshold ships free", 100, 3, 300, 0, 300},
		{"exactly at threshold still pays fee", 199, 1, 199, 29, 228},
		{"just over threshold ships free", 199.01, 1, 199.01, 0, 199.01},
		{"multi quantity checkout", 250, 2, 500, 0, 500},
		{"fractional price rounds to 2 places", 33.333, 3, 100, 29, 129},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(tt.salePrice, tt.quantity)
			assert.Equal(t, tt.itemTotal, totals.ItemTotal)
			assert.Equal(t, tt.deliveryFee, totals.DeliveryFee)
			assert.Equal(t, tt.grandTotal, totals.GrandTotal)
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 99.99, Round2(99.994))
	assert.Equal(t, 100.0, Round2(99.995))
	assert.Equal(t, 0.0, Round2(0))
}
