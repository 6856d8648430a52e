package utils

import (
	"strings"
	"unicode"
)

// ValidationError reports one or more invalid shipping form fields
type ValidationError struct {
	Code    string
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NormalizePhone strips every non-digit character from the input and
// returns the digits plus whether they form a valid 10-digit phone number
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	return digits, len(digits) == 10
}

// ShippingForm carries a freshly entered checkout address. RoadArea and
// Landmark are optional; everything else is required.
type ShippingForm struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	RoadArea string `json:"road_area"`
	Landmark string `json:"landmark"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// ComposedAddress combines the address lines into the single line stored
// on orders and saved addresses
func (f *ShippingForm) ComposedAddress() string {
	parts := []string{strings.TrimSpace(f.Address)}
	if v := strings.TrimSpace(f.RoadArea); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(f.Landmark); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, ", ")
}

// Validate checks required fields and the phone format, listing every
// missing field so the customer can fix them all at once. On success the
// Phone field is replaced with its normalized 10-digit form.
func (f *ShippingForm) Validate() *ValidationError {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"name", f.Name},
		{"phone", f.Phone},
		{"address", f.Address},
		{"city", f.City},
		{"state", f.State},
		{"pincode", f.Pincode},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			Code:    "VALIDATION_ERROR",
			Message: "Missing required fields: " + strings.Join(missing, ", "),
			Fields:  missing,
		}
	}

	digits, ok := NormalizePhone(f.Phone)
	if !ok {
		return &ValidationError{
			Code:    "INVALID_PHONE",
			Message: "Please enter a valid 10-digit phone number",
			Fields:  []string{"phone"},
		}
	}
	f.Phone = digits

	return nil
}
