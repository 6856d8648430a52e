package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		digits string
		valid  bool
	}{
		{"valid 10 digits", "9876543210", "9876543210", true},
		{"too short", "98765432", "98765432", false},
		{"letter stripped leaves 9 digits", "987654321a", "987654321", false},
		{"formatting stripped", "(987) 654-3210", "9876543210", true},
		{"spaces stripped", "98765 43210", "9876543210", true},
		{"eleven digits", "98765432100", "98765432100", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digits, valid := NormalizePhone(tt.input)
			assert.Equal(t, tt.digits, digits)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func validForm() ShippingForm {
	return ShippingForm{
		Name:     "Asha Verma",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		RoadArea: "Indiranagar",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560038",
	}
}

func TestShippingFormValidate(t *testing.T) {
	form := validForm()
	assert.Nil(t, form.Validate())
}

func TestShippingFormValidate_ListsAllMissingFields(t *testing.T) {
	form := validForm()
	form.Name = ""
	form.City = ""
	form.Pincode = " "

	err := form.Validate()
	assert.NotNil(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.Code)
	assert.ElementsMatch(t, []string{"name", "city", "pincode"}, err.Fields)
	assert.Contains(t, err.Message, "name")
	assert.Contains(t, err.Message, "pincode")
}

func TestShippingFormValidate_InvalidPhone(t *testing.T) {
	form := validForm()
	form.Phone = "987654321a"

	err := form.Validate()
	assert.NotNil(t, err)
	assert.Equal(t, "INVALID_PHONE", err.Code)
}

func TestShippingFormValidate_NormalizesPhone(t *testing.T) {
	form := validForm()
	form.Phone = "(987) 654-3210"

	assert.Nil(t, form.Validate())
	assert.Equal(t, "9876543210", form.Phone)
}

func TestComposedAddress(t *testing.T) {
	form := validForm()
	form.Landmark = "Near Metro Station"
	assert.Equal(t, "12 MG Road, Indiranagar, Near Metro Station", form.ComposedAddress())

	form.RoadArea = ""
	form.Landmark = ""
	assert.Equal(t, "12 MG Road", form.ComposedAddress())
}
