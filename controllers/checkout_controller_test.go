package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/buynic/storefront-api/config"
	"github.com/buynic/storefront-api/models"
	"github.com/buynic/storefront-api/services"
)

func seedCheckoutFixtures(t *testing.T, db *gorm.DB) (models.User, models.Product) {
	user := models.User{Auth0ID: "auth0|buyer", Name: "Asha Verma", Email: "asha@example.com", Role: "customer"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	product := models.Product{
		ProductID:   "prod-1",
		Name:        "Steel Water Bottle",
		Category:    "kitchen",
		ActualPrice: 399,
		SalePrice:   150,
		StockStatus: models.StockInStock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}

	return user, product
}

func newAddressBody(productID string, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
		"name":       "Asha Verma",
		"phone":      "9876543210",
		"address":    "12 MG Road",
		"road_area":  "Indiranagar",
		"city":       "Bengaluru",
		"state":      "Karnataka",
		"pincode":    "560038",
	}
}

func placeOrder(router http.Handler, body map[string]interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPlaceOrder_NewAddressCheckout(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	mockEmail := services.NewMockEmailService()
	mockEmail.SetAsMockForTesting()

	user, product := seedCheckoutFixtures(t, db)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), PlaceOrder)

	w := placeOrder(router, newAddressBody(product.ProductID, 1))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response["success"].(bool))

	data := response["data"].(map[string]interface{})
	order := data["order"].(map[string]interface{})
	assert.Equal(t, models.StatusPending, order["status"])
	assert.Equal(t, 179.0, order["total_price"]) // 150 + 29 delivery
	assert.Equal(t, "COD", order["payment_method"])
	assert.Equal(t, "9876543210", order["shipping_phone"])
	assert.Equal(t, "12 MG Road, Indiranagar", order["shipping_address"])
	assert.Equal(t, user.Email, order["email"])

	totals := data["totals"].(map[string]interface{})
	assert.Equal(t, 150.0, totals["item_total"])
	assert.Equal(t, 29.0, totals["delivery_fee"])
	assert.Equal(t, 179.0, totals["grand_total"])

	// Fresh address was saved for reuse
	var addresses []models.Address
	db.Where("user_id = ?", user.ID).Find(&addresses)
	assert.Len(t, addresses, 1)
	assert.Equal(t, "12 MG Road, Indiranagar", addresses[0].Address)

	// Operator was notified exactly once
	assert.Len(t, mockEmail.NewOrderNotifications, 1)
	notification := mockEmail.NewOrderNotifications[0]
	assert.Equal(t, "Asha Verma", notification.CustomerName)
	assert.Equal(t, user.Email, notification.CustomerEmail)
	assert.Equal(t, 179.0, notification.TotalAmount)
	assert.Equal(t, product.ProductID, notification.Product.ID)
	assert.Equal(t, 1, notification.Product.Quantity)
	assert.Equal(t, 150.0, notification.Product.Price)
}

func TestPlaceOrder_FreeDeliveryAboveThreshold(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	services.NewMockEmailService().SetAsMockForTesting()

	user, product := seedCheckoutFixtures(t, db)
	db.Model(&models.Product{}).Where("product_id = ?", product.ProductID).Update("sale_price", 100)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), PlaceOrder)

	w := placeOrder(router, newAddressBody(product.ProductID, 3))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	totals := response["data"].(map[string]interface{})["totals"].(map[string]interface{})
	assert.Equal(t, 300.0, totals["item_total"])
	assert.Equal(t, 0.0, totals["delivery_fee"])
	assert.Equal(t, 300.0, totals["grand_total"])
}

func TestPlaceOrder_ValidationFailures(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	mockEmail := services.NewMockEmailService()
	mockEmail.SetAsMockForTesting()

	user, product := seedCheckoutFixtures(t, db)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), PlaceOrder)

	tests := []struct {
		name          string
		mutate        func(body map[string]interface{})
		expectedCode  string
		messageSubstr string
	}{
		{
			name:          "phone too short",
			mutate:        func(b map[string]interface{}) { b["phone"] = "98765432" },
			expectedCode:  "INVALID_PHONE",
			messageSubstr: "10-digit",
		},
		{
			name:          "phone with letter strips to 9 digits",
			mutate:        func(b map[string]interface{}) { b["phone"] = "987654321a" },
			expectedCode:  "INVALID_PHONE",
			messageSubstr: "10-digit",
		},
		{
			name: "missing fields listed individually",
			mutate: func(b map[string]interface{}) {
				b["name"] = ""
				b["city"] = ""
			},
			expectedCode:  "VALIDATION_ERROR",
			messageSubstr: "name, city",
		},
		{
			name:         "zero quantity",
			mutate:       func(b map[string]interface{}) { b["quantity"] = 0 },
			expectedCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := newAddressBody(product.ProductID, 1)
			tt.mutate(body)

			w := placeOrder(router, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)
			errorData := response["error"].(map[string]interface{})
			assert.Equal(t, tt.expectedCode, errorData["code"])
			if tt.messageSubstr != "" {
				assert.Contains(t, errorData["message"], tt.messageSubstr)
			}
		})
	}

	// Nothing was written and nothing was dispatched
	var orderCount, addressCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.Address{}).Count(&addressCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), addressCount)
	assert.Equal(t, 0, mockEmail.TotalDispatched())
}

func TestPlaceOrder_NormalizesFormattedPhone(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	services.NewMockEmailService().SetAsMockForTesting()

	user, product := seedCheckoutFixtures(t, db)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), PlaceOrder)

	body := newAddressBody(product.ProductID, 1)
	body["phone"] = "(987) 654-3210"

	w := placeOrder(router, body)
	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	db.First(&order)
	assert.Equal(t, "9876543210", order.ShippingPhone)
}

func TestPlaceOrder_OutOfStock(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	mockEmail := services.NewMockEmailService()
	mockEmail.SetAsMockForTesting()

	user, product := seedCheckoutFixtures(t, db)
	db.Model(&models.Product{}).Where("product_id = ?", product.ProductID).
		Update("stock_status", models.StockOutOfStock)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), PlaceOrder)

	w := placeOrder(router, newAddressBody(product.ProductID, 1))
	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "OUT_OF_STOCK", errorData["code"])

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, 0, mockEmail.TotalDispatched())
}

func TestPlaceOrder_DuplicatePendingRejected(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	mockEmail := services.NewMockEmailService()
	mockEmail.SetAsMockForTesting()

	user, product := seedCheckoutFixtures(t, db)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), PlaceOrder)

	w := placeOrder(router, newAddressBody(product.ProductID, 1))
	assert.Equal(t, http.StatusCreated, w.Code)

	// Second attempt with a different quantity and address still collides
	body := newAddressBody(product.ProductID, 3)
	body["address"] = "99 Other Street"
	w = placeOrder(router, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "DUPLICATE_ORDER", errorData["code"])
	assert.Contains(t, errorData["message"], "pending order for this product")

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.Len(t, mockEmail.NewOrderNotifications, 1)
}

func TestPlaceOrder_DuplicateCheckFailureStopsCheckout(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	mockEmail := services.NewMockEmailService()
	mockEmail.SetAsMockForTesting()

	user, product := seedCheckoutFixtures(t, db)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), PlaceOrder)

	// A broken orders table makes the duplicate lookup fail with something
	// other than "no rows"; the checkout must stop there rather than carry
	// on as if no pending order existed
	if err := db.Migrator().DropTable(&models.Order{}); err != nil {
		t.Fatalf("Failed to drop orders table: %v", err)
	}

	w := placeOrder(router, newAddressBody(product.ProductID, 1))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "DATABASE_ERROR", errorData["code"])

	// The failure happened before any writes or notifications
	var addressCount int64
	db.Model(&models.Address{}).Count(&addressCount)
	assert.Equal(t, int64(0), addressCount)
	assert.Equal(t, 0, mockEmail.TotalDispatched())
}

func TestPlaceOrder_AllowedAgainAfterStatusAdvances(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	services.NewMockEmailService().SetAsMockForTesting()

	user, product := seedCheckoutFixtures(t, db)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), PlaceOrder)

	w := placeOrder(router, newAddressBody(product.ProductID, 1))
	assert.Equal(t, http.StatusCreated, w.Code)

	db.Model(&models.Order{}).Where("user_id = ?", user.ID).
		Update("status", models.StatusOrdered)

	w = placeOrder(router, newAddressBody(product.ProductID, 1))
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestPlaceOrder_SavedAddressPath(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	services.NewMockEmailService().SetAsMockForTesting()

	user, product := seedCheckoutFixtures(t, db)

	saved := models.Address{
		UserID:  user.ID,
		Name:    "Asha Verma",
		Phone:   "9876543210",
		Address: "12 MG Road, Indiranagar",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560038",
	}
	db.Create(&saved)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), PlaceOrder)

	body := map[string]interface{}{
		"product_id": product.ProductID,
		"quantity":   1,
		"address_id": saved.ID,
	}
	w := placeOrder(router, body)
	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	db.First(&order)
	assert.Equal(t, saved.Address, order.ShippingAddress)
	assert.Equal(t, saved.Phone, order.ShippingPhone)

	// No second address row was created
	var count int64
	db.Model(&models.Address{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPlaceOrder_SomeoneElsesAddressRejected(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	services.NewMockEmailService().SetAsMockForTesting()

	user, product := seedCheckoutFixtures(t, db)

	other := models.User{Auth0ID: "auth0|other", Name: "Other", Email: "other@example.com", Role: "customer"}
	db.Create(&other)
	stolen := models.Address{
		UserID:  other.ID,
		Name:    "Other",
		Phone:   "9876543211",
		Address: "1 Main St",
		City:    "Pune",
		State:   "Maharashtra",
		Pincode: "411001",
	}
	db.Create(&stolen)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), PlaceOrder)

	w := placeOrder(router, map[string]interface{}{
		"product_id": product.ProductID,
		"quantity":   1,
		"address_id": stolen.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "ADDRESS_NOT_FOUND", errorData["code"])
}

func TestPlaceOrder_NotificationFailureDoesNotFailCheckout(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	mockEmail := services.NewMockEmailService()
	mockEmail.FailNext = true
	mockEmail.SetAsMockForTesting()

	user, product := seedCheckoutFixtures(t, db)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), PlaceOrder)

	w := placeOrder(router, newAddressBody(product.ProductID, 1))
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 0, mockEmail.TotalDispatched())
}

func TestPlaceOrder_PublishesOrderInsertEvent(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	services.NewMockEmailService().SetAsMockForTesting()
	broker := services.InitRealtimeBroker()
	defer services.SetRealtimeBroker(nil)

	events, cancel := broker.Subscribe(services.OrdersCollection, "")
	defer cancel()

	user, product := seedCheckoutFixtures(t, db)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), PlaceOrder)

	w := placeOrder(router, newAddressBody(product.ProductID, 1))
	assert.Equal(t, http.StatusCreated, w.Code)

	evt := <-events
	assert.Equal(t, services.EventInsert, evt.Event)

	var order models.Order
	db.First(&order)
	assert.Equal(t, fmt.Sprint(order.ID), evt.Key)
}

func TestBeginCheckout(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user, product := seedCheckoutFixtures(t, db)

	router := setupTestRouter()
	router.GET("/checkout/begin", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), BeginCheckout)

	// No saved addresses: new-address form is forced
	req, _ := http.NewRequest(http.MethodGet,
		"/checkout/begin?product_id="+product.ProductID+"&quantity=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.True(t, data["requires_new_address"].(bool))

	quote := data["quote"].(map[string]interface{})
	assert.Equal(t, 300.0, quote["item_total"])
	assert.Equal(t, 0.0, quote["delivery_fee"])
	assert.Equal(t, 300.0, quote["grand_total"])

	// With a saved address the form is optional
	db.Create(&models.Address{UserID: user.ID, Name: "Asha Verma", Phone: "9876543210",
		Address: "12 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560038"})

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	json.Unmarshal(w.Body.Bytes(), &response)
	data = response["data"].(map[string]interface{})
	assert.False(t, data["requires_new_address"].(bool))
	assert.Len(t, data["addresses"].([]interface{}), 1)
}

func TestBeginCheckout_OutOfStock(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user, product := seedCheckoutFixtures(t, db)
	db.Model(&models.Product{}).Where("product_id = ?", product.ProductID).
		Update("stock_status", models.StockOutOfStock)

	router := setupTestRouter()
	router.GET("/checkout/begin", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), BeginCheckout)

	req, _ := http.NewRequest(http.MethodGet, "/checkout/begin?product_id="+product.ProductID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "OUT_OF_STOCK", errorData["code"])
}

func TestBeginCheckout_InvalidQuantity(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user, product := seedCheckoutFixtures(t, db)

	router := setupTestRouter()
	router.GET("/checkout/begin", mockAuthMiddleware(user.Auth0ID, "customer", "tok"), BeginCheckout)

	req, _ := http.NewRequest(http.MethodGet,
		"/checkout/begin?product_id="+product.ProductID+"&quantity=0", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
