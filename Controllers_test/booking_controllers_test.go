package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/cafe-booking/controllers"
	"github.com/yeremiapane/cafe-booking/repositories"
	"github.com/yeremiapane/cafe-booking/services"
)

func setupBookingRouter(store repositories.EntityStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := services.NewBookingService(store, nil)
	bookingCtrl := controllers.NewBookingController(service, store)

	router := gin.New()
	router.POST("/bookings", bookingCtrl.CreateBooking)
	router.GET("/bookings", bookingCtrl.GetBookings)
	router.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
	router.PATCH("/bookings/:booking_id", bookingCtrl.UpdateBooking)
	router.DELETE("/bookings/:booking_id", bookingCtrl.DeleteBooking)
	return router
}

func postBooking(t *testing.T, router *gin.Engine, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/bookings", bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func bookingPayload(tableID uint, date string) map[string]interface{} {
	return map[string]interface{}{
		"customerName":  "Jane Doe",
		"customerEmail": "jane@example.com",
		"date":          date,
		"partySize":     2,
		"tableId":       tableID,
	}
}

func TestCreateBookingEndpoint(t *testing.T) {
	store := setupTestStore(t)
	table := seedTable(t, store, 3, 4, true)
	router := setupBookingRouter(store)

	w := postBooking(t, router, bookingPayload(table.ID, "2024-06-01T19:00:00Z"))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Booking created successfully", response["message"])

	data := response["data"].(map[string]interface{})
	assert.NotZero(t, data["bookingId"])
	booking := data["booking"].(map[string]interface{})
	assert.Equal(t, float64(3), booking["tableNumber"])
	assert.Equal(t, "Jane Doe", booking["customerName"])
	assert.Equal(t, "PENDING", booking["status"])
}

func TestCreateBookingEndpointMissingFields(t *testing.T) {
	store := setupTestStore(t)
	seedTable(t, store, 3, 4, true)
	router := setupBookingRouter(store)

	w := postBooking(t, router, map[string]interface{}{
		"customerName": "Jane Doe",
		"partySize":    2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "validation_error", response["code"])
}

func TestCreateBookingEndpointConflict(t *testing.T) {
	store := setupTestStore(t)
	table := seedTable(t, store, 3, 4, true)
	router := setupBookingRouter(store)

	w := postBooking(t, router, bookingPayload(table.ID, "2024-06-01T19:00:00Z"))
	assert.Equal(t, http.StatusCreated, w.Code)

	// Overlapping window on the same table
	overlap := bookingPayload(table.ID, "2024-06-01T19:30:00Z")
	overlap["customerEmail"] = "second@example.com"
	w = postBooking(t, router, overlap)
	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "conflict", response["code"])

	// Boundary-touching window is fine
	boundary := bookingPayload(table.ID, "2024-06-01T21:00:00Z")
	boundary["customerEmail"] = "third@example.com"
	w = postBooking(t, router, boundary)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateBookingEndpointCapacity(t *testing.T) {
	store := setupTestStore(t)
	table := seedTable(t, store, 1, 2, true)
	router := setupBookingRouter(store)

	payload := bookingPayload(table.ID, "2024-06-01T19:00:00Z")
	payload["partySize"] = 4
	w := postBooking(t, router, payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The failed create must leave the store untouched
	bookings, err := store.GetAllBookings(0)
	assert.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestUpdateBookingEndpointTransitions(t *testing.T) {
	store := setupTestStore(t)
	table := seedTable(t, store, 3, 4, true)
	router := setupBookingRouter(store)

	w := postBooking(t, router, bookingPayload(table.ID, "2024-06-01T19:00:00Z"))
	assert.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	bookingID := created["data"].(map[string]interface{})["bookingId"].(float64)

	patch := func(payload map[string]interface{}) *httptest.ResponseRecorder {
		body, err := json.Marshal(payload)
		assert.NoError(t, err)
		req, err := http.NewRequest("PATCH", fmt.Sprintf("/bookings/%d", int(bookingID)), bytes.NewBuffer(body))
		assert.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// PENDING -> COMPLETED is not a legal transition
	w = patch(map[string]interface{}{"status": "COMPLETED"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "invalid_transition", response["code"])

	w = patch(map[string]interface{}{"status": "CONFIRMED", "specialRequests": "window seat please"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "CONFIRMED", data["status"])
	assert.Equal(t, "window seat please", data["specialRequests"])
}

func TestDeleteBookingEndpointNotFound(t *testing.T) {
	store := setupTestStore(t)
	router := setupBookingRouter(store)

	req, err := http.NewRequest("DELETE", "/bookings/999", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "not_found", response["code"])
}

func TestGetBookingsEndpointFilters(t *testing.T) {
	store := setupTestStore(t)
	table := seedTable(t, store, 3, 4, true)
	router := setupBookingRouter(store)

	w := postBooking(t, router, bookingPayload(table.ID, "2024-06-01T19:00:00Z"))
	assert.Equal(t, http.StatusCreated, w.Code)
	other := bookingPayload(table.ID, "2024-06-02T19:00:00Z")
	other["customerEmail"] = "second@example.com"
	w = postBooking(t, router, other)
	assert.Equal(t, http.StatusCreated, w.Code)

	get := func(url string) (*httptest.ResponseRecorder, map[string]interface{}) {
		req, err := http.NewRequest("GET", url, nil)
		assert.NoError(t, err)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return w, response
	}

	// Single day filter
	w, response := get("/bookings?date=2024-06-01")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 1)

	// Range filter covers both days
	w, response = get("/bookings?startDate=2024-06-01&endDate=2024-06-02")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 2)

	// Customer filter
	w, response = get("/bookings?email=second@example.com")
	assert.Equal(t, http.StatusOK, w.Code)
	customer := response["data"].(map[string]interface{})
	assert.Equal(t, "second@example.com", customer["email"])

	// Unknown customer
	w, _ = get("/bookings?email=nobody@example.com")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unfiltered returns the most recent first
	w, response = get("/bookings")
	assert.Equal(t, http.StatusOK, w.Code)
	bookings := response["data"].([]interface{})
	assert.Len(t, bookings, 2)
	first := bookings[0].(map[string]interface{})
	assert.Contains(t, first["date"], "2024-06-02")
}
