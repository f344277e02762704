package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/cafe-booking/config"
	"github.com/yeremiapane/cafe-booking/models"
	"github.com/yeremiapane/cafe-booking/repositories"
	"github.com/yeremiapane/cafe-booking/router"
	"github.com/yeremiapane/cafe-booking/services"
	"github.com/yeremiapane/cafe-booking/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Setenv("ADMIN_USERNAME", "admin")
	os.Setenv("ADMIN_PASSWORD", "secret123")
	os.Exit(m.Run())
}

// TestBookingFlowIntegration walks the main flow end to end:
// 1. Login -> token
// 2. Guest creates a booking
// 3. A second booking for the same table and time is rejected
// 4. Admin confirms the booking
// 5. Admin lists bookings for the day
// 6. Admin cancels the booking and the slot opens up again
func TestBookingFlowIntegration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := setupIntegrationStore()
	service := services.NewBookingService(store, nil)
	r := router.SetupRouter(store, service, nil)

	token := loginTest(t, r)

	bookingID := createBookingTest(t, r)
	conflictBookingTest(t, r)
	confirmBookingTest(t, r, bookingID, token)
	listBookingsTest(t, r, token, bookingID)
	cancelAndRebookTest(t, r, bookingID, token)
}

// setupIntegrationStore -> SQLite in-memory schema plus the default
// settings and sample tables used in a fresh install.
func setupIntegrationStore() repositories.EntityStore {
	db, err := gorm.Open(sqlite.Open("file:integration_test?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Table{},
		&models.Booking{},
		&models.CafeSettings{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	store := repositories.NewGormStore(db)
	if err := config.EnsureDefaultSettings(store); err != nil {
		log.Fatalf("failed to seed settings: %v", err)
	}
	if err := config.EnsureSampleTables(store); err != nil {
		log.Fatalf("failed to seed tables: %v", err)
	}
	return store
}

func loginTest(t *testing.T, r *gin.Engine) string {
	body := map[string]string{
		"username": "admin",
		"password": "secret123",
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/auth", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("loginTest fail: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	if !resp.Status {
		t.Fatalf("loginTest: status=false, msg=%s", resp.Message)
	}
	if resp.Data.Token == "" {
		t.Fatalf("loginTest: token empty")
	}
	return resp.Data.Token
}

func postBookingRequest(t *testing.T, r *gin.Engine, email string) *httptest.ResponseRecorder {
	bodyData := map[string]interface{}{
		"customerName":  "Jane Doe",
		"customerEmail": email,
		"date":          "2024-06-01T19:00",
		"partySize":     2,
		"tableId":       1,
	}
	bodyBytes, _ := json.Marshal(bodyData)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// createBookingTest -> POST /api/bookings => 201 => status PENDING
func createBookingTest(t *testing.T, r *gin.Engine) uint {
	w := postBookingRequest(t, r, "jane@example.com")
	if w.Code != http.StatusCreated {
		t.Fatalf("createBookingTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			BookingID uint `json:"bookingId"`
			Booking   struct {
				Status       string `json:"status"`
				TableNumber  int    `json:"tableNumber"`
				CustomerName string `json:"customerName"`
			} `json:"booking"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status {
		t.Fatalf("createBookingTest: status=false, body=%s", w.Body.String())
	}
	if resp.Data.Booking.Status != models.BookingStatusPending {
		t.Fatalf("createBookingTest: expected status PENDING, got %s", resp.Data.Booking.Status)
	}
	if resp.Data.BookingID == 0 {
		t.Fatalf("createBookingTest: booking id empty")
	}
	return resp.Data.BookingID
}

// conflictBookingTest -> the same table and window is taken => 409
func conflictBookingTest(t *testing.T, r *gin.Engine) {
	w := postBookingRequest(t, r, "second@example.com")
	if w.Code != http.StatusConflict {
		t.Fatalf("conflictBookingTest: expected 409, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Code string `json:"code"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != "conflict" {
		t.Fatalf("conflictBookingTest: expected code 'conflict', got %s", resp.Code)
	}
}

// confirmBookingTest -> PATCH status => CONFIRMED
func confirmBookingTest(t *testing.T, r *gin.Engine, bookingID uint, token string) {
	bodyData := map[string]interface{}{"status": models.BookingStatusConfirmed}
	bodyBytes, _ := json.Marshal(bodyData)

	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/bookings/%d", bookingID), bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("confirmBookingTest: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Status != models.BookingStatusConfirmed {
		t.Fatalf("confirmBookingTest: expected CONFIRMED, got %s", resp.Data.Status)
	}
}

// listBookingsTest -> GET /api/bookings?date= includes the booking
func listBookingsTest(t *testing.T, r *gin.Engine, token string, bookingID uint) {
	req := httptest.NewRequest(http.MethodGet, "/api/bookings?date=2024-06-01", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("listBookingsTest: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   []struct {
			ID     uint   `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 1 {
		t.Fatalf("listBookingsTest: expected exactly 1 booking, body=%s", w.Body.String())
	}
	if resp.Data[0].ID != bookingID {
		t.Fatalf("listBookingsTest: expected booking %d, got %d", bookingID, resp.Data[0].ID)
	}
	if resp.Data[0].Status != models.BookingStatusConfirmed {
		t.Fatalf("listBookingsTest: expected CONFIRMED, got %s", resp.Data[0].Status)
	}
}

// cancelAndRebookTest -> CONFIRMED -> CANCELLED frees the slot
func cancelAndRebookTest(t *testing.T, r *gin.Engine, bookingID uint, token string) {
	bodyData := map[string]interface{}{"status": models.BookingStatusCancelled}
	bodyBytes, _ := json.Marshal(bodyData)

	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/bookings/%d", bookingID), bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("cancelAndRebookTest: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	// The window is free again, so the earlier conflicting request succeeds
	w = postBookingRequest(t, r, "second@example.com")
	if w.Code != http.StatusCreated {
		t.Fatalf("cancelAndRebookTest: expected 201 after cancel, got %d, body=%s", w.Code, w.Body.String())
	}
}
