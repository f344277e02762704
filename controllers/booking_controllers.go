package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/cafe-booking/live"
	"github.com/yeremiapane/cafe-booking/models"
	"github.com/yeremiapane/cafe-booking/repositories"
	"github.com/yeremiapane/cafe-booking/services"
	"github.com/yeremiapane/cafe-booking/utils"
)

type BookingController struct {
	Service *services.BookingService
	Store   repositories.EntityStore
}

func NewBookingController(service *services.BookingService, store repositories.EntityStore) *BookingController {
	return &BookingController{Service: service, Store: store}
}

// parseDateTime accepts the formats the booking UI sends.
func parseDateTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

// CreateBooking -> public booking submission from the step wizard.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req struct {
		CustomerName    string `json:"customerName"`
		CustomerEmail   string `json:"customerEmail"`
		CustomerPhone   string `json:"customerPhone"`
		Date            string `json:"date"`
		PartySize       int    `json:"partySize"`
		TableID         uint   `json:"tableId"`
		SpecialRequests string `json:"specialRequests"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	if req.CustomerName == "" || req.CustomerEmail == "" || req.Date == "" ||
		req.PartySize == 0 || req.TableID == 0 {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error",
			errors.New("missing required fields"))
		return
	}

	date, err := parseDateTime(req.Date)
	if err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	booking, err := bc.Service.CreateBooking(services.CreateBookingInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Date:            date,
		PartySize:       req.PartySize,
		TableID:         req.TableID,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	live.BroadcastBookingCreate(*booking)
	live.BroadcastDashboardUpdate(bc.getDashboardStats())

	utils.RespondJSON(c, http.StatusCreated, "Booking created successfully", gin.H{
		"bookingId": booking.ID,
		"booking": gin.H{
			"id":           booking.ID,
			"reference":    booking.Reference,
			"date":         booking.Date,
			"tableNumber":  booking.Table.Number,
			"customerName": booking.Customer.Name,
			"status":       booking.Status,
		},
	})
}

// GetBookings -> admin listing with filters: ?date=, ?startDate=&endDate=,
// ?email=. Unfiltered calls return the 50 most recent.
func (bc *BookingController) GetBookings(c *gin.Context) {
	if startStr, endStr := c.Query("startDate"), c.Query("endDate"); startStr != "" && endStr != "" {
		start, err1 := parseDate(startStr)
		end, err2 := parseDate(endStr)
		if err1 != nil || err2 != nil {
			utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error",
				errors.New("startDate and endDate must be YYYY-MM-DD"))
			return
		}
		bookings, err := bc.Service.ListByRange(start, end.AddDate(0, 0, 1))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Bookings in range", bookings)
		return
	}

	if dateStr := c.Query("date"); dateStr != "" {
		day, err := parseDate(dateStr)
		if err != nil {
			utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error",
				errors.New("date must be YYYY-MM-DD"))
			return
		}
		bookings, err := bc.Service.ListByDate(day)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Bookings for date", bookings)
		return
	}

	if email := c.Query("email"); email != "" {
		customer, bookings, err := bc.Service.ListByCustomerEmail(email)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		customer.Bookings = bookings
		utils.RespondJSON(c, http.StatusOK, "Customer bookings", customer)
		return
	}

	bookings, err := bc.Service.ListRecent()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// GetBookingByID -> one booking with customer and table embedded.
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	id, err := parseID(c.Param("booking_id"))
	if err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	booking, err := bc.Service.GetBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// UpdateBooking -> admin status transition and/or field overrides.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id, err := parseID(c.Param("booking_id"))
	if err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	var req struct {
		Status          *string `json:"status"`
		SpecialRequests *string `json:"specialRequests"`
		PartySize       *int    `json:"partySize"`
		Date            *string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	input := services.UpdateBookingInput{
		Status:          req.Status,
		SpecialRequests: req.SpecialRequests,
		PartySize:       req.PartySize,
	}
	if req.Date != nil {
		date, err := parseDateTime(*req.Date)
		if err != nil {
			utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
			return
		}
		input.Date = &date
	}

	booking, err := bc.Service.UpdateBooking(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	live.BroadcastBookingUpdate(*booking)
	live.BroadcastDashboardUpdate(bc.getDashboardStats())

	utils.RespondJSON(c, http.StatusOK, "Booking updated successfully", booking)
}

// DeleteBooking -> removes the booking; customer and table stay.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, err := parseID(c.Param("booking_id"))
	if err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	if err := bc.Service.DeleteBooking(id); err != nil {
		respondServiceError(c, err)
		return
	}

	live.BroadcastBookingDelete(id)
	live.BroadcastDashboardUpdate(bc.getDashboardStats())

	utils.RespondJSON(c, http.StatusOK, "Booking deleted successfully", gin.H{"id": id})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

// getDashboardStats counts today's bookings per status plus the active
// table count for the admin dashboard.
func (bc *BookingController) getDashboardStats() map[string]interface{} {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	byStatus := map[string]int{}
	today, err := bc.Store.GetBookingsByDateRange(dayStart, dayStart.AddDate(0, 0, 1))
	if err == nil {
		for _, b := range today {
			byStatus[b.Status]++
		}
	}

	activeTables := 0
	if tables, err := bc.Store.GetAllTables(true); err == nil {
		activeTables = len(tables)
	}

	return map[string]interface{}{
		"todayTotal":   len(today),
		"pending":      byStatus[models.BookingStatusPending],
		"confirmed":    byStatus[models.BookingStatusConfirmed],
		"cancelled":    byStatus[models.BookingStatusCancelled],
		"completed":    byStatus[models.BookingStatusCompleted],
		"noShow":       byStatus[models.BookingStatusNoShow],
		"activeTables": activeTables,
	}
}
