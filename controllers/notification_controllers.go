package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/cafe-booking/repositories"
	"github.com/yeremiapane/cafe-booking/services"
	"github.com/yeremiapane/cafe-booking/utils"
)

type NotificationController struct {
	Service *services.BookingService
	Store   repositories.EntityStore
}

func NewNotificationController(service *services.BookingService, store repositories.EntityStore) *NotificationController {
	return &NotificationController{Service: service, Store: store}
}

// SendNotification -> renders confirmation/reminder/cancellation
// content for a booking. Actual delivery is handled by the external
// notification worker; this endpoint returns the rendered content.
func (nc *NotificationController) SendNotification(c *gin.Context) {
	var req struct {
		BookingID uint   `json:"bookingId" binding:"required"`
		Type      string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error",
			errors.New("booking id and notification type are required"))
		return
	}

	booking, err := nc.Service.GetBooking(req.BookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	cafeName := ""
	if settings, err := nc.Store.GetSettings(); err == nil {
		cafeName = settings.Name
	}

	notification, err := services.BuildNotification(booking, req.Type, cafeName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Sending %s to %s", notification.Subject, notification.Recipient)

	utils.RespondJSON(c, http.StatusOK, notification.Subject+" sent successfully", gin.H{
		"notification": notification,
		"sentAt":       time.Now().Format(time.RFC3339),
	})
}
