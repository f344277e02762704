package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/cafe-booking/repositories"
	"github.com/yeremiapane/cafe-booking/utils"
)

type SettingsController struct {
	Store repositories.EntityStore
}

func NewSettingsController(store repositories.EntityStore) *SettingsController {
	return &SettingsController{Store: store}
}

// GetSettings -> the cafe profile driving booking validation.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, err := sc.Store.GetSettings()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondErrorCode(c, http.StatusNotFound, "not_found", err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cafe settings", settings)
}

// UpdateSettings -> partial admin edit of the cafe profile.
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var req struct {
		Name            *string `json:"name"`
		Description     *string `json:"description"`
		Address         *string `json:"address"`
		Phone           *string `json:"phone"`
		Email           *string `json:"email"`
		OpeningHours    *string `json:"openingHours"`
		MinPartySize    *int    `json:"minPartySize"`
		MaxPartySize    *int    `json:"maxPartySize"`
		BookingDuration *int    `json:"bookingDuration"`
		TimeSlots       *string `json:"timeSlots"`
		IsActive        *bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	settings, err := sc.Store.GetSettings()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondErrorCode(c, http.StatusNotFound, "not_found", err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if req.Name != nil {
		settings.Name = *req.Name
	}
	if req.Description != nil {
		settings.Description = *req.Description
	}
	if req.Address != nil {
		settings.Address = *req.Address
	}
	if req.Phone != nil {
		settings.Phone = *req.Phone
	}
	if req.Email != nil {
		settings.Email = *req.Email
	}
	if req.OpeningHours != nil {
		settings.OpeningHours = *req.OpeningHours
	}
	if req.MinPartySize != nil {
		settings.MinPartySize = *req.MinPartySize
	}
	if req.MaxPartySize != nil {
		settings.MaxPartySize = *req.MaxPartySize
	}
	if req.BookingDuration != nil {
		if *req.BookingDuration < 1 {
			utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error",
				errors.New("bookingDuration must be at least 1 minute"))
			return
		}
		settings.BookingDuration = *req.BookingDuration
	}
	if req.TimeSlots != nil {
		settings.TimeSlots = *req.TimeSlots
	}
	if req.IsActive != nil {
		settings.IsActive = *req.IsActive
	}

	if settings.MinPartySize < 1 || settings.MaxPartySize < settings.MinPartySize {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error",
			errors.New("party size bounds are inconsistent"))
		return
	}

	if err := sc.Store.SaveSettings(settings); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Cafe settings updated")
	utils.RespondJSON(c, http.StatusOK, "Settings updated successfully", settings)
}
