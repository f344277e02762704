package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/cafe-booking/services"
	"github.com/yeremiapane/cafe-booking/utils"
)

// respondServiceError translates the booking core's failure taxonomy
// into HTTP status codes and semantic error codes.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondErrorCode(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondErrorCode(c, http.StatusUnprocessableEntity, "invalid_transition", err)
	case errors.Is(err, services.ErrConflict):
		utils.RespondErrorCode(c, http.StatusConflict, "conflict", err)
	default:
		utils.RespondErrorCode(c, http.StatusInternalServerError, "internal_error", err)
	}
}
