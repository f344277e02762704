package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status bool   `json:"status"`
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorResponse{
		Status: false,
		Error:  err.Error(),
	})
}

// RespondErrorCode attaches a semantic code so clients can branch on
// the failure kind instead of parsing the message.
func RespondErrorCode(c *gin.Context, code int, semantic string, err error) {
	c.JSON(code, ErrorResponse{
		Status: false,
		Error:  err.Error(),
		Code:   semantic,
	})
}
