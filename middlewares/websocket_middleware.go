package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/cafe-booking/utils"
)

// WebSocketAuthMiddleware authenticates dashboard websocket upgrades.
// Browsers cannot set headers on websocket requests, so the token
// rides in a query parameter.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}
