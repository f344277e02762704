package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/cafe-booking/live"
	"github.com/yeremiapane/cafe-booking/utils"
)

type DashboardController struct {
	Booking *BookingController
}

func NewDashboardController(booking *BookingController) *DashboardController {
	return &DashboardController{Booking: booking}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Stats -> point-in-time dashboard statistics.
func (dc *DashboardController) Stats(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", dc.Booking.getDashboardStats())
}

// Stream -> upgrades to websocket and registers the admin client for
// live booking and table events. The connection is read-pumped only to
// detect closes; all traffic flows server to client.
func (dc *DashboardController) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	role, _ := c.Get("role")
	roleStr, _ := role.(string)
	live.RegisterClient(conn, roleStr)

	// Initial state so the dashboard renders without waiting for an event.
	live.BroadcastDashboardUpdate(dc.Booking.getDashboardStats())

	go func() {
		defer live.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
