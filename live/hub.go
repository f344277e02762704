// Package live pushes booking and table events to connected admin
// dashboard clients over websocket.
package live

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/cafe-booking/models"
)

// Event types
const (
	EventBookingCreate   = "booking_create"
	EventBookingUpdate   = "booking_update"
	EventBookingDelete   = "booking_delete"
	EventTableCreate     = "table_create"
	EventTableUpdate     = "table_update"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dashboard client.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> adds a connection to the set with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> removes and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastBookingCreate -> new booking landed.
func BroadcastBookingCreate(booking models.Booking) {
	broadcast(Message{
		Event: EventBookingCreate,
		Data:  booking,
	})
}

// BroadcastBookingUpdate -> booking status or details changed.
func BroadcastBookingUpdate(booking models.Booking) {
	broadcast(Message{
		Event: EventBookingUpdate,
		Data:  booking,
	})
}

// BroadcastBookingDelete -> booking removed.
func BroadcastBookingDelete(bookingID uint) {
	broadcast(Message{
		Event: EventBookingDelete,
		Data:  map[string]interface{}{"booking_id": bookingID},
	})
}

// BroadcastTableUpdate -> table created or changed, with fresh stats.
func BroadcastTableUpdate(event string, table models.Table, stats interface{}) {
	broadcast(Message{
		Event: event,
		Data: map[string]interface{}{
			"table": table,
			"stats": stats,
		},
	})
}

// BroadcastDashboardUpdate -> refreshed dashboard statistics.
func BroadcastDashboardUpdate(stats interface{}) {
	broadcast(Message{
		Event: EventDashboardUpdate,
		Data:  stats,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("live: failed to marshal message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(hub.clients, conn)
		}
	}
}
