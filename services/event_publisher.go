package services

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/yeremiapane/cafe-booking/utils"
)

// Booking event types published to the message queue for downstream
// consumers (e.g. the notification worker).
const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
	EventBookingDeleted = "booking.deleted"
)

// bookingEventsQueue is the durable queue all booking events land on.
const bookingEventsQueue = "booking.events"

type BookingEvent struct {
	Type      string    `json:"type"`
	BookingID uint      `json:"bookingId"`
	Reference string    `json:"reference"`
	TableID   uint      `json:"tableId"`
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
}

// EventPublisher pushes booking lifecycle events to an external
// broker. The booking service treats publish failures as non-fatal.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
}

// AMQPPublisher publishes booking events to RabbitMQ. Connections are
// dialed per publish so a broker restart never wedges the service;
// booking traffic is far too low for this to matter.
type AMQPPublisher struct {
	URL string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url}
}

func (p *AMQPPublisher) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		utils.ErrorLogger.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		utils.ErrorLogger.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(bookingEventsQueue, true, false, false, false, nil); err != nil {
		utils.ErrorLogger.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", bookingEventsQueue, false, false, pub); err != nil {
		utils.ErrorLogger.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
