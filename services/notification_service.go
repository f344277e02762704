package services

import (
	"fmt"

	"github.com/yeremiapane/cafe-booking/models"
)

// Notification types accepted by BuildNotification.
const (
	NotificationConfirmation = "confirmation"
	NotificationReminder     = "reminder"
	NotificationCancellation = "cancellation"
)

// Notification is rendered message content for a booking. Delivery is
// an external concern; the core only produces the content.
type Notification struct {
	Type      string `json:"type"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Content   string `json:"content"`
}

// BuildNotification renders customer-facing message content for a
// booking. The booking must carry its customer and table.
func BuildNotification(booking *models.Booking, notificationType string, cafeName string) (*Notification, error) {
	if booking.Customer == nil || booking.Table == nil {
		return nil, fmt.Errorf("%w: booking is missing customer or table", ErrValidation)
	}
	if cafeName == "" {
		cafeName = "our cafe"
	}

	date := booking.Date.Format("Monday, 2 January 2006")
	clock := booking.Date.Format("15:04")

	details := fmt.Sprintf("- Date: %s\n- Time: %s\n- Table: %d\n- Party Size: %d",
		date, clock, booking.Table.Number, booking.PartySize)

	var subject, body string
	switch notificationType {
	case NotificationConfirmation:
		subject = "Booking Confirmation"
		body = fmt.Sprintf(
			"Dear %s,\n\nYour table reservation at %s has been confirmed!\n\nBooking Details:\n%s\n- Booking Reference: %s\n\nWe look forward to serving you!\n\nBest regards,\n%s Team",
			booking.Customer.Name, cafeName, details, booking.Reference, cafeName)
	case NotificationReminder:
		subject = "Booking Reminder"
		body = fmt.Sprintf(
			"Dear %s,\n\nThis is a friendly reminder about your upcoming reservation at %s.\n\nBooking Details:\n%s\n\nPlease arrive on time. If you need to cancel or modify your reservation, please contact us.\n\nBest regards,\n%s Team",
			booking.Customer.Name, cafeName, details, cafeName)
	case NotificationCancellation:
		subject = "Booking Cancellation"
		body = fmt.Sprintf(
			"Dear %s,\n\nYour booking at %s has been cancelled as requested.\n\nCancelled Booking Details:\n%s\n- Booking Reference: %s\n\nWe hope to see you again soon!\n\nBest regards,\n%s Team",
			booking.Customer.Name, cafeName, details, booking.Reference, cafeName)
	default:
		return nil, fmt.Errorf("%w: invalid notification type %q", ErrValidation, notificationType)
	}

	return &Notification{
		Type:      notificationType,
		Recipient: booking.Customer.Email,
		Subject:   subject,
		Content:   body,
	}, nil
}
