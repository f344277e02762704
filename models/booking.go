package models

import "time"

// Booking statuses. PENDING and CONFIRMED hold the table; the
// terminal statuses free the slot and accept no further transitions.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusNoShow    = "NO_SHOW"
)

// DefaultBookingDuration is the reservation length in minutes when
// the cafe settings do not override it.
const DefaultBookingDuration = 120

type Booking struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Reference       string    `gorm:"type:varchar(64);uniqueIndex" json:"reference"`
	CustomerID      uint      `gorm:"not null;index" json:"customerId"`
	Customer        *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TableID         uint      `gorm:"not null;index" json:"tableId"`
	Table           *Table    `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Date            time.Time `gorm:"not null;index" json:"date"`
	Duration        int       `gorm:"not null;default:120" json:"duration"` // minutes
	PartySize       int       `gorm:"not null" json:"partySize"`
	Status          string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	SpecialRequests *string   `gorm:"type:text" json:"specialRequests,omitempty"`
	CreatedAt       time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"not null" json:"updatedAt"`
}

// End returns the exclusive end of the booking window [Date, Date+Duration).
func (b *Booking) End() time.Time {
	return b.Date.Add(time.Duration(b.Duration) * time.Minute)
}

// IsActiveStatus reports whether a status counts toward table conflicts.
func IsActiveStatus(status string) bool {
	return status == BookingStatusPending || status == BookingStatusConfirmed
}

// IsTerminalStatus reports whether a status permits no further transitions.
func IsTerminalStatus(status string) bool {
	switch status {
	case BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow:
		return true
	}
	return false
}

// IsValidStatus reports whether the given string is a known booking status.
func IsValidStatus(status string) bool {
	switch status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled,
		BookingStatusCompleted, BookingStatusNoShow:
		return true
	}
	return false
}

var allowedTransitions = map[string][]string{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusNoShow},
	BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow},
}

// CanTransition reports whether the booking may move to the target status.
func (b *Booking) CanTransition(target string) bool {
	for _, allowed := range allowedTransitions[b.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}
