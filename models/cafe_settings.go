package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// CafeSettings is read-mostly configuration consumed by booking
// validation. OpeningHours and TimeSlots are stored as JSON text so a
// key-value backend can hold them unchanged.
type CafeSettings struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Description     string    `gorm:"type:varchar(255)" json:"description"`
	Address         string    `gorm:"type:varchar(255)" json:"address"`
	Phone           string    `gorm:"type:varchar(50)" json:"phone"`
	Email           string    `gorm:"type:varchar(255)" json:"email"`
	OpeningHours    string    `gorm:"type:text" json:"openingHours"`
	MinPartySize    int       `gorm:"not null;default:1" json:"minPartySize"`
	MaxPartySize    int       `gorm:"not null;default:10" json:"maxPartySize"`
	BookingDuration int       `gorm:"not null;default:120" json:"bookingDuration"` // minutes
	TimeSlots       string    `gorm:"type:text" json:"timeSlots"`
	IsActive        bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt       time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"not null" json:"updatedAt"`
}

// OpeningWindow is one day's open/close pair in "15:04" form.
type OpeningWindow struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// ParsedTimeSlots decodes the TimeSlots JSON list ("HH:MM" strings).
// An empty or malformed list means no slot restriction.
func (s *CafeSettings) ParsedTimeSlots() []string {
	if s.TimeSlots == "" {
		return nil
	}
	var slots []string
	if err := json.Unmarshal([]byte(s.TimeSlots), &slots); err != nil {
		return nil
	}
	return slots
}

// ParsedOpeningHours decodes the per-weekday opening hours map keyed
// by lowercase weekday name ("monday".."sunday").
func (s *CafeSettings) ParsedOpeningHours() map[string]OpeningWindow {
	if s.OpeningHours == "" {
		return nil
	}
	var hours map[string]OpeningWindow
	if err := json.Unmarshal([]byte(s.OpeningHours), &hours); err != nil {
		return nil
	}
	return hours
}

// IsValidSlot reports whether t falls on one of the configured time
// slots. Always true when no slots are configured.
func (s *CafeSettings) IsValidSlot(t time.Time) bool {
	slots := s.ParsedTimeSlots()
	if len(slots) == 0 {
		return true
	}
	hhmm := t.Format("15:04")
	for _, slot := range slots {
		if slot == hhmm {
			return true
		}
	}
	return false
}

// WithinOpeningHours reports whether the whole window [t, t+duration)
// fits inside that weekday's opening hours. Always true when opening
// hours are not configured for the day.
func (s *CafeSettings) WithinOpeningHours(t time.Time, durationMinutes int) bool {
	hours := s.ParsedOpeningHours()
	if hours == nil {
		return true
	}
	day := strings.ToLower(t.Weekday().String())
	window, ok := hours[day]
	if !ok {
		return true
	}
	open, err1 := minutesOfDay(window.Open)
	close, err2 := minutesOfDay(window.Close)
	if err1 != nil || err2 != nil {
		return true
	}
	start := t.Hour()*60 + t.Minute()
	end := start + durationMinutes
	return start >= open && end <= close
}

func minutesOfDay(hhmm string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	return h*60 + m, nil
}
