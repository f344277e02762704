package services

import (
	"sort"
	"time"

	"github.com/yeremiapane/cafe-booking/models"
)

// Overlaps reports whether two half-open windows [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not conflict: a
// booking ending at 19:00 leaves the table free for one starting at
// 19:00.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// IsTableAvailable decides whether a table can take a booking of the
// given window and party size. Pure function: the caller supplies the
// existing bookings held against the table. Bookings in a terminal
// status do not block the slot.
func IsTableAvailable(table models.Table, start time.Time, durationMinutes int, partySize int, existing []models.Booking) bool {
	if !table.IsActive {
		return false
	}
	if table.Capacity < partySize {
		return false
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, booking := range existing {
		if booking.TableID != table.ID {
			continue
		}
		if !models.IsActiveStatus(booking.Status) {
			continue
		}
		if Overlaps(start, end, booking.Date, booking.End()) {
			return false
		}
	}
	return true
}

// AvailableTables filters tables down to those free for the window and
// party size, ordered by table number ascending so the selection UI is
// deterministic.
func AvailableTables(tables []models.Table, start time.Time, durationMinutes int, partySize int, bookings []models.Booking) []models.Table {
	available := make([]models.Table, 0, len(tables))
	for _, table := range tables {
		if IsTableAvailable(table, start, durationMinutes, partySize, bookings) {
			available = append(available, table)
		}
	}
	sort.Slice(available, func(i, j int) bool { return available[i].Number < available[j].Number })
	return available
}
