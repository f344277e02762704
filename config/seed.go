package config

import (
	"encoding/json"
	"errors"

	"github.com/yeremiapane/cafe-booking/models"
	"github.com/yeremiapane/cafe-booking/repositories"
)

// EnsureDefaultSettings seeds the cafe profile when none exists yet.
func EnsureDefaultSettings(store repositories.EntityStore) error {
	_, err := store.GetSettings()
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	openingHours, _ := json.Marshal(map[string]models.OpeningWindow{
		"monday":    {Open: "09:00", Close: "22:00"},
		"tuesday":   {Open: "09:00", Close: "22:00"},
		"wednesday": {Open: "09:00", Close: "22:00"},
		"thursday":  {Open: "09:00", Close: "22:00"},
		"friday":    {Open: "09:00", Close: "23:00"},
		"saturday":  {Open: "09:00", Close: "23:00"},
		"sunday":    {Open: "09:00", Close: "21:00"},
	})
	timeSlots, _ := json.Marshal([]string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
		"15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
		"18:00", "18:30", "19:00", "19:30", "20:00", "20:30",
		"21:00", "21:30",
	})

	return store.SaveSettings(&models.CafeSettings{
		Name:            "Cafe Delight",
		Description:     "Fine dining experience with locally-sourced ingredients",
		Address:         "123 Main Street, Downtown",
		Phone:           "(555) 123-4567",
		Email:           "info@cafedelight.com",
		OpeningHours:    string(openingHours),
		MinPartySize:    1,
		MaxPartySize:    10,
		BookingDuration: 120,
		TimeSlots:       string(timeSlots),
		IsActive:        true,
	})
}

// EnsureSampleTables seeds the floor plan when the table set is empty.
func EnsureSampleTables(store repositories.EntityStore) error {
	tables, err := store.GetAllTables(false)
	if err != nil {
		return err
	}
	if len(tables) > 0 {
		return nil
	}

	samples := []models.Table{
		{Number: 1, Capacity: 2, Location: "Window", Description: "Cozy table by the window with natural light", IsActive: true},
		{Number: 2, Capacity: 2, Location: "Window", Description: "Intimate window seating for two", IsActive: true},
		{Number: 3, Capacity: 4, Location: "Center", Description: "Spacious table in the main dining area", IsActive: true},
		{Number: 4, Capacity: 4, Location: "Center", Description: "Comfortable seating for small groups", IsActive: true},
		{Number: 5, Capacity: 6, Location: "Corner", Description: "Large corner table perfect for groups", IsActive: true},
		{Number: 6, Capacity: 8, Location: "Private", Description: "Semi-private dining area for larger parties", IsActive: true},
		{Number: 7, Capacity: 2, Location: "Patio", Description: "Outdoor seating with garden view", IsActive: true},
		{Number: 8, Capacity: 4, Location: "Patio", Description: "Spacious outdoor dining table", IsActive: true},
	}
	for i := range samples {
		if err := store.CreateTable(&samples[i]); err != nil {
			return err
		}
	}
	return nil
}
