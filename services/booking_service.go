package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yeremiapane/cafe-booking/models"
	"github.com/yeremiapane/cafe-booking/repositories"
	"github.com/yeremiapane/cafe-booking/utils"
)

// BookingService orchestrates the booking lifecycle: customer
// resolution, availability checking and status transitions. It owns a
// per-table lock so two concurrent create requests for the same table
// cannot both pass the overlap check.
type BookingService struct {
	store      repositories.EntityStore
	publisher  EventPublisher
	tableLocks sync.Map // table id -> *sync.Mutex
}

func NewBookingService(store repositories.EntityStore, publisher EventPublisher) *BookingService {
	return &BookingService{store: store, publisher: publisher}
}

type CreateBookingInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Date            time.Time
	PartySize       int
	TableID         uint
	SpecialRequests string
	// DurationMinutes overrides the configured default when > 0.
	DurationMinutes int
}

type UpdateBookingInput struct {
	Status          *string
	SpecialRequests *string
	PartySize       *int
	Date            *time.Time
}

func mapStoreErr(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

func (s *BookingService) lockTable(tableID uint) *sync.Mutex {
	v, _ := s.tableLocks.LoadOrStore(tableID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// CreateBooking validates the request, finds or creates the customer
// by email, checks table activity, capacity and overlap, and persists
// a PENDING booking. Nothing is written when any gate fails.
func (s *BookingService) CreateBooking(input CreateBookingInput) (*models.Booking, error) {
	if strings.TrimSpace(input.CustomerName) == "" ||
		strings.TrimSpace(input.CustomerEmail) == "" ||
		input.Date.IsZero() || input.PartySize == 0 || input.TableID == 0 {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if input.PartySize < 0 || input.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: party size and duration must be positive", ErrValidation)
	}

	settings, err := s.store.GetSettings()
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, mapStoreErr(err)
	}

	duration := input.DurationMinutes
	if duration == 0 {
		duration = models.DefaultBookingDuration
		if settings != nil && settings.BookingDuration > 0 {
			duration = settings.BookingDuration
		}
	}

	if settings != nil {
		if input.PartySize < settings.MinPartySize || input.PartySize > settings.MaxPartySize {
			return nil, fmt.Errorf("%w: party size must be between %d and %d",
				ErrValidation, settings.MinPartySize, settings.MaxPartySize)
		}
		if !settings.IsValidSlot(input.Date) {
			return nil, fmt.Errorf("%w: requested time is not a bookable slot", ErrValidation)
		}
		if !settings.WithinOpeningHours(input.Date, duration) {
			return nil, fmt.Errorf("%w: requested time is outside opening hours", ErrValidation)
		}
	}

	customer, err := s.resolveCustomer(input)
	if err != nil {
		return nil, err
	}

	table, err := s.store.GetTableByID(input.TableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: table %d", ErrNotFound, input.TableID)
		}
		return nil, mapStoreErr(err)
	}
	if !table.IsActive {
		return nil, fmt.Errorf("%w: selected table is not available", ErrConflict)
	}
	if table.Capacity < input.PartySize {
		return nil, fmt.Errorf("%w: selected table cannot accommodate the party size", ErrConflict)
	}

	// Serialize the check-then-insert per table so two requests cannot
	// both see the slot as free.
	lock := s.lockTable(table.ID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.store.GetBookingsByTable(table.ID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !IsTableAvailable(*table, input.Date, duration, input.PartySize, existing) {
		return nil, fmt.Errorf("%w: selected table is already booked for the requested time", ErrConflict)
	}

	booking := &models.Booking{
		Reference:  uuid.NewString(),
		CustomerID: customer.ID,
		TableID:    table.ID,
		Date:       input.Date,
		Duration:   duration,
		PartySize:  input.PartySize,
		Status:     models.BookingStatusPending,
	}
	if requests := strings.TrimSpace(input.SpecialRequests); requests != "" {
		booking.SpecialRequests = &requests
	}

	if err := s.store.CreateBooking(booking); err != nil {
		return nil, mapStoreErr(err)
	}

	booking.Customer = customer
	booking.Table = table

	utils.InfoLogger.Printf("Booking %s created: table %d, %s, party of %d",
		booking.Reference, table.Number, booking.Date.Format(time.RFC3339), booking.PartySize)
	s.publish(EventBookingCreated, booking)

	return booking, nil
}

// resolveCustomer looks a customer up by email and creates one when
// absent. Idempotent: a duplicate-key race falls back to the lookup,
// so repeating an email never yields two customers.
func (s *BookingService) resolveCustomer(input CreateBookingInput) (*models.Customer, error) {
	customer, err := s.store.GetCustomerByEmail(input.CustomerEmail)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, mapStoreErr(err)
	}

	customer = &models.Customer{
		Name:  input.CustomerName,
		Email: input.CustomerEmail,
	}
	if phone := strings.TrimSpace(input.CustomerPhone); phone != "" {
		customer.Phone = &phone
	}
	if err := s.store.CreateCustomer(customer); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return s.store.GetCustomerByEmail(input.CustomerEmail)
		}
		return nil, mapStoreErr(err)
	}
	return customer, nil
}

// UpdateBooking applies status and/or field changes to an existing
// booking. Status changes go through the transition table; other
// fields are admin overrides and deliberately skip re-running the
// availability check.
func (s *BookingService) UpdateBooking(id uint, input UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.store.GetBookingByID(id)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if input.Status != nil {
		target := *input.Status
		if !models.IsValidStatus(target) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, target)
		}
		if !booking.CanTransition(target) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
		}
		booking.Status = target
	}
	if input.SpecialRequests != nil {
		if requests := strings.TrimSpace(*input.SpecialRequests); requests == "" {
			booking.SpecialRequests = nil
		} else {
			booking.SpecialRequests = &requests
		}
	}
	if input.PartySize != nil {
		if *input.PartySize < 1 {
			return nil, fmt.Errorf("%w: party size must be at least 1", ErrValidation)
		}
		booking.PartySize = *input.PartySize
	}
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, fmt.Errorf("%w: invalid date", ErrValidation)
		}
		booking.Date = *input.Date
	}

	if err := s.store.UpdateBooking(booking); err != nil {
		return nil, mapStoreErr(err)
	}

	utils.InfoLogger.Printf("Booking %d updated (status=%s)", booking.ID, booking.Status)
	s.publish(EventBookingUpdated, booking)

	return booking, nil
}

// DeleteBooking removes the record. Customer and table are untouched.
func (s *BookingService) DeleteBooking(id uint) error {
	booking, err := s.store.GetBookingByID(id)
	if err != nil {
		return mapStoreErr(err)
	}
	if err := s.store.DeleteBooking(id); err != nil {
		return mapStoreErr(err)
	}

	utils.InfoLogger.Printf("Booking %d deleted", id)
	s.publish(EventBookingDeleted, booking)
	return nil
}

// GetBooking returns one booking with customer and table embedded.
func (s *BookingService) GetBooking(id uint) (*models.Booking, error) {
	booking, err := s.store.GetBookingByID(id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return booking, nil
}

// recentBookingsLimit caps the default admin listing.
const recentBookingsLimit = 50

// ListRecent returns the most recent bookings, newest first.
func (s *BookingService) ListRecent() ([]models.Booking, error) {
	bookings, err := s.store.GetAllBookings(recentBookingsLimit)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return bookings, nil
}

// ListByDate returns the bookings of one calendar day, ascending.
func (s *BookingService) ListByDate(day time.Time) ([]models.Booking, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	bookings, err := s.store.GetBookingsByDateRange(start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return bookings, nil
}

// ListByRange returns bookings with date in [start, end), ascending.
func (s *BookingService) ListByRange(start, end time.Time) ([]models.Booking, error) {
	bookings, err := s.store.GetBookingsByDateRange(start, end)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return bookings, nil
}

// ListByCustomerEmail returns a customer's bookings, newest first.
func (s *BookingService) ListByCustomerEmail(email string) (*models.Customer, []models.Booking, error) {
	customer, err := s.store.GetCustomerByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: customer", ErrNotFound)
		}
		return nil, nil, mapStoreErr(err)
	}
	bookings, err := s.store.GetBookingsByCustomer(customer.ID)
	if err != nil {
		return nil, nil, mapStoreErr(err)
	}
	return customer, bookings, nil
}

// AvailableTablesFor lists the active tables free for the requested
// window, ordered by table number.
func (s *BookingService) AvailableTablesFor(start time.Time, partySize int) ([]models.Table, error) {
	if start.IsZero() || partySize < 1 {
		return nil, fmt.Errorf("%w: date and party size are required", ErrValidation)
	}

	duration := models.DefaultBookingDuration
	settings, err := s.store.GetSettings()
	if err == nil && settings.BookingDuration > 0 {
		duration = settings.BookingDuration
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, mapStoreErr(err)
	}

	tables, err := s.store.GetAllTables(true)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	// A day-wide prefetch window covers every booking (max duration
	// well under 24h) that could overlap the candidate.
	bookings, err := s.store.GetBookingsByDateRange(start.Add(-24*time.Hour), start.Add(24*time.Hour))
	if err != nil {
		return nil, mapStoreErr(err)
	}

	return AvailableTables(tables, start, duration, partySize, bookings), nil
}

func (s *BookingService) publish(eventType string, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	event := BookingEvent{
		Type:      eventType,
		BookingID: booking.ID,
		Reference: booking.Reference,
		TableID:   booking.TableID,
		Status:    booking.Status,
		Date:      booking.Date,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		utils.ErrorLogger.Printf("Failed to publish booking event %s: %v", eventType, err)
	}
}
