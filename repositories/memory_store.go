package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yeremiapane/cafe-booking/models"
)

// MemoryStore keeps all entities in process memory behind the same
// EntityStore contract as the database-backed store. Used for local
// runs without a database and for tests. All methods copy records in
// and out so callers never share memory with the store.
type MemoryStore struct {
	mu        sync.RWMutex
	customers map[uint]models.Customer
	tables    map[uint]models.Table
	bookings  map[uint]models.Booking
	settings  *models.CafeSettings
	nextID    map[string]uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: make(map[uint]models.Customer),
		tables:    make(map[uint]models.Table),
		bookings:  make(map[uint]models.Booking),
		nextID:    map[string]uint{"customer": 1, "table": 1, "booking": 1},
	}
}

func (s *MemoryStore) allocate(kind string) uint {
	id := s.nextID[kind]
	s.nextID[kind] = id + 1
	return id
}

// --- Customers ---

func (s *MemoryStore) GetAllCustomers() ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		c.Bookings = s.bookingsForCustomerLocked(c.ID)
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool {
		return strings.ToLower(customers[i].Name) < strings.ToLower(customers[j].Name)
	})
	return customers, nil
}

func (s *MemoryStore) GetCustomerByID(id uint) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) GetCustomerByEmail(email string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if strings.EqualFold(c.Email, email) {
			c := c
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateCustomer(customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if strings.EqualFold(c.Email, customer.Email) {
			return ErrDuplicate
		}
	}
	now := time.Now()
	customer.ID = s.allocate("customer")
	customer.CreatedAt = now
	customer.UpdatedAt = now
	s.customers[customer.ID] = *customer
	return nil
}

func (s *MemoryStore) UpdateCustomer(customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customer.ID]; !ok {
		return ErrNotFound
	}
	customer.UpdatedAt = time.Now()
	s.customers[customer.ID] = *customer
	return nil
}

func (s *MemoryStore) DeleteCustomer(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; !ok {
		return ErrNotFound
	}
	delete(s.customers, id)
	return nil
}

// --- Tables ---

func (s *MemoryStore) GetAllTables(onlyActive bool) ([]models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([]models.Table, 0, len(s.tables))
	for _, t := range s.tables {
		if onlyActive && !t.IsActive {
			continue
		}
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Number < tables[j].Number })
	return tables, nil
}

func (s *MemoryStore) GetTableByID(id uint) (*models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *MemoryStore) CreateTable(table *models.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tables {
		if t.Number == table.Number {
			return ErrDuplicate
		}
	}
	now := time.Now()
	table.ID = s.allocate("table")
	table.CreatedAt = now
	table.UpdatedAt = now
	s.tables[table.ID] = *table
	return nil
}

func (s *MemoryStore) UpdateTable(table *models.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[table.ID]; !ok {
		return ErrNotFound
	}
	table.UpdatedAt = time.Now()
	s.tables[table.ID] = *table
	return nil
}

// --- Bookings ---

func (s *MemoryStore) GetAllBookings(limit int) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := s.collectBookingsLocked(func(models.Booking) bool { return true })
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Date.After(bookings[j].Date) })
	if limit > 0 && len(bookings) > limit {
		bookings = bookings[:limit]
	}
	return bookings, nil
}

func (s *MemoryStore) GetBookingByID(id uint) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.embedLocked(&b)
	return &b, nil
}

func (s *MemoryStore) GetBookingsByDateRange(start, end time.Time) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := s.collectBookingsLocked(func(b models.Booking) bool {
		return !b.Date.Before(start) && b.Date.Before(end)
	})
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Date.Before(bookings[j].Date) })
	return bookings, nil
}

func (s *MemoryStore) GetBookingsByTable(tableID uint) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]models.Booking, 0)
	for _, b := range s.bookings {
		if b.TableID == tableID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Date.Before(bookings[j].Date) })
	return bookings, nil
}

func (s *MemoryStore) GetBookingsByCustomer(customerID uint) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := s.bookingsForCustomerLocked(customerID)
	return bookings, nil
}

func (s *MemoryStore) CreateBooking(booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	booking.ID = s.allocate("booking")
	booking.CreatedAt = now
	booking.UpdatedAt = now
	stored := *booking
	stored.Customer = nil
	stored.Table = nil
	s.bookings[stored.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateBooking(booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[booking.ID]; !ok {
		return ErrNotFound
	}
	booking.UpdatedAt = time.Now()
	stored := *booking
	stored.Customer = nil
	stored.Table = nil
	s.bookings[stored.ID] = stored
	return nil
}

func (s *MemoryStore) DeleteBooking(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

// --- Settings ---

func (s *MemoryStore) GetSettings() (*models.CafeSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, ErrNotFound
	}
	settings := *s.settings
	return &settings, nil
}

func (s *MemoryStore) SaveSettings(settings *models.CafeSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if settings.ID == 0 {
		settings.ID = 1
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now
	stored := *settings
	s.settings = &stored
	return nil
}

// --- helpers (callers hold s.mu) ---

func (s *MemoryStore) embedLocked(b *models.Booking) {
	if c, ok := s.customers[b.CustomerID]; ok {
		c := c
		b.Customer = &c
	}
	if t, ok := s.tables[b.TableID]; ok {
		t := t
		b.Table = &t
	}
}

func (s *MemoryStore) collectBookingsLocked(keep func(models.Booking) bool) []models.Booking {
	bookings := make([]models.Booking, 0)
	for _, b := range s.bookings {
		if keep(b) {
			s.embedLocked(&b)
			bookings = append(bookings, b)
		}
	}
	return bookings
}

func (s *MemoryStore) bookingsForCustomerLocked(customerID uint) []models.Booking {
	bookings := make([]models.Booking, 0)
	for _, b := range s.bookings {
		if b.CustomerID == customerID {
			if t, ok := s.tables[b.TableID]; ok {
				t := t
				b.Table = &t
			}
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Date.After(bookings[j].Date) })
	return bookings
}
