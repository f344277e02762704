package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/cafe-booking/models"
)

// GormStore backs the EntityStore contract with a relational
// database through gorm (MySQL in production, SQLite in tests).
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// --- Customers ---

func (s *GormStore) GetAllCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.DB.
		Preload("Bookings", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Preload("Bookings.Table").
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

func (s *GormStore) GetCustomerByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.DB.First(&customer, id).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (s *GormStore) GetCustomerByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	if err := s.DB.Where("email = ?", email).First(&customer).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (s *GormStore) CreateCustomer(customer *models.Customer) error {
	return translate(s.DB.Create(customer).Error)
}

func (s *GormStore) UpdateCustomer(customer *models.Customer) error {
	return translate(s.DB.Save(customer).Error)
}

func (s *GormStore) DeleteCustomer(id uint) error {
	res := s.DB.Delete(&models.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Tables ---

func (s *GormStore) GetAllTables(onlyActive bool) ([]models.Table, error) {
	var tables []models.Table
	q := s.DB.Order("number ASC")
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&tables).Error
	return tables, err
}

func (s *GormStore) GetTableByID(id uint) (*models.Table, error) {
	var table models.Table
	if err := s.DB.First(&table, id).Error; err != nil {
		return nil, translate(err)
	}
	return &table, nil
}

func (s *GormStore) CreateTable(table *models.Table) error {
	return translate(s.DB.Create(table).Error)
}

func (s *GormStore) UpdateTable(table *models.Table) error {
	return translate(s.DB.Save(table).Error)
}

// --- Bookings ---

func (s *GormStore) GetAllBookings(limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	q := s.DB.Preload("Customer").Preload("Table").Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&bookings).Error
	return bookings, err
}

func (s *GormStore) GetBookingByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Customer").Preload("Table").First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

// GetBookingsByDateRange returns bookings with date in [start, end),
// ascending, with customer and table loaded.
func (s *GormStore) GetBookingsByDateRange(start, end time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Customer").Preload("Table").
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC").
		Find(&bookings).Error
	return bookings, err
}

func (s *GormStore) GetBookingsByTable(tableID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Where("table_id = ?", tableID).
		Order("date ASC").
		Find(&bookings).Error
	return bookings, err
}

func (s *GormStore) GetBookingsByCustomer(customerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Table").
		Where("customer_id = ?", customerID).
		Order("date DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *GormStore) CreateBooking(booking *models.Booking) error {
	return translate(s.DB.Create(booking).Error)
}

func (s *GormStore) UpdateBooking(booking *models.Booking) error {
	return translate(s.DB.Save(booking).Error)
}

func (s *GormStore) DeleteBooking(id uint) error {
	res := s.DB.Delete(&models.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Settings ---

func (s *GormStore) GetSettings() (*models.CafeSettings, error) {
	var settings models.CafeSettings
	if err := s.DB.First(&settings).Error; err != nil {
		return nil, translate(err)
	}
	return &settings, nil
}

func (s *GormStore) SaveSettings(settings *models.CafeSettings) error {
	return translate(s.DB.Save(settings).Error)
}
