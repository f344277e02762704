package repositories

import (
	"time"

	"github.com/yeremiapane/cafe-booking/models"
)

// EntityStore is the persistence contract the booking core runs
// against. Both the gorm-backed store and the in-memory store
// implement it, so the backend is a deployment choice.
type EntityStore interface {
	// Customers
	GetAllCustomers() ([]models.Customer, error)
	GetCustomerByID(id uint) (*models.Customer, error)
	GetCustomerByEmail(email string) (*models.Customer, error)
	CreateCustomer(customer *models.Customer) error
	UpdateCustomer(customer *models.Customer) error
	DeleteCustomer(id uint) error

	// Tables
	GetAllTables(onlyActive bool) ([]models.Table, error)
	GetTableByID(id uint) (*models.Table, error)
	CreateTable(table *models.Table) error
	UpdateTable(table *models.Table) error

	// Bookings
	GetAllBookings(limit int) ([]models.Booking, error)
	GetBookingByID(id uint) (*models.Booking, error)
	GetBookingsByDateRange(start, end time.Time) ([]models.Booking, error)
	GetBookingsByTable(tableID uint) ([]models.Booking, error)
	GetBookingsByCustomer(customerID uint) ([]models.Booking, error)
	CreateBooking(booking *models.Booking) error
	UpdateBooking(booking *models.Booking) error
	DeleteBooking(id uint) error

	// Settings
	GetSettings() (*models.CafeSettings, error)
	SaveSettings(settings *models.CafeSettings) error
}
