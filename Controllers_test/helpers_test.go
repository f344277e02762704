package Controllers_test

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/cafe-booking/models"
	"github.com/yeremiapane/cafe-booking/repositories"
	"github.com/yeremiapane/cafe-booking/utils"
)

var testDBCounter int64

// setupTestStore opens a private SQLite in-memory database, migrates
// the schema and wraps it in the gorm-backed store.
func setupTestStore(t *testing.T) *repositories.GormStore {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:controllers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Table{},
		&models.Booking{},
		&models.CafeSettings{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return repositories.NewGormStore(db)
}

func seedTable(t *testing.T, store *repositories.GormStore, number, capacity int, active bool) models.Table {
	t.Helper()
	table := models.Table{
		Number:   number,
		Capacity: capacity,
		Location: "Center",
		IsActive: active,
	}
	if err := store.CreateTable(&table); err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func mustParseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("failed to parse time %q: %v", value, err)
	}
	return parsed
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
