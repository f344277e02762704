// Package config wires external resources from environment variables:
// the database (MySQL in production, SQLite for local runs and tests)
// and the optional Redis client for response caching.
package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database selected by DB_DRIVER ("mysql" or
// "sqlite"). MySQL connection parameters come from DB_USER, DB_PASS,
// DB_HOST, DB_PORT and DB_NAME; SQLite uses DB_PATH.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	cfg := &gorm.Config{TranslateError: true}

	switch driver {
	case "sqlite":
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "cafe_booking.db"
		}
		return gorm.Open(sqlite.Open(path), cfg)
	case "mysql", "":
		host := getenv("DB_HOST", "127.0.0.1")
		port := getenv("DB_PORT", "3306")
		user := getenv("DB_USER", "root")
		pass := os.Getenv("DB_PASS")
		name := getenv("DB_NAME", "cafe_booking")

		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			user, pass, host, port, name)
		return gorm.Open(mysql.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
