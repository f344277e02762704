// Package repositories holds the EntityStore contract plus its gorm
// and in-memory implementations. The sentinel errors below let the
// service layer tell missing records from backend failures without
// knowing which store is behind the interface.
package repositories

import "errors"

// ErrNotFound is returned when an id or unique key does not resolve
// to a record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a create collides with a unique key,
// such as a customer email or table number already in use.
var ErrDuplicate = errors.New("duplicate record")
