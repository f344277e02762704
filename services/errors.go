// Package services contains the booking core: the pure table
// availability checker and the booking lifecycle service built on the
// EntityStore contract.
package services

import "errors"

// Failure taxonomy of the booking core. Controllers map these to HTTP
// status codes with errors.Is; messages carry the detail.
var (
	// ErrValidation covers missing or malformed required fields.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound covers booking/customer/table ids that do not resolve.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers inactive tables, insufficient capacity and
	// overlapping bookings. Detected before any write.
	ErrConflict = errors.New("conflict")
	// ErrInvalidTransition covers status changes the state machine
	// does not permit.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrStorage wraps backend failures. Not retried here; the caller
	// may re-query and retry the whole operation.
	ErrStorage = errors.New("storage failure")
)
