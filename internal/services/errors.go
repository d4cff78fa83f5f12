// Package services defines the procurement business logic: requirement
// submission and merge, delivery status rollup, matrix reporting, and the
// hotel/seller/vegetable catalog.
//
// This file centralizes service-level error values. Translation into HTTP
// status codes is performed at the handler layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrRequirementNotFound indicates the requirement id does not resolve.
	ErrRequirementNotFound = errors.New("requirement not found")

	// ErrHotelNotFound indicates the hotel id does not resolve.
	ErrHotelNotFound = errors.New("hotel not found")

	// ErrSellerNotFound indicates the seller id does not resolve.
	ErrSellerNotFound = errors.New("seller not found")

	// ErrVegetableNotFound indicates the vegetable id does not resolve.
	ErrVegetableNotFound = errors.New("vegetable not found")

	// ErrConflict is returned by strict submission when a requirement already
	// exists for the (hotel, vegetable, date) key.
	ErrConflict = errors.New("requirement already exists for hotel, vegetable and date")

	// ErrIdempotencyMismatch is returned when an Idempotency-Key is reused
	// with a different submission than the one it first produced.
	ErrIdempotencyMismatch = errors.New("idempotency key was already used for a different request")
)

// ValidationError reports malformed input. It is returned before any store
// mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRequirementNotFound) ||
		errors.Is(err, ErrHotelNotFound) ||
		errors.Is(err, ErrSellerNotFound) ||
		errors.Is(err, ErrVegetableNotFound)
}
