package models

import (
	"errors"
	"fmt"
)

// Error roots. Every expected failure wraps exactly one of these so callers
// can branch with errors.Is; anything else is a system failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrMemberNotFound  = fmt.Errorf("gym member %w", ErrNotFound)
	ErrClassNotFound   = fmt.Errorf("class %w", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("class session %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)

	ErrDuplicateBooking      = fmt.Errorf("%w: member already booked this session", ErrConflict)
	ErrSessionFull           = fmt.Errorf("%w: session is full", ErrConflict)
	ErrMonthlyLimitReached   = fmt.Errorf("%w: monthly booking limit reached", ErrConflict)
	ErrCapacityBelowBookings = fmt.Errorf("%w: capacity below existing bookings", ErrConflict)
	ErrScheduleLocked        = fmt.Errorf("%w: session has bookings, date and time cannot change", ErrConflict)
	ErrBookingsExist         = fmt.Errorf("%w: bookings exist", ErrConflict)
)

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err refers to a missing entity.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err is a business rule conflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// Validationf builds a validation error with a formatted reason.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
