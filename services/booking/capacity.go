package booking

import "gymflow/models"

// HasAvailableSlots reports whether a session holding bookingCount bookings
// can take one more. A session whose class cannot be resolved has no slots.
func HasAvailableSlots(class *models.Class, bookingCount int) bool {
	if class == nil {
		return false
	}
	return bookingCount < class.MaxCapacity
}
