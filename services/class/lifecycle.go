package class

import (
	"fmt"

	"gymflow/models"

	"cloud.google.com/go/civil"
)

// CheckCapacity rejects a capacity below the busiest session of the class.
func CheckCapacity(newCapacity, maxPerSession int) error {
	if newCapacity < maxPerSession {
		return fmt.Errorf("%w: a session already holds %d bookings, capacity %d is too low",
			models.ErrCapacityBelowBookings, maxPerSession, newCapacity)
	}
	return nil
}

// CheckReschedule rejects moving a booked session. Re-submitting the current
// date and window is allowed.
func CheckReschedule(s models.ClassSession, date civil.Date, start, end civil.Time, bookings int) error {
	if bookings == 0 || s.SameSlot(date, start, end) {
		return nil
	}
	return fmt.Errorf("%w (%d bookings)", models.ErrScheduleLocked, bookings)
}

// CheckSessionDelete rejects deleting a session that has bookings.
func CheckSessionDelete(sessionID string, bookings int) error {
	if bookings > 0 {
		return fmt.Errorf("%w: session %s has %d bookings", models.ErrBookingsExist, sessionID, bookings)
	}
	return nil
}

// CheckClassDelete rejects deleting a class with bookings in any session.
func CheckClassDelete(classID string, totalBookings int) error {
	if totalBookings > 0 {
		return fmt.Errorf("%w: class %s has %d bookings", models.ErrBookingsExist, classID, totalBookings)
	}
	return nil
}

// CheckBatchRemoval checks every session slated for removal and fails on the
// first one holding bookings. The batch is all or nothing.
func CheckBatchRemoval(sessionIDs []string, counts map[string]int) error {
	for _, id := range sessionIDs {
		if err := CheckSessionDelete(id, counts[id]); err != nil {
			return err
		}
	}
	return nil
}
