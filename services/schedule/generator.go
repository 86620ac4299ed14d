// Package schedule expands recurrence rules into concrete class sessions.
package schedule

import (
	"time"

	"gymflow/models"

	"cloud.google.com/go/civil"
)

// Validate checks a recurrence rule without expanding it.
func Validate(r models.Recurrence) error {
	if !r.StartDate.IsValid() || !r.EndDate.IsValid() {
		return models.Validationf("startDate and endDate must be valid dates")
	}
	if err := ValidateWindow(r.StartTime, r.EndTime); err != nil {
		return err
	}
	if r.EndDate.Before(r.StartDate) {
		return models.Validationf("endDate %s is before startDate %s", r.EndDate, r.StartDate)
	}
	if len(r.DaysOfWeek) == 0 {
		return models.Validationf("at least one day of week is required")
	}
	for _, d := range r.DaysOfWeek {
		if d < 0 || d > 6 {
			return models.Validationf("day of week %d out of range 0-6", d)
		}
	}
	return nil
}

// ValidateWindow checks a single time-of-day window.
func ValidateWindow(start, end civil.Time) error {
	if !start.IsValid() || !end.IsValid() {
		return models.Validationf("startTime and endTime must be valid times of day")
	}
	if models.SinceMidnight(end) <= models.SinceMidnight(start) {
		return models.Validationf("endTime %s must be after startTime %s", end, start)
	}
	return nil
}

// Generate returns one session per day in [StartDate, EndDate] whose weekday
// is listed, in date order. Sessions carry no identity or class reference;
// the caller assigns both when persisting them.
func Generate(r models.Recurrence) ([]models.ClassSession, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}

	days := r.Weekdays()
	sessions := make([]models.ClassSession, 0, r.EndDate.DaysSince(r.StartDate)/7*len(days)+len(days))
	for d := r.StartDate; !d.After(r.EndDate); d = d.AddDays(1) {
		if !days[weekday(d)] {
			continue
		}
		sessions = append(sessions, models.ClassSession{
			Date:      d,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Schedule:  models.ScheduleOf(d, r.StartTime),
		})
	}
	return sessions, nil
}

func weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}
