package models

import (
	"time"

	"cloud.google.com/go/civil"
)

// Recurrence describes a batch of sessions: every listed weekday in
// [StartDate, EndDate], each running StartTime to EndTime.
type Recurrence struct {
	StartDate  civil.Date `json:"startDate"`
	EndDate    civil.Date `json:"endDate"`
	StartTime  civil.Time `json:"startTime"`
	EndTime    civil.Time `json:"endTime"`
	DaysOfWeek []int      `json:"daysOfWeek"` // 0 = Sunday ... 6 = Saturday
}

// Weekdays converts DaysOfWeek to a lookup set. Out-of-range values are dropped.
func (r Recurrence) Weekdays() map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(r.DaysOfWeek))
	for _, d := range r.DaysOfWeek {
		if d >= 0 && d <= 6 {
			set[time.Weekday(d)] = true
		}
	}
	return set
}
