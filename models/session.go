package models

import (
	"time"

	"cloud.google.com/go/civil"
)

// ClassSession is one concrete occurrence of a Class.
type ClassSession struct {
	ID          string     `bson:"id" json:"id"`
	ClassID     string     `bson:"classId" json:"classId"`
	Date        civil.Date `bson:"date" json:"date"`           // e.g. 2024-01-22
	StartTime   civil.Time `bson:"startTime" json:"startTime"` // e.g. 10:00:00
	EndTime     civil.Time `bson:"endTime" json:"endTime"`
	Schedule    time.Time  `bson:"schedule" json:"schedule"` // Date + StartTime in UTC
	LockVersion int        `bson:"lockVersion" json:"-"`
}

// ScheduleOf combines a date and a time of day into a UTC instant.
func ScheduleOf(d civil.Date, t civil.Time) time.Time {
	return civil.DateTime{Date: d, Time: t}.In(time.UTC)
}

// SinceMidnight returns the offset of t from the start of its day, down to
// the nanosecond.
func SinceMidnight(t civil.Time) time.Duration {
	return time.Duration(t.Hour)*time.Hour +
		time.Duration(t.Minute)*time.Minute +
		time.Duration(t.Second)*time.Second +
		time.Duration(t.Nanosecond)
}

// DurationMinutes is EndTime minus StartTime in whole minutes. A trailing
// partial minute is dropped.
func (s ClassSession) DurationMinutes() int {
	return int((SinceMidnight(s.EndTime) - SinceMidnight(s.StartTime)) / time.Minute)
}

// IsUpcoming reports whether the session starts after now.
func (s ClassSession) IsUpcoming(now time.Time) bool {
	return s.Schedule.After(now)
}

// SameSlot reports whether the session already sits on the given date and window.
func (s ClassSession) SameSlot(date civil.Date, start, end civil.Time) bool {
	return s.Date == date && s.StartTime == start && s.EndTime == end
}
