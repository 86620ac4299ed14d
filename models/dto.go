package models

import (
	"time"

	"cloud.google.com/go/civil"
)

// CreateClassRequest creates a class and its first batch of sessions.
type CreateClassRequest struct {
	ClassType   string `json:"classType" binding:"required"`
	MaxCapacity int    `json:"maxCapacity"`
	Recurrence
}

// UpdateClassRequest changes the class label and capacity.
type UpdateClassRequest struct {
	ClassType   string `json:"classType" binding:"required"`
	MaxCapacity int    `json:"maxCapacity"`
}

// UpdateClassWithSessionsRequest combines a class update, a batch session
// removal and an optional batch of new sessions.
type UpdateClassWithSessionsRequest struct {
	ClassType          string      `json:"classType" binding:"required"`
	MaxCapacity        int         `json:"maxCapacity"`
	SessionIDsToRemove []string    `json:"sessionIdsToRemove"`
	NewSessions        *Recurrence `json:"newSessions,omitempty"`
}

// UpdateSessionRequest moves a session to a new date or time window.
type UpdateSessionRequest struct {
	Date      civil.Date `json:"date"`
	StartTime civil.Time `json:"startTime"`
	EndTime   civil.Time `json:"endTime"`
}

// ClassDTO is the read model for a class and its sessions.
type ClassDTO struct {
	ID          string            `json:"id"`
	ClassType   string            `json:"classType"`
	MaxCapacity int               `json:"maxCapacity"`
	Sessions    []ClassSessionDTO `json:"sessions"`
}

// ClassSessionDTO is the read model for a session.
type ClassSessionDTO struct {
	ID                string     `json:"id"`
	ClassID           string     `json:"classId"`
	Date              civil.Date `json:"date"`
	StartTime         civil.Time `json:"startTime"`
	EndTime           civil.Time `json:"endTime"`
	Schedule          time.Time  `json:"schedule"`
	DurationInMinutes int        `json:"durationInMinutes"`
	CurrentBookings   int        `json:"currentBookings"`
	MaxCapacity       int        `json:"maxCapacity"`
	IsUpcoming        bool       `json:"isUpcoming"`
}

// NewClassSessionDTO projects a session with its live booking count.
func NewClassSessionDTO(s ClassSession, maxCapacity, bookings int, now time.Time) ClassSessionDTO {
	return ClassSessionDTO{
		ID:                s.ID,
		ClassID:           s.ClassID,
		Date:              s.Date,
		StartTime:         s.StartTime,
		EndTime:           s.EndTime,
		Schedule:          s.Schedule,
		DurationInMinutes: s.DurationMinutes(),
		CurrentBookings:   bookings,
		MaxCapacity:       maxCapacity,
		IsUpcoming:        s.IsUpcoming(now),
	}
}

// MemberRequest creates or updates a gym member.
type MemberRequest struct {
	Name     string   `json:"name" binding:"required"`
	PlanType PlanType `json:"planType" binding:"required"`
}

// BookClassRequest asks for a seat in a session.
type BookClassRequest struct {
	GymMemberID    string `json:"gymMemberId" binding:"required"`
	ClassSessionID string `json:"classSessionId" binding:"required"`
}

// BookingDTO is the read model for a booking. Relation fields stay empty
// when the relation cannot be resolved.
type BookingDTO struct {
	ID              string     `json:"id"`
	GymMemberID     string     `json:"gymMemberId"`
	GymMemberName   string     `json:"gymMemberName,omitempty"`
	ClassID         string     `json:"classId"`
	ClassType       string     `json:"classType,omitempty"`
	ClassSessionID  string     `json:"classSessionId"`
	SessionSchedule *time.Time `json:"sessionSchedule,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// NewBookingDTO projects a booking detail.
func NewBookingDTO(d BookingDetail) BookingDTO {
	dto := BookingDTO{
		ID:             d.ID,
		GymMemberID:    d.GymMemberID,
		ClassID:        d.ClassID,
		ClassSessionID: d.ClassSessionID,
		CreatedAt:      d.CreatedAt,
	}
	if d.HasMember() {
		dto.GymMemberName = d.Member.Name
	}
	if d.HasClass() {
		dto.ClassType = d.Class.ClassType
	}
	if d.HasSession() {
		schedule := d.Session.Schedule
		dto.SessionSchedule = &schedule
	}
	return dto
}
