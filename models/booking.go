package models

import "time"

// Booking links one member to one session. (GymMemberID, ClassSessionID) is unique.
type Booking struct {
	ID             string    `bson:"id" json:"id"`
	GymMemberID    string    `bson:"gymMemberId" json:"gymMemberId"`
	ClassID        string    `bson:"classId" json:"classId"` // denormalized from the session
	ClassSessionID string    `bson:"classSessionId" json:"classSessionId"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// BookingDetail is a booking with its relations resolved where possible.
// Any relation may be nil when the referenced document no longer exists.
type BookingDetail struct {
	Booking `bson:",inline"`
	Member  *GymMember    `bson:"member,omitempty"`
	Session *ClassSession `bson:"session,omitempty"`
	Class   *Class        `bson:"class,omitempty"`
}

func (d BookingDetail) HasMember() bool  { return d.Member != nil }
func (d BookingDetail) HasSession() bool { return d.Session != nil }
func (d BookingDetail) HasClass() bool   { return d.Class != nil }
