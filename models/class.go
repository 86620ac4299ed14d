package models

import "time"

// Class is a bookable activity (Yoga, Pilates...) with a per-session capacity.
type Class struct {
	ID          string    `bson:"id" json:"id"`
	ClassType   string    `bson:"classType" json:"classType"`
	MaxCapacity int       `bson:"maxCapacity" json:"maxCapacity"`
	LockVersion int       `bson:"lockVersion" json:"-"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
