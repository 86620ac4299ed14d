package models

import (
	"strings"
	"time"
)

// PlanType is a membership tier. The numeric values are part of the API.
type PlanType int

const (
	PlanMonthly   PlanType = 1
	PlanQuarterly PlanType = 2
	PlanAnnual    PlanType = 3
)

var planNames = map[PlanType]string{
	PlanMonthly:   "Monthly",
	PlanQuarterly: "Quarterly",
	PlanAnnual:    "Annual",
}

// String returns the display name of the plan, or "Unknown".
func (p PlanType) String() string {
	if name, ok := planNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether p is one of the known tiers.
func (p PlanType) Valid() bool {
	_, ok := planNames[p]
	return ok
}

// ParsePlanType maps a display name back to its tier, ignoring case.
func ParsePlanType(name string) (PlanType, bool) {
	for p, n := range planNames {
		if strings.EqualFold(n, name) {
			return p, true
		}
	}
	return 0, false
}

// GymMember is a person holding a membership plan.
type GymMember struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	PlanType    PlanType  `bson:"planType" json:"planType"`
	LockVersion int       `bson:"lockVersion" json:"-"` // bumped to serialise concurrent bookings
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
