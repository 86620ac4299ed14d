package booking

import (
	"fmt"
	"time"

	"gymflow/models"
)

// Limiter enforces the monthly booking quota of each plan tier.
type Limiter struct {
	quotas map[models.PlanType]int
}

// NewLimiter builds a Limiter from a plan name to quota table, e.g.
// {"Monthly": 12}. Plan names are matched case-insensitively.
func NewLimiter(quotas map[string]int) (*Limiter, error) {
	l := &Limiter{quotas: make(map[models.PlanType]int, len(quotas))}
	for name, quota := range quotas {
		plan, ok := models.ParsePlanType(name)
		if !ok {
			return nil, fmt.Errorf("unknown plan %q in quota table", name)
		}
		if quota < 0 {
			return nil, fmt.Errorf("quota for plan %q must not be negative", name)
		}
		l.quotas[plan] = quota
	}
	return l, nil
}

// MonthlyLimit returns the quota for plan. Plans without a quota get 0.
func (l *Limiter) MonthlyLimit(plan models.PlanType) int {
	return l.quotas[plan]
}

// CanBook reports whether a member who already holds currentMonthCount
// bookings this month may book another.
func (l *Limiter) CanBook(member *models.GymMember, currentMonthCount int) bool {
	return currentMonthCount < l.MonthlyLimit(member.PlanType)
}

// MonthWindow returns the UTC calendar month containing now as [from, to).
func MonthWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
