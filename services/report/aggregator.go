// Package report builds per-member activity summaries.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	bookingRepo "gymflow/database/repository/booking"
	memberRepo "gymflow/database/repository/member"
	"gymflow/models"
	"gymflow/services/booking"

	"go.uber.org/zap"
)

// topClassTypes is how many favourite class types a report lists.
const topClassTypes = 3

// Cache stores computed reports per member and month ("2006-01").
type Cache interface {
	Get(ctx context.Context, memberID, period string) (*models.MemberReport, bool, error)
	Set(ctx context.Context, period string, report *models.MemberReport) error
	Invalidate(ctx context.Context, memberID, period string) error
}

// RefreshQueue schedules a background recomputation of a member's report.
type RefreshQueue interface {
	EnqueueRefresh(ctx context.Context, memberID string) error
}

type Aggregator struct {
	members  memberRepo.MemberRepository
	bookings bookingRepo.BookingRepository
	cache    Cache
	queue    RefreshQueue
	logger   *zap.Logger
	now      func() time.Time
}

func NewAggregator(members memberRepo.MemberRepository, bookings bookingRepo.BookingRepository, logger *zap.Logger) (*Aggregator, error) {
	if members == nil || bookings == nil {
		return nil, fmt.Errorf("report aggregator initialization error: one or more dependencies are nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{members: members, bookings: bookings, logger: logger, now: time.Now}, nil
}

// SetCache enables report caching.
func (a *Aggregator) SetCache(c Cache) { a.cache = c }

// SetRefreshQueue enables background refresh after booking changes.
func (a *Aggregator) SetRefreshQueue(q RefreshQueue) { a.queue = q }

func period(now time.Time) string { return now.UTC().Format("2006-01") }

// GetMemberReport returns the member's summary for the current UTC month.
func (a *Aggregator) GetMemberReport(ctx context.Context, memberID string) (*models.MemberReport, error) {
	now := a.now()
	if a.cache != nil {
		cached, ok, err := a.cache.Get(ctx, memberID, period(now))
		if err != nil {
			a.logger.Warn("report cache read failed", zap.String("memberId", memberID), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}
	return a.compute(ctx, memberID, now)
}

// Refresh recomputes the member's report and stores it in the cache.
func (a *Aggregator) Refresh(ctx context.Context, memberID string) error {
	now := a.now()
	if a.cache != nil {
		if err := a.cache.Invalidate(ctx, memberID, period(now)); err != nil {
			return fmt.Errorf("invalidate report: %w", err)
		}
	}
	_, err := a.compute(ctx, memberID, now)
	if models.IsNotFound(err) {
		return nil
	}
	return err
}

// BookingsChanged drops the cached report and schedules a refresh.
func (a *Aggregator) BookingsChanged(ctx context.Context, memberID string) {
	if a.cache != nil {
		if err := a.cache.Invalidate(ctx, memberID, period(a.now())); err != nil {
			a.logger.Warn("report cache invalidation failed", zap.String("memberId", memberID), zap.Error(err))
		}
	}
	if a.queue != nil {
		if err := a.queue.EnqueueRefresh(ctx, memberID); err != nil {
			a.logger.Warn("report refresh enqueue failed", zap.String("memberId", memberID), zap.Error(err))
		}
	}
}

func (a *Aggregator) compute(ctx context.Context, memberID string, now time.Time) (*models.MemberReport, error) {
	member, err := a.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	details, err := a.bookings.ListDetailsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("list member bookings: %w", err)
	}

	report := Summarize(member, details, now)
	if a.cache != nil {
		if err := a.cache.Set(ctx, period(now), report); err != nil {
			a.logger.Warn("report cache write failed", zap.String("memberId", memberID), zap.Error(err))
		}
	}
	return report, nil
}

// Summarize counts the bookings whose session is scheduled in now's UTC
// month and ranks their class types by frequency. Bookings with an
// unresolved session are not counted; bookings with an unresolved class are
// counted but not ranked. Ties rank alphabetically.
func Summarize(member *models.GymMember, details []models.BookingDetail, now time.Time) *models.MemberReport {
	from, to := booking.MonthWindow(now)

	total := 0
	freq := make(map[string]int)
	for _, d := range details {
		if !d.HasSession() {
			continue
		}
		at := d.Session.Schedule
		if at.Before(from) || !at.Before(to) {
			continue
		}
		total++
		if d.HasClass() {
			freq[d.Class.ClassType]++
		}
	}

	types := make([]string, 0, len(freq))
	for t := range freq {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if freq[types[i]] != freq[types[j]] {
			return freq[types[i]] > freq[types[j]]
		}
		return types[i] < types[j]
	})
	if len(types) > topClassTypes {
		types = types[:topClassTypes]
	}

	return &models.MemberReport{
		MemberID:               member.ID,
		MemberName:             member.Name,
		PlanType:               member.PlanType.String(),
		TotalBookingsThisMonth: total,
		FavoriteClassTypes:     types,
	}
}
