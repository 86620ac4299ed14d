package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymflow/database"
	bookingRepo "gymflow/database/repository/booking"
	classRepo "gymflow/database/repository/class"
	memberRepo "gymflow/database/repository/member"
	sessionRepo "gymflow/database/repository/session"
	"gymflow/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChangeListener is told, after commit, that a member's bookings changed.
type ChangeListener interface {
	BookingsChanged(ctx context.Context, memberID string)
}

// Ledger creates and cancels bookings.
type Ledger struct {
	uow      database.UnitOfWork
	members  memberRepo.MemberRepository
	classes  classRepo.ClassRepository
	sessions sessionRepo.SessionRepository
	bookings bookingRepo.BookingRepository
	limiter  *Limiter
	listener ChangeListener
	logger   *zap.Logger
	now      func() time.Time
}

func NewLedger(
	uow database.UnitOfWork,
	members memberRepo.MemberRepository,
	classes classRepo.ClassRepository,
	sessions sessionRepo.SessionRepository,
	bookings bookingRepo.BookingRepository,
	limiter *Limiter,
	logger *zap.Logger,
) (*Ledger, error) {
	if uow == nil || members == nil || classes == nil || sessions == nil || bookings == nil || limiter == nil {
		return nil, fmt.Errorf("booking ledger initialization error: one or more dependencies are nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		uow:      uow,
		members:  members,
		classes:  classes,
		sessions: sessions,
		bookings: bookings,
		limiter:  limiter,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// SetChangeListener registers the listener notified after bookings change.
func (l *Ledger) SetChangeListener(cl ChangeListener) {
	l.listener = cl
}

// BookClass books memberID into sessionID. Checks run in a fixed order and
// the first failing one decides the outcome. The returned error is non-nil
// only for storage failures.
func (l *Ledger) BookClass(ctx context.Context, memberID, sessionID string) (*Result, error) {
	var result *Result
	err := l.uow.Do(ctx, func(ctx context.Context) error {
		r, err := l.bookClass(ctx, memberID, sessionID)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if errors.Is(err, models.ErrDuplicateBooking) {
		// Lost a race on the unique index.
		return newResult(OutcomeDuplicateBooking), nil
	}
	if err != nil {
		l.logger.Error("book class failed",
			zap.String("memberId", memberID),
			zap.String("sessionId", sessionID),
			zap.Error(err))
		return nil, fmt.Errorf("book class: %w", err)
	}

	if result.Outcome == OutcomeSuccess {
		l.logger.Info("class booked",
			zap.String("bookingId", result.Booking.ID),
			zap.String("memberId", memberID),
			zap.String("sessionId", sessionID))
		l.notify(ctx, memberID)
	} else {
		l.logger.Debug("booking refused",
			zap.String("memberId", memberID),
			zap.String("sessionId", sessionID),
			zap.Stringer("outcome", result.Outcome))
	}
	return result, nil
}

func (l *Ledger) bookClass(ctx context.Context, memberID, sessionID string) (*Result, error) {
	member, err := l.members.GetByID(ctx, memberID)
	if errors.Is(err, models.ErrMemberNotFound) {
		return newResult(OutcomeGymMemberNotFound), nil
	}
	if err != nil {
		return nil, fmt.Errorf("check member: %w", err)
	}

	session, err := l.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, models.ErrSessionNotFound) {
		return newResult(OutcomeSessionNotFound), nil
	}
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}

	class, err := l.classes.GetByID(ctx, session.ClassID)
	if errors.Is(err, models.ErrClassNotFound) {
		return newResult(OutcomeClassNotFound), nil
	}
	if err != nil {
		return nil, fmt.Errorf("check class: %w", err)
	}

	// Concurrent bookings of the same session, class or member conflict
	// here and are retried by the unit of work.
	if err := l.sessions.Lock(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("lock session: %w", err)
	}
	if err := l.classes.Lock(ctx, class.ID); err != nil {
		return nil, fmt.Errorf("lock class: %w", err)
	}
	if err := l.members.Lock(ctx, member.ID); err != nil {
		return nil, fmt.Errorf("lock member: %w", err)
	}

	exists, err := l.bookings.Exists(ctx, member.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return newResult(OutcomeDuplicateBooking), nil
	}

	booked, err := l.bookings.CountBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("count session bookings: %w", err)
	}
	if !HasAvailableSlots(class, booked) {
		return newResult(OutcomeSessionFull), nil
	}

	now := l.now().UTC()
	from, to := MonthWindow(now)
	monthly, err := l.bookings.CountScheduledForMember(ctx, member.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("count monthly bookings: %w", err)
	}
	if !l.limiter.CanBook(member, monthly) {
		return limitResult(member.PlanType), nil
	}

	booking := &models.Booking{
		ID:             uuid.New().String(),
		GymMemberID:    member.ID,
		ClassID:        class.ID,
		ClassSessionID: session.ID,
		CreatedAt:      now,
	}
	if err := l.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	return bookedResult(booking), nil
}

// CancelBooking deletes the booking. There are no other preconditions.
func (l *Ledger) CancelBooking(ctx context.Context, bookingID string) (*Result, error) {
	var (
		result   *Result
		memberID string
	)
	err := l.uow.Do(ctx, func(ctx context.Context) error {
		booking, err := l.bookings.GetByID(ctx, bookingID)
		if errors.Is(err, models.ErrBookingNotFound) {
			result = newResult(OutcomeBookingNotFound)
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetch booking: %w", err)
		}
		if err := l.bookings.Delete(ctx, booking.ID); err != nil {
			return fmt.Errorf("delete booking: %w", err)
		}
		memberID = booking.GymMemberID
		result = canceledResult()
		return nil
	})
	if err != nil {
		l.logger.Error("cancel booking failed", zap.String("bookingId", bookingID), zap.Error(err))
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	if result.Outcome == OutcomeSuccess {
		l.logger.Info("booking canceled", zap.String("bookingId", bookingID), zap.String("memberId", memberID))
		l.notify(ctx, memberID)
	}
	return result, nil
}

// GetBooking returns one booking with its relations.
func (l *Ledger) GetBooking(ctx context.Context, bookingID string) (*models.BookingDTO, error) {
	detail, err := l.bookings.GetDetailByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	dto := models.NewBookingDTO(*detail)
	return &dto, nil
}

// ListByMember returns the member's bookings, newest first.
func (l *Ledger) ListByMember(ctx context.Context, memberID string) ([]models.BookingDTO, error) {
	if _, err := l.members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	details, err := l.bookings.ListDetailsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("list member bookings: %w", err)
	}
	return toDTOs(details), nil
}

// ListByClass returns the bookings across all sessions of the class.
func (l *Ledger) ListByClass(ctx context.Context, classID string) ([]models.BookingDTO, error) {
	if _, err := l.classes.GetByID(ctx, classID); err != nil {
		return nil, err
	}
	details, err := l.bookings.ListDetailsByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("list class bookings: %w", err)
	}
	return toDTOs(details), nil
}

func toDTOs(details []models.BookingDetail) []models.BookingDTO {
	dtos := make([]models.BookingDTO, 0, len(details))
	for _, d := range details {
		dtos = append(dtos, models.NewBookingDTO(d))
	}
	return dtos
}

func (l *Ledger) notify(ctx context.Context, memberID string) {
	if l.listener == nil || memberID == "" {
		return
	}
	l.listener.BookingsChanged(ctx, memberID)
}
