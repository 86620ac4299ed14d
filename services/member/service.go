// Package member manages gym members and their plans.
package member

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gymflow/database"
	bookingRepo "gymflow/database/repository/booking"
	memberRepo "gymflow/database/repository/member"
	"gymflow/models"
	"gymflow/services/booking"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MemberService interface {
	CreateMember(ctx context.Context, req models.MemberRequest) (*models.GymMember, error)
	GetMember(ctx context.Context, id string) (*models.GymMember, error)
	ListMembers(ctx context.Context) ([]models.GymMember, error)
	UpdateMember(ctx context.Context, id string, req models.MemberRequest) (*models.GymMember, error)
	DeleteMember(ctx context.Context, id string) error
}

type Service struct {
	uow      database.UnitOfWork
	members  memberRepo.MemberRepository
	bookings bookingRepo.BookingRepository
	listener booking.ChangeListener
	logger   *zap.Logger
	now      func() time.Time
}

var _ MemberService = (*Service)(nil)

func NewService(
	uow database.UnitOfWork,
	members memberRepo.MemberRepository,
	bookings bookingRepo.BookingRepository,
	logger *zap.Logger,
) (*Service, error) {
	if uow == nil || members == nil || bookings == nil {
		return nil, fmt.Errorf("member service initialization error: one or more dependencies are nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{uow: uow, members: members, bookings: bookings, logger: logger, now: time.Now}, nil
}

// SetChangeListener registers a listener told when a member is edited or
// deleted.
func (s *Service) SetChangeListener(l booking.ChangeListener) {
	s.listener = l
}

func validate(req models.MemberRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return models.Validationf("name is required")
	}
	if !req.PlanType.Valid() {
		return models.Validationf("planType %d is not a known plan", req.PlanType)
	}
	return nil
}

func (s *Service) CreateMember(ctx context.Context, req models.MemberRequest) (*models.GymMember, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	member := &models.GymMember{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		PlanType:  req.PlanType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	s.logger.Info("gym member created", zap.String("memberId", member.ID), zap.Stringer("plan", member.PlanType))
	return member, nil
}

func (s *Service) GetMember(ctx context.Context, id string) (*models.GymMember, error) {
	return s.members.GetByID(ctx, id)
}

func (s *Service) ListMembers(ctx context.Context) ([]models.GymMember, error) {
	return s.members.List(ctx)
}

func (s *Service) UpdateMember(ctx context.Context, id string, req models.MemberRequest) (*models.GymMember, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	member.Name = strings.TrimSpace(req.Name)
	member.PlanType = req.PlanType
	member.UpdatedAt = s.now().UTC()
	if err := s.members.Update(ctx, member); err != nil {
		return nil, err
	}
	// Reports carry the member's name and plan.
	if s.listener != nil {
		s.listener.BookingsChanged(ctx, id)
	}
	return member, nil
}

// DeleteMember removes the member and all of their bookings.
func (s *Service) DeleteMember(ctx context.Context, id string) error {
	var removed int64
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.members.GetByID(ctx, id); err != nil {
			return err
		}
		n, err := s.bookings.DeleteByMember(ctx, id)
		if err != nil {
			return err
		}
		removed = n
		return s.members.Delete(ctx, id)
	})
	if err != nil {
		if models.IsNotFound(err) {
			return err
		}
		s.logger.Error("delete member failed", zap.String("memberId", id), zap.Error(err))
		return fmt.Errorf("delete member: %w", err)
	}
	s.logger.Info("gym member deleted", zap.String("memberId", id), zap.Int64("bookingsRemoved", removed))
	if s.listener != nil {
		s.listener.BookingsChanged(ctx, id)
	}
	return nil
}
