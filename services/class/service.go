// Package class manages classes and their sessions. Every update and delete
// goes through the lifecycle checks in lifecycle.go.
package class

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gymflow/database"
	bookingRepo "gymflow/database/repository/booking"
	classRepo "gymflow/database/repository/class"
	sessionRepo "gymflow/database/repository/session"
	"gymflow/models"
	"gymflow/services/booking"
	"gymflow/services/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	uow      database.UnitOfWork
	classes  classRepo.ClassRepository
	sessions sessionRepo.SessionRepository
	bookings bookingRepo.BookingRepository
	listener booking.ChangeListener
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(
	uow database.UnitOfWork,
	classes classRepo.ClassRepository,
	sessions sessionRepo.SessionRepository,
	bookings bookingRepo.BookingRepository,
	logger *zap.Logger,
) (*Service, error) {
	if uow == nil || classes == nil || sessions == nil || bookings == nil {
		return nil, fmt.Errorf("class service initialization error: one or more dependencies are nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		uow:      uow,
		classes:  classes,
		sessions: sessions,
		bookings: bookings,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// SetChangeListener registers a listener told about every member booked into
// a class whose classType changes.
func (s *Service) SetChangeListener(l booking.ChangeListener) {
	s.listener = l
}

func validateClass(classType string, maxCapacity int) error {
	if strings.TrimSpace(classType) == "" {
		return models.Validationf("classType is required")
	}
	if maxCapacity < 1 {
		return models.Validationf("maxCapacity must be at least 1, got %d", maxCapacity)
	}
	return nil
}

// CreateClass stores a class together with the sessions generated from its
// recurrence rule.
func (s *Service) CreateClass(ctx context.Context, req models.CreateClassRequest) (*models.ClassDTO, error) {
	if err := validateClass(req.ClassType, req.MaxCapacity); err != nil {
		return nil, err
	}
	generated, err := schedule.Generate(req.Recurrence)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	class := &models.Class{
		ID:          uuid.New().String(),
		ClassType:   strings.TrimSpace(req.ClassType),
		MaxCapacity: req.MaxCapacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var stored []models.ClassSession
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.classes.Create(ctx, class); err != nil {
			return err
		}
		created, err := s.sessions.CreateMany(ctx, withClass(generated, class.ID))
		if err != nil {
			return err
		}
		stored = created
		return nil
	})
	if err != nil {
		return nil, s.fail("create class", class.ID, err)
	}

	s.logger.Info("class created",
		zap.String("classId", class.ID),
		zap.String("classType", class.ClassType),
		zap.Int("sessions", len(stored)))
	dto := s.classDTO(class, stored, nil)
	return &dto, nil
}

// GetClass returns a class with its sessions and their booking counts.
func (s *Service) GetClass(ctx context.Context, id string) (*models.ClassDTO, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListByClass(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	counts, err := s.bookings.CountBySessions(ctx, sessionIDs(sessions))
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	dto := s.classDTO(class, sessions, counts)
	return &dto, nil
}

// ListClasses returns every class with its sessions.
func (s *Service) ListClasses(ctx context.Context) ([]models.ClassDTO, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	ids := make([]string, len(classes))
	for i, c := range classes {
		ids[i] = c.ID
	}
	sessions, err := s.sessions.ListByClasses(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	counts, err := s.bookings.CountBySessions(ctx, sessionIDs(sessions))
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	byClass := make(map[string][]models.ClassSession, len(classes))
	for _, sess := range sessions {
		byClass[sess.ClassID] = append(byClass[sess.ClassID], sess)
	}
	dtos := make([]models.ClassDTO, 0, len(classes))
	for i := range classes {
		dtos = append(dtos, s.classDTO(&classes[i], byClass[classes[i].ID], counts))
	}
	return dtos, nil
}

// UpdateClass changes the label and capacity of a class. Capacity may not
// drop below the busiest session's booking count.
func (s *Service) UpdateClass(ctx context.Context, id string, req models.UpdateClassRequest) (*models.ClassDTO, error) {
	if err := validateClass(req.ClassType, req.MaxCapacity); err != nil {
		return nil, err
	}

	var renamed bool
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		class, err := s.classes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		renamed, err = s.applyClassUpdate(ctx, class, req.ClassType, req.MaxCapacity)
		return err
	})
	if err != nil {
		return nil, s.fail("update class", id, err)
	}
	s.logger.Info("class updated", zap.String("classId", id), zap.Int("maxCapacity", req.MaxCapacity))
	if renamed {
		s.notifyBookedMembers(ctx, id)
	}
	return s.GetClass(ctx, id)
}

// applyClassUpdate reports whether the classType changed.
func (s *Service) applyClassUpdate(ctx context.Context, class *models.Class, classType string, maxCapacity int) (bool, error) {
	if maxCapacity < class.MaxCapacity {
		busiest, err := s.bookings.MaxPerSession(ctx, class.ID)
		if err != nil {
			return false, fmt.Errorf("count bookings: %w", err)
		}
		if err := CheckCapacity(maxCapacity, busiest); err != nil {
			return false, err
		}
	}
	classType = strings.TrimSpace(classType)
	renamed := class.ClassType != classType
	class.ClassType = classType
	class.MaxCapacity = maxCapacity
	class.UpdatedAt = s.now().UTC()
	return renamed, s.classes.Update(ctx, class)
}

// notifyBookedMembers runs after commit. Member reports embed the classType,
// so every member booked into the class is told.
func (s *Service) notifyBookedMembers(ctx context.Context, classID string) {
	if s.listener == nil {
		return
	}
	memberIDs, err := s.bookings.MemberIDsByClass(ctx, classID)
	if err != nil {
		s.logger.Warn("could not list booked members", zap.String("classId", classID), zap.Error(err))
		return
	}
	for _, memberID := range memberIDs {
		s.listener.BookingsChanged(ctx, memberID)
	}
}

// UpdateClassWithSessions updates the class, removes the listed sessions and
// adds newly generated ones in one transaction. If any listed session has
// bookings nothing is written.
func (s *Service) UpdateClassWithSessions(ctx context.Context, id string, req models.UpdateClassWithSessionsRequest) (*models.ClassDTO, error) {
	if err := validateClass(req.ClassType, req.MaxCapacity); err != nil {
		return nil, err
	}
	var generated []models.ClassSession
	if req.NewSessions != nil {
		var err error
		if generated, err = schedule.Generate(*req.NewSessions); err != nil {
			return nil, err
		}
	}

	var renamed bool
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		class, err := s.classes.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if len(req.SessionIDsToRemove) > 0 {
			owned, err := s.sessions.ListByClass(ctx, id)
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}
			if err := requireOwned(req.SessionIDsToRemove, owned); err != nil {
				return err
			}
			counts, err := s.bookings.CountBySessions(ctx, req.SessionIDsToRemove)
			if err != nil {
				return fmt.Errorf("count bookings: %w", err)
			}
			if err := CheckBatchRemoval(req.SessionIDsToRemove, counts); err != nil {
				return err
			}
		}

		if renamed, err = s.applyClassUpdate(ctx, class, req.ClassType, req.MaxCapacity); err != nil {
			return err
		}
		if len(req.SessionIDsToRemove) > 0 {
			if _, err := s.sessions.DeleteMany(ctx, req.SessionIDsToRemove); err != nil {
				return err
			}
		}
		if len(generated) > 0 {
			if _, err := s.sessions.CreateMany(ctx, withClass(generated, id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("update class with sessions", id, err)
	}

	s.logger.Info("class updated with sessions",
		zap.String("classId", id),
		zap.Int("removed", len(req.SessionIDsToRemove)),
		zap.Int("added", len(generated)))
	if renamed {
		s.notifyBookedMembers(ctx, id)
	}
	return s.GetClass(ctx, id)
}

// DeleteClass removes a class and all its sessions, provided no session
// holds a booking.
func (s *Service) DeleteClass(ctx context.Context, id string) error {
	var removed int64
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.classes.GetByID(ctx, id); err != nil {
			return err
		}
		total, err := s.bookings.CountByClass(ctx, id)
		if err != nil {
			return fmt.Errorf("count bookings: %w", err)
		}
		if err := CheckClassDelete(id, total); err != nil {
			return err
		}
		if removed, err = s.sessions.DeleteByClass(ctx, id); err != nil {
			return err
		}
		return s.classes.Delete(ctx, id)
	})
	if err != nil {
		return s.fail("delete class", id, err)
	}
	s.logger.Info("class deleted", zap.String("classId", id), zap.Int64("sessionsRemoved", removed))
	return nil
}

// fail logs unexpected errors and passes domain errors through untouched.
func (s *Service) fail(op, id string, err error) error {
	if models.IsValidation(err) || models.IsNotFound(err) || models.IsConflict(err) {
		s.logger.Debug(op+" refused", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Error(op+" failed", zap.String("id", id), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Service) classDTO(class *models.Class, sessions []models.ClassSession, counts map[string]int) models.ClassDTO {
	now := s.now()
	dto := models.ClassDTO{
		ID:          class.ID,
		ClassType:   class.ClassType,
		MaxCapacity: class.MaxCapacity,
		Sessions:    make([]models.ClassSessionDTO, 0, len(sessions)),
	}
	for _, sess := range sessions {
		dto.Sessions = append(dto.Sessions, models.NewClassSessionDTO(sess, class.MaxCapacity, counts[sess.ID], now))
	}
	return dto
}

func withClass(sessions []models.ClassSession, classID string) []models.ClassSession {
	out := make([]models.ClassSession, len(sessions))
	for i, sess := range sessions {
		sess.ClassID = classID
		out[i] = sess
	}
	return out
}

func sessionIDs(sessions []models.ClassSession) []string {
	ids := make([]string, len(sessions))
	for i, sess := range sessions {
		ids[i] = sess.ID
	}
	return ids
}

func requireOwned(ids []string, owned []models.ClassSession) error {
	set := make(map[string]bool, len(owned))
	for _, sess := range owned {
		set[sess.ID] = true
	}
	for _, id := range ids {
		if !set[id] {
			return fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
		}
	}
	return nil
}
