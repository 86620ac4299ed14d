package class

import (
	"context"
	"fmt"

	"gymflow/models"
	"gymflow/services/schedule"

	"go.uber.org/zap"
)

// ListSessions returns the sessions of a class in schedule order.
func (s *Service) ListSessions(ctx context.Context, classID string) ([]models.ClassSessionDTO, error) {
	dto, err := s.GetClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	return dto.Sessions, nil
}

// GetSession returns one session of a class.
func (s *Service) GetSession(ctx context.Context, classID, sessionID string) (*models.ClassSessionDTO, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	session, err := s.ownedSession(ctx, classID, sessionID)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookings.CountBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	dto := models.NewClassSessionDTO(*session, class.MaxCapacity, booked, s.now())
	return &dto, nil
}

// AddSessions generates sessions from r and attaches them to the class.
func (s *Service) AddSessions(ctx context.Context, classID string, r models.Recurrence) ([]models.ClassSessionDTO, error) {
	generated, err := schedule.Generate(r)
	if err != nil {
		return nil, err
	}

	var (
		class  *models.Class
		stored []models.ClassSession
	)
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		c, err := s.classes.GetByID(ctx, classID)
		if err != nil {
			return err
		}
		created, err := s.sessions.CreateMany(ctx, withClass(generated, classID))
		if err != nil {
			return err
		}
		class, stored = c, created
		return nil
	})
	if err != nil {
		return nil, s.fail("add sessions", classID, err)
	}

	s.logger.Info("sessions added", zap.String("classId", classID), zap.Int("sessions", len(stored)))
	return s.classDTO(class, stored, nil).Sessions, nil
}

// UpdateSession moves a session to a new date and window. A session with
// bookings only accepts its current values.
func (s *Service) UpdateSession(ctx context.Context, classID, sessionID string, req models.UpdateSessionRequest) (*models.ClassSessionDTO, error) {
	if !req.Date.IsValid() {
		return nil, models.Validationf("date must be a valid date")
	}
	if err := schedule.ValidateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.classes.GetByID(ctx, classID); err != nil {
			return err
		}
		session, err := s.ownedSession(ctx, classID, sessionID)
		if err != nil {
			return err
		}
		if session.SameSlot(req.Date, req.StartTime, req.EndTime) {
			return nil
		}
		booked, err := s.bookings.CountBySession(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("count bookings: %w", err)
		}
		if err := CheckReschedule(*session, req.Date, req.StartTime, req.EndTime, booked); err != nil {
			return err
		}

		session.Date = req.Date
		session.StartTime = req.StartTime
		session.EndTime = req.EndTime
		session.Schedule = models.ScheduleOf(req.Date, req.StartTime)
		return s.sessions.Update(ctx, session)
	})
	if err != nil {
		return nil, s.fail("update session", sessionID, err)
	}

	s.logger.Info("session updated", zap.String("classId", classID), zap.String("sessionId", sessionID))
	return s.GetSession(ctx, classID, sessionID)
}

// DeleteSession removes a session that holds no bookings.
func (s *Service) DeleteSession(ctx context.Context, classID, sessionID string) error {
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.classes.GetByID(ctx, classID); err != nil {
			return err
		}
		if _, err := s.ownedSession(ctx, classID, sessionID); err != nil {
			return err
		}
		booked, err := s.bookings.CountBySession(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("count bookings: %w", err)
		}
		if err := CheckSessionDelete(sessionID, booked); err != nil {
			return err
		}
		return s.sessions.Delete(ctx, sessionID)
	})
	if err != nil {
		return s.fail("delete session", sessionID, err)
	}
	s.logger.Info("session deleted", zap.String("classId", classID), zap.String("sessionId", sessionID))
	return nil
}

// ownedSession loads a session and checks that it belongs to the class.
func (s *Service) ownedSession(ctx context.Context, classID, sessionID string) (*models.ClassSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ClassID != classID {
		return nil, models.ErrSessionNotFound
	}
	return session, nil
}
