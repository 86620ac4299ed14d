package mocks

import (
	"context"

	"gymflow/models"

	"github.com/stretchr/testify/mock"
)

// SessionRepository is a testify mock of sessionRepo.SessionRepository.
type SessionRepository struct {
	mock.Mock
}

func NewSessionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionRepository {
	m := &SessionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SessionRepository) CreateMany(ctx context.Context, sessions []models.ClassSession) ([]models.ClassSession, error) {
	args := m.Called(ctx, sessions)
	if fn, ok := args.Get(0).(func(context.Context, []models.ClassSession) []models.ClassSession); ok {
		return fn(ctx, sessions), args.Error(1)
	}
	stored, _ := args.Get(0).([]models.ClassSession)
	return stored, args.Error(1)
}

func (m *SessionRepository) GetByID(ctx context.Context, id string) (*models.ClassSession, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*models.ClassSession)
	return session, args.Error(1)
}

func (m *SessionRepository) ListByClass(ctx context.Context, classID string) ([]models.ClassSession, error) {
	args := m.Called(ctx, classID)
	sessions, _ := args.Get(0).([]models.ClassSession)
	return sessions, args.Error(1)
}

func (m *SessionRepository) ListByClasses(ctx context.Context, classIDs []string) ([]models.ClassSession, error) {
	args := m.Called(ctx, classIDs)
	sessions, _ := args.Get(0).([]models.ClassSession)
	return sessions, args.Error(1)
}

func (m *SessionRepository) Update(ctx context.Context, session *models.ClassSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SessionRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *SessionRepository) DeleteByClass(ctx context.Context, classID string) (int64, error) {
	args := m.Called(ctx, classID)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *SessionRepository) Lock(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SessionRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
