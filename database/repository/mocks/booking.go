package mocks

import (
	"context"
	"time"

	"gymflow/models"

	"github.com/stretchr/testify/mock"
)

// BookingRepository is a testify mock of bookingRepo.BookingRepository.
type BookingRepository struct {
	mock.Mock
}

func NewBookingRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *BookingRepository {
	m := &BookingRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*models.Booking)
	return booking, args.Error(1)
}

func (m *BookingRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *BookingRepository) DeleteByMember(ctx context.Context, memberID string) (int64, error) {
	args := m.Called(ctx, memberID)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *BookingRepository) Exists(ctx context.Context, memberID, sessionID string) (bool, error) {
	args := m.Called(ctx, memberID, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepository) CountBySession(ctx context.Context, sessionID string) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

func (m *BookingRepository) CountBySessions(ctx context.Context, sessionIDs []string) (map[string]int, error) {
	args := m.Called(ctx, sessionIDs)
	counts, _ := args.Get(0).(map[string]int)
	return counts, args.Error(1)
}

func (m *BookingRepository) CountByClass(ctx context.Context, classID string) (int, error) {
	args := m.Called(ctx, classID)
	return args.Int(0), args.Error(1)
}

func (m *BookingRepository) MaxPerSession(ctx context.Context, classID string) (int, error) {
	args := m.Called(ctx, classID)
	return args.Int(0), args.Error(1)
}

func (m *BookingRepository) CountScheduledForMember(ctx context.Context, memberID string, from, to time.Time) (int, error) {
	args := m.Called(ctx, memberID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *BookingRepository) GetDetailByID(ctx context.Context, id string) (*models.BookingDetail, error) {
	args := m.Called(ctx, id)
	detail, _ := args.Get(0).(*models.BookingDetail)
	return detail, args.Error(1)
}

func (m *BookingRepository) ListDetailsByMember(ctx context.Context, memberID string) ([]models.BookingDetail, error) {
	args := m.Called(ctx, memberID)
	details, _ := args.Get(0).([]models.BookingDetail)
	return details, args.Error(1)
}

func (m *BookingRepository) ListDetailsByClass(ctx context.Context, classID string) ([]models.BookingDetail, error) {
	args := m.Called(ctx, classID)
	details, _ := args.Get(0).([]models.BookingDetail)
	return details, args.Error(1)
}

func (m *BookingRepository) MemberIDsByClass(ctx context.Context, classID string) ([]string, error) {
	args := m.Called(ctx, classID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *BookingRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
