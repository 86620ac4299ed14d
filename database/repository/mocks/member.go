package mocks

import (
	"context"

	"gymflow/models"

	"github.com/stretchr/testify/mock"
)

// MemberRepository is a testify mock of memberRepo.MemberRepository.
type MemberRepository struct {
	mock.Mock
}

func NewMemberRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MemberRepository {
	m := &MemberRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MemberRepository) Create(ctx context.Context, member *models.GymMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MemberRepository) GetByID(ctx context.Context, id string) (*models.GymMember, error) {
	args := m.Called(ctx, id)
	member, _ := args.Get(0).(*models.GymMember)
	return member, args.Error(1)
}

func (m *MemberRepository) List(ctx context.Context) ([]models.GymMember, error) {
	args := m.Called(ctx)
	members, _ := args.Get(0).([]models.GymMember)
	return members, args.Error(1)
}

func (m *MemberRepository) Update(ctx context.Context, member *models.GymMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MemberRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MemberRepository) Lock(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MemberRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
