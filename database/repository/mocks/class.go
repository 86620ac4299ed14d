package mocks

import (
	"context"

	"gymflow/models"

	"github.com/stretchr/testify/mock"
)

// ClassRepository is a testify mock of classRepo.ClassRepository.
type ClassRepository struct {
	mock.Mock
}

func NewClassRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ClassRepository {
	m := &ClassRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	return m.Called(ctx, class).Error(0)
}

func (m *ClassRepository) GetByID(ctx context.Context, id string) (*models.Class, error) {
	args := m.Called(ctx, id)
	class, _ := args.Get(0).(*models.Class)
	return class, args.Error(1)
}

func (m *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	args := m.Called(ctx)
	classes, _ := args.Get(0).([]models.Class)
	return classes, args.Error(1)
}

func (m *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	return m.Called(ctx, class).Error(0)
}

func (m *ClassRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ClassRepository) Lock(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ClassRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
