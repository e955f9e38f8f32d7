package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learntrack/internal/models"
)

// MockPointsRepository is a mock implementation of repository.PointsRepository
type MockPointsRepository struct {
	mock.Mock
}

func (m *MockPointsRepository) Append(ctx context.Context, entry models.PointsEntry) (bool, int, error) {
	args := m.Called(ctx, entry)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockPointsRepository) Total(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPointsRepository) Entries(ctx context.Context, userID string, limit int) ([]models.PointsEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PointsEntry), args.Error(1)
}

func (m *MockPointsRepository) SumByUser(ctx context.Context, className string) ([]models.UserPoints, error) {
	args := m.Called(ctx, className)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserPoints), args.Error(1)
}

func (m *MockPointsRepository) Reconcile(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
