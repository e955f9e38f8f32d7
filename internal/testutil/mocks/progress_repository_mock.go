package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learntrack/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, userID string, itemID int64) (*models.ProgressRecord, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) Put(ctx context.Context, record models.ProgressRecord, event models.ReviewEvent) (models.ProgressRecord, error) {
	args := m.Called(ctx, record, event)
	if fn, ok := args.Get(0).(func(context.Context, models.ProgressRecord, models.ReviewEvent) models.ProgressRecord); ok {
		return fn(ctx, record, event), args.Error(1)
	}
	return args.Get(0).(models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) ListDue(ctx context.Context, userID string, before time.Time, limit int) ([]models.DueItem, error) {
	args := m.Called(ctx, userID, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DueItem), args.Error(1)
}

func (m *MockProgressRepository) ListUpcoming(ctx context.Context, userID string, after, until time.Time, limit int) ([]models.UpcomingReview, error) {
	args := m.Called(ctx, userID, after, until, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UpcomingReview), args.Error(1)
}

func (m *MockProgressRepository) Summary(ctx context.Context, userID string, now time.Time) (models.ProgressSummary, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(models.ProgressSummary), args.Error(1)
}
