package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learntrack/internal/models"
)

// MockReviewEventRepository is a mock implementation of repository.ReviewEventRepository
type MockReviewEventRepository struct {
	mock.Mock
}

func (m *MockReviewEventRepository) Recent(ctx context.Context, userID string, limit int) ([]models.ReviewEvent, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewEvent), args.Error(1)
}
