package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learntrack/internal/errors"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/services"
	"github.com/vytor/learntrack/internal/testutil/mocks"
)

func TestAward_DuplicateKeyIsNoop(t *testing.T) {
	users := new(mocks.MockUserRepository)
	pts := new(mocks.MockPointsRepository)
	users.On("Get", mock.Anything, "u1").Return(testUser("u1", ""), nil)

	byKey := mock.MatchedBy(func(e models.PointsEntry) bool {
		return e.IdempotencyKey == "quiz-q-3" && e.Points == 10 && e.ID != ""
	})
	pts.On("Append", mock.Anything, byKey).Return(true, 10, nil).Once()
	pts.On("Append", mock.Anything, byKey).Return(false, 10, nil).Once()

	svc := services.NewPointsService(users, pts)

	first, err := svc.Award(context.Background(), "u1", 10, "quiz_answer", "quiz-q-3")
	require.NoError(t, err)
	assert.True(t, first.Accepted)
	assert.Equal(t, 10, first.TotalAfter)

	second, err := svc.Award(context.Background(), "u1", 10, "quiz_answer", "quiz-q-3")
	require.NoError(t, err)
	assert.False(t, second.Accepted)
	assert.Equal(t, 10, second.TotalAfter)

	pts.AssertExpectations(t)
}

func TestAward_Validation(t *testing.T) {
	svc := services.NewPointsService(new(mocks.MockUserRepository), new(mocks.MockPointsRepository))

	tests := []struct {
		name   string
		points int
		reason string
		key    string
	}{
		{name: "zero points", points: 0, reason: "r", key: "k"},
		{name: "negative points", points: -5, reason: "r", key: "k"},
		{name: "missing reason", points: 5, reason: " ", key: "k"},
		{name: "missing key", points: 5, reason: "r", key: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Award(context.Background(), "u1", tt.points, tt.reason, tt.key)
			requireCode(t, err, errors.ErrCodeValidation)
		})
	}
}

func TestAward_UnknownUser(t *testing.T) {
	users := new(mocks.MockUserRepository)
	pts := new(mocks.MockPointsRepository)
	users.On("Get", mock.Anything, "ghost").Return(nil, nil)

	_, err := services.NewPointsService(users, pts).Award(context.Background(), "ghost", 5, "r", "k")

	requireCode(t, err, errors.ErrCodeNotFound)
	pts.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestHistoryAndReconcile(t *testing.T) {
	users := new(mocks.MockUserRepository)
	pts := new(mocks.MockPointsRepository)
	users.On("Get", mock.Anything, "u1").Return(testUser("u1", ""), nil)
	pts.On("Total", mock.Anything, "u1").Return(25, nil)
	pts.On("Entries", mock.Anything, "u1", 5).Return([]models.PointsEntry{{Points: 15}, {Points: 10}}, nil)
	pts.On("Reconcile", mock.Anything, "u1").Return(25, nil)
	svc := services.NewPointsService(users, pts)

	h, err := svc.History(context.Background(), "u1", 5)
	require.NoError(t, err)
	assert.Equal(t, 25, h.Total)
	assert.Len(t, h.Entries, 2)

	total, err := svc.Reconcile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 25, total)
}
