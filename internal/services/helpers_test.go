package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/learntrack/internal/errors"
	"github.com/vytor/learntrack/internal/models"
)

var now = time.Date(2025, 4, 2, 15, 0, 0, 0, time.UTC)

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, appErr.Message)
}

func testUser(id, class string) *models.User {
	return &models.User{ID: id, DisplayName: id, ClassName: class}
}

func testItem(id int64, answer string, d models.Difficulty) *models.Item {
	return &models.Item{ID: id, Subject: "animals", Prompt: "prompt", Answer: answer, Difficulty: d}
}
