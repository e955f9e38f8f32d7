package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learntrack/internal/db"
	"github.com/vytor/learntrack/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// A single connection is kept open so every query sees the same database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB), "failed to apply migrations")
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// SeedUser inserts a user row directly.
func SeedUser(t *testing.T, sqlDB *sql.DB, id, displayName, className string) models.User {
	u := models.User{
		ID:          id,
		DisplayName: displayName,
		ClassName:   className,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := sqlDB.Exec(`INSERT INTO users (id, display_name, class_name, timezone, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.DisplayName, u.ClassName, u.Timezone, u.CreatedAt)
	require.NoError(t, err)
	return u
}

// SeedItem inserts an item row directly and returns it with its id.
func SeedItem(t *testing.T, sqlDB *sql.DB, subject, prompt, answer string, difficulty models.Difficulty) models.Item {
	it := models.Item{
		Subject:    subject,
		Prompt:     prompt,
		Answer:     answer,
		Difficulty: difficulty,
		CreatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	res, err := sqlDB.Exec(`INSERT INTO items (subject, prompt, answer, difficulty, created_at) VALUES (?, ?, ?, ?, ?)`,
		it.Subject, it.Prompt, it.Answer, it.Difficulty, it.CreatedAt)
	require.NoError(t, err)
	it.ID, err = res.LastInsertId()
	require.NoError(t, err)
	return it
}
