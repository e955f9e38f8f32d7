package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/learntrack/internal/models"
)

var (
	// ErrConflict is returned when an optimistic write loses to a concurrent one.
	ErrConflict = errors.New("concurrent modification")
	// ErrAlreadyExists is returned when inserting a row whose key is taken.
	ErrAlreadyExists = errors.New("already exists")
)

// UserRepository handles user data access
type UserRepository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user models.User) error
}

// ItemRepository handles item data access
type ItemRepository interface {
	Get(ctx context.Context, id int64) (*models.Item, error)
	Create(ctx context.Context, item models.Item) (int64, error)
	ListByIDs(ctx context.Context, ids []int64) (map[int64]models.Item, error)
}

// ProgressRepository handles per-user item scheduling state. Put stores the
// record and its review event together; it returns ErrConflict when the
// stored version no longer matches record.Version.
type ProgressRepository interface {
	Get(ctx context.Context, userID string, itemID int64) (*models.ProgressRecord, error)
	Put(ctx context.Context, record models.ProgressRecord, event models.ReviewEvent) (models.ProgressRecord, error)
	ListDue(ctx context.Context, userID string, before time.Time, limit int) ([]models.DueItem, error)
	ListUpcoming(ctx context.Context, userID string, after, until time.Time, limit int) ([]models.UpcomingReview, error)
	Summary(ctx context.Context, userID string, now time.Time) (models.ProgressSummary, error)
}

// ReviewEventRepository reads the append-only review log.
type ReviewEventRepository interface {
	Recent(ctx context.Context, userID string, limit int) ([]models.ReviewEvent, error)
}

// PointsRepository handles the points ledger and its running totals.
type PointsRepository interface {
	// Append records entry unless its idempotency key was already used by the
	// user. It returns whether the entry was stored and the resulting total.
	Append(ctx context.Context, entry models.PointsEntry) (bool, int, error)
	Total(ctx context.Context, userID string) (int, error)
	Entries(ctx context.Context, userID string, limit int) ([]models.PointsEntry, error)
	// SumByUser returns every user's total, highest first, optionally
	// restricted to one class. Users without points appear with zero.
	SumByUser(ctx context.Context, className string) ([]models.UserPoints, error)
	// Reconcile rebuilds the running total from the ledger entries.
	Reconcile(ctx context.Context, userID string) (int, error)
}
