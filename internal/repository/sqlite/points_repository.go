package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/repository"
)

type pointsRepository struct {
	db *sqlx.DB
}

// NewPointsRepository creates a new PointsRepository implementation
func NewPointsRepository(db *sql.DB) repository.PointsRepository {
	return &pointsRepository{db: sqlx.NewDb(db, "sqlite3")}
}

func (r *pointsRepository) txx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("points_repo")
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	return nil
}

func (r *pointsRepository) Append(ctx context.Context, e models.PointsEntry) (bool, int, error) {
	log := logger.FromContext(ctx).WithPrefix("points_repo")
	log.Debug("appending points entry: user_id=%s, key=%s, points=%d", e.UserID, e.IdempotencyKey, e.Points)

	e.CreatedAt = e.CreatedAt.UTC()

	var accepted bool
	var total int
	err := r.txx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, `
INSERT INTO points_entries (id, user_id, reason_code, points, idempotency_key, created_at)
VALUES (:id, :user_id, :reason_code, :points, :idempotency_key, :created_at)
ON CONFLICT(user_id, idempotency_key) DO NOTHING
`, e)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}

		if n > 0 {
			accepted = true
			if _, err := tx.ExecContext(ctx, `
INSERT INTO user_point_totals (user_id, total, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET total = total + excluded.total, updated_at = excluded.updated_at
`, e.UserID, e.Points, e.CreatedAt); err != nil {
				return err
			}
		}

		return tx.GetContext(ctx, &total, `SELECT COALESCE((SELECT total FROM user_point_totals WHERE user_id = ?), 0)`, e.UserID)
	})
	if err != nil {
		log.Error("failed to append points entry: %v", err)
		return false, 0, err
	}
	if accepted {
		log.Debug("points entry stored: user_id=%s, total=%d", e.UserID, total)
	} else {
		log.Debug("duplicate idempotency key ignored: user_id=%s, key=%s", e.UserID, e.IdempotencyKey)
	}
	return accepted, total, nil
}

func (r *pointsRepository) Total(ctx context.Context, userID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("points_repo")
	log.Debug("getting points total: user_id=%s", userID)

	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COALESCE((SELECT total FROM user_point_totals WHERE user_id = ?), 0)`, userID)
	if err != nil {
		log.Error("failed to get points total: %v", err)
		return 0, err
	}
	return total, nil
}

func (r *pointsRepository) Entries(ctx context.Context, userID string, limit int) ([]models.PointsEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("points_repo")
	log.Debug("listing points entries: user_id=%s, limit=%d", userID, limit)

	entries := []models.PointsEntry{}
	err := r.db.SelectContext(ctx, &entries, `
SELECT id, user_id, reason_code, points, idempotency_key, created_at
FROM points_entries
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to list points entries: %v", err)
		return nil, err
	}
	return entries, nil
}

// SumByUser orders ties by account age so positional ranks stay stable
// between snapshots.
func (r *pointsRepository) SumByUser(ctx context.Context, className string) ([]models.UserPoints, error) {
	log := logger.FromContext(ctx).WithPrefix("points_repo")
	log.Debug("summing points by user: class=%q", className)

	query := sqlBuilder.Select(
		"u.id AS user_id", "u.display_name AS display_name", "u.class_name AS class_name", "COALESCE(t.total, 0) AS points",
	).
		From("users u").
		LeftJoin("user_point_totals t ON t.user_id = u.id").
		OrderBy("points DESC", "u.created_at ASC", "u.id ASC")
	if className != "" {
		query = query.Where(squirrel.Eq{"u.class_name": className})
	}

	q, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build totals query: %v", err)
		return nil, err
	}

	var totals []models.UserPoints
	if err := r.db.SelectContext(ctx, &totals, q, args...); err != nil {
		log.Error("failed to sum points by user: %v", err)
		return nil, err
	}
	log.Debug("summed points for %d users", len(totals))
	return totals, nil
}

func (r *pointsRepository) Reconcile(ctx context.Context, userID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("points_repo")
	log.Debug("reconciling points total: user_id=%s", userID)

	var total int
	err := r.txx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &total, `SELECT COALESCE(SUM(points), 0) FROM points_entries WHERE user_id = ?`, userID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
INSERT INTO user_point_totals (user_id, total, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET total = excluded.total, updated_at = excluded.updated_at
`, userID, total, time.Now().UTC())
		return err
	})
	if err != nil {
		log.Error("failed to reconcile points total: %v", err)
		return 0, err
	}
	log.Info("points total reconciled: user_id=%s, total=%d", userID, total)
	return total, nil
}
