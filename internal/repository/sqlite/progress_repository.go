package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

const progressColumns = `user_id, item_id, repetitions, interval_days, last_reviewed_at, next_review_due_at, last_quality, version, created_at, updated_at`

func (r *progressRepository) Get(ctx context.Context, userID string, itemID int64) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%s, item_id=%d", userID, itemID)

	var p models.ProgressRecord
	err := r.db.QueryRowContext(ctx, `
SELECT `+progressColumns+`
FROM progress_records
WHERE user_id = ? AND item_id = ?
`, userID, itemID).Scan(&p.UserID, &p.ItemID, &p.Repetitions, &p.IntervalDays, &p.LastReviewedAt,
		&p.NextReviewDueAt, &p.LastQuality, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("progress not found: user_id=%s, item_id=%d", userID, itemID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

// Put writes rec if its version still matches the stored row, or creates it
// when rec.Version is zero, and appends ev in the same transaction.
func (r *progressRepository) Put(ctx context.Context, rec models.ProgressRecord, ev models.ReviewEvent) (models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("putting progress: user_id=%s, item_id=%d, version=%d, repetitions=%d, interval=%.1f",
		rec.UserID, rec.ItemID, rec.Version, rec.Repetitions, rec.IntervalDays)

	stored := rec
	stored.Version = rec.Version + 1
	stored.NextReviewDueAt = rec.NextReviewDueAt.UTC()
	stored.CreatedAt = rec.CreatedAt.UTC()
	stored.UpdatedAt = rec.UpdatedAt.UTC()
	if rec.LastReviewedAt != nil {
		t := rec.LastReviewedAt.UTC()
		stored.LastReviewedAt = &t
	}

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		var res sql.Result
		var err error
		if rec.Version == 0 {
			res, err = tx.ExecContext(ctx, `
INSERT INTO progress_records (`+progressColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, item_id) DO NOTHING
`, stored.UserID, stored.ItemID, stored.Repetitions, stored.IntervalDays, stored.LastReviewedAt,
				stored.NextReviewDueAt, stored.LastQuality, stored.Version, stored.CreatedAt, stored.UpdatedAt)
		} else {
			res, err = tx.ExecContext(ctx, `
UPDATE progress_records
SET repetitions = ?, interval_days = ?, last_reviewed_at = ?, next_review_due_at = ?,
    last_quality = ?, version = ?, updated_at = ?
WHERE user_id = ? AND item_id = ? AND version = ?
`, stored.Repetitions, stored.IntervalDays, stored.LastReviewedAt, stored.NextReviewDueAt,
				stored.LastQuality, stored.Version, stored.UpdatedAt, stored.UserID, stored.ItemID, rec.Version)
		}
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return repository.ErrConflict
		}

		_, err = tx.ExecContext(ctx, `
INSERT INTO review_events (id, user_id, item_id, quality, reviewed_at)
VALUES (?, ?, ?, ?, ?)
`, ev.ID, ev.UserID, ev.ItemID, ev.Quality, ev.ReviewedAt.UTC())
		return err
	})
	if errors.Is(err, repository.ErrConflict) {
		log.Debug("progress write lost race: user_id=%s, item_id=%d, version=%d", rec.UserID, rec.ItemID, rec.Version)
		return models.ProgressRecord{}, err
	}
	if err != nil {
		log.Error("failed to put progress: %v", err)
		return models.ProgressRecord{}, err
	}
	log.Debug("progress stored: user_id=%s, item_id=%d, version=%d", stored.UserID, stored.ItemID, stored.Version)
	return stored, nil
}

func (r *progressRepository) ListDue(ctx context.Context, userID string, before time.Time, limit int) ([]models.DueItem, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing due items: user_id=%s, before=%s, limit=%d", userID, before.UTC().Format(time.RFC3339), limit)

	query := sqlBuilder.Select(
		"p.user_id", "p.item_id", "p.repetitions", "p.interval_days", "p.last_reviewed_at",
		"p.next_review_due_at", "p.last_quality", "p.version", "p.created_at", "p.updated_at",
		"i.id", "i.subject", "i.prompt", "i.answer", "i.difficulty", "i.created_at",
	).
		From("progress_records p").
		Join("items i ON i.id = p.item_id").
		Where(squirrel.Eq{"p.user_id": userID}).
		Where(squirrel.LtOrEq{"p.next_review_due_at": before.UTC()}).
		OrderBy("p.next_review_due_at ASC", "p.item_id ASC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	q, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build due query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("failed to query due items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var due []models.DueItem
	for rows.Next() {
		var d models.DueItem
		p := &d.Progress
		if err := rows.Scan(&p.UserID, &p.ItemID, &p.Repetitions, &p.IntervalDays, &p.LastReviewedAt,
			&p.NextReviewDueAt, &p.LastQuality, &p.Version, &p.CreatedAt, &p.UpdatedAt,
			&d.Item.ID, &d.Item.Subject, &d.Item.Prompt, &d.Item.Answer, &d.Item.Difficulty, &d.Item.CreatedAt); err != nil {
			log.Error("failed to scan due row: %v", err)
			return nil, err
		}
		due = append(due, d)
	}
	log.Debug("found %d due items", len(due))
	return due, rows.Err()
}

// ListUpcoming returns reviews due in the window (after, until], soonest first.
func (r *progressRepository) ListUpcoming(ctx context.Context, userID string, after, until time.Time, limit int) ([]models.UpcomingReview, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing upcoming reviews: user_id=%s, limit=%d", userID, limit)

	query := sqlBuilder.Select(
		"p.item_id", "i.prompt", "i.subject", "i.difficulty", "p.repetitions", "p.next_review_due_at",
	).
		From("progress_records p").
		Join("items i ON i.id = p.item_id").
		Where(squirrel.Eq{"p.user_id": userID}).
		Where(squirrel.Gt{"p.next_review_due_at": after.UTC()}).
		Where(squirrel.LtOrEq{"p.next_review_due_at": until.UTC()}).
		OrderBy("p.next_review_due_at ASC", "p.item_id ASC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	q, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build upcoming query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("failed to query upcoming reviews: %v", err)
		return nil, err
	}
	defer rows.Close()

	upcoming := []models.UpcomingReview{}
	for rows.Next() {
		var u models.UpcomingReview
		if err := rows.Scan(&u.ItemID, &u.Prompt, &u.Subject, &u.Difficulty, &u.Repetitions, &u.NextReviewDueAt); err != nil {
			log.Error("failed to scan upcoming row: %v", err)
			return nil, err
		}
		upcoming = append(upcoming, u)
	}
	return upcoming, rows.Err()
}

func (r *progressRepository) Summary(ctx context.Context, userID string, now time.Time) (models.ProgressSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("summarizing progress: user_id=%s", userID)

	var s models.ProgressSummary
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(SUM(CASE WHEN next_review_due_at <= ? THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN repetitions >= ? THEN 1 ELSE 0 END), 0)
FROM progress_records
WHERE user_id = ?
`, now.UTC(), models.MasteryThreshold, userID).Scan(&s.Total, &s.Due, &s.Mastered)
	if err != nil {
		log.Error("failed to summarize progress: %v", err)
		return models.ProgressSummary{}, err
	}
	return s, nil
}
