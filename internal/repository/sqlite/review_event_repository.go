package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/repository"
)

type reviewEventRepository struct {
	db *sql.DB
}

// NewReviewEventRepository creates a new ReviewEventRepository implementation
func NewReviewEventRepository(db *sql.DB) repository.ReviewEventRepository {
	return &reviewEventRepository{db: db}
}

func (r *reviewEventRepository) Recent(ctx context.Context, userID string, limit int) ([]models.ReviewEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("review_event_repo")
	log.Debug("listing recent review events: user_id=%s, limit=%d", userID, limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, item_id, quality, reviewed_at
FROM review_events
WHERE user_id = ?
ORDER BY reviewed_at DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to query review events: %v", err)
		return nil, err
	}
	defer rows.Close()

	var events []models.ReviewEvent
	for rows.Next() {
		var e models.ReviewEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.ItemID, &e.Quality, &e.ReviewedAt); err != nil {
			log.Error("failed to scan review event row: %v", err)
			return nil, err
		}
		events = append(events, e)
	}
	log.Debug("found %d review events", len(events))
	return events, rows.Err()
}
