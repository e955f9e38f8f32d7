package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository implementation
func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Get(ctx context.Context, id int64) (*models.Item, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("getting item: id=%d", id)

	var it models.Item
	err := r.db.QueryRowContext(ctx, `
SELECT id, subject, prompt, answer, difficulty, created_at
FROM items
WHERE id = ?
`, id).Scan(&it.ID, &it.Subject, &it.Prompt, &it.Answer, &it.Difficulty, &it.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("item not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get item: %v", err)
		return nil, err
	}
	return &it, nil
}

func (r *itemRepository) Create(ctx context.Context, it models.Item) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("creating item: subject=%s, difficulty=%s", it.Subject, it.Difficulty)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO items (subject, prompt, answer, difficulty, created_at)
VALUES (?, ?, ?, ?, ?)
`, it.Subject, it.Prompt, it.Answer, it.Difficulty, it.CreatedAt.UTC())
	if err != nil {
		log.Error("failed to create item: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get item id: %v", err)
		return 0, err
	}
	log.Debug("item created: id=%d", id)
	return id, nil
}

func (r *itemRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]models.Item, error) {
	log := logger.FromContext(ctx).WithPrefix("item_repo")
	log.Debug("listing items by id: count=%d", len(ids))

	items := make(map[int64]models.Item, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	query, args, err := sqlBuilder.
		Select("id", "subject", "prompt", "answer", "difficulty", "created_at").
		From("items").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		log.Error("failed to build items query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query items: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Subject, &it.Prompt, &it.Answer, &it.Difficulty, &it.CreatedAt); err != nil {
			log.Error("failed to scan item row: %v", err)
			return nil, err
		}
		items[it.ID] = it
	}
	return items, rows.Err()
}
