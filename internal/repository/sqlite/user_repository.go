package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%s", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, display_name, class_name, timezone, created_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.DisplayName, &u.ClassName, &u.Timezone, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, u models.User) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("creating user: id=%s, class=%s", u.ID, u.ClassName)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, display_name, class_name, timezone, created_at)
VALUES (?, ?, ?, ?, ?)
`, u.ID, u.DisplayName, u.ClassName, u.Timezone, u.CreatedAt.UTC())
	if isUniqueViolation(err) {
		log.Debug("user already exists: id=%s", u.ID)
		return repository.ErrAlreadyExists
	}
	if err != nil {
		log.Error("failed to create user: %v", err)
	}
	return err
}
