package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/vytor/learntrack/internal/errors"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/repository"
)

// UserService handles user-related business logic
type UserService interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating user: id=%s", u.ID)

	u.ID = strings.TrimSpace(u.ID)
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	u.ClassName = strings.TrimSpace(u.ClassName)
	if u.ID == "" {
		return nil, errors.NewValidationError("id", "cannot be empty")
	}
	if u.DisplayName == "" {
		return nil, errors.NewValidationError("display_name", "cannot be empty")
	}
	if u.Timezone != "" {
		if _, err := time.LoadLocation(u.Timezone); err != nil {
			return nil, errors.NewValidationError("timezone", "must be an IANA time zone")
		}
	}
	u.CreatedAt = time.Now().UTC()

	if err := s.userRepo.Create(ctx, u); err != nil {
		if stderrors.Is(err, repository.ErrAlreadyExists) {
			return nil, errors.NewAlreadyExistsError("user", u.ID)
		}
		log.Error("failed to create user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("user created: id=%s, class=%s", u.ID, u.ClassName)
	return &u, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return loadUser(ctx, s.userRepo, id)
}

// loadUser fetches a user and maps a missing row to NOT_FOUND.
func loadUser(ctx context.Context, userRepo repository.UserRepository, id string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting user: id=%s", id)

	if strings.TrimSpace(id) == "" {
		return nil, errors.NewValidationError("user_id", "cannot be empty")
	}

	user, err := userRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}
