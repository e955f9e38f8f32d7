package services

import (
	"context"
	"strings"
	"time"

	"github.com/vytor/learntrack/internal/errors"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/repository"
)

// ItemService handles vocabulary and quiz item business logic
type ItemService interface {
	CreateItem(ctx context.Context, item models.Item) (*models.Item, error)
	GetItem(ctx context.Context, id int64) (*models.Item, error)
}

type itemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo repository.ItemRepository) ItemService {
	return &itemService{itemRepo: itemRepo}
}

func (s *itemService) CreateItem(ctx context.Context, it models.Item) (*models.Item, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating item: subject=%s", it.Subject)

	it.Subject = strings.TrimSpace(it.Subject)
	it.Prompt = strings.TrimSpace(it.Prompt)
	it.Answer = strings.TrimSpace(it.Answer)
	switch {
	case it.Subject == "":
		return nil, errors.NewValidationError("subject", "cannot be empty")
	case it.Prompt == "":
		return nil, errors.NewValidationError("prompt", "cannot be empty")
	case it.Answer == "":
		return nil, errors.NewValidationError("answer", "cannot be empty")
	case !it.Difficulty.Valid():
		return nil, errors.NewValidationError("difficulty", "must be easy, medium or hard")
	}
	it.CreatedAt = time.Now().UTC()

	id, err := s.itemRepo.Create(ctx, it)
	if err != nil {
		log.Error("failed to create item: %v", err)
		return nil, errors.NewInternalError(err)
	}
	it.ID = id
	return &it, nil
}

func (s *itemService) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	return loadItem(ctx, s.itemRepo, id)
}

func loadItem(ctx context.Context, itemRepo repository.ItemRepository, id int64) (*models.Item, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting item: id=%d", id)

	if id <= 0 {
		return nil, errors.NewValidationError("item_id", "must be positive")
	}

	item, err := itemRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get item: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("item", id)
	}
	return item, nil
}
