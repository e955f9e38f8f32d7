package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/learntrack/internal/errors"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/repository"
)

// PointsHistory is a user's running total with their latest ledger entries.
type PointsHistory struct {
	Total   int                  `json:"total"`
	Entries []models.PointsEntry `json:"entries"`
}

// PointsService records point awards in the ledger.
type PointsService interface {
	Award(ctx context.Context, userID string, points int, reasonCode, idempotencyKey string) (*models.AwardResult, error)
	History(ctx context.Context, userID string, limit int) (*PointsHistory, error)
	Reconcile(ctx context.Context, userID string) (int, error)
}

type pointsService struct {
	userRepo   repository.UserRepository
	pointsRepo repository.PointsRepository
}

// NewPointsService creates a new PointsService
func NewPointsService(userRepo repository.UserRepository, pointsRepo repository.PointsRepository) PointsService {
	return &pointsService{userRepo: userRepo, pointsRepo: pointsRepo}
}

// Award appends a ledger entry. Reusing an idempotency key is not an error:
// the result reports accepted=false with the unchanged total.
func (s *pointsService) Award(ctx context.Context, userID string, points int, reasonCode, idempotencyKey string) (*models.AwardResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("awarding points: user_id=%s, points=%d, reason=%s, key=%s", userID, points, reasonCode, idempotencyKey)

	reasonCode = strings.TrimSpace(reasonCode)
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	switch {
	case points <= 0:
		return nil, errors.NewValidationError("points", "must be positive")
	case reasonCode == "":
		return nil, errors.NewValidationError("reason_code", "cannot be empty")
	case idempotencyKey == "":
		return nil, errors.NewValidationError("idempotency_key", "cannot be empty")
	}
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	accepted, total, err := s.pointsRepo.Append(ctx, models.PointsEntry{
		ID:             uuid.NewString(),
		UserID:         userID,
		ReasonCode:     reasonCode,
		Points:         points,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		log.Error("failed to append points entry: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if accepted {
		log.Info("points awarded: user_id=%s, points=%d, total=%d", userID, points, total)
	} else {
		log.Debug("points already awarded: user_id=%s, key=%s", userID, idempotencyKey)
	}
	return &models.AwardResult{Accepted: accepted, TotalAfter: total}, nil
}

func (s *pointsService) History(ctx context.Context, userID string, limit int) (*PointsHistory, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading points history: user_id=%s, limit=%d", userID, limit)

	if limit < 1 {
		return nil, errors.NewValidationError("limit", "must be at least 1")
	}
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	total, err := s.pointsRepo.Total(ctx, userID)
	if err != nil {
		log.Error("failed to get points total: %v", err)
		return nil, errors.NewInternalError(err)
	}
	entries, err := s.pointsRepo.Entries(ctx, userID, limit)
	if err != nil {
		log.Error("failed to list points entries: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &PointsHistory{Total: total, Entries: entries}, nil
}

func (s *pointsService) Reconcile(ctx context.Context, userID string) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("reconciling points: user_id=%s", userID)

	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return 0, err
	}
	total, err := s.pointsRepo.Reconcile(ctx, userID)
	if err != nil {
		log.Error("failed to reconcile points: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return total, nil
}
