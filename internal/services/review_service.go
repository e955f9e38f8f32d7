package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/google/uuid"
	"github.com/vytor/learntrack/internal/errors"
	"github.com/vytor/learntrack/internal/flashcard"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/repository"
	"github.com/vytor/learntrack/internal/streak"
)

// ReviewService schedules reviews and answers questions about a learner's
// review history.
type ReviewService interface {
	ScheduleReview(ctx context.Context, userID string, itemID int64, quality models.Quality, now time.Time) (*models.ProgressRecord, error)
	ScheduleBatch(ctx context.Context, userID string, ratings []models.ReviewRating, now time.Time) ([]models.ProgressRecord, error)
	DueItems(ctx context.Context, userID string, now time.Time, limit int) ([]models.DueItem, error)
	CurrentStreak(ctx context.Context, userID string, now time.Time) (int, error)
}

// ReviewConfig tunes the review service.
type ReviewConfig struct {
	// MaxAttempts bounds how often a review is re-applied after losing a
	// write race on the same progress record.
	MaxAttempts  int
	RetryDelay   time.Duration
	HistoryLimit int
	// DefaultLocation is used for streak days when a user has no time zone.
	DefaultLocation *time.Location
}

type reviewService struct {
	userRepo     repository.UserRepository
	itemRepo     repository.ItemRepository
	progressRepo repository.ProgressRepository
	eventRepo    repository.ReviewEventRepository
	retrier      retry.Retry[models.ProgressRecord]
	cfg          ReviewConfig
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	progressRepo repository.ProgressRepository,
	eventRepo repository.ReviewEventRepository,
	cfg ReviewConfig,
) ReviewService {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 10 * time.Millisecond
	}
	if cfg.HistoryLimit < 1 {
		cfg.HistoryLimit = 100
	}
	if cfg.DefaultLocation == nil {
		cfg.DefaultLocation = time.UTC
	}

	return &reviewService{
		userRepo:     userRepo,
		itemRepo:     itemRepo,
		progressRepo: progressRepo,
		eventRepo:    eventRepo,
		retrier: retry.New[models.ProgressRecord](retry.Config{
			MaxAttempts:   cfg.MaxAttempts,
			InitialDelay:  cfg.RetryDelay,
			MaxDelay:      20 * cfg.RetryDelay,
			Multiplier:    2.0,
			BackoffPolicy: retry.BackoffExponential,
			Jitter:        true,
			IsRetryable: func(err error) bool {
				return stderrors.Is(err, repository.ErrConflict)
			},
		}),
		cfg: cfg,
	}
}

func (s *reviewService) ScheduleReview(ctx context.Context, userID string, itemID int64, quality models.Quality, now time.Time) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("scheduling review: user_id=%s, item_id=%d, quality=%d", userID, itemID, quality)

	if !quality.Valid() {
		return nil, errors.NewValidationError("quality", "must be 1, 3 or 5")
	}
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	if _, err := loadItem(ctx, s.itemRepo, itemID); err != nil {
		return nil, err
	}

	rec, err := s.apply(ctx, userID, itemID, quality, now)
	if err != nil {
		return nil, err
	}
	log.Info("review scheduled: user_id=%s, item_id=%d, repetitions=%d, interval=%.1f, due=%s",
		userID, itemID, rec.Repetitions, rec.IntervalDays, rec.NextReviewDueAt.Format(time.RFC3339))
	return &rec, nil
}

// ScheduleBatch validates every rating before applying any of them. Ratings
// are then applied in order; a storage failure part way through leaves the
// earlier ratings in place.
func (s *reviewService) ScheduleBatch(ctx context.Context, userID string, ratings []models.ReviewRating, now time.Time) ([]models.ProgressRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("scheduling review batch: user_id=%s, size=%d", userID, len(ratings))

	if len(ratings) == 0 {
		return nil, errors.NewValidationError("ratings", "cannot be empty")
	}
	seen := make(map[int64]bool, len(ratings))
	ids := make([]int64, 0, len(ratings))
	for i, r := range ratings {
		field := fmt.Sprintf("ratings[%d]", i)
		if r.ItemID <= 0 {
			return nil, errors.NewValidationError(field+".item_id", "must be positive")
		}
		if !r.Quality.Valid() {
			return nil, errors.NewValidationError(field+".quality", "must be 1, 3 or 5")
		}
		if seen[r.ItemID] {
			return nil, errors.NewValidationError(field+".item_id", fmt.Sprintf("item %d appears more than once", r.ItemID))
		}
		seen[r.ItemID] = true
		ids = append(ids, r.ItemID)
	}

	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListByIDs(ctx, ids)
	if err != nil {
		log.Error("failed to load batch items: %v", err)
		return nil, errors.NewInternalError(err)
	}
	for _, id := range ids {
		if _, ok := items[id]; !ok {
			return nil, errors.NewNotFoundError("item", id)
		}
	}

	out := make([]models.ProgressRecord, 0, len(ratings))
	for _, r := range ratings {
		rec, err := s.apply(ctx, userID, r.ItemID, r.Quality, now)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	log.Info("review batch scheduled: user_id=%s, size=%d", userID, len(out))
	return out, nil
}

// apply reads the latest progress, schedules and writes it, starting over
// from a fresh read whenever a concurrent review wins the write.
func (s *reviewService) apply(ctx context.Context, userID string, itemID int64, quality models.Quality, now time.Time) (models.ProgressRecord, error) {
	log := logger.FromContext(ctx)

	var lastErr error
	attempts := 0
	rec, err := s.retrier.Do(ctx, func(ctx context.Context) (models.ProgressRecord, error) {
		attempts++
		current, err := s.progressRepo.Get(ctx, userID, itemID)
		if err != nil {
			lastErr = err
			return models.ProgressRecord{}, err
		}

		next, err := flashcard.Schedule(current, quality, now)
		if err != nil {
			lastErr = err
			return models.ProgressRecord{}, err
		}
		next.UserID = userID
		next.ItemID = itemID

		event := models.ReviewEvent{
			ID:         uuid.NewString(),
			UserID:     userID,
			ItemID:     itemID,
			Quality:    quality,
			ReviewedAt: now.UTC(),
		}
		stored, err := s.progressRepo.Put(ctx, next, event)
		lastErr = err
		if stderrors.Is(err, repository.ErrConflict) {
			log.Debug("progress write conflict, retrying: user_id=%s, item_id=%d, attempt=%d", userID, itemID, attempts)
		}
		return stored, err
	})
	if err == nil {
		return rec, nil
	}

	if lastErr == nil {
		lastErr = err
	}
	switch {
	case stderrors.Is(lastErr, repository.ErrConflict):
		log.Warn("giving up on contended progress record: user_id=%s, item_id=%d, attempts=%d", userID, itemID, attempts)
		return models.ProgressRecord{}, errors.NewConflictError("progress", lastErr)
	case stderrors.Is(lastErr, flashcard.ErrInvalidQuality):
		return models.ProgressRecord{}, errors.NewValidationError("quality", "must be 1, 3 or 5")
	default:
		log.Error("failed to schedule review: %v", lastErr)
		return models.ProgressRecord{}, errors.NewInternalError(lastErr)
	}
}

func (s *reviewService) DueItems(ctx context.Context, userID string, now time.Time, limit int) ([]models.DueItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing due items: user_id=%s, limit=%d", userID, limit)

	if limit < 1 {
		return nil, errors.NewValidationError("limit", "must be at least 1")
	}
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	due, err := s.progressRepo.ListDue(ctx, userID, now, limit)
	if err != nil {
		log.Error("failed to list due items: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if due == nil {
		due = []models.DueItem{}
	}
	return due, nil
}

func (s *reviewService) CurrentStreak(ctx context.Context, userID string, now time.Time) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing streak: user_id=%s", userID)

	user, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return 0, err
	}
	events, err := s.eventRepo.Recent(ctx, userID, s.cfg.HistoryLimit)
	if err != nil {
		log.Error("failed to load review history: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return streakFor(events, user.Location(s.cfg.DefaultLocation), now), nil
}

// streakFor counts the streak on the learner's own calendar.
func streakFor(events []models.ReviewEvent, loc *time.Location, now time.Time) int {
	timestamps := make([]time.Time, len(events))
	for i, e := range events {
		timestamps[i] = e.ReviewedAt
	}
	return streak.Current(timestamps, now.In(loc))
}
