package services

import (
	"context"

	"github.com/vytor/learntrack/internal/errors"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/ranking"
	"github.com/vytor/learntrack/internal/repository"
	"golang.org/x/sync/singleflight"
)

// LeaderboardService ranks users by their point totals.
type LeaderboardService interface {
	// Ranked returns the full ranking, of one class when className is set.
	Ranked(ctx context.Context, className string) ([]models.RankedUser, error)
	Leaderboard(ctx context.Context, q models.LeaderboardQuery) (*models.LeaderboardPage, error)
	RankGap(ctx context.Context, userID string, classOnly bool) (*models.RankGap, error)
}

type leaderboardService struct {
	userRepo   repository.UserRepository
	pointsRepo repository.PointsRepository
	loads      singleflight.Group
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(userRepo repository.UserRepository, pointsRepo repository.PointsRepository) LeaderboardService {
	return &leaderboardService{userRepo: userRepo, pointsRepo: pointsRepo}
}

// Ranked coalesces concurrent loads of the same snapshot. Callers must treat
// the returned slice as read-only since it may be shared. The shared load
// ignores the cancellation of whichever caller started it; each caller only
// stops waiting when its own context ends.
func (s *leaderboardService) Ranked(ctx context.Context, className string) ([]models.RankedUser, error) {
	log := logger.FromContext(ctx)
	loadCtx := context.WithoutCancel(ctx)

	ch := s.loads.DoChan("class:"+className, func() (interface{}, error) {
		log.Debug("loading leaderboard snapshot: class=%q", className)
		totals, err := s.pointsRepo.SumByUser(loadCtx, className)
		if err != nil {
			return nil, err
		}
		return ranking.Rank(totals), nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		log.Warn("leaderboard load abandoned: class=%q: %v", className, ctx.Err())
		return nil, errors.NewInternalError(ctx.Err())
	case res = <-ch:
	}

	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		log.Error("failed to load leaderboard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if shared {
		log.Debug("leaderboard snapshot shared with concurrent caller: class=%q", className)
	}
	return v.([]models.RankedUser), nil
}

// Leaderboard ranks the whole population (or class) first and only then
// applies search and pagination, so ranks never depend on the filter.
func (s *leaderboardService) Leaderboard(ctx context.Context, q models.LeaderboardQuery) (*models.LeaderboardPage, error) {
	log := logger.FromContext(ctx)
	log.Debug("building leaderboard: class=%q, search=%q, limit=%d, offset=%d", q.ClassName, q.Search, q.Limit, q.Offset)

	if q.Limit < 0 {
		return nil, errors.NewValidationError("limit", "cannot be negative")
	}
	if q.Offset < 0 {
		return nil, errors.NewValidationError("offset", "cannot be negative")
	}

	ranked, err := s.Ranked(ctx, q.ClassName)
	if err != nil {
		return nil, err
	}
	page := ranking.Page(ranking.Filter(ranked, q.Search), q.Limit, q.Offset)
	return &page, nil
}

func (s *leaderboardService) RankGap(ctx context.Context, userID string, classOnly bool) (*models.RankGap, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing rank gap: user_id=%s, class_only=%t", userID, classOnly)

	user, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	className := ""
	if classOnly {
		if user.ClassName == "" {
			return nil, errors.NewValidationError("class", "user does not belong to a class")
		}
		className = user.ClassName
	}

	ranked, err := s.Ranked(ctx, className)
	if err != nil {
		return nil, err
	}
	gap, ok := ranking.NextRankGap(ranked, userID)
	if !ok {
		return nil, errors.NewNotFoundError("ranked user", userID)
	}
	return &gap, nil
}
