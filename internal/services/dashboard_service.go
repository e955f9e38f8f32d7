package services

import (
	"context"
	"time"

	"github.com/vytor/learntrack/internal/errors"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/ranking"
	"github.com/vytor/learntrack/internal/repository"
	"golang.org/x/sync/errgroup"
)

// UpcomingWindow is how far ahead the dashboard looks for reviews.
const UpcomingWindow = 7 * 24 * time.Hour

// DashboardService assembles the read-only dashboard view.
type DashboardService interface {
	Dashboard(ctx context.Context, userID string, now time.Time) (*models.Dashboard, error)
}

type DashboardConfig struct {
	UpcomingPageSize int
	HistoryLimit     int
	DefaultLocation  *time.Location
}

type dashboardService struct {
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
	eventRepo    repository.ReviewEventRepository
	leaderboard  LeaderboardService
	cfg          DashboardConfig
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	eventRepo repository.ReviewEventRepository,
	leaderboard LeaderboardService,
	cfg DashboardConfig,
) DashboardService {
	if cfg.UpcomingPageSize < 1 {
		cfg.UpcomingPageSize = 10
	}
	if cfg.HistoryLimit < 1 {
		cfg.HistoryLimit = 100
	}
	if cfg.DefaultLocation == nil {
		cfg.DefaultLocation = time.UTC
	}
	return &dashboardService{
		userRepo:     userRepo,
		progressRepo: progressRepo,
		eventRepo:    eventRepo,
		leaderboard:  leaderboard,
		cfg:          cfg,
	}
}

// Dashboard runs its reads in parallel. Each read is its own snapshot, so
// counts may reflect a review that landed between two of them.
func (s *dashboardService) Dashboard(ctx context.Context, userID string, now time.Time) (*models.Dashboard, error) {
	log := logger.FromContext(ctx)
	log.Debug("building dashboard: user_id=%s", userID)

	user, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	d := &models.Dashboard{UserID: userID, GeneratedAt: now.UTC()}
	var (
		summary  models.ProgressSummary
		events   []models.ReviewEvent
		global   []models.RankedUser
		class    []models.RankedUser
		upcoming []models.UpcomingReview
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.progressRepo.Summary(gctx, userID, now)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.eventRepo.Recent(gctx, userID, s.cfg.HistoryLimit)
		return err
	})
	g.Go(func() error {
		var err error
		upcoming, err = s.progressRepo.ListUpcoming(gctx, userID, now, now.Add(UpcomingWindow), s.cfg.UpcomingPageSize)
		return err
	})
	g.Go(func() error {
		var err error
		global, err = s.leaderboard.Ranked(gctx, "")
		return err
	})
	if user.ClassName != "" {
		g.Go(func() error {
			var err error
			class, err = s.leaderboard.Ranked(gctx, user.ClassName)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		log.Error("failed to build dashboard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	d.TotalAnswered = summary.Total
	d.DueToday = summary.Due
	d.Mastered = summary.Mastered
	d.Learning = summary.Total - summary.Mastered
	d.Streak = streakFor(events, user.Location(s.cfg.DefaultLocation), now)
	d.Upcoming = upcoming
	if d.Upcoming == nil {
		d.Upcoming = []models.UpcomingReview{}
	}

	d.TotalUsers = len(global)
	if me, ok := ranking.Find(global, userID); ok {
		d.Rank = me.Rank
		d.Points = me.Points
	}
	if gap, ok := ranking.NextRankGap(global, userID); ok {
		d.RankGap = gap
	}
	if len(class) > 0 {
		d.ClassSize = len(class)
		if me, ok := ranking.Find(class, userID); ok {
			d.ClassRank = me.Rank
		}
	}

	log.Debug("dashboard built: user_id=%s, due=%d, streak=%d, rank=%d", userID, d.DueToday, d.Streak, d.Rank)
	return d, nil
}
