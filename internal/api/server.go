package api

import (
	"context"
	"time"

	"github.com/vytor/learntrack/internal/jobs"
	"github.com/vytor/learntrack/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB                 Pinger
	UserService        services.UserService
	ItemService        services.ItemService
	ReviewService      services.ReviewService
	QuizService        services.QuizService
	PointsService      services.PointsService
	LeaderboardService services.LeaderboardService
	DashboardService   services.DashboardService
	JobQueue           jobs.JobQueue
	AwardLimiter       *RateLimiter

	LeaderboardPageSize int
	DueListSize         int

	// Now is the request clock. Nil means time.Now.
	Now func() time.Time
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
