package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/vytor/learntrack/internal/api"
	"github.com/vytor/learntrack/internal/config"
	"github.com/vytor/learntrack/internal/db"
	"github.com/vytor/learntrack/internal/jobs"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/repository/sqlite"
	"github.com/vytor/learntrack/internal/services"
	"github.com/vytor/learntrack/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("LearnTrack Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("reconcile_worker_count=%d", cfg.ReconcileWorkerCount)
	log.Debug("reconcile_queue_size=%d", cfg.ReconcileQueueSize)
	log.Debug("streak_history_limit=%d", cfg.StreakHistoryLimit)
	log.Debug("upcoming_page_size=%d", cfg.UpcomingPageSize)
	log.Debug("leaderboard_page_size=%d", cfg.LeaderboardPageSize)
	log.Debug("award_rate_per_second=%v award_burst=%d", cfg.AwardRatePerSecond, cfg.AwardBurst)
	log.Debug("review_max_attempts=%d", cfg.ReviewMaxAttempts)
	log.Debug("default_timezone=%s", cfg.DefaultTimezone)

	defaultLoc, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		log.Error("failed to load default timezone: %v", err)
		os.Exit(1)
	}

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	itemRepo := sqlite.NewItemRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	eventRepo := sqlite.NewReviewEventRepository(database.DB)
	pointsRepo := sqlite.NewPointsRepository(database.DB)

	// Initialize services
	pointsService := services.NewPointsService(userRepo, pointsRepo)
	leaderboardService := services.NewLeaderboardService(userRepo, pointsRepo)
	reviewService := services.NewReviewService(userRepo, itemRepo, progressRepo, eventRepo, services.ReviewConfig{
		MaxAttempts:     cfg.ReviewMaxAttempts,
		HistoryLimit:    cfg.StreakHistoryLimit,
		DefaultLocation: defaultLoc,
	})
	dashboardService := services.NewDashboardService(userRepo, progressRepo, eventRepo, leaderboardService, services.DashboardConfig{
		UpcomingPageSize: cfg.UpcomingPageSize,
		HistoryLimit:     cfg.StreakHistoryLimit,
		DefaultLocation:  defaultLoc,
	})

	// Initialize worker pool and job queue
	reconcilePool := worker.NewPool(cfg.ReconcileWorkerCount, cfg.ReconcileQueueSize)
	jobQueue := jobs.NewWorkerQueue(reconcilePool, pointsService)

	srv := &api.Server{
		DB:                  database,
		UserService:         services.NewUserService(userRepo),
		ItemService:         services.NewItemService(itemRepo),
		ReviewService:       reviewService,
		QuizService:         services.NewQuizService(userRepo, itemRepo, pointsRepo, pointsService),
		PointsService:       pointsService,
		LeaderboardService:  leaderboardService,
		DashboardService:    dashboardService,
		JobQueue:            jobQueue,
		AwardLimiter:        api.NewRateLimiter(cfg.AwardRatePerSecond, cfg.AwardBurst),
		LeaderboardPageSize: cfg.LeaderboardPageSize,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reconcilePool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain queued reconcile jobs before closing the database
	log.Debug("stopping reconcile pool")
	reconcilePool.Stop()

	log.Info("===========================================")
	log.Info("LearnTrack Server Stopped")
	log.Info("===========================================")
}
