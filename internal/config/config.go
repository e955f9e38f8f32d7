package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	ReconcileWorkerCount int
	ReconcileQueueSize   int
	StreakHistoryLimit   int
	UpcomingPageSize     int
	LeaderboardPageSize  int
	AwardRatePerSecond   float64
	AwardBurst           int
	ReviewMaxAttempts    int
	DefaultTimezone      string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:learntrack.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		ReconcileWorkerCount: envIntOr("RECONCILE_WORKER_COUNT", 1),
		ReconcileQueueSize:   envIntOr("RECONCILE_QUEUE_SIZE", 16),
		StreakHistoryLimit:   envIntOr("STREAK_HISTORY_LIMIT", 100),
		UpcomingPageSize:     envIntOr("UPCOMING_PAGE_SIZE", 10),
		LeaderboardPageSize:  envIntOr("LEADERBOARD_PAGE_SIZE", 50),
		AwardRatePerSecond:   envFloatOr("AWARD_RATE_PER_SECOND", 10),
		AwardBurst:           envIntOr("AWARD_BURST", 20),
		ReviewMaxAttempts:    envIntOr("REVIEW_MAX_ATTEMPTS", 3),
		DefaultTimezone:      envOr("DEFAULT_TIMEZONE", "UTC"),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.ReconcileWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("RECONCILE_WORKER_COUNT must be at least 1 (got %d)", c.ReconcileWorkerCount))
	}
	if c.ReconcileQueueSize < 1 {
		errs = append(errs, fmt.Errorf("RECONCILE_QUEUE_SIZE must be at least 1 (got %d)", c.ReconcileQueueSize))
	}
	if c.StreakHistoryLimit < 1 {
		errs = append(errs, fmt.Errorf("STREAK_HISTORY_LIMIT must be at least 1 (got %d)", c.StreakHistoryLimit))
	}
	if c.UpcomingPageSize < 1 {
		errs = append(errs, fmt.Errorf("UPCOMING_PAGE_SIZE must be at least 1 (got %d)", c.UpcomingPageSize))
	}
	if c.LeaderboardPageSize < 1 {
		errs = append(errs, fmt.Errorf("LEADERBOARD_PAGE_SIZE must be at least 1 (got %d)", c.LeaderboardPageSize))
	}
	if c.AwardRatePerSecond <= 0 {
		errs = append(errs, fmt.Errorf("AWARD_RATE_PER_SECOND must be positive (got %v)", c.AwardRatePerSecond))
	}
	if c.AwardBurst < 1 {
		errs = append(errs, fmt.Errorf("AWARD_BURST must be at least 1 (got %d)", c.AwardBurst))
	}
	if c.ReviewMaxAttempts < 1 || c.ReviewMaxAttempts > 10 {
		errs = append(errs, fmt.Errorf("REVIEW_MAX_ATTEMPTS must be between 1 and 10 (got %d)", c.ReviewMaxAttempts))
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_TIMEZONE is not a valid IANA zone: %v", err))
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
