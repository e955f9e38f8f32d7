package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learntrack/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                 ":8080",
		DBPath:               "test.db",
		LogLevel:             "INFO",
		ReconcileWorkerCount: 1,
		ReconcileQueueSize:   16,
		StreakHistoryLimit:   100,
		UpcomingPageSize:     10,
		LeaderboardPageSize:  50,
		AwardRatePerSecond:   10,
		AwardBurst:           20,
		ReviewMaxAttempts:    3,
		DefaultTimezone:      "UTC",
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = "  "

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevel(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{level: "debug", wantErr: false},
		{level: "WARNING", wantErr: false},
		{level: "ERROR", wantErr: false},
		{level: "verbose", wantErr: true},
		{level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_ReviewMaxAttempts(t *testing.T) {
	tests := []struct {
		name     string
		attempts int
		wantErr  bool
	}{
		{name: "zero", attempts: 0, wantErr: true},
		{name: "one", attempts: 1, wantErr: false},
		{name: "ten", attempts: 10, wantErr: false},
		{name: "too many", attempts: 11, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ReviewMaxAttempts = tt.attempts

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "REVIEW_MAX_ATTEMPTS")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_InvalidTimezone(t *testing.T) {
	cfg := validConfig()
	cfg.DefaultTimezone = "Mars/Olympus_Mons"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_TIMEZONE")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		LogLevel:        "INVALID",
		DefaultTimezone: "UTC",
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "RECONCILE_WORKER_COUNT")
	assert.Contains(t, errStr, "RECONCILE_QUEUE_SIZE")
	assert.Contains(t, errStr, "STREAK_HISTORY_LIMIT")
	assert.Contains(t, errStr, "UPCOMING_PAGE_SIZE")
	assert.Contains(t, errStr, "LEADERBOARD_PAGE_SIZE")
	assert.Contains(t, errStr, "AWARD_RATE_PER_SECOND")
	assert.Contains(t, errStr, "AWARD_BURST")
	assert.Contains(t, errStr, "REVIEW_MAX_ATTEMPTS")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("UPCOMING_PAGE_SIZE", "25")
	t.Setenv("AWARD_RATE_PER_SECOND", "2.5")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 25, cfg.UpcomingPageSize)
	assert.Equal(t, 2.5, cfg.AwardRatePerSecond)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("STREAK_HISTORY_LIMIT", "lots")

	cfg := config.Load()

	assert.Equal(t, 100, cfg.StreakHistoryLimit)
}
