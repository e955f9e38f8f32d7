package flashcard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learntrack/internal/flashcard"
	"github.com/vytor/learntrack/internal/models"
)

var t0 = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func TestSchedule_FirstReviewEasy(t *testing.T) {
	got, err := flashcard.Schedule(nil, models.QualityEasy, t0)
	require.NoError(t, err)

	assert.Equal(t, 1, got.Repetitions)
	assert.Equal(t, 1.0, got.IntervalDays)
	assert.Equal(t, t0.AddDate(0, 0, 1), got.NextReviewDueAt)
	require.NotNil(t, got.LastReviewedAt)
	assert.Equal(t, t0, *got.LastReviewedAt)
	assert.Equal(t, models.QualityEasy, got.LastQuality)
	assert.Equal(t, t0, got.CreatedAt)
}

func TestSchedule_FirstReviewAverage(t *testing.T) {
	got, err := flashcard.Schedule(nil, models.QualityAverage, t0)
	require.NoError(t, err)

	assert.Equal(t, 1, got.Repetitions)
	assert.Equal(t, 1.0, got.IntervalDays)
}

func TestSchedule_FirstReviewDifficult(t *testing.T) {
	got, err := flashcard.Schedule(nil, models.QualityDifficult, t0)
	require.NoError(t, err)

	assert.Equal(t, 0, got.Repetitions)
	assert.Equal(t, 0.5, got.IntervalDays)
	assert.Equal(t, t0.Add(12*time.Hour), got.NextReviewDueAt, "half a day means twelve hours")
}

func TestSchedule_LapseAlwaysResets(t *testing.T) {
	priors := []models.ProgressRecord{
		{Repetitions: 0, IntervalDays: 0.5},
		{Repetitions: 1, IntervalDays: 1},
		{Repetitions: 4, IntervalDays: 12},
		{Repetitions: 9, IntervalDays: 180},
	}
	for _, prior := range priors {
		prior := prior
		got, err := flashcard.Schedule(&prior, models.QualityDifficult, t0)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Repetitions)
		assert.Equal(t, 0.5, got.IntervalDays)
	}
}

func TestSchedule_SuccessGrowsStrictly(t *testing.T) {
	intervals := []float64{1, 2, 3, 5, 8, 13, 40, 100}
	for _, q := range []models.Quality{models.QualityAverage, models.QualityEasy} {
		for _, iv := range intervals {
			prior := models.ProgressRecord{Repetitions: 2, IntervalDays: iv}
			got, err := flashcard.Schedule(&prior, q, t0)
			require.NoError(t, err)

			assert.Equal(t, 3, got.Repetitions, "quality %s interval %v", q, iv)
			assert.Greater(t, got.IntervalDays, iv, "quality %s interval %v", q, iv)
		}
	}
}

func TestSchedule_GrowthValues(t *testing.T) {
	tests := []struct {
		name string
		prev float64
		q    models.Quality
		want float64
	}{
		{name: "average after lapse", prev: 0.5, q: models.QualityAverage, want: 1},
		{name: "easy after lapse", prev: 0.5, q: models.QualityEasy, want: 1},
		{name: "average from one day", prev: 1, q: models.QualityAverage, want: 2},
		{name: "easy from one day", prev: 1, q: models.QualityEasy, want: 2},
		{name: "average from ten", prev: 10, q: models.QualityAverage, want: 13},
		{name: "easy from ten", prev: 10, q: models.QualityEasy, want: 22},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prior := models.ProgressRecord{Repetitions: 1, IntervalDays: tt.prev}
			got, err := flashcard.Schedule(&prior, tt.q, t0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.IntervalDays)
			assert.Equal(t, flashcard.DueAt(t0, tt.want), got.NextReviewDueAt)
		})
	}
}

func TestSchedule_InvalidQuality(t *testing.T) {
	for _, q := range []models.Quality{0, 2, 4, 6, -1} {
		_, err := flashcard.Schedule(nil, q, t0)
		assert.ErrorIs(t, err, flashcard.ErrInvalidQuality, "quality %d", int(q))
	}
}

func TestSchedule_KeepsIdentity(t *testing.T) {
	created := t0.AddDate(0, -1, 0)
	prior := models.ProgressRecord{
		UserID:       "u1",
		ItemID:       42,
		Repetitions:  1,
		IntervalDays: 1,
		Version:      7,
		CreatedAt:    created,
	}
	got, err := flashcard.Schedule(&prior, models.QualityAverage, t0)
	require.NoError(t, err)

	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, int64(42), got.ItemID)
	assert.Equal(t, int64(7), got.Version)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, 1, prior.Repetitions, "input must not be mutated")
}

func TestSchedule_DueNeverBeforeReview(t *testing.T) {
	var current *models.ProgressRecord
	now := t0
	for _, q := range []models.Quality{5, 3, 1, 1, 5, 5, 3} {
		next, err := flashcard.Schedule(current, models.Quality(q), now)
		require.NoError(t, err)
		assert.False(t, next.NextReviewDueAt.Before(*next.LastReviewedAt))
		current = &next
		now = next.NextReviewDueAt
	}
}

func TestSchedule_EasyThenDifficultNextDay(t *testing.T) {
	first, err := flashcard.Schedule(nil, models.QualityEasy, t0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Repetitions)
	assert.Equal(t, 1.0, first.IntervalDays)
	assert.Equal(t, t0.Add(24*time.Hour), first.NextReviewDueAt)

	second, err := flashcard.Schedule(&first, models.QualityDifficult, t0.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, second.Repetitions)
	assert.Equal(t, 0.5, second.IntervalDays)
	assert.False(t, second.Mastered())
}

func TestSchedule_MasteredAfterThreeSuccesses(t *testing.T) {
	var current *models.ProgressRecord
	now := t0
	for i := 0; i < 3; i++ {
		next, err := flashcard.Schedule(current, models.QualityAverage, now)
		require.NoError(t, err)
		current = &next
		now = next.NextReviewDueAt
	}
	assert.True(t, current.Mastered())
}
