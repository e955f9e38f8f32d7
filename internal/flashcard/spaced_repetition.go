package flashcard

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vytor/learntrack/internal/models"
)

// Growth multipliers applied to the previous interval.
const (
	averageMultiplier = 1.3
	easyMultiplier    = 2.2

	lapseIntervalDays = 0.5
)

var ErrInvalidQuality = errors.New("quality must be 1, 3 or 5")

// Schedule computes the next progress state after a review rated q at now.
// current is nil on the first review of an item. The returned record keeps
// the identity and version of current; callers persist it.
func Schedule(current *models.ProgressRecord, q models.Quality, now time.Time) (models.ProgressRecord, error) {
	if !q.Valid() {
		return models.ProgressRecord{}, fmt.Errorf("%w: got %d", ErrInvalidQuality, int(q))
	}
	now = now.UTC()

	var next models.ProgressRecord
	if current != nil {
		next = *current
	} else {
		next.CreatedAt = now
	}

	switch {
	case q == models.QualityDifficult:
		next.Repetitions = 0
		next.IntervalDays = lapseIntervalDays
	case current == nil:
		next.Repetitions = 1
		next.IntervalDays = 1
	case q == models.QualityAverage:
		next.Repetitions = current.Repetitions + 1
		next.IntervalDays = grow(current.IntervalDays, averageMultiplier)
	default:
		next.Repetitions = current.Repetitions + 1
		next.IntervalDays = grow(current.IntervalDays, easyMultiplier)
	}

	reviewed := now
	next.LastReviewedAt = &reviewed
	next.NextReviewDueAt = DueAt(now, next.IntervalDays)
	next.LastQuality = q
	next.UpdatedAt = now
	return next, nil
}

// grow scales prev by m, rounding to whole days. Once an item is on a daily
// or longer cycle the interval always moves forward by at least one day.
func grow(prev, m float64) float64 {
	next := math.Max(1, math.Round(prev*m))
	if prev >= 1 && next <= prev {
		next = math.Floor(prev) + 1
	}
	return next
}

// DueAt adds interval calendar days to from. Fractional days become hours,
// so a half-day interval lands twelve hours later.
func DueAt(from time.Time, intervalDays float64) time.Time {
	whole := math.Floor(intervalDays)
	frac := intervalDays - whole
	return from.AddDate(0, 0, int(whole)).Add(time.Duration(frac * 24 * float64(time.Hour)))
}
