package models

import "time"

// Quality is the learner's coarse self-assessment of recall.
type Quality int

const (
	QualityDifficult Quality = 1
	QualityAverage   Quality = 3
	QualityEasy      Quality = 5
)

func (q Quality) Valid() bool {
	switch q {
	case QualityDifficult, QualityAverage, QualityEasy:
		return true
	}
	return false
}

func (q Quality) String() string {
	switch q {
	case QualityDifficult:
		return "difficult"
	case QualityAverage:
		return "average"
	case QualityEasy:
		return "easy"
	default:
		return "invalid"
	}
}

// MasteryThreshold is the repetition count at which an item counts as mastered.
const MasteryThreshold = 3

// ProgressRecord is the scheduling state of one item for one user.
// Version is an optimistic concurrency token; zero means not yet stored.
type ProgressRecord struct {
	UserID          string     `json:"user_id"`
	ItemID          int64      `json:"item_id"`
	Repetitions     int        `json:"repetitions"`
	IntervalDays    float64    `json:"interval_days"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at"`
	NextReviewDueAt time.Time  `json:"next_review_due_at"`
	LastQuality     Quality    `json:"last_quality"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (p ProgressRecord) Mastered() bool {
	return p.Repetitions >= MasteryThreshold
}

// IsDue reports whether the record should be reviewed at now.
func (p ProgressRecord) IsDue(now time.Time) bool {
	return !p.NextReviewDueAt.After(now)
}

// DueItem pairs an item with the user's progress on it.
type DueItem struct {
	Item     Item           `json:"item"`
	Progress ProgressRecord `json:"progress"`
}

// ReviewEvent is an immutable record of one rating.
type ReviewEvent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ItemID     int64     `json:"item_id"`
	Quality    Quality   `json:"quality"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// ReviewRating is one entry of a batch review submission.
type ReviewRating struct {
	ItemID  int64   `json:"item_id"`
	Quality Quality `json:"quality"`
}

// ProgressSummary counts a user's progress records at a point in time.
type ProgressSummary struct {
	Total    int `json:"total"`
	Due      int `json:"due"`
	Mastered int `json:"mastered"`
}
