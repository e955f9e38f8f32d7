package models

import "time"

type UpcomingReview struct {
	ItemID          int64      `json:"item_id"`
	Prompt          string     `json:"prompt"`
	Subject         string     `json:"subject"`
	Difficulty      Difficulty `json:"difficulty"`
	Repetitions     int        `json:"repetitions"`
	NextReviewDueAt time.Time  `json:"next_review_due_at"`
}

// Dashboard is the read model behind a learner's landing page.
type Dashboard struct {
	UserID        string           `json:"user_id"`
	TotalAnswered int              `json:"total_answered"`
	DueToday      int              `json:"due_today"`
	Mastered      int              `json:"mastered"`
	Learning      int              `json:"learning"`
	Streak        int              `json:"streak"`
	Points        int              `json:"points"`
	Rank          int              `json:"rank"`
	TotalUsers    int              `json:"total_users"`
	ClassRank     int              `json:"class_rank,omitempty"`
	ClassSize     int              `json:"class_size,omitempty"`
	RankGap       RankGap          `json:"rank_gap"`
	Upcoming      []UpcomingReview `json:"upcoming"`
	GeneratedAt   time.Time        `json:"generated_at"`
}
