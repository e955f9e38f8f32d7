package models

import "time"

// PointsEntry is an immutable ledger row. IdempotencyKey is unique per user.
type PointsEntry struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	ReasonCode     string    `json:"reason_code" db:"reason_code"`
	Points         int       `json:"points" db:"points"`
	IdempotencyKey string    `json:"idempotency_key" db:"idempotency_key"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type AwardResult struct {
	Accepted   bool `json:"accepted"`
	TotalAfter int  `json:"total_after"`
}

// UserPoints is one row of the per-user totals snapshot.
type UserPoints struct {
	UserID      string `json:"user_id" db:"user_id"`
	DisplayName string `json:"display_name" db:"display_name"`
	ClassName   string `json:"class_name" db:"class_name"`
	Points      int    `json:"points" db:"points"`
}
