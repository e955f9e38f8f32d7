package models

type RankedUser struct {
	UserPoints
	Rank int `json:"rank"`
}

// RankGap describes the distance from a user to the next-better rank.
type RankGap struct {
	UserID          string `json:"user_id"`
	Rank            int    `json:"rank"`
	IsTop           bool   `json:"is_top"`
	PointsNeeded    int    `json:"points_needed"`
	NextRank        int    `json:"next_rank"`
	ProgressPercent int    `json:"progress_percent"`
}

type LeaderboardPage struct {
	Entries []RankedUser `json:"entries"`
	Total   int          `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
}

type LeaderboardQuery struct {
	ClassName string
	Search    string
	Limit     int
	Offset    int
}
