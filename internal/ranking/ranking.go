// Package ranking orders users by points and describes the gap to the next
// rank. Ranks are positional: tied users still receive consecutive ranks,
// in input order.
package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/vytor/learntrack/internal/models"
)

// Rank sorts users by points, highest first, and assigns ranks 1..n.
// Ties keep their input order. The input slice is not modified.
func Rank(users []models.UserPoints) []models.RankedUser {
	ranked := make([]models.RankedUser, len(users))
	for i, u := range users {
		ranked[i] = models.RankedUser{UserPoints: u}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// InClass keeps the users belonging to className, preserving order.
func InClass(users []models.UserPoints, className string) []models.UserPoints {
	var out []models.UserPoints
	for _, u := range users {
		if u.ClassName == className {
			out = append(out, u)
		}
	}
	return out
}

// Find returns the ranked entry for userID.
func Find(ranked []models.RankedUser, userID string) (models.RankedUser, bool) {
	for _, r := range ranked {
		if r.UserID == userID {
			return r, true
		}
	}
	return models.RankedUser{}, false
}

// NextRankGap reports how far userID is from the rank directly above.
// ranked must be the output of Rank over the whole population.
func NextRankGap(ranked []models.RankedUser, userID string) (models.RankGap, bool) {
	for i, r := range ranked {
		if r.UserID != userID {
			continue
		}
		gap := models.RankGap{UserID: userID, Rank: r.Rank}
		if i == 0 {
			gap.IsTop = true
			gap.ProgressPercent = 100
			return gap, true
		}
		above := ranked[i-1]
		gap.NextRank = above.Rank
		gap.PointsNeeded = above.Points - r.Points + 1
		gap.ProgressPercent = progressPercent(r.Points, above.Points)
		return gap, true
	}
	return models.RankGap{}, false
}

func progressPercent(points, target int) int {
	if target <= 0 {
		return 100
	}
	p := int(math.Round(100 * float64(points) / float64(target)))
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// Filter keeps entries whose display name or user id contains search,
// ignoring case. Ranks are left as computed.
func Filter(ranked []models.RankedUser, search string) []models.RankedUser {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return ranked
	}
	var out []models.RankedUser
	for _, r := range ranked {
		if strings.Contains(strings.ToLower(r.DisplayName), search) ||
			strings.Contains(strings.ToLower(r.UserID), search) {
			out = append(out, r)
		}
	}
	return out
}

// Page slices ranked for display. A non-positive limit returns everything
// after offset.
func Page(ranked []models.RankedUser, limit, offset int) models.LeaderboardPage {
	page := models.LeaderboardPage{Total: len(ranked), Limit: limit, Offset: offset}
	if offset < 0 {
		offset = 0
		page.Offset = 0
	}
	if offset >= len(ranked) {
		page.Entries = []models.RankedUser{}
		return page
	}
	end := len(ranked)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page.Entries = ranked[offset:end]
	return page
}
