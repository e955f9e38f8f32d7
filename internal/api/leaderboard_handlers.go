package api

import (
	"net/http"
	"strings"

	"github.com/vytor/learntrack/internal/models"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", s.LeaderboardPageSize)
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := intQuery(r, "offset", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	page, err := s.LeaderboardService.Leaderboard(r.Context(), models.LeaderboardQuery{
		ClassName: strings.TrimSpace(r.URL.Query().Get("class")),
		Search:    r.URL.Query().Get("q"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (s *Server) handleRankGap(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	gap, err := s.LeaderboardService.RankGap(r.Context(), user.ID, boolQuery(r, "class"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, gap)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	d, err := s.DashboardService.Dashboard(r.Context(), user.ID, s.now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, d)
}
