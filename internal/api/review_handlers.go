package api

import (
	"net/http"
	"time"

	"github.com/vytor/learntrack/internal/errors"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
)

const defaultDueListSize = 20

type ratingRequest struct {
	ItemID  int64        `json:"item_id" validate:"required,gt=0"`
	Quality qualityParam `json:"quality" validate:"required"`
}

type batchReviewRequest struct {
	Ratings []ratingRequest `json:"ratings" validate:"required,min=1,max=100,dive"`
}

type streakResponse struct {
	UserID string    `json:"user_id"`
	Streak int       `json:"streak"`
	AsOf   time.Time `json:"as_of"`
}

func (s *Server) handleScheduleReview(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req ratingRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log := logger.FromContext(r.Context()).WithFields(map[string]any{
		"item_id": req.ItemID,
		"quality": models.Quality(req.Quality).String(),
	})
	log.Debug("scheduling review")

	rec, err := s.ReviewService.ScheduleReview(r.Context(), user.ID, req.ItemID, models.Quality(req.Quality), s.now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleScheduleBatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	var req batchReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("scheduling review batch: size=%d", len(req.Ratings))

	ratings := make([]models.ReviewRating, len(req.Ratings))
	for i, rr := range req.Ratings {
		ratings[i] = models.ReviewRating{ItemID: rr.ItemID, Quality: models.Quality(rr.Quality)}
	}

	records, err := s.ReviewService.ScheduleBatch(r.Context(), user.ID, ratings, s.now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"records": records})
}

func (s *Server) handleDueItems(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	def := s.DueListSize
	if def < 1 {
		def = defaultDueListSize
	}
	limit, err := intQuery(r, "limit", def)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if limit < 1 {
		handleError(w, r, errors.NewValidationError("limit", "must be at least 1"))
		return
	}

	due, err := s.ReviewService.DueItems(r.Context(), user.ID, s.now(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if due == nil {
		due = []models.DueItem{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"items": due})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	now := s.now()

	streak, err := s.ReviewService.CurrentStreak(r.Context(), user.ID, now)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, streakResponse{UserID: user.ID, Streak: streak, AsOf: now.UTC()})
}
