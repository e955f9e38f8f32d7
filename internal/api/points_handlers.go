package api

import (
	stderrors "errors"
	"net/http"

	"github.com/vytor/learntrack/internal/errors"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/points"
	"github.com/vytor/learntrack/internal/worker"
)

const defaultHistoryLimit = 20

type checkAnswerRequest struct {
	UserAnswer    string `json:"user_answer" validate:"required"`
	CorrectAnswer string `json:"correct_answer" validate:"required"`
}

type submitAnswerRequest struct {
	ItemID int64  `json:"item_id" validate:"required,gt=0"`
	Answer string `json:"answer" validate:"required,max=200"`
	Kind   string `json:"kind" validate:"omitempty,oneof=quiz_answer game_word"`
}

type completionRequest struct {
	Subject string `json:"subject" validate:"max=100"`
}

type awardRequest struct {
	Points         int    `json:"points" validate:"required,gt=0"`
	ReasonCode     string `json:"reason_code" validate:"required,max=50"`
	IdempotencyKey string `json:"idempotency_key" validate:"required,max=200"`
}

type reconcileRequest struct {
	UserIDs []string `json:"user_ids" validate:"required,min=1,max=1000,dive,required"`
}

func (s *Server) handleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req checkAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{
		"correct": s.QuizService.CheckAnswer(req.UserAnswer, req.CorrectAnswer),
	})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req submitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.QuizService.SubmitAnswer(r.Context(), user.ID, req.ItemID, req.Answer, points.Kind(req.Kind))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleCompleteSubject(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req completionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.QuizService.CompleteSubject(r.Context(), user.ID, req.Subject)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// handleAwardPoints answers 201 when the entry is new and 200 when the
// idempotency key was already used.
func (s *Server) handleAwardPoints(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req awardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.PointsService.Award(r.Context(), user.ID, req.Points, req.ReasonCode, req.IdempotencyKey)
	if err != nil {
		handleError(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Accepted {
		status = http.StatusCreated
	}
	writeJSON(w, r, status, result)
}

func (s *Server) handlePointsHistory(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	limit, err := intQuery(r, "limit", defaultHistoryLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	history, err := s.PointsService.History(r.Context(), user.ID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, history)
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req reconcileRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	queued := 0
	for _, userID := range req.UserIDs {
		if err := s.JobQueue.EnqueueReconcile(userID); err != nil {
			if stderrors.Is(err, worker.ErrQueueFull) {
				log.Warn("reconcile queue full after %d of %d users", queued, len(req.UserIDs))
				handleError(w, r, errors.NewRateLimitedError("reconcile queue is full, retry later"))
				return
			}
			handleError(w, r, errors.NewInternalError(err))
			return
		}
		queued++
	}

	log.Info("queued %d reconcile jobs", queued)
	writeJSON(w, r, http.StatusAccepted, map[string]int{"queued": queued})
}
