package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
)

type createItemRequest struct {
	Subject    string `json:"subject" validate:"required,max=100"`
	Prompt     string `json:"prompt" validate:"required,max=500"`
	Answer     string `json:"answer" validate:"required,max=200"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("creating item: subject=%s, difficulty=%s", req.Subject, req.Difficulty)

	item, err := s.ItemService.CreateItem(r.Context(), models.Item{
		Subject:    req.Subject,
		Prompt:     req.Prompt,
		Answer:     req.Answer,
		Difficulty: models.Difficulty(req.Difficulty),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, item)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(chi.URLParam(r, "itemID"), "item id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.ItemService.GetItem(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}
