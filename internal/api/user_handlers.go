package api

import (
	"net/http"

	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/models"
)

type createUserRequest struct {
	ID          string `json:"id" validate:"required,max=64"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	ClassName   string `json:"class_name" validate:"max=50"`
	Timezone    string `json:"timezone" validate:"omitempty,timezone"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("creating user: id=%s", req.ID)

	user, err := s.UserService.CreateUser(r.Context(), models.User{
		ID:          req.ID,
		DisplayName: req.DisplayName,
		ClassName:   req.ClassName,
		Timezone:    req.Timezone,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, userFromContext(r.Context()))
}
