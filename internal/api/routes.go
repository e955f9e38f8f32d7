package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/answers/check", s.handleCheckAnswer)
		r.Get("/leaderboard", s.handleLeaderboard)

		r.Post("/items", s.handleCreateItem)
		r.Get("/items/{itemID}", s.handleGetItem)

		r.Post("/users", s.handleCreateUser)
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Use(s.userMiddleware)

			r.Get("/", s.handleGetUser)
			r.Post("/reviews", s.handleScheduleReview)
			r.Post("/reviews/batch", s.handleScheduleBatch)
			r.Get("/reviews/due", s.handleDueItems)
			r.Get("/streak", s.handleStreak)
			r.Post("/quiz/answers", s.handleSubmitAnswer)
			r.Post("/completions", s.handleCompleteSubject)
			r.Get("/points", s.handlePointsHistory)
			r.With(s.awardRateLimit).Post("/points", s.handleAwardPoints)
			r.Get("/rank-gap", s.handleRankGap)
			r.Get("/dashboard", s.handleDashboard)
		})

		r.Post("/admin/points/reconcile", s.handleReconcile)
	})

	return r
}
