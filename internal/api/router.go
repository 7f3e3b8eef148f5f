package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)
	r.Use(s.visitorMiddleware)

	// Panel mirror pages
	r.Get("/", s.handlePanelPage)
	r.Post("/", s.handlePanelPost)
	r.Get("/log", s.handleLogPage)
	r.Get("/temps", s.handleTempsPage)
	r.Get("/visitors", s.handleVisitorsPage)

	// JSON API
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/status", s.handleStatus)
		r.Get("/log", s.handleLog)
		r.Get("/temps", s.handleTemps)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
