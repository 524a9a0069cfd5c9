package httpapi

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

	// Public routes
	r.Get("/health", s.handleHealth)
	r.Post("/token", s.handleLogin)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/whoami", s.handleWhoami)

		r.Route("/users", func(r chi.Router) {
			r.With(s.requireAdmin).Post("/", s.handleCreateUser)
			r.Get("/me", s.handleMe)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", s.handleCreateTransaction)
			r.Get("/", s.handleListTransactions)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTransaction)
				r.Put("/", s.handleUpdateTransaction)
				r.Delete("/", s.handleDeleteTransaction)

				r.Route("/receipt", func(r chi.Router) {
					r.Post("/", s.handleRequestReceiptUpload)
					r.Post("/complete", s.handleCompleteReceiptUpload)
					r.Get("/", s.handleDownloadReceipt)
				})
			})
		})
	})

	return r
}

// handleHealth returns a plain-text liveness response.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
