package ai

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers AI advisory routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/ai", func(r chi.Router) {
		r.Post("/mentor", h.MentorAdvice)
		r.Post("/digest", h.ManagerDigest)
		r.Post("/structure-task", h.StructureTask)
		r.Post("/test-llm", h.TestLLM)
	})
}
