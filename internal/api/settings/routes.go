package settings

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers organization settings routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Patch("/api/organization/ai-settings", h.UpdateAISettings)
}
