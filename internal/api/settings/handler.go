package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dailysync/standup-backend/internal/api/middleware"
	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/dailysync/standup-backend/internal/pkg/logger"
	"github.com/dailysync/standup-backend/internal/pkg/response"
	"github.com/dailysync/standup-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   SettingsUsecase
	validator *validator.Validator
}

func NewHandler(usecase SettingsUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// UpdateAISettings handles PATCH /api/organization/ai-settings - Update org LLM policy
func (h *Handler) UpdateAISettings(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateAISettings")

	principal, err := middleware.PrincipalFromContext(ctx)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "no user found")
		return
	}

	var req entity.UpdateAISettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateAISettingsRequest(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid provider")
		return
	}

	saved, err := h.usecase.UpdateAISettings(ctx, principal, entity.LLMConfig{
		Provider: entity.LLMProvider(req.Provider),
		APIKey:   req.APIKey,
		Model:    req.Model,
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to update ai settings", zap.Error(err))
		if errors.Is(err, entity.ErrOrgNotFound) {
			response.Error(w, http.StatusNotFound, "organization not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "failed to update ai settings")
		return
	}

	ctxzap.Info(ctx, "ai settings updated", zap.String("provider", string(saved.Provider)))

	// Never echo the API key back.
	response.Success(w, entity.LLMConfig{
		Provider: saved.Provider,
		Model:    saved.Model,
	})
}
