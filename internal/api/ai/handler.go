package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dailysync/standup-backend/internal/api/middleware"
	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/dailysync/standup-backend/internal/pkg/logger"
	"github.com/dailysync/standup-backend/internal/pkg/response"
	"github.com/dailysync/standup-backend/internal/pkg/validator"
	"github.com/dailysync/standup-backend/internal/usecase/advice"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   AdviceUsecase
	validator *validator.Validator
}

func NewHandler(usecase AdviceUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// MentorAdvice handles POST /api/ai/mentor - Generate mentor advice for the employee
func (h *Handler) MentorAdvice(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "MentorAdvice")

	principal, err := middleware.PrincipalFromContext(ctx)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "no user found")
		return
	}

	var req entity.MentorAdviceRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateMentorRequest(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	ctxzap.Debug(ctx, "generating mentor advice", zap.String("date", req.Date))

	result, err := h.usecase.MentorAdvice(ctx, principal, req.Date)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "mentor advice generated",
		zap.String("source", string(result.Advice.Metadata.Source)))

	response.Success(w, result)
}

// ManagerDigest handles POST /api/ai/digest - Generate team digest for the manager
func (h *Handler) ManagerDigest(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ManagerDigest")

	principal, err := middleware.PrincipalFromContext(ctx)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "no user found")
		return
	}

	var req entity.ManagerDigestRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateDigestRequest(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	ctxzap.Debug(ctx, "generating manager digest",
		zap.String("date", req.Date),
		zap.String("team_id", req.TeamID),
		zap.String("dept_id", req.DeptID),
	)

	result, err := h.usecase.ManagerDigest(ctx, principal, advice.DigestRequest{
		Date:   req.Date,
		TeamID: req.TeamID,
		DeptID: req.DeptID,
	})
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "manager digest generated",
		zap.Int("team_size", result.Metrics.TeamSize),
		zap.Int("needing_attention", result.Metrics.NeedingAttention))

	response.Success(w, result)
}

// StructureTask handles POST /api/ai/structure-task - Convert raw task text to structured format
func (h *Handler) StructureTask(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StructureTask")

	principal, err := middleware.PrincipalFromContext(ctx)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "no user found")
		return
	}

	var req entity.StructureTaskRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateStructureTaskRequest(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "rawText is required", err)
		return
	}

	result, err := h.usecase.StructureTask(ctx, principal, req.RawText)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "task structured", zap.String("source", string(result.Source)))

	response.Success(w, result)
}

// TestLLM handles POST /api/ai/test-llm - Test candidate LLM credentials
func (h *Handler) TestLLM(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "TestLLM")

	if _, err := middleware.PrincipalFromContext(ctx); err != nil {
		response.Error(w, http.StatusUnauthorized, "no user found")
		return
	}

	var req entity.TestLLMRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateTestLLMRequest(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid provider", err)
		return
	}

	resp, err := h.usecase.TestLLM(ctx, entity.LLMConfig{
		Provider: entity.LLMProvider(req.Provider),
		APIKey:   req.APIKey,
		Model:    req.Model,
	})
	if err != nil {
		ctxzap.Error(ctx, "llm test failed", zap.Error(err))
		// The provider's own message is the useful part for the caller here.
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(w, entity.TestLLMResponse{Success: true, Response: resp})
}

func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		// An absent body means all-defaults.
		return nil
	}
	return err
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrFeatureDisabled):
		h.respondError(ctx, w, http.StatusForbidden, "feature is not enabled, complete setup in Settings", err)
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidFormat), errors.Is(err, entity.ErrUnknownProvider):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.Is(err, entity.ErrUserNotFound), errors.Is(err, entity.ErrTeamNotFound),
		errors.Is(err, entity.ErrOrgNotFound), errors.Is(err, entity.ErrSetupNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
