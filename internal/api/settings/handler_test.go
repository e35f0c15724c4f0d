package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dailysync/standup-backend/internal/api/middleware"
	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/dailysync/standup-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	saved *entity.LLMConfig
	err   error
}

func (f *fakeUsecase) UpdateAISettings(_ context.Context, _ entity.Principal, cfg entity.LLMConfig) (*entity.LLMConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved = &cfg
	return &cfg, nil
}

type staticResolver struct{}

func (staticResolver) Resolve(context.Context, *http.Request) (entity.Principal, error) {
	return entity.Principal{UserID: "user-1", OrgID: "org-1"}, nil
}

func patch(t *testing.T, uc SettingsUsecase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, validator.NewValidator())
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(staticResolver{}))
		RegisterRoutes(r, h)
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/organization/ai-settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUpdateAISettings_OK(t *testing.T) {
	uc := &fakeUsecase{}

	rec := patch(t, uc, `{"provider":"openrouter","apiKey":"or-key","model":"anthropic/claude-3-haiku"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.saved)
	assert.Equal(t, entity.LLMProviderOpenRouter, uc.saved.Provider)

	var got entity.LLMConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, entity.LLMProviderOpenRouter, got.Provider)
	assert.Empty(t, got.APIKey, "api key must not be echoed back")
}

func TestUpdateAISettings_UnknownProvider(t *testing.T) {
	rec := patch(t, &fakeUsecase{}, `{"provider":"local-llama"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAISettings_MissingProvider(t *testing.T) {
	rec := patch(t, &fakeUsecase{}, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAISettings_OrgNotFound(t *testing.T) {
	rec := patch(t, &fakeUsecase{err: entity.ErrOrgNotFound}, `{"provider":"rule-based"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
