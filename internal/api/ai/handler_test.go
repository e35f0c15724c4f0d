package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dailysync/standup-backend/internal/api/middleware"
	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/dailysync/standup-backend/internal/pkg/validator"
	"github.com/dailysync/standup-backend/internal/usecase/advice"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	mentorResult *advice.MentorResult
	digestResult *advice.DigestResult
	structure    *entity.TaskStructure
	testResponse string
	err          error
}

func (f *fakeUsecase) MentorAdvice(context.Context, entity.Principal, string) (*advice.MentorResult, error) {
	return f.mentorResult, f.err
}

func (f *fakeUsecase) ManagerDigest(context.Context, entity.Principal, advice.DigestRequest) (*advice.DigestResult, error) {
	return f.digestResult, f.err
}

func (f *fakeUsecase) StructureTask(context.Context, entity.Principal, string) (*entity.TaskStructure, error) {
	return f.structure, f.err
}

func (f *fakeUsecase) TestLLM(context.Context, entity.LLMConfig) (string, error) {
	return f.testResponse, f.err
}

type staticResolver struct {
	principal entity.Principal
	err       error
}

func (s *staticResolver) Resolve(context.Context, *http.Request) (entity.Principal, error) {
	return s.principal, s.err
}

func newTestRouter(uc AdviceUsecase, resolver middleware.PrincipalResolver) http.Handler {
	h := NewHandler(uc, validator.NewValidator())
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(resolver))
		RegisterRoutes(r, h)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

var okResolver = &staticResolver{principal: entity.Principal{UserID: "user-1", OrgID: "org-1"}}

func TestMentorAdvice_OK(t *testing.T) {
	uc := &fakeUsecase{
		mentorResult: &advice.MentorResult{
			Advice: &entity.AIAdvice{
				ID: "advice-1",
				Content: entity.AdviceContent{
					Actions: []string{"do the thing"},
					Summary: "do the thing",
				},
				Metadata: entity.AdviceMetadata{Source: entity.SourceRuleBased},
			},
			Context: advice.MentorContext{RoleName: "Engineer"},
		},
	}
	router := newTestRouter(uc, okResolver)

	rec := doRequest(t, router, "/api/ai/mentor", `{"date":"2026-03-02"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got advice.MentorResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "advice-1", got.Advice.ID)
	assert.Equal(t, "Engineer", got.Context.RoleName)
}

func TestMentorAdvice_EmptyBodyAllowed(t *testing.T) {
	uc := &fakeUsecase{
		mentorResult: &advice.MentorResult{Advice: &entity.AIAdvice{ID: "advice-1"}},
	}
	router := newTestRouter(uc, okResolver)

	rec := doRequest(t, router, "/api/ai/mentor", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMentorAdvice_InvalidDate(t *testing.T) {
	router := newTestRouter(&fakeUsecase{}, okResolver)

	rec := doRequest(t, router, "/api/ai/mentor", `{"date":"02.03.2026"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMentorAdvice_FeatureDisabled(t *testing.T) {
	uc := &fakeUsecase{err: entity.ErrFeatureDisabled}
	router := newTestRouter(uc, okResolver)

	rec := doRequest(t, router, "/api/ai/mentor", `{}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMentorAdvice_Unauthorized(t *testing.T) {
	router := newTestRouter(&fakeUsecase{}, &staticResolver{err: entity.ErrUserNotFound})

	rec := doRequest(t, router, "/api/ai/mentor", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMentorAdvice_InternalError(t *testing.T) {
	uc := &fakeUsecase{err: errors.New("database is down")}
	router := newTestRouter(uc, okResolver)

	rec := doRequest(t, router, "/api/ai/mentor", `{}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "database is down")
}

func TestManagerDigest_OK(t *testing.T) {
	uc := &fakeUsecase{
		digestResult: &advice.DigestResult{
			Digest: &entity.ManagerDigestRecord{ID: "digest-1", Summary: "Team of 3: 2 reports, 1 need attention, 0 highlights"},
			Metrics: entity.DigestMetrics{TeamSize: 3, ReportsSubmitted: 2},
		},
	}
	router := newTestRouter(uc, okResolver)

	rec := doRequest(t, router, "/api/ai/digest", `{"teamId":"team-1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got advice.DigestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "digest-1", got.Digest.ID)
	assert.Equal(t, 3, got.Metrics.TeamSize)
}

func TestStructureTask_MissingRawText(t *testing.T) {
	router := newTestRouter(&fakeUsecase{}, okResolver)

	rec := doRequest(t, router, "/api/ai/structure-task", `{"rawText":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStructureTask_OK(t *testing.T) {
	uc := &fakeUsecase{
		structure: &entity.TaskStructure{
			RawText: "fix bug",
			Structured: entity.StructuredTask{
				Title:    "fix bug",
				Priority: entity.TaskPriorityMedium,
			},
			Source: entity.SourceRuleBased,
		},
	}
	router := newTestRouter(uc, okResolver)

	rec := doRequest(t, router, "/api/ai/structure-task", `{"rawText":"fix bug"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got entity.TaskStructure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, entity.SourceRuleBased, got.Source)
}

func TestTestLLM_OK(t *testing.T) {
	uc := &fakeUsecase{testResponse: "Hello! LLM is working."}
	router := newTestRouter(uc, okResolver)

	rec := doRequest(t, router, "/api/ai/test-llm", `{"provider":"openai","apiKey":"sk-test"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got entity.TestLLMResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, "Hello! LLM is working.", got.Response)
}

func TestTestLLM_UnknownProvider(t *testing.T) {
	router := newTestRouter(&fakeUsecase{}, okResolver)

	rec := doRequest(t, router, "/api/ai/test-llm", `{"provider":"gemini"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTestLLM_ProviderFailureSurfacesMessage(t *testing.T) {
	uc := &fakeUsecase{err: errors.New("Incorrect API key provided")}
	router := newTestRouter(uc, okResolver)

	rec := doRequest(t, router, "/api/ai/test-llm", `{"provider":"openai","apiKey":"bad"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Incorrect API key provided")
}
