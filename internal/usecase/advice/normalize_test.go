package advice

import (
	"testing"
	"time"

	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMentorAdvice_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	got := normalizeMentorAdvice(map[string]any{}, nil, 4, 0.75, now)

	assert.Equal(t, []string{"Focus on your most important task"}, got.Content.Actions)
	assert.Empty(t, got.Content.Warnings)
	assert.Empty(t, got.Content.Insights)
	assert.Equal(t, "Not set", got.Content.MainFocus)
	assert.Equal(t, "AI mentor advice generated", got.Content.Summary)
	assert.Equal(t, 4, got.Metadata.TaskCount)
	assert.Equal(t, 0.75, got.Metadata.CompletionRate)
	assert.Equal(t, entity.SourceLLM, got.Metadata.Source)
	assert.Equal(t, entity.VersionLLM, got.Metadata.Version)

	// Omitted list fields come back as [], not nil.
	assert.NotNil(t, got.Content.Warnings)
	assert.NotNil(t, got.Content.Insights)
}

func TestNormalizeMentorAdvice_ActionsCappedAtThree(t *testing.T) {
	parsed := map[string]any{
		"actions": []any{"a", "b", "c", "d", "e"},
	}

	got := normalizeMentorAdvice(parsed, nil, 0, 0, time.Now())

	assert.Equal(t, []string{"a", "b", "c"}, got.Content.Actions)
}

func TestNormalizeMentorAdvice_EmptyActionsArrayKept(t *testing.T) {
	got := normalizeMentorAdvice(map[string]any{"actions": []any{}}, nil, 0, 0, time.Now())

	assert.Empty(t, got.Content.Actions)
}

func TestNormalizeMentorAdvice_MainFocusFallsBackToWorkday(t *testing.T) {
	focus := "Ship the release"
	today := &entity.Workday{MainFocus: &focus}

	got := normalizeMentorAdvice(map[string]any{}, today, 0, 0, time.Now())

	assert.Equal(t, "Ship the release", got.Content.MainFocus)
}

func TestNormalizeManagerDigest_Defaults(t *testing.T) {
	members := []entity.User{{ID: "u1", FullName: "Ann"}, {ID: "u2", FullName: "Bob"}}
	summaries := []memberSummary{
		{Name: "Ann", HasReport: true, TaskCount: 3},
		{Name: "Bob"},
	}

	got := normalizeManagerDigest(map[string]any{}, members, summaries, 1, 0.5)

	assert.Equal(t, "Team of 2: 1 reports", got.Summary)
	assert.Empty(t, got.Highlights)
	assert.Empty(t, got.Concerns)
	assert.Empty(t, got.PeopleNeedingAttention)
	assert.NotNil(t, got.Highlights)
	assert.NotNil(t, got.Concerns)
	assert.NotNil(t, got.PeopleNeedingAttention)
	assert.Equal(t, 2, got.Metrics.TeamSize)
	assert.Equal(t, 1, got.Metrics.ReportsSubmitted)
	assert.Equal(t, 0.5, got.Metrics.ReportRate)
	assert.Equal(t, 0, got.Metrics.NeedingAttention)

	require.Contains(t, got.Details, "u1")
	assert.True(t, got.Details["u1"].HasReport)
	assert.Equal(t, 3, got.Details["u1"].TaskCount)
	assert.False(t, got.Details["u2"].HasReport)
}

func TestNormalizeManagerDigest_HighlightsCappedAtFive(t *testing.T) {
	parsed := map[string]any{
		"highlights": []any{"1", "2", "3", "4", "5", "6", "7"},
	}

	got := normalizeManagerDigest(parsed, nil, nil, 0, 0)

	assert.Len(t, got.Highlights, 5)
}

func TestNormalizeManagerDigest_AttentionFlags(t *testing.T) {
	parsed := map[string]any{
		"peopleNeedingAttention": []any{
			map[string]any{"userId": "u1", "name": "Ann", "reasons": []any{"blocked", "low mood"}},
			"not an object",
		},
	}

	got := normalizeManagerDigest(parsed, nil, nil, 0, 0)

	require.Len(t, got.PeopleNeedingAttention, 1)
	assert.Equal(t, "u1", got.PeopleNeedingAttention[0].UserID)
	assert.Equal(t, []string{"blocked", "low mood"}, got.PeopleNeedingAttention[0].Reasons)
	assert.Equal(t, 1, got.Metrics.NeedingAttention)
}

func TestNormalizeStructuredTask_Defaults(t *testing.T) {
	got := normalizeStructuredTask(map[string]any{}, "fix the login flow")

	assert.Equal(t, "fix the login flow", got.Structured.Title)
	assert.Equal(t, "Complete: fix the login flow", got.Structured.Outcome)
	assert.Equal(t, []string{"Complete the task: fix the login flow"}, got.Structured.Steps)
	assert.Equal(t, []string{"Task completed successfully"}, got.Structured.DoD)
	assert.Equal(t, entity.TaskPriorityMedium, got.Structured.Priority)
	assert.Equal(t, entity.SourceLLM, got.Source)

	for _, field := range []string{"title", "outcome", "steps", "dod", "priority"} {
		v, ok := got.Confidence[field]
		require.True(t, ok, field)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestNormalizeStructuredTask_InvalidPriorityBecomesMedium(t *testing.T) {
	got := normalizeStructuredTask(map[string]any{"priority": "SOMEDAY"}, "task")

	assert.Equal(t, entity.TaskPriorityMedium, got.Structured.Priority)
}

func TestNormalizeStructuredTask_FullPayload(t *testing.T) {
	parsed := map[string]any{
		"title":    "Fix login bug",
		"outcome":  "Users can log in",
		"steps":    []any{"reproduce", "patch", "verify"},
		"dod":      []any{"no repro", "tests added"},
		"priority": "URGENT",
	}

	got := normalizeStructuredTask(parsed, "raw")

	assert.Equal(t, "Fix login bug", got.Structured.Title)
	assert.Equal(t, "Users can log in", got.Structured.Outcome)
	assert.Equal(t, []string{"reproduce", "patch", "verify"}, got.Structured.Steps)
	assert.Equal(t, []string{"no repro", "tests added"}, got.Structured.DoD)
	assert.Equal(t, entity.TaskPriorityUrgent, got.Structured.Priority)
	assert.Equal(t, "raw", got.RawText)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 100))
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, truncate(string(long), 100), 100)
}
