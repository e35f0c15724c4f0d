package advisor

import (
	"testing"

	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskText_FixBugScenario(t *testing.T) {
	raw := "Fix login bug\n1. Reproduce issue\n2. Patch auth module\nurgent, blocks release"

	got := ParseTaskText(raw)

	assert.Equal(t, "Fix login bug", got.Structured.Title)
	assert.Equal(t, entity.TaskPriorityUrgent, got.Structured.Priority)
	assert.Equal(t, []string{"Reproduce issue", "Patch auth module"}, got.Structured.Steps)
	assert.Contains(t, got.Structured.DoD, "Bug is no longer reproducible")
	assert.Equal(t, entity.SourceRuleBased, got.Source)
}

func TestParseTaskText_StepsPreserveOrderAndStripMarkers(t *testing.T) {
	raw := "Ship onboarding flow\n- design screens\n3) write copy\n• wire analytics\n* final review"

	got := ParseTaskText(raw)

	assert.Equal(t, []string{"design screens", "write copy", "wire analytics", "final review"}, got.Structured.Steps)
	assert.InDelta(t, 0.8, got.Confidence["steps"], 1e-9)
}

func TestParseTaskText_TitleStripsLeadingMarker(t *testing.T) {
	got := ParseTaskText("- Implement dark mode")
	assert.Equal(t, "Implement dark mode", got.Structured.Title)
	assert.Contains(t, got.Structured.DoD, "Feature works as expected")
}

func TestParseTaskText_OutcomeFromPurposePattern(t *testing.T) {
	raw := "Migrate billing service\nin order to reduce invoice latency"

	got := ParseTaskText(raw)

	assert.Equal(t, "reduce invoice latency", got.Structured.Outcome)
	assert.InDelta(t, 0.7, got.Confidence["outcome"], 1e-9)
}

func TestParseTaskText_OutcomeFromLabelPattern(t *testing.T) {
	got := ParseTaskText("Refresh landing page\ngoal: higher signup conversion")
	assert.Equal(t, "higher signup conversion", got.Structured.Outcome)
}

func TestParseTaskText_SynthesizedOutcomeAndStep(t *testing.T) {
	got := ParseTaskText("Quarterly retro prep")

	assert.Equal(t, "Complete: Quarterly retro prep", got.Structured.Outcome)
	assert.Equal(t, []string{"Complete the task: Quarterly retro prep"}, got.Structured.Steps)
	assert.InDelta(t, 0.4, got.Confidence["outcome"], 1e-9)
	assert.InDelta(t, 0.3, got.Confidence["steps"], 1e-9)
}

func TestParseTaskText_PriorityPrecedence(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want entity.TaskPriority
	}{
		{"urgent keyword", "handle incident ASAP", entity.TaskPriorityUrgent},
		{"urgent beats low", "urgent cleanup, optional later", entity.TaskPriorityUrgent},
		{"urgent beats high", "important release blocker", entity.TaskPriorityUrgent},
		{"high keyword", "important refactor soon", entity.TaskPriorityHigh},
		{"low keyword", "nice to have tooltip polish", entity.TaskPriorityLow},
		{"default", "update the changelog", entity.TaskPriorityMedium},
		{"case insensitive", "CRITICAL data loss", entity.TaskPriorityUrgent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseTaskText(tc.raw).Structured.Priority)
		})
	}
}

func TestParseTaskText_GenericDoD(t *testing.T) {
	got := ParseTaskText("Prepare sprint review")
	assert.Equal(t, []string{"Task completed successfully", "All acceptance criteria met"}, got.Structured.DoD)
}

func TestParseTaskText_ConfidencePresentForEveryField(t *testing.T) {
	got := ParseTaskText("anything")
	for _, field := range []string{"title", "outcome", "steps", "dod", "priority"} {
		v, ok := got.Confidence[field]
		require.True(t, ok, "missing confidence for %s", field)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestParseTaskText_Deterministic(t *testing.T) {
	raw := "Fix flaky test\n1. bisect\n2. patch\nurgent"
	assert.Equal(t, ParseTaskText(raw), ParseTaskText(raw))
}
