package advice

import (
	"fmt"
	"time"

	"github.com/dailysync/standup-backend/internal/entity"
)

// LLM output passes through these normalizers so callers always see the same
// shape the rule-based path produces. Missing or mistyped fields fall back to
// per-field defaults instead of failing the request.

// Confidence assigned to LLM extractions. The model reports no calibration of
// its own, so the values are fixed per field.
var llmConfidence = map[string]float64{
	"title":    0.95,
	"outcome":  0.9,
	"steps":    0.9,
	"dod":      0.85,
	"priority": 0.8,
}

func normalizeMentorAdvice(parsed map[string]any, today *entity.Workday, totalTasks int, completionRate float64, now time.Time) entity.MentorAdvice {
	actions, ok := stringSlice(parsed["actions"])
	if !ok {
		actions = []string{"Focus on your most important task"}
	}
	if len(actions) > 3 {
		actions = actions[:3]
	}

	warnings, _ := stringSlice(parsed["warnings"])
	insights, _ := stringSlice(parsed["insights"])

	mainFocus := stringOr(parsed, "mainFocus", "")
	if mainFocus == "" {
		mainFocus = "Not set"
		if today != nil && today.MainFocus != nil && *today.MainFocus != "" {
			mainFocus = *today.MainFocus
		}
	}

	return entity.MentorAdvice{
		Content: entity.AdviceContent{
			Actions:   actions,
			Warnings:  warnings,
			Insights:  insights,
			MainFocus: mainFocus,
			Summary:   stringOr(parsed, "summary", "AI mentor advice generated"),
		},
		Metadata: entity.AdviceMetadata{
			TaskCount:      totalTasks,
			CompletionRate: completionRate,
			GeneratedAt:    now,
			Source:         entity.SourceLLM,
			Version:        entity.VersionLLM,
		},
	}
}

func normalizeManagerDigest(parsed map[string]any, members []entity.User, summaries []memberSummary, reportsSubmitted int, reportRate float64) entity.ManagerDigest {
	highlights, _ := stringSlice(parsed["highlights"])
	if len(highlights) > 5 {
		highlights = highlights[:5]
	}
	concerns, _ := stringSlice(parsed["concerns"])

	people := attentionFlags(parsed["peopleNeedingAttention"])

	details := make(map[string]entity.MemberSnapshot, len(members))
	for i, m := range summaries {
		details[members[i].ID] = entity.MemberSnapshot{
			Name:      m.Name,
			HasReport: m.HasReport,
			TaskCount: m.TaskCount,
			Mood:      m.Mood,
		}
	}

	return entity.ManagerDigest{
		Summary:                stringOr(parsed, "summary", fmt.Sprintf("Team of %d: %d reports", len(members), reportsSubmitted)),
		Highlights:             highlights,
		Concerns:               concerns,
		PeopleNeedingAttention: people,
		Details:                details,
		Metrics: entity.DigestMetrics{
			TeamSize:         len(members),
			ReportsSubmitted: reportsSubmitted,
			ReportRate:       reportRate,
			NeedingAttention: len(people),
		},
	}
}

func normalizeStructuredTask(parsed map[string]any, rawText string) entity.TaskStructure {
	title := stringOr(parsed, "title", truncate(rawText, 100))

	steps, ok := stringSlice(parsed["steps"])
	if !ok || len(steps) == 0 {
		steps = []string{"Complete the task: " + title}
	}

	dod, ok := stringSlice(parsed["dod"])
	if !ok || len(dod) == 0 {
		dod = []string{"Task completed successfully"}
	}

	confidence := make(map[string]float64, len(llmConfidence))
	for field, v := range llmConfidence {
		confidence[field] = v
	}

	return entity.TaskStructure{
		RawText: rawText,
		Structured: entity.StructuredTask{
			Title:    title,
			Outcome:  stringOr(parsed, "outcome", "Complete: "+title),
			Steps:    steps,
			DoD:      dod,
			Priority: entity.NormalizePriority(stringOr(parsed, "priority", "")),
		},
		Confidence: confidence,
		Source:     entity.SourceLLM,
	}
}

func attentionFlags(v any) []entity.AttentionFlag {
	items, ok := v.([]any)
	if !ok {
		return []entity.AttentionFlag{}
	}

	flags := make([]entity.AttentionFlag, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		reasons, _ := stringSlice(obj["reasons"])
		flags = append(flags, entity.AttentionFlag{
			UserID:  stringOr(obj, "userId", ""),
			Name:    stringOr(obj, "name", ""),
			Role:    stringOr(obj, "role", ""),
			Reasons: reasons,
		})
	}
	return flags
}

// stringSlice reports ok only when the value is actually an array; an empty
// array is valid and must not trigger the caller's default. The result is
// never nil, so missing fields still serialize as [].
func stringSlice(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return []string{}, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func stringOr(parsed map[string]any, key, fallback string) string {
	if s, ok := parsed[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
