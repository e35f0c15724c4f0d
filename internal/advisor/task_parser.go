// Package advisor contains the deterministic rule-based generators behind the
// AI features. Every function here is pure over its inputs so results are
// reproducible when the LLM path is unavailable.
package advisor

import (
	"regexp"
	"strings"

	"github.com/dailysync/standup-backend/internal/entity"
)

var (
	outcomePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:so that|to ensure|in order to|to)\s+(.+)`),
		regexp.MustCompile(`(?i)(?:goal|outcome|result):\s*(.+)`),
	}

	stepPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d+[.)]\s*(.+)`),
		regexp.MustCompile(`^[-•*]\s*(.+)`),
	}

	listMarkerPrefix = regexp.MustCompile(`^[-•*\d.)]+\s*`)
)

var (
	urgentKeywords = []string{"urgent", "critical", "asap", "blocker"}
	highKeywords   = []string{"important", "priority", "soon"}
	lowKeywords    = []string{"nice to have", "optional", "later"}
)

// ParseTaskText converts a free-text task description into the structured
// {title, outcome, steps, dod, priority} shape with a per-field confidence
// map. It is the fallback for the task structurer and never performs I/O.
func ParseTaskText(rawText string) entity.TaskStructure {
	var lines []string
	for _, l := range strings.Split(rawText, "\n") {
		if trimmed := strings.TrimSpace(l); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	title := firstLineOrPrefix(lines, rawText)
	title = listMarkerPrefix.ReplaceAllString(title, "")

	outcome := extractOutcome(lines)
	steps := extractSteps(lines)
	dod := classifyDoD(title)
	priority := scanPriority(rawText)

	structured := entity.StructuredTask{
		Title:    title,
		Outcome:  outcome,
		Steps:    steps,
		DoD:      dod,
		Priority: priority,
	}
	if structured.Outcome == "" {
		structured.Outcome = "Complete: " + title
	}
	if len(structured.Steps) == 0 {
		structured.Steps = []string{"Complete the task: " + title}
	}

	return entity.TaskStructure{
		RawText:    rawText,
		Structured: structured,
		Confidence: map[string]float64{
			"title":    0.9,
			"outcome":  pick(outcome != "", 0.7, 0.4),
			"steps":    pick(len(steps) > 0, 0.8, 0.3),
			"dod":      0.6,
			"priority": 0.5,
		},
		Source: entity.SourceRuleBased,
	}
}

func firstLineOrPrefix(lines []string, rawText string) string {
	if len(lines) > 0 {
		return lines[0]
	}
	if len(rawText) > 100 {
		return rawText[:100]
	}
	return rawText
}

// extractOutcome scans lines in order against the purpose/label patterns and
// returns the first match, or "".
func extractOutcome(lines []string) string {
	for _, line := range lines {
		for _, pattern := range outcomePatterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				return strings.TrimSpace(m[1])
			}
		}
	}
	return ""
}

// extractSteps collects numbered or bulleted lines after the title line,
// preserving the original order with markers stripped.
func extractSteps(lines []string) []string {
	var steps []string
	if len(lines) < 2 {
		return steps
	}
	for _, line := range lines[1:] {
		for _, pattern := range stepPatterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				steps = append(steps, strings.TrimSpace(m[1]))
				break
			}
		}
	}
	return steps
}

// classifyDoD is a closed three-way keyword classification over the title:
// bugfix work, feature work, or generic completion.
func classifyDoD(title string) []string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "fix") || strings.Contains(lower, "bug"):
		return []string{
			"Bug is no longer reproducible",
			"Tests added to prevent regression",
		}
	case strings.Contains(lower, "implement") || strings.Contains(lower, "add"):
		return []string{
			"Feature works as expected",
			"Code reviewed and merged",
		}
	default:
		return []string{
			"Task completed successfully",
			"All acceptance criteria met",
		}
	}
}

// scanPriority checks the keyword sets in strict urgent > high > low order
// over the whole lowercased text; the first set with any hit wins.
func scanPriority(rawText string) entity.TaskPriority {
	lower := strings.ToLower(rawText)

	if containsAny(lower, urgentKeywords) {
		return entity.TaskPriorityUrgent
	}
	if containsAny(lower, highKeywords) {
		return entity.TaskPriorityHigh
	}
	if containsAny(lower, lowKeywords) {
		return entity.TaskPriorityLow
	}
	return entity.TaskPriorityMedium
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func pick(cond bool, yes, no float64) float64 {
	if cond {
		return yes
	}
	return no
}
