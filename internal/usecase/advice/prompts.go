package advice

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/dailysync/standup-backend/internal/entity"
)

// Per-feature generation limits. Task structuring runs cold to keep the JSON
// shape stable; the digest gets more room for larger teams.
const (
	mentorMaxTokens      = 600
	mentorTemperature    = 0.7
	digestMaxTokens      = 800
	digestTemperature    = 0.6
	structureMaxTokens   = 800
	structureTemperature = 0.3
	testMaxTokens        = 50
)

const mentorSystemPrompt = `You are an AI mentor for employees. Provide personalized, actionable advice.
Your response must be valid JSON with this structure:
{
  "actions": ["action 1", "action 2", "action 3"],
  "warnings": ["warning if needed"],
  "insights": ["positive insight or observation"],
  "mainFocus": "suggested main focus for today",
  "summary": "one-line summary"
}`

const digestSystemPrompt = `You are an AI assistant for managers. Analyze team data and provide insights.
Return ONLY valid JSON with this structure:
{
  "highlights": ["positive observation 1", ...],
  "concerns": ["concern or issue 1", ...],
  "peopleNeedingAttention": [{"userId": "id", "name": "name", "reasons": ["reason 1", ...]}],
  "summary": "one-line team summary"
}`

const structureSystemPrompt = `You are a task structuring assistant. Parse raw task descriptions into structured format.
Return ONLY valid JSON with this exact structure:
{
  "title": "concise task title",
  "outcome": "what success looks like",
  "steps": ["step 1", "step 2", ...],
  "dod": ["definition of done item 1", ...],
  "priority": "LOW" | "MEDIUM" | "HIGH" | "URGENT"
}`

const testPrompt = `Say "Hello! LLM is working." in 5 words or less.`

func mentorPrompt(user *entity.User, today *entity.Workday, totalTasks, doneCount int, avgCompletionRate float64) string {
	roleName := "Employee"
	mission := "Not set"
	if user != nil && user.JobRole != nil {
		if user.JobRole.Name != "" {
			roleName = user.JobRole.Name
		}
		if user.JobRole.Mission != "" {
			mission = user.JobRole.Mission
		}
	}

	mainFocus := "Not set"
	if today != nil && today.MainFocus != nil && *today.MainFocus != "" {
		mainFocus = *today.MainFocus
	}

	return fmt.Sprintf(`Employee context:
- Role: %s
- Mission: %s
- Today's tasks: %d (%d done)
- Recent completion rate: %d%%
- Main focus today: %s

Provide top 3 actionable recommendations for today.`,
		roleName, mission, totalTasks, doneCount, int(math.Round(avgCompletionRate*100)), mainFocus)
}

// memberSummary is the per-member digest context serialized into the prompt.
type memberSummary struct {
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	HasReport bool   `json:"hasReport"`
	TaskCount int    `json:"taskCount"`
	Mood      *int   `json:"mood"`
	Blockers  int    `json:"blockers"`
}

func digestPrompt(teamSize int, reportRate float64, summaries []memberSummary) string {
	encoded, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		encoded = []byte("[]")
	}
	return fmt.Sprintf(`Team of %d:
Report rate: %d%%
%s

Identify team members needing manager attention and provide insights.`,
		teamSize, int(math.Round(reportRate*100)), encoded)
}

func structurePrompt(rawText string) string {
	return "Parse this task:\n\n" + rawText
}
