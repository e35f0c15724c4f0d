package advisor

import (
	"time"

	"github.com/dailysync/standup-backend/internal/entity"
)

const maxActions = 3

// MentorInput is the read-only context for one mentor-advice invocation.
// RecentWorkdays are ordered newest first and hold at most the last 5 reports.
type MentorInput struct {
	User           *entity.User
	RecentWorkdays []entity.Workday
	TodayWorkday   *entity.Workday
}

// GenerateMentorAdvice produces "what should I focus on today" advice from an
// employee's recent reports. Rules run in fixed order and append
// independently; only the final default depends on earlier rules.
func GenerateMentorAdvice(in MentorInput, now time.Time) entity.MentorAdvice {
	// Always non-nil so the payload carries [] rather than null and array
	// columns never see NULL.
	actions := []string{}
	warnings := []string{}
	insights := []string{}

	var todayTasks []entity.Task
	if in.TodayWorkday != nil {
		todayTasks = in.TodayWorkday.Tasks
	}
	totalTasks := len(todayTasks)
	doneCount := countByStatus(todayTasks, entity.TaskStatusDone)
	inProgressCount := countByStatus(todayTasks, entity.TaskStatusInProgress)

	if totalTasks > 8 {
		warnings = append(warnings, "You have many tasks today. Consider prioritizing the top 3.")
		actions = append(actions, "Review your task list and mark 2-3 as HIGH priority")
	}

	if totalTasks == 0 && in.TodayWorkday != nil {
		warnings = append(warnings, "No tasks planned yet. Start with a clear plan for the day.")
		actions = append(actions, "Add 3-5 tasks you want to accomplish today")
	}

	avgCompletionRate := AvgCompletionRate(in.RecentWorkdays)
	if avgCompletionRate < 0.5 && len(in.RecentWorkdays) >= 3 {
		insights = append(insights, "Your completion rate has been low recently. Let's focus on smaller, achievable tasks.")
		actions = append(actions, "Break down complex tasks into smaller steps")
	} else if avgCompletionRate > 0.8 {
		insights = append(insights, "Great job! Your completion rate is strong.")
	}

	if in.User != nil && in.User.JobRole != nil && in.User.JobRole.Mission != "" {
		insights = append(insights, `Remember your mission: "`+in.User.JobRole.Mission+`"`)
	}

	if len(actions) == 0 {
		switch {
		case doneCount > 0 && totalTasks > 0:
			actions = append(actions, "Continue your momentum and tackle the next priority task")
		case inProgressCount > 0:
			actions = append(actions, "Focus on completing in-progress tasks before starting new ones")
		default:
			actions = append(actions,
				"Start your day by tackling your most important task",
				"Block 2 hours of focused time for deep work",
				"Review your progress before end of day",
			)
		}
	}

	summary := "Focus on your most important task today"
	if len(actions) > 0 {
		summary = actions[0]
	}
	if len(actions) > maxActions {
		actions = actions[:maxActions]
	}

	return entity.MentorAdvice{
		Content: entity.AdviceContent{
			Actions:   actions,
			Warnings:  warnings,
			Insights:  insights,
			MainFocus: resolveMainFocus(in.TodayWorkday, todayTasks),
			Summary:   summary,
		},
		Metadata: entity.AdviceMetadata{
			TaskCount:      totalTasks,
			CompletionRate: avgCompletionRate,
			GeneratedAt:    now,
			Source:         entity.SourceRuleBased,
			Version:        entity.VersionRuleBased,
		},
	}
}

// AvgCompletionRate is the mean of per-report done/total ratios. Reports with
// no tasks count as 0, an empty slice yields 0. The result is always in [0,1].
func AvgCompletionRate(workdays []entity.Workday) float64 {
	if len(workdays) == 0 {
		return 0
	}

	var sum float64
	for _, wd := range workdays {
		if total := len(wd.Tasks); total > 0 {
			sum += float64(countByStatus(wd.Tasks, entity.TaskStatusDone)) / float64(total)
		}
	}
	return sum / float64(len(workdays))
}

// resolveMainFocus prefers the explicit focus from today's report, then the
// first HIGH or URGENT task, then "Not set".
func resolveMainFocus(today *entity.Workday, todayTasks []entity.Task) string {
	if today != nil && today.MainFocus != nil && *today.MainFocus != "" {
		return *today.MainFocus
	}
	for _, t := range todayTasks {
		if t.Priority == entity.TaskPriorityHigh || t.Priority == entity.TaskPriorityUrgent {
			return t.Title
		}
	}
	return "Not set"
}

func countByStatus(tasks []entity.Task, status entity.TaskStatus) int {
	n := 0
	for _, t := range tasks {
		if t.Status == status {
			n++
		}
	}
	return n
}
