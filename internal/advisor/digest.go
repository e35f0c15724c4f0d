package advisor

import (
	"fmt"
	"math"

	"github.com/dailysync/standup-backend/internal/entity"
)

const (
	maxHighlights      = 5
	lowMoodThreshold   = 2
	goodMoodThreshold  = 4
	carryoverThreshold = 3
	productiveDoneMin  = 5
	minReportRate      = 0.7
)

// DigestInput is the read-only context for one manager-digest invocation.
// TargetDate is a calendar day in entity.DateLayout form; workdays are
// matched to it by string-date equality.
type DigestInput struct {
	TeamMembers []entity.User
	Workdays    []entity.Workday
	TargetDate  string
}

// GenerateManagerDigest aggregates a team's reports for the target date into
// per-member attention flags, team-wide highlights and concerns, and a
// one-line summary. Attention reasons are evaluated independently, so one
// member can accumulate several.
func GenerateManagerDigest(in DigestInput) entity.ManagerDigest {
	// Always non-nil so the payload carries [] rather than null and array
	// columns never see NULL.
	people := []entity.AttentionFlag{}
	highlights := []string{}
	concerns := []string{}
	details := make(map[string]entity.MemberSnapshot, len(in.TeamMembers))

	byUser := make(map[string][]entity.Workday)
	for _, wd := range in.Workdays {
		byUser[wd.UserID] = append(byUser[wd.UserID], wd)
	}

	for _, member := range in.TeamMembers {
		today := findWorkdayForDate(byUser[member.ID], in.TargetDate)

		var reasons []string

		if today == nil {
			reasons = append(reasons, "No daily report submitted")
		} else {
			blocked := 0
			carryover := 0
			completed := 0
			for _, t := range today.Tasks {
				if t.Status == entity.TaskStatusBlocked || t.IsBlocked {
					blocked++
				}
				if t.Status == entity.TaskStatusCarryover {
					carryover++
				}
				if t.Status == entity.TaskStatusDone {
					completed++
				}
			}

			if blocked > 0 {
				reasons = append(reasons, fmt.Sprintf("%d task(s) blocked", blocked))
			}
			if today.Mood != nil && *today.Mood <= lowMoodThreshold {
				reasons = append(reasons, "Low mood reported")
			}
			if carryover >= carryoverThreshold {
				reasons = append(reasons, fmt.Sprintf("%d carry-over tasks", carryover))
			}

			if today.Mood != nil && *today.Mood >= goodMoodThreshold {
				highlights = append(highlights, fmt.Sprintf("%s reported positive mood (%d/5)", member.FullName, *today.Mood))
			}
			if completed >= productiveDoneMin {
				highlights = append(highlights, fmt.Sprintf("%s completed %d tasks", member.FullName, completed))
			}
		}

		if len(reasons) > 0 {
			flag := entity.AttentionFlag{
				UserID:  member.ID,
				Name:    member.FullName,
				Reasons: reasons,
			}
			if member.JobRole != nil {
				flag.Role = member.JobRole.Name
			}
			people = append(people, flag)
		}

		details[member.ID] = memberSnapshot(member, today)
	}

	if len(people) > 0 {
		concerns = append(concerns, fmt.Sprintf("%d team member(s) need attention", len(people)))
	}

	reportsSubmitted := 0
	for _, d := range details {
		if d.HasReport {
			reportsSubmitted++
		}
	}
	reportRate := 0.0
	if len(in.TeamMembers) > 0 {
		reportRate = float64(reportsSubmitted) / float64(len(in.TeamMembers))
	}
	if reportRate < minReportRate {
		concerns = append(concerns, fmt.Sprintf("Only %d%% of team submitted reports", int(math.Round(reportRate*100))))
	}

	summary := fmt.Sprintf("Team of %d: %d reports, %d need attention, %d highlights",
		len(in.TeamMembers), reportsSubmitted, len(people), len(highlights))

	if len(highlights) > maxHighlights {
		highlights = highlights[:maxHighlights]
	}

	return entity.ManagerDigest{
		Summary:                summary,
		Highlights:             highlights,
		Concerns:               concerns,
		PeopleNeedingAttention: people,
		Details:                details,
		Metrics: entity.DigestMetrics{
			TeamSize:         len(in.TeamMembers),
			ReportsSubmitted: reportsSubmitted,
			ReportRate:       reportRate,
			NeedingAttention: len(people),
		},
	}
}

func findWorkdayForDate(workdays []entity.Workday, date string) *entity.Workday {
	for i := range workdays {
		if workdays[i].DateString() == date {
			return &workdays[i]
		}
	}
	return nil
}

func memberSnapshot(member entity.User, today *entity.Workday) entity.MemberSnapshot {
	snap := entity.MemberSnapshot{
		Name: member.FullName,
	}
	if today != nil {
		snap.HasReport = true
		snap.TaskCount = len(today.Tasks)
		snap.Mood = today.Mood
		snap.MainFocus = today.MainFocus
	}
	return snap
}
