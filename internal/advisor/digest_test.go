package advisor

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var digestDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func member(id, name string) entity.User {
	return entity.User{ID: id, FullName: name}
}

func intPtr(v int) *int { return &v }

func TestGenerateManagerDigest_MixedTeam(t *testing.T) {
	// 4 members: one silent, one with low mood, two with clean reports.
	members := []entity.User{
		member("u1", "Ann"), member("u2", "Bob"), member("u3", "Cid"), member("u4", "Dee"),
	}

	lowMood := workdayWithTasks("u2", digestDate, tasksWithStatus(entity.TaskStatusPlanned, 2)...)
	lowMood.Mood = intPtr(1)
	ok1 := workdayWithTasks("u3", digestDate, tasksWithStatus(entity.TaskStatusPlanned, 3)...)
	ok2 := workdayWithTasks("u4", digestDate, tasksWithStatus(entity.TaskStatusInProgress, 2)...)

	digest := GenerateManagerDigest(DigestInput{
		TeamMembers: members,
		Workdays:    []entity.Workday{lowMood, ok1, ok2},
		TargetDate:  digestDate.Format(entity.DateLayout),
	})

	require.Len(t, digest.PeopleNeedingAttention, 2)
	assert.Equal(t, "Ann", digest.PeopleNeedingAttention[0].Name)
	assert.Equal(t, []string{"No daily report submitted"}, digest.PeopleNeedingAttention[0].Reasons)
	assert.Equal(t, []string{"Low mood reported"}, digest.PeopleNeedingAttention[1].Reasons)

	// 3/4 reports is above the 70% threshold, so attention is the only concern.
	require.Len(t, digest.Concerns, 1)
	assert.Contains(t, digest.Concerns[0], "2 team member(s) need attention")

	assert.Equal(t, 4, digest.Metrics.TeamSize)
	assert.Equal(t, 3, digest.Metrics.ReportsSubmitted)
	assert.InDelta(t, 0.75, digest.Metrics.ReportRate, 1e-9)
	assert.False(t, digest.Details["u1"].HasReport)
	assert.True(t, digest.Details["u2"].HasReport)
	assert.Equal(t, 2, digest.Details["u2"].TaskCount)
}

func TestGenerateManagerDigest_ReasonsAccumulate(t *testing.T) {
	wd := workdayWithTasks("u1", digestDate,
		entity.Task{Title: "a", Status: entity.TaskStatusBlocked},
		entity.Task{Title: "b", Status: entity.TaskStatusPlanned, IsBlocked: true},
		entity.Task{Title: "c", Status: entity.TaskStatusCarryover},
		entity.Task{Title: "d", Status: entity.TaskStatusCarryover},
		entity.Task{Title: "e", Status: entity.TaskStatusCarryover},
	)
	wd.Mood = intPtr(2)

	digest := GenerateManagerDigest(DigestInput{
		TeamMembers: []entity.User{member("u1", "Ann")},
		Workdays:    []entity.Workday{wd},
		TargetDate:  digestDate.Format(entity.DateLayout),
	})

	require.Len(t, digest.PeopleNeedingAttention, 1)
	assert.Equal(t, []string{
		"2 task(s) blocked",
		"Low mood reported",
		"3 carry-over tasks",
	}, digest.PeopleNeedingAttention[0].Reasons)
}

func TestGenerateManagerDigest_HighlightsCappedAtFive(t *testing.T) {
	var members []entity.User
	var workdays []entity.Workday
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("u%d", i)
		members = append(members, member(id, "Member "+id))
		wd := workdayWithTasks(id, digestDate, tasksWithStatus(entity.TaskStatusDone, 6)...)
		wd.Mood = intPtr(5)
		workdays = append(workdays, wd)
	}

	digest := GenerateManagerDigest(DigestInput{
		TeamMembers: members,
		Workdays:    workdays,
		TargetDate:  digestDate.Format(entity.DateLayout),
	})

	assert.Len(t, digest.Highlights, 5)
	assert.Empty(t, digest.PeopleNeedingAttention)
	// Summary reflects the pre-cap highlight count.
	assert.Contains(t, digest.Summary, "16 highlights")
}

func TestGenerateManagerDigest_LowReportRateConcern(t *testing.T) {
	members := []entity.User{member("u1", "Ann"), member("u2", "Bob"), member("u3", "Cid")}
	wd := workdayWithTasks("u1", digestDate, tasksWithStatus(entity.TaskStatusPlanned, 1)...)

	digest := GenerateManagerDigest(DigestInput{
		TeamMembers: members,
		Workdays:    []entity.Workday{wd},
		TargetDate:  digestDate.Format(entity.DateLayout),
	})

	require.Len(t, digest.Concerns, 2)
	assert.Contains(t, digest.Concerns[1], "Only 33% of team submitted reports")
}

func TestGenerateManagerDigest_EmptyTeam(t *testing.T) {
	digest := GenerateManagerDigest(DigestInput{TargetDate: digestDate.Format(entity.DateLayout)})

	assert.Zero(t, digest.Metrics.ReportRate)
	assert.Empty(t, digest.PeopleNeedingAttention)
	assert.Empty(t, digest.Highlights)
	assert.Equal(t, "Team of 0: 0 reports, 0 need attention, 0 highlights", digest.Summary)
}

func TestGenerateManagerDigest_QuietTeamListsAreEmptyNotNull(t *testing.T) {
	wd := workdayWithTasks("u1", digestDate, tasksWithStatus(entity.TaskStatusPlanned, 1)...)

	digest := GenerateManagerDigest(DigestInput{
		TeamMembers: []entity.User{member("u1", "Ann")},
		Workdays:    []entity.Workday{wd},
		TargetDate:  digestDate.Format(entity.DateLayout),
	})

	assert.NotNil(t, digest.Highlights)
	assert.NotNil(t, digest.Concerns)
	assert.NotNil(t, digest.PeopleNeedingAttention)

	body, err := json.Marshal(digest)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"highlights":[]`)
	assert.Contains(t, string(body), `"concerns":[]`)
	assert.Contains(t, string(body), `"peopleNeedingAttention":[]`)
}

func TestGenerateManagerDigest_WorkdayOnOtherDateIgnored(t *testing.T) {
	yesterday := workdayWithTasks("u1", digestDate.AddDate(0, 0, -1), tasksWithStatus(entity.TaskStatusDone, 3)...)

	digest := GenerateManagerDigest(DigestInput{
		TeamMembers: []entity.User{member("u1", "Ann")},
		Workdays:    []entity.Workday{yesterday},
		TargetDate:  digestDate.Format(entity.DateLayout),
	})

	require.Len(t, digest.PeopleNeedingAttention, 1)
	assert.Equal(t, []string{"No daily report submitted"}, digest.PeopleNeedingAttention[0].Reasons)
}

func TestGenerateManagerDigest_RoleCarriedIntoFlag(t *testing.T) {
	m := member("u1", "Ann")
	m.JobRole = &entity.JobRole{Name: "Designer"}

	digest := GenerateManagerDigest(DigestInput{
		TeamMembers: []entity.User{m},
		TargetDate:  digestDate.Format(entity.DateLayout),
	})

	require.Len(t, digest.PeopleNeedingAttention, 1)
	assert.Equal(t, "Designer", digest.PeopleNeedingAttention[0].Role)
}

func TestGenerateManagerDigest_Deterministic(t *testing.T) {
	in := DigestInput{
		TeamMembers: []entity.User{member("u1", "Ann"), member("u2", "Bob")},
		Workdays: []entity.Workday{
			workdayWithTasks("u1", digestDate, tasksWithStatus(entity.TaskStatusDone, 2)...),
		},
		TargetDate: digestDate.Format(entity.DateLayout),
	}

	assert.Equal(t, GenerateManagerDigest(in), GenerateManagerDigest(in))
}
