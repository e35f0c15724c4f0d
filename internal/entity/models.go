package entity

import "time"

// DateLayout is the canonical calendar-day format used to match workdays to a
// target date. Reports are compared by day, never by full timestamp.
const DateLayout = "2006-01-02"

type TaskStatus string

const (
	TaskStatusPlanned    TaskStatus = "PLANNED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusCarryover  TaskStatus = "CARRYOVER"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

// NormalizePriority maps an arbitrary string onto a recognized priority
// literal, defaulting to MEDIUM. Both the LLM path and the rule-based path go
// through this single function.
func NormalizePriority(v string) TaskPriority {
	switch TaskPriority(v) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return TaskPriority(v)
	default:
		return TaskPriorityMedium
	}
}

// Task is a single task inside a daily report. Priority is empty when the
// employee did not set one.
type Task struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Status    TaskStatus   `json:"status"`
	Priority  TaskPriority `json:"priority,omitempty"`
	IsBlocked bool         `json:"is_blocked"`
}

// Workday is one employee's structured daily report. The advisory engine
// treats it as read-only input.
type Workday struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"date"`
	MainFocus *string   `json:"main_focus,omitempty"`
	Mood      *int      `json:"mood,omitempty"` // 1-5 scale
	Tasks     []Task    `json:"tasks"`
}

// DateString returns the calendar day of the report.
func (w *Workday) DateString() string {
	return w.Date.Format(DateLayout)
}

type JobRole struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Mission string `json:"mission,omitempty"`
}

type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Team struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Department *Department `json:"department,omitempty"`
}

type User struct {
	ID       string   `json:"id"`
	OrgID    string   `json:"org_id"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	JobRole  *JobRole `json:"job_role,omitempty"`
	Team     *Team    `json:"team,omitempty"`
}

// Principal is the authenticated caller, resolved once per request by the
// auth middleware. The engine never assumes how it was resolved.
type Principal struct {
	UserID string
	OrgID  string
}

// OrganizationSetup carries the precomputed per-org feature flags derived
// from setup completeness.
type OrganizationSetup struct {
	OrgID                  string `json:"org_id"`
	AIMentorEnabled        bool   `json:"ai_mentor_enabled"`
	ManagerDigestEnabled   bool   `json:"manager_digest_enabled"`
	TaskStructuringEnabled bool   `json:"task_structuring_enabled"`
}
