package entity

import "time"

// AdviceSource marks which path produced a result. The output shape is
// identical for both.
type AdviceSource string

const (
	SourceLLM       AdviceSource = "llm"
	SourceRuleBased AdviceSource = "rule-based"
)

// Generator version tags, one per path.
const (
	VersionLLM       = "llm-v1"
	VersionRuleBased = "rule-based-v1"
)

// AdviceContent is the normalized mentor-advice payload.
type AdviceContent struct {
	Actions   []string `json:"actions"` // at most 3
	Warnings  []string `json:"warnings"`
	Insights  []string `json:"insights"`
	MainFocus string   `json:"mainFocus"`
	Summary   string   `json:"summary"`
}

type AdviceMetadata struct {
	TaskCount      int          `json:"taskCount"`
	CompletionRate float64      `json:"completionRate"`
	GeneratedAt    time.Time    `json:"generatedAt"`
	Source         AdviceSource `json:"source"`
	Version        string       `json:"version"`
}

type MentorAdvice struct {
	Content  AdviceContent  `json:"content"`
	Metadata AdviceMetadata `json:"metadata"`
}

type AdviceType string

const AdviceTypeEmployeeMentor AdviceType = "EMPLOYEE_MENTOR"

// AIAdvice is the persisted, append-only advice record. Re-invocation creates
// a new record, existing ones are never updated.
type AIAdvice struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      AdviceType     `json:"type"`
	Content   AdviceContent  `json:"content"`
	Metadata  AdviceMetadata `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

// AttentionFlag marks one team member the manager should review, with every
// independently evaluated reason.
type AttentionFlag struct {
	UserID  string   `json:"userId"`
	Name    string   `json:"name"`
	Role    string   `json:"role,omitempty"`
	Reasons []string `json:"reasons"`
}

// MemberSnapshot is the per-member slice of the digest details side-channel.
type MemberSnapshot struct {
	Name      string  `json:"name"`
	HasReport bool    `json:"hasReport"`
	TaskCount int     `json:"taskCount"`
	Mood      *int    `json:"mood"`
	MainFocus *string `json:"mainFocus"`
}

type DigestMetrics struct {
	TeamSize         int     `json:"teamSize"`
	ReportsSubmitted int     `json:"reportsSubmitted"`
	ReportRate       float64 `json:"reportRate"`
	NeedingAttention int     `json:"needingAttention"`
}

// ManagerDigest is the normalized team digest produced by either path.
type ManagerDigest struct {
	Summary                string                    `json:"summary"`
	Highlights             []string                  `json:"highlights"` // at most 5
	Concerns               []string                  `json:"concerns"`
	PeopleNeedingAttention []AttentionFlag           `json:"peopleNeedingAttention"`
	Details                map[string]MemberSnapshot `json:"details"`
	Metrics                DigestMetrics             `json:"metrics"`
}

// ManagerDigestRecord is the persisted, append-only subset of a digest.
// Details and metrics are returned to the caller but not stored verbatim.
type ManagerDigestRecord struct {
	ID         string    `json:"id"`
	ManagerID  string    `json:"manager_id"`
	Date       time.Time `json:"date"`
	Summary    string    `json:"summary"`
	Highlights []string  `json:"highlights"`
	Concerns   []string  `json:"concerns"`
	CreatedAt  time.Time `json:"created_at"`
}

// StructuredTask is the normalized shape extracted from free-text task input.
type StructuredTask struct {
	Title    string       `json:"title"`
	Outcome  string       `json:"outcome"`
	Steps    []string     `json:"steps"`
	DoD      []string     `json:"dod"`
	Priority TaskPriority `json:"priority"`
}

// TaskStructure wraps a StructuredTask with per-field extraction confidence.
// Confidence is present for every field on both paths; it is never persisted.
type TaskStructure struct {
	RawText    string             `json:"rawText"`
	Structured StructuredTask     `json:"structured"`
	Confidence map[string]float64 `json:"confidence"`
	Source     AdviceSource       `json:"source"`
}
