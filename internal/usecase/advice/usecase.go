package advice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dailysync/standup-backend/internal/advisor"
	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/dailysync/standup-backend/internal/integration/llm"
	"github.com/dailysync/standup-backend/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const recentWorkdayLimit = 5

// AdviceUsecase implements the AI advisory business logic. Every feature
// attempts the configured LLM first and falls back to the deterministic
// generators on any LLM failure, so requests never fail because a provider is
// down or returned garbage.
type AdviceUsecase struct {
	userRepo     repository.UserRepository
	workdayRepo  repository.WorkdayRepository
	adviceRepo   repository.AdviceRepository
	digestRepo   repository.DigestRepository
	settingsRepo repository.SettingsRepository
	gateway      LLMGateway
	logger       *zap.Logger
}

// NewUsecase creates a new advice use case
func NewUsecase(
	userRepo repository.UserRepository,
	workdayRepo repository.WorkdayRepository,
	adviceRepo repository.AdviceRepository,
	digestRepo repository.DigestRepository,
	settingsRepo repository.SettingsRepository,
	gateway LLMGateway,
	logger *zap.Logger,
) *AdviceUsecase {
	return &AdviceUsecase{
		userRepo:     userRepo,
		workdayRepo:  workdayRepo,
		adviceRepo:   adviceRepo,
		digestRepo:   digestRepo,
		settingsRepo: settingsRepo,
		gateway:      gateway,
		logger:       logger,
	}
}

// MentorContext names the org units the advice was generated against.
type MentorContext struct {
	RoleName       string `json:"roleName,omitempty"`
	TeamName       string `json:"teamName,omitempty"`
	DepartmentName string `json:"departmentName,omitempty"`
}

type MentorResult struct {
	Advice  *entity.AIAdvice `json:"advice"`
	Context MentorContext    `json:"context"`
}

// MentorAdvice generates and stores personalized advice for the requesting
// employee. The date selects which workday counts as "today"; empty means the
// current day.
func (uc *AdviceUsecase) MentorAdvice(ctx context.Context, principal entity.Principal, date string) (*MentorResult, error) {
	setup, err := uc.settingsRepo.GetSetup(ctx, principal.OrgID)
	if err != nil {
		return nil, fmt.Errorf("get setup: %w", err)
	}
	if !setup.AIMentorEnabled {
		return nil, fmt.Errorf("ai mentor: %w", entity.ErrFeatureDisabled)
	}

	targetDate, err := resolveTargetDate(date)
	if err != nil {
		return nil, err
	}
	dateStr := targetDate.Format(entity.DateLayout)

	user, err := uc.userRepo.GetUserByID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	recent, err := uc.workdayRepo.RecentForUser(ctx, principal.UserID, targetDate, recentWorkdayLimit)
	if err != nil {
		return nil, fmt.Errorf("recent workdays: %w", err)
	}
	today := findWorkday(recent, dateStr)

	llmCfg, err := uc.settingsRepo.GetLLMConfig(ctx, principal.OrgID)
	if err != nil {
		return nil, fmt.Errorf("get llm config: %w", err)
	}

	now := time.Now().UTC()
	generated, err := uc.llmMentorAdvice(ctx, llmCfg, user, recent, today, now)
	if err != nil {
		uc.logFallback(ctx, "mentor", err)
		generated = advisor.GenerateMentorAdvice(advisor.MentorInput{
			User:           user,
			RecentWorkdays: recent,
			TodayWorkday:   today,
		}, now)
	}

	record, err := uc.adviceRepo.CreateAdvice(ctx, principal.UserID, entity.AdviceTypeEmployeeMentor, generated)
	if err != nil {
		return nil, fmt.Errorf("store advice: %w", err)
	}

	result := &MentorResult{Advice: record}
	if user.JobRole != nil {
		result.Context.RoleName = user.JobRole.Name
	}
	if user.Team != nil {
		result.Context.TeamName = user.Team.Name
		if user.Team.Department != nil {
			result.Context.DepartmentName = user.Team.Department.Name
		}
	}
	return result, nil
}

func (uc *AdviceUsecase) llmMentorAdvice(
	ctx context.Context,
	cfg entity.LLMConfig,
	user *entity.User,
	recent []entity.Workday,
	today *entity.Workday,
	now time.Time,
) (entity.MentorAdvice, error) {
	var todayTasks []entity.Task
	if today != nil {
		todayTasks = today.Tasks
	}
	totalTasks := len(todayTasks)
	doneCount := 0
	for _, t := range todayTasks {
		if t.Status == entity.TaskStatusDone {
			doneCount++
		}
	}
	rate := advisor.AvgCompletionRate(recent)

	resp, err := uc.gateway.Generate(ctx, cfg, entity.LLMRequest{
		Prompt:       mentorPrompt(user, today, totalTasks, doneCount, rate),
		SystemPrompt: mentorSystemPrompt,
		MaxTokens:    mentorMaxTokens,
		Temperature:  mentorTemperature,
	})
	if err != nil {
		return entity.MentorAdvice{}, err
	}

	parsed, err := llm.ParseJSON(resp)
	if err != nil {
		return entity.MentorAdvice{}, err
	}
	return normalizeMentorAdvice(parsed, today, totalTasks, rate, now), nil
}

// DigestRequest selects which group of people to analyze. TeamID wins over
// DeptID; with neither set the requesting manager's own team is used.
type DigestRequest struct {
	Date   string
	TeamID string
	DeptID string
}

type DigestResult struct {
	Digest  *entity.ManagerDigestRecord       `json:"digest"`
	Details map[string]entity.MemberSnapshot  `json:"details"`
	Metrics entity.DigestMetrics              `json:"metrics"`
	People  []entity.AttentionFlag            `json:"peopleNeedingAttention"`
}

// ManagerDigest aggregates the selected team's reports around the target date
// into a stored digest record.
func (uc *AdviceUsecase) ManagerDigest(ctx context.Context, principal entity.Principal, req DigestRequest) (*DigestResult, error) {
	setup, err := uc.settingsRepo.GetSetup(ctx, principal.OrgID)
	if err != nil {
		return nil, fmt.Errorf("get setup: %w", err)
	}
	if !setup.ManagerDigestEnabled {
		return nil, fmt.Errorf("manager digest: %w", entity.ErrFeatureDisabled)
	}

	targetDate, err := resolveTargetDate(req.Date)
	if err != nil {
		return nil, err
	}
	dateStr := targetDate.Format(entity.DateLayout)

	members, err := uc.resolveMembers(ctx, principal, req)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]string, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}
	workdays, err := uc.workdayRepo.ForUsersInRange(ctx, memberIDs, targetDate.Add(-24*time.Hour), targetDate)
	if err != nil {
		return nil, fmt.Errorf("team workdays: %w", err)
	}

	llmCfg, err := uc.settingsRepo.GetLLMConfig(ctx, principal.OrgID)
	if err != nil {
		return nil, fmt.Errorf("get llm config: %w", err)
	}

	digest, err := uc.llmManagerDigest(ctx, llmCfg, members, workdays, dateStr)
	if err != nil {
		uc.logFallback(ctx, "digest", err)
		generated := advisor.GenerateManagerDigest(advisor.DigestInput{
			TeamMembers: members,
			Workdays:    workdays,
			TargetDate:  dateStr,
		})
		digest = &generated
	}

	record, err := uc.digestRepo.CreateDigest(ctx, principal.UserID, targetDate, *digest)
	if err != nil {
		return nil, fmt.Errorf("store digest: %w", err)
	}

	return &DigestResult{
		Digest:  record,
		Details: digest.Details,
		Metrics: digest.Metrics,
		People:  digest.PeopleNeedingAttention,
	}, nil
}

func (uc *AdviceUsecase) resolveMembers(ctx context.Context, principal entity.Principal, req DigestRequest) ([]entity.User, error) {
	switch {
	case req.TeamID != "":
		members, err := uc.userRepo.ListTeamMembers(ctx, req.TeamID)
		if err != nil {
			return nil, fmt.Errorf("list team members: %w", err)
		}
		return members, nil
	case req.DeptID != "":
		members, err := uc.userRepo.ListDepartmentMembers(ctx, req.DeptID)
		if err != nil {
			return nil, fmt.Errorf("list department members: %w", err)
		}
		return members, nil
	default:
		user, err := uc.userRepo.GetUserByID(ctx, principal.UserID)
		if err != nil {
			return nil, fmt.Errorf("get user: %w", err)
		}
		if user.Team == nil {
			return nil, nil
		}
		members, err := uc.userRepo.ListTeamMembers(ctx, user.Team.ID)
		if err != nil {
			return nil, fmt.Errorf("list team members: %w", err)
		}
		return members, nil
	}
}

func (uc *AdviceUsecase) llmManagerDigest(
	ctx context.Context,
	cfg entity.LLMConfig,
	members []entity.User,
	workdays []entity.Workday,
	dateStr string,
) (*entity.ManagerDigest, error) {
	byUser := make(map[string][]entity.Workday)
	for _, wd := range workdays {
		byUser[wd.UserID] = append(byUser[wd.UserID], wd)
	}

	summaries := make([]memberSummary, 0, len(members))
	reportsSubmitted := 0
	for _, member := range members {
		today := findWorkday(byUser[member.ID], dateStr)
		s := memberSummary{Name: member.FullName}
		if member.JobRole != nil {
			s.Role = member.JobRole.Name
		}
		if today != nil {
			reportsSubmitted++
			s.HasReport = true
			s.TaskCount = len(today.Tasks)
			s.Mood = today.Mood
			for _, t := range today.Tasks {
				if t.IsBlocked {
					s.Blockers++
				}
			}
		}
		summaries = append(summaries, s)
	}

	reportRate := 0.0
	if len(members) > 0 {
		reportRate = float64(reportsSubmitted) / float64(len(members))
	}

	resp, err := uc.gateway.Generate(ctx, cfg, entity.LLMRequest{
		Prompt:       digestPrompt(len(members), reportRate, summaries),
		SystemPrompt: digestSystemPrompt,
		MaxTokens:    digestMaxTokens,
		Temperature:  digestTemperature,
	})
	if err != nil {
		return nil, err
	}

	parsed, err := llm.ParseJSON(resp)
	if err != nil {
		return nil, err
	}
	digest := normalizeManagerDigest(parsed, members, summaries, reportsSubmitted, reportRate)
	return &digest, nil
}

// StructureTask converts free-text task input into the structured shape. The
// result is returned to the caller and never persisted.
func (uc *AdviceUsecase) StructureTask(ctx context.Context, principal entity.Principal, rawText string) (*entity.TaskStructure, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, fmt.Errorf("rawText: %w", entity.ErrMissingField)
	}

	setup, err := uc.settingsRepo.GetSetup(ctx, principal.OrgID)
	if err != nil {
		return nil, fmt.Errorf("get setup: %w", err)
	}
	if !setup.TaskStructuringEnabled {
		return nil, fmt.Errorf("task structuring: %w", entity.ErrFeatureDisabled)
	}

	llmCfg, err := uc.settingsRepo.GetLLMConfig(ctx, principal.OrgID)
	if err != nil {
		return nil, fmt.Errorf("get llm config: %w", err)
	}

	structured, err := uc.llmStructureTask(ctx, llmCfg, rawText)
	if err != nil {
		uc.logFallback(ctx, "structure-task", err)
		parsed := advisor.ParseTaskText(rawText)
		structured = &parsed
	}
	return structured, nil
}

func (uc *AdviceUsecase) llmStructureTask(ctx context.Context, cfg entity.LLMConfig, rawText string) (*entity.TaskStructure, error) {
	resp, err := uc.gateway.Generate(ctx, cfg, entity.LLMRequest{
		Prompt:       structurePrompt(rawText),
		SystemPrompt: structureSystemPrompt,
		MaxTokens:    structureMaxTokens,
		Temperature:  structureTemperature,
	})
	if err != nil {
		return nil, err
	}

	parsed, err := llm.ParseJSON(resp)
	if err != nil {
		return nil, err
	}
	structured := normalizeStructuredTask(parsed, rawText)
	return &structured, nil
}

const ruleBasedTestResponse = "Rule-based mode active. No LLM needed."

// TestLLM checks candidate provider credentials with a one-off prompt without
// touching the stored organization policy.
func (uc *AdviceUsecase) TestLLM(ctx context.Context, cfg entity.LLMConfig) (string, error) {
	if cfg.Provider == "" {
		return "", fmt.Errorf("provider: %w", entity.ErrMissingField)
	}
	if !cfg.Provider.Valid() {
		return "", fmt.Errorf("provider %q: %w", cfg.Provider, entity.ErrUnknownProvider)
	}
	if cfg.Provider == entity.LLMProviderRuleBased {
		return ruleBasedTestResponse, nil
	}

	resp, err := uc.gateway.Generate(ctx, cfg, entity.LLMRequest{
		Prompt:    testPrompt,
		MaxTokens: testMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp, nil
}

// UpdateAISettings replaces the organization's LLM policy and returns the
// stored configuration.
func (uc *AdviceUsecase) UpdateAISettings(ctx context.Context, principal entity.Principal, cfg entity.LLMConfig) (*entity.LLMConfig, error) {
	if cfg.Provider == "" {
		return nil, fmt.Errorf("provider: %w", entity.ErrMissingField)
	}
	if !cfg.Provider.Valid() {
		return nil, fmt.Errorf("provider %q: %w", cfg.Provider, entity.ErrUnknownProvider)
	}

	if err := uc.settingsRepo.UpdateLLMConfig(ctx, principal.OrgID, cfg); err != nil {
		return nil, fmt.Errorf("update llm config: %w", err)
	}
	return &cfg, nil
}

// logFallback records why a request is switching to the rule-based path. A
// disabled LLM is the normal mode for many orgs and only logged at debug.
func (uc *AdviceUsecase) logFallback(ctx context.Context, feature string, err error) {
	if errors.Is(err, entity.ErrLLMDisabled) {
		ctxzap.Extract(ctx).Debug("llm disabled, using rule-based generator",
			zap.String("feature", feature))
		return
	}
	ctxzap.Extract(ctx).Warn("llm generation failed, using rule-based fallback",
		zap.String("feature", feature),
		zap.Error(err))
}

func resolveTargetDate(date string) (time.Time, error) {
	if date == "" {
		return time.Now().UTC(), nil
	}
	parsed, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", date, entity.ErrInvalidFormat)
	}
	return parsed, nil
}

func findWorkday(workdays []entity.Workday, dateStr string) *entity.Workday {
	for i := range workdays {
		if workdays[i].DateString() == dateStr {
			return &workdays[i]
		}
	}
	return nil
}
