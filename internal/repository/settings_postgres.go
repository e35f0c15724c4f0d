package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository reads and updates per-organization AI configuration.
type SettingsRepository interface {
	GetSetup(ctx context.Context, orgID string) (*entity.OrganizationSetup, error)
	GetLLMConfig(ctx context.Context, orgID string) (entity.LLMConfig, error)
	UpdateLLMConfig(ctx context.Context, orgID string, cfg entity.LLMConfig) error
}

var _ SettingsRepository = &SettingsPostgres{}

// SettingsPostgres implements SettingsRepository using PostgreSQL
type SettingsPostgres struct {
	db *pgxpool.Pool
}

func NewSettingsPostgres(db *pgxpool.Pool) *SettingsPostgres {
	return &SettingsPostgres{db: db}
}

func (r *SettingsPostgres) GetSetup(ctx context.Context, orgID string) (*entity.OrganizationSetup, error) {
	id, err := toPgUUID(orgID)
	if err != nil {
		return nil, err
	}

	setup := entity.OrganizationSetup{OrgID: orgID}
	err = r.db.QueryRow(ctx, `
		SELECT ai_mentor_enabled, manager_digest_enabled, task_structuring_enabled
		FROM organization_setup
		WHERE org_id = $1`,
		id,
	).Scan(&setup.AIMentorEnabled, &setup.ManagerDigestEnabled, &setup.TaskStructuringEnabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrSetupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get setup: %w", err)
	}
	return &setup, nil
}

// llmPolicy is the JSONB shape stored under organizations.ai_policy -> 'llm'.
type llmPolicy struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	Model    string `json:"model,omitempty"`
}

// GetLLMConfig reads the organization's LLM policy. A missing or empty policy
// means the rule-based path only.
func (r *SettingsPostgres) GetLLMConfig(ctx context.Context, orgID string) (entity.LLMConfig, error) {
	id, err := toPgUUID(orgID)
	if err != nil {
		return entity.LLMConfig{}, err
	}

	var raw []byte
	err = r.db.QueryRow(ctx, `
		SELECT ai_policy -> 'llm'
		FROM organizations
		WHERE id = $1`,
		id,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.LLMConfig{}, entity.ErrOrgNotFound
	}
	if err != nil {
		return entity.LLMConfig{}, fmt.Errorf("get llm config: %w", err)
	}

	if len(raw) == 0 {
		return entity.LLMConfig{Provider: entity.LLMProviderRuleBased}, nil
	}

	var policy llmPolicy
	if err := json.Unmarshal(raw, &policy); err != nil {
		return entity.LLMConfig{}, fmt.Errorf("decode llm policy: %w", err)
	}
	if policy.Provider == "" {
		policy.Provider = string(entity.LLMProviderRuleBased)
	}

	return entity.LLMConfig{
		Provider: entity.LLMProvider(policy.Provider),
		APIKey:   policy.APIKey,
		Model:    policy.Model,
	}, nil
}

// UpdateLLMConfig merges the LLM policy into ai_policy, preserving any other
// policy keys the organization has.
func (r *SettingsPostgres) UpdateLLMConfig(ctx context.Context, orgID string, cfg entity.LLMConfig) error {
	id, err := toPgUUID(orgID)
	if err != nil {
		return err
	}

	policy, err := json.Marshal(llmPolicy{
		Provider: string(cfg.Provider),
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
	})
	if err != nil {
		return fmt.Errorf("encode llm policy: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE organizations
		SET ai_policy = jsonb_set(COALESCE(ai_policy, '{}'::jsonb), '{llm}', $2, true),
		    updated_at = now()
		WHERE id = $1`,
		id, policy,
	)
	if err != nil {
		return fmt.Errorf("update llm config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrOrgNotFound
	}
	return nil
}
