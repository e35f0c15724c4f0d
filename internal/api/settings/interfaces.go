package settings

import (
	"context"

	"github.com/dailysync/standup-backend/internal/entity"
)

type SettingsUsecase interface {
	UpdateAISettings(ctx context.Context, principal entity.Principal, cfg entity.LLMConfig) (*entity.LLMConfig, error)
}
