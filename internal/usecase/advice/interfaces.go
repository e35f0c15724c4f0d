package advice

import (
	"context"

	"github.com/dailysync/standup-backend/internal/entity"
)

// LLMGateway generates one completion against the org-configured provider.
// It returns entity.ErrLLMDisabled when the config has no usable LLM.
type LLMGateway interface {
	Generate(ctx context.Context, cfg entity.LLMConfig, req entity.LLMRequest) (string, error)
}
