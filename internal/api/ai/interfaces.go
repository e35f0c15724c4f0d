package ai

import (
	"context"

	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/dailysync/standup-backend/internal/usecase/advice"
)

type AdviceUsecase interface {
	MentorAdvice(ctx context.Context, principal entity.Principal, date string) (*advice.MentorResult, error)
	ManagerDigest(ctx context.Context, principal entity.Principal, req advice.DigestRequest) (*advice.DigestResult, error)
	StructureTask(ctx context.Context, principal entity.Principal, rawText string) (*entity.TaskStructure, error)
	TestLLM(ctx context.Context, cfg entity.LLMConfig) (string, error)
}
