package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdviceRepository persists generated mentor advice. Records are append-only.
type AdviceRepository interface {
	CreateAdvice(ctx context.Context, userID string, adviceType entity.AdviceType, advice entity.MentorAdvice) (*entity.AIAdvice, error)
}

var _ AdviceRepository = &AdvicePostgres{}

// AdvicePostgres implements AdviceRepository using PostgreSQL
type AdvicePostgres struct {
	db *pgxpool.Pool
}

func NewAdvicePostgres(db *pgxpool.Pool) *AdvicePostgres {
	return &AdvicePostgres{db: db}
}

func (r *AdvicePostgres) CreateAdvice(ctx context.Context, userID string, adviceType entity.AdviceType, advice entity.MentorAdvice) (*entity.AIAdvice, error) {
	uid, err := toPgUUID(userID)
	if err != nil {
		return nil, err
	}

	content, err := json.Marshal(advice.Content)
	if err != nil {
		return nil, fmt.Errorf("marshal advice content: %w", err)
	}
	metadata, err := json.Marshal(advice.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal advice metadata: %w", err)
	}

	var (
		id        pgtype.UUID
		createdAt pgtype.Timestamptz
	)
	err = r.db.QueryRow(ctx, `
		INSERT INTO ai_advice (user_id, type, content, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		uid, string(adviceType), content, metadata,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("create advice: %w", err)
	}

	return &entity.AIAdvice{
		ID:        fromPgUUID(id),
		UserID:    userID,
		Type:      adviceType,
		Content:   advice.Content,
		Metadata:  advice.Metadata,
		CreatedAt: createdAt.Time,
	}, nil
}
