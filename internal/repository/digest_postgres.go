package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DigestRepository persists generated manager digests. Records are append-only.
type DigestRepository interface {
	CreateDigest(ctx context.Context, managerID string, date time.Time, digest entity.ManagerDigest) (*entity.ManagerDigestRecord, error)
}

var _ DigestRepository = &DigestPostgres{}

// DigestPostgres implements DigestRepository using PostgreSQL
type DigestPostgres struct {
	db *pgxpool.Pool
}

func NewDigestPostgres(db *pgxpool.Pool) *DigestPostgres {
	return &DigestPostgres{db: db}
}

func (r *DigestPostgres) CreateDigest(ctx context.Context, managerID string, date time.Time, digest entity.ManagerDigest) (*entity.ManagerDigestRecord, error) {
	mid, err := toPgUUID(managerID)
	if err != nil {
		return nil, err
	}

	highlights := textArray(digest.Highlights)
	concerns := textArray(digest.Concerns)

	var (
		id        pgtype.UUID
		createdAt pgtype.Timestamptz
	)
	err = r.db.QueryRow(ctx, `
		INSERT INTO manager_digests (manager_id, date, summary, highlights, concerns)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		mid, date, digest.Summary, highlights, concerns,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("create digest: %w", err)
	}

	return &entity.ManagerDigestRecord{
		ID:         fromPgUUID(id),
		ManagerID:  managerID,
		Date:       date,
		Summary:    digest.Summary,
		Highlights: highlights,
		Concerns:   concerns,
		CreatedAt:  createdAt.Time,
	}, nil
}

// textArray coalesces a nil slice to an empty one. pgx encodes nil as SQL
// NULL, which the NOT NULL array columns reject.
func textArray(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
