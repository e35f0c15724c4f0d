package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkdayRepository defines the interface for workday report lookups
type WorkdayRepository interface {
	RecentForUser(ctx context.Context, userID string, until time.Time, limit int) ([]entity.Workday, error)
	ForUsersInRange(ctx context.Context, userIDs []string, from, to time.Time) ([]entity.Workday, error)
}

var _ WorkdayRepository = &WorkdayPostgres{}

// WorkdayPostgres implements WorkdayRepository using PostgreSQL
type WorkdayPostgres struct {
	db *pgxpool.Pool
}

func NewWorkdayPostgres(db *pgxpool.Pool) *WorkdayPostgres {
	return &WorkdayPostgres{db: db}
}

// RecentForUser returns the user's workdays with date <= until, newest first.
func (r *WorkdayPostgres) RecentForUser(ctx context.Context, userID string, until time.Time, limit int) ([]entity.Workday, error) {
	id, err := toPgUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, date, main_focus, mood
		FROM workdays
		WHERE user_id = $1 AND date <= $2
		ORDER BY date DESC
		LIMIT $3`,
		id, until, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent workdays: %w", err)
	}
	defer rows.Close()

	workdays, err := scanWorkdays(rows)
	if err != nil {
		return nil, err
	}
	return r.attachTasks(ctx, workdays)
}

// ForUsersInRange returns workdays of the given users with from <= date <= to.
func (r *WorkdayPostgres) ForUsersInRange(ctx context.Context, userIDs []string, from, to time.Time) ([]entity.Workday, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	ids := make([]pgtype.UUID, 0, len(userIDs))
	for _, userID := range userIDs {
		id, err := toPgUUID(userID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, date, main_focus, mood
		FROM workdays
		WHERE user_id = ANY($1) AND date >= $2 AND date <= $3
		ORDER BY date DESC`,
		ids, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("workdays in range: %w", err)
	}
	defer rows.Close()

	workdays, err := scanWorkdays(rows)
	if err != nil {
		return nil, err
	}
	return r.attachTasks(ctx, workdays)
}

func scanWorkdays(rows pgx.Rows) ([]entity.Workday, error) {
	var workdays []entity.Workday
	for rows.Next() {
		var (
			id, userID pgtype.UUID
			date       pgtype.Date
			mainFocus  pgtype.Text
			mood       pgtype.Int2
		)
		if err := rows.Scan(&id, &userID, &date, &mainFocus, &mood); err != nil {
			return nil, fmt.Errorf("scan workday: %w", err)
		}
		workdays = append(workdays, entity.Workday{
			ID:        fromPgUUID(id),
			UserID:    fromPgUUID(userID),
			Date:      date.Time,
			MainFocus: textOrNil(mainFocus),
			Mood:      intOrNil(mood),
		})
	}
	return workdays, rows.Err()
}

// attachTasks loads tasks for all fetched workdays in one query and groups
// them back onto their parents preserving the stored position order.
func (r *WorkdayPostgres) attachTasks(ctx context.Context, workdays []entity.Workday) ([]entity.Workday, error) {
	if len(workdays) == 0 {
		return workdays, nil
	}

	ids := make([]pgtype.UUID, 0, len(workdays))
	for _, wd := range workdays {
		id, err := toPgUUID(wd.ID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, workday_id, title, status, priority, is_blocked
		FROM tasks
		WHERE workday_id = ANY($1)
		ORDER BY workday_id, position`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("workday tasks: %w", err)
	}
	defer rows.Close()

	tasksByWorkday := make(map[string][]entity.Task)
	for rows.Next() {
		var (
			id, workdayID    pgtype.UUID
			title            string
			status, priority string
			isBlocked        bool
		)
		if err := rows.Scan(&id, &workdayID, &title, &status, &priority, &isBlocked); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		key := fromPgUUID(workdayID)
		tasksByWorkday[key] = append(tasksByWorkday[key], entity.Task{
			ID:        fromPgUUID(id),
			Title:     title,
			Status:    entity.TaskStatus(status),
			Priority:  entity.NormalizePriority(priority),
			IsBlocked: isBlocked,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range workdays {
		workdays[i].Tasks = tasksByWorkday[workdays[i].ID]
	}
	return workdays, nil
}
