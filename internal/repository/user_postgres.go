package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository defines the interface for user lookups
type UserRepository interface {
	FirstUser(ctx context.Context) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	ListTeamMembers(ctx context.Context, teamID string) ([]entity.User, error)
	ListDepartmentMembers(ctx context.Context, deptID string) ([]entity.User, error)
}

var _ UserRepository = &UserPostgres{}

// UserPostgres implements UserRepository using PostgreSQL
type UserPostgres struct {
	db *pgxpool.Pool
}

func NewUserPostgres(db *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{db: db}
}

const userSelect = `
SELECT u.id, u.org_id, u.full_name, u.email, u.team_id,
       r.id, r.name, r.mission,
       t.id, t.name,
       d.id, d.name
FROM users u
LEFT JOIN job_roles r ON r.id = u.job_role_id
LEFT JOIN teams t ON t.id = u.team_id
LEFT JOIN departments d ON d.id = t.department_id
`

// FirstUser returns the oldest user in the database. It backs the dev
// principal resolver only; production deployments resolve the principal from
// the session instead.
func (r *UserPostgres) FirstUser(ctx context.Context) (*entity.User, error) {
	row := r.db.QueryRow(ctx, userSelect+"ORDER BY u.created_at LIMIT 1")

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("first user: %w", err)
	}
	return user, nil
}

func (r *UserPostgres) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	userID, err := toPgUUID(id)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, userSelect+"WHERE u.id = $1", userID)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (r *UserPostgres) ListTeamMembers(ctx context.Context, teamID string) ([]entity.User, error) {
	id, err := toPgUUID(teamID)
	if err != nil {
		return nil, err
	}
	return r.listUsers(ctx, userSelect+"WHERE u.team_id = $1 ORDER BY u.full_name", id)
}

func (r *UserPostgres) ListDepartmentMembers(ctx context.Context, deptID string) ([]entity.User, error) {
	id, err := toPgUUID(deptID)
	if err != nil {
		return nil, err
	}
	return r.listUsers(ctx, userSelect+"WHERE t.department_id = $1 ORDER BY u.full_name", id)
}

func (r *UserPostgres) listUsers(ctx context.Context, query string, args ...any) ([]entity.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		id, orgID, teamID        pgtype.UUID
		roleID, tID, deptID      pgtype.UUID
		fullName, email          string
		roleName, roleMission    pgtype.Text
		teamName, deptName       pgtype.Text
	)

	err := row.Scan(
		&id, &orgID, &fullName, &email, &teamID,
		&roleID, &roleName, &roleMission,
		&tID, &teamName,
		&deptID, &deptName,
	)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:       fromPgUUID(id),
		OrgID:    fromPgUUID(orgID),
		FullName: fullName,
		Email:    email,
	}

	if roleID.Valid {
		user.JobRole = &entity.JobRole{
			ID:      fromPgUUID(roleID),
			Name:    roleName.String,
			Mission: roleMission.String,
		}
	}

	if tID.Valid {
		user.Team = &entity.Team{
			ID:   fromPgUUID(tID),
			Name: teamName.String,
		}
		if deptID.Valid {
			user.Team.Department = &entity.Department{
				ID:   fromPgUUID(deptID),
				Name: deptName.String,
			}
		}
	}

	return user, nil
}
