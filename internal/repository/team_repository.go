package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"standup-service/internal/model"
)

// MembershipReader resolves the teams a user belongs to.
type MembershipReader interface {
	ListTeamIDsByUserID(ctx context.Context, userID int64) ([]int64, error)
}

type TeamRepository interface {
	MembershipReader
	Create(ctx context.Context, team *model.Team) (*model.Team, error)
	FindByID(ctx context.Context, teamID int64) (*model.Team, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Team, error)
	GetMembership(ctx context.Context, teamID, userID int64) (*model.TeamMembership, error)
	AddMember(ctx context.Context, teamID, userID int64, role string) error
	RemoveMember(ctx context.Context, teamID, userID int64) error
	ListMembers(ctx context.Context, teamID int64) ([]model.TeamMember, error)
	ListMemberIDs(ctx context.Context, teamIDs []int64) ([]int64, error)
}

type postgresTeamRepository struct {
	db *sqlx.DB
}

func NewPostgresTeamRepository(db *sqlx.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

// Create inserts the team and makes its creator the owner in one transaction.
func (r *postgresTeamRepository) Create(ctx context.Context, team *model.Team) (*model.Team, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO teams (name, description, created_by_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	row := tx.QueryRowxContext(ctx, query, team.Name, team.Description, team.CreatedByID)
	if err := row.Scan(&team.ID, &team.CreatedAt); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO team_memberships (team_id, user_id, role) VALUES ($1, $2, $3)`,
		team.ID, team.CreatedByID, model.RoleOwner,
	)
	if err != nil {
		return nil, fmt.Errorf("insert owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return team, nil
}

func (r *postgresTeamRepository) FindByID(ctx context.Context, teamID int64) (*model.Team, error) {
	var team model.Team
	query := `SELECT id, name, description, created_by_id, created_at FROM teams WHERE id = $1`
	err := r.db.GetContext(ctx, &team, query, teamID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &team, nil
}

func (r *postgresTeamRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Team, error) {
	teams := []model.Team{}
	query := `
		SELECT t.id, t.name, t.description, t.created_by_id, t.created_at
		FROM teams t
		JOIN team_memberships tm ON t.id = tm.team_id
		WHERE tm.user_id = $1
		ORDER BY t.name ASC
	`
	err := r.db.SelectContext(ctx, &teams, query, userID)
	return teams, err
}

func (r *postgresTeamRepository) ListTeamIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	teamIDs := []int64{}
	query := `SELECT team_id FROM team_memberships WHERE user_id = $1`
	err := r.db.SelectContext(ctx, &teamIDs, query, userID)
	if err != nil {
		return nil, err
	}
	return teamIDs, nil
}

func (r *postgresTeamRepository) GetMembership(ctx context.Context, teamID, userID int64) (*model.TeamMembership, error) {
	var membership model.TeamMembership
	query := `SELECT id, team_id, user_id, role FROM team_memberships WHERE team_id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &membership, query, teamID, userID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &membership, nil
}

func (r *postgresTeamRepository) AddMember(ctx context.Context, teamID, userID int64, role string) error {
	query := `
		INSERT INTO team_memberships (team_id, user_id, role)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, teamID, userID, role)
	return err
}

func (r *postgresTeamRepository) RemoveMember(ctx context.Context, teamID, userID int64) error {
	query := `DELETE FROM team_memberships WHERE team_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, teamID, userID)
	return err
}

func (r *postgresTeamRepository) ListMembers(ctx context.Context, teamID int64) ([]model.TeamMember, error) {
	members := []model.TeamMember{}
	query := `
		SELECT u.id AS user_id, u.first_name, u.last_name, u.email, tm.role
		FROM team_memberships tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY u.last_name, u.first_name
	`
	err := r.db.SelectContext(ctx, &members, query, teamID)
	return members, err
}

func (r *postgresTeamRepository) ListMemberIDs(ctx context.Context, teamIDs []int64) ([]int64, error) {
	userIDs := []int64{}
	if len(teamIDs) == 0 {
		return userIDs, nil
	}

	query := fmt.Sprintf(`SELECT DISTINCT user_id FROM team_memberships WHERE team_id IN (%s)`, placeholders(1, len(teamIDs)))
	err := r.db.SelectContext(ctx, &userIDs, query, int64Args(teamIDs)...)
	return userIDs, err
}
