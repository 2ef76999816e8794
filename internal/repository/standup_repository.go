package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"standup-service/internal/model"
)

// StandupTeamReader loads team-standup associations with their standup populated.
type StandupTeamReader interface {
	ListByTeamIDs(ctx context.Context, teamIDs []int64) ([]model.StandupTeam, error)
}

type StandupRepository interface {
	StandupTeamReader
	Create(ctx context.Context, standup *model.Standup, teamIDs []int64) (*model.Standup, error)
	FindByID(ctx context.Context, standupID int64) (*model.Standup, error)
	Delete(ctx context.Context, standupID int64) error
}

type postgresStandupRepository struct {
	db *sqlx.DB
}

func NewPostgresStandupRepository(db *sqlx.DB) StandupRepository {
	return &postgresStandupRepository{db: db}
}

// Create inserts the standup and one standup_teams row per team in one transaction.
func (r *postgresStandupRepository) Create(ctx context.Context, standup *model.Standup, teamIDs []int64) (*model.Standup, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO standups (yesterday, today, blockers, created_by_id, created_at_tz)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	row := tx.QueryRowxContext(ctx, query, standup.Yesterday, standup.Today, standup.Blockers, standup.CreatedByID, standup.CreatedAtTZ)
	if err := row.Scan(&standup.ID, &standup.CreatedAt); err != nil {
		return nil, err
	}

	for _, teamID := range teamIDs {
		_, err := tx.ExecContext(ctx, `INSERT INTO standup_teams (team_id, standup_id) VALUES ($1, $2)`, teamID, standup.ID)
		if err != nil {
			return nil, fmt.Errorf("link standup %d to team %d: %w", standup.ID, teamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return standup, nil
}

func (r *postgresStandupRepository) FindByID(ctx context.Context, standupID int64) (*model.Standup, error) {
	var standup model.Standup
	query := `SELECT id, yesterday, today, blockers, created_by_id, created_at, created_at_tz FROM standups WHERE id = $1`
	err := r.db.GetContext(ctx, &standup, query, standupID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &standup, nil
}

func (r *postgresStandupRepository) Delete(ctx context.Context, standupID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM standups WHERE id = $1`, standupID)
	return err
}

// ListByTeamIDs loads every association of the given teams together with its standup.
func (r *postgresStandupRepository) ListByTeamIDs(ctx context.Context, teamIDs []int64) ([]model.StandupTeam, error) {
	associations := []model.StandupTeam{}
	if len(teamIDs) == 0 {
		return associations, nil
	}

	query := fmt.Sprintf(`
		SELECT
			st.id, st.team_id, st.standup_id,
			s.id AS "standup.id",
			s.yesterday AS "standup.yesterday",
			s.today AS "standup.today",
			s.blockers AS "standup.blockers",
			s.created_by_id AS "standup.created_by_id",
			s.created_at AS "standup.created_at",
			s.created_at_tz AS "standup.created_at_tz"
		FROM standup_teams st
		JOIN standups s ON s.id = st.standup_id
		WHERE st.team_id IN (%s)
		ORDER BY s.created_at DESC, s.id DESC
	`, placeholders(1, len(teamIDs)))

	err := r.db.SelectContext(ctx, &associations, query, int64Args(teamIDs)...)
	if err != nil {
		return nil, err
	}

	return associations, nil
}
