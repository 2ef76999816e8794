package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"standup-service/internal/model"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *model.Organization) (*model.Organization, error)
	FindByID(ctx context.Context, id int64) (*model.Organization, error)
	ListByCreator(ctx context.Context, userID int64) ([]model.Organization, error)
}

type postgresOrganizationRepository struct {
	db *sqlx.DB
}

func NewPostgresOrganizationRepository(db *sqlx.DB) OrganizationRepository {
	return &postgresOrganizationRepository{db: db}
}

func (r *postgresOrganizationRepository) Create(ctx context.Context, org *model.Organization) (*model.Organization, error) {
	query := `
		INSERT INTO organizations (name, created_by_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, org.Name, org.CreatedByID).Scan(&org.ID, &org.CreatedAt)
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (r *postgresOrganizationRepository) FindByID(ctx context.Context, id int64) (*model.Organization, error) {
	var org model.Organization
	query := `SELECT id, name, created_by_id, created_at FROM organizations WHERE id = $1`
	err := r.db.GetContext(ctx, &org, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &org, nil
}

func (r *postgresOrganizationRepository) ListByCreator(ctx context.Context, userID int64) ([]model.Organization, error) {
	orgs := []model.Organization{}
	query := `SELECT id, name, created_by_id, created_at FROM organizations WHERE created_by_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &orgs, query, userID)
	return orgs, err
}
