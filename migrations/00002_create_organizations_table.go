package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateOrganizationsTable, downCreateOrganizationsTable)
}

func upCreateOrganizationsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE organizations (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(64) NOT NULL,
			created_by_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_organizations_created_by_id ON organizations(created_by_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateOrganizationsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS organizations;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
