package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTeamsTable, downCreateTeamsTable)
}

func upCreateTeamsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE teams (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(64) NOT NULL,
			description VARCHAR(255) NOT NULL,
			created_by_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateTeamsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS teams;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
