package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateStandupsTable, downCreateStandupsTable)
}

func upCreateStandupsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS standups (
			id BIGSERIAL PRIMARY KEY,
			yesterday VARCHAR(1000) NOT NULL,
			today VARCHAR(1000) NOT NULL,
			blockers VARCHAR(1000) NOT NULL,
			created_by_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			created_at_tz VARCHAR(100) NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_standups_created_by_id ON standups(created_by_id);
	`)
	return err
}

func downCreateStandupsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS standups;`)
	return err
}
