package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateStandupTeamsTable, downCreateStandupTeamsTable)
}

func upCreateStandupTeamsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS standup_teams (
			id BIGSERIAL PRIMARY KEY,
			team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			standup_id BIGINT NOT NULL REFERENCES standups(id) ON DELETE CASCADE,
			UNIQUE (team_id, standup_id)
		);

		CREATE INDEX IF NOT EXISTS idx_standup_teams_standup_id ON standup_teams(standup_id);
	`)
	return err
}

func downCreateStandupTeamsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS standup_teams;`)
	return err
}
