package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateTeamMembershipsTable, downCreateTeamMembershipsTable)
}

func upCreateTeamMembershipsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS team_memberships (
			id BIGSERIAL PRIMARY KEY,
			team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role TEXT NOT NULL,
			-- One role per user per team
			UNIQUE (team_id, user_id)
		);

		CREATE INDEX IF NOT EXISTS idx_team_memberships_user_id ON team_memberships(user_id);
	`)
	return err
}

func downCreateTeamMembershipsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS team_memberships;`)
	return err
}
