package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upAddMembershipRoleCheck, downAddMembershipRoleCheck)
}

func upAddMembershipRoleCheck(tx *sql.Tx) error {
	_, err := tx.Exec(`
		ALTER TABLE team_memberships ADD CONSTRAINT check_membership_role CHECK (role IN ('owner', 'admin', 'member'));
	`)
	return err
}

func downAddMembershipRoleCheck(tx *sql.Tx) error {
	_, err := tx.Exec(`
		ALTER TABLE team_memberships DROP CONSTRAINT check_membership_role;
	`)
	return err
}
