package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUsersTable, downCreateUsersTable)
}

func upCreateUsersTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE users (
	  id BIGSERIAL PRIMARY KEY,
	  first_name VARCHAR(16) NOT NULL,
	  last_name VARCHAR(16) NOT NULL,
	  email VARCHAR(254) NOT NULL,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE UNIQUE INDEX idx_users_email ON users(email);

	CREATE TABLE auth_users (
	  id BIGSERIAL PRIMARY KEY,
	  user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	  password_hash VARCHAR(127) NOT NULL
	);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateUsersTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS auth_users; DROP TABLE IF EXISTS users;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
