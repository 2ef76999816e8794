package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type DeviceTokenRepository interface {
	Register(ctx context.Context, userID int64, token string) error
	ListByUserIDs(ctx context.Context, userIDs []int64) ([]string, error)
}

type postgresDeviceTokenRepository struct {
	db *sqlx.DB
}

func NewPostgresDeviceTokenRepository(db *sqlx.DB) DeviceTokenRepository {
	return &postgresDeviceTokenRepository{db: db}
}

func (r *postgresDeviceTokenRepository) Register(ctx context.Context, userID int64, token string) error {
	query := `
		INSERT INTO user_device_tokens (user_id, device_token)
		VALUES ($1, $2)
		ON CONFLICT (device_token) DO UPDATE SET user_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, userID, token)
	return err
}

func (r *postgresDeviceTokenRepository) ListByUserIDs(ctx context.Context, userIDs []int64) ([]string, error) {
	tokens := []string{}
	if len(userIDs) == 0 {
		return tokens, nil
	}

	query := fmt.Sprintf(`SELECT device_token FROM user_device_tokens WHERE user_id IN (%s)`, placeholders(1, len(userIDs)))
	err := r.db.SelectContext(ctx, &tokens, query, int64Args(userIDs)...)
	return tokens, err
}
