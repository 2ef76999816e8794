package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"standup-service/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User, passwordHash string) (int64, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindAuthUser(ctx context.Context, userID int64) (*model.AuthUser, error)
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

// Create inserts the user and its credentials in one transaction.
func (r *postgresUserRepository) Create(ctx context.Context, user *model.User, passwordHash string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `INSERT INTO users (first_name, last_name, email) VALUES ($1, $2, $3) RETURNING id, created_at`
	err = tx.QueryRowxContext(ctx, query, user.FirstName, user.LastName, user.Email).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO auth_users (user_id, password_hash) VALUES ($1, $2)`, user.ID, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("insert auth user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return user.ID, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `SELECT id, first_name, last_name, email, created_at FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	query := `SELECT id, first_name, last_name, email, created_at FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) FindAuthUser(ctx context.Context, userID int64) (*model.AuthUser, error) {
	var authUser model.AuthUser
	query := `SELECT id, user_id, password_hash FROM auth_users WHERE user_id = $1`
	err := r.db.GetContext(ctx, &authUser, query, userID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &authUser, nil
}
