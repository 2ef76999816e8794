package model

import "time"

type User struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AuthUser holds the credentials of exactly one User and is removed with it.
type AuthUser struct {
	ID           int64  `db:"id"`
	UserID       int64  `db:"user_id"`
	PasswordHash string `db:"password_hash"`
}

type RefreshToken struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

type DeviceToken struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	DeviceToken string    `db:"device_token"`
	CreatedAt   time.Time `db:"created_at"`
}
