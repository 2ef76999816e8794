package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"standup-service/internal/config"
	"standup-service/internal/jwt"
	"standup-service/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type memoryUserRepo struct {
	users     map[int64]*model.User
	passwords map[int64]string
	createErr error
	findErr   error
}

func (r *memoryUserRepo) Create(ctx context.Context, user *model.User, passwordHash string) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	id := int64(len(r.users) + 1)
	user.ID = id
	r.users[id] = user
	r.passwords[id] = passwordHash
	return id, nil
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.users[id], nil
}

func (r *memoryUserRepo) FindAuthUser(ctx context.Context, userID int64) (*model.AuthUser, error) {
	if _, ok := r.passwords[userID]; !ok {
		return nil, nil
	}
	return &model.AuthUser{UserID: userID, PasswordHash: r.passwords[userID]}, nil
}

type memoryTokenRepo struct {
	tokens map[string]*model.RefreshToken
}

func (r *memoryTokenRepo) Store(ctx context.Context, token *model.RefreshToken) error {
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *memoryTokenRepo) FindValid(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	t, ok := r.tokens[tokenHash]
	if !ok || t.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return t, nil
}

func (r *memoryTokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	delete(r.tokens, tokenHash)
	return nil
}

func newAuthFixture() (AuthService, *memoryUserRepo, *memoryTokenRepo, *jwt.Manager) {
	users := &memoryUserRepo{users: map[int64]*model.User{}, passwords: map[int64]string{}}
	tokens := &memoryTokenRepo{tokens: map[string]*model.RefreshToken{}}
	manager := jwt.NewManager(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
	return NewAuthService(users, tokens, manager, discardLogger()), users, tokens, manager
}

func TestAuth_RegisterLoginRefreshLogout(t *testing.T) {
	svc, _, tokens, manager := newAuthFixture()
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Ada", "Lovelace", " Ada@Example.com ", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", user.Email)

	_, _, err = svc.LoginUser(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	access, refresh, err := svc.LoginUser(ctx, "ADA@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Len(t, tokens.tokens, 1)

	claims, err := manager.ValidateToken(access)
	require.NoError(t, err)
	require.Equal(t, "1", jwt.Subject(claims))

	newAccess, err := svc.RefreshToken(ctx, refresh)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)

	require.NoError(t, svc.LogoutUser(ctx, refresh))
	_, err = svc.RefreshToken(ctx, refresh)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	users.createErr = &pgconn.PgError{Code: "23505"}

	_, err := svc.RegisterUser(context.Background(), "Ada", "Lovelace", "ada@example.com", "s3cret-pass")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuth_RefreshRejectsGarbage(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuth_GetUserProfileNotFound(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.GetUserProfile(context.Background(), 5)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuth_LoginUnknownEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, _, err := svc.LoginUser(context.Background(), "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_LoginPassesThroughStorageErrors(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	dbErr := errors.New("connection refused")
	users.findErr = dbErr

	_, _, err := svc.LoginUser(context.Background(), "ada@example.com", "s3cret-pass")
	require.ErrorIs(t, err, dbErr)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_RefreshRejectsAccessToken(t *testing.T) {
	svc, _, tokens, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "Ada", "Lovelace", "ada@example.com", "s3cret-pass")
	require.NoError(t, err)
	access, _, err := svc.LoginUser(ctx, "ada@example.com", "s3cret-pass")
	require.NoError(t, err)

	// Even a stored hash does not make an access token usable for refresh.
	tokens.tokens[hashToken(access)] = &model.RefreshToken{UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}

	_, err = svc.RefreshToken(ctx, access)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
