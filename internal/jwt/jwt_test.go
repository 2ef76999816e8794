package jwt

import (
	"testing"
	"time"

	"standup-service/internal/config"
	"standup-service/internal/model"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testManager() *Manager {
	return NewManager(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 30 * 24 * time.Hour,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	m := testManager()
	access, refresh, err := m.GenerateTokens(&model.User{ID: 7, Email: "a@b.c"})
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	require.Equal(t, "7", Subject(claims))
	require.True(t, HasType(claims, TypeAccess))
	require.False(t, HasType(claims, TypeRefresh))

	claims, err = m.ValidateToken(refresh)
	require.NoError(t, err)
	require.Equal(t, "7", Subject(claims))
	require.True(t, HasType(claims, TypeRefresh))
	require.False(t, HasType(claims, TypeAccess))
}

func TestRefreshTokensAreUnique(t *testing.T) {
	m := testManager()
	_, r1, err := m.GenerateTokens(&model.User{ID: 7})
	require.NoError(t, err)
	_, r2, err := m.GenerateTokens(&model.User{ID: 7})
	require.NoError(t, err)
	require.NotEqual(t, r1, r2)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	access, err := testManager().GenerateAccessToken(&model.User{ID: 1})
	require.NoError(t, err)

	other := NewManager(config.JWTConfig{Secret: "other", AccessExpiry: time.Minute})
	_, err = other.ValidateToken(access)
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	m := NewManager(config.JWTConfig{Secret: "s", AccessExpiry: -time.Minute})
	access, err := m.GenerateAccessToken(&model.User{ID: 1})
	require.NoError(t, err)

	_, err = m.ValidateToken(access)
	require.ErrorIs(t, err, jwtv5.ErrTokenExpired)
}

func TestSubject_Missing(t *testing.T) {
	require.Equal(t, "", Subject(jwtv5.MapClaims{}))
	require.Equal(t, "", Subject(jwtv5.MapClaims{"sub": 7.0}))
}
