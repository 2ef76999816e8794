package jwt

import (
	"strconv"
	"time"

	"standup-service/internal/config"
	"standup-service/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Manager issues and validates HS256 tokens. The "sub" claim carries the
// decimal user id and "typ" tells access tokens from refresh tokens.
type Manager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewManager(cfg config.JWTConfig) *Manager {
	return &Manager{
		secret:        []byte(cfg.Secret),
		accessExpiry:  cfg.AccessExpiry,
		refreshExpiry: cfg.RefreshExpiry,
	}
}

func (m *Manager) RefreshExpiry() time.Duration {
	return m.refreshExpiry
}

func (m *Manager) GenerateTokens(user *model.User) (accessToken string, refreshToken string, err error) {
	accessToken, err = m.GenerateAccessToken(user)
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"sub": strconv.FormatInt(user.ID, 10),
		"typ": TypeRefresh,
		"jti": uuid.NewString(),
		"exp": time.Now().Add(m.refreshExpiry).Unix(),
	}
	refreshToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(m.secret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (m *Manager) GenerateAccessToken(user *model.User) (string, error) {
	accessClaims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"typ":   TypeAccess,
		"email": user.Email,
		"name":  user.FirstName + " " + user.LastName,
		"exp":   time.Now().Add(m.accessExpiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(m.secret)
}

func (m *Manager) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}

// Subject returns the "sub" claim, or "" when it is absent or not a string.
func Subject(claims jwt.MapClaims) string {
	sub, _ := claims["sub"].(string)
	return sub
}

// HasType reports whether the "typ" claim equals typ.
func HasType(claims jwt.MapClaims, typ string) bool {
	got, _ := claims["typ"].(string)
	return got == typ
}
