package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"standup-service/internal/jwt"
	"standup-service/internal/model"
	"standup-service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrEmailTaken         = errors.New("email is already registered")
)

type AuthService interface {
	RegisterUser(ctx context.Context, firstName, lastName, email, password string) (*model.User, error)
	LoginUser(ctx context.Context, email, password string) (accessToken string, refreshToken string, err error)
	GetUserProfile(ctx context.Context, userID int64) (*model.User, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (newAccessToken string, err error)
	LogoutUser(ctx context.Context, refreshTokenString string) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	tokens    *jwt.Manager
	logger    *slog.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, tokens *jwt.Manager, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
		logger:    logger,
	}
}

func (s *authService) RegisterUser(ctx context.Context, firstName, lastName, email, password string) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     normalizeEmail(email),
	}

	newID, err := s.userRepo.Create(ctx, user, string(hashedPassword))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	user.ID = newID

	return user, nil
}

func (s *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", ErrInvalidCredentials
	}

	authUser, err := s.userRepo.FindAuthUser(ctx, user.ID)
	if err != nil {
		return "", "", err
	}
	if authUser == nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(authUser.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.tokens.GenerateTokens(user)
	if err != nil {
		return "", "", err
	}

	refreshTokenModel := &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Now().Add(s.tokens.RefreshExpiry()),
	}

	if err := s.tokenRepo.Store(ctx, refreshTokenModel); err != nil {
		return "", "", err
	}

	s.logger.InfoContext(ctx, "User logged in", "user_id", user.ID)

	return accessToken, refreshToken, nil
}

func (s *authService) GetUserProfile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshTokenString string) (string, error) {
	claims, err := s.tokens.ValidateToken(refreshTokenString)

	if err != nil || !jwt.HasType(claims, jwt.TypeRefresh) {
		return "", ErrTokenInvalid
	}

	stored, err := s.tokenRepo.FindValid(ctx, hashToken(refreshTokenString))
	if err != nil {
		return "", err
	}
	if stored == nil {
		return "", ErrTokenInvalid
	}

	userID, err := strconv.ParseInt(jwt.Subject(claims), 10, 64)
	if err != nil || userID != stored.UserID {
		return "", ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrTokenInvalid
	}

	return s.tokens.GenerateAccessToken(user)
}

func (s *authService) LogoutUser(ctx context.Context, refreshTokenString string) error {
	return s.tokenRepo.Revoke(ctx, hashToken(refreshTokenString))
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
