package service

import (
	"context"

	"standup-service/internal/repository"
)

type UserService interface {
	RegisterDeviceToken(ctx context.Context, userID int64, token string) error
}

type userService struct {
	deviceTokenRepo repository.DeviceTokenRepository
}

func NewUserService(deviceTokenRepo repository.DeviceTokenRepository) UserService {
	return &userService{deviceTokenRepo: deviceTokenRepo}
}

func (s *userService) RegisterDeviceToken(ctx context.Context, userID int64, token string) error {
	return s.deviceTokenRepo.Register(ctx, userID, token)
}
