package service

import (
	"context"
	"errors"

	"standup-service/internal/model"
	"standup-service/internal/repository"
)

var ErrOrganizationNotFound = errors.New("organization not found")

type OrganizationService interface {
	CreateOrganization(ctx context.Context, creatorID int64, name string) (*model.Organization, error)
	GetOrganization(ctx context.Context, id int64) (*model.Organization, error)
	ListMyOrganizations(ctx context.Context, creatorID int64) ([]model.Organization, error)
}

type organizationService struct {
	orgRepo repository.OrganizationRepository
}

func NewOrganizationService(orgRepo repository.OrganizationRepository) OrganizationService {
	return &organizationService{orgRepo: orgRepo}
}

func (s *organizationService) CreateOrganization(ctx context.Context, creatorID int64, name string) (*model.Organization, error) {
	return s.orgRepo.Create(ctx, &model.Organization{Name: name, CreatedByID: creatorID})
}

func (s *organizationService) GetOrganization(ctx context.Context, id int64) (*model.Organization, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	return org, nil
}

func (s *organizationService) ListMyOrganizations(ctx context.Context, creatorID int64) ([]model.Organization, error) {
	return s.orgRepo.ListByCreator(ctx, creatorID)
}
