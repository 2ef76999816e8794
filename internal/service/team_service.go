package service

import (
	"context"
	"errors"
	"log/slog"

	"standup-service/internal/events"
	"standup-service/internal/model"
	"standup-service/internal/repository"
)

var (
	ErrTeamNotFound  = errors.New("team not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrAlreadyMember = errors.New("user is already a member of this team")
	ErrInvalidRole   = errors.New("invalid membership role")
	ErrForbidden     = errors.New("not allowed to manage this team")
	ErrLastOwner     = errors.New("a team must keep at least one owner")
)

type TeamService interface {
	CreateTeam(ctx context.Context, creatorID int64, name, description string) (*model.Team, error)
	AddMember(ctx context.Context, actorID, teamID, userID int64, role string) error
	RemoveMember(ctx context.Context, actorID, teamID, userID int64) error
	ListMyTeams(ctx context.Context, userID int64) ([]model.Team, error)
	ListMembers(ctx context.Context, actorID, teamID int64) ([]model.TeamMember, error)
}

type teamService struct {
	teamRepo  repository.TeamRepository
	userRepo  repository.UserRepository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, pub events.EventPublisher, logger *slog.Logger) TeamService {
	return &teamService{
		teamRepo:  teamRepo,
		userRepo:  userRepo,
		publisher: pub,
		logger:    logger,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, creatorID int64, name, description string) (*model.Team, error) {
	team := &model.Team{
		Name:        name,
		Description: description,
		CreatedByID: creatorID,
	}

	created, err := s.teamRepo.Create(ctx, team)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Team created", "team_id", created.ID, "owner_id", creatorID)

	return created, nil
}

func (s *teamService) AddMember(ctx context.Context, actorID, teamID, userID int64, role string) error {
	if role == "" {
		role = model.RoleMember
	}
	if !model.ValidRole(role) {
		return ErrInvalidRole
	}

	if _, err := s.requireManager(ctx, actorID, teamID); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	existing, err := s.teamRepo.GetMembership(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyMember
	}

	if err := s.teamRepo.AddMember(ctx, teamID, userID, role); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyMember
		}
		return err
	}

	go s.publisher.PublishMemberAdded(teamID, userID, role)

	return nil
}

func (s *teamService) RemoveMember(ctx context.Context, actorID, teamID, userID int64) error {
	var actor *model.TeamMembership
	if actorID != userID {
		var err error
		if actor, err = s.requireManager(ctx, actorID, teamID); err != nil {
			return err
		}
	}

	membership, err := s.teamRepo.GetMembership(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if membership == nil {
		return ErrNotTeamMember
	}

	if membership.Role == model.RoleOwner {
		// Only owners remove owners, and the last one stays.
		if actor != nil && actor.Role != model.RoleOwner {
			return ErrForbidden
		}
		owners, err := s.countOwners(ctx, teamID)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return ErrLastOwner
		}
	}

	return s.teamRepo.RemoveMember(ctx, teamID, userID)
}

func (s *teamService) ListMyTeams(ctx context.Context, userID int64) ([]model.Team, error) {
	return s.teamRepo.ListByUserID(ctx, userID)
}

func (s *teamService) ListMembers(ctx context.Context, actorID, teamID int64) ([]model.TeamMember, error) {
	if _, err := s.findTeam(ctx, teamID); err != nil {
		return nil, err
	}

	membership, err := s.teamRepo.GetMembership(ctx, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrNotTeamMember
	}

	return s.teamRepo.ListMembers(ctx, teamID)
}

// requireManager checks that the team exists and the actor is its owner or an
// admin, and returns the actor's membership.
func (s *teamService) requireManager(ctx context.Context, actorID, teamID int64) (*model.TeamMembership, error) {
	if _, err := s.findTeam(ctx, teamID); err != nil {
		return nil, err
	}

	membership, err := s.teamRepo.GetMembership(ctx, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if membership == nil || !model.CanManageMembers(membership.Role) {
		return nil, ErrForbidden
	}

	return membership, nil
}

func (s *teamService) countOwners(ctx context.Context, teamID int64) (int, error) {
	members, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return 0, err
	}
	owners := 0
	for _, m := range members {
		if m.Role == model.RoleOwner {
			owners++
		}
	}
	return owners, nil
}

func (s *teamService) findTeam(ctx context.Context, teamID int64) (*model.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	return team, nil
}
