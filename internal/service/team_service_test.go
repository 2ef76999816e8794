package service

import (
	"context"
	"testing"
	"time"

	"standup-service/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeTeamRepo struct {
	teams       map[int64]*model.Team
	memberships map[[2]int64]string
	nextID      int64
	addErr      error
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:       map[int64]*model.Team{},
		memberships: map[[2]int64]string{},
	}
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *model.Team) (*model.Team, error) {
	r.nextID++
	team.ID = r.nextID
	team.CreatedAt = time.Now()
	r.teams[team.ID] = team
	r.memberships[[2]int64{team.ID, team.CreatedByID}] = model.RoleOwner
	return team, nil
}

func (r *fakeTeamRepo) FindByID(ctx context.Context, teamID int64) (*model.Team, error) {
	return r.teams[teamID], nil
}

func (r *fakeTeamRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Team, error) {
	teams := []model.Team{}
	for key := range r.memberships {
		if key[1] == userID {
			teams = append(teams, *r.teams[key[0]])
		}
	}
	return teams, nil
}

func (r *fakeTeamRepo) ListTeamIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	for key := range r.memberships {
		if key[1] == userID {
			ids = append(ids, key[0])
		}
	}
	return ids, nil
}

func (r *fakeTeamRepo) GetMembership(ctx context.Context, teamID, userID int64) (*model.TeamMembership, error) {
	role, ok := r.memberships[[2]int64{teamID, userID}]
	if !ok {
		return nil, nil
	}
	return &model.TeamMembership{TeamID: teamID, UserID: userID, Role: role}, nil
}

func (r *fakeTeamRepo) AddMember(ctx context.Context, teamID, userID int64, role string) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.memberships[[2]int64{teamID, userID}] = role
	return nil
}

func (r *fakeTeamRepo) RemoveMember(ctx context.Context, teamID, userID int64) error {
	delete(r.memberships, [2]int64{teamID, userID})
	return nil
}

func (r *fakeTeamRepo) ListMembers(ctx context.Context, teamID int64) ([]model.TeamMember, error) {
	members := []model.TeamMember{}
	for key, role := range r.memberships {
		if key[0] == teamID {
			members = append(members, model.TeamMember{UserID: key[1], Role: role})
		}
	}
	return members, nil
}

func (r *fakeTeamRepo) ListMemberIDs(ctx context.Context, teamIDs []int64) ([]int64, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[int64]*model.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User, passwordHash string) (int64, error) {
	return 0, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindAuthUser(ctx context.Context, userID int64) (*model.AuthUser, error) {
	return nil, nil
}

func newTeamFixture(t *testing.T) (TeamService, *fakeTeamRepo, *fakePublisher, *model.Team) {
	teams := newFakeTeamRepo()
	users := &fakeUserRepo{users: map[int64]*model.User{
		1: {ID: 1}, 2: {ID: 2}, 3: {ID: 3},
	}}
	pub := newFakePublisher()
	svc := NewTeamService(teams, users, pub, discardLogger())

	team, err := svc.CreateTeam(context.Background(), 1, "Platform", "")
	require.NoError(t, err)
	return svc, teams, pub, team
}

func TestCreateTeam_CreatorIsOwner(t *testing.T) {
	_, teams, _, team := newTeamFixture(t)

	m, err := teams.GetMembership(context.Background(), team.ID, 1)
	require.NoError(t, err)
	require.Equal(t, model.RoleOwner, m.Role)
}

func TestAddMember(t *testing.T) {
	svc, teams, pub, team := newTeamFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.AddMember(ctx, 1, team.ID, 2, ""))
	require.Equal(t, model.RoleMember, teams.memberships[[2]int64{team.ID, 2}])

	select {
	case userID := <-pub.added:
		require.Equal(t, int64(2), userID)
	case <-time.After(time.Second):
		t.Fatal("team.member_added was not published")
	}

	require.ErrorIs(t, svc.AddMember(ctx, 1, team.ID, 2, model.RoleAdmin), ErrAlreadyMember)
	require.ErrorIs(t, svc.AddMember(ctx, 2, team.ID, 3, model.RoleMember), ErrForbidden)
	require.ErrorIs(t, svc.AddMember(ctx, 1, team.ID, 99, model.RoleMember), ErrUserNotFound)
	require.ErrorIs(t, svc.AddMember(ctx, 1, 42, 3, model.RoleMember), ErrTeamNotFound)
	require.ErrorIs(t, svc.AddMember(ctx, 1, team.ID, 3, "superuser"), ErrInvalidRole)
}

func TestAddMember_UniqueViolationIsAlreadyMember(t *testing.T) {
	svc, teams, _, team := newTeamFixture(t)
	teams.addErr = &pgconn.PgError{Code: "23505"}

	err := svc.AddMember(context.Background(), 1, team.ID, 3, model.RoleMember)
	require.ErrorIs(t, err, ErrAlreadyMember)
}

func TestRemoveMember(t *testing.T) {
	svc, teams, _, team := newTeamFixture(t)
	ctx := context.Background()
	teams.memberships[[2]int64{team.ID, 2}] = model.RoleMember
	teams.memberships[[2]int64{team.ID, 3}] = model.RoleMember

	require.ErrorIs(t, svc.RemoveMember(ctx, 2, team.ID, 3), ErrForbidden)
	require.NoError(t, svc.RemoveMember(ctx, 3, team.ID, 3))
	require.NoError(t, svc.RemoveMember(ctx, 1, team.ID, 2))
	require.ErrorIs(t, svc.RemoveMember(ctx, 1, team.ID, 2), ErrNotTeamMember)
}

func TestRemoveMember_KeepsAnOwner(t *testing.T) {
	svc, teams, _, team := newTeamFixture(t)
	ctx := context.Background()
	teams.memberships[[2]int64{team.ID, 2}] = model.RoleAdmin

	require.ErrorIs(t, svc.RemoveMember(ctx, 1, team.ID, 1), ErrLastOwner)
	require.ErrorIs(t, svc.RemoveMember(ctx, 2, team.ID, 1), ErrForbidden)
	require.Equal(t, model.RoleOwner, teams.memberships[[2]int64{team.ID, 1}])

	teams.memberships[[2]int64{team.ID, 3}] = model.RoleOwner
	require.ErrorIs(t, svc.RemoveMember(ctx, 2, team.ID, 3), ErrForbidden)
	require.NoError(t, svc.RemoveMember(ctx, 3, team.ID, 1))
	require.ErrorIs(t, svc.RemoveMember(ctx, 3, team.ID, 3), ErrLastOwner)
}

func TestListMembers_MembersOnly(t *testing.T) {
	svc, _, _, team := newTeamFixture(t)
	ctx := context.Background()

	members, err := svc.ListMembers(ctx, 1, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)

	_, err = svc.ListMembers(ctx, 2, team.ID)
	require.ErrorIs(t, err, ErrNotTeamMember)
}
