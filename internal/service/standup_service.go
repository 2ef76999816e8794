package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"standup-service/internal/events"
	"standup-service/internal/filter"
	"standup-service/internal/model"
	"standup-service/internal/repository"
	"standup-service/internal/result"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReasonUserIDNotFound is the failure reason when the caller carries no usable user id.
const ReasonUserIDNotFound = "user id not found"

var (
	ErrNoTeams         = errors.New("standup must be posted to at least one team")
	ErrNotTeamMember   = errors.New("user is not a member of the team")
	ErrStandupNotFound = errors.New("standup not found")
)

var standupsVisibleReturned = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "standups_visible_returned",
		Help:    "Number of standups returned by a single team-scoped retrieval",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	},
)

type StandupInput struct {
	Yesterday string
	Today     string
	Blockers  string
	TimeZone  string
}

type StandupService interface {
	// Get returns the distinct standups linked to any team the caller belongs
	// to whose association satisfies f. caller is the raw user id from the
	// identity token.
	Get(ctx context.Context, caller string, f filter.StandupFilter) (result.Result[[]model.Standup], error)
	Create(ctx context.Context, authorID int64, input StandupInput, teamIDs []int64) (*model.Standup, error)
	Delete(ctx context.Context, actorID, standupID int64) error
}

type standupService struct {
	memberships repository.MembershipReader
	standups    repository.StandupRepository
	publisher   events.EventPublisher
	logger      *slog.Logger
}

func NewStandupService(memberships repository.MembershipReader, standups repository.StandupRepository, pub events.EventPublisher, logger *slog.Logger) StandupService {
	return &standupService{
		memberships: memberships,
		standups:    standups,
		publisher:   pub,
		logger:      logger,
	}
}

func (s *standupService) Get(ctx context.Context, caller string, f filter.StandupFilter) (result.Result[[]model.Standup], error) {
	userID, err := strconv.ParseInt(strings.TrimSpace(caller), 10, 64)
	if err != nil {
		s.logger.InfoContext(ctx, "User id not found", "caller", caller)
		return result.Err[[]model.Standup](ReasonUserIDNotFound), nil
	}

	teamIDs, err := s.memberships.ListTeamIDsByUserID(ctx, userID)
	if err != nil {
		return result.Result[[]model.Standup]{}, fmt.Errorf("list teams of user %d: %w", userID, err)
	}

	standups := []model.Standup{}
	if len(teamIDs) == 0 {
		standupsVisibleReturned.Observe(0)
		return result.Ok(standups), nil
	}

	associations, err := s.standups.ListByTeamIDs(ctx, teamIDs)
	if err != nil {
		return result.Result[[]model.Standup]{}, fmt.Errorf("list standups of teams %v: %w", teamIDs, err)
	}

	seen := make(map[int64]struct{}, len(associations))
	for _, st := range associations {
		if !f.IsSatisfiedBy(st) {
			continue
		}
		if _, ok := seen[st.Standup.ID]; ok {
			continue
		}
		seen[st.Standup.ID] = struct{}{}
		standups = append(standups, st.Standup)
	}

	standupsVisibleReturned.Observe(float64(len(standups)))

	return result.Ok(standups), nil
}

func (s *standupService) Create(ctx context.Context, authorID int64, input StandupInput, teamIDs []int64) (*model.Standup, error) {
	targets := uniqueIDs(teamIDs)
	if len(targets) == 0 {
		return nil, ErrNoTeams
	}

	memberOf, err := s.memberships.ListTeamIDsByUserID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	member := make(map[int64]bool, len(memberOf))
	for _, id := range memberOf {
		member[id] = true
	}
	for _, id := range targets {
		if !member[id] {
			return nil, ErrNotTeamMember
		}
	}

	standup := &model.Standup{
		Yesterday:   input.Yesterday,
		Today:       input.Today,
		Blockers:    input.Blockers,
		CreatedByID: authorID,
		CreatedAtTZ: input.TimeZone,
	}

	created, err := s.standups.Create(ctx, standup, targets)
	if err != nil {
		return nil, err
	}

	go s.publisher.PublishStandupPosted(created, targets)

	return created, nil
}

func (s *standupService) Delete(ctx context.Context, actorID, standupID int64) error {
	standup, err := s.standups.FindByID(ctx, standupID)
	if err != nil {
		return err
	}

	// Someone else's standup is reported as missing so its id is not disclosed.
	if standup == nil || standup.CreatedByID != actorID {
		return ErrStandupNotFound
	}

	return s.standups.Delete(ctx, standupID)
}

// uniqueIDs drops duplicates and keeps first-seen order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
