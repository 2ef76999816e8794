package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"standup-service/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore keeps memberships and standups in memory and counts reads.
type fakeStore struct {
	mu           sync.Mutex
	memberships  map[int64][]int64
	associations []model.StandupTeam
	standups     map[int64]*model.Standup
	nextID       int64

	teamErr    error
	standupErr error

	teamCalls    int
	standupCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		memberships: map[int64][]int64{},
		standups:    map[int64]*model.Standup{},
	}
}

func (f *fakeStore) join(userID int64, teamIDs ...int64) {
	f.memberships[userID] = append(f.memberships[userID], teamIDs...)
}

// link stores s and associates it with every given team.
func (f *fakeStore) link(s model.Standup, teamIDs ...int64) {
	f.standups[s.ID] = &s
	for _, teamID := range teamIDs {
		f.nextID++
		f.associations = append(f.associations, model.StandupTeam{
			ID:        f.nextID,
			TeamID:    teamID,
			StandupID: s.ID,
			Standup:   s,
		})
	}
}

func (f *fakeStore) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.teamCalls + f.standupCalls
}

func (f *fakeStore) ListTeamIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teamCalls++
	if f.teamErr != nil {
		return nil, f.teamErr
	}
	return append([]int64{}, f.memberships[userID]...), nil
}

func (f *fakeStore) ListByTeamIDs(ctx context.Context, teamIDs []int64) ([]model.StandupTeam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.standupCalls++
	if f.standupErr != nil {
		return nil, f.standupErr
	}

	wanted := map[int64]bool{}
	for _, id := range teamIDs {
		wanted[id] = true
	}

	out := []model.StandupTeam{}
	for _, st := range f.associations {
		if wanted[st.TeamID] {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, standup *model.Standup, teamIDs []int64) (*model.Standup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	standup.ID = 1000 + f.nextID
	standup.CreatedAt = time.Now()
	f.link(*standup, teamIDs...)
	return standup, nil
}

func (f *fakeStore) FindByID(ctx context.Context, standupID int64) (*model.Standup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.standups[standupID]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (f *fakeStore) Delete(ctx context.Context, standupID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.standups, standupID)
	kept := f.associations[:0]
	for _, st := range f.associations {
		if st.StandupID != standupID {
			kept = append(kept, st)
		}
	}
	f.associations = kept
	return nil
}

type fakePublisher struct {
	posted chan []int64
	added  chan int64
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{
		posted: make(chan []int64, 10),
		added:  make(chan int64, 10),
	}
}

func (p *fakePublisher) PublishStandupPosted(standup *model.Standup, teamIDs []int64) error {
	p.posted <- teamIDs
	return nil
}

func (p *fakePublisher) PublishMemberAdded(teamID, userID int64, role string) error {
	p.added <- userID
	return nil
}
