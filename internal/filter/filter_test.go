package filter_test

import (
	"testing"
	"time"

	"standup-service/internal/filter"
	"standup-service/internal/model"

	"github.com/stretchr/testify/require"
)

func association(teamID, authorID int64, createdAt time.Time) model.StandupTeam {
	return model.StandupTeam{
		TeamID: teamID,
		Standup: model.Standup{
			CreatedByID: authorID,
			CreatedAt:   createdAt,
		},
	}
}

func TestEverythingAndNothing(t *testing.T) {
	st := association(1, 7, time.Now())
	require.True(t, filter.Everything{}.IsSatisfiedBy(st))
	require.False(t, filter.Nothing{}.IsSatisfiedBy(st))
	require.True(t, filter.Everything{}.IsSatisfiedBy(model.StandupTeam{}))
}

func TestAuthoredBy(t *testing.T) {
	f := filter.AuthoredBy{UserID: 7}
	require.True(t, f.IsSatisfiedBy(association(1, 7, time.Now())))
	require.False(t, f.IsSatisfiedBy(association(1, 8, time.Now())))
}

func TestInTeams(t *testing.T) {
	f := filter.InTeams{TeamIDs: []int64{2, 3}}
	require.True(t, f.IsSatisfiedBy(association(3, 1, time.Now())))
	require.False(t, f.IsSatisfiedBy(association(1, 1, time.Now())))
	require.False(t, filter.InTeams{}.IsSatisfiedBy(association(1, 1, time.Now())))
}

func TestCreatedBetween(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	f := filter.CreatedBetween{From: from, To: to}

	require.True(t, f.IsSatisfiedBy(association(1, 1, from)))
	require.True(t, f.IsSatisfiedBy(association(1, 1, to.Add(-time.Second))))
	require.False(t, f.IsSatisfiedBy(association(1, 1, to)))
	require.False(t, f.IsSatisfiedBy(association(1, 1, from.Add(-time.Second))))

	open := filter.CreatedBetween{To: to}
	require.True(t, open.IsSatisfiedBy(association(1, 1, time.Time{})))
}

func TestLastDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	f := filter.LastDays(7, now)
	require.True(t, f.IsSatisfiedBy(association(1, 1, now.AddDate(0, 0, -6))))
	require.False(t, f.IsSatisfiedBy(association(1, 1, now.AddDate(0, 0, -8))))
}

func TestCombinators(t *testing.T) {
	st := association(2, 7, time.Now())

	require.True(t, filter.All().IsSatisfiedBy(st))
	require.False(t, filter.Any().IsSatisfiedBy(st))

	require.True(t, filter.All(filter.AuthoredBy{UserID: 7}, filter.InTeams{TeamIDs: []int64{2}}).IsSatisfiedBy(st))
	require.False(t, filter.All(filter.AuthoredBy{UserID: 7}, filter.InTeams{TeamIDs: []int64{5}}).IsSatisfiedBy(st))
	require.True(t, filter.Any(filter.AuthoredBy{UserID: 8}, filter.InTeams{TeamIDs: []int64{2}}).IsSatisfiedBy(st))
	require.False(t, filter.Not{Filter: filter.AuthoredBy{UserID: 7}}.IsSatisfiedBy(st))
}

func TestFunc(t *testing.T) {
	f := filter.Func(func(st model.StandupTeam) bool { return st.Standup.Blockers == "" })
	require.True(t, f.IsSatisfiedBy(model.StandupTeam{}))
	require.False(t, f.IsSatisfiedBy(model.StandupTeam{Standup: model.Standup{Blockers: "ci"}}))
}
