// Package filter decides which team-standup associations belong in a view.
//
// A StandupFilter is injected into the standup retrieval path, so new views
// (date ranges, authors, teams) are added here without touching retrieval.
package filter

import (
	"time"

	"standup-service/internal/model"
)

// StandupFilter must be pure and total over well-formed associations.
type StandupFilter interface {
	IsSatisfiedBy(st model.StandupTeam) bool
}

// Func adapts a plain predicate to StandupFilter.
type Func func(st model.StandupTeam) bool

func (f Func) IsSatisfiedBy(st model.StandupTeam) bool {
	return f(st)
}

type Everything struct{}

func (Everything) IsSatisfiedBy(model.StandupTeam) bool { return true }

type Nothing struct{}

func (Nothing) IsSatisfiedBy(model.StandupTeam) bool { return false }

type AuthoredBy struct {
	UserID int64
}

func (f AuthoredBy) IsSatisfiedBy(st model.StandupTeam) bool {
	return st.Standup.CreatedByID == f.UserID
}

type InTeams struct {
	TeamIDs []int64
}

func (f InTeams) IsSatisfiedBy(st model.StandupTeam) bool {
	for _, id := range f.TeamIDs {
		if st.TeamID == id {
			return true
		}
	}
	return false
}

// CreatedBetween matches standups created in [From, To). A zero bound is open.
type CreatedBetween struct {
	From time.Time
	To   time.Time
}

func (f CreatedBetween) IsSatisfiedBy(st model.StandupTeam) bool {
	created := st.Standup.CreatedAt
	if !f.From.IsZero() && created.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !created.Before(f.To) {
		return false
	}
	return true
}

// LastDays matches standups created during the n days up to now.
func LastDays(n int, now time.Time) CreatedBetween {
	return CreatedBetween{From: now.AddDate(0, 0, -n)}
}

type Not struct {
	Filter StandupFilter
}

func (f Not) IsSatisfiedBy(st model.StandupTeam) bool {
	return !f.Filter.IsSatisfiedBy(st)
}

type allOf []StandupFilter

func (fs allOf) IsSatisfiedBy(st model.StandupTeam) bool {
	for _, f := range fs {
		if !f.IsSatisfiedBy(st) {
			return false
		}
	}
	return true
}

type anyOf []StandupFilter

func (fs anyOf) IsSatisfiedBy(st model.StandupTeam) bool {
	for _, f := range fs {
		if f.IsSatisfiedBy(st) {
			return true
		}
	}
	return false
}

// All is satisfied when every filter is; an empty All matches everything.
func All(filters ...StandupFilter) StandupFilter {
	if len(filters) == 1 {
		return filters[0]
	}
	return allOf(filters)
}

// Any is satisfied when at least one filter is; an empty Any matches nothing.
func Any(filters ...StandupFilter) StandupFilter {
	if len(filters) == 1 {
		return filters[0]
	}
	return anyOf(filters)
}
