package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"standup-service/internal/filter"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// ParseStandupFilter builds a filter from the days, author_id, team_id, from
// and to query parameters. Supplied parameters are combined with AND; no
// parameters selects everything.
func ParseStandupFilter(c *fiber.Ctx, now time.Time) (filter.StandupFilter, error) {
	var filters []filter.StandupFilter

	if v := c.Query("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return nil, fmt.Errorf("days must be a positive integer")
		}
		filters = append(filters, filter.LastDays(days, now))
	}

	if v := c.Query("author_id"); v != "" {
		authorID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("author_id must be an integer")
		}
		filters = append(filters, filter.AuthoredBy{UserID: authorID})
	}

	if v := c.Query("team_id"); v != "" {
		var teamIDs []int64
		for _, part := range strings.Split(v, ",") {
			teamID, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("team_id must be a comma separated list of integers")
			}
			teamIDs = append(teamIDs, teamID)
		}
		filters = append(filters, filter.InTeams{TeamIDs: teamIDs})
	}

	from, err := parseTime(c.Query("from"))
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := parseTime(c.Query("to"))
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	if !from.IsZero() || !to.IsZero() {
		if !from.IsZero() && !to.IsZero() && !from.Before(to) {
			return nil, fmt.Errorf("from must be before to")
		}
		filters = append(filters, filter.CreatedBetween{From: from, To: to})
	}

	if len(filters) == 0 {
		return filter.Everything{}, nil
	}

	return filter.All(filters...), nil
}

// parseTime accepts RFC 3339 timestamps or plain dates (midnight UTC).
func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC 3339 timestamp or YYYY-MM-DD date")
	}
	return t, nil
}
