package model

import "time"

type Standup struct {
	ID          int64     `db:"id" json:"id"`
	Yesterday   string    `db:"yesterday" json:"yesterday"`
	Today       string    `db:"today" json:"today"`
	Blockers    string    `db:"blockers" json:"blockers"`
	CreatedByID int64     `db:"created_by_id" json:"created_by_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	CreatedAtTZ string    `db:"created_at_tz" json:"created_at_tz"`
}

// StandupTeam links one standup to one team. Standup is populated when the
// association is loaded together with its standup.
type StandupTeam struct {
	ID        int64   `db:"id" json:"id"`
	TeamID    int64   `db:"team_id" json:"team_id"`
	StandupID int64   `db:"standup_id" json:"standup_id"`
	Standup   Standup `db:"standup" json:"standup"`
}
