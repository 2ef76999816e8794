package model

import "time"

const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type Team struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedByID int64     `db:"created_by_id" json:"created_by_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type TeamMembership struct {
	ID     int64  `db:"id" json:"id"`
	TeamID int64  `db:"team_id" json:"team_id"`
	UserID int64  `db:"user_id" json:"user_id"`
	Role   string `db:"role" json:"role"`
}

// TeamMember is a membership joined with the member's user row.
type TeamMember struct {
	UserID    int64  `db:"user_id" json:"user_id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
	Role      string `db:"role" json:"role"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// CanManageMembers reports whether a member with this role may add or remove others.
func CanManageMembers(role string) bool {
	return role == RoleOwner || role == RoleAdmin
}
