package domain

import "time"

// UserRole distinguishes administrators from ordinary voters.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleVoter UserRole = "VOTER"
)

// User is the domain model for registered voters and administrators.
// IsVoted is set permanently true on a user's first successful vote and
// is never reset by this service.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	IsVoted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
