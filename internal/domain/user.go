package domain

import "time"

// UserRole is the helpdesk role of a console user.
type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleTechnician     UserRole = "technician"
	RoleDepartmentHead UserRole = "department-head"
	RoleUser           UserRole = "user"
)

// IsAdmin reports whether the role may open the Administration section.
func (r UserRole) IsAdmin() bool { return r == RoleAdmin }

// User is the profile returned by the helpdesk API at login.
type User struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role"`
	Plan  Plan     `json:"plan"`
}

// Session binds a browser cookie to an API token and the user loaded at
// login. The plan is fixed for the session's lifetime.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
