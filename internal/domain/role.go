package domain

// Permission is a capability granted by a role.
type Permission string

const (
	PermAll           Permission = "all"
	PermTicketsRead   Permission = "tickets:read"
	PermTicketsCreate Permission = "tickets:create"
	PermTicketsWrite  Permission = "tickets:write"
	PermTicketsDelete Permission = "tickets:delete"
	PermCommentsWrite Permission = "comments:write"
	PermUsersRead     Permission = "users:read"
	PermUsersWrite    Permission = "users:write"
	PermAdminAccess   Permission = "admin:access"
)

// Permissions lists the individually grantable permissions.
var Permissions = []Permission{
	PermTicketsRead,
	PermTicketsCreate,
	PermTicketsWrite,
	PermTicketsDelete,
	PermCommentsWrite,
	PermUsersRead,
	PermUsersWrite,
	PermAdminAccess,
}

// Valid reports whether p is "all" or a known permission.
func (p Permission) Valid() bool {
	if p == PermAll {
		return true
	}
	for _, known := range Permissions {
		if p == known {
			return true
		}
	}
	return false
}

// Role is a permission bundle managed by the helpdesk admin API.
type Role struct {
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
	UserCount   int          `json:"userCount"`
}
