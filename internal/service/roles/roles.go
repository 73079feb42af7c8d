package roles

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/service/access"
)

// Repository is the admin API surface for roles.
type Repository interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
	CreateRole(ctx context.Context, role domain.Role) (domain.Role, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (domain.Role, error)
	DeleteRole(ctx context.Context, id string) error
}

// builtIn names the roles every tenant starts with.
var builtIn = map[string]bool{
	"admin":           true,
	"technician":      true,
	"department-head": true,
	"user":            true,
}

// TogglePermission returns the permission set after the user clicks p.
// Selecting "all" makes the set exactly [all]. Selecting anything else
// drops "all" and flips p.
func TogglePermission(perms []domain.Permission, p domain.Permission) []domain.Permission {
	if p == domain.PermAll {
		return []domain.Permission{domain.PermAll}
	}
	out := make([]domain.Permission, 0, len(perms)+1)
	had := false
	for _, cur := range perms {
		switch cur {
		case domain.PermAll:
		case p:
			had = true
		default:
			out = append(out, cur)
		}
	}
	if !had {
		out = append(out, p)
	}
	return out
}

// Clean trims the role, drops duplicate permissions and collapses any set
// holding "all" to [all].
func Clean(role domain.Role) domain.Role {
	role.Name = strings.TrimSpace(role.Name)
	role.Description = strings.TrimSpace(role.Description)
	seen := make(map[domain.Permission]bool, len(role.Permissions))
	perms := make([]domain.Permission, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		if seen[p] {
			continue
		}
		seen[p] = true
		perms = append(perms, p)
	}
	if slices.Contains(perms, domain.PermAll) {
		perms = []domain.Permission{domain.PermAll}
	}
	role.Permissions = perms
	return role
}

// Validate checks a cleaned role.
func Validate(role domain.Role) error {
	if role.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(role.Permissions) == 0 {
		return fmt.Errorf("%w: at least one permission is required", ErrValidation)
	}
	for _, p := range role.Permissions {
		if !p.Valid() {
			return fmt.Errorf("%w: unknown permission %q", ErrValidation, p)
		}
	}
	return nil
}

// Service manages roles through the admin API.
type Service struct {
	repo Repository
}

// NewService creates a roles service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the tenant's roles.
func (s *Service) List(ctx context.Context) ([]domain.Role, error) {
	return s.repo.ListRoles(ctx)
}

// Create adds a custom role. Custom roles are a pro feature.
func (s *Service) Create(ctx context.Context, r *access.Resolver, role domain.Role) (domain.Role, error) {
	if err := r.Require(domain.FeatureCustomRoles); err != nil {
		return role, err
	}
	role = Clean(role)
	if err := Validate(role); err != nil {
		return role, err
	}
	if builtIn[strings.ToLower(role.Name)] {
		return role, fmt.Errorf("%w: %q is a built-in role name", ErrValidation, role.Name)
	}
	role.ID = ""
	role.UserCount = 0
	return s.repo.CreateRole(ctx, role)
}

// Update replaces an existing role's name, description and permissions.
func (s *Service) Update(ctx context.Context, id string, role domain.Role) (domain.Role, error) {
	if id == "" {
		return role, fmt.Errorf("%w: id is required", ErrValidation)
	}
	role = Clean(role)
	if err := Validate(role); err != nil {
		return role, err
	}
	role.ID = id
	return s.repo.UpdateRole(ctx, id, role)
}

// Delete removes a custom role.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return fmt.Errorf("list roles: %w", err)
	}
	for _, r := range roles {
		if r.ID == id && builtIn[strings.ToLower(r.Name)] {
			return fmt.Errorf("%w: %s", ErrSystemRole, r.Name)
		}
	}
	return s.repo.DeleteRole(ctx, id)
}
