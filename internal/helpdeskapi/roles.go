package helpdeskapi

import (
	"context"
	"net/http"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

type wireRole struct {
	ident
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Permissions []domain.Permission `json:"permissions"`
	UserCount   int                 `json:"userCount"`
}

func (w wireRole) toDomain() domain.Role {
	return domain.Role{
		ID:          w.value(),
		Name:        w.Name,
		Description: w.Description,
		Permissions: w.Permissions,
		UserCount:   w.UserCount,
	}
}

type roleBody struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Permissions []domain.Permission `json:"permissions"`
}

// ListRoles returns the tenant's roles.
func (c *Client) ListRoles(ctx context.Context) ([]domain.Role, error) {
	var out []wireRole
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/api/admin/roles"), nil, &out); err != nil {
		return nil, err
	}
	list := make([]domain.Role, 0, len(out))
	for _, r := range out {
		list = append(list, r.toDomain())
	}
	return list, nil
}

// CreateRole adds a role.
func (c *Client) CreateRole(ctx context.Context, role domain.Role) (domain.Role, error) {
	var out wireRole
	in := roleBody{role.Name, role.Description, role.Permissions}
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("/api/admin/roles"), in, &out); err != nil {
		return role, err
	}
	return out.toDomain(), nil
}

// UpdateRole replaces a role.
func (c *Client) UpdateRole(ctx context.Context, id string, role domain.Role) (domain.Role, error) {
	var out wireRole
	in := roleBody{role.Name, role.Description, role.Permissions}
	if err := c.doJSON(ctx, http.MethodPut, c.endpoint("/api/admin/roles", id), in, &out); err != nil {
		return role, err
	}
	if out.value() == "" {
		role.ID = id
		return role, nil
	}
	return out.toDomain(), nil
}

// DeleteRole removes a role.
func (c *Client) DeleteRole(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, c.endpoint("/api/admin/roles", id), nil, nil)
}
