package helpdeskapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

type wireUser struct {
	ident
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Plan  string `json:"plan"`
}

func (u wireUser) toDomain() domain.User {
	return domain.User{
		ID:    u.value(),
		Email: strings.ToLower(strings.TrimSpace(u.Email)),
		Name:  u.Name,
		Role:  domain.UserRole(u.Role),
		Plan:  domain.ParsePlan(u.Plan),
	}
}

// Login exchanges credentials for an API token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	in := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}
	var out struct {
		Token string   `json:"token"`
		User  wireUser `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("/api/auth/login"), in, &out); err != nil {
		return "", domain.User{}, err
	}
	if out.Token == "" {
		return "", domain.User{}, &APIError{Status: http.StatusBadGateway, Message: "login response carried no token"}
	}
	return out.Token, out.User.toDomain(), nil
}

// Me returns the profile of the token's owner.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var out wireUser
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/api/auth/me"), nil, &out); err != nil {
		return domain.User{}, err
	}
	return out.toDomain(), nil
}
