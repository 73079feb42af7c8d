package sso

import (
	"context"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

// Repository is the helpdesk admin API for SSO settings.
type Repository interface {
	// ListSSOConfigs returns the stored providers. Providers never saved
	// are absent.
	ListSSOConfigs(ctx context.Context) ([]domain.SSOConfig, error)

	// UpdateSSOConfig replaces one provider's settings.
	UpdateSSOConfig(ctx context.Context, cfg domain.SSOConfig) error
}
