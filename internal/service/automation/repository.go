package automation

import (
	"context"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

// Repository is the helpdesk API surface for email automations.
type Repository interface {
	ListAutomations(ctx context.Context) ([]domain.AutomationConfig, error)
	CreateAutomation(ctx context.Context, cfg domain.AutomationConfig) (domain.AutomationConfig, error)
	UpdateAutomation(ctx context.Context, id string, cfg domain.AutomationConfig) (domain.AutomationConfig, error)

	// SetAutomationEnabled sends a partial update carrying only isEnabled.
	SetAutomationEnabled(ctx context.Context, id string, enabled bool) error

	DeleteAutomation(ctx context.Context, id string) error

	// RunAutomation asks the server to execute the automation now. Success
	// means the run was triggered, not that it finished.
	RunAutomation(ctx context.Context, id string) error

	ListEmailTemplates(ctx context.Context) ([]domain.EmailTemplate, error)
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
}
