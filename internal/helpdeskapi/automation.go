package helpdeskapi

import (
	"context"
	"net/http"
	"time"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

type wireAutomation struct {
	ident
	Name          string                `json:"name"`
	Type          domain.AutomationType `json:"type"`
	Organization  ref                   `json:"organization"`
	IsEnabled     bool                  `json:"isEnabled"`
	Schedule      domain.Schedule       `json:"schedule"`
	Recipients    domain.Recipients     `json:"recipients"`
	ReportFormat  []domain.ReportFormat `json:"reportFormat"`
	EmailTemplate ref                   `json:"emailTemplate"`
	LastSent      *time.Time            `json:"lastSent"`
	Version       version               `json:"__v"`
}

func (w wireAutomation) toDomain() domain.AutomationConfig {
	return domain.AutomationConfig{
		ID:            w.value(),
		Name:          w.Name,
		Type:          w.Type,
		Organization:  string(w.Organization),
		IsEnabled:     w.IsEnabled,
		Schedule:      w.Schedule,
		Recipients:    w.Recipients,
		ReportFormat:  w.ReportFormat,
		EmailTemplate: string(w.EmailTemplate),
		LastSent:      w.LastSent,
		Version:       string(w.Version),
	}
}

// automationBody is what create and update send. The whole document goes
// every time: empty references are sent as null so a cleared organization
// or template is cleared upstream too. The revision read from "__v" is
// echoed back when known.
type automationBody struct {
	Name          string                `json:"name"`
	Type          domain.AutomationType `json:"type"`
	Organization  *string               `json:"organization"`
	IsEnabled     bool                  `json:"isEnabled"`
	Schedule      domain.Schedule       `json:"schedule"`
	Recipients    domain.Recipients     `json:"recipients"`
	ReportFormat  []domain.ReportFormat `json:"reportFormat"`
	EmailTemplate *string               `json:"emailTemplate"`
	Version       version               `json:"__v,omitempty"`
}

func newAutomationBody(cfg domain.AutomationConfig) automationBody {
	return automationBody{
		Name:          cfg.Name,
		Type:          cfg.Type,
		Organization:  nullable(cfg.Organization),
		IsEnabled:     cfg.IsEnabled,
		Schedule:      cfg.Schedule,
		Recipients:    cfg.Recipients,
		ReportFormat:  cfg.ReportFormat,
		EmailTemplate: nullable(cfg.EmailTemplate),
		Version:       version(cfg.Version),
	}
}

// ListAutomations returns the tenant's automations.
func (c *Client) ListAutomations(ctx context.Context) ([]domain.AutomationConfig, error) {
	var out []wireAutomation
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/api/email-automation"), nil, &out); err != nil {
		return nil, err
	}
	list := make([]domain.AutomationConfig, 0, len(out))
	for _, w := range out {
		list = append(list, w.toDomain())
	}
	return list, nil
}

// CreateAutomation stores a new automation and returns it as saved.
func (c *Client) CreateAutomation(ctx context.Context, cfg domain.AutomationConfig) (domain.AutomationConfig, error) {
	var out wireAutomation
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("/api/email-automation"), newAutomationBody(cfg), &out); err != nil {
		return cfg, err
	}
	return out.toDomain(), nil
}

// UpdateAutomation replaces an automation and returns it as saved.
func (c *Client) UpdateAutomation(ctx context.Context, id string, cfg domain.AutomationConfig) (domain.AutomationConfig, error) {
	var out wireAutomation
	if err := c.doJSON(ctx, http.MethodPut, c.endpoint("/api/email-automation", id), newAutomationBody(cfg), &out); err != nil {
		return cfg, err
	}
	saved := out.toDomain()
	if saved.ID == "" {
		cfg.ID = id
		return cfg, nil
	}
	return saved, nil
}

// SetAutomationEnabled sends a partial update of isEnabled.
func (c *Client) SetAutomationEnabled(ctx context.Context, id string, enabled bool) error {
	in := struct {
		IsEnabled bool `json:"isEnabled"`
	}{enabled}
	return c.doJSON(ctx, http.MethodPut, c.endpoint("/api/email-automation", id), in, nil)
}

// DeleteAutomation removes an automation.
func (c *Client) DeleteAutomation(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, c.endpoint("/api/email-automation", id), nil, nil)
}

// RunAutomation triggers an immediate run.
func (c *Client) RunAutomation(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, c.endpoint("/api/email-automation", id, "run"), nil, nil)
}

// ListEmailTemplates returns the templates automations can use.
func (c *Client) ListEmailTemplates(ctx context.Context) ([]domain.EmailTemplate, error) {
	var out []struct {
		ident
		Name string                `json:"name"`
		Type domain.AutomationType `json:"type"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/api/email-templates"), nil, &out); err != nil {
		return nil, err
	}
	list := make([]domain.EmailTemplate, 0, len(out))
	for _, t := range out {
		list = append(list, domain.EmailTemplate{ID: t.value(), Name: t.Name, Type: t.Type})
	}
	return list, nil
}

// ListOrganizations returns the tenant's organizations.
func (c *Client) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	var out []struct {
		ident
		Name string `json:"name"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/api/organizations"), nil, &out); err != nil {
		return nil, err
	}
	list := make([]domain.Organization, 0, len(out))
	for _, o := range out {
		list = append(list, domain.Organization{ID: o.value(), Name: o.Name})
	}
	return list, nil
}
