package helpdeskapi

import (
	"context"
	"net/http"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

type wireDomainRules struct {
	Enabled   *bool    `json:"enabled"`
	Whitelist []string `json:"whitelist"`
	Blacklist []string `json:"blacklist"`
}

// GetDomainRules reads the rule set from the email settings. Missing
// fields default to a disabled set with empty lists.
func (c *Client) GetDomainRules(ctx context.Context) (domain.DomainRuleSet, error) {
	var out struct {
		DomainRules *wireDomainRules `json:"domainRules"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/api/admin/email-settings"), nil, &out); err != nil {
		return domain.DomainRuleSet{}, err
	}
	rules := domain.DomainRuleSet{Whitelist: []string{}, Blacklist: []string{}}
	if out.DomainRules == nil {
		return rules, nil
	}
	if out.DomainRules.Enabled != nil {
		rules.Enabled = *out.DomainRules.Enabled
	}
	if out.DomainRules.Whitelist != nil {
		rules.Whitelist = out.DomainRules.Whitelist
	}
	if out.DomainRules.Blacklist != nil {
		rules.Blacklist = out.DomainRules.Blacklist
	}
	return rules, nil
}

// SaveDomainRules replaces the stored rule set.
func (c *Client) SaveDomainRules(ctx context.Context, rules domain.DomainRuleSet) error {
	if rules.Whitelist == nil {
		rules.Whitelist = []string{}
	}
	if rules.Blacklist == nil {
		rules.Blacklist = []string{}
	}
	in := struct {
		DomainRules domain.DomainRuleSet `json:"domainRules"`
	}{rules}
	return c.doJSON(ctx, http.MethodPut, c.endpoint("/api/admin/email-settings"), in, nil)
}

// ListSSOConfigs returns the stored provider configurations.
func (c *Client) ListSSOConfigs(ctx context.Context) ([]domain.SSOConfig, error) {
	var out []domain.SSOConfig
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/api/admin/sso"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSSOConfig stores one provider's configuration.
func (c *Client) UpdateSSOConfig(ctx context.Context, cfg domain.SSOConfig) error {
	return c.doJSON(ctx, http.MethodPut, c.endpoint("/api/admin/sso"), cfg, nil)
}
