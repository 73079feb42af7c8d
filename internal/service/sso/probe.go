package sso

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

var loginScopes = []string{"openid", "email", "profile"}

// Endpoint returns the OAuth2 endpoint for a provider configuration.
func Endpoint(cfg domain.SSOConfig) (oauth2.Endpoint, error) {
	switch cfg.Provider {
	case domain.ProviderGoogle:
		return google.Endpoint, nil
	case domain.ProviderAzure:
		tenant := cfg.Config.TenantID
		if tenant == "" {
			tenant = "common"
		}
		return microsoft.AzureADEndpoint(tenant), nil
	}
	return oauth2.Endpoint{}, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}

// OAuth2Config builds the login configuration for a provider.
func OAuth2Config(cfg domain.SSOConfig) (*oauth2.Config, error) {
	ep, err := Endpoint(cfg)
	if err != nil {
		return nil, err
	}
	return &oauth2.Config{
		ClientID:     cfg.Config.ClientID,
		ClientSecret: cfg.Config.ClientSecret,
		RedirectURL:  cfg.Config.RedirectURI,
		Scopes:       loginScopes,
		Endpoint:     ep,
	}, nil
}

// Prober checks client credentials by redeeming a bogus authorization code.
// A provider answers invalid_grant for a good client and a bad code, and
// invalid_client when the client ID or secret is wrong.
type Prober struct {
	client   *http.Client
	endpoint func(domain.SSOConfig) (oauth2.Endpoint, error)
}

// NewProber creates a prober. A nil client gets a 10 second timeout.
func NewProber(client *http.Client) *Prober {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Prober{client: client, endpoint: Endpoint}
}

// Probe returns nil when the provider accepts the client credentials.
func (p *Prober) Probe(ctx context.Context, cfg domain.SSOConfig) error {
	if cfg.Config.ClientID == "" {
		return fmt.Errorf("%w: %s", ErrNotConfigured, cfg.Provider)
	}
	ep, err := p.endpoint(cfg)
	if err != nil {
		return err
	}

	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {"validation_probe"},
		"client_id":     {cfg.Config.ClientID},
		"client_secret": {cfg.Config.ClientSecret},
		"redirect_uri":  {cfg.Config.RedirectURI},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("token endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	s := string(body)

	switch {
	case strings.Contains(s, "invalid_client"), strings.Contains(s, "unauthorized_client"):
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, cfg.Provider.Label())
	case strings.Contains(s, "invalid_grant"),
		strings.Contains(s, "invalid_request"),
		strings.Contains(s, "redirect_uri_mismatch"):
		return nil
	}
	return fmt.Errorf("unexpected response from %s token endpoint (HTTP %d)", cfg.Provider.Label(), resp.StatusCode)
}
