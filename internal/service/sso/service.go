package sso

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

// SecretMask replaces stored client secrets in everything sent to the
// browser. Submitting it back keeps the stored secret.
const SecretMask = "********"

// Service manages SSO provider settings.
type Service struct {
	repo    Repository
	baseURL string
	prober  *Prober
}

// NewService creates an SSO service. publicBaseURL is the console origin
// used to derive default redirect URIs.
func NewService(repo Repository, publicBaseURL string, prober *Prober) *Service {
	if prober == nil {
		prober = NewProber(nil)
	}
	return &Service{
		repo:    repo,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		prober:  prober,
	}
}

// DefaultRedirectURI is the callback registered with the provider.
func (s *Service) DefaultRedirectURI(p domain.SSOProvider) string {
	return s.baseURL + "/sso/" + string(p) + "/callback"
}

// List returns one entry per supported provider, filling defaults for
// providers that were never saved. Secrets are masked.
func (s *Service) List(ctx context.Context) ([]domain.SSOConfig, error) {
	stored, err := s.stored(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SSOConfig, 0, len(domain.SSOProviders))
	for _, p := range domain.SSOProviders {
		cfg := stored[p]
		out = append(out, mask(cfg))
	}
	return out, nil
}

// Update validates and stores a provider's settings. A masked or empty
// secret keeps the stored one.
func (s *Service) Update(ctx context.Context, in domain.SSOConfig) (domain.SSOConfig, error) {
	if !in.Provider.Valid() {
		return in, fmt.Errorf("%w: %q", ErrUnknownProvider, in.Provider)
	}
	stored, err := s.stored(ctx)
	if err != nil {
		return in, err
	}
	cfg := s.merge(stored[in.Provider], in)
	if err := s.validate(cfg); err != nil {
		return mask(cfg), err
	}
	if err := s.repo.UpdateSSOConfig(ctx, cfg); err != nil {
		return mask(cfg), fmt.Errorf("update sso config: %w", err)
	}
	return mask(cfg), nil
}

// SetEnabled turns a provider on or off, keeping its stored settings.
func (s *Service) SetEnabled(ctx context.Context, p domain.SSOProvider, enabled bool) (domain.SSOConfig, error) {
	if !p.Valid() {
		return domain.SSOConfig{}, fmt.Errorf("%w: %q", ErrUnknownProvider, p)
	}
	stored, err := s.stored(ctx)
	if err != nil {
		return domain.SSOConfig{}, err
	}
	cfg := stored[p]
	cfg.Enabled = enabled
	if err := s.validate(cfg); err != nil {
		return mask(cfg), err
	}
	if err := s.repo.UpdateSSOConfig(ctx, cfg); err != nil {
		return mask(cfg), fmt.Errorf("update sso config: %w", err)
	}
	return mask(cfg), nil
}

// Probe checks the stored credentials of a provider.
func (s *Service) Probe(ctx context.Context, p domain.SSOProvider) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, p)
	}
	stored, err := s.stored(ctx)
	if err != nil {
		return err
	}
	return s.prober.Probe(ctx, stored[p])
}

// AuthURL returns the provider login URL for the stored settings.
func (s *Service) AuthURL(ctx context.Context, p domain.SSOProvider, state string) (string, error) {
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, p)
	}
	stored, err := s.stored(ctx)
	if err != nil {
		return "", err
	}
	cfg := stored[p]
	if cfg.Config.ClientID == "" {
		return "", fmt.Errorf("%w: %s", ErrNotConfigured, p)
	}
	oc, err := OAuth2Config(cfg)
	if err != nil {
		return "", err
	}
	return oc.AuthCodeURL(state), nil
}

// stored loads the providers keyed by name, with defaults for missing ones.
func (s *Service) stored(ctx context.Context) (map[domain.SSOProvider]domain.SSOConfig, error) {
	list, err := s.repo.ListSSOConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sso config: %w", err)
	}
	out := make(map[domain.SSOProvider]domain.SSOConfig, len(domain.SSOProviders))
	for _, p := range domain.SSOProviders {
		out[p] = domain.SSOConfig{
			Provider: p,
			Config:   domain.SSOSettings{RedirectURI: s.DefaultRedirectURI(p)},
		}
	}
	for _, c := range list {
		if !c.Provider.Valid() {
			continue
		}
		if c.Config.RedirectURI == "" {
			c.Config.RedirectURI = s.DefaultRedirectURI(c.Provider)
		}
		out[c.Provider] = c
	}
	return out, nil
}

func (s *Service) merge(stored, in domain.SSOConfig) domain.SSOConfig {
	cfg := domain.SSOConfig{
		Provider: in.Provider,
		Enabled:  in.Enabled,
		Config: domain.SSOSettings{
			ClientID:     strings.TrimSpace(in.Config.ClientID),
			ClientSecret: in.Config.ClientSecret,
			RedirectURI:  strings.TrimSpace(in.Config.RedirectURI),
		},
	}
	if in.Provider == domain.ProviderAzure {
		cfg.Config.TenantID = strings.TrimSpace(in.Config.TenantID)
	}
	if cfg.Config.ClientSecret == "" || cfg.Config.ClientSecret == SecretMask {
		cfg.Config.ClientSecret = stored.Config.ClientSecret
	}
	if cfg.Config.RedirectURI == "" {
		cfg.Config.RedirectURI = s.DefaultRedirectURI(in.Provider)
	}
	return cfg
}

// validate requires complete credentials for enabled providers and a
// well-formed redirect URI always.
func (s *Service) validate(cfg domain.SSOConfig) error {
	if u, err := url.Parse(cfg.Config.RedirectURI); err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: redirect URI must be an absolute URL", ErrValidation)
	}
	if !cfg.Enabled {
		return nil
	}
	if cfg.Provider == domain.ProviderAzure && cfg.Config.TenantID == "" {
		return fmt.Errorf("%w: tenant ID is required for Azure AD", ErrValidation)
	}
	if cfg.Config.ClientID == "" {
		return fmt.Errorf("%w: client ID is required", ErrValidation)
	}
	if cfg.Config.ClientSecret == "" {
		return fmt.Errorf("%w: client secret is required", ErrValidation)
	}
	return nil
}

func mask(cfg domain.SSOConfig) domain.SSOConfig {
	if cfg.Config.ClientSecret != "" {
		cfg.Config.ClientSecret = SecretMask
	}
	return cfg
}
