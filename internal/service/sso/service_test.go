package sso

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"golang.org/x/oauth2"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

const testBaseURL = "https://helpdesk.example.com"

type mockRepo struct {
	mu      sync.Mutex
	configs map[domain.SSOProvider]domain.SSOConfig
	updates int
}

func newMockRepo(cfgs ...domain.SSOConfig) *mockRepo {
	m := &mockRepo{configs: make(map[domain.SSOProvider]domain.SSOConfig)}
	for _, c := range cfgs {
		m.configs[c.Provider] = c
	}
	return m
}

func (m *mockRepo) ListSSOConfigs(_ context.Context) ([]domain.SSOConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.SSOConfig, 0, len(m.configs))
	for _, c := range m.configs {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockRepo) UpdateSSOConfig(_ context.Context, cfg domain.SSOConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	m.configs[cfg.Provider] = cfg
	return nil
}

func googleConfig() domain.SSOConfig {
	return domain.SSOConfig{
		Provider: domain.ProviderGoogle,
		Enabled:  true,
		Config: domain.SSOSettings{
			ClientID:     "client-123",
			ClientSecret: "s3cret",
			RedirectURI:  testBaseURL + "/sso/google/callback",
		},
	}
}

func TestList_DefaultsAndMasking(t *testing.T) {
	svc := NewService(newMockRepo(googleConfig()), testBaseURL+"/", nil)
	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected both providers, got %d", len(list))
	}
	azure, google := list[0], list[1]
	if azure.Provider != domain.ProviderAzure || azure.Config.RedirectURI != testBaseURL+"/sso/azure/callback" {
		t.Errorf("unexpected azure default %+v", azure)
	}
	if google.Config.ClientSecret != SecretMask {
		t.Errorf("secret not masked: %q", google.Config.ClientSecret)
	}
}

func TestUpdate_MaskedSecretKeepsStored(t *testing.T) {
	repo := newMockRepo(googleConfig())
	svc := NewService(repo, testBaseURL, nil)

	in := googleConfig()
	in.Config.ClientSecret = SecretMask
	in.Config.ClientID = " client-456 "
	if _, err := svc.Update(context.Background(), in); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := repo.configs[domain.ProviderGoogle]
	if got.Config.ClientSecret != "s3cret" || got.Config.ClientID != "client-456" {
		t.Fatalf("unexpected stored config %+v", got.Config)
	}
}

func TestUpdate_EnabledRequiresCredentials(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testBaseURL, nil)

	in := domain.SSOConfig{Provider: domain.ProviderAzure, Enabled: true, Config: domain.SSOSettings{ClientID: "x", ClientSecret: "y"}}
	if _, err := svc.Update(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing tenant, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatal("invalid config must not be stored")
	}

	in.Enabled = false
	in.Config = domain.SSOSettings{}
	if _, err := svc.Update(context.Background(), in); err != nil {
		t.Fatalf("disabled provider may be incomplete: %v", err)
	}
}

func TestUpdate_RejectsRelativeRedirect(t *testing.T) {
	svc := NewService(newMockRepo(), testBaseURL, nil)
	in := googleConfig()
	in.Config.RedirectURI = "/sso/google/callback"
	if _, err := svc.Update(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdate_UnknownProvider(t *testing.T) {
	svc := NewService(newMockRepo(), testBaseURL, nil)
	if _, err := svc.Update(context.Background(), domain.SSOConfig{Provider: "okta"}); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestSetEnabled(t *testing.T) {
	g := googleConfig()
	g.Enabled = false
	repo := newMockRepo(g)
	svc := NewService(repo, testBaseURL, nil)

	cfg, err := svc.SetEnabled(context.Background(), domain.ProviderGoogle, true)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Enabled || !repo.configs[domain.ProviderGoogle].Enabled {
		t.Fatal("provider not enabled")
	}
	if repo.configs[domain.ProviderGoogle].Config.ClientSecret != "s3cret" {
		t.Fatal("toggle must keep the stored secret")
	}

	if _, err := svc.SetEnabled(context.Background(), domain.ProviderAzure, true); !errors.Is(err, ErrValidation) {
		t.Fatalf("enabling unconfigured azure should fail, got %v", err)
	}
}

func TestAuthURL(t *testing.T) {
	svc := NewService(newMockRepo(googleConfig()), testBaseURL, nil)
	u, err := svc.AuthURL(context.Background(), domain.ProviderGoogle, "state-1")
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := url.Parse(u)
	if err != nil {
		t.Fatal(err)
	}
	q := parsed.Query()
	if q.Get("client_id") != "client-123" || q.Get("state") != "state-1" {
		t.Fatalf("unexpected auth URL %s", u)
	}
	if _, err := svc.AuthURL(context.Background(), domain.ProviderAzure, "s"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestEndpoint_AzureTenant(t *testing.T) {
	ep, err := Endpoint(domain.SSOConfig{Provider: domain.ProviderAzure, Config: domain.SSOSettings{TenantID: "contoso"}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ep.TokenURL, "/contoso/") {
		t.Fatalf("tenant missing from token URL %s", ep.TokenURL)
	}
}

func newTestProber(t *testing.T, handler http.HandlerFunc) *Prober {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := NewProber(srv.Client())
	p.endpoint = func(domain.SSOConfig) (oauth2.Endpoint, error) {
		return oauth2.Endpoint{TokenURL: srv.URL + "/token"}, nil
	}
	return p
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		wantErr error
		anyErr  bool
	}{
		{"good client bad code", `{"error":"invalid_grant"}`, http.StatusBadRequest, nil, false},
		{"bad client", `{"error":"invalid_client","error_description":"Unauthorized"}`, http.StatusUnauthorized, ErrInvalidCredentials, true},
		{"unexpected", `<html>oops</html>`, http.StatusInternalServerError, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotForm url.Values
			p := newTestProber(t, func(w http.ResponseWriter, r *http.Request) {
				b, _ := io.ReadAll(r.Body)
				gotForm, _ = url.ParseQuery(string(b))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			err := p.Probe(context.Background(), googleConfig())
			if !tt.anyErr && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if tt.anyErr && err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if gotForm.Get("client_id") != "client-123" || gotForm.Get("code") != "validation_probe" {
				t.Fatalf("unexpected probe form %v", gotForm)
			}
		})
	}
}

func TestProbe_NotConfigured(t *testing.T) {
	p := NewProber(nil)
	err := p.Probe(context.Background(), domain.SSOConfig{Provider: domain.ProviderGoogle})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
