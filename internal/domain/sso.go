package domain

// SSOProvider identifies an identity provider.
type SSOProvider string

const (
	ProviderAzure  SSOProvider = "azure"
	ProviderGoogle SSOProvider = "google"
)

// SSOProviders lists every supported provider.
var SSOProviders = []SSOProvider{ProviderAzure, ProviderGoogle}

// Valid reports whether p is a supported provider.
func (p SSOProvider) Valid() bool { return p == ProviderAzure || p == ProviderGoogle }

// Label returns the display name of the provider.
func (p SSOProvider) Label() string {
	switch p {
	case ProviderAzure:
		return "Azure AD"
	case ProviderGoogle:
		return "Google Workspace"
	}
	return string(p)
}

// SSOSettings holds provider credentials. TenantID is Azure-only.
type SSOSettings struct {
	TenantID     string `json:"tenantId,omitempty"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectUri"`
}

// SSOConfig is the stored configuration for one provider.
type SSOConfig struct {
	Provider SSOProvider `json:"provider"`
	Enabled  bool        `json:"enabled"`
	Config   SSOSettings `json:"config"`
}
