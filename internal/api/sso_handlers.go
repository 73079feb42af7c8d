package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/httputil"
)

// ListSSO returns both providers with secrets masked.
//
//	GET /api/admin/sso
func (h *Handlers) ListSSO(w http.ResponseWriter, r *http.Request) {
	cfgs, err := h.sso.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.OK(w, cfgs)
}

// UpdateSSO stores one provider's configuration.
//
//	PUT /api/admin/sso {provider, enabled, config}
func (h *Handlers) UpdateSSO(w http.ResponseWriter, r *http.Request) {
	var in domain.SSOConfig
	if !httputil.Decode(w, r, &in) {
		return
	}
	saved, err := h.sso.Update(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.recordAudit(r, domain.AuditSSOUpdated, string(saved.Provider), "enabled="+boolString(saved.Enabled))
	httputil.OK(w, saved)
}

// ToggleSSO enables or disables a provider.
//
//	POST /api/admin/sso/{provider}/toggle {enabled}
func (h *Handlers) ToggleSSO(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Enabled bool `json:"enabled"`
	}
	if !httputil.Decode(w, r, &in) {
		return
	}
	p := domain.SSOProvider(chi.URLParam(r, "provider"))
	saved, err := h.sso.SetEnabled(r.Context(), p, in.Enabled)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.recordAudit(r, domain.AuditSSOUpdated, string(p), "enabled="+boolString(saved.Enabled))
	httputil.OK(w, saved)
}

// ProbeSSO checks the stored credentials against the identity provider.
//
//	POST /api/admin/sso/{provider}/probe
func (h *Handlers) ProbeSSO(w http.ResponseWriter, r *http.Request) {
	p := domain.SSOProvider(chi.URLParam(r, "provider"))
	if err := h.sso.Probe(r.Context(), p); err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.OK(w, map[string]any{"provider": p, "ok": true})
}

// SSOLoginURL returns the provider sign-in URL built from the stored
// settings, so an admin can try the configuration.
//
//	GET /api/admin/sso/{provider}/login-url
func (h *Handlers) SSOLoginURL(w http.ResponseWriter, r *http.Request) {
	p := domain.SSOProvider(chi.URLParam(r, "provider"))
	u, err := h.sso.AuthURL(r.Context(), p, uuid.NewString())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.OK(w, map[string]string{"provider": string(p), "url": u})
}
