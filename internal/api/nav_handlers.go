package api

import (
	"net/http"

	"github.com/kloudinfotech/helpdesk-console/internal/auth"
	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/httputil"
)

type navResponse struct {
	Plan  domain.Plan      `json:"plan"`
	IsPro bool             `json:"is_pro"`
	Items []domain.NavItem `json:"items"`
}

// GetNav returns the menu for the session's role with lock flags.
//
//	GET /api/nav
func (h *Handlers) GetNav(w http.ResponseWriter, r *http.Request) {
	s := auth.FromContext(r.Context())
	res := auth.ResolverFrom(r.Context())
	httputil.OK(w, navResponse{
		Plan:  res.Plan(),
		IsPro: res.IsPro(),
		Items: res.Menu(s.User.Role),
	})
}

// SelectNav decides whether activating a menu entry navigates or shows
// the upgrade prompt.
//
//	POST /api/nav/select {path}
func (h *Handlers) SelectNav(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Path string `json:"path"`
	}
	if !httputil.Decode(w, r, &in) {
		return
	}
	s := auth.FromContext(r.Context())
	decision, err := h.navigator.Select(auth.ResolverFrom(r.Context()), s.User.Role, in.Path)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.OK(w, decision)
}

// GetFeatures returns the plan and the access map for every gated feature.
//
//	GET /api/features
func (h *Handlers) GetFeatures(w http.ResponseWriter, r *http.Request) {
	res := auth.ResolverFrom(r.Context())
	httputil.OK(w, map[string]any{
		"plan":     res.Plan(),
		"features": res.Features(),
	})
}

// GetUpgradePrompt returns the upgrade dialog payload for a feature.
//
//	GET /api/upgrade/prompt?feature=KEY
func (h *Handlers) GetUpgradePrompt(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, h.navigator.Prompt(domain.FeatureKey(r.URL.Query().Get("feature"))))
}
