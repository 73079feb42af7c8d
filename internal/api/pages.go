package api

import (
	"net/http"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/httputil"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/logger"
)

func writeHTML(w http.ResponseWriter, status int, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(page); err != nil {
		logger.Debug("pages: write failed", "error", err)
	}
}

// Landing serves the public landing page.
func (h *Handlers) Landing(w http.ResponseWriter, r *http.Request) {
	page, err := h.pages.Landing()
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, page)
}

// UpgradeRequiredPage is shown in place of a screen the plan does not
// include.
//
//	GET /upgrade/required?feature=KEY
func (h *Handlers) UpgradeRequiredPage(w http.ResponseWriter, r *http.Request) {
	feature := domain.FeatureKey(r.URL.Query().Get("feature"))
	if !feature.IsKnown() {
		http.Redirect(w, r, "/upgrade", http.StatusSeeOther)
		return
	}
	page, err := h.pages.UpgradeRequired(h.navigator.Prompt(feature))
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	writeHTML(w, http.StatusPaymentRequired, page)
}
