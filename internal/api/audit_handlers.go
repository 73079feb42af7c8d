package api

import (
	"net/http"
	"strconv"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/httputil"
)

// ListAudit returns recent console changes, newest first.
//
//	GET /api/admin/audit?limit=N
func (h *Handlers) ListAudit(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		httputil.OK(w, map[string]any{"entries": []domain.AuditEntry{}})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httputil.BadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	entries, err := h.audit.List(r.Context(), limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	httputil.OK(w, map[string]any{"entries": entries})
}
