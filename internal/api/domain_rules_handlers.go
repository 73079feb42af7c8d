package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/httputil"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/logger"
	"github.com/kloudinfotech/helpdesk-console/internal/service/domainrules"
)

type draftResponse struct {
	Rules    domain.DomainRuleSet `json:"rules"`
	Dirty    bool                 `json:"dirty"`
	LoadedAt time.Time            `json:"loaded_at"`
	SavedAt  *time.Time           `json:"saved_at,omitempty"`
}

func newDraftResponse(d *domainrules.Draft) draftResponse {
	return draftResponse{Rules: d.Rules, Dirty: d.Dirty(), LoadedAt: d.LoadedAt, SavedAt: d.SavedAt}
}

// writeDraft answers with the draft and, when err is set, the error. A
// rejected add still reports the unchanged draft through the error path.
func (h *Handlers) writeDraft(w http.ResponseWriter, r *http.Request, d *domainrules.Draft, err error) {
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.OK(w, newDraftResponse(d))
}

// OpenDomainRules loads the stored rules into a fresh draft.
//
//	GET /api/admin/domain-rules
func (h *Handlers) OpenDomainRules(w http.ResponseWriter, r *http.Request) {
	d, err := h.domainRules.Open(r.Context(), sessionID(r))
	h.writeDraft(w, r, d, err)
}

// GetDomainRulesDraft returns the session's draft, loading it if needed.
//
//	GET /api/admin/domain-rules/draft
func (h *Handlers) GetDomainRulesDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.domainRules.Draft(r.Context(), sessionID(r))
	h.writeDraft(w, r, d, err)
}

// DiscardDomainRulesDraft drops unsaved edits.
//
//	DELETE /api/admin/domain-rules/draft
func (h *Handlers) DiscardDomainRulesDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.domainRules.Discard(r.Context(), sessionID(r)); err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.NoContent(w)
}

// SetDomainRulesEnabled flips enforcement in the draft.
//
//	PUT /api/admin/domain-rules/enabled {enabled}
func (h *Handlers) SetDomainRulesEnabled(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Enabled *bool `json:"enabled"`
	}
	if !httputil.Decode(w, r, &in) {
		return
	}
	if in.Enabled == nil {
		httputil.BadRequest(w, "enabled is required")
		return
	}
	d, err := h.domainRules.SetEnabled(r.Context(), sessionID(r), *in.Enabled)
	h.writeDraft(w, r, d, err)
}

// AddDomain adds a domain to the whitelist or blacklist of the draft.
//
//	POST /api/admin/domain-rules/{list} {domain}
func (h *Handlers) AddDomain(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Domain string `json:"domain"`
	}
	if !httputil.Decode(w, r, &in) {
		return
	}
	kind := domain.ListKind(chi.URLParam(r, "list"))
	d, err := h.domainRules.Add(r.Context(), sessionID(r), kind, in.Domain)
	h.writeDraft(w, r, d, err)
}

// RemoveDomain removes a domain from a list of the draft.
//
//	DELETE /api/admin/domain-rules/{list}/{domain}
func (h *Handlers) RemoveDomain(w http.ResponseWriter, r *http.Request) {
	kind := domain.ListKind(chi.URLParam(r, "list"))
	d, err := h.domainRules.Remove(r.Context(), sessionID(r), kind, chi.URLParam(r, "domain"))
	h.writeDraft(w, r, d, err)
}

// SaveDomainRules persists the draft wholesale.
//
//	POST /api/admin/domain-rules/save
func (h *Handlers) SaveDomainRules(w http.ResponseWriter, r *http.Request) {
	d, err := h.domainRules.Save(r.Context(), sessionID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.recordAudit(r, domain.AuditDomainRulesSaved, "", ruleCounts(d.Rules))
	httputil.OK(w, newDraftResponse(d))
}

type evaluateRequest struct {
	Sender string `json:"sender"`
	// Draft selects the session's unsaved rules instead of the stored ones.
	Draft bool `json:"draft"`
}

type evaluateResponse struct {
	Sender   string          `json:"sender"`
	Domain   string          `json:"domain"`
	Decision domain.Decision `json:"decision"`
}

// EvaluateSender reports whether mail from a sender would be accepted.
//
//	POST /api/admin/domain-rules/evaluate {sender, draft}
func (h *Handlers) EvaluateSender(w http.ResponseWriter, r *http.Request) {
	var in evaluateRequest
	if !httputil.Decode(w, r, &in) {
		return
	}
	if domainrules.SenderDomain(in.Sender) == "" {
		httputil.BadRequest(w, "sender must be an email address or domain")
		return
	}
	var dec domain.Decision
	var err error
	if in.Draft {
		dec, err = h.domainRules.Preview(r.Context(), sessionID(r), in.Sender)
	} else {
		dec, err = h.domainRules.Check(r.Context(), in.Sender)
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	logger.Debug("sender evaluated", "sender", in.Sender, "draft", in.Draft, "decision", string(dec))
	httputil.OK(w, evaluateResponse{Sender: in.Sender, Domain: domainrules.SenderDomain(in.Sender), Decision: dec})
}

// PreviewRejection renders the notice a blocked sender would receive.
//
//	POST /api/admin/domain-rules/rejection-preview {sender}
func (h *Handlers) PreviewRejection(w http.ResponseWriter, r *http.Request) {
	var in evaluateRequest
	if !httputil.Decode(w, r, &in) {
		return
	}
	if domainrules.SenderDomain(in.Sender) == "" {
		httputil.BadRequest(w, "sender must be an email address or domain")
		return
	}
	body, err := h.notice.Render(in.Sender, h.organization)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.OK(w, map[string]string{"subject": "Message not accepted", "body": body})
}
