package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/httputil"
	"github.com/kloudinfotech/helpdesk-console/internal/service/automation"
)

// automationView adds the labels the list screen shows next to each row.
type automationView struct {
	domain.AutomationConfig
	Summary       string `json:"summary"`
	LastSentLabel string `json:"lastSentLabel"`
}

func viewAutomations(autos []domain.AutomationConfig) []automationView {
	out := make([]automationView, 0, len(autos))
	for _, a := range autos {
		out = append(out, automationView{
			AutomationConfig: a,
			Summary:          automation.Describe(a),
			LastSentLabel:    automation.LastSentLabel(a),
		})
	}
	return out
}

// ListAutomations loads automations with the templates and organizations
// the editor needs.
//
//	GET /api/admin/email-automation
func (h *Handlers) ListAutomations(w http.ResponseWriter, r *http.Request) {
	cat, err := h.automation.Catalog(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.OK(w, map[string]any{
		"automations":   viewAutomations(cat.Automations),
		"templates":     cat.Templates,
		"organizations": cat.Organizations,
	})
}

// AutomationDefaults returns the form defaults for a new automation.
//
//	GET /api/admin/email-automation/defaults
func (h *Handlers) AutomationDefaults(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, automation.NewDraft())
}

// ShapeAutomationType applies a type switch to an unsaved draft and returns
// the reshaped draft plus the templates offered for the new type.
//
//	POST /api/admin/email-automation/draft/type {draft, type, templates}
func (h *Handlers) ShapeAutomationType(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Draft     domain.AutomationConfig `json:"draft"`
		Type      domain.AutomationType   `json:"type"`
		Templates []domain.EmailTemplate  `json:"templates"`
	}
	if !httputil.Decode(w, r, &in) {
		return
	}
	draft := in.Draft
	if err := automation.SetType(&draft, in.Type); err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.OK(w, map[string]any{
		"draft":     draft,
		"summary":   automation.Describe(draft),
		"templates": automation.TemplatesFor(in.Templates, draft.Type),
	})
}

// CreateAutomation validates and stores a new automation.
//
//	POST /api/admin/email-automation
func (h *Handlers) CreateAutomation(w http.ResponseWriter, r *http.Request) {
	var in domain.AutomationConfig
	if !httputil.Decode(w, r, &in) {
		return
	}
	created, err := h.automation.Create(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.recordAudit(r, domain.AuditAutomationCreated, created.ID, created.Name)
	httputil.Created(w, created)
}

// UpdateAutomation replaces an automation.
//
//	PUT /api/admin/email-automation/{id}
func (h *Handlers) UpdateAutomation(w http.ResponseWriter, r *http.Request) {
	var in domain.AutomationConfig
	if !httputil.Decode(w, r, &in) {
		return
	}
	id := chi.URLParam(r, "id")
	updated, err := h.automation.Update(r.Context(), id, in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.recordAudit(r, domain.AuditAutomationUpdated, id, updated.Name)
	httputil.OK(w, updated)
}

// DeleteAutomation removes an automation.
//
//	DELETE /api/admin/email-automation/{id}
func (h *Handlers) DeleteAutomation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.automation.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.recordAudit(r, domain.AuditAutomationDeleted, id, "")
	httputil.NoContent(w)
}

// ToggleAutomation flips an automation's enabled flag.
//
//	POST /api/admin/email-automation/{id}/toggle
func (h *Handlers) ToggleAutomation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	enabled, err := h.automation.Toggle(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.recordAudit(r, domain.AuditAutomationUpdated, id, "isEnabled="+boolString(enabled))
	httputil.OK(w, map[string]any{"id": id, "isEnabled": enabled})
}

// RunAutomation triggers an automation now. The response only confirms the
// trigger was accepted.
//
//	POST /api/admin/email-automation/{id}/run
func (h *Handlers) RunAutomation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.automation.Run(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.recordAudit(r, domain.AuditAutomationRun, id, "")
	httputil.Accepted(w, map[string]string{"id": id, "status": "triggered"})
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
