package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kloudinfotech/helpdesk-console/internal/auth"
	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/httputil"
	"github.com/kloudinfotech/helpdesk-console/internal/service/roles"
)

func (h *Handlers) ListRoles(w http.ResponseWriter, r *http.Request) {
	list, err := h.roles.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httputil.OK(w, map[string]any{
		"roles":       list,
		"permissions": domain.Permissions,
		"canCreate":   auth.ResolverFrom(r.Context()).HasAccess(domain.FeatureCustomRoles),
	})
}

// CreateRole adds a custom role. Basic plans get the upgrade prompt.
func (h *Handlers) CreateRole(w http.ResponseWriter, r *http.Request) {
	var in domain.Role
	if !httputil.Decode(w, r, &in) {
		return
	}
	created, err := h.roles.Create(r.Context(), auth.ResolverFrom(r.Context()), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.recordAudit(r, domain.AuditRoleCreated, created.ID, created.Name)
	httputil.Created(w, created)
}

func (h *Handlers) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var in domain.Role
	if !httputil.Decode(w, r, &in) {
		return
	}
	id := chi.URLParam(r, "id")
	updated, err := h.roles.Update(r.Context(), id, in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.recordAudit(r, domain.AuditRoleUpdated, id, updated.Name)
	httputil.OK(w, updated)
}

func (h *Handlers) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.roles.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.recordAudit(r, domain.AuditRoleDeleted, id, "")
	httputil.NoContent(w)
}

// TogglePermission applies a checkbox click to an unsaved permission set.
//
//	POST /api/admin/roles/permissions/toggle {permissions, permission}
func (h *Handlers) TogglePermission(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Permissions []domain.Permission `json:"permissions"`
		Permission  domain.Permission   `json:"permission"`
	}
	if !httputil.Decode(w, r, &in) {
		return
	}
	if !in.Permission.Valid() {
		httputil.ErrorCode(w, http.StatusBadRequest, "validation", "unknown permission "+string(in.Permission), nil)
		return
	}
	httputil.OK(w, map[string]any{"permissions": roles.TogglePermission(in.Permissions, in.Permission)})
}
