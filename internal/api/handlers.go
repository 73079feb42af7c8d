package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kloudinfotech/helpdesk-console/internal/auth"
	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/logger"
	"github.com/kloudinfotech/helpdesk-console/internal/render"
	"github.com/kloudinfotech/helpdesk-console/internal/service/access"
	"github.com/kloudinfotech/helpdesk-console/internal/service/automation"
	"github.com/kloudinfotech/helpdesk-console/internal/service/domainrules"
	"github.com/kloudinfotech/helpdesk-console/internal/service/roles"
	"github.com/kloudinfotech/helpdesk-console/internal/service/sso"
	"github.com/kloudinfotech/helpdesk-console/internal/service/upgrade"
	"github.com/kloudinfotech/helpdesk-console/internal/session"
)

// AuditLog records administrative changes. It may be nil.
type AuditLog interface {
	Record(ctx context.Context, e *domain.AuditEntry) error
	List(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// Handlers contains all console HTTP handlers.
type Handlers struct {
	navigator    *access.Navigator
	domainRules  *domainrules.Service
	notice       *domainrules.NoticeRenderer
	organization string
	automation   *automation.Service
	sso          *sso.Service
	roles        *roles.Service
	upgrade      *upgrade.Service
	ticketIDs    *session.TicketIDs
	pages        *render.Renderer
	audit        AuditLog
}

// Services groups the dependencies of Handlers.
type Services struct {
	Navigator    *access.Navigator
	DomainRules  *domainrules.Service
	Notice       *domainrules.NoticeRenderer
	Organization string
	Automation   *automation.Service
	SSO          *sso.Service
	Roles        *roles.Service
	Upgrade      *upgrade.Service
	TicketIDs    *session.TicketIDs
	Pages        *render.Renderer
	Audit        AuditLog
}

// NewHandlers creates the console handlers.
func NewHandlers(s Services) *Handlers {
	return &Handlers{
		navigator:    s.Navigator,
		domainRules:  s.DomainRules,
		notice:       s.Notice,
		organization: s.Organization,
		automation:   s.Automation,
		sso:          s.SSO,
		roles:        s.Roles,
		upgrade:      s.Upgrade,
		ticketIDs:    s.TicketIDs,
		pages:        s.Pages,
		audit:        s.Audit,
	}
}

// sessionID returns the ID of the request's session. Routes using it sit
// behind RequireAuth.
func sessionID(r *http.Request) string {
	if s := auth.FromContext(r.Context()); s != nil {
		return s.ID
	}
	return ""
}

// recordAudit writes an audit entry. Failures are logged and never fail
// the request.
func (h *Handlers) recordAudit(r *http.Request, action domain.AuditAction, target, detail string) {
	if h.audit == nil {
		return
	}
	s := auth.FromContext(r.Context())
	if s == nil {
		return
	}
	e := &domain.AuditEntry{
		UserID:    s.User.ID,
		UserEmail: s.User.Email,
		Action:    action,
		Target:    target,
		Detail:    detail,
	}
	if err := h.audit.Record(context.WithoutCancel(r.Context()), e); err != nil {
		logger.Warn("audit: failed to record entry", "action", string(action), "error", err)
	}
}

func ruleCounts(rules domain.DomainRuleSet) string {
	return fmt.Sprintf("enabled=%t whitelist=%d blacklist=%d", rules.Enabled, len(rules.Whitelist), len(rules.Blacklist))
}
