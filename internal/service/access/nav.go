package access

import (
	"fmt"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

var mainMenu = []domain.NavItem{
	{Path: "/dashboard", Label: "Dashboard", Icon: "layout-dashboard"},
	{Path: "/tickets", Label: "Tickets", Icon: "ticket"},
	{Path: "/reports", Label: "Reports", Icon: "file-text"},
	{Path: "/settings", Label: "Settings", Icon: "settings"},
}

var adminMenu = []domain.NavItem{
	{Path: "/admin/organizations", Label: "Organizations", Icon: "building-2"},
	{Path: "/admin/users", Label: "Users", Icon: "users"},
	{Path: "/admin/categories", Label: "Categories", Icon: "tag"},
	{Path: "/admin/departments", Label: "Departments", Icon: "briefcase"},
	{Path: "/admin/roles", Label: "Roles", Icon: "shield", Feature: domain.FeatureCustomRoles},
	{Path: "/admin/sla", Label: "SLA Policies", Icon: "clock", Feature: domain.FeatureSLAManager},
	{Path: "/admin/tickets/import", Label: "Import Tickets", Icon: "upload"},
	{Path: "/admin/analytics", Label: "Analytics", Icon: "bar-chart-3", Feature: domain.FeatureAdvancedReports},
	{Path: "/admin/api-keys", Label: "API Keys", Icon: "key"},
	{Path: "/admin/integrations", Label: "External Integrations", Icon: "plug", Feature: domain.FeatureExternalIntegrations},
	{Path: "/admin/email", Label: "Email Settings", Icon: "mail"},
	{Path: "/admin/domain-rules", Label: "Domain Rules", Icon: "shield", Feature: domain.FeatureDomainRules},
	{Path: "/admin/email-templates", Label: "Email Templates", Icon: "file-code"},
	{Path: "/admin/email-automation", Label: "Email Automation", Icon: "send", Feature: domain.FeatureEmailAutomation},
	{Path: "/admin/faq", Label: "FAQ Management", Icon: "help-circle"},
	{Path: "/admin/chat-history", Label: "Chat History", Icon: "message-square"},
	{Path: "/admin/teams-integration", Label: "Microsoft Teams", Icon: "message-square", Feature: domain.FeatureTeamsIntegration},
	{Path: "/admin/sso", Label: "SSO Configuration", Icon: "shield", Feature: domain.FeatureSSOIntegration},
	{Path: "/admin/logo", Label: "Logo Management", Icon: "image"},
	{Path: "/admin/backup-restore", Label: "Backup & Restore", Icon: "database"},
}

// Menu returns the sidebar for a role with Locked set on every item the
// plan cannot open. Reports is shown to admins and technicians only, and
// the Administration section to admins only.
func (r *Resolver) Menu(role domain.UserRole) []domain.NavItem {
	items := make([]domain.NavItem, 0, len(mainMenu)+len(adminMenu))
	for _, it := range mainMenu {
		if it.Path == "/reports" && role != domain.RoleAdmin && role != domain.RoleTechnician {
			continue
		}
		it.Section = domain.SectionMain
		it.Locked = !r.HasAccess(it.Feature)
		items = append(items, it)
	}
	if role.IsAdmin() {
		for _, it := range adminMenu {
			it.Section = domain.SectionAdmin
			it.Locked = !r.HasAccess(it.Feature)
			items = append(items, it)
		}
	}
	return items
}

// Action is what the shell does when a nav entry is activated.
type Action string

const (
	ActionNavigate Action = "navigate"
	ActionUpgrade  Action = "upgrade"
)

// UpgradePrompt is the payload of the "Upgrade to Pro Required" dialog.
// Accepting it opens PurchaseURL in a new browsing context without
// navigating away from the console.
type UpgradePrompt struct {
	Feature     domain.FeatureKey `json:"feature,omitempty"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	PurchaseURL string            `json:"purchase_url"`
	Target      string            `json:"target"`
}

// NavDecision is the outcome of activating a nav entry.
type NavDecision struct {
	Action Action         `json:"action"`
	Path   string         `json:"path,omitempty"`
	Prompt *UpgradePrompt `json:"prompt,omitempty"`
}

// Navigator turns nav activations into navigate or upgrade decisions.
type Navigator struct {
	purchaseURL string
}

// NewNavigator creates a navigator that points upgrade prompts at purchaseURL.
func NewNavigator(purchaseURL string) *Navigator {
	return &Navigator{purchaseURL: purchaseURL}
}

// Prompt builds the upgrade dialog for a feature.
func (n *Navigator) Prompt(feature domain.FeatureKey) UpgradePrompt {
	msg := "This feature is only available in the Pro plan. Upgrade to unlock all premium features."
	if feature != "" {
		msg = fmt.Sprintf("%s is only available in the Pro plan. Upgrade to unlock all premium features.", feature.Label())
	}
	return UpgradePrompt{
		Feature:     feature,
		Title:       "Upgrade to Pro Required",
		Message:     msg,
		PurchaseURL: n.purchaseURL,
		Target:      "_blank",
	}
}

// Decide returns navigate for items the plan can open and an upgrade
// prompt for locked ones.
func (n *Navigator) Decide(r *Resolver, item domain.NavItem) NavDecision {
	if r.HasAccess(item.Feature) {
		return NavDecision{Action: ActionNavigate, Path: item.Path}
	}
	p := n.Prompt(item.Feature)
	return NavDecision{Action: ActionUpgrade, Prompt: &p}
}

// Select resolves a path against the role's menu and decides it.
func (n *Navigator) Select(r *Resolver, role domain.UserRole, path string) (NavDecision, error) {
	for _, it := range r.Menu(role) {
		if it.Path == path {
			return n.Decide(r, it), nil
		}
	}
	return NavDecision{}, fmt.Errorf("%w: %s", ErrUnknownPath, path)
}
