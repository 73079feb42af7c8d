package access

import "github.com/kloudinfotech/helpdesk-console/internal/domain"

// ProPriceINR is the yearly Pro license price shown on the upgrade page.
const ProPriceINR = 9999

var comparison = []domain.PlanFeature{
	{Name: "Ticket Management", Basic: true, Pro: true},
	{Name: "Email Integration (SMTP/IMAP)", Basic: true, Pro: true},
	{Name: "User & Department Management", Basic: true, Pro: true},
	{Name: "Basic Reports", Basic: true, Pro: true},
	{Name: "API Keys", Basic: true, Pro: true},
	{Name: "Email Templates", Basic: true, Pro: true},
	{Name: "FAQ Management", Basic: true, Pro: true},
	{Name: "Chatbot", Basic: true, Pro: true},
	{Name: "SLA Management", Pro: true},
	{Name: "SSO Integration", Pro: true},
	{Name: "External Integrations", Pro: true},
	{Name: "Advanced Reports & Analytics", Pro: true},
	{Name: "Email Automation", Pro: true},
	{Name: "Domain Rules (Whitelist/Blacklist)", Pro: true},
	{Name: "Custom Roles", Pro: true},
	{Name: "Microsoft Teams Integration", Pro: true},
	{Name: "Azure Sentinel Integration", Pro: true},
}

// Comparison returns the basic vs pro feature table.
func Comparison() []domain.PlanFeature {
	return append([]domain.PlanFeature(nil), comparison...)
}
