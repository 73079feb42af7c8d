package domain

import "strings"

// Plan is the licensing tier of the signed-in tenant.
type Plan string

const (
	PlanBasic Plan = "basic"
	PlanPro   Plan = "pro"
)

// ParsePlan maps a profile value to a Plan. Anything other than "pro"
// (case-insensitive) is treated as basic.
func ParsePlan(s string) Plan {
	if strings.EqualFold(strings.TrimSpace(s), string(PlanPro)) {
		return PlanPro
	}
	return PlanBasic
}

// FeatureKey names a premium capability.
type FeatureKey string

const (
	FeatureSLAManager           FeatureKey = "SLA_MANAGER"
	FeatureSSOIntegration       FeatureKey = "SSO_INTEGRATION"
	FeatureCustomRoles          FeatureKey = "CUSTOM_ROLES"
	FeatureDomainRules          FeatureKey = "DOMAIN_RULES"
	FeatureEmailAutomation      FeatureKey = "EMAIL_AUTOMATION"
	FeatureExternalIntegrations FeatureKey = "EXTERNAL_INTEGRATIONS"
	FeatureTeamsIntegration     FeatureKey = "TEAMS_INTEGRATION"
	FeatureAdvancedReports      FeatureKey = "ADVANCED_REPORTS"
)

// ProFeatures lists every gated feature in display order.
var ProFeatures = []FeatureKey{
	FeatureSLAManager,
	FeatureSSOIntegration,
	FeatureCustomRoles,
	FeatureDomainRules,
	FeatureEmailAutomation,
	FeatureExternalIntegrations,
	FeatureTeamsIntegration,
	FeatureAdvancedReports,
}

var featureLabels = map[FeatureKey]string{
	FeatureSLAManager:           "SLA Management",
	FeatureSSOIntegration:       "SSO Integration",
	FeatureCustomRoles:          "Custom Roles",
	FeatureDomainRules:          "Domain Rules",
	FeatureEmailAutomation:      "Email Automation",
	FeatureExternalIntegrations: "External Integrations",
	FeatureTeamsIntegration:     "Microsoft Teams Integration",
	FeatureAdvancedReports:      "Advanced Reports & Analytics",
}

// IsKnown reports whether k is one of the gated features.
func (k FeatureKey) IsKnown() bool {
	_, ok := featureLabels[k]
	return ok
}

// Label returns a human-readable name, falling back to the raw key.
func (k FeatureKey) Label() string {
	if l, ok := featureLabels[k]; ok {
		return l
	}
	return string(k)
}

// PlanFeature is one row of the basic vs pro comparison table.
type PlanFeature struct {
	Name  string `json:"name"`
	Basic bool   `json:"basic"`
	Pro   bool   `json:"pro"`
}
