package access

import (
	"errors"
	"testing"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

func TestHasAccess_EmptyKeyAlwaysAllowed(t *testing.T) {
	for _, p := range []domain.Plan{domain.PlanBasic, domain.PlanPro} {
		if !NewResolver(p).HasAccess("") {
			t.Errorf("plan %s: expected empty key to be allowed", p)
		}
	}
}

func TestHasAccess_ByPlan(t *testing.T) {
	tests := []struct {
		plan domain.Plan
		key  domain.FeatureKey
		want bool
	}{
		{domain.PlanBasic, domain.FeatureSSOIntegration, false},
		{domain.PlanPro, domain.FeatureSSOIntegration, true},
		{domain.PlanBasic, domain.FeatureDomainRules, false},
		{domain.PlanPro, domain.FeatureAdvancedReports, true},
		{domain.PlanBasic, "FUTURE_FEATURE", false},
		{domain.PlanPro, "FUTURE_FEATURE", true},
	}
	for _, tt := range tests {
		got := NewResolver(tt.plan).HasAccess(tt.key)
		if got != tt.want {
			t.Errorf("HasAccess(%s) on %s = %v, want %v", tt.key, tt.plan, got, tt.want)
		}
	}
}

func TestNewResolver_UnknownPlanIsBasic(t *testing.T) {
	r := NewResolver(domain.Plan("enterprise"))
	if r.Plan() != domain.PlanBasic {
		t.Fatalf("expected basic, got %s", r.Plan())
	}
	if r.IsPro() {
		t.Error("expected IsPro to be false")
	}
}

func TestForSession(t *testing.T) {
	if ForSession(nil).IsPro() {
		t.Error("nil session must resolve as basic")
	}
	s := &domain.Session{User: domain.User{Plan: domain.PlanPro}}
	if !ForSession(s).IsPro() {
		t.Error("expected pro session to resolve as pro")
	}
}

func TestRequire(t *testing.T) {
	err := NewResolver(domain.PlanBasic).Require(domain.FeatureCustomRoles)
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	var denied *DeniedError
	if !errors.As(err, &denied) || denied.Feature != domain.FeatureCustomRoles {
		t.Fatalf("expected DeniedError for CUSTOM_ROLES, got %v", err)
	}
	if err := NewResolver(domain.PlanPro).Require(domain.FeatureCustomRoles); err != nil {
		t.Fatalf("expected nil for pro, got %v", err)
	}
	if err := NewResolver(domain.PlanBasic).Require(""); err != nil {
		t.Fatalf("expected nil for empty key, got %v", err)
	}
}

func TestFeatures(t *testing.T) {
	m := NewResolver(domain.PlanBasic).Features()
	if len(m) != len(domain.ProFeatures) {
		t.Fatalf("expected %d entries, got %d", len(domain.ProFeatures), len(m))
	}
	for k, ok := range m {
		if ok {
			t.Errorf("basic plan should not have %s", k)
		}
	}
}

func TestComparison_ReturnsCopy(t *testing.T) {
	c := Comparison()
	c[0].Name = "changed"
	if Comparison()[0].Name == "changed" {
		t.Error("Comparison must not expose the shared table")
	}
	if len(c) != 17 {
		t.Errorf("expected 17 rows, got %d", len(c))
	}
}
