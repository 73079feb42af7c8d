package access

import (
	"errors"
	"testing"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

const testPurchaseURL = "https://licenses.example.com/buy"

func findItem(items []domain.NavItem, path string) (domain.NavItem, bool) {
	for _, it := range items {
		if it.Path == path {
			return it, true
		}
	}
	return domain.NavItem{}, false
}

func TestMenu_LockedOnBasic(t *testing.T) {
	items := NewResolver(domain.PlanBasic).Menu(domain.RoleAdmin)

	sso, ok := findItem(items, "/admin/sso")
	if !ok {
		t.Fatal("expected /admin/sso in admin menu")
	}
	if !sso.Locked {
		t.Error("expected SSO item to be locked on basic")
	}
	users, _ := findItem(items, "/admin/users")
	if users.Locked {
		t.Error("ungated item must never be locked")
	}
}

func TestMenu_NothingLockedOnPro(t *testing.T) {
	for _, it := range NewResolver(domain.PlanPro).Menu(domain.RoleAdmin) {
		if it.Locked {
			t.Errorf("%s locked on pro", it.Path)
		}
	}
}

func TestMenu_RoleVisibility(t *testing.T) {
	r := NewResolver(domain.PlanPro)

	userItems := r.Menu(domain.RoleUser)
	if _, ok := findItem(userItems, "/reports"); ok {
		t.Error("reports must be hidden from regular users")
	}
	if _, ok := findItem(userItems, "/admin/users"); ok {
		t.Error("admin section must be hidden from regular users")
	}

	techItems := r.Menu(domain.RoleTechnician)
	if _, ok := findItem(techItems, "/reports"); !ok {
		t.Error("technicians should see reports")
	}
	if _, ok := findItem(techItems, "/admin/sso"); ok {
		t.Error("admin section must be hidden from technicians")
	}

	adminItems := r.Menu(domain.RoleAdmin)
	if len(adminItems) != len(mainMenu)+len(adminMenu) {
		t.Errorf("expected %d admin items, got %d", len(mainMenu)+len(adminMenu), len(adminItems))
	}
}

func TestDecide_BasicGatedItemPromptsUpgrade(t *testing.T) {
	n := NewNavigator(testPurchaseURL)
	item := domain.NavItem{Path: "/admin/sso", Feature: domain.FeatureSSOIntegration}

	d := n.Decide(NewResolver(domain.PlanBasic), item)
	if d.Action != ActionUpgrade {
		t.Fatalf("expected upgrade, got %s", d.Action)
	}
	if d.Path != "" {
		t.Errorf("upgrade decision must not navigate, got path %q", d.Path)
	}
	if d.Prompt == nil || d.Prompt.PurchaseURL != testPurchaseURL || d.Prompt.Target != "_blank" {
		t.Fatalf("unexpected prompt: %+v", d.Prompt)
	}
	if d.Prompt.Title != "Upgrade to Pro Required" {
		t.Errorf("unexpected title %q", d.Prompt.Title)
	}
}

func TestDecide_ProNavigates(t *testing.T) {
	n := NewNavigator(testPurchaseURL)
	item := domain.NavItem{Path: "/admin/sso", Feature: domain.FeatureSSOIntegration}

	d := n.Decide(NewResolver(domain.PlanPro), item)
	if d.Action != ActionNavigate || d.Path != "/admin/sso" {
		t.Fatalf("expected navigate to /admin/sso, got %+v", d)
	}
	if d.Prompt != nil {
		t.Error("navigate decision must not carry a prompt")
	}
}

func TestDecide_UnknownFeatureGatedOnBasic(t *testing.T) {
	n := NewNavigator(testPurchaseURL)
	item := domain.NavItem{Path: "/admin/new", Feature: "UNRELEASED"}

	if d := n.Decide(NewResolver(domain.PlanBasic), item); d.Action != ActionUpgrade {
		t.Fatalf("expected upgrade for unknown feature, got %s", d.Action)
	}
}

func TestSelect(t *testing.T) {
	n := NewNavigator(testPurchaseURL)
	r := NewResolver(domain.PlanBasic)

	d, err := n.Select(r, domain.RoleAdmin, "/admin/domain-rules")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if d.Action != ActionUpgrade || d.Prompt.Feature != domain.FeatureDomainRules {
		t.Fatalf("unexpected decision %+v", d)
	}

	d, err = n.Select(r, domain.RoleAdmin, "/tickets")
	if err != nil || d.Action != ActionNavigate {
		t.Fatalf("expected navigate to tickets, got %+v, %v", d, err)
	}

	_, err = n.Select(r, domain.RoleUser, "/admin/users")
	if !errors.Is(err, ErrUnknownPath) {
		t.Fatalf("expected ErrUnknownPath for hidden item, got %v", err)
	}
}
