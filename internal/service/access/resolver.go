package access

import "github.com/kloudinfotech/helpdesk-console/internal/domain"

// Resolver answers feature-gating questions for one session. The plan is
// captured at construction and never changes.
type Resolver struct {
	plan domain.Plan
}

// NewResolver creates a resolver for the given plan.
func NewResolver(plan domain.Plan) *Resolver {
	if plan != domain.PlanPro {
		plan = domain.PlanBasic
	}
	return &Resolver{plan: plan}
}

// ForSession creates a resolver from the session's user. A nil session
// resolves as basic.
func ForSession(s *domain.Session) *Resolver {
	if s == nil {
		return NewResolver(domain.PlanBasic)
	}
	return NewResolver(s.User.Plan)
}

// Plan returns the resolver's plan.
func (r *Resolver) Plan() domain.Plan { return r.plan }

// IsPro reports whether the plan is pro.
func (r *Resolver) IsPro() bool { return r.plan == domain.PlanPro }

// HasAccess reports whether the feature is available. The empty key is
// always available; any other key needs the pro plan, including keys this
// build does not know about.
func (r *Resolver) HasAccess(key domain.FeatureKey) bool {
	if key == "" {
		return true
	}
	return r.IsPro()
}

// Require returns a *DeniedError when HasAccess is false.
func (r *Resolver) Require(key domain.FeatureKey) error {
	if r.HasAccess(key) {
		return nil
	}
	return &DeniedError{Feature: key}
}

// Features returns the access map for every known gated feature.
func (r *Resolver) Features() map[domain.FeatureKey]bool {
	out := make(map[domain.FeatureKey]bool, len(domain.ProFeatures))
	for _, k := range domain.ProFeatures {
		out[k] = r.HasAccess(k)
	}
	return out
}
