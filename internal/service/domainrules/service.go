package domainrules

import (
	"context"
	"fmt"
	"time"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

// Service runs the domain rules editor against the settings API.
// It is safe for concurrent use.
type Service struct {
	repo   Repository
	drafts DraftStore
	now    func() time.Time
}

// NewService creates a domain rules service.
func NewService(repo Repository, drafts DraftStore) *Service {
	return &Service{repo: repo, drafts: drafts, now: time.Now}
}

// Open loads the stored rule set and starts a fresh draft for the session,
// discarding any previous draft.
func (s *Service) Open(ctx context.Context, sessionID string) (*Draft, error) {
	stored, err := s.repo.GetDomainRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("load domain rules: %w", err)
	}
	d := newDraft(normalizeSet(stored), s.now())
	if err := s.drafts.Put(ctx, sessionID, d); err != nil {
		return nil, fmt.Errorf("store draft: %w", err)
	}
	return d, nil
}

// Draft returns the session's current draft, opening one if needed.
func (s *Service) Draft(ctx context.Context, sessionID string) (*Draft, error) {
	d, err := s.drafts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if d == nil {
		return s.Open(ctx, sessionID)
	}
	return d, nil
}

// SetEnabled toggles rule enforcement in the draft.
func (s *Service) SetEnabled(ctx context.Context, sessionID string, enabled bool) (*Draft, error) {
	return s.mutate(ctx, sessionID, func(r domain.DomainRuleSet) (domain.DomainRuleSet, error) {
		r.Enabled = enabled
		return r, nil
	})
}

// Add appends a domain to one of the draft's lists. Validation and
// duplicate failures leave the draft untouched.
func (s *Service) Add(ctx context.Context, sessionID string, kind domain.ListKind, raw string) (*Draft, error) {
	return s.mutate(ctx, sessionID, func(r domain.DomainRuleSet) (domain.DomainRuleSet, error) {
		return Apply(r, kind, raw, false)
	})
}

// Remove drops a domain from one of the draft's lists.
func (s *Service) Remove(ctx context.Context, sessionID string, kind domain.ListKind, d string) (*Draft, error) {
	return s.mutate(ctx, sessionID, func(r domain.DomainRuleSet) (domain.DomainRuleSet, error) {
		return Apply(r, kind, d, true)
	})
}

// Save persists the draft wholesale. On failure the draft is kept and
// stays dirty so the editor can offer to retry.
func (s *Service) Save(ctx context.Context, sessionID string) (*Draft, error) {
	d, err := s.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveDomainRules(ctx, d.Rules); err != nil {
		return d, fmt.Errorf("save domain rules: %w", err)
	}
	now := s.now()
	d.Saved = d.Rules.Clone()
	d.SavedAt = &now
	if err := s.drafts.Put(ctx, sessionID, d); err != nil {
		return d, fmt.Errorf("store draft: %w", err)
	}
	return d, nil
}

// Discard drops the session's draft.
func (s *Service) Discard(ctx context.Context, sessionID string) error {
	return s.drafts.Delete(ctx, sessionID)
}

// Preview evaluates a sender against the session's draft, saved or not.
func (s *Service) Preview(ctx context.Context, sessionID, sender string) (domain.Decision, error) {
	d, err := s.Draft(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return Evaluate(d.Rules, SenderDomain(sender)), nil
}

// Check evaluates a sender against the stored rule set.
func (s *Service) Check(ctx context.Context, sender string) (domain.Decision, error) {
	rules, err := s.repo.GetDomainRules(ctx)
	if err != nil {
		return "", fmt.Errorf("load domain rules: %w", err)
	}
	return Evaluate(rules, SenderDomain(sender)), nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(domain.DomainRuleSet) (domain.DomainRuleSet, error)) (*Draft, error) {
	d, err := s.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	next, err := fn(d.Rules)
	if err != nil {
		return d, err
	}
	d.Rules = next
	if err := s.drafts.Put(ctx, sessionID, d); err != nil {
		return nil, fmt.Errorf("store draft: %w", err)
	}
	return d, nil
}

// normalizeSet rewrites stored lists into normalized, duplicate-free form.
func normalizeSet(r domain.DomainRuleSet) domain.DomainRuleSet {
	out := domain.DomainRuleSet{Enabled: r.Enabled, Whitelist: []string{}, Blacklist: []string{}}
	for _, d := range r.Whitelist {
		out.Whitelist, _ = AddToList(out.Whitelist, d)
	}
	for _, d := range r.Blacklist {
		out.Blacklist, _ = AddToList(out.Blacklist, d)
	}
	return out
}
