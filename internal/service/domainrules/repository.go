package domainrules

import (
	"context"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

// Repository is the settings collaborator that stores the rule set.
type Repository interface {
	// GetDomainRules returns the stored rule set. A tenant that never saved
	// rules gets a disabled set with empty lists.
	GetDomainRules(ctx context.Context) (domain.DomainRuleSet, error)

	// SaveDomainRules replaces the stored rule set wholesale.
	SaveDomainRules(ctx context.Context, rules domain.DomainRuleSet) error
}

// DraftStore keeps the rule set being edited, one draft per session.
type DraftStore interface {
	// Get returns the session's draft, or nil when there is none.
	Get(ctx context.Context, sessionID string) (*Draft, error)
	Put(ctx context.Context, sessionID string, d *Draft) error
	Delete(ctx context.Context, sessionID string) error
}
