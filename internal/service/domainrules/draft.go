package domainrules

import (
	"slices"
	"time"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

// Draft is the rule set being edited together with the last value known
// to be stored. Dirty is true when the two differ.
type Draft struct {
	Rules    domain.DomainRuleSet `json:"rules"`
	Saved    domain.DomainRuleSet `json:"saved"`
	LoadedAt time.Time            `json:"loaded_at"`
	SavedAt  *time.Time           `json:"saved_at,omitempty"`
}

func newDraft(stored domain.DomainRuleSet, now time.Time) *Draft {
	return &Draft{
		Rules:    stored.Clone(),
		Saved:    stored.Clone(),
		LoadedAt: now,
	}
}

// Dirty reports whether the draft has unsaved changes.
func (d *Draft) Dirty() bool {
	return d.Rules.Enabled != d.Saved.Enabled ||
		!slices.Equal(d.Rules.Whitelist, d.Saved.Whitelist) ||
		!slices.Equal(d.Rules.Blacklist, d.Saved.Blacklist)
}
