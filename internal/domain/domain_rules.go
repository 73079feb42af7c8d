package domain

// DomainRuleSet is the tenant's sender-domain policy for inbound email.
// Lists hold normalized domains in insertion order without duplicates.
type DomainRuleSet struct {
	Enabled   bool     `json:"enabled"`
	Whitelist []string `json:"whitelist"`
	Blacklist []string `json:"blacklist"`
}

// Clone returns a deep copy so callers can mutate lists independently.
func (r DomainRuleSet) Clone() DomainRuleSet {
	return DomainRuleSet{
		Enabled:   r.Enabled,
		Whitelist: append([]string{}, r.Whitelist...),
		Blacklist: append([]string{}, r.Blacklist...),
	}
}

// ListKind selects one of the two domain lists.
type ListKind string

const (
	Whitelist ListKind = "whitelist"
	Blacklist ListKind = "blacklist"
)

// Valid reports whether k names a known list.
func (k ListKind) Valid() bool { return k == Whitelist || k == Blacklist }

// Decision is the outcome of evaluating a sender domain.
type Decision string

const (
	Accept Decision = "accept"
	Reject Decision = "reject"
)
