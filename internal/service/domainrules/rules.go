package domainrules

import (
	"fmt"
	"strings"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

// Normalize trims whitespace, strips one leading "@" and lower-cases the
// rest. A value that still starts with "@" is malformed and normalizes to
// the empty string, which keeps Normalize idempotent.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "@")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "@") {
		return ""
	}
	return strings.ToLower(s)
}

// Contains reports whether the list holds the normalized form of d.
func Contains(list []string, d string) bool {
	d = Normalize(d)
	if d == "" {
		return false
	}
	for _, entry := range list {
		if Normalize(entry) == d {
			return true
		}
	}
	return false
}

// AddToList appends the normalized domain to a copy of list. The input
// slice is never modified.
func AddToList(list []string, raw string) ([]string, error) {
	d := Normalize(raw)
	if d == "" {
		return list, ErrValidation
	}
	if Contains(list, d) {
		return list, fmt.Errorf("%w: %s", ErrDuplicate, d)
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	return append(out, d), nil
}

// RemoveFromList returns a copy of list without the domain. Removing a
// domain that is not present is a no-op.
func RemoveFromList(list []string, d string) []string {
	d = Normalize(d)
	out := make([]string, 0, len(list))
	for _, entry := range list {
		if Normalize(entry) == d {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// Evaluate decides whether mail from senderDomain is accepted.
func Evaluate(rules domain.DomainRuleSet, senderDomain string) domain.Decision {
	if !rules.Enabled {
		return domain.Accept
	}
	d := Normalize(senderDomain)
	if Contains(rules.Blacklist, d) {
		return domain.Reject
	}
	if len(rules.Whitelist) > 0 && !Contains(rules.Whitelist, d) {
		return domain.Reject
	}
	return domain.Accept
}

// SenderDomain returns the domain part of an email address. Bare domains
// are returned unchanged.
func SenderDomain(address string) string {
	address = strings.TrimSpace(address)
	if i := strings.LastIndex(address, "@"); i >= 0 {
		address = address[i+1:]
	}
	return strings.TrimSuffix(Normalize(address), ">")
}

// Apply runs an add or remove against the named list of rules and returns
// the updated copy.
func Apply(rules domain.DomainRuleSet, kind domain.ListKind, raw string, remove bool) (domain.DomainRuleSet, error) {
	if !kind.Valid() {
		return rules, fmt.Errorf("%w: %q", ErrUnknownList, kind)
	}
	out := rules.Clone()
	target := &out.Whitelist
	if kind == domain.Blacklist {
		target = &out.Blacklist
	}
	if remove {
		*target = RemoveFromList(*target, raw)
		return out, nil
	}
	next, err := AddToList(*target, raw)
	if err != nil {
		return rules, fmt.Errorf("%s: %w", kind, err)
	}
	*target = next
	return out, nil
}
