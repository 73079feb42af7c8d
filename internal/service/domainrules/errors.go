package domainrules

import "errors"

var (
	// ErrValidation is returned when a domain is empty after normalization.
	ErrValidation = errors.New("please enter a valid domain")

	// ErrDuplicate is returned when a domain is already in the target list.
	ErrDuplicate = errors.New("domain already in list")

	// ErrUnknownList is returned for a list name other than whitelist or blacklist.
	ErrUnknownList = errors.New("unknown domain list")
)
