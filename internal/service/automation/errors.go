package automation

import "errors"

var (
	// ErrValidation is returned when a draft fails local validation.
	ErrValidation = errors.New("invalid automation")

	// ErrNotFound is returned when an automation ID is not in the tenant's list.
	ErrNotFound = errors.New("automation not found")

	// ErrRunInProgress is returned when the same automation was triggered
	// moments ago and the request is treated as a duplicate.
	ErrRunInProgress = errors.New("automation run already triggered")
)
