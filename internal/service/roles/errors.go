package roles

import "errors"

var (
	// ErrValidation is returned when a role fails local validation.
	ErrValidation = errors.New("invalid role")

	// ErrSystemRole is returned when deleting a built-in role.
	ErrSystemRole = errors.New("built-in roles cannot be deleted")
)
