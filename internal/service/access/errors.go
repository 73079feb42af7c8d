package access

import (
	"errors"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

var (
	// ErrAccessDenied is returned when a basic-plan session asks for a pro feature.
	ErrAccessDenied = errors.New("feature requires pro plan")

	// ErrUnknownPath is returned when a navigation target is not in the menu.
	ErrUnknownPath = errors.New("unknown navigation path")
)

// DeniedError names the feature that was refused. It matches
// ErrAccessDenied under errors.Is.
type DeniedError struct {
	Feature domain.FeatureKey
}

func (e *DeniedError) Error() string {
	return ErrAccessDenied.Error() + ": " + string(e.Feature)
}

func (e *DeniedError) Is(target error) bool { return target == ErrAccessDenied }
