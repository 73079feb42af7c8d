package helpdeskapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork marks failures where the helpdesk API could not be reached
	// or answered with a transient server error.
	ErrNetwork = errors.New("helpdesk api unavailable")

	// ErrUnauthorized is returned for a missing, invalid or expired token.
	ErrUnauthorized = errors.New("helpdesk api: unauthorized")

	// ErrNotFound is returned when the addressed resource does not exist.
	ErrNotFound = errors.New("helpdesk api: not found")
)

// APIError is a non-2xx answer from the helpdesk API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("helpdesk api: HTTP %d", e.Status)
	}
	return fmt.Sprintf("helpdesk api: HTTP %d: %s", e.Status, e.Message)
}

// Is maps the status onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Status >= 500 || e.Status == http.StatusTooManyRequests
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Rejected reports whether err is a 4xx answer other than 401, 404 and
// 429, meaning the API refused the request content. The message is safe
// to show.
func Rejected(err error) (*APIError, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return nil, false
	}
	switch {
	case apiErr.Status < 400 || apiErr.Status >= 500:
		return nil, false
	case apiErr.Status == http.StatusUnauthorized,
		apiErr.Status == http.StatusNotFound,
		apiErr.Status == http.StatusTooManyRequests:
		return nil, false
	}
	return apiErr, true
}
