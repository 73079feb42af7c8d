package sso

import "errors"

var (
	// ErrValidation is returned for incomplete or malformed provider settings.
	ErrValidation = errors.New("invalid sso configuration")

	// ErrUnknownProvider is returned for providers other than azure and google.
	ErrUnknownProvider = errors.New("unknown sso provider")

	// ErrInvalidCredentials is returned when the provider rejects the client.
	ErrInvalidCredentials = errors.New("client credentials rejected by provider")

	// ErrNotConfigured is returned when probing a provider with no client ID.
	ErrNotConfigured = errors.New("sso provider not configured")
)
