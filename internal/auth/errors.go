package auth

import "errors"

// Workflow errors the HTTP layer maps to status codes. Lower-level
// failures (storage, hashing, delivery transport) are wrapped and
// surface as internal errors instead.
var (
	// ErrInvalidToken covers undecodable, unknown, email-mismatched and
	// already-consumed tokens. The causes are intentionally
	// indistinguishable to the caller.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is distinct from ErrInvalidToken: the token existed
	// and was correctly addressed, it just arrived too late.
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidCredentials is returned for unknown email and wrong
	// password alike, so sign-in cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("credentials not valid")

	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmailTaken maps the storage layer's unique violation on the
	// email column.
	ErrEmailTaken = errors.New("email already registered")

	// ErrDelivery marks outbound email transport failures so callers can
	// tell them apart from internal failures.
	ErrDelivery = errors.New("delivery failed")
)
