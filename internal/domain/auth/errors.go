package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when login or password do not match
	// an active user
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for a malformed, forged or expired token
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrSessionMismatch is returned when a token verifies but no session
	// matches its device and issued-at: the token was rotated, the session
	// was deleted, or the user is gone
	ErrSessionMismatch = errors.New("session not found or token reused")
	// ErrInvalidBody is returned when the request body cannot be parsed
	ErrInvalidBody = errors.New("invalid request body")
)
