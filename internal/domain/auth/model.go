package auth

import "time"

// TokenPair is the result of login and refresh; it is never persisted
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult carries the token pair plus the refresh TTL the handler uses
// as the cookie max-age
type LoginResult struct {
	Pair       TokenPair
	RefreshTTL time.Duration
}

// Identity is the authenticated caller attached to the request context by
// the bearer middleware
type Identity struct {
	UserID string
	Login  string
}

// LoginRequest is the login endpoint input
type LoginRequest struct {
	LoginOrEmail string `json:"loginOrEmail"`
	Password     string `json:"password"`
}

// RegisterRequest is the registration endpoint input
type RegisterRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ConfirmRequest carries a registration confirmation code
type ConfirmRequest struct {
	Code string `json:"code"`
}

// EmailRequest carries an email address for confirmation resending
type EmailRequest struct {
	Email string `json:"email"`
}
