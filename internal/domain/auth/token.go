package auth

import (
	"time"

	"blogger-platform/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims carried by access tokens. DeviceID ties the
// token to the device session it was issued for, so revoking the device also
// kills outstanding access tokens.
type AccessClaims struct {
	UserID   string `json:"userId"`
	Login    string `json:"login"`
	DeviceID string `json:"deviceId"`
	jwt.RegisteredClaims
}

// RefreshClaims are the claims carried by refresh tokens. IssuedAt is the
// rotation key matched against the session's last active date.
type RefreshClaims struct {
	UserID   string `json:"userId"`
	DeviceID string `json:"deviceId"`
	jwt.RegisteredClaims
}

// TokenCodec creates and verifies the signed, time-boxed token pair. Access
// and refresh tokens are signed with distinct keys so one can never stand in
// for the other. Pure functions, no I/O.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenCodec creates a TokenCodec from the auth configuration
func NewTokenCodec(cfg *config.AuthConfig) *TokenCodec {
	return &TokenCodec{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		issuer:        cfg.Issuer,
		accessTTL:     cfg.AccessTTL(),
		refreshTTL:    cfg.RefreshTTL(),
	}
}

// RefreshTTL returns the refresh token lifetime, which is also the cookie
// max-age
func (tc *TokenCodec) RefreshTTL() time.Duration {
	return tc.refreshTTL
}

// AccessTTL returns the access token lifetime, which is also how long a
// device revocation has to outlive the session
func (tc *TokenCodec) AccessTTL() time.Duration {
	return tc.accessTTL
}

// IssueAccessToken signs a short-lived access token bound to a device session
func (tc *TokenCodec) IssueAccessToken(userID, login, deviceID string) (string, error) {
	now := time.Now().Truncate(time.Second)

	claims := AccessClaims{
		UserID:   userID,
		Login:    login,
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tc.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.accessSecret)
}

// IssueRefreshToken signs a refresh token bound to one device session and
// returns its issued-at timestamp, second precision, which becomes the
// session's last active date.
func (tc *TokenCodec) IssueRefreshToken(userID, deviceID string) (string, time.Time, error) {
	now := time.Now().Truncate(time.Second)

	claims := RefreshClaims{
		UserID:   userID,
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tc.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.refreshTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tc.refreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, now, nil
}

// VerifyAccess checks signature and expiry of an access token
func (tc *TokenCodec) VerifyAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return tc.accessSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh checks signature and expiry of a refresh token
func (tc *TokenCodec) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return tc.refreshSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// DecodeRefresh reads claims without verifying the signature. Only used to
// read the issued-at off a token this process just minted.
func (tc *TokenCodec) DecodeRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
