package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"blogger-platform/internal/domain/session"
	"blogger-platform/internal/utils"
	"github.com/gofiber/fiber/v2"
)

const (
	// IdentityKey is the key used to store the identity in Fiber context
	IdentityKey = "identity"
	// RefreshClaimsKey is the key used to store verified refresh claims in
	// Fiber context
	RefreshClaimsKey = "refresh_claims"
	// RefreshCookieName is the cookie carrying the refresh token
	RefreshCookieName = "refreshToken"
)

// BearerMiddleware authenticates requests with an access token from the
// Authorization header and attaches the resolved Identity to the context.
// A token whose device session was revoked is rejected like any other bad
// token; verification failures all collapse into the same 401.
func BearerMiddleware(codec *TokenCodec, revocations RevocationStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := bearerClaims(c, codec, revocations)
		if !ok {
			return utils.ErrorResponse(c, utils.ErrUnauthorized)
		}

		c.Locals(IdentityKey, &Identity{UserID: claims.UserID, Login: claims.Login})
		return c.Next()
	}
}

// OptionalBearerMiddleware attaches an Identity when a valid access token is
// present and lets the request through anonymously otherwise. Public list
// endpoints use it to personalize like statuses.
func OptionalBearerMiddleware(codec *TokenCodec, revocations RevocationStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, ok := bearerClaims(c, codec, revocations); ok {
			c.Locals(IdentityKey, &Identity{UserID: claims.UserID, Login: claims.Login})
		}
		return c.Next()
	}
}

func bearerClaims(c *fiber.Ctx, codec *TokenCodec, revocations RevocationStore) (*AccessClaims, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, false
	}

	claims, err := codec.VerifyAccess(parts[1])
	if err != nil {
		slog.Debug("bearer token rejected", "reason", "verification failed")
		return nil, false
	}

	if deviceRevoked(revocations, claims.DeviceID) {
		slog.Debug("bearer token rejected", "reason", "device revoked", "device_id", claims.DeviceID)
		return nil, false
	}
	return claims, true
}

// RefreshGuard authenticates requests with the refresh token cookie. Besides
// verifying the signature it requires a session whose last active date
// matches the token's issued-at, so a rotated token fails here exactly as it
// would on refresh. Verified claims are attached to the context.
func RefreshGuard(codec *TokenCodec, sessions session.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(RefreshCookieName)
		if cookie == "" {
			return utils.ErrorResponse(c, utils.ErrUnauthorized)
		}

		claims, err := codec.VerifyRefresh(cookie)
		if err != nil {
			slog.Debug("refresh cookie rejected", "reason", "verification failed")
			return utils.ErrorResponse(c, utils.ErrUnauthorized)
		}

		if _, err := sessions.FindByDeviceAndDate(claims.DeviceID, claims.IssuedAt.Time); err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				slog.Debug("refresh cookie rejected", "reason", "session mismatch", "device_id", claims.DeviceID)
				return utils.ErrorResponse(c, utils.ErrUnauthorized)
			}
			return utils.ErrorResponse(c, utils.ErrInternalServer)
		}

		c.Locals(RefreshClaimsKey, claims)
		return c.Next()
	}
}

// GetIdentity retrieves the Identity stored in the Fiber context, or nil
func GetIdentity(c *fiber.Ctx) *Identity {
	identity, ok := c.Locals(IdentityKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// GetRefreshClaims retrieves the verified refresh claims stored by
// RefreshGuard, or nil
func GetRefreshClaims(c *fiber.Ctx) *RefreshClaims {
	claims, ok := c.Locals(RefreshClaimsKey).(*RefreshClaims)
	if !ok {
		return nil
	}
	return claims
}

// BasicAuthMiddleware guards the super-admin endpoints with HTTP Basic
// credentials from configuration. Comparison is constant-time.
func BasicAuthMiddleware(login, password string) fiber.Handler {
	expected := []byte(login + ":" + password)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Basic" {
			return utils.ErrorResponse(c, utils.ErrUnauthorized)
		}

		decoded, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return utils.ErrorResponse(c, utils.ErrUnauthorized)
		}

		if subtle.ConstantTimeCompare(decoded, expected) != 1 {
			slog.Debug("basic auth rejected")
			return utils.ErrorResponse(c, utils.ErrUnauthorized)
		}
		return c.Next()
	}
}
