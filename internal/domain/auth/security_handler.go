package auth

import (
	"errors"
	"time"

	"blogger-platform/internal/domain/session"
	"blogger-platform/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// SecurityHandler serves the security-devices endpoints. All routes sit
// behind RefreshGuard, so a currently-matching refresh token is the proof of
// an active session. Terminated devices are also written to the revocation
// store so their outstanding access tokens stop working.
type SecurityHandler struct {
	sessions      session.Service
	revocations   RevocationStore
	revocationTTL time.Duration
}

func NewSecurityHandler(sessions session.Service, revocations RevocationStore, revocationTTL time.Duration) *SecurityHandler {
	return &SecurityHandler{
		sessions:      sessions,
		revocations:   revocations,
		revocationTTL: revocationTTL,
	}
}

// ListDevices handles GET /security/devices
func (h *SecurityHandler) ListDevices(c *fiber.Ctx) error {
	claims := GetRefreshClaims(c)
	if claims == nil {
		return utils.ErrorResponse(c, utils.ErrUnauthorized)
	}

	sessions, err := h.sessions.ListForUser(claims.UserID)
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}

	views := make([]session.DeviceView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, s.ToDeviceView())
	}

	return c.Status(fiber.StatusOK).JSON(views)
}

// TerminateOthers handles DELETE /security/devices, deleting every session
// of the caller except the calling device's
func (h *SecurityHandler) TerminateOthers(c *fiber.Ctx) error {
	claims := GetRefreshClaims(c)
	if claims == nil {
		return utils.ErrorResponse(c, utils.ErrUnauthorized)
	}

	terminated, err := h.sessions.TerminateOtherSessions(claims.UserID, claims.DeviceID)
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	for _, deviceID := range terminated {
		revokeDevice(h.revocations, deviceID, h.revocationTTL)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// TerminateDevice handles DELETE /security/devices/:deviceId. Ownership
// violations surface as 403, distinct from authentication failures.
func (h *SecurityHandler) TerminateDevice(c *fiber.Ctx) error {
	claims := GetRefreshClaims(c)
	if claims == nil {
		return utils.ErrorResponse(c, utils.ErrUnauthorized)
	}

	deviceID := c.Params("deviceId")
	if deviceID == "" {
		return utils.ErrorResponse(c, utils.ErrNotFound)
	}

	if err := h.sessions.TerminateDeviceSession(claims.UserID, deviceID); err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			return utils.ErrorResponse(c, utils.ErrNotFound)
		case errors.Is(err, session.ErrForbidden):
			return utils.ErrorResponse(c, utils.ErrForbidden)
		default:
			return utils.ErrorResponse(c, utils.ErrInternalServer)
		}
	}

	revokeDevice(h.revocations, deviceID, h.revocationTTL)

	return c.SendStatus(fiber.StatusNoContent)
}
