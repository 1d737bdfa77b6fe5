package auth

import (
	"errors"
	"strings"
	"time"

	"blogger-platform/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// refreshCookiePath scopes the cookie to the API family that consumes it:
// the refresh/logout endpoints and the security-devices endpoints.
const refreshCookiePath = "/api"

type Handler struct {
	authService AuthService
}

// NewHandler creates a new Handler with the provided AuthService
func NewHandler(s AuthService) *Handler {
	return &Handler{authService: s}
}

// Registration handles POST /auth/registration
func (h *Handler) Registration(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}

	if errs := validateRegistration(req); len(errs) > 0 {
		return utils.FieldErrorResponse(c, errs...)
	}

	if err := h.authService.Register(req); err != nil {
		switch {
		case errors.Is(err, ErrLoginTaken):
			return utils.FieldErrorResponse(c, utils.FieldError{Message: err.Error(), Field: "login"})
		case errors.Is(err, ErrEmailTaken):
			return utils.FieldErrorResponse(c, utils.FieldError{Message: err.Error(), Field: "email"})
		default:
			return utils.ErrorResponse(c, utils.ErrInternalServer)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmRegistration handles POST /auth/registration-confirmation
func (h *Handler) ConfirmRegistration(c *fiber.Ctx) error {
	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}

	if err := h.authService.ConfirmRegistration(req.Code); err != nil {
		switch {
		case errors.Is(err, ErrInvalidConfirmationCode),
			errors.Is(err, ErrAlreadyConfirmed),
			errors.Is(err, ErrConfirmationExpired):
			return utils.FieldErrorResponse(c, utils.FieldError{Message: err.Error(), Field: "code"})
		default:
			return utils.ErrorResponse(c, utils.ErrInternalServer)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ResendConfirmation handles POST /auth/registration-email-resending
func (h *Handler) ResendConfirmation(c *fiber.Ctx) error {
	var req EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}

	if err := h.authService.ResendConfirmationEmail(req.Email); err != nil {
		switch {
		case errors.Is(err, ErrEmailNotFound), errors.Is(err, ErrAlreadyConfirmed):
			return utils.FieldErrorResponse(c, utils.FieldError{Message: err.Error(), Field: "email"})
		default:
			return utils.ErrorResponse(c, utils.ErrInternalServer)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Login handles POST /auth/login. The access token travels in the body; the
// refresh token only ever leaves as an http-only secure cookie.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}

	res, err := h.authService.Login(req.LoginOrEmail, req.Password, c.IP(), c.Get("User-Agent"))
	if err != nil {
		return unauthorized(c, err)
	}

	setRefreshCookie(c, res.Pair.RefreshToken, res.RefreshTTL)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"accessToken": res.Pair.AccessToken,
	})
}

// RefreshToken handles POST /auth/refresh-token, replacing the cookie with
// the rotated token
func (h *Handler) RefreshToken(c *fiber.Ctx) error {
	oldToken := c.Cookies(RefreshCookieName)
	if oldToken == "" {
		return utils.ErrorResponse(c, utils.ErrUnauthorized)
	}

	res, err := h.authService.Refresh(oldToken)
	if err != nil {
		return unauthorized(c, err)
	}

	setRefreshCookie(c, res.Pair.RefreshToken, res.RefreshTTL)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"accessToken": res.Pair.AccessToken,
	})
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(RefreshCookieName)
	if token == "" {
		return utils.ErrorResponse(c, utils.ErrUnauthorized)
	}

	if err := h.authService.Logout(token); err != nil {
		return unauthorized(c, err)
	}

	clearRefreshCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

// Me handles GET /auth/me
func (h *Handler) Me(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	if identity == nil {
		return utils.ErrorResponse(c, utils.ErrUnauthorized)
	}

	me, err := h.authService.Me(identity.UserID)
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrUnauthorized)
	}

	return c.Status(fiber.StatusOK).JSON(me)
}

// unauthorized collapses every authentication failure into the same 401 so
// callers cannot distinguish expired, reused and forged tokens
func unauthorized(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrSessionMismatch):
		return utils.ErrorResponse(c, utils.ErrUnauthorized)
	default:
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
}

func setRefreshCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		Path:     refreshCookiePath,
		SameSite: "Lax",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
	})
}

func clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		Path:     refreshCookiePath,
		SameSite: "Lax",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

func validateRegistration(req RegisterRequest) []utils.FieldError {
	var errs []utils.FieldError
	if len(req.Login) < 3 || len(req.Login) > 30 {
		errs = append(errs, utils.FieldError{Message: "login must be 3-30 characters", Field: "login"})
	}
	if len(req.Email) < 3 || !strings.Contains(req.Email, "@") {
		errs = append(errs, utils.FieldError{Message: "email is not valid", Field: "email"})
	}
	if len(req.Password) < 6 || len(req.Password) > 72 {
		errs = append(errs, utils.FieldError{Message: "password must be 6-72 characters", Field: "password"})
	}
	return errs
}
