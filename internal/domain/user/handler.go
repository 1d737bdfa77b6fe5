package user

import (
	"errors"
	"strings"

	"blogger-platform/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// Handler serves the super-admin user management endpoints. Routes sit
// behind basic auth; see the router.
type Handler struct {
	users Service
}

func NewHandler(users Service) *Handler {
	return &Handler{users: users}
}

// List handles GET /sa/users
func (h *Handler) List(c *fiber.Ctx) error {
	page, err := h.users.ListUsers(
		utils.ParsePageQuery(c),
		c.Query("searchLoginTerm"),
		c.Query("searchEmailTerm"),
	)
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

// Get handles GET /sa/users/:id
func (h *Handler) Get(c *fiber.Ctx) error {
	view, err := h.users.GetUser(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// Create handles POST /sa/users
func (h *Handler) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}
	if errs := validateCreate(req); len(errs) > 0 {
		return utils.FieldErrorResponse(c, errs...)
	}

	view, err := h.users.CreateUser(req)
	if err != nil {
		switch {
		case errors.Is(err, ErrLoginExists):
			return utils.FieldErrorResponse(c, utils.FieldError{Message: err.Error(), Field: "login"})
		case errors.Is(err, ErrEmailExists):
			return utils.FieldErrorResponse(c, utils.FieldError{Message: err.Error(), Field: "email"})
		default:
			return utils.ErrorResponse(c, utils.ErrInternalServer)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Delete handles DELETE /sa/users/:id
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.users.DeleteUser(c.Params("id")); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func validateCreate(req CreateRequest) []utils.FieldError {
	var errs []utils.FieldError
	if len(req.Login) < 3 || len(req.Login) > 10 {
		errs = append(errs, utils.FieldError{Message: "login must be 3-10 characters", Field: "login"})
	}
	if len(req.Email) < 3 || !strings.Contains(req.Email, "@") {
		errs = append(errs, utils.FieldError{Message: "email is not valid", Field: "email"})
	}
	if len(req.Password) < 6 || len(req.Password) > 20 {
		errs = append(errs, utils.FieldError{Message: "password must be 6-20 characters", Field: "password"})
	}
	return errs
}
