package blog

import (
	"errors"

	"blogger-platform/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	blogs Service
}

func NewHandler(blogs Service) *Handler {
	return &Handler{blogs: blogs}
}

// List handles GET /blogs
func (h *Handler) List(c *fiber.Ctx) error {
	query := utils.ParsePageQuery(c)
	searchNameTerm := c.Query("searchNameTerm")

	page, err := h.blogs.ListBlogs(query, searchNameTerm)
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

// Get handles GET /blogs/:id
func (h *Handler) Get(c *fiber.Ctx) error {
	b, err := h.blogs.GetBlog(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrBlogNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusOK).JSON(b.ToView())
}

// Create handles POST /blogs
func (h *Handler) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}
	if errs := validate(req); len(errs) > 0 {
		return utils.FieldErrorResponse(c, errs...)
	}

	b, err := h.blogs.CreateBlog(req)
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusCreated).JSON(b.ToView())
}

// Update handles PUT /blogs/:id
func (h *Handler) Update(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}
	if errs := validate(req); len(errs) > 0 {
		return utils.FieldErrorResponse(c, errs...)
	}

	if err := h.blogs.UpdateBlog(c.Params("id"), req); err != nil {
		if errors.Is(err, ErrBlogNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete handles DELETE /blogs/:id
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.blogs.DeleteBlog(c.Params("id")); err != nil {
		if errors.Is(err, ErrBlogNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func validate(req CreateRequest) []utils.FieldError {
	var errs []utils.FieldError
	if req.Name == "" || len(req.Name) > 15 {
		errs = append(errs, utils.FieldError{Message: "name must be 1-15 characters", Field: "name"})
	}
	if len(req.Description) > 500 {
		errs = append(errs, utils.FieldError{Message: "description must be at most 500 characters", Field: "description"})
	}
	if req.WebsiteURL == "" || len(req.WebsiteURL) > 100 {
		errs = append(errs, utils.FieldError{Message: "websiteUrl must be 1-100 characters", Field: "websiteUrl"})
	}
	return errs
}
