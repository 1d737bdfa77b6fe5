package post

import (
	"errors"

	"blogger-platform/internal/domain/auth"
	"blogger-platform/internal/domain/blog"
	"blogger-platform/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	posts Service
}

func NewHandler(posts Service) *Handler {
	return &Handler{posts: posts}
}

// List handles GET /posts
func (h *Handler) List(c *fiber.Ctx) error {
	page, err := h.posts.ListPosts(utils.ParsePageQuery(c), callerID(c))
	if err != nil {
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

// ListByBlog handles GET /blogs/:blogId/posts
func (h *Handler) ListByBlog(c *fiber.Ctx) error {
	page, err := h.posts.ListByBlog(c.Params("blogId"), utils.ParsePageQuery(c), callerID(c))
	if err != nil {
		if errors.Is(err, blog.ErrBlogNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

// Get handles GET /posts/:id
func (h *Handler) Get(c *fiber.Ctx) error {
	view, err := h.posts.GetPost(c.Params("id"), callerID(c))
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// Create handles POST /posts
func (h *Handler) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}
	if errs := validate(req, true); len(errs) > 0 {
		return utils.FieldErrorResponse(c, errs...)
	}

	view, err := h.posts.CreatePost(req)
	if err != nil {
		if errors.Is(err, blog.ErrBlogNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// CreateForBlog handles POST /blogs/:blogId/posts
func (h *Handler) CreateForBlog(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}
	req.BlogID = c.Params("blogId")
	if errs := validate(req, false); len(errs) > 0 {
		return utils.FieldErrorResponse(c, errs...)
	}

	view, err := h.posts.CreatePost(req)
	if err != nil {
		if errors.Is(err, blog.ErrBlogNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Update handles PUT /posts/:id
func (h *Handler) Update(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}
	if errs := validate(req, true); len(errs) > 0 {
		return utils.FieldErrorResponse(c, errs...)
	}

	if err := h.posts.UpdatePost(c.Params("id"), req.BlogID, req); err != nil {
		if errors.Is(err, ErrPostNotFound) || errors.Is(err, blog.ErrBlogNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateForBlog handles PUT /blogs/:blogId/posts/:postId
func (h *Handler) UpdateForBlog(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}
	if errs := validate(req, false); len(errs) > 0 {
		return utils.FieldErrorResponse(c, errs...)
	}

	if err := h.posts.UpdatePost(c.Params("postId"), c.Params("blogId"), req); err != nil {
		if errors.Is(err, ErrPostNotFound) || errors.Is(err, blog.ErrBlogNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteByID handles DELETE /posts/:id
func (h *Handler) DeleteByID(c *fiber.Ctx) error {
	if err := h.posts.DeletePostByID(c.Params("id")); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete handles DELETE /blogs/:blogId/posts/:postId
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.posts.DeletePost(c.Params("postId"), c.Params("blogId")); err != nil {
		if errors.Is(err, ErrPostNotFound) || errors.Is(err, blog.ErrBlogNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetLikeStatus handles PUT /posts/:id/like-status
func (h *Handler) SetLikeStatus(c *fiber.Ctx) error {
	identity := auth.GetIdentity(c)
	if identity == nil {
		return utils.ErrorResponse(c, utils.ErrUnauthorized)
	}

	var req LikeRequest
	if err := c.BodyParser(&req); err != nil || !req.LikeStatus.IsValid() {
		return utils.FieldErrorResponse(c, utils.FieldError{
			Message: "likeStatus must be None, Like or Dislike",
			Field:   "likeStatus",
		})
	}

	err := h.posts.SetLikeStatus(c.Params("id"), identity.UserID, identity.Login, req.LikeStatus)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func callerID(c *fiber.Ctx) string {
	if identity := auth.GetIdentity(c); identity != nil {
		return identity.UserID
	}
	return ""
}

func validate(req CreateRequest, requireBlogID bool) []utils.FieldError {
	var errs []utils.FieldError
	if req.Title == "" || len(req.Title) > 30 {
		errs = append(errs, utils.FieldError{Message: "title must be 1-30 characters", Field: "title"})
	}
	if req.ShortDescription == "" || len(req.ShortDescription) > 100 {
		errs = append(errs, utils.FieldError{Message: "shortDescription must be 1-100 characters", Field: "shortDescription"})
	}
	if req.Content == "" || len(req.Content) > 1000 {
		errs = append(errs, utils.FieldError{Message: "content must be 1-1000 characters", Field: "content"})
	}
	if requireBlogID && req.BlogID == "" {
		errs = append(errs, utils.FieldError{Message: "blogId is required", Field: "blogId"})
	}
	return errs
}
