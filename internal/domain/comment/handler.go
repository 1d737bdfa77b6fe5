package comment

import (
	"errors"

	"blogger-platform/internal/domain/auth"
	"blogger-platform/internal/domain/post"
	"blogger-platform/internal/utils"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	comments Service
}

func NewHandler(comments Service) *Handler {
	return &Handler{comments: comments}
}

// Get handles GET /comments/:id
func (h *Handler) Get(c *fiber.Ctx) error {
	view, err := h.comments.GetComment(c.Params("id"), callerID(c))
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// ListByPost handles GET /posts/:postId/comments
func (h *Handler) ListByPost(c *fiber.Ctx) error {
	page, err := h.comments.ListByPost(c.Params("postId"), utils.ParsePageQuery(c), callerID(c))
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

// Create handles POST /posts/:postId/comments
func (h *Handler) Create(c *fiber.Ctx) error {
	identity := auth.GetIdentity(c)
	if identity == nil {
		return utils.ErrorResponse(c, utils.ErrUnauthorized)
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}
	if errs := validate(req); len(errs) > 0 {
		return utils.FieldErrorResponse(c, errs...)
	}

	view, err := h.comments.CreateComment(c.Params("postId"), identity.UserID, identity.Login, req.Content)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Update handles PUT /comments/:id
func (h *Handler) Update(c *fiber.Ctx) error {
	identity := auth.GetIdentity(c)
	if identity == nil {
		return utils.ErrorResponse(c, utils.ErrUnauthorized)
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, utils.ErrBadRequest)
	}
	if errs := validate(req); len(errs) > 0 {
		return utils.FieldErrorResponse(c, errs...)
	}

	if err := h.comments.UpdateComment(c.Params("id"), identity.UserID, req.Content); err != nil {
		return h.commandError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete handles DELETE /comments/:id
func (h *Handler) Delete(c *fiber.Ctx) error {
	identity := auth.GetIdentity(c)
	if identity == nil {
		return utils.ErrorResponse(c, utils.ErrUnauthorized)
	}

	if err := h.comments.DeleteComment(c.Params("id"), identity.UserID); err != nil {
		return h.commandError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetLikeStatus handles PUT /comments/:id/like-status
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

	err := h.comments.SetLikeStatus(c.Params("id"), identity.UserID, identity.Login, req.LikeStatus)
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return utils.ErrorResponse(c, utils.ErrNotFound)
		}
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) commandError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrCommentNotFound):
		return utils.ErrorResponse(c, utils.ErrNotFound)
	case errors.Is(err, ErrForbidden):
		return utils.ErrorResponse(c, utils.ErrForbidden)
	default:
		return utils.ErrorResponse(c, utils.ErrInternalServer)
	}
}

func callerID(c *fiber.Ctx) string {
	if identity := auth.GetIdentity(c); identity != nil {
		return identity.UserID
	}
	return ""
}

func validate(req CreateRequest) []utils.FieldError {
	if len(req.Content) < 20 || len(req.Content) > 300 {
		return []utils.FieldError{{Message: "content must be 20-300 characters", Field: "content"}}
	}
	return nil
}
