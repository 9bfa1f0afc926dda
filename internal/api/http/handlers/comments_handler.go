package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-desk/internal/api/dto"
	"github.com/spec-kit/request-desk/internal/service"
)

// CommentsHandler manages request comment threads.
type CommentsHandler struct {
	service  *service.CommentService
	validate *validator.Validate
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService, validate *validator.Validate) *CommentsHandler {
	return &CommentsHandler{service: commentService, validate: validate}
}

// ListComments GET /requests/:id/comments.
func (h *CommentsHandler) ListComments(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	comments, err := h.service.ListComments(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"comments": dto.NewCommentResponses(comments)})
}

// AddComment POST /requests/:id/comments.
func (h *CommentsHandler) AddComment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := bindAndValidate(c, h.validate, &req); err != nil {
		return err
	}
	comment, err := h.service.AddComment(c.UserContext(), user, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"comment": dto.NewCommentResponse(*comment)})
}
