package handlers

import (
	"log"

	"gamestore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles HTTP requests for per-game comments.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers the public comment routes.
func (h *CommentHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/games/:id/comments", h.HandleListComments)
}

// RegisterProtectedRoutes registers the comment routes requiring auth.
func (h *CommentHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/games/:id/comments", h.HandleAddComment)
}

// HandleListComments returns a game's comments, newest first.
func (h *CommentHandler) HandleListComments(c *fiber.Ctx) error {
	comments, err := h.commentService.ListByGame(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    comments,
	})
}

// AddCommentRequest represents the request body for posting a comment.
type AddCommentRequest struct {
	Text string `json:"text"`
}

// HandleAddComment appends a comment to a game's page.
func (h *CommentHandler) HandleAddComment(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing comment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	comment, err := h.commentService.AddComment(userID, c.Params("id"), req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    comment,
	})
}
