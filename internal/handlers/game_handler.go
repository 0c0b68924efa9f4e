package handlers

import (
	"fmt"
	"log"

	"gamestore/internal/models"
	"gamestore/internal/repositories"
	"gamestore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GameHandler handles HTTP requests for the catalog.
type GameHandler struct {
	gameService   *services.GameService
	uploadService *services.UploadService
	validate      *validator.Validate
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(gameService *services.GameService, uploadService *services.UploadService) *GameHandler {
	return &GameHandler{
		gameService:   gameService,
		uploadService: uploadService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *GameHandler) RegisterRoutes(router fiber.Router) {
	gameRoutes := router.Group("/games")
	gameRoutes.Get("/", h.HandleListGames)
	gameRoutes.Get("/tags/all", h.HandleListTags)
	gameRoutes.Get("/slug/:slug", h.HandleGetGameBySlug)
	gameRoutes.Get("/:id", h.HandleGetGameByID)
}

// RegisterProtectedRoutes registers the catalog mutation routes.
func (h *GameHandler) RegisterProtectedRoutes(router fiber.Router) {
	gameRoutes := router.Group("/games")
	gameRoutes.Post("/", h.HandleCreateGame)
	gameRoutes.Put("/:id", h.HandleUpdateGame)
	gameRoutes.Delete("/:id", h.HandleDeleteGame)
	gameRoutes.Post("/:id/images", h.HandleUploadImage)
}

// HandleListGames returns a page of games with optional tag, featured and
// search filters.
func (h *GameHandler) HandleListGames(c *fiber.Ctx) error {
	filter := repositories.GameFilter{
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 12),
		Tag:      c.Query("tag"),
		Featured: c.Query("featured") == "true",
		Search:   c.Query("search"),
		Sort:     c.Query("sort", "-createdAt"),
	}

	games, total, err := h.gameService.ListGames(filter)
	if err != nil {
		return fail(c, err)
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 12
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pages := (total + int64(limit) - 1) / int64(limit)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    games,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	})
}

// HandleGetGameByID retrieves a single game by its ID.
func (h *GameHandler) HandleGetGameByID(c *fiber.Ctx) error {
	game, err := h.gameService.GetGameByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    game,
	})
}

// HandleGetGameBySlug retrieves a single game by its slug.
func (h *GameHandler) HandleGetGameBySlug(c *fiber.Ctx) error {
	game, err := h.gameService.GetGameBySlug(c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    game,
	})
}

// HandleListTags returns every tag in use, sorted.
func (h *GameHandler) HandleListTags(c *fiber.Ctx) error {
	tags, err := h.gameService.ListTags()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    tags,
	})
}

// HandleCreateGame creates a new catalog entry.
func (h *GameHandler) HandleCreateGame(c *fiber.Ctx) error {
	var game models.Game
	if err := c.BodyParser(&game); err != nil {
		log.Printf("Error parsing game request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(game); err != nil {
		return validationFailed(c, err)
	}

	if err := h.gameService.CreateGame(&game); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    game,
	})
}

// HandleUpdateGame updates an existing catalog entry. The slug never
// changes once set.
func (h *GameHandler) HandleUpdateGame(c *fiber.Ctx) error {
	var game models.Game
	if err := c.BodyParser(&game); err != nil {
		log.Printf("Error parsing game request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	game.ID = c.Params("id")

	if err := h.validate.Struct(game); err != nil {
		return validationFailed(c, err)
	}

	if err := h.gameService.UpdateGame(&game); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    game,
	})
}

// HandleDeleteGame deletes a catalog entry.
func (h *GameHandler) HandleDeleteGame(c *fiber.Ctx) error {
	if err := h.gameService.DeleteGame(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Game deleted successfully",
	})
}

// HandleUploadImage uploads a multipart image to object storage and records
// it on the game; `header=true` replaces the header image instead of
// appending to the gallery.
func (h *GameHandler) HandleUploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Missing image file",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer file.Close()

	asHeader := c.FormValue("header") == "true"
	game, err := h.uploadService.AddGameImage(c.Context(), c.Params("id"), file, asHeader)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    game,
	})
}

// validationFailed renders validator errors as a field->message map.
func validationFailed(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
