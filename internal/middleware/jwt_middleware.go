package middleware

import (
	"log"
	"strings"

	"gamestore/internal/repositories"
	"gamestore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware that checks for a valid JWT token,
// rejects revoked tokens when a blacklist is configured, and loads the
// token's user so every downstream handler works with a confirmed identity.
func AuthRequired(authService *services.AuthService, blacklist repositories.TokenBlacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Not authorized, no token",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		tokenString := parts[1]

		if blacklist != nil {
			revoked, err := blacklist.IsRevoked(c.Context(), tokenString)
			if err != nil {
				log.Printf("Token blacklist check failed: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"message": "Server error",
				})
			}
			if revoked {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "Not authorized, token invalid",
				})
			}
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Not authorized, token invalid",
			})
		}

		userID, _ := claims["user_id"].(string)
		user, err := authService.GetUserByID(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}

		// Store the resolved identity for subsequent handlers
		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)
		c.Locals("token", tokenString)

		// Continue to the next handler
		return c.Next()
	}
}
