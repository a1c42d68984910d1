package middleware

import (
	"log"
	"strings"

	"cardshop/internal/apperrors"
	"cardshop/internal/models"
	"cardshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// respond writes a classified error the same way the handler layer does.
func respond(c *fiber.Ctx, err error) error {
	return c.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
		"error": apperrors.ClientMessage(err),
	})
}

// AuthRequired checks for a valid bearer token. A missing or malformed
// Authorization header is 401; a present but invalid/expired token is 403.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return respond(c, apperrors.New(apperrors.Unauthorized, "Unauthorized"))
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return respond(c, apperrors.New(apperrors.Unauthorized, "Unauthorized"))
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return respond(c, err)
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// AdminRequired gates a route to administrators. Must run after
// AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(models.Role)
		if role != models.RoleAdmin {
			return respond(c, apperrors.New(apperrors.Forbidden, "Admin access required"))
		}
		return c.Next()
	}
}
