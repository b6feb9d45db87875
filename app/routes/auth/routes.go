package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"feetrack-schools/app/config"
)

// SetupAuthRoutes registers the auth endpoints.
func SetupAuthRoutes(app *fiber.App) {
	authAPI := app.Group("/api/auth")

	authAPI.Post("/login", func(c *fiber.Ctx) error {
		return LoginAPI(c, config.GetDB())
	})

	authAPI.Post("/change-password", AuthMiddleware, func(c *fiber.Ctx) error {
		return ChangePasswordAPI(c, config.GetDB())
	})

	authAPI.Get("/me", AuthMiddleware, MeAPI)
}

// AuthMiddleware validates the bearer token and sets the user context.
func AuthMiddleware(c *fiber.Ctx) error {
	var tokenString string
	if header := c.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		tokenString = strings.TrimPrefix(header, "Bearer ")
	}
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "No token found",
		})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid token",
		})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_name", strings.TrimSpace(claims.FirstName+" "+claims.LastName))
	c.Locals("user_role", claims.Role)
	return c.Next()
}

// RoleMiddleware restricts a route to the given roles.
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Insufficient permissions",
		})
	}
}
