package students

import (
	"github.com/gofiber/fiber/v2"

	"feetrack-schools/app/config"
	"feetrack-schools/app/routes/auth"
)

// SetupStudentsRoutes registers the student lookup endpoints.
func SetupStudentsRoutes(app *fiber.App) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetStudentsAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetStudentByIDAPI(c, config.GetDB())
	})

	api.Post("/", auth.RoleMiddleware("admin", "bursar"), func(c *fiber.Ctx) error {
		return CreateStudentAPI(c, config.GetDB())
	})
}
