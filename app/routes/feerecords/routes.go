package feerecords

import (
	"github.com/gofiber/fiber/v2"

	"feetrack-schools/app/config"
	"feetrack-schools/app/routes/auth"
)

// SetupFeeRecordsRoutes registers the fee record endpoints. All routes
// require authentication; import is restricted to admins and bursars.
func SetupFeeRecordsRoutes(app *fiber.App) {
	api := app.Group("/api/fee-records")
	api.Use(auth.AuthMiddleware)

	// Fixed paths before /:id so they are not captured as ids.
	api.Get("/stats", func(c *fiber.Ctx) error {
		return GetFeeStatsAPI(c, config.GetDB())
	})

	api.Post("/import", auth.RoleMiddleware("admin", "bursar"), func(c *fiber.Ctx) error {
		return ImportFeeRecordsAPI(c, config.GetDB())
	})

	api.Get("/", func(c *fiber.Ctx) error {
		return GetFeeRecordsAPI(c, config.GetDB())
	})

	api.Post("/", auth.RoleMiddleware("admin", "bursar"), func(c *fiber.Ctx) error {
		return CreateFeeRecordAPI(c, config.GetDB())
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetFeeRecordByIDAPI(c, config.GetDB())
	})

	api.Post("/:id/payments", auth.RoleMiddleware("admin", "bursar"), func(c *fiber.Ctx) error {
		return AddPaymentAPI(c, config.GetDB())
	})

	api.Post("/:id/notes", func(c *fiber.Ctx) error {
		return AddNoteAPI(c, config.GetDB())
	})
}
