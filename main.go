package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"

	"feetrack-schools/app/config"
	"feetrack-schools/app/database"
	"feetrack-schools/app/routes/auth"
	"feetrack-schools/app/routes/feerecords"
	"feetrack-schools/app/routes/students"
	"feetrack-schools/app/services"
)

// apiErrorHandler renders every error as the standard JSON envelope.
func apiErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Monetary amounts go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background scheduler
	sched := services.StartScheduler(config.GetDB())
	defer sched.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "FeeTrack Schools",
		ErrorHandler: apiErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})

	// Routes
	auth.SetupAuthRoutes(app)
	feerecords.SetupFeeRecordsRoutes(app)
	students.SetupStudentsRoutes(app)

	log.Fatal(app.Listen(":" + config.Port()))
}
