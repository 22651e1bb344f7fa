package routes

import (
	"Bizonii-Backend/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles the controllers and the authentication middleware.
type Handlers struct {
	Auth        fiber.Handler
	Forms       *controllers.FormController
	Submissions *controllers.SubmissionController
	Users       *controllers.UserController
	Jobs        *controllers.JobsController
}

func InitRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	userRoutes(api, h)
	formRoutes(api, h)
	jobRoutes(api, h)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
