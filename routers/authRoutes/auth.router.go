package authRoutes

import (
	controller "sdesk/controllers/auth"
	"sdesk/middleware"
	validator "sdesk/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/login", validator.Login(), controller.Login)
	auth.Get("/profile", middleware.JWTMiddleware, controller.Profile)
}
