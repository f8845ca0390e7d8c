package suggestionRoutes

import (
	controller "sdesk/controllers/suggestion"
	"sdesk/middleware"
	"sdesk/models"
	validator "sdesk/validators/suggestion"

	"github.com/gofiber/fiber/v2"
)

func SetupSuggestionRoutes(app *fiber.App) {
	suggestion := app.Group("/suggestions")

	staff := middleware.RequireRole(models.RoleAdmin, models.RoleCounselor, models.RoleAdvisor)

	suggestion.Post("/", middleware.JWTMiddleware, validator.SubmitSuggestion(), controller.SubmitSuggestion)
	suggestion.Get("/", middleware.JWTMiddleware, staff, controller.SuggestionList)
	suggestion.Post("/:id/approve", middleware.JWTMiddleware, staff, controller.ApproveSuggestion)
	suggestion.Post("/:id/reject", middleware.JWTMiddleware, staff, controller.RejectSuggestion)
}
