package faqRoutes

import (
	controller "sdesk/controllers/faq"
	"sdesk/middleware"
	"sdesk/models"
	validator "sdesk/validators/faq"

	"github.com/gofiber/fiber/v2"
)

func SetupFAQRoutes(app *fiber.App) {
	faq := app.Group("/faqs")

	staff := middleware.RequireRole(models.RoleAdmin, models.RoleCounselor, models.RoleAdvisor)

	faq.Get("/", middleware.JWTMiddleware, validator.FAQList(), controller.FAQList)
	faq.Get("/:id", middleware.JWTMiddleware, controller.GetFAQ)
	faq.Post("/", middleware.JWTMiddleware, staff, validator.CreateFAQ(), controller.CreateFAQ)
	faq.Put("/:id", middleware.JWTMiddleware, staff, validator.UpdateFAQ(), controller.UpdateFAQ)
	faq.Delete("/:id", middleware.JWTMiddleware, staff, controller.DeleteFAQ)
	faq.Post("/:id/toggle-publish", middleware.JWTMiddleware, staff, controller.TogglePublish)
	faq.Post("/:id/toggle-feature", middleware.JWTMiddleware, staff, controller.ToggleFeature)
	faq.Post("/:id/vote", middleware.JWTMiddleware, validator.VoteFAQ(), controller.VoteFAQ)
	faq.Post("/bulk", middleware.JWTMiddleware, staff, validator.BulkFAQAction(), controller.BulkFAQAction)
}
