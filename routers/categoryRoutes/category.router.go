package categoryRoutes

import (
	controller "sdesk/controllers/category"
	"sdesk/middleware"
	"sdesk/models"
	validator "sdesk/validators/category"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App) {
	category := app.Group("/categories")

	category.Get("/", middleware.JWTMiddleware, controller.CategoryList)
	category.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validator.CreateCategory(), controller.CreateCategory)
	category.Put("/reorder", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validator.ReorderCategories(), controller.ReorderCategories)
	category.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validator.UpdateCategory(), controller.UpdateCategory)
	category.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), controller.DeleteCategory)
}
