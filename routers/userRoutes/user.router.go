package userRoutes

import (
	controller "sdesk/controllers/user"
	"sdesk/middleware"
	"sdesk/models"
	validator "sdesk/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	user := app.Group("/users")

	admin := middleware.RequireRole(models.RoleAdmin)

	user.Get("/", middleware.JWTMiddleware, admin, validator.UserList(), controller.UserList)
	user.Put("/:id", middleware.JWTMiddleware, admin, validator.UpdateUser(), controller.UpdateUser)
	user.Post("/bulk-action", middleware.JWTMiddleware, admin, validator.BulkUserAction(), controller.BulkUserAction)
	user.Post("/bulk-create", middleware.JWTMiddleware, admin, validator.BulkCreateUsers(), controller.BulkCreateUsers)
	user.Post("/import", middleware.JWTMiddleware, admin, controller.ImportUsersCSV)
	user.Get("/template", middleware.JWTMiddleware, admin, controller.DownloadUserTemplate)
	user.Get("/export", middleware.JWTMiddleware, admin, validator.UserList(), controller.ExportUsersCSV)
}
