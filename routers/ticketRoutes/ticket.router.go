package ticketRoutes

import (
	controller "sdesk/controllers/ticket"
	"sdesk/middleware"
	"sdesk/models"
	validator "sdesk/validators/ticket"

	"github.com/gofiber/fiber/v2"
)

func SetupTicketRoutes(app *fiber.App) {
	ticket := app.Group("/tickets")

	staff := middleware.RequireRole(models.RoleAdmin, models.RoleCounselor, models.RoleAdvisor)

	ticket.Post("/", middleware.JWTMiddleware, validator.CreateTicket(), controller.CreateTicket)
	ticket.Get("/", middleware.JWTMiddleware, validator.TicketList(), controller.TicketList)
	ticket.Get("/triage", middleware.JWTMiddleware, staff, validator.TicketList(), controller.TriageList)
	ticket.Get("/stats", middleware.JWTMiddleware, staff, controller.TicketStats)
	ticket.Get("/:id", middleware.JWTMiddleware, controller.GetTicket)
	ticket.Put("/:id/status", middleware.JWTMiddleware, staff, validator.UpdateStatus(), controller.UpdateStatus)
	ticket.Put("/:id/assign", middleware.JWTMiddleware, staff, validator.AssignTicket(), controller.AssignTicket)
	ticket.Post("/:id/respond", middleware.JWTMiddleware, validator.RespondTicket(), controller.RespondTicket)
}
