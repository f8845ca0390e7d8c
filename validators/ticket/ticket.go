package ticketValidators

import (
	"sdesk/middleware"
	"sdesk/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var validPriority = map[string]bool{
	models.PriorityLow: true, models.PriorityMedium: true,
	models.PriorityHigh: true, models.PriorityUrgent: true,
}

var validStatus = map[string]bool{
	models.StatusOpen: true, models.StatusInProgress: true,
	models.StatusResolved: true, models.StatusClosed: true,
}

func CreateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Subject     string   `json:"subject"`
			Description string   `json:"description"`
			CategoryID  *uint    `json:"category_id"`
			Priority    *string  `json:"priority"`
			Attachments []string `json:"attachments"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Subject = strings.TrimSpace(reqData.Subject)
		if reqData.Subject == "" {
			errors["subject"] = "Subject is required!"
		} else if len(reqData.Subject) < 3 {
			errors["subject"] = "Subject must be at least 3 characters long!"
		} else if len(reqData.Subject) > 200 {
			errors["subject"] = "Subject must not exceed 200 characters!"
		}

		reqData.Description = strings.TrimSpace(reqData.Description)
		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		} else if len(reqData.Description) < 20 {
			errors["description"] = "Description must be at least 20 characters long!"
		}

		if reqData.Priority != nil && !validPriority[strings.ToUpper(*reqData.Priority)] {
			errors["priority"] = "Invalid priority! Allowed: LOW, MEDIUM, HIGH, URGENT"
		}
		if len(reqData.Attachments) > 5 {
			errors["attachments"] = "At most 5 attachments are allowed!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTicket", reqData)
		return c.Next()
	}
}

func TicketList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page       *int    `query:"page"`
			Limit      *int    `query:"limit"`
			Search     *string `query:"search"`
			Status     *string `query:"status"`
			Priority   *string `query:"priority"`
			Category   *uint   `query:"category"`
			AssignedTo *uint   `query:"assigned_to"`
			Crisis     *bool   `query:"crisis"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if reqData.Status != nil && !validStatus[strings.ToUpper(*reqData.Status)] {
			errors["status"] = "Invalid status! Must be one of: OPEN, IN_PROGRESS, RESOLVED, CLOSED."
		}
		if reqData.Priority != nil && !validPriority[strings.ToUpper(*reqData.Priority)] {
			errors["priority"] = "Invalid priority! Must be one of: LOW, MEDIUM, HIGH, URGENT."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTicketList", reqData)
		return c.Next()
	}
}

func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))
		if !validStatus[reqData.Status] {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Invalid status! Must be one of: OPEN, IN_PROGRESS, RESOLVED, CLOSED.",
			})
		}

		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}

func AssignTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			AssignedTo *uint `json:"assigned_to"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedAssign", reqData)
		return c.Next()
	}
}

func RespondTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Message    string `json:"message"`
			IsInternal *bool  `json:"is_internal"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Message = strings.TrimSpace(reqData.Message)
		if reqData.Message == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"message": "Reply message is required!",
			})
		}

		c.Locals("validatedResponse", reqData)
		return c.Next()
	}
}
