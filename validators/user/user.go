package userValidators

import (
	"sdesk/middleware"
	"sdesk/models"
	"sdesk/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var validRoles = map[string]bool{
	models.RoleStudent: true, models.RoleCounselor: true,
	models.RoleAdvisor: true, models.RoleAdmin: true,
}

var validStatuses = map[string]bool{
	models.UserStatusActive: true, models.UserStatusInactive: true,
	models.UserStatusSuspended: true,
}

func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int    `query:"page"`
			Limit  *int    `query:"limit"`
			Search *string `query:"search"`
			Role   *string `query:"role"`
			Status *string `query:"status"`
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
		if reqData.Role != nil && !validRoles[strings.ToUpper(*reqData.Role)] {
			errors["role"] = "Invalid role! Must be one of: STUDENT, COUNSELOR, ADVISOR, ADMIN."
		}
		if reqData.Status != nil && !validStatuses[strings.ToUpper(*reqData.Status)] {
			errors["status"] = "Invalid status! Must be one of: ACTIVE, INACTIVE, SUSPENDED."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}

func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name   *string `json:"name"`
			Role   *string `json:"role"`
			Status *string `json:"status"`
			Phone  *string `json:"phone"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil && strings.TrimSpace(*reqData.Name) == "" {
			errors["name"] = "Name must not be empty!"
		}
		if reqData.Role != nil && !validRoles[strings.ToUpper(*reqData.Role)] {
			errors["role"] = "Invalid role! Must be one of: STUDENT, COUNSELOR, ADVISOR, ADMIN."
		}
		if reqData.Status != nil && !validStatuses[strings.ToUpper(*reqData.Status)] {
			errors["status"] = "Invalid status! Must be one of: ACTIVE, INACTIVE, SUSPENDED."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}

func BulkUserAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IDs    []uint `json:"ids"`
			Action string `json:"action"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.IDs) == 0 {
			errors["ids"] = "At least one user id is required!"
		}

		valid := map[string]bool{"ACTIVATE": true, "DEACTIVATE": true, "SUSPEND": true, "DELETE": true}
		reqData.Action = strings.ToUpper(strings.TrimSpace(reqData.Action))
		if !valid[reqData.Action] {
			errors["action"] = "Invalid action! Allowed: ACTIVATE, DEACTIVATE, SUSPEND, DELETE"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBulkAction", reqData)
		return c.Next()
	}
}

// BulkCreateUsers validates the candidate row list before submission: every
// row needs a non-empty name and a syntactically valid email. Per-row
// duplicate handling happens in the controller; this gate only rejects
// requests where the shape itself is wrong.
func BulkCreateUsers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Users []utils.UserImportRow `json:"users"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Users) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"users": "At least one user row is required!",
			})
		}
		if len(reqData.Users) > 500 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"users": "At most 500 rows per import!",
			})
		}

		c.Locals("validatedBulkCreate", reqData)
		return c.Next()
	}
}
