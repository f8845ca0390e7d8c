package categoryValidators

import (
	"sdesk/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var validColors = map[string]bool{
	"gray": true, "red": true, "orange": true, "yellow": true,
	"green": true, "blue": true, "purple": true, "pink": true,
}

func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name          string  `json:"name"`
			Color         *string `json:"color"`
			Description   *string `json:"description"`
			SLAHours      *int    `json:"sla_hours"`
			CrisisEnabled *bool   `json:"crisis_enabled"`
			SortOrder     *int    `json:"sort_order"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		} else if len(reqData.Name) > 80 {
			errors["name"] = "Name must not exceed 80 characters!"
		}

		if reqData.Color != nil && !validColors[strings.ToLower(*reqData.Color)] {
			errors["color"] = "Invalid color token!"
		}
		if reqData.SLAHours != nil && (*reqData.SLAHours < 1 || *reqData.SLAHours > 720) {
			errors["sla_hours"] = "SLA hours must be between 1 and 720!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

func UpdateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name          *string `json:"name"`
			Color         *string `json:"color"`
			Description   *string `json:"description"`
			IsActive      *bool   `json:"is_active"`
			SLAHours      *int    `json:"sla_hours"`
			CrisisEnabled *bool   `json:"crisis_enabled"`
			SortOrder     *int    `json:"sort_order"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil {
			*reqData.Name = strings.TrimSpace(*reqData.Name)
			if *reqData.Name == "" {
				errors["name"] = "Name must not be empty!"
			} else if len(*reqData.Name) > 80 {
				errors["name"] = "Name must not exceed 80 characters!"
			}
		}
		if reqData.Color != nil && !validColors[strings.ToLower(*reqData.Color)] {
			errors["color"] = "Invalid color token!"
		}
		if reqData.SLAHours != nil && (*reqData.SLAHours < 1 || *reqData.SLAHours > 720) {
			errors["sla_hours"] = "SLA hours must be between 1 and 720!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategoryUpdate", reqData)
		return c.Next()
	}
}

func ReorderCategories() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Order []uint `json:"order"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Order) == 0 {
			errors["order"] = "Order list is required!"
		}
		seen := make(map[uint]bool)
		for _, id := range reqData.Order {
			if seen[id] {
				errors["order"] = "Order list contains duplicate ids!"
				break
			}
			seen[id] = true
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}
