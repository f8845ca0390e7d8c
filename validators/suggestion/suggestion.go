package suggestionValidators

import (
	"sdesk/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func SubmitSuggestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CategoryID uint   `json:"category_id"`
			Question   string `json:"question"`
			Answer     string `json:"answer"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CategoryID == 0 {
			errors["category_id"] = "Category is required!"
		}

		reqData.Question = strings.TrimSpace(reqData.Question)
		if reqData.Question == "" {
			errors["question"] = "Question is required!"
		} else if len(reqData.Question) < 10 {
			errors["question"] = "Question must be at least 10 characters long!"
		}

		reqData.Answer = strings.TrimSpace(reqData.Answer)
		if reqData.Answer == "" {
			errors["answer"] = "Suggested answer is required!"
		} else if len(reqData.Answer) < 20 {
			errors["answer"] = "Suggested answer must be at least 20 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSuggestion", reqData)
		return c.Next()
	}
}
