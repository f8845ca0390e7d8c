package faqValidators

import (
	"sdesk/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CreateFAQ() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CategoryID  uint     `json:"category_id"`
			Question    string   `json:"question"`
			Answer      string   `json:"answer"`
			Tags        []string `json:"tags"`
			IsPublished *bool    `json:"is_published"`
			IsFeatured  *bool    `json:"is_featured"`
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
		} else if len(reqData.Question) > 300 {
			errors["question"] = "Question must not exceed 300 characters!"
		}

		reqData.Answer = strings.TrimSpace(reqData.Answer)
		if reqData.Answer == "" {
			errors["answer"] = "Answer is required!"
		} else if len(reqData.Answer) < 20 {
			errors["answer"] = "Answer must be at least 20 characters long!"
		}

		if len(reqData.Tags) > 10 {
			errors["tags"] = "At most 10 tags are allowed!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFAQ", reqData)
		return c.Next()
	}
}

func UpdateFAQ() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CategoryID  *uint     `json:"category_id"`
			Question    *string   `json:"question"`
			Answer      *string   `json:"answer"`
			Tags        *[]string `json:"tags"`
			IsPublished *bool     `json:"is_published"`
			IsFeatured  *bool     `json:"is_featured"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Question != nil {
			*reqData.Question = strings.TrimSpace(*reqData.Question)
			if len(*reqData.Question) < 10 {
				errors["question"] = "Question must be at least 10 characters long!"
			} else if len(*reqData.Question) > 300 {
				errors["question"] = "Question must not exceed 300 characters!"
			}
		}
		if reqData.Answer != nil {
			*reqData.Answer = strings.TrimSpace(*reqData.Answer)
			if len(*reqData.Answer) < 20 {
				errors["answer"] = "Answer must be at least 20 characters long!"
			}
		}
		if reqData.Tags != nil && len(*reqData.Tags) > 10 {
			errors["tags"] = "At most 10 tags are allowed!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFAQUpdate", reqData)
		return c.Next()
	}
}

func FAQList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int    `query:"page"`
			Limit    *int    `query:"limit"`
			Search   *string `query:"search"`
			Category *uint   `query:"category"`
			Status   *string `query:"status"`
			Sort     *string `query:"sort"`
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
		if reqData.Status != nil {
			valid := map[string]bool{"ALL": true, "PUBLISHED": true, "DRAFT": true, "FEATURED": true}
			if !valid[strings.ToUpper(*reqData.Status)] {
				errors["status"] = "Invalid status! Must be one of: ALL, PUBLISHED, DRAFT, FEATURED."
			}
		}
		if reqData.Sort != nil {
			valid := map[string]bool{"NEWEST": true, "OLDEST": true, "HELPFUL": true}
			if !valid[strings.ToUpper(*reqData.Sort)] {
				errors["sort"] = "Invalid sort! Must be one of: NEWEST, OLDEST, HELPFUL."
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFAQList", reqData)
		return c.Next()
	}
}

func BulkFAQAction() fiber.Handler {
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
			errors["ids"] = "At least one FAQ id is required!"
		}

		valid := map[string]bool{"PUBLISH": true, "UNPUBLISH": true, "DELETE": true}
		reqData.Action = strings.ToUpper(strings.TrimSpace(reqData.Action))
		if !valid[reqData.Action] {
			errors["action"] = "Invalid action! Allowed: PUBLISH, UNPUBLISH, DELETE"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBulkFAQ", reqData)
		return c.Next()
	}
}

func VoteFAQ() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Helpful *bool `json:"helpful"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Helpful == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"helpful": "helpful is required and must be true or false!",
			})
		}

		c.Locals("validatedVote", reqData)
		return c.Next()
	}
}
