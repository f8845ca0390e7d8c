package suggestionControllers

import (
	"sdesk/database"
	"sdesk/middleware"
	"sdesk/models"

	"github.com/gofiber/fiber/v2"
)

// Content suggestions are FAQ rows submitted by non-staff users with
// is_published=false. They either get approved (published in place) or
// rejected (soft-deleted); both transitions are one-way.

func SubmitSuggestion(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedSuggestion").(*struct {
		CategoryID uint   `json:"category_id"`
		Question   string `json:"question"`
		Answer     string `json:"answer"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var category models.Category
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false AND is_active = true", reqData.CategoryID).
		First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category not found!", nil)
	}

	suggestion := models.FAQ{
		CategoryID:  reqData.CategoryID,
		Question:    reqData.Question,
		Answer:      reqData.Answer,
		IsPublished: false,
		CreatedBy:   userId,
	}

	if err := database.Database.Db.Create(&suggestion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit suggestion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Suggestion submitted successfully!", suggestion)
}

// SuggestionList returns pending suggestions: unpublished FAQs created by
// students, newest first.
func SuggestionList(c *fiber.Ctx) error {
	var suggestions []models.FAQ
	if err := database.Database.Db.Preload("Category").
		Joins("JOIN users ON users.id = faqs.created_by").
		Where("faqs.is_published = false AND faqs.is_deleted = false AND users.role = ?", models.RoleStudent).
		Order("faqs.created_at DESC").
		Find(&suggestions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch suggestions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Suggestions fetched successfully!", fiber.Map{
		"suggestions": suggestions,
	})
}

// ApproveSuggestion publishes a pending suggestion as a FAQ
func ApproveSuggestion(c *fiber.Ctx) error {
	suggestionId, err := c.ParamsInt("id")
	if err != nil || suggestionId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid suggestion id!", nil)
	}

	var suggestion models.FAQ
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false AND is_published = false", suggestionId).
		First(&suggestion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Suggestion not found or already reviewed!", nil)
	}

	suggestion.IsPublished = true
	if err := database.Database.Db.Save(&suggestion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve suggestion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Suggestion approved and published!", suggestion)
}

// RejectSuggestion removes a pending suggestion
func RejectSuggestion(c *fiber.Ctx) error {
	suggestionId, err := c.ParamsInt("id")
	if err != nil || suggestionId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid suggestion id!", nil)
	}

	var suggestion models.FAQ
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false AND is_published = false", suggestionId).
		First(&suggestion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Suggestion not found or already reviewed!", nil)
	}

	suggestion.IsDeleted = true
	if err := database.Database.Db.Save(&suggestion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject suggestion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Suggestion rejected.", nil)
}
