package faqControllers

import (
	"encoding/json"
	"sdesk/database"
	"sdesk/middleware"
	"sdesk/models"
	"sdesk/rules"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// faqView decorates a FAQ with its derived helpfulness rate for responses
type faqView struct {
	models.FAQ
	HelpfulnessRate int `json:"helpfulness_rate"`
}

func withRate(faq models.FAQ) faqView {
	return faqView{FAQ: faq, HelpfulnessRate: rules.HelpfulnessRate(faq.Helpful, faq.NotHelpful)}
}

func FAQList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedFAQList").(*struct {
		Page     *int    `query:"page"`
		Limit    *int    `query:"limit"`
		Search   *string `query:"search"`
		Category *uint   `query:"category"`
		Status   *string `query:"status"`
		Sort     *string `query:"sort"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	// Pagination setup
	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	// Build query with filters
	db := database.Database.Db.Model(&models.FAQ{}).Where("is_deleted = false")

	if reqData.Search != nil && strings.TrimSpace(*reqData.Search) != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(*reqData.Search)) + "%"
		db = db.Where("LOWER(question) LIKE ? OR LOWER(answer) LIKE ?", term, term)
	}
	if reqData.Category != nil && *reqData.Category > 0 {
		db = db.Where("category_id = ?", *reqData.Category)
	}
	if reqData.Status != nil {
		switch strings.ToUpper(*reqData.Status) {
		case "PUBLISHED":
			db = db.Where("is_published = true")
		case "DRAFT":
			db = db.Where("is_published = false")
		case "FEATURED":
			db = db.Where("is_featured = true")
		}
	}

	// Count total results
	var total int64
	db.Count(&total)

	order := "created_at DESC"
	if reqData.Sort != nil {
		switch strings.ToUpper(*reqData.Sort) {
		case "OLDEST":
			order = "created_at ASC"
		case "HELPFUL":
			order = "helpful DESC"
		}
	}

	var faqs []models.FAQ
	if err := db.Preload("Category").Order(order).Offset(offset).Limit(limit).Find(&faqs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch FAQs!", nil)
	}

	views := make([]faqView, len(faqs))
	for i, faq := range faqs {
		views[i] = withRate(faq)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "FAQs fetched successfully!", fiber.Map{
		"faqs": views,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetFAQ(c *fiber.Ctx) error {
	faqId, err := c.ParamsInt("id")
	if err != nil || faqId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid FAQ id!", nil)
	}

	var faq models.FAQ
	if err := database.Database.Db.Preload("Category").
		Where("id = ? AND is_deleted = false", faqId).
		First(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "FAQ not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "FAQ fetched successfully!", withRate(faq))
}

func CreateFAQ(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedFAQ").(*struct {
		CategoryID  uint     `json:"category_id"`
		Question    string   `json:"question"`
		Answer      string   `json:"answer"`
		Tags        []string `json:"tags"`
		IsPublished *bool    `json:"is_published"`
		IsFeatured  *bool    `json:"is_featured"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Category must exist and be active
	var category models.Category
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", reqData.CategoryID).
		First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category not found!", nil)
	}

	tagsJSON, err := json.Marshal(reqData.Tags)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode tags!", nil)
	}

	faq := models.FAQ{
		CategoryID: reqData.CategoryID,
		Question:   reqData.Question,
		Answer:     reqData.Answer,
		Tags:       datatypes.JSON(tagsJSON),
		CreatedBy:  userId,
	}
	if reqData.IsPublished != nil {
		faq.IsPublished = *reqData.IsPublished
	}
	if reqData.IsFeatured != nil {
		faq.IsFeatured = *reqData.IsFeatured
	}

	if err := database.Database.Db.Create(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create FAQ!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "FAQ created successfully!", withRate(faq))
}

func UpdateFAQ(c *fiber.Ctx) error {
	faqId, err := c.ParamsInt("id")
	if err != nil || faqId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid FAQ id!", nil)
	}

	reqData, ok := c.Locals("validatedFAQUpdate").(*struct {
		CategoryID  *uint     `json:"category_id"`
		Question    *string   `json:"question"`
		Answer      *string   `json:"answer"`
		Tags        *[]string `json:"tags"`
		IsPublished *bool     `json:"is_published"`
		IsFeatured  *bool     `json:"is_featured"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var faq models.FAQ
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", faqId).
		First(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "FAQ not found!", nil)
	}

	if reqData.CategoryID != nil {
		var category models.Category
		if err := database.Database.Db.
			Where("id = ? AND is_deleted = false", *reqData.CategoryID).
			First(&category).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category not found!", nil)
		}
		faq.CategoryID = *reqData.CategoryID
	}
	if reqData.Question != nil {
		faq.Question = *reqData.Question
	}
	if reqData.Answer != nil {
		faq.Answer = *reqData.Answer
	}
	if reqData.Tags != nil {
		tagsJSON, err := json.Marshal(*reqData.Tags)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode tags!", nil)
		}
		faq.Tags = datatypes.JSON(tagsJSON)
	}
	if reqData.IsPublished != nil {
		faq.IsPublished = *reqData.IsPublished
	}
	if reqData.IsFeatured != nil {
		faq.IsFeatured = *reqData.IsFeatured
	}

	if err := database.Database.Db.Save(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update FAQ!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "FAQ updated successfully!", withRate(faq))
}

func DeleteFAQ(c *fiber.Ctx) error {
	faqId, err := c.ParamsInt("id")
	if err != nil || faqId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid FAQ id!", nil)
	}

	var faq models.FAQ
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", faqId).
		First(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "FAQ not found!", nil)
	}

	faq.IsDeleted = true
	if err := database.Database.Db.Save(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete FAQ!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "FAQ deleted successfully!", nil)
}

// TogglePublish flips the publication flag
func TogglePublish(c *fiber.Ctx) error {
	return toggleFlag(c, "is_published")
}

// ToggleFeature flips the featured flag
func ToggleFeature(c *fiber.Ctx) error {
	return toggleFlag(c, "is_featured")
}

func toggleFlag(c *fiber.Ctx, field string) error {
	faqId, err := c.ParamsInt("id")
	if err != nil || faqId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid FAQ id!", nil)
	}

	var faq models.FAQ
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", faqId).
		First(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "FAQ not found!", nil)
	}

	if field == "is_published" {
		faq.IsPublished = !faq.IsPublished
	} else {
		faq.IsFeatured = !faq.IsFeatured
	}

	if err := database.Database.Db.Save(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update FAQ!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "FAQ updated successfully!", withRate(faq))
}

// VoteFAQ records a helpful / not-helpful vote on a published FAQ
func VoteFAQ(c *fiber.Ctx) error {
	faqId, err := c.ParamsInt("id")
	if err != nil || faqId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid FAQ id!", nil)
	}

	reqData, ok := c.Locals("validatedVote").(*struct {
		Helpful *bool `json:"helpful"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var faq models.FAQ
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false AND is_published = true", faqId).
		First(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "FAQ not found!", nil)
	}

	if *reqData.Helpful {
		faq.Helpful++
	} else {
		faq.NotHelpful++
	}

	if err := database.Database.Db.Save(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record vote!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Vote recorded successfully!", withRate(faq))
}

// BulkFAQAction applies publish/unpublish/delete to many FAQs at once,
// reporting per-item failures instead of one collapsed error.
func BulkFAQAction(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBulkFAQ").(*struct {
		IDs    []uint `json:"ids"`
		Action string `json:"action"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	type itemError struct {
		Index int    `json:"index"`
		ID    uint   `json:"id"`
		Error string `json:"error"`
	}

	succeeded := 0
	var failures []itemError

	for i, id := range reqData.IDs {
		var faq models.FAQ
		if err := database.Database.Db.
			Where("id = ? AND is_deleted = false", id).
			First(&faq).Error; err != nil {
			failures = append(failures, itemError{Index: i, ID: id, Error: "FAQ not found"})
			continue
		}

		switch reqData.Action {
		case "PUBLISH":
			faq.IsPublished = true
		case "UNPUBLISH":
			faq.IsPublished = false
		case "DELETE":
			faq.IsDeleted = true
		}

		if err := database.Database.Db.Save(&faq).Error; err != nil {
			failures = append(failures, itemError{Index: i, ID: id, Error: "Failed to update"})
			continue
		}
		succeeded++
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bulk action completed.", fiber.Map{
		"succeeded": succeeded,
		"failed":    len(failures),
		"errors":    failures,
	})
}
