package categoryControllers

import (
	"sdesk/database"
	"sdesk/middleware"
	"sdesk/models"
	"sdesk/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CategoryList returns all categories ordered by sort order, each with its
// server-computed FAQ count.
func CategoryList(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.Category{}).Where("is_deleted = false")

	if c.Query("active") == "true" {
		db = db.Where("is_active = true")
	}

	var categories []models.Category
	if err := db.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	for i := range categories {
		database.Database.Db.Model(&models.FAQ{}).
			Where("category_id = ? AND is_deleted = false", categories[i].ID).
			Count(&categories[i].FAQCount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", fiber.Map{
		"categories": categories,
	})
}

func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*struct {
		Name          string  `json:"name"`
		Color         *string `json:"color"`
		Description   *string `json:"description"`
		SLAHours      *int    `json:"sla_hours"`
		CrisisEnabled *bool   `json:"crisis_enabled"`
		SortOrder     *int    `json:"sort_order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	slug := utils.Slugify(reqData.Name)

	// Check if category already exists
	if err := database.Database.Db.
		Where("(name = ? OR slug = ?) AND is_deleted = false", reqData.Name, slug).
		First(&models.Category{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category := models.Category{
		Name: reqData.Name,
		Slug: slug,
	}
	if reqData.Color != nil {
		category.Color = strings.ToLower(*reqData.Color)
	}
	if reqData.Description != nil {
		category.Description = *reqData.Description
	}
	if reqData.SLAHours != nil {
		category.SLAHours = *reqData.SLAHours
	}
	if reqData.CrisisEnabled != nil {
		category.CrisisEnabled = *reqData.CrisisEnabled
	}
	if reqData.SortOrder != nil {
		category.SortOrder = *reqData.SortOrder
	}

	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

func UpdateCategory(c *fiber.Ctx) error {
	categoryId, err := c.ParamsInt("id")
	if err != nil || categoryId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	reqData, ok := c.Locals("validatedCategoryUpdate").(*struct {
		Name          *string `json:"name"`
		Color         *string `json:"color"`
		Description   *string `json:"description"`
		IsActive      *bool   `json:"is_active"`
		SLAHours      *int    `json:"sla_hours"`
		CrisisEnabled *bool   `json:"crisis_enabled"`
		SortOrder     *int    `json:"sort_order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var category models.Category
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", categoryId).
		First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	if reqData.Name != nil {
		category.Name = *reqData.Name
		category.Slug = utils.Slugify(*reqData.Name)
	}
	if reqData.Color != nil {
		category.Color = strings.ToLower(*reqData.Color)
	}
	if reqData.Description != nil {
		category.Description = *reqData.Description
	}
	if reqData.IsActive != nil {
		category.IsActive = *reqData.IsActive
	}
	if reqData.SLAHours != nil {
		category.SLAHours = *reqData.SLAHours
	}
	if reqData.CrisisEnabled != nil {
		category.CrisisEnabled = *reqData.CrisisEnabled
	}
	if reqData.SortOrder != nil {
		category.SortOrder = *reqData.SortOrder
	}

	if err := database.Database.Db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// DeleteCategory soft-deletes a category. A category that still has FAQs is
// only deleted when force=true is passed; otherwise the count is returned so
// the caller can confirm.
func DeleteCategory(c *fiber.Ctx) error {
	categoryId, err := c.ParamsInt("id")
	if err != nil || categoryId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	var category models.Category
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", categoryId).
		First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	var faqCount int64
	database.Database.Db.Model(&models.FAQ{}).
		Where("category_id = ? AND is_deleted = false", category.ID).
		Count(&faqCount)

	if faqCount > 0 && c.Query("force") != "true" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category still has FAQs. Pass force=true to delete anyway.", fiber.Map{
			"faq_count": faqCount,
		})
	}

	category.IsDeleted = true
	category.IsActive = false
	if err := database.Database.Db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}

// ReorderCategories rewrites sort_order to match the given id list
func ReorderCategories(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedReorder").(*struct {
		Order []uint `json:"order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	for position, id := range reqData.Order {
		if err := database.Database.Db.Model(&models.Category{}).
			Where("id = ? AND is_deleted = false", id).
			Update("sort_order", position).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder categories!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories reordered successfully!", nil)
}
