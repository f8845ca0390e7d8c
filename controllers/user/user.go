package userControllers

import (
	"sdesk/config"
	"sdesk/database"
	"sdesk/middleware"
	"sdesk/models"
	"sdesk/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func UserList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserList").(*struct {
		Page   *int    `query:"page"`
		Limit  *int    `query:"limit"`
		Search *string `query:"search"`
		Role   *string `query:"role"`
		Status *string `query:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := filteredUsers(reqData.Search, reqData.Role, reqData.Status)

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User List.", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func filteredUsers(search, role, status *string) *gorm.DB {
	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = false")

	if search != nil && strings.TrimSpace(*search) != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(*search)) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(student_id) LIKE ?", term, term, term)
	}
	if role != nil {
		db = db.Where("role = ?", strings.ToUpper(*role))
	}
	if status != nil {
		db = db.Where("status = ?", strings.ToUpper(*status))
	}
	return db
}

func UpdateUser(c *fiber.Ctx) error {
	targetId, err := c.ParamsInt("id")
	if err != nil || targetId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData, ok := c.Locals("validatedUserUpdate").(*struct {
		Name   *string `json:"name"`
		Role   *string `json:"role"`
		Status *string `json:"status"`
		Phone  *string `json:"phone"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", targetId).
		First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Name != nil {
		user.Name = strings.TrimSpace(*reqData.Name)
	}
	if reqData.Role != nil {
		user.Role = strings.ToUpper(*reqData.Role)
	}
	if reqData.Status != nil {
		user.Status = strings.ToUpper(*reqData.Status)
	}
	if reqData.Phone != nil {
		user.Phone = *reqData.Phone
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", user)
}

// BulkUserAction applies one status action to many users, reporting per-item
// outcomes so partial success stays visible.
func BulkUserAction(c *fiber.Ctx) error {
	adminId, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedBulkAction").(*struct {
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
		if id == adminId {
			failures = append(failures, itemError{Index: i, ID: id, Error: "Cannot apply bulk action to your own account"})
			continue
		}

		var user models.User
		if err := database.Database.Db.
			Where("id = ? AND is_deleted = false", id).
			First(&user).Error; err != nil {
			failures = append(failures, itemError{Index: i, ID: id, Error: "User not found"})
			continue
		}

		switch reqData.Action {
		case "ACTIVATE":
			user.Status = models.UserStatusActive
		case "DEACTIVATE":
			user.Status = models.UserStatusInactive
		case "SUSPEND":
			user.Status = models.UserStatusSuspended
		case "DELETE":
			user.IsDeleted = true
		}

		if err := database.Database.Db.Save(&user).Error; err != nil {
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

// bulkCreateResult classifies every input row of a bulk user creation
type bulkCreateResult struct {
	Created []createdUser `json:"created_users"`
	Skipped []rowOutcome  `json:"skipped"`
	Failed  []rowOutcome  `json:"failed"`
}

type createdUser struct {
	Index    int    `json:"index"`
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // generated credential, shown once
}

type rowOutcome struct {
	Index  int    `json:"index"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// BulkCreateUsers creates accounts from a list of candidate rows (manual
// entry or parsed CSV import). Each row is classified independently as
// created, skipped (duplicate email) or failed (validation), and created
// accounts get a generated credential that is emailed and returned once.
func BulkCreateUsers(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBulkCreate").(*struct {
		Users []utils.UserImportRow `json:"users"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	result := bulkCreateResult{
		Created: []createdUser{},
		Skipped: []rowOutcome{},
		Failed:  []rowOutcome{},
	}

	for i, row := range reqData.Users {
		name := strings.TrimSpace(row.Name)
		email := strings.TrimSpace(strings.ToLower(row.Email))

		// Row validation: non-empty name, syntactically valid email
		if name == "" {
			result.Failed = append(result.Failed, rowOutcome{Index: i, Email: email, Reason: "Name is required"})
			continue
		}
		if !utils.IsValidEmail(email) {
			result.Failed = append(result.Failed, rowOutcome{Index: i, Email: email, Reason: "Invalid email address"})
			continue
		}

		role := models.RoleStudent
		if row.Role != "" {
			if !map[string]bool{models.RoleStudent: true, models.RoleCounselor: true, models.RoleAdvisor: true, models.RoleAdmin: true}[row.Role] {
				result.Failed = append(result.Failed, rowOutcome{Index: i, Email: email, Reason: "Invalid role: " + row.Role})
				continue
			}
			role = row.Role
		}

		// Duplicate check against existing accounts
		if err := db.Where("email = ? AND is_deleted = false", email).First(&models.User{}).Error; err == nil {
			result.Skipped = append(result.Skipped, rowOutcome{Index: i, Email: email, Reason: "Email already registered"})
			continue
		}

		password := utils.GeneratePassword()
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
		if err != nil {
			result.Failed = append(result.Failed, rowOutcome{Index: i, Email: email, Reason: "Failed to process credentials"})
			continue
		}

		user := models.User{
			Name:       name,
			Email:      email,
			Password:   string(hashed),
			Role:       role,
			Status:     models.UserStatusActive,
			Phone:      row.Phone,
			StudentID:  row.StudentID,
			EmployeeID: row.EmployeeID,
		}
		if row.Status != "" {
			user.Status = row.Status
		}

		if err := db.Create(&user).Error; err != nil {
			result.Failed = append(result.Failed, rowOutcome{Index: i, Email: email, Reason: "Failed to save user"})
			continue
		}

		result.Created = append(result.Created, createdUser{
			Index:    i,
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Password: password,
		})

		go utils.SendCredentialsEmail(user.Email, user.Name, password)
	}

	message := "Bulk creation completed."
	if len(result.Failed) > 0 || len(result.Skipped) > 0 {
		message = "Bulk creation completed with some rows not created."
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, result)
}

// ImportUsersCSV parses an uploaded CSV and runs it through the same row
// classification as BulkCreateUsers.
func ImportUsersCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "CSV file is required!", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to open uploaded file!", nil)
	}
	defer file.Close()

	rows, err := utils.ParseUserImportCSV(file)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	}

	reqData := &struct {
		Users []utils.UserImportRow `json:"users"`
	}{Users: rows}
	c.Locals("validatedBulkCreate", reqData)

	return BulkCreateUsers(c)
}

// DownloadUserTemplate serves the CSV template for bulk imports
func DownloadUserTemplate(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="user_import_template.csv"`)
	return c.Send(utils.UserImportTemplate())
}

// ExportUsersCSV downloads the current filtered user list
func ExportUsersCSV(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserList").(*struct {
		Page   *int    `query:"page"`
		Limit  *int    `query:"limit"`
		Search *string `query:"search"`
		Role   *string `query:"role"`
		Status *string `query:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	var users []models.User
	if err := filteredUsers(reqData.Search, reqData.Role, reqData.Status).
		Order("created_at DESC").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export users!", nil)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="users_export.csv"`)
	return c.Send(utils.ExportUsersCSV(users))
}
