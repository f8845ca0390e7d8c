package ticketControllers

import (
	"encoding/json"
	"sdesk/config"
	"sdesk/database"
	"sdesk/middleware"
	"sdesk/models"
	"sdesk/rules"
	"sdesk/utils"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ticketView decorates a ticket with its live SLA countdown
type ticketView struct {
	models.Ticket
	SLA rules.SLAStatus `json:"sla"`
}

func withSLA(t models.Ticket) ticketView {
	return ticketView{Ticket: t, SLA: rules.SLARemaining(t.SLADeadline, time.Now())}
}

func isStaffRole(role string) bool {
	switch role {
	case models.RoleCounselor, models.RoleAdvisor, models.RoleAdmin:
		return true
	}
	return false
}

func requesterRole(userId uint) string {
	var user models.User
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", userId).
		First(&user).Error; err != nil {
		return ""
	}
	return user.Role
}

// canAccessTicket limits ticket reads and responses to the ticket's owner
// and staff.
func canAccessTicket(ticket models.Ticket, userId uint, role string) bool {
	return ticket.UserID == userId || isStaffRole(role)
}

// visibleResponses hides internal staff notes from non-staff readers
func visibleResponses(responses []models.TicketResponse, role string) []models.TicketResponse {
	if isStaffRole(role) {
		return responses
	}
	visible := make([]models.TicketResponse, 0, len(responses))
	for _, r := range responses {
		if !r.IsInternal {
			visible = append(visible, r)
		}
	}
	return visible
}

func CreateTicket(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTicket").(*struct {
		Subject     string   `json:"subject"`
		Description string   `json:"description"`
		CategoryID  *uint    `json:"category_id"`
		Priority    *string  `json:"priority"`
		Attachments []string `json:"attachments"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Crisis scan over the free text. A match overrides whatever priority
	// the caller picked; the safety signal wins.
	isCrisis, matches := rules.DetectCrisis(reqData.Subject + " " + reqData.Description)

	priority := models.PriorityMedium
	if reqData.Priority != nil {
		priority = strings.ToUpper(*reqData.Priority)
	}
	if isCrisis {
		priority = models.PriorityUrgent
	}

	// Resolve the category: the caller's pick, or for crisis tickets with no
	// pick a crisis-enabled category when one exists.
	var category models.Category
	haveCategory := false
	if reqData.CategoryID != nil {
		if err := db.Where("id = ? AND is_deleted = false AND is_active = true", *reqData.CategoryID).
			First(&category).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category not found!", nil)
		}
		haveCategory = true
	} else if isCrisis {
		if err := db.Where("crisis_enabled = true AND is_deleted = false AND is_active = true").
			Order("sort_order ASC").First(&category).Error; err == nil {
			haveCategory = true
		}
	}

	slaHours := config.AppConfig.DefaultSLAHours
	if haveCategory && category.SLAHours > 0 {
		slaHours = category.SLAHours
	}

	keywordsJSON, err := json.Marshal(matches)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode crisis keywords!", nil)
	}
	attachmentsJSON, err := json.Marshal(reqData.Attachments)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode attachments!", nil)
	}

	now := time.Now()
	ticket := models.Ticket{
		TicketNumber:   utils.GenerateTicketNumber(),
		UserID:         userId,
		Subject:        reqData.Subject,
		Description:    reqData.Description,
		Priority:       priority,
		Status:         models.StatusOpen,
		IsCrisis:       isCrisis,
		CrisisKeywords: datatypes.JSON(keywordsJSON),
		SLADeadline:    rules.SLADeadline(now, slaHours),
		Attachments:    datatypes.JSON(attachmentsJSON),
	}
	if haveCategory {
		ticket.CategoryID = category.ID
	}

	if err := db.Create(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	// Alert counselors about crisis tickets without blocking the response
	if isCrisis {
		go func(t models.Ticket) {
			var counselors []models.User
			if err := database.Database.Db.
				Where("role = ? AND status = ? AND is_deleted = false", models.RoleCounselor, models.UserStatusActive).
				Find(&counselors).Error; err != nil {
				return
			}
			for _, counselor := range counselors {
				utils.SendCrisisAlertEmail(counselor.Email, counselor.Name, t.TicketNumber, t.Subject)
			}
		}(ticket)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Ticket created successfully!", withSLA(ticket))
}

// TicketList returns the caller's own tickets
func TicketList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	return listTickets(c, database.Database.Db.Model(&models.Ticket{}).
		Where("user_id = ? AND is_deleted = false", userId))
}

// TriageList returns all tickets for staff, with the full filter set
func TriageList(c *fiber.Ctx) error {
	return listTickets(c, database.Database.Db.Model(&models.Ticket{}).
		Where("is_deleted = false"))
}

func listTickets(c *fiber.Ctx, db *gorm.DB) error {
	reqData, ok := c.Locals("validatedTicketList").(*struct {
		Page       *int    `query:"page"`
		Limit      *int    `query:"limit"`
		Search     *string `query:"search"`
		Status     *string `query:"status"`
		Priority   *string `query:"priority"`
		Category   *uint   `query:"category"`
		AssignedTo *uint   `query:"assigned_to"`
		Crisis     *bool   `query:"crisis"`
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

	// Apply filters
	if reqData.Search != nil && strings.TrimSpace(*reqData.Search) != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(*reqData.Search)) + "%"
		db = db.Where("LOWER(subject) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ticket_number) LIKE ?", term, term, term)
	}
	if reqData.Status != nil {
		db = db.Where("status = ?", strings.ToUpper(*reqData.Status))
	}
	if reqData.Priority != nil {
		db = db.Where("priority = ?", strings.ToUpper(*reqData.Priority))
	}
	if reqData.Category != nil && *reqData.Category > 0 {
		db = db.Where("category_id = ?", *reqData.Category)
	}
	if reqData.AssignedTo != nil {
		db = db.Where("assigned_to = ?", *reqData.AssignedTo)
	}
	if reqData.Crisis != nil {
		db = db.Where("is_crisis = ?", *reqData.Crisis)
	}

	// Count total
	var total int64
	db.Count(&total)

	var tickets []models.Ticket
	if err := db.Preload("Category").
		Order("is_crisis DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&tickets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	views := make([]ticketView, len(tickets))
	for i, t := range tickets {
		views[i] = withSLA(t)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", fiber.Map{
		"tickets": views,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetTicket(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	ticketId, err := c.ParamsInt("id")
	if err != nil || ticketId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	var ticket models.Ticket
	if err := database.Database.Db.Preload("Category").Preload("Responses").
		Where("id = ? AND is_deleted = false", ticketId).
		First(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	role := requesterRole(userId)
	if !canAccessTicket(ticket, userId, role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}
	ticket.Responses = visibleResponses(ticket.Responses, role)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket fetched successfully!", withSLA(ticket))
}

// UpdateStatus moves a ticket along the status machine. Admins may reopen a
// closed ticket; everything else follows the forward transitions.
func UpdateStatus(c *fiber.Ctx) error {
	ticketId, err := c.ParamsInt("id")
	if err != nil || ticketId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	reqData, ok := c.Locals("validatedStatus").(*struct {
		Status string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var ticket models.Ticket
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", ticketId).
		First(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	role, _ := c.Locals("userRole").(string)
	adminReopen := role == models.RoleAdmin &&
		ticket.Status == models.StatusClosed && reqData.Status == models.StatusOpen

	if !rules.CanTransition(ticket.Status, reqData.Status) && !adminReopen {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Invalid status transition!", fiber.Map{
			"from": ticket.Status,
			"to":   reqData.Status,
		})
	}

	ticket.Status = reqData.Status
	if err := database.Database.Db.Save(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket status updated successfully!", withSLA(ticket))
}

// AssignTicket sets or clears the ticket's assignee
func AssignTicket(c *fiber.Ctx) error {
	ticketId, err := c.ParamsInt("id")
	if err != nil || ticketId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	reqData, ok := c.Locals("validatedAssign").(*struct {
		AssignedTo *uint `json:"assigned_to"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var ticket models.Ticket
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", ticketId).
		First(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	if reqData.AssignedTo != nil {
		var assignee models.User
		if err := database.Database.Db.
			Where("id = ? AND is_deleted = false AND role IN ?", *reqData.AssignedTo,
				[]string{models.RoleCounselor, models.RoleAdvisor, models.RoleAdmin}).
			First(&assignee).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Assignee must be an active staff member!", nil)
		}
	}

	ticket.AssignedTo = reqData.AssignedTo
	if ticket.Status == models.StatusOpen && reqData.AssignedTo != nil {
		ticket.Status = models.StatusInProgress
	}

	if err := database.Database.Db.Save(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket assigned successfully!", withSLA(ticket))
}

// RespondTicket appends a message to the ticket thread
func RespondTicket(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	ticketId, err := c.ParamsInt("id")
	if err != nil || ticketId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	reqData, ok := c.Locals("validatedResponse").(*struct {
		Message    string `json:"message"`
		IsInternal *bool  `json:"is_internal"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var ticket models.Ticket
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", ticketId).
		First(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	role := requesterRole(userId)
	if !canAccessTicket(ticket, userId, role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if ticket.Status == models.StatusClosed {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Ticket is closed and cannot receive responses!", nil)
	}

	response := models.TicketResponse{
		TicketID: ticket.ID,
		AuthorID: userId,
		Message:  reqData.Message,
	}
	// Internal notes are a staff channel; a student flag is ignored.
	if reqData.IsInternal != nil && isStaffRole(role) {
		response.IsInternal = *reqData.IsInternal
	}

	if err := database.Database.Db.Create(&response).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add response!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Response added successfully!", response)
}

// TicketStats returns triage dashboard counters
func TicketStats(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.Ticket{})

	stats := fiber.Map{}

	byStatus := fiber.Map{}
	for _, status := range []string{models.StatusOpen, models.StatusInProgress, models.StatusResolved, models.StatusClosed} {
		var count int64
		db.Session(&gorm.Session{}).Where("status = ? AND is_deleted = false", status).Count(&count)
		byStatus[status] = count
	}
	stats["by_status"] = byStatus

	byPriority := fiber.Map{}
	for _, priority := range []string{models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent} {
		var count int64
		db.Session(&gorm.Session{}).Where("priority = ? AND is_deleted = false", priority).Count(&count)
		byPriority[priority] = count
	}
	stats["by_priority"] = byPriority

	var crisis, overdue int64
	db.Session(&gorm.Session{}).Where("is_crisis = true AND is_deleted = false AND status IN ?",
		[]string{models.StatusOpen, models.StatusInProgress}).Count(&crisis)
	db.Session(&gorm.Session{}).Where("sla_deadline <= ? AND is_deleted = false AND status IN ?",
		time.Now(), []string{models.StatusOpen, models.StatusInProgress}).Count(&overdue)
	stats["crisis_open"] = crisis
	stats["overdue"] = overdue

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", stats)
}
