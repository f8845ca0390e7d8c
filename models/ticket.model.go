package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Ticket priorities
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Ticket statuses
const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
	StatusClosed     = "CLOSED"
)

type Ticket struct {
	gorm.Model
	TicketNumber   string         `json:"ticket_number" gorm:"unique;not null"`
	UserID         uint           `json:"user_id"`
	Subject        string         `json:"subject" gorm:"not null"`
	Description    string         `json:"description" gorm:"not null"`
	CategoryID     uint           `json:"category_id"`
	Priority       string         `json:"priority" gorm:"default:'MEDIUM'"`
	Status         string         `json:"status" gorm:"default:'OPEN'"`
	IsCrisis       bool           `json:"is_crisis" gorm:"default:false"`
	CrisisKeywords datatypes.JSON `json:"crisis_keywords"` // list of {keyword, severity}
	SLADeadline    time.Time      `json:"sla_deadline"`
	SLABreached    bool           `json:"sla_breached" gorm:"default:false"`
	AssignedTo     *uint          `json:"assigned_to"`
	Attachments    datatypes.JSON `json:"attachments"` // list of file references
	IsDeleted      bool           `json:"is_deleted" gorm:"default:false"`

	Category  Category         `json:"category" gorm:"foreignKey:CategoryID"`
	Responses []TicketResponse `json:"responses" gorm:"foreignKey:TicketID"`
}

// TicketResponse is a single message on a ticket's thread. Internal notes are
// visible to staff only.
type TicketResponse struct {
	gorm.Model
	TicketID   uint   `json:"ticket_id"`
	AuthorID   uint   `json:"author_id"`
	Message    string `json:"message" gorm:"not null"`
	IsInternal bool   `json:"is_internal" gorm:"default:false"`
}
