// Package client is the data-synchronization layer used by the admin
// dashboards and CLI tooling: a keyed cache of server-owned entities with
// staleness-driven background refresh, deduplicated reads, optimistic
// mutations with rollback, and debounced filter state. All server entities
// are cached copies; the server response is always authoritative.
package client

import (
	"sdesk/rules"
	"time"
)

// FAQ mirrors the server's FAQ JSON shape
type FAQ struct {
	ID              uint      `json:"ID"`
	CategoryID      uint      `json:"category_id"`
	Question        string    `json:"question"`
	Answer          string    `json:"answer"`
	Tags            []string  `json:"tags"`
	IsPublished     bool      `json:"is_published"`
	IsFeatured      bool      `json:"is_featured"`
	Helpful         int       `json:"helpful"`
	NotHelpful      int       `json:"not_helpful"`
	CreatedBy       uint      `json:"created_by"`
	HelpfulnessRate int       `json:"helpfulness_rate"`
	CreatedAt       time.Time `json:"CreatedAt"`
	UpdatedAt       time.Time `json:"UpdatedAt"`
}

// Category mirrors the server's Category JSON shape
type Category struct {
	ID            uint   `json:"ID"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Color         string `json:"color"`
	IsActive      bool   `json:"is_active"`
	SortOrder     int    `json:"sort_order"`
	SLAHours      int    `json:"sla_hours"`
	CrisisEnabled bool   `json:"crisis_enabled"`
	FAQCount      int64  `json:"faq_count"`
}

// Ticket mirrors the server's ticket JSON shape
type Ticket struct {
	ID             uint                 `json:"ID"`
	TicketNumber   string               `json:"ticket_number"`
	Subject        string               `json:"subject"`
	Description    string               `json:"description"`
	CategoryID     uint                 `json:"category_id"`
	Priority       string               `json:"priority"`
	Status         string               `json:"status"`
	IsCrisis       bool                 `json:"is_crisis"`
	CrisisKeywords []rules.KeywordMatch `json:"crisis_keywords"`
	SLADeadline    time.Time            `json:"sla_deadline"`
	SLABreached    bool                 `json:"sla_breached"`
	AssignedTo     *uint                `json:"assigned_to"`
	SLA            rules.SLAStatus      `json:"sla"`
	CreatedAt      time.Time            `json:"CreatedAt"`
}

// User mirrors the server's user JSON shape
type User struct {
	ID        uint       `json:"ID"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	Phone     string     `json:"phone"`
	StudentID string     `json:"student_id"`
	LastLogin *time.Time `json:"last_login"`
}

// BulkOutcome is the shared result shape of bulk mutations. Partial success
// stays representable: succeeded count plus one error per failed item.
type BulkOutcome struct {
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Errors    []ItemError `json:"errors"`
}

// ItemError identifies one failed item of a bulk operation
type ItemError struct {
	Index int    `json:"index"`
	ID    uint   `json:"id"`
	Error string `json:"error"`
}
