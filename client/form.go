package client

import (
	"strings"

	"sdesk/rules"
)

// TicketForm is the view state behind the ticket submission form. Crisis
// detection runs on every description change; once it fires, priority is
// forced to URGENT and the priority selector locks so the safety signal
// cannot be contradicted. The lock releases only when the triggering text
// no longer matches.
type TicketForm struct {
	Subject     string
	Description string
	CategoryID  uint
	Priority    string

	IsCrisis       bool
	CrisisMatches  []rules.KeywordMatch
	PriorityLocked bool

	// priority the user had picked before detection fired, restored on clear
	userPriority string

	// crisis-enabled category auto-selected on detection, when available
	crisisCategoryID uint

	Errors map[string]string
}

func NewTicketForm() *TicketForm {
	return &TicketForm{Priority: "MEDIUM", userPriority: "MEDIUM", Errors: map[string]string{}}
}

// SetCrisisCategory tells the form which category to auto-select when
// detection fires (0 when none is configured).
func (f *TicketForm) SetCrisisCategory(categoryID uint) {
	f.crisisCategoryID = categoryID
}

// SetPriority records a user priority choice. Ignored while the crisis lock
// is active.
func (f *TicketForm) SetPriority(priority string) {
	if f.PriorityLocked {
		return
	}
	f.Priority = priority
	f.userPriority = priority
}

// SetCategory records a user category choice
func (f *TicketForm) SetCategory(categoryID uint) {
	f.CategoryID = categoryID
}

// SetSubject updates the subject and re-runs detection
func (f *TicketForm) SetSubject(subject string) {
	f.Subject = subject
	f.rescan()
}

// SetDescription updates the description and re-runs detection
func (f *TicketForm) SetDescription(description string) {
	f.Description = description
	f.rescan()
}

func (f *TicketForm) rescan() {
	matched, matches := rules.DetectCrisis(f.Subject + " " + f.Description)

	if matched && !f.IsCrisis {
		// Detection fired: escalate and lock.
		f.IsCrisis = true
		f.PriorityLocked = true
		f.Priority = "URGENT"
		if f.crisisCategoryID != 0 {
			f.CategoryID = f.crisisCategoryID
		}
	}
	if !matched && f.IsCrisis {
		// Triggering text cleared: release the lock and restore the choice.
		f.IsCrisis = false
		f.PriorityLocked = false
		f.Priority = f.userPriority
	}
	f.CrisisMatches = matches
}

// Validate runs the pre-submission checks and fills Errors per field.
// Validation failures never reach the mutation layer.
func (f *TicketForm) Validate() bool {
	f.Errors = map[string]string{}

	if strings.TrimSpace(f.Subject) == "" {
		f.Errors["subject"] = "Subject is required!"
	}
	description := strings.TrimSpace(f.Description)
	if description == "" {
		f.Errors["description"] = "Description is required!"
	} else if len(description) < 20 {
		f.Errors["description"] = "Description must be at least 20 characters long!"
	}

	return len(f.Errors) == 0
}

// MergeServerErrors folds per-field server validation messages into the same
// inline error map the local checks use — one presentation channel, not two.
func (f *TicketForm) MergeServerErrors(err error) {
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.FieldErrors == nil {
		return
	}
	if f.Errors == nil {
		f.Errors = map[string]string{}
	}
	for field, message := range apiErr.FieldErrors {
		f.Errors[field] = message
	}
}
