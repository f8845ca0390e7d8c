package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Request-key prefixes per entity family. Mutations invalidate by prefix so
// every dependent cached page goes stale together.
const (
	KeyFAQs       = "faqs"
	KeyCategories = "categories"
	KeyTickets    = "tickets"
	KeyUsers      = "users"
	KeyStats      = "stats"
)

// Pagination echoes the server's list metadata
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// Sync is the assembled data-synchronization layer: one shared cache, the
// query layer over it, and the mutation layer that keeps it consistent.
type Sync struct {
	API       *API
	Store     *Store
	Queries   *Queries
	Mutations *Mutations
}

// NewSync wires the layer together. The stale policy typically comes from
// config: fast-moving users/tickets around 2m, FAQs 5m, categories and
// stats 15m.
func NewSync(api *API, policy StalePolicy, retries int, backoff time.Duration, notifier Notifier) *Sync {
	store := NewStore()
	return &Sync{
		API:       api,
		Store:     store,
		Queries:   NewQueries(store, policy, retries, backoff),
		Mutations: NewMutations(store, notifier),
	}
}

// FAQPage is the cached value under a FAQ list key
type FAQPage struct {
	FAQs       []FAQ      `json:"faqs"`
	Pagination Pagination `json:"pagination"`
}

// FAQs fetches (or serves from cache) the FAQ list for a filter snapshot
func (s *Sync) FAQs(ctx context.Context, snap FilterSnapshot) (FAQPage, error) {
	key := snap.QueryKey(KeyFAQs)
	value, err := s.Queries.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		var page FAQPage
		if err := s.API.Get(ctx, "/faqs", listParams(snap), &page); err != nil {
			return nil, err
		}
		return page, nil
	})
	if value == nil {
		return FAQPage{}, err
	}
	return value.(FAQPage), err
}

// TicketPage is the cached value under a ticket list key
type TicketPage struct {
	Tickets    []Ticket   `json:"tickets"`
	Pagination Pagination `json:"pagination"`
}

// Tickets fetches the triage ticket list for a filter snapshot
func (s *Sync) Tickets(ctx context.Context, snap FilterSnapshot) (TicketPage, error) {
	key := snap.QueryKey(KeyTickets)
	value, err := s.Queries.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		var page TicketPage
		if err := s.API.Get(ctx, "/tickets/triage", listParams(snap), &page); err != nil {
			return nil, err
		}
		return page, nil
	})
	if value == nil {
		return TicketPage{}, err
	}
	return value.(TicketPage), err
}

// Categories fetches the category list (slow-moving, long staleness)
func (s *Sync) Categories(ctx context.Context) ([]Category, error) {
	value, err := s.Queries.Fetch(ctx, KeyCategories, func(ctx context.Context) (interface{}, error) {
		var data struct {
			Categories []Category `json:"categories"`
		}
		if err := s.API.Get(ctx, "/categories", nil, &data); err != nil {
			return nil, err
		}
		return data.Categories, nil
	})
	if value == nil {
		return nil, err
	}
	return value.([]Category), err
}

// UserPage is the cached value under a user list key
type UserPage struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// Users fetches the admin user list for a filter snapshot
func (s *Sync) Users(ctx context.Context, snap FilterSnapshot) (UserPage, error) {
	key := snap.QueryKey(KeyUsers)
	value, err := s.Queries.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		var page UserPage
		if err := s.API.Get(ctx, "/users", listParams(snap), &page); err != nil {
			return nil, err
		}
		return page, nil
	})
	if value == nil {
		return UserPage{}, err
	}
	return value.(UserPage), err
}

// ToggleFAQPublish flips a FAQ's publish flag optimistically: the cached
// detail entry updates immediately, rolls back if the server rejects, and
// all FAQ list pages plus category counts go stale on success.
func (s *Sync) ToggleFAQPublish(ctx context.Context, faq FAQ) (FAQ, error) {
	key := faqKey(faq.ID)
	s.Store.Reconcile(key, faq, time.Now())

	result, err := s.Mutations.Run(ctx, Mutation{
		Description:   "Toggle publish",
		OptimisticKey: key,
		Patch: func(old interface{}) interface{} {
			patched := old.(FAQ)
			patched.IsPublished = !patched.IsPublished
			return patched
		},
		Call: func(ctx context.Context) (interface{}, error) {
			var updated FAQ
			if err := s.API.Post(ctx, fmt.Sprintf("/faqs/%d/toggle-publish", faq.ID), nil, &updated); err != nil {
				return nil, err
			}
			return updated, nil
		},
		InvalidatePrefixes: []string{KeyFAQs, KeyCategories, KeyStats},
	})
	if err != nil {
		return faq, err
	}
	return result.(FAQ), nil
}

// UpdateTicketStatus moves a ticket along the status machine; ticket lists
// and stats go stale on success.
func (s *Sync) UpdateTicketStatus(ctx context.Context, ticketID uint, status string) (Ticket, error) {
	result, err := s.Mutations.Run(ctx, Mutation{
		Description: "Update ticket status",
		Call: func(ctx context.Context) (interface{}, error) {
			var updated Ticket
			body := map[string]string{"status": status}
			if err := s.API.Put(ctx, fmt.Sprintf("/tickets/%d/status", ticketID), body, &updated); err != nil {
				return nil, err
			}
			return updated, nil
		},
		InvalidatePrefixes: []string{KeyTickets, KeyStats},
	})
	if err != nil {
		return Ticket{}, err
	}
	return result.(Ticket), nil
}

// BulkUserAction applies one status action to many users and returns the
// per-item outcome; user list pages go stale on success.
func (s *Sync) BulkUserAction(ctx context.Context, ids []uint, action string) (BulkOutcome, error) {
	result, err := s.Mutations.Run(ctx, Mutation{
		Description: "Bulk user action",
		Call: func(ctx context.Context) (interface{}, error) {
			var outcome BulkOutcome
			body := map[string]interface{}{"ids": ids, "action": action}
			if err := s.API.Post(ctx, "/users/bulk-action", body, &outcome); err != nil {
				return nil, err
			}
			return outcome, nil
		},
		InvalidatePrefixes: []string{KeyUsers, KeyStats},
	})
	if err != nil {
		return BulkOutcome{}, err
	}
	return result.(BulkOutcome), nil
}

// BulkCreateRow is one candidate record of a bulk user creation
type BulkCreateRow struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role,omitempty"`
	Status     string `json:"status,omitempty"`
	Phone      string `json:"phone,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// BulkCreateResult classifies every submitted row
type BulkCreateResult struct {
	Created []struct {
		Index    int    `json:"index"`
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"created_users"`
	Skipped []struct {
		Index  int    `json:"index"`
		Email  string `json:"email"`
		Reason string `json:"reason"`
	} `json:"skipped"`
	Failed []struct {
		Index  int    `json:"index"`
		Email  string `json:"email"`
		Reason string `json:"reason"`
	} `json:"failed"`
}

var validate = validator.New()

// ValidateBulkRows runs the pre-submission check: every row needs a
// non-empty name and a syntactically valid email. Row index → message.
// The email rule is the same validator rule the server applies, so a row
// that passes here is never classified failed on syntax server-side.
func ValidateBulkRows(rows []BulkCreateRow) map[int]string {
	errors := make(map[int]string)
	for i, row := range rows {
		if row.Name == "" {
			errors[i] = "Name is required"
			continue
		}
		if validate.Var(row.Email, "required,email") != nil {
			errors[i] = "Invalid email address"
		}
	}
	return errors
}

// BulkCreateUsers submits candidate rows and returns the per-row
// classification with generated credentials for created accounts.
func (s *Sync) BulkCreateUsers(ctx context.Context, rows []BulkCreateRow) (BulkCreateResult, error) {
	if errs := ValidateBulkRows(rows); len(errs) > 0 {
		return BulkCreateResult{}, &APIError{StatusCode: 422, Message: "Validation failed!", FieldErrors: indexErrors(errs)}
	}

	result, err := s.Mutations.Run(ctx, Mutation{
		Description: "Bulk create users",
		Call: func(ctx context.Context) (interface{}, error) {
			var out BulkCreateResult
			body := map[string]interface{}{"users": rows}
			if err := s.API.Post(ctx, "/users/bulk-create", body, &out); err != nil {
				return nil, err
			}
			return out, nil
		},
		InvalidatePrefixes: []string{KeyUsers, KeyStats},
	})
	if err != nil {
		return BulkCreateResult{}, err
	}
	return result.(BulkCreateResult), nil
}

func listParams(snap FilterSnapshot) map[string]string {
	params := map[string]string{
		"page": strconv.Itoa(snap.Page),
	}
	if snap.Search != "" {
		params["search"] = snap.Search
	}
	if snap.SortKey != "" {
		params["sort"] = snap.SortKey
	}
	for key, value := range snap.Filters {
		if value != FilterAll && value != "" {
			params[key] = value
		}
	}
	return params
}

func faqKey(id uint) string {
	return fmt.Sprintf("%s/%d", KeyFAQs, id)
}

func indexErrors(errs map[int]string) map[string]string {
	out := make(map[string]string, len(errs))
	for i, message := range errs {
		out[fmt.Sprintf("row_%d", i)] = message
	}
	return out
}
