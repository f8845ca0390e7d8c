package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"sdesk/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(w http.ResponseWriter, code int, status bool, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func newTestSync(handler http.Handler) (*Sync, *httptest.Server) {
	server := httptest.NewServer(handler)
	api := NewAPI(server.URL, "test-token")
	policy := StalePolicy{KeyFAQs: 5 * time.Minute, KeyTickets: 2 * time.Minute}
	return NewSync(api, policy, 0, 0, &recordingNotifier{}), server
}

func TestSyncFAQsFetchAndCache(t *testing.T) {
	var hits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/faqs", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "published", r.URL.Query().Get("status"))
		envelope(w, 200, true, "FAQ list.", FAQPage{
			FAQs:       []FAQ{{ID: 1, Question: "How do I reset my password?", IsPublished: true}},
			Pagination: Pagination{Total: 1, Page: 1, Limit: 10},
		})
	})

	sync, server := newTestSync(mux)
	defer server.Close()

	snap := snapWith(map[string]string{"status": "published"}, "", "newest")
	page, err := sync.FAQs(context.Background(), snap)
	require.NoError(t, err)
	require.Len(t, page.FAQs, 1)
	assert.EqualValues(t, 1, page.Pagination.Total)

	// The second identical read is a cache hit.
	_, err = sync.FAQs(context.Background(), snap)
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits)
}

func TestSyncServerRejectionMapsFieldErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tickets/5/status", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, 422, false, "Validation failed!", map[string]string{"status": "Invalid status transition!"})
	})

	sync, server := newTestSync(mux)
	defer server.Close()

	_, err := sync.UpdateTicketStatus(context.Background(), 5, "CLOSED")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, 422, apiErr.StatusCode)
	assert.Equal(t, "Invalid status transition!", apiErr.FieldErrors["status"])
}

func TestSyncTogglePublishRollsBackOnFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/faqs/1/toggle-publish", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, 500, false, "Something went wrong. Please try again!", nil)
	})

	sync, server := newTestSync(mux)
	defer server.Close()

	faq := FAQ{ID: 1, Question: "q", IsPublished: false}
	_, err := sync.ToggleFAQPublish(context.Background(), faq)
	require.Error(t, err)

	value, _, ok := sync.Store.Get("faqs/1")
	require.True(t, ok)
	assert.False(t, value.(FAQ).IsPublished, "the cached flag reverts when the server rejects")
}

func TestSyncTogglePublishInvalidatesLists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/faqs/1/toggle-publish", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, 200, true, "FAQ updated.", FAQ{ID: 1, IsPublished: true})
	})

	sync, server := newTestSync(mux)
	defer server.Close()

	now := time.Now()
	listKey := snapWith(nil, "", "newest").QueryKey(KeyFAQs)
	sync.Store.Write(listKey, FAQPage{}, sync.Store.NextSeq(), now)
	sync.Store.Write(KeyCategories, []Category{}, sync.Store.NextSeq(), now)

	updated, err := sync.ToggleFAQPublish(context.Background(), FAQ{ID: 1, IsPublished: false})
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)

	assert.True(t, sync.Store.IsStale(listKey, time.Hour, now), "list pages go stale after the toggle")
	assert.True(t, sync.Store.IsStale(KeyCategories, time.Hour, now), "category counts go stale too")
	assert.False(t, sync.Store.IsStale("faqs/1", time.Hour, now))
}

func TestValidateBulkRows(t *testing.T) {
	rows := []BulkCreateRow{
		{Name: "Asha Patel", Email: "asha@campus.edu"},
		{Name: "", Email: "noname@campus.edu"},
		{Name: "Bad Email", Email: "not-an-email"},
		{Name: "Spaced", Email: "a b@campus.edu"},
		{Name: "Double At", Email: "a@b@c.com"},
	}

	errs := ValidateBulkRows(rows)
	assert.Len(t, errs, 4)
	assert.NotContains(t, errs, 0)
	assert.Equal(t, "Name is required", errs[1])
	assert.Equal(t, "Invalid email address", errs[2])
	assert.Equal(t, "Invalid email address", errs[3])
	assert.Equal(t, "Invalid email address", errs[4])
}

func TestValidateBulkRowsAgreesWithServerEmailCheck(t *testing.T) {
	// A row passing the pre-submission gate must never be classified failed
	// on email syntax server-side, and vice versa.
	emails := []string{
		"asha@campus.edu",
		"x@y.co",
		"a@b@c.com",
		"a@-b.com",
		"not-an-email",
		"a b@campus.edu",
		"trailing@dot.",
		"@nolocal.edu",
		"",
	}

	for _, email := range emails {
		errs := ValidateBulkRows([]BulkCreateRow{{Name: "Row Name", Email: email}})
		_, flagged := errs[0]
		assert.Equal(t, !utils.IsValidEmail(email), flagged,
			"client gate and server check disagree on %q", email)
	}
}

func TestSyncBulkCreateRejectsInvalidRowsLocally(t *testing.T) {
	var hits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/bulk-create", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		envelope(w, 200, true, "ok", BulkCreateResult{})
	})

	sync, server := newTestSync(mux)
	defer server.Close()

	_, err := sync.BulkCreateUsers(context.Background(), []BulkCreateRow{{Name: "", Email: "x@y.edu"}})
	require.Error(t, err)
	assert.EqualValues(t, 0, hits, "invalid rows never reach the network")

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "Name is required", apiErr.FieldErrors["row_0"])
}
