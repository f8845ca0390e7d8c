package client

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFAQs() []FAQ {
	faqs := make([]FAQ, 0, 10)
	for i := 1; i <= 10; i++ {
		faqs = append(faqs, FAQ{
			ID:          uint(i),
			CategoryID:  uint(1 + i%2),
			Question:    fmt.Sprintf("How do I request %d transcripts?", i),
			Answer:      "Submit the registrar form and wait two business days.",
			Tags:        []string{"registrar", "records"},
			IsPublished: i <= 6,
			IsFeatured:  i == 1,
			Helpful:     i,
		})
	}
	return faqs
}

func snapWith(filters map[string]string, search, sortKey string) FilterSnapshot {
	base := map[string]string{"category": FilterAll, "status": FilterAll}
	for k, v := range filters {
		base[k] = v
	}
	return FilterSnapshot{Search: search, Filters: base, SortKey: sortKey, Page: 1}
}

func TestFilterFAQsByPublishedStatus(t *testing.T) {
	result := FilterFAQs(sampleFAQs(), snapWith(map[string]string{"status": "published"}, "", ""))
	assert.Len(t, result, 6)
	for _, faq := range result {
		assert.True(t, faq.IsPublished)
	}
}

func TestFilterFAQsNoMatchesReturnsEmpty(t *testing.T) {
	result := FilterFAQs(sampleFAQs(), snapWith(nil, "steak", ""))
	assert.Empty(t, result)
}

func TestFilterFAQsSearchMatchesQuestionAnswerAndTags(t *testing.T) {
	faqs := sampleFAQs()

	assert.Len(t, FilterFAQs(faqs, snapWith(nil, "TRANSCRIPTS", "")), 10, "search is case-insensitive")
	assert.Len(t, FilterFAQs(faqs, snapWith(nil, "registrar form", "")), 10, "answer text matches")
	assert.Len(t, FilterFAQs(faqs, snapWith(nil, "records", "")), 10, "tags match")
}

func TestFilterFAQsByCategory(t *testing.T) {
	result := FilterFAQs(sampleFAQs(), snapWith(map[string]string{"category": "1"}, "", ""))
	require.NotEmpty(t, result)
	for _, faq := range result {
		assert.EqualValues(t, 1, faq.CategoryID)
	}
}

func TestFilterFAQsDraftAndFeatured(t *testing.T) {
	faqs := sampleFAQs()

	drafts := FilterFAQs(faqs, snapWith(map[string]string{"status": "draft"}, "", ""))
	assert.Len(t, drafts, 4)

	featured := FilterFAQs(faqs, snapWith(map[string]string{"status": "featured"}, "", ""))
	require.Len(t, featured, 1)
	assert.EqualValues(t, 1, featured[0].ID)
}

func TestFilterFAQsSortByHelpful(t *testing.T) {
	result := FilterFAQs(sampleFAQs(), snapWith(nil, "", "helpful"))
	require.Len(t, result, 10)
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Helpful, result[i].Helpful)
	}
}

func TestFilterTicketsCrisisFirst(t *testing.T) {
	now := time.Now()
	tickets := []Ticket{
		{ID: 1, Subject: "Late fee dispute", Priority: "URGENT", Status: "OPEN", CreatedAt: now},
		{ID: 2, Subject: "I feel hopeless", Priority: "LOW", Status: "OPEN", IsCrisis: true, CreatedAt: now.Add(-time.Hour)},
		{ID: 3, Subject: "Parking permit", Priority: "HIGH", Status: "OPEN", CreatedAt: now.Add(-2 * time.Hour)},
	}

	result := FilterTickets(tickets, snapWith(map[string]string{"priority": FilterAll}, "", ""))
	require.Len(t, result, 3)
	assert.EqualValues(t, 2, result[0].ID, "crisis tickets sort ahead of even URGENT ones")
	assert.EqualValues(t, 1, result[1].ID)
	assert.EqualValues(t, 3, result[2].ID)
}

func TestFilterTicketsByStatusAndPriority(t *testing.T) {
	tickets := []Ticket{
		{ID: 1, Subject: "a", Priority: "HIGH", Status: "OPEN"},
		{ID: 2, Subject: "b", Priority: "LOW", Status: "RESOLVED"},
		{ID: 3, Subject: "c", Priority: "HIGH", Status: "RESOLVED"},
	}

	result := FilterTickets(tickets, snapWith(map[string]string{"status": "resolved", "priority": "high"}, "", ""))
	require.Len(t, result, 1)
	assert.EqualValues(t, 3, result[0].ID)
}

func TestFilterTicketsSearchesNumberSubjectDescription(t *testing.T) {
	tickets := []Ticket{
		{ID: 1, TicketNumber: "TKT-AB12CD34", Subject: "Billing", Description: "double charge on tuition"},
		{ID: 2, TicketNumber: "TKT-EF56GH78", Subject: "Housing", Description: "broken heater"},
	}

	byNumber := FilterTickets(tickets, snapWith(map[string]string{"priority": FilterAll}, "ab12", ""))
	require.Len(t, byNumber, 1)
	assert.EqualValues(t, 1, byNumber[0].ID)

	byDescription := FilterTickets(tickets, snapWith(map[string]string{"priority": FilterAll}, "heater", ""))
	require.Len(t, byDescription, 1)
	assert.EqualValues(t, 2, byDescription[0].ID)
}
