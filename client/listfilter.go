package client

import (
	"sort"
	"strconv"
	"strings"

	"sdesk/rules"
)

// FilterFAQs applies a filter snapshot to an already-loaded FAQ list. Used
// by views that filter locally over the cached page instead of round-tripping
// every change; an empty result means the "no results" state is shown.
func FilterFAQs(faqs []FAQ, snap FilterSnapshot) []FAQ {
	search := strings.ToLower(strings.TrimSpace(snap.Search))
	category := snap.Filters["category"]
	status := snap.Filters["status"]

	result := make([]FAQ, 0, len(faqs))
	for _, faq := range faqs {
		if search != "" && !faqMatches(faq, search) {
			continue
		}
		if category != FilterAll && category != "" {
			if strconv.FormatUint(uint64(faq.CategoryID), 10) != category {
				continue
			}
		}
		switch status {
		case "published":
			if !faq.IsPublished {
				continue
			}
		case "draft":
			if faq.IsPublished {
				continue
			}
		case "featured":
			if !faq.IsFeatured {
				continue
			}
		}
		result = append(result, faq)
	}

	if snap.SortKey == "helpful" {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Helpful > result[j].Helpful
		})
	}
	return result
}

func faqMatches(faq FAQ, search string) bool {
	if strings.Contains(strings.ToLower(faq.Question), search) {
		return true
	}
	if strings.Contains(strings.ToLower(faq.Answer), search) {
		return true
	}
	for _, tag := range faq.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// FilterTickets applies a filter snapshot to a loaded ticket list. Crisis
// tickets sort first, then by priority, then newest.
func FilterTickets(tickets []Ticket, snap FilterSnapshot) []Ticket {
	search := strings.ToLower(strings.TrimSpace(snap.Search))
	status := snap.Filters["status"]
	priority := snap.Filters["priority"]

	result := make([]Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if search != "" &&
			!strings.Contains(strings.ToLower(ticket.Subject), search) &&
			!strings.Contains(strings.ToLower(ticket.Description), search) &&
			!strings.Contains(strings.ToLower(ticket.TicketNumber), search) {
			continue
		}
		if status != FilterAll && status != "" && !strings.EqualFold(ticket.Status, status) {
			continue
		}
		if priority != FilterAll && priority != "" && !strings.EqualFold(ticket.Priority, priority) {
			continue
		}
		result = append(result, ticket)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].IsCrisis != result[j].IsCrisis {
			return result[i].IsCrisis
		}
		ri, rj := rules.PriorityRank(result[i].Priority), rules.PriorityRank(result[j].Priority)
		if ri != rj {
			return ri > rj
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
