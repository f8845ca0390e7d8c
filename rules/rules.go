// Package rules holds the pure business evaluators shared by the server
// handlers and the dashboard client: crisis-keyword detection, SLA countdown,
// helpfulness scoring and the ticket status machine. Nothing here touches the
// database or the network.
package rules

import (
	"math"
	"sdesk/models"
)

// HelpfulnessRate returns the helpful-vote percentage as an integer in
// [0,100]. Zero votes yields 0, never a division by zero.
func HelpfulnessRate(helpful, notHelpful int) int {
	total := helpful + notHelpful
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(helpful) / float64(total) * 100))
}

// CanTransition reports whether a ticket status change is allowed by the
// forward machine: OPEN → IN_PROGRESS → RESOLVED → CLOSED, with fast-track
// resolution straight from OPEN. Backward moves are not modeled here.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case models.StatusOpen:
		return to == models.StatusInProgress || to == models.StatusResolved || to == models.StatusClosed
	case models.StatusInProgress:
		return to == models.StatusResolved || to == models.StatusClosed
	case models.StatusResolved:
		return to == models.StatusClosed
	default:
		return false
	}
}

// EscalatePriority returns the next priority step up, capping at URGENT.
func EscalatePriority(priority string) string {
	switch priority {
	case models.PriorityLow:
		return models.PriorityMedium
	case models.PriorityMedium:
		return models.PriorityHigh
	default:
		return models.PriorityUrgent
	}
}

// PriorityRank orders priorities for sorting, URGENT highest.
func PriorityRank(priority string) int {
	switch priority {
	case models.PriorityUrgent:
		return 4
	case models.PriorityHigh:
		return 3
	case models.PriorityMedium:
		return 2
	case models.PriorityLow:
		return 1
	default:
		return 0
	}
}

// PriorityColor maps a priority to its display token.
func PriorityColor(priority string) string {
	switch priority {
	case models.PriorityUrgent:
		return "red"
	case models.PriorityHigh:
		return "orange"
	case models.PriorityMedium:
		return "yellow"
	case models.PriorityLow:
		return "green"
	default:
		return "gray"
	}
}
