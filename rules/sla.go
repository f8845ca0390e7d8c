package rules

import (
	"fmt"
	"time"
)

// SLAStatus is the bucketed countdown for a ticket's response deadline.
type SLAStatus struct {
	RemainingLabel string `json:"remaining_label"`
	Urgent         bool   `json:"urgent"`
	Overdue        bool   `json:"overdue"`
}

// SLADeadline derives a ticket's response deadline from its creation time and
// the category's SLA window.
func SLADeadline(createdAt time.Time, slaHours int) time.Time {
	return createdAt.Add(time.Duration(slaHours) * time.Hour)
}

// SLARemaining buckets the time left until deadline: minutes under an hour,
// hours under a day, days beyond that. Overdue is true for any deadline in
// the past, no matter how recent. Urgent flags the final hour.
func SLARemaining(deadline, now time.Time) SLAStatus {
	remaining := deadline.Sub(now)

	if remaining <= 0 {
		return SLAStatus{
			RemainingLabel: "Overdue by " + formatSpan(-remaining),
			Overdue:        true,
		}
	}

	return SLAStatus{
		RemainingLabel: formatSpan(remaining) + " left",
		Urgent:         remaining < time.Hour,
	}
}

func formatSpan(d time.Duration) string {
	switch {
	case d < time.Hour:
		minutes := int(d.Minutes())
		if minutes < 1 {
			minutes = 1
		}
		return fmt.Sprintf("%dm", minutes)
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
