package utils

import (
	"fmt"
	"log"
	"sdesk/database"
	"sdesk/models"
	"sdesk/rules"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SLA-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// processOverdueTickets marks unresolved tickets past their SLA deadline as
// breached and escalates their priority one step. Runs every minute; a ticket
// is only escalated once since sla_breached gates the update.
func processOverdueTickets() {
	db := database.Database.Db
	now := time.Now()

	var tickets []models.Ticket
	if err := db.Where("sla_deadline <= ? AND sla_breached = false AND is_deleted = false", now).
		Where("status IN ?", []string{models.StatusOpen, models.StatusInProgress}).
		Find(&tickets).Error; err != nil {
		logScheduler("Error fetching overdue tickets: " + err.Error())
		return
	}

	for _, ticket := range tickets {
		ticket.SLABreached = true
		ticket.Priority = rules.EscalatePriority(ticket.Priority)
		if err := db.Save(&ticket).Error; err != nil {
			logScheduler("Error escalating ticket " + ticket.TicketNumber + ": " + err.Error())
			continue
		}
		logScheduler("Ticket " + ticket.TicketNumber + " breached SLA, escalated to " + ticket.Priority)
	}
}

// logDailyDigest writes a one-line summary of open workload
func logDailyDigest() {
	db := database.Database.Db

	var open, breached int64
	db.Model(&models.Ticket{}).
		Where("status IN ? AND is_deleted = false", []string{models.StatusOpen, models.StatusInProgress}).
		Count(&open)
	db.Model(&models.Ticket{}).
		Where("sla_breached = true AND status IN ? AND is_deleted = false", []string{models.StatusOpen, models.StatusInProgress}).
		Count(&breached)

	logScheduler(fmt.Sprintf("Daily digest: %d open tickets, %d past SLA", open, breached))
}

// StartOverdueScheduler runs every minute to catch SLA breaches
func StartOverdueScheduler(c *cron.Cron) {
	c.AddFunc("* * * * *", func() {
		processOverdueTickets()
	})
	logScheduler("Overdue scheduler started - runs every minute")
}

// StartDigestScheduler runs the daily digest at 8 AM
func StartDigestScheduler(c *cron.Cron) {
	c.AddFunc("0 8 * * *", func() {
		logDailyDigest()
	})
	logScheduler("Digest scheduler started - runs daily at 8 AM")
}

// InitializeSLASchedulers initializes all SLA schedulers
func InitializeSLASchedulers() *cron.Cron {
	logScheduler("Initializing SLA schedulers...")

	c := cron.New()

	StartOverdueScheduler(c)
	StartDigestScheduler(c)

	c.Start()

	logScheduler("All SLA schedulers initialized successfully")
	return c
}
