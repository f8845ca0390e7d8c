package client

import "log"

// Notifier receives the transient user-facing outcome of every mutation.
// Dashboards plug in their toast system; the default logs.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type logNotifier struct{}

func (logNotifier) Success(message string) { log.Printf("[OK] %s", message) }
func (logNotifier) Error(message string)   { log.Printf("[ERR] %s", message) }

// LogNotifier returns the default log-backed notifier
func LogNotifier() Notifier { return logNotifier{} }
