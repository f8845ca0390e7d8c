package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBDriver  string // "postgres" or "sqlite"
	DBName    string
	JWTKey    string
	SaltRound int

	SendGridKey string
	EmailSender string

	// Default SLA window applied when a ticket's category has none.
	DefaultSLAHours int

	// Staleness thresholds for the client-side entity cache. Lists that
	// change often (users, tickets) refresh sooner than slow-moving data
	// (categories, stats). Tunable policy, not a contract.
	StaleUsers      time.Duration
	StaleTickets    time.Duration
	StaleFAQs       time.Duration
	StaleCategories time.Duration

	// Search debounce interval for dashboard filter inputs.
	SearchDebounce time.Duration

	// Read retry policy for the client query layer. Mutations are never
	// retried automatically.
	ReadRetries      int
	ReadRetryBackoff time.Duration
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBDriver:  getEnv("DB_DRIVER", "postgres"),
		DBName:    getEnv("DB_NAME", "sdesk.db"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "noreply@sdesk.local"),

		DefaultSLAHours: getEnvInt("DEFAULT_SLA_HOURS", 48),

		StaleUsers:      getEnvDuration("STALE_USERS", 2*time.Minute),
		StaleTickets:    getEnvDuration("STALE_TICKETS", 2*time.Minute),
		StaleFAQs:       getEnvDuration("STALE_FAQS", 5*time.Minute),
		StaleCategories: getEnvDuration("STALE_CATEGORIES", 15*time.Minute),

		SearchDebounce: getEnvDuration("SEARCH_DEBOUNCE", 400*time.Millisecond),

		ReadRetries:      getEnvInt("READ_RETRIES", 2),
		ReadRetryBackoff: getEnvDuration("READ_RETRY_BACKOFF", 500*time.Millisecond),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendGridKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Credential emails will be skipped.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvDuration retrieves an environment variable as a duration (e.g. "5m", "400ms")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to duration: %v", key, err)
		return defaultValue
	}
	return d
}
