package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// IsValidEmail checks email syntax only; deliverability is not our problem.
func IsValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a category name into a URL-safe slug
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalid.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GenerateTicketNumber creates a short unique ticket reference, e.g. TKT-9F2C41AB
func GenerateTicketNumber() string {
	id := uuid.New().String()
	return "TKT-" + strings.ToUpper(id[:8])
}

// GeneratePassword creates a temporary credential for bulk-created accounts.
// Users are expected to change it on first login.
func GeneratePassword() string {
	id := uuid.New().String()
	return fmt.Sprintf("Sd-%s!%s", id[:6], id[24:28])
}
