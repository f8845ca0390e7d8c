package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sdesk/models"
	"strings"
	"time"
)

// UserImportRow is one parsed line of a bulk user import
type UserImportRow struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Phone      string `json:"phone"`
	StudentID  string `json:"student_id"`
	EmployeeID string `json:"employee_id"`
}

var userImportHeader = []string{"name", "email", "role", "status", "phone", "student_id", "employee_id"}

// UserImportTemplate returns the CSV template admins download before a bulk import
func UserImportTemplate() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(userImportHeader)
	w.Write([]string{"Jane Doe", "jane.doe@campus.edu", "STUDENT", "ACTIVE", "555-0100", "S1234567", ""})
	w.Flush()
	return buf.Bytes()
}

// ParseUserImportCSV reads an uploaded CSV into import rows. Column order
// follows the header line, so reordered or partial templates still parse.
func ParseUserImportCSV(r io.Reader) ([]UserImportRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file is empty or has only headers")
	}

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := headerIndex["name"]; !ok {
		return nil, fmt.Errorf("CSV is missing the name column")
	}
	if _, ok := headerIndex["email"]; !ok {
		return nil, fmt.Errorf("CSV is missing the email column")
	}

	field := func(row []string, key string) string {
		idx, ok := headerIndex[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	rows := make([]UserImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, UserImportRow{
			Name:       field(record, "name"),
			Email:      field(record, "email"),
			Role:       strings.ToUpper(field(record, "role")),
			Status:     strings.ToUpper(field(record, "status")),
			Phone:      field(record, "phone"),
			StudentID:  field(record, "student_id"),
			EmployeeID: field(record, "employee_id"),
		})
	}
	return rows, nil
}

// ExportUsersCSV renders the current filtered user list as a downloadable CSV
func ExportUsersCSV(users []models.User) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"id", "name", "email", "role", "status", "phone", "student_id", "employee_id", "created_at"})
	for _, u := range users {
		w.Write([]string{
			fmt.Sprintf("%d", u.ID),
			u.Name,
			u.Email,
			u.Role,
			u.Status,
			u.Phone,
			u.StudentID,
			u.EmployeeID,
			u.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	return buf.Bytes()
}
