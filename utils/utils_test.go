package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "academic-advising", Slugify("Academic Advising"))
	assert.Equal(t, "housing-meal-plans", Slugify("  Housing & Meal Plans  "))
	assert.Equal(t, "counseling", Slugify("Counseling!"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane.doe@campus.edu"))
	assert.False(t, IsValidEmail("jane.doe"))
	assert.False(t, IsValidEmail("@campus.edu"))
	assert.False(t, IsValidEmail(""))
}

func TestGenerateTicketNumber(t *testing.T) {
	a := GenerateTicketNumber()
	b := GenerateTicketNumber()
	assert.True(t, strings.HasPrefix(a, "TKT-"))
	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}

func TestParseUserImportCSV(t *testing.T) {
	input := strings.NewReader(
		"name,email,role,status\n" +
			"Jane Doe,jane@campus.edu,student,active\n" +
			"John Roe,john@campus.edu,COUNSELOR,ACTIVE\n")

	rows, err := ParseUserImportCSV(input)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Jane Doe", rows[0].Name)
	assert.Equal(t, "jane@campus.edu", rows[0].Email)
	assert.Equal(t, "STUDENT", rows[0].Role, "role should be upcased")
	assert.Equal(t, "COUNSELOR", rows[1].Role)
}

func TestParseUserImportCSVReorderedColumns(t *testing.T) {
	input := strings.NewReader(
		"email,name\n" +
			"jane@campus.edu,Jane Doe\n")

	rows, err := ParseUserImportCSV(input)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jane Doe", rows[0].Name)
	assert.Equal(t, "jane@campus.edu", rows[0].Email)
}

func TestParseUserImportCSVMissingColumns(t *testing.T) {
	_, err := ParseUserImportCSV(strings.NewReader("name,phone\nJane,555\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	_, err = ParseUserImportCSV(strings.NewReader("name,email\n"))
	require.Error(t, err)
}

func TestUserImportTemplateRoundTrip(t *testing.T) {
	rows, err := ParseUserImportCSV(strings.NewReader(string(UserImportTemplate())))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "jane.doe@campus.edu", rows[0].Email)
}
