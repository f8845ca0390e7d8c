package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormCrisisDetectionLocksPriority(t *testing.T) {
	form := NewTicketForm()
	form.SetCrisisCategory(9)
	form.SetPriority("LOW")

	form.SetDescription("I have been feeling hopeless about everything lately")

	assert.True(t, form.IsCrisis)
	assert.True(t, form.PriorityLocked)
	assert.Equal(t, "URGENT", form.Priority)
	assert.EqualValues(t, 9, form.CategoryID, "the crisis category is auto-selected")
	require.NotEmpty(t, form.CrisisMatches)
	assert.Equal(t, "hopeless", form.CrisisMatches[0].Keyword)
}

func TestFormLockedPriorityIgnoresUserChanges(t *testing.T) {
	form := NewTicketForm()
	form.SetDescription("I want to end my life")
	require.True(t, form.PriorityLocked)

	form.SetPriority("LOW")
	assert.Equal(t, "URGENT", form.Priority, "the safety escalation cannot be overridden")
}

func TestFormClearingTextRestoresUserPriority(t *testing.T) {
	form := NewTicketForm()
	form.SetPriority("HIGH")
	form.SetDescription("thinking about self-harm again")
	require.True(t, form.IsCrisis)

	form.SetDescription("I lost my library card")

	assert.False(t, form.IsCrisis)
	assert.False(t, form.PriorityLocked)
	assert.Equal(t, "HIGH", form.Priority, "the pre-detection choice comes back")
	assert.Empty(t, form.CrisisMatches)
}

func TestFormSubjectAlsoTriggersDetection(t *testing.T) {
	form := NewTicketForm()
	form.SetSubject("overdose question")
	assert.True(t, form.IsCrisis)
}

func TestFormValidate(t *testing.T) {
	form := NewTicketForm()
	assert.False(t, form.Validate())
	assert.Contains(t, form.Errors, "subject")
	assert.Contains(t, form.Errors, "description")

	form.SetSubject("Transcript request")
	form.SetDescription("too short")
	assert.False(t, form.Validate())
	assert.NotContains(t, form.Errors, "subject")
	assert.Contains(t, form.Errors, "description")

	form.SetDescription("I need three official transcripts sent to my grad school")
	assert.True(t, form.Validate())
	assert.Empty(t, form.Errors)
}

func TestFormMergeServerErrors(t *testing.T) {
	form := NewTicketForm()
	form.Validate()

	form.MergeServerErrors(&APIError{
		StatusCode:  422,
		Message:     "Validation failed!",
		FieldErrors: map[string]string{"category_id": "Category not found!"},
	})
	assert.Equal(t, "Category not found!", form.Errors["category_id"])

	// Non-validation errors leave the map untouched.
	before := len(form.Errors)
	form.MergeServerErrors(errors.New("timeout"))
	assert.Len(t, form.Errors, before)
}
