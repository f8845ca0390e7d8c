package ticketControllers

import (
	"testing"

	"sdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStaffRole(t *testing.T) {
	assert.True(t, isStaffRole(models.RoleCounselor))
	assert.True(t, isStaffRole(models.RoleAdvisor))
	assert.True(t, isStaffRole(models.RoleAdmin))
	assert.False(t, isStaffRole(models.RoleStudent))
	assert.False(t, isStaffRole(""))
}

func TestCanAccessTicket(t *testing.T) {
	ticket := models.Ticket{UserID: 7}

	assert.True(t, canAccessTicket(ticket, 7, models.RoleStudent), "the owner always has access")
	assert.False(t, canAccessTicket(ticket, 8, models.RoleStudent), "another student does not")
	assert.False(t, canAccessTicket(ticket, 8, ""), "unknown role does not")
	assert.True(t, canAccessTicket(ticket, 8, models.RoleCounselor))
	assert.True(t, canAccessTicket(ticket, 8, models.RoleAdmin))
}

func TestVisibleResponsesHidesInternalNotesFromStudents(t *testing.T) {
	responses := []models.TicketResponse{
		{Message: "public reply", IsInternal: false},
		{Message: "staff-only note", IsInternal: true},
		{Message: "follow-up", IsInternal: false},
	}

	student := visibleResponses(responses, models.RoleStudent)
	require.Len(t, student, 2)
	for _, r := range student {
		assert.False(t, r.IsInternal)
	}

	staff := visibleResponses(responses, models.RoleCounselor)
	assert.Len(t, staff, 3)
}
