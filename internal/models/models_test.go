package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumLabels(t *testing.T) {
	assert.Equal(t, "In Progress", StatusInProgress.Label())
	assert.Equal(t, "Open", StatusOpen.Label())
	assert.Equal(t, "Maintenance", TypeMaintenance.Label())
	assert.Equal(t, "Medium", PriorityMedium.Label())
	assert.Equal(t, "Agent", RoleAgent.Label())
	assert.Equal(t, "Inactive", UserInactive.Label())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, StatusClosed.Valid())
	assert.False(t, TicketStatus("closed").Valid())
	assert.True(t, TypeSupport.Valid())
	assert.False(t, TicketType("TASK").Valid())
	assert.True(t, PriorityLow.Valid())
	assert.False(t, Priority("URGENT").Valid())
	assert.True(t, RoleReporter.Valid())
	assert.False(t, UserRole("ADMIN").Valid())
}

func TestUserStatusFlip(t *testing.T) {
	assert.Equal(t, UserInactive, UserActive.Flip())
	assert.Equal(t, UserActive, UserInactive.Flip())
}

func TestTicketDecodesBackendPayload(t *testing.T) {
	payload := `{
		"id": 12,
		"type": "BUG",
		"title": "Printer broken",
		"status": "OPEN",
		"priority": "HIGH",
		"reporter": {"id": 1, "name": "Ann", "email": "ann@example.com", "role": "REPORTER", "status": "active"},
		"agent": null,
		"createdAt": "2025-03-01T10:15:30.123456",
		"dueBy": "2025-03-02T10:15:30",
		"closedAt": null,
		"slaMet": null
	}`

	var ticket Ticket
	require.NoError(t, json.Unmarshal([]byte(payload), &ticket))

	assert.Equal(t, int64(12), ticket.ID)
	assert.Equal(t, StatusOpen, ticket.Status)
	assert.Equal(t, "Ann", ticket.Reporter.Name)
	assert.False(t, ticket.Assigned())
	assert.Nil(t, ticket.ClosedAt)
	assert.Nil(t, ticket.SLAMet)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 15, 30, 123456000, time.UTC), ticket.CreatedAt.Time)
	assert.Equal(t, 2, ticket.DueBy.Day())
}

func TestTicketWithAgentAndSLA(t *testing.T) {
	payload := `{"id": 3, "reporter": {"id": 1}, "agent": {"id": 2, "name": "Bob", "role": "AGENT"},
		"createdAt": "2025-03-01T10:00:00Z", "dueBy": "2025-03-03T10:00:00Z",
		"closedAt": "2025-03-02T09:00:00Z", "slaMet": true}`

	var ticket Ticket
	require.NoError(t, json.Unmarshal([]byte(payload), &ticket))
	require.True(t, ticket.Assigned())
	assert.Equal(t, "Bob", ticket.Agent.Name)
	require.NotNil(t, ticket.SLAMet)
	assert.True(t, *ticket.SLAMet)
	require.NotNil(t, ticket.ClosedAt)
	assert.Equal(t, 9, ticket.ClosedAt.Hour())
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestCreateTicketDataEncoding(t *testing.T) {
	data := CreateTicketData{Title: "Printer broken", Type: TypeBug, Priority: PriorityHigh, ReporterID: 1}
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Printer broken","type":"BUG","priority":"HIGH","reporterId":1}`, string(raw))
}
