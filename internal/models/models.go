package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var labelCaser = cases.Title(language.English)

// enumLabel turns a wire literal such as IN_PROGRESS into "In Progress".
func enumLabel(v string) string {
	return labelCaser.String(strings.ToLower(strings.ReplaceAll(v, "_", " ")))
}

// UserRole is the role a user plays in the helpdesk.
type UserRole string

const (
	RoleAgent    UserRole = "AGENT"
	RoleReporter UserRole = "REPORTER"
)

func (r UserRole) Valid() bool {
	return r == RoleAgent || r == RoleReporter
}

func (r UserRole) Label() string { return enumLabel(string(r)) }

// UserStatus is the activation state of a user account.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

func (s UserStatus) Valid() bool {
	return s == UserActive || s == UserInactive
}

func (s UserStatus) Label() string { return enumLabel(string(s)) }

// Flip returns the opposite status. Anything that is not active becomes active.
func (s UserStatus) Flip() UserStatus {
	if s == UserActive {
		return UserInactive
	}
	return UserActive
}

// TicketType classifies the work a ticket describes.
type TicketType string

const (
	TypeBug         TicketType = "BUG"
	TypeFeature     TicketType = "FEATURE"
	TypeSupport     TicketType = "SUPPORT"
	TypeMaintenance TicketType = "MAINTENANCE"
)

// TicketTypes lists the types in display order.
var TicketTypes = []TicketType{TypeBug, TypeFeature, TypeSupport, TypeMaintenance}

func (t TicketType) Valid() bool {
	for _, v := range TicketTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (t TicketType) Label() string { return enumLabel(string(t)) }

// TicketStatus is the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "OPEN"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusResolved   TicketStatus = "RESOLVED"
	StatusClosed     TicketStatus = "CLOSED"
)

// TicketStatuses lists the statuses in lifecycle order.
var TicketStatuses = []TicketStatus{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

func (s TicketStatus) Valid() bool {
	for _, v := range TicketStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s TicketStatus) Label() string { return enumLabel(string(s)) }

// Priority is the urgency of a ticket.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Priorities lists priorities from lowest to highest, matching the form.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

func (p Priority) Label() string { return enumLabel(string(p)) }

// User represents a helpdesk user as returned by the backend.
type User struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   UserRole   `json:"role"`
	Status UserStatus `json:"status"`
}

// UserCreateRequest is a User without the backend-assigned identifier.
type UserCreateRequest struct {
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   UserRole   `json:"role"`
	Status UserStatus `json:"status"`
}

// Ticket represents a support ticket. Reporter is always present; Agent is
// nil while the ticket is unassigned.
type Ticket struct {
	ID        int64        `json:"id"`
	Type      TicketType   `json:"type"`
	Title     string       `json:"title"`
	Status    TicketStatus `json:"status"`
	Priority  Priority     `json:"priority"`
	Reporter  User         `json:"reporter"`
	Agent     *User        `json:"agent,omitempty"`
	CreatedAt Timestamp    `json:"createdAt"`
	DueBy     Timestamp    `json:"dueBy"`
	ClosedAt  *Timestamp   `json:"closedAt,omitempty"`
	SLAMet    *bool        `json:"slaMet,omitempty"`
}

// Assigned reports whether an agent has been assigned.
func (t *Ticket) Assigned() bool {
	return t.Agent != nil
}

// CreateTicketData is the payload for requesting a new ticket. The backend
// assigns id, status and timestamps.
type CreateTicketData struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        TicketType `json:"type"`
	Priority    Priority   `json:"priority"`
	ReporterID  int64      `json:"reporterId"`
}

// DashboardAnalytics is the backend's aggregate snapshot.
type DashboardAnalytics struct {
	TotalTickets               int64   `json:"totalTickets"`
	OpenTickets                int64   `json:"openTickets"`
	ClosedTickets              int64   `json:"closedTickets"`
	AverageResolutionTimeHours float64 `json:"averageResolutionTimeHours"`
}
