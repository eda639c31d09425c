// Package views holds the console's view models. Each instance owns the
// entities it fetched; nothing is shared between instances.
package views

import (
	"context"

	"github.com/gotrs-io/helpdesk-console/internal/models"
)

// User-facing messages. The cause is logged, never shown.
const (
	MsgFetchTickets       = "Failed to fetch tickets"
	MsgUpdateTicketStatus = "Failed to update ticket status"
	MsgCreateTicket       = "Failed to create ticket"
	MsgTitleRequired      = "Title is required"
	MsgFetchUsers         = "Failed to fetch users"
	MsgUpdateUserStatus   = "Failed to update user status"
	MsgFetchDashboard     = "Failed to fetch dashboard data"
)

// TicketCreator creates tickets.
type TicketCreator interface {
	Create(ctx context.Context, data *models.CreateTicketData) (*models.Ticket, error)
}

// TicketService is the part of the gateway the ticket views use.
type TicketService interface {
	TicketCreator
	List(ctx context.Context) ([]models.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, newStatus models.TicketStatus) (*models.Ticket, error)
}

// UserService is the part of the gateway the user view uses.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int64, user *models.User) (*models.User, error)
}

// AnalyticsService supplies dashboard analytics.
type AnalyticsService interface {
	Analytics(ctx context.Context) (*models.DashboardAnalytics, error)
}
