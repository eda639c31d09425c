package gateway

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/gotrs-io/helpdesk-console/internal/models"
)

// TicketsService handles ticket-related API operations
type TicketsService struct {
	client *Client
}

// List retrieves every ticket.
func (s *TicketsService) List(ctx context.Context) ([]models.Ticket, error) {
	var result []models.Ticket
	err := s.client.do(ctx, call{
		operation: "list_tickets",
		method:    resty.MethodGet,
		path:      "/tickets",
		result:    &result,
	})
	return result, err
}

// Create asks the backend to open a new ticket.
func (s *TicketsService) Create(ctx context.Context, data *models.CreateTicketData) (*models.Ticket, error) {
	if err := checkBody("create_ticket", createTicketContract, data); err != nil {
		s.client.metrics.observe("create_ticket", outcomeInvalid, 0)
		return nil, err
	}

	var result models.Ticket
	err := s.client.do(ctx, call{
		operation: "create_ticket",
		method:    resty.MethodPost,
		path:      "/tickets",
		body:      data,
		result:    &result,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateStatus moves a ticket to newStatus. The backend takes the status as
// a query parameter, not a body field.
func (s *TicketsService) UpdateStatus(ctx context.Context, id int64, newStatus models.TicketStatus) (*models.Ticket, error) {
	var result models.Ticket
	err := s.client.do(ctx, call{
		operation:   "update_ticket_status",
		method:      resty.MethodPut,
		path:        "/tickets/{id}/status",
		pathParams:  map[string]string{"id": strconv.FormatInt(id, 10)},
		queryParams: map[string]string{"newStatus": string(newStatus)},
		result:      &result,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DashboardService handles analytics operations
type DashboardService struct {
	client *Client
}

// Analytics retrieves the aggregate ticket snapshot.
func (s *DashboardService) Analytics(ctx context.Context) (*models.DashboardAnalytics, error) {
	var result models.DashboardAnalytics
	err := s.client.do(ctx, call{
		operation: "dashboard_analytics",
		method:    resty.MethodGet,
		path:      "/tickets/dashboard",
		result:    &result,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
