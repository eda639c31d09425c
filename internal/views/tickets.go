package views

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gotrs-io/helpdesk-console/internal/load"
	"github.com/gotrs-io/helpdesk-console/internal/models"
)

// TicketList is the ticket page: the fetched tickets, the filter controls
// and the creation form it owns.
type TicketList struct {
	mu        sync.RWMutex
	svc       TicketService
	lifetime  *load.Lifetime
	logger    zerolog.Logger
	tickets   load.Result[[]models.Ticket]
	actionErr string
	filter    StatusFilter
	search    string
	form      *TicketForm
}

// NewTicketList creates an unloaded ticket list. reporterID is the reporter
// the creation form files tickets under.
func NewTicketList(svc TicketService, reporterID int64, logger zerolog.Logger) *TicketList {
	lifetime := load.NewLifetime()
	logger = logger.With().Str("view", "tickets").Logger()
	return &TicketList{
		svc:      svc,
		lifetime: lifetime,
		logger:   logger,
		tickets:  load.Idle[[]models.Ticket](),
		filter:   FilterAll,
		form:     newTicketForm(svc, lifetime, reporterID, logger),
	}
}

// Unmount ends the view; in-flight results are discarded.
func (v *TicketList) Unmount() {
	v.lifetime.End()
}

// Load fetches every ticket, replacing the local sequence.
func (v *TicketList) Load(ctx context.Context) error {
	v.mu.Lock()
	v.tickets = load.Loading[[]models.Ticket]()
	v.mu.Unlock()

	tickets, err := load.Run(ctx, v.lifetime, v.svc.List)
	if errors.Is(err, load.ErrUnmounted) {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.logger.Error().Err(err).Msg("fetch tickets")
		v.tickets = load.Failed[[]models.Ticket](MsgFetchTickets)
		return fmt.Errorf("fetch tickets: %w", err)
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	v.tickets = load.Ready(tickets)
	v.actionErr = ""
	return nil
}

// TicketCreated refreshes the whole list after a successful creation.
func (v *TicketList) TicketCreated(ctx context.Context) error {
	return v.Load(ctx)
}

// ChangeStatus asks the backend to move a ticket to newStatus. Local state
// changes only when the backend answers, and then only for that ticket.
func (v *TicketList) ChangeStatus(ctx context.Context, id int64, newStatus string) (*models.Ticket, error) {
	v.mu.Lock()
	v.actionErr = ""
	v.mu.Unlock()

	updated, err := load.Run(ctx, v.lifetime, func(ctx context.Context) (*models.Ticket, error) {
		return v.svc.UpdateStatus(ctx, id, models.TicketStatus(newStatus))
	})
	if errors.Is(err, load.ErrUnmounted) {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.logger.Error().Err(err).Int64("ticket_id", id).Str("status", newStatus).Msg("update ticket status")
		v.actionErr = MsgUpdateTicketStatus
		return nil, fmt.Errorf("update ticket %d status: %w", id, err)
	}

	if current, ok := v.tickets.Data(); ok {
		next := slices.Clone(current)
		for i := range next {
			if next[i].ID == id {
				next[i] = *updated
			}
		}
		v.tickets = load.Ready(next)
	}
	return updated, nil
}

// SetFilter sets the status filter.
func (v *TicketList) SetFilter(filter StatusFilter) {
	v.mu.Lock()
	v.filter = filter
	v.mu.Unlock()
}

// SetSearch sets the free-text search.
func (v *TicketList) SetSearch(search string) {
	v.mu.Lock()
	v.search = search
	v.mu.Unlock()
}

// OpenForm shows the creation form.
func (v *TicketList) OpenForm() {
	v.form.Open()
}

// CloseForm hides the creation form, keeping what was entered.
func (v *TicketList) CloseForm() error {
	return v.form.Close()
}

// Form returns the creation form owned by this list.
func (v *TicketList) Form() *TicketForm {
	return v.form
}

// SubmitForm submits the creation form; success reloads the list.
func (v *TicketList) SubmitForm(ctx context.Context) (*models.Ticket, error) {
	return v.form.Submit(ctx, v.TicketCreated)
}

// Filtered applies the current filter and search to the loaded tickets.
func (v *TicketList) Filtered() []models.Ticket {
	v.mu.RLock()
	defer v.mu.RUnlock()
	tickets, _ := v.tickets.Data()
	return FilterTickets(tickets, v.filter, v.search)
}

// Ticket returns the local copy of one ticket.
func (v *TicketList) Ticket(id int64) (models.Ticket, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	tickets, _ := v.tickets.Data()
	for _, t := range tickets {
		if t.ID == id {
			return t, true
		}
	}
	return models.Ticket{}, false
}

// TicketListSnapshot is a consistent copy of the view for rendering.
type TicketListSnapshot struct {
	State       load.State
	Error       string
	ActionError string
	Filter      StatusFilter
	Search      string
	Total       int
	Tickets     []models.Ticket
	Form        TicketFormSnapshot
}

// Empty reports whether the filtered sequence has nothing to show.
func (s TicketListSnapshot) Empty() bool {
	return s.State == load.StateReady && len(s.Tickets) == 0
}

// Snapshot captures the view, with the filtered tickets, for one render.
func (v *TicketList) Snapshot() TicketListSnapshot {
	v.mu.RLock()
	snap := TicketListSnapshot{
		State:       v.tickets.State(),
		ActionError: v.actionErr,
		Filter:      v.filter,
		Search:      v.search,
	}
	snap.Error, _ = v.tickets.Message()
	tickets, _ := v.tickets.Data()
	snap.Total = len(tickets)
	snap.Tickets = FilterTickets(tickets, v.filter, v.search)
	v.mu.RUnlock()

	snap.Form = v.form.Snapshot()
	return snap
}
