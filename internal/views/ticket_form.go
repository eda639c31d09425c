package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gotrs-io/helpdesk-console/internal/load"
	"github.com/gotrs-io/helpdesk-console/internal/models"
)

var (
	// ErrFormClosed is returned when a closed form is submitted.
	ErrFormClosed = errors.New("ticket form is closed")
	// ErrSubmitting is returned while a previous submission is in flight.
	ErrSubmitting = errors.New("ticket submission already in progress")
	// ErrTitleRequired is returned for a blank title; nothing is sent.
	ErrTitleRequired = errors.New("ticket title is required")
)

// TicketForm is the ticket creation modal. Its visibility is driven by the
// owning list; cancelling keeps the entered values.
type TicketForm struct {
	mu         sync.Mutex
	svc        TicketCreator
	lifetime   *load.Lifetime
	logger     zerolog.Logger
	defaults   models.CreateTicketData
	fields     models.CreateTicketData
	open       bool
	submitting bool
	err        string
}

// DefaultTicketFields is the empty form for a reporter.
func DefaultTicketFields(reporterID int64) models.CreateTicketData {
	return models.CreateTicketData{
		Priority:   models.PriorityMedium,
		Type:       models.TypeBug,
		ReporterID: reporterID,
	}
}

func newTicketForm(svc TicketCreator, lifetime *load.Lifetime, reporterID int64, logger zerolog.Logger) *TicketForm {
	defaults := DefaultTicketFields(reporterID)
	return &TicketForm{
		svc:      svc,
		lifetime: lifetime,
		logger:   logger.With().Str("component", "ticket_form").Logger(),
		defaults: defaults,
		fields:   defaults,
	}
}

// Open shows the form.
func (f *TicketForm) Open() {
	f.mu.Lock()
	f.open = true
	f.mu.Unlock()
}

// Close hides the form. Entered values and any error stay.
func (f *TicketForm) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return ErrSubmitting
	}
	f.open = false
	return nil
}

// IsOpen reports whether the form is shown.
func (f *TicketForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Fields returns the current input values.
func (f *TicketForm) Fields() models.CreateTicketData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SetFields replaces the editable inputs. The reporter is fixed by the
// list; empty or unknown type and priority fall back to the defaults.
func (f *TicketForm) SetFields(title, description string, ticketType models.TicketType, priority models.Priority) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Title = title
	f.fields.Description = description
	f.fields.Type = ticketType
	if !ticketType.Valid() {
		f.fields.Type = f.defaults.Type
	}
	f.fields.Priority = priority
	if !priority.Valid() {
		f.fields.Priority = f.defaults.Priority
	}
}

// Submit sends the form. On success onCreated runs exactly once, then the
// form closes and resets. On failure the form stays open with its values.
func (f *TicketForm) Submit(ctx context.Context, onCreated func(context.Context) error) (*models.Ticket, error) {
	f.mu.Lock()
	switch {
	case !f.open:
		f.mu.Unlock()
		return nil, ErrFormClosed
	case f.submitting:
		f.mu.Unlock()
		return nil, ErrSubmitting
	case strings.TrimSpace(f.fields.Title) == "":
		f.err = MsgTitleRequired
		f.mu.Unlock()
		return nil, ErrTitleRequired
	}
	f.submitting = true
	f.err = ""
	data := f.fields
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	ticket, err := load.Run(ctx, f.lifetime, func(ctx context.Context) (*models.Ticket, error) {
		return f.svc.Create(ctx, &data)
	})
	if errors.Is(err, load.ErrUnmounted) {
		return nil, err
	}
	if err != nil {
		f.logger.Error().Err(err).Str("title", data.Title).Msg("create ticket")
		f.mu.Lock()
		f.err = MsgCreateTicket
		f.mu.Unlock()
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	if onCreated != nil {
		if err := onCreated(ctx); err != nil {
			f.logger.Warn().Err(err).Int64("ticket_id", ticket.ID).Msg("refresh after create")
		}
	}

	f.mu.Lock()
	f.open = false
	f.fields = f.defaults
	f.mu.Unlock()
	return ticket, nil
}

// TicketFormSnapshot is a copy of the form for rendering.
type TicketFormSnapshot struct {
	Open       bool
	Submitting bool
	Error      string
	Fields     models.CreateTicketData
}

// Snapshot captures the form for one render.
func (f *TicketForm) Snapshot() TicketFormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return TicketFormSnapshot{
		Open:       f.open,
		Submitting: f.submitting,
		Error:      f.err,
		Fields:     f.fields,
	}
}
