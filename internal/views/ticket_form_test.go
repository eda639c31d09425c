package views

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotrs-io/helpdesk-console/internal/load"
	"github.com/gotrs-io/helpdesk-console/internal/models"
)

func TestDefaultTicketFields(t *testing.T) {
	fields := DefaultTicketFields(5)
	assert.Equal(t, models.PriorityMedium, fields.Priority)
	assert.Equal(t, models.TypeBug, fields.Type)
	assert.Equal(t, int64(5), fields.ReporterID)
	assert.Empty(t, fields.Title)
}

func TestTicketFormSubmit(t *testing.T) {
	t.Run("success fires callback once and resets", func(t *testing.T) {
		svc := &fakeTickets{}
		form := newTicketForm(svc, load.NewLifetime(), 1, zerolog.Nop())
		form.Open()
		form.SetFields("Printer jammed", "Third floor", models.TypeSupport, models.PriorityHigh)

		calls := 0
		ticket, err := form.Submit(context.Background(), func(context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Printer jammed", ticket.Title)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 1, svc.createCalls)
		assert.Equal(t, models.CreateTicketData{
			Title:       "Printer jammed",
			Description: "Third floor",
			Type:        models.TypeSupport,
			Priority:    models.PriorityHigh,
			ReporterID:  1,
		}, svc.lastCreate)

		snap := form.Snapshot()
		assert.False(t, snap.Open)
		assert.False(t, snap.Submitting)
		assert.Empty(t, snap.Error)
		assert.Equal(t, DefaultTicketFields(1), snap.Fields)
	})

	t.Run("failure keeps form open with values", func(t *testing.T) {
		svc := &fakeTickets{createErr: errBackend}
		form := newTicketForm(svc, load.NewLifetime(), 1, zerolog.Nop())
		form.Open()
		form.SetFields("Printer jammed", "", models.TypeSupport, models.PriorityLow)

		calls := 0
		_, err := form.Submit(context.Background(), func(context.Context) error {
			calls++
			return nil
		})
		require.ErrorIs(t, err, errBackend)
		assert.Equal(t, 0, calls)

		snap := form.Snapshot()
		assert.True(t, snap.Open)
		assert.False(t, snap.Submitting)
		assert.Equal(t, MsgCreateTicket, snap.Error)
		assert.Equal(t, "Printer jammed", snap.Fields.Title)
		assert.Equal(t, models.PriorityLow, snap.Fields.Priority)
	})

	t.Run("blank title is rejected without a request", func(t *testing.T) {
		svc := &fakeTickets{}
		form := newTicketForm(svc, load.NewLifetime(), 1, zerolog.Nop())
		form.Open()
		form.SetFields("   ", "desc", models.TypeBug, models.PriorityLow)

		_, err := form.Submit(context.Background(), nil)
		assert.ErrorIs(t, err, ErrTitleRequired)
		assert.Equal(t, 0, svc.createCalls)
		assert.Equal(t, MsgTitleRequired, form.Snapshot().Error)
		assert.True(t, form.IsOpen())
	})

	t.Run("closed form is not submitted", func(t *testing.T) {
		svc := &fakeTickets{}
		form := newTicketForm(svc, load.NewLifetime(), 1, zerolog.Nop())
		form.SetFields("Title", "", models.TypeBug, models.PriorityLow)

		_, err := form.Submit(context.Background(), nil)
		assert.ErrorIs(t, err, ErrFormClosed)
		assert.Equal(t, 0, svc.createCalls)
	})

	t.Run("callback error still closes the form", func(t *testing.T) {
		form := newTicketForm(&fakeTickets{}, load.NewLifetime(), 1, zerolog.Nop())
		form.Open()
		form.SetFields("Title", "", models.TypeBug, models.PriorityLow)

		_, err := form.Submit(context.Background(), func(context.Context) error {
			return errors.New("refresh failed")
		})
		require.NoError(t, err)
		assert.False(t, form.IsOpen())
	})
}

func TestTicketFormCancelKeepsValues(t *testing.T) {
	form := newTicketForm(&fakeTickets{}, load.NewLifetime(), 1, zerolog.Nop())
	form.Open()
	form.SetFields("Draft", "half written", models.TypeFeature, models.PriorityHigh)

	require.NoError(t, form.Close())
	assert.False(t, form.IsOpen())

	form.Open()
	fields := form.Fields()
	assert.Equal(t, "Draft", fields.Title)
	assert.Equal(t, "half written", fields.Description)
	assert.Equal(t, models.TypeFeature, fields.Type)
}

func TestTicketFormSetFieldsFallsBackToDefaults(t *testing.T) {
	form := newTicketForm(&fakeTickets{}, load.NewLifetime(), 1, zerolog.Nop())
	form.SetFields("Title", "", models.TicketType("NOPE"), models.Priority(""))

	fields := form.Fields()
	assert.Equal(t, models.TypeBug, fields.Type)
	assert.Equal(t, models.PriorityMedium, fields.Priority)
}

func TestTicketListSubmitFormRefreshes(t *testing.T) {
	svc := &fakeTickets{tickets: sampleTickets()}
	v := newLoadedTicketList(t, svc)

	v.Form().Open()
	v.Form().SetFields("New one", "", models.TypeBug, models.PriorityLow)
	_, err := v.SubmitForm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, svc.listCalls)
	snap := v.Snapshot()
	assert.Equal(t, 4, snap.Total)
	assert.False(t, snap.Form.Open)
}

type blockingCreator struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingCreator() *blockingCreator {
	return &blockingCreator{started: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingCreator) Create(_ context.Context, data *models.CreateTicketData) (*models.Ticket, error) {
	close(b.started)
	<-b.release
	return &models.Ticket{ID: 42, Title: data.Title, Type: data.Type, Priority: data.Priority, Status: models.StatusOpen}, nil
}

func TestTicketFormRejectsWhileSubmitting(t *testing.T) {
	creator := newBlockingCreator()
	form := newTicketForm(creator, load.NewLifetime(), 1, zerolog.Nop())
	form.Open()
	form.SetFields("Printer broken", "", models.TypeBug, models.PriorityHigh)

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background(), nil)
		done <- err
	}()
	<-creator.started

	assert.True(t, form.Snapshot().Submitting)
	_, err := form.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrSubmitting)
	assert.ErrorIs(t, form.Close(), ErrSubmitting)
	assert.True(t, form.IsOpen())

	close(creator.release)
	require.NoError(t, <-done)

	snap := form.Snapshot()
	assert.False(t, snap.Submitting)
	assert.False(t, snap.Open)
}
