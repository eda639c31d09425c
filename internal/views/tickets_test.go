package views

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotrs-io/helpdesk-console/internal/load"
	"github.com/gotrs-io/helpdesk-console/internal/models"
)

func newLoadedTicketList(t *testing.T, svc *fakeTickets) *TicketList {
	t.Helper()
	v := NewTicketList(svc, 1, zerolog.Nop())
	require.NoError(t, v.Load(context.Background()))
	return v
}

func TestTicketListLoad(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		v := newLoadedTicketList(t, &fakeTickets{tickets: sampleTickets()})
		snap := v.Snapshot()
		assert.Equal(t, load.StateReady, snap.State)
		assert.Equal(t, 3, snap.Total)
		assert.Empty(t, snap.Error)
		assert.False(t, snap.Empty())
	})

	t.Run("failure", func(t *testing.T) {
		v := NewTicketList(&fakeTickets{listErr: errBackend}, 1, zerolog.Nop())
		err := v.Load(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, errBackend)

		snap := v.Snapshot()
		assert.Equal(t, load.StateFailed, snap.State)
		assert.Equal(t, MsgFetchTickets, snap.Error)
		assert.Empty(t, snap.Tickets)
		assert.False(t, snap.Empty())
	})

	t.Run("empty backend", func(t *testing.T) {
		v := newLoadedTicketList(t, &fakeTickets{})
		assert.True(t, v.Snapshot().Empty())
	})

	t.Run("refetch replaces the sequence", func(t *testing.T) {
		svc := &fakeTickets{tickets: sampleTickets()}
		v := newLoadedTicketList(t, svc)
		first := v.Snapshot().Tickets

		require.NoError(t, v.Load(context.Background()))
		assert.Equal(t, first, v.Snapshot().Tickets)
		assert.Equal(t, 2, svc.listCalls)
	})
}

func TestTicketListChangeStatus(t *testing.T) {
	t.Run("replaces only the changed ticket", func(t *testing.T) {
		svc := &fakeTickets{tickets: sampleTickets()}
		v := newLoadedTicketList(t, svc)
		before := v.Snapshot().Tickets

		updated, err := v.ChangeStatus(context.Background(), 1, "CLOSED")
		require.NoError(t, err)
		assert.Equal(t, models.StatusClosed, updated.Status)
		assert.Equal(t, models.StatusClosed, svc.lastStatus)

		after := v.Snapshot().Tickets
		require.Len(t, after, 3)
		assert.Equal(t, models.StatusClosed, after[0].Status)
		assert.Equal(t, before[1], after[1])
		assert.Equal(t, before[2], after[2])

		assert.Equal(t, models.StatusOpen, before[0].Status, "earlier snapshot must not change")
	})

	t.Run("failure keeps the list and sets an action error", func(t *testing.T) {
		svc := &fakeTickets{tickets: sampleTickets(), updateErr: errBackend}
		v := newLoadedTicketList(t, svc)
		before := v.Snapshot().Tickets

		_, err := v.ChangeStatus(context.Background(), 1, "CLOSED")
		require.ErrorIs(t, err, errBackend)

		snap := v.Snapshot()
		assert.Equal(t, load.StateReady, snap.State)
		assert.Equal(t, MsgUpdateTicketStatus, snap.ActionError)
		assert.Equal(t, before, snap.Tickets)
	})

	t.Run("next action clears the error", func(t *testing.T) {
		svc := &fakeTickets{tickets: sampleTickets(), updateErr: errBackend}
		v := newLoadedTicketList(t, svc)
		_, _ = v.ChangeStatus(context.Background(), 1, "CLOSED")

		svc.mu.Lock()
		svc.updateErr = nil
		svc.mu.Unlock()
		_, err := v.ChangeStatus(context.Background(), 2, "RESOLVED")
		require.NoError(t, err)
		assert.Empty(t, v.Snapshot().ActionError)
	})
}

func TestTicketListFilterAndSearch(t *testing.T) {
	v := newLoadedTicketList(t, &fakeTickets{tickets: sampleTickets()})

	v.SetFilter(StatusFilter(models.StatusInProgress))
	assert.Equal(t, []int64{2}, ticketIDs(v.Filtered()))

	v.SetFilter(FilterAll)
	v.SetSearch("alice")
	snap := v.Snapshot()
	assert.Equal(t, []int64{1, 3}, ticketIDs(snap.Tickets))
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, "alice", snap.Search)

	v.SetSearch("zzz")
	assert.True(t, v.Snapshot().Empty())

	ticket, ok := v.Ticket(2)
	assert.True(t, ok)
	assert.Equal(t, "Add dark mode", ticket.Title)
	_, ok = v.Ticket(42)
	assert.False(t, ok)
}

func TestTicketListUnmountDiscardsLateResults(t *testing.T) {
	svc := &fakeTickets{tickets: sampleTickets()}
	v := NewTicketList(svc, 1, zerolog.Nop())
	svc.onList = func(context.Context) { v.Unmount() }

	err := v.Load(context.Background())
	assert.ErrorIs(t, err, load.ErrUnmounted)
	assert.Equal(t, load.StateLoading, v.Snapshot().State)
	assert.Equal(t, 0, v.Snapshot().Total)
}

func TestTicketListLoadHonoursCallerCancellation(t *testing.T) {
	svc := &fakeTickets{tickets: sampleTickets()}
	v := NewTicketList(svc, 1, zerolog.Nop())

	var sawCancel bool
	svc.onList = func(ctx context.Context) { sawCancel = ctx.Err() != nil }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = v.Load(ctx)
	assert.True(t, sawCancel)
}
