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

func TestDashboardLoad(t *testing.T) {
	svc := &fakeAnalytics{analytics: &models.DashboardAnalytics{
		TotalTickets:               20,
		OpenTickets:                12,
		ClosedTickets:              8,
		AverageResolutionTimeHours: 5.5,
	}}
	d := NewDashboard(svc, zerolog.Nop())
	assert.Nil(t, d.Cards())

	require.NoError(t, d.Load(context.Background()))
	snap := d.Snapshot()
	assert.Equal(t, load.StateReady, snap.State)

	require.Len(t, snap.Cards, 4)
	assert.Equal(t, "20", snap.Cards[0].Value)
	assert.Equal(t, "12", snap.Cards[1].Value)
	assert.Equal(t, "8", snap.Cards[2].Value)
	assert.Contains(t, snap.Cards[2].Caption, "5.5h")
	assert.Equal(t, "24", snap.Cards[3].Value)
	assert.True(t, snap.Cards[3].Placeholder)
	for _, c := range snap.Cards[:3] {
		assert.False(t, c.Placeholder, c.Title)
	}
}

func TestDashboardLoadFailure(t *testing.T) {
	d := NewDashboard(&fakeAnalytics{err: errBackend}, zerolog.Nop())
	require.ErrorIs(t, d.Load(context.Background()), errBackend)

	snap := d.Snapshot()
	assert.Equal(t, load.StateFailed, snap.State)
	assert.Equal(t, MsgFetchDashboard, snap.Error)
	assert.Nil(t, snap.Cards)
	assert.Nil(t, snap.Distribution)
}

func TestWeeklyTrendIsSampleData(t *testing.T) {
	points := WeeklyTrend()
	require.Len(t, points, 7)
	assert.Equal(t, "Mon", points[0].Label)
	assert.Equal(t, "Sun", points[6].Label)

	var values []int64
	for _, p := range points {
		assert.True(t, p.Placeholder)
		values = append(values, p.Value)
	}
	assert.Equal(t, []int64{12, 19, 15, 8, 22, 5, 3}, values)
	assert.InDelta(t, 100.0, points[4].Percent, 0.001)
}

func TestStatusDistribution(t *testing.T) {
	d := NewDashboard(&fakeAnalytics{analytics: &models.DashboardAnalytics{OpenTickets: 4, ClosedTickets: 3}}, zerolog.Nop())
	assert.Nil(t, d.StatusDistribution())
	require.NoError(t, d.Load(context.Background()))

	points := d.StatusDistribution()
	require.Len(t, points, 4)
	assert.Equal(t, "Open", points[0].Label)
	assert.False(t, points[0].Placeholder)
	assert.False(t, points[1].Placeholder)
	assert.True(t, points[2].Placeholder)
	assert.True(t, points[3].Placeholder)
	assert.Equal(t, int64(8), points[2].Value)
	assert.Equal(t, int64(5), points[3].Value)

	var total float64
	for _, p := range points {
		total += p.Percent
	}
	assert.InDelta(t, 100.0, total, 0.001)
	assert.InDelta(t, 20.0, points[0].Percent, 0.001)
}

func TestPercentOfZero(t *testing.T) {
	assert.Zero(t, percent(5, 0))
}
