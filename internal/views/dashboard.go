package views

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gotrs-io/helpdesk-console/internal/load"
	"github.com/gotrs-io/helpdesk-console/internal/models"
)

// Sample figures. The backend does not report these yet; every value built
// from them is flagged Placeholder and rendered as sample data.
const (
	sampleActiveUsers = 24
	sampleInProgress  = 8
	sampleResolved    = 5
)

var sampleWeekly = []struct {
	day     string
	tickets int64
}{
	{"Mon", 12}, {"Tue", 19}, {"Wed", 15}, {"Thu", 8}, {"Fri", 22}, {"Sat", 5}, {"Sun", 3},
}

// Card is one summary figure.
type Card struct {
	Title       string
	Value       string
	Caption     string
	Tone        string
	Placeholder bool
}

// Point is one entry of a chart series. Percent is the bar height relative
// to the largest point, or the slice share for a distribution.
type Point struct {
	Label       string
	Value       int64
	Percent     float64
	Color       string
	Placeholder bool
}

// Dashboard is the analytics page.
type Dashboard struct {
	mu        sync.RWMutex
	svc       AnalyticsService
	lifetime  *load.Lifetime
	logger    zerolog.Logger
	analytics load.Result[models.DashboardAnalytics]
}

// NewDashboard creates an unloaded dashboard.
func NewDashboard(svc AnalyticsService, logger zerolog.Logger) *Dashboard {
	return &Dashboard{
		svc:       svc,
		lifetime:  load.NewLifetime(),
		logger:    logger.With().Str("view", "dashboard").Logger(),
		analytics: load.Idle[models.DashboardAnalytics](),
	}
}

// Unmount ends the view; in-flight results are discarded.
func (d *Dashboard) Unmount() {
	d.lifetime.End()
}

// Load fetches the analytics snapshot.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	d.analytics = load.Loading[models.DashboardAnalytics]()
	d.mu.Unlock()

	analytics, err := load.Run(ctx, d.lifetime, d.svc.Analytics)
	if errors.Is(err, load.ErrUnmounted) {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.logger.Error().Err(err).Msg("fetch dashboard")
		d.analytics = load.Failed[models.DashboardAnalytics](MsgFetchDashboard)
		return fmt.Errorf("fetch dashboard: %w", err)
	}
	d.analytics = load.Ready(*analytics)
	return nil
}

// Cards returns the four summary cards; nil unless loaded.
func (d *Dashboard) Cards() []Card {
	d.mu.RLock()
	a, ok := d.analytics.Data()
	d.mu.RUnlock()
	if !ok {
		return nil
	}
	return buildCards(a)
}

func buildCards(a models.DashboardAnalytics) []Card {
	return []Card{
		{Title: "Total Tickets", Value: strconv.FormatInt(a.TotalTickets, 10), Caption: "All time", Tone: "blue"},
		{Title: "Open Tickets", Value: strconv.FormatInt(a.OpenTickets, 10), Caption: "Needs attention", Tone: "orange"},
		{
			Title:   "Closed Tickets",
			Value:   strconv.FormatInt(a.ClosedTickets, 10),
			Caption: fmt.Sprintf("Completed, avg %.1fh to resolve", a.AverageResolutionTimeHours),
			Tone:    "green",
		},
		{Title: "Active Users", Value: strconv.Itoa(sampleActiveUsers), Caption: "Online now", Tone: "purple", Placeholder: true},
	}
}

// WeeklyTrend returns the weekly ticket series. It is entirely sample data.
func WeeklyTrend() []Point {
	var peak int64
	for _, p := range sampleWeekly {
		peak = max(peak, p.tickets)
	}
	points := make([]Point, 0, len(sampleWeekly))
	for _, p := range sampleWeekly {
		points = append(points, Point{
			Label:       p.day,
			Value:       p.tickets,
			Percent:     percent(p.tickets, peak),
			Color:       "#3B82F6",
			Placeholder: true,
		})
	}
	return points
}

// StatusDistribution returns the status split: open and closed come from
// the backend, in-progress and resolved are sample values.
func (d *Dashboard) StatusDistribution() []Point {
	d.mu.RLock()
	a, ok := d.analytics.Data()
	d.mu.RUnlock()
	if !ok {
		return nil
	}
	return buildDistribution(a)
}

func buildDistribution(a models.DashboardAnalytics) []Point {
	points := []Point{
		{Label: "Open", Value: a.OpenTickets, Color: "#3B82F6"},
		{Label: "Closed", Value: a.ClosedTickets, Color: "#10B981"},
		{Label: "In Progress", Value: sampleInProgress, Color: "#F59E0B", Placeholder: true},
		{Label: "Resolved", Value: sampleResolved, Color: "#8B5CF6", Placeholder: true},
	}
	var total int64
	for _, p := range points {
		total += p.Value
	}
	for i := range points {
		points[i].Percent = percent(points[i].Value, total)
	}
	return points
}

func percent(v, of int64) float64 {
	if of <= 0 {
		return 0
	}
	return float64(v) * 100 / float64(of)
}

// DashboardSnapshot is a consistent copy of the view for rendering.
type DashboardSnapshot struct {
	State        load.State
	Error        string
	Analytics    models.DashboardAnalytics
	Cards        []Card
	Weekly       []Point
	Distribution []Point
}

// Snapshot captures the dashboard for one render.
func (d *Dashboard) Snapshot() DashboardSnapshot {
	d.mu.RLock()
	result := d.analytics
	d.mu.RUnlock()

	snap := DashboardSnapshot{State: result.State()}
	snap.Error, _ = result.Message()
	if a, ok := result.Data(); ok {
		snap.Analytics = a
		snap.Cards = buildCards(a)
		snap.Weekly = WeeklyTrend()
		snap.Distribution = buildDistribution(a)
	}
	return snap
}
