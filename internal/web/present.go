package web

import (
	"time"

	"github.com/xeonx/timeago"

	"github.com/gotrs-io/helpdesk-console/internal/load"
	"github.com/gotrs-io/helpdesk-console/internal/models"
	"github.com/gotrs-io/helpdesk-console/internal/views"
)

const dateLayout = "Jan 2, 2006 15:04"

type option struct {
	Value    string
	Label    string
	Selected bool
}

type ticketCard struct {
	ID            int64
	Title         string
	Type          string
	TypeLabel     string
	Status        string
	StatusLabel   string
	Priority      string
	PriorityLabel string
	Reporter      string
	Agent         string
	Created       string
	CreatedAgo    string
	DueBy         string
	Closed        string
	SLA           string
	Statuses      []option
}

type ticketModal struct {
	Title       string
	Description string
	Types       []option
	Priorities  []option
	Submitting  bool
	Error       string
}

type ticketPanel struct {
	Loading     bool
	Error       string
	ActionError string
	Empty       bool
	Total       int
	Shown       int
	Cards       []ticketCard
	Form        *ticketModal
}

type userCard struct {
	ID          int64
	Name        string
	Email       string
	Role        string
	Status      string
	StatusLabel string
	Active      bool
	ToggleLabel string
}

type userPanel struct {
	Loading     bool
	Error       string
	ActionError string
	Empty       bool
	Total       int
	Shown       int
	Cards       []userCard
}

func formatTime(ts models.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Time.Format(dateLayout)
}

func ago(ts models.Timestamp, now time.Time) string {
	if ts.IsZero() {
		return ""
	}
	cfg := timeago.English
	cfg.Max = 30 * 24 * time.Hour
	cfg.DefaultLayout = "2006-01-02"
	return cfg.FormatReference(ts.Time, now)
}

func statusOptions(selected models.TicketStatus) []option {
	opts := make([]option, 0, len(models.TicketStatuses))
	for _, s := range models.TicketStatuses {
		opts = append(opts, option{Value: string(s), Label: s.Label(), Selected: s == selected})
	}
	return opts
}

func typeOptions(selected models.TicketType) []option {
	opts := make([]option, 0, len(models.TicketTypes))
	for _, t := range models.TicketTypes {
		opts = append(opts, option{Value: string(t), Label: t.Label(), Selected: t == selected})
	}
	return opts
}

func priorityOptions(selected models.Priority) []option {
	opts := make([]option, 0, len(models.Priorities))
	for _, p := range models.Priorities {
		opts = append(opts, option{Value: string(p), Label: p.Label(), Selected: p == selected})
	}
	return opts
}

func filterOptions(selected views.StatusFilter) []option {
	var opts []option
	for _, o := range views.StatusFilterOptions() {
		opts = append(opts, option{Value: o.Value, Label: o.Label, Selected: o.Value == string(selected)})
	}
	return opts
}

func presentTicket(t models.Ticket, now time.Time) ticketCard {
	card := ticketCard{
		ID:            t.ID,
		Title:         t.Title,
		Type:          string(t.Type),
		TypeLabel:     t.Type.Label(),
		Status:        string(t.Status),
		StatusLabel:   t.Status.Label(),
		Priority:      string(t.Priority),
		PriorityLabel: t.Priority.Label(),
		Reporter:      t.Reporter.Name,
		Agent:         "Unassigned",
		Created:       formatTime(t.CreatedAt),
		CreatedAgo:    ago(t.CreatedAt, now),
		DueBy:         formatTime(t.DueBy),
		Statuses:      statusOptions(t.Status),
	}
	if t.Assigned() {
		card.Agent = t.Agent.Name
	}
	if t.ClosedAt != nil {
		card.Closed = formatTime(*t.ClosedAt)
	}
	if t.SLAMet != nil {
		card.SLA = "Missed"
		if *t.SLAMet {
			card.SLA = "Met"
		}
	}
	return card
}

func presentTicketPanel(snap views.TicketListSnapshot, now time.Time) ticketPanel {
	panel := ticketPanel{
		Loading:     snap.State == load.StateLoading || snap.State == load.StateIdle,
		Error:       snap.Error,
		ActionError: snap.ActionError,
		Empty:       snap.Empty(),
		Total:       snap.Total,
		Shown:       len(snap.Tickets),
	}
	for _, t := range snap.Tickets {
		panel.Cards = append(panel.Cards, presentTicket(t, now))
	}
	if snap.Form.Open {
		panel.Form = &ticketModal{
			Title:       snap.Form.Fields.Title,
			Description: snap.Form.Fields.Description,
			Types:       typeOptions(snap.Form.Fields.Type),
			Priorities:  priorityOptions(snap.Form.Fields.Priority),
			Submitting:  snap.Form.Submitting,
			Error:       snap.Form.Error,
		}
	}
	return panel
}

func presentUser(u models.User) userCard {
	card := userCard{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role.Label(),
		Status:      string(u.Status),
		StatusLabel: u.Status.Label(),
		Active:      u.Status == models.UserActive,
		ToggleLabel: "Activate",
	}
	if card.Active {
		card.ToggleLabel = "Deactivate"
	}
	return card
}

func presentUserPanel(snap views.UserListSnapshot) userPanel {
	panel := userPanel{
		Loading:     snap.State == load.StateLoading || snap.State == load.StateIdle,
		Error:       snap.Error,
		ActionError: snap.ActionError,
		Empty:       snap.Empty(),
		Total:       snap.Total,
		Shown:       len(snap.Users),
	}
	for _, u := range snap.Users {
		panel.Cards = append(panel.Cards, presentUser(u))
	}
	return panel
}
