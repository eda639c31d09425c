package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gotrs-io/helpdesk-console/internal/models"
	"github.com/gotrs-io/helpdesk-console/internal/views"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.String())
}

func ticketRows(tickets []models.Ticket) [][]string {
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		agent := "-"
		if t.Assigned() {
			agent = t.Agent.Name
		}
		created := ""
		if !t.CreatedAt.IsZero() {
			created = t.CreatedAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			t.Type.Label(),
			t.Status.Label(),
			t.Priority.Label(),
			t.Reporter.Name,
			agent,
			created,
		})
	}
	return rows
}

func printTickets(w io.Writer, tickets []models.Ticket) {
	if len(tickets) == 0 {
		fmt.Fprintln(w, "No tickets found")
		return
	}
	renderTable(w, []string{"ID", "Title", "Type", "Status", "Priority", "Reporter", "Agent", "Created"}, ticketRows(tickets))
}

func printUsers(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found")
		return
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{strconv.FormatInt(u.ID, 10), u.Name, u.Email, u.Role.Label(), u.Status.Label()})
	}
	renderTable(w, []string{"ID", "Name", "Email", "Role", "Status"}, rows)
}

func printDashboard(w io.Writer, snap views.DashboardSnapshot) {
	cards := make([][]string, 0, len(snap.Cards))
	for _, c := range snap.Cards {
		cards = append(cards, []string{c.Title, c.Value, c.Caption, sampleMark(c.Placeholder)})
	}
	renderTable(w, []string{"Metric", "Value", "Note", ""}, cards)

	weekly := make([][]string, 0, len(snap.Weekly))
	for _, p := range snap.Weekly {
		weekly = append(weekly, []string{p.Label, strconv.FormatInt(p.Value, 10), sampleMark(p.Placeholder)})
	}
	renderTable(w, []string{"Day", "Tickets", ""}, weekly)

	dist := make([][]string, 0, len(snap.Distribution))
	for _, p := range snap.Distribution {
		dist = append(dist, []string{p.Label, strconv.FormatInt(p.Value, 10), fmt.Sprintf("%.1f%%", p.Percent), sampleMark(p.Placeholder)})
	}
	renderTable(w, []string{"Status", "Tickets", "Share", ""}, dist)
}

func sampleMark(placeholder bool) string {
	if placeholder {
		return "sample data"
	}
	return ""
}
