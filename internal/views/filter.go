package views

import (
	"strings"

	"github.com/gotrs-io/helpdesk-console/internal/models"
)

// StatusFilter is "all" or one ticket status.
type StatusFilter string

// FilterAll lets every status through.
const FilterAll StatusFilter = "all"

// ParseStatusFilter maps unknown or empty input to FilterAll.
func ParseStatusFilter(s string) StatusFilter {
	if models.TicketStatus(s).Valid() {
		return StatusFilter(s)
	}
	return FilterAll
}

// FilterOption is one entry of the status filter control.
type FilterOption struct {
	Value string
	Label string
}

// StatusFilterOptions lists the filter choices in display order.
func StatusFilterOptions() []FilterOption {
	opts := []FilterOption{{Value: string(FilterAll), Label: "All Tickets"}}
	for _, s := range models.TicketStatuses {
		opts = append(opts, FilterOption{Value: string(s), Label: s.Label()})
	}
	return opts
}

func (f StatusFilter) matches(status models.TicketStatus) bool {
	return f == FilterAll || f == "" || models.TicketStatus(f) == status
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// FilterTickets keeps tickets whose status passes filter and whose title or
// reporter name contains search, ignoring case. Order is preserved.
func FilterTickets(tickets []models.Ticket, filter StatusFilter, search string) []models.Ticket {
	out := make([]models.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if !filter.matches(t.Status) {
			continue
		}
		if search != "" && !containsFold(t.Title, search) && !containsFold(t.Reporter.Name, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterUsers keeps users whose name or email contains search, ignoring case.
func FilterUsers(users []models.User, search string) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if search != "" && !containsFold(u.Name, search) && !containsFold(u.Email, search) {
			continue
		}
		out = append(out, u)
	}
	return out
}
