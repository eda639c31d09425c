package views

import (
	"context"
	"errors"
	"sync"

	"github.com/gotrs-io/helpdesk-console/internal/models"
)

var errBackend = errors.New("backend unavailable")

type fakeTickets struct {
	mu          sync.Mutex
	tickets     []models.Ticket
	listErr     error
	createErr   error
	updateErr   error
	listCalls   int
	createCalls int
	updateCalls int
	lastCreate  models.CreateTicketData
	lastStatus  models.TicketStatus
	onList      func(ctx context.Context)
	nextID      int64
}

func (f *fakeTickets) List(ctx context.Context) ([]models.Ticket, error) {
	f.mu.Lock()
	f.listCalls++
	hook := f.onList
	f.mu.Unlock()
	if hook != nil {
		hook(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Ticket, len(f.tickets))
	copy(out, f.tickets)
	return out, nil
}

func (f *fakeTickets) Create(_ context.Context, data *models.CreateTicketData) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.lastCreate = *data
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	t := models.Ticket{
		ID:       100 + f.nextID,
		Title:    data.Title,
		Type:     data.Type,
		Priority: data.Priority,
		Status:   models.StatusOpen,
		Reporter: models.User{ID: data.ReporterID, Name: "Reporter"},
	}
	f.tickets = append(f.tickets, t)
	return &t, nil
}

func (f *fakeTickets) UpdateStatus(_ context.Context, id int64, status models.TicketStatus) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastStatus = status
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.tickets {
		if f.tickets[i].ID == id {
			t := f.tickets[i]
			t.Status = status
			return &t, nil
		}
	}
	return nil, errors.New("ticket not found")
}

type fakeUsers struct {
	mu          sync.Mutex
	users       []models.User
	listErr     error
	updateErr   error
	listCalls   int
	updateCalls int
	lastID      int64
	lastUpdate  models.User
}

func (f *fakeUsers) List(context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, id int64, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastID = id
	f.lastUpdate = *user
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	updated := *user
	return &updated, nil
}

type fakeAnalytics struct {
	analytics *models.DashboardAnalytics
	err       error
	calls     int
}

func (f *fakeAnalytics) Analytics(context.Context) (*models.DashboardAnalytics, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	a := *f.analytics
	return &a, nil
}

func sampleTickets() []models.Ticket {
	alice := models.User{ID: 1, Name: "Alice Smith", Email: "alice@example.com", Role: models.RoleReporter, Status: models.UserActive}
	bob := models.User{ID: 2, Name: "Bob Jones", Email: "bob@example.com", Role: models.RoleReporter, Status: models.UserActive}
	return []models.Ticket{
		{ID: 1, Title: "Login page broken", Type: models.TypeBug, Status: models.StatusOpen, Priority: models.PriorityHigh, Reporter: alice},
		{ID: 2, Title: "Add dark mode", Type: models.TypeFeature, Status: models.StatusInProgress, Priority: models.PriorityLow, Reporter: bob},
		{ID: 3, Title: "Password reset", Type: models.TypeSupport, Status: models.StatusClosed, Priority: models.PriorityMedium, Reporter: alice},
	}
}

func sampleUsers() []models.User {
	return []models.User{
		{ID: 3, Name: "Carol Agent", Email: "carol@example.com", Role: models.RoleAgent, Status: models.UserActive},
		{ID: 7, Name: "Dave Reporter", Email: "dave@example.com", Role: models.RoleReporter, Status: models.UserActive},
		{ID: 9, Name: "Erin Idle", Email: "erin@example.com", Role: models.RoleReporter, Status: models.UserInactive},
	}
}
