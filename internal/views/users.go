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

// ErrUserNotFound is returned when an action names a user the view does not hold.
var ErrUserNotFound = errors.New("user not found")

// UserList is the user page.
type UserList struct {
	mu        sync.RWMutex
	svc       UserService
	lifetime  *load.Lifetime
	logger    zerolog.Logger
	users     load.Result[[]models.User]
	actionErr string
	search    string
}

// NewUserList creates an unloaded user list.
func NewUserList(svc UserService, logger zerolog.Logger) *UserList {
	return &UserList{
		svc:      svc,
		lifetime: load.NewLifetime(),
		logger:   logger.With().Str("view", "users").Logger(),
		users:    load.Idle[[]models.User](),
	}
}

// Unmount ends the view; in-flight results are discarded.
func (v *UserList) Unmount() {
	v.lifetime.End()
}

// Load fetches every user, replacing the local sequence.
func (v *UserList) Load(ctx context.Context) error {
	v.mu.Lock()
	v.users = load.Loading[[]models.User]()
	v.mu.Unlock()

	users, err := load.Run(ctx, v.lifetime, v.svc.List)
	if errors.Is(err, load.ErrUnmounted) {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.logger.Error().Err(err).Msg("fetch users")
		v.users = load.Failed[[]models.User](MsgFetchUsers)
		return fmt.Errorf("fetch users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	v.users = load.Ready(users)
	v.actionErr = ""
	return nil
}

func (v *UserList) find(id int64) (models.User, bool) {
	users, _ := v.users.Data()
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// ToggleStatus flips a user between active and inactive by sending the
// local copy back with the new status. There is no conflict detection: the
// local copy may be stale.
func (v *UserList) ToggleStatus(ctx context.Context, id int64) (*models.User, error) {
	v.mu.Lock()
	v.actionErr = ""
	current, ok := v.find(id)
	if !ok {
		v.actionErr = MsgUpdateUserStatus
		v.mu.Unlock()
		v.logger.Error().Int64("user_id", id).Msg("toggle status: user not in view")
		return nil, fmt.Errorf("toggle user %d: %w", id, ErrUserNotFound)
	}
	v.mu.Unlock()

	next := current
	next.Status = current.Status.Flip()

	updated, err := load.Run(ctx, v.lifetime, func(ctx context.Context) (*models.User, error) {
		return v.svc.Update(ctx, id, &next)
	})
	if errors.Is(err, load.ErrUnmounted) {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.logger.Error().Err(err).Int64("user_id", id).Str("status", string(next.Status)).Msg("toggle status")
		v.actionErr = MsgUpdateUserStatus
		return nil, fmt.Errorf("toggle user %d: %w", id, err)
	}

	if users, ok := v.users.Data(); ok {
		replaced := slices.Clone(users)
		for i := range replaced {
			if replaced[i].ID == id {
				replaced[i] = *updated
			}
		}
		v.users = load.Ready(replaced)
	}
	return updated, nil
}

// Edit acknowledges an edit request. Editing is not implemented yet: the
// user is returned and nothing changes.
func (v *UserList) Edit(id int64) (models.User, error) {
	v.mu.RLock()
	user, ok := v.find(id)
	v.mu.RUnlock()
	if !ok {
		return models.User{}, fmt.Errorf("edit user %d: %w", id, ErrUserNotFound)
	}
	v.logger.Info().Int64("user_id", id).Str("name", user.Name).Msg("edit user requested")
	return user, nil
}

// SetSearch sets the free-text search.
func (v *UserList) SetSearch(search string) {
	v.mu.Lock()
	v.search = search
	v.mu.Unlock()
}

// Filtered applies the search to the loaded users.
func (v *UserList) Filtered() []models.User {
	v.mu.RLock()
	defer v.mu.RUnlock()
	users, _ := v.users.Data()
	return FilterUsers(users, v.search)
}

// User returns the local copy of one user.
func (v *UserList) User(id int64) (models.User, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.find(id)
}

// UserListSnapshot is a consistent copy of the view for rendering.
type UserListSnapshot struct {
	State       load.State
	Error       string
	ActionError string
	Search      string
	Total       int
	Users       []models.User
}

// Empty reports whether the filtered sequence has nothing to show.
func (s UserListSnapshot) Empty() bool {
	return s.State == load.StateReady && len(s.Users) == 0
}

// Snapshot captures the view, with the filtered users, for one render.
func (v *UserList) Snapshot() UserListSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	snap := UserListSnapshot{
		State:       v.users.State(),
		ActionError: v.actionErr,
		Search:      v.search,
	}
	snap.Error, _ = v.users.Message()
	users, _ := v.users.Data()
	snap.Total = len(users)
	snap.Users = FilterUsers(users, v.search)
	return snap
}
