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

func newLoadedUserList(t *testing.T, svc *fakeUsers) *UserList {
	t.Helper()
	v := NewUserList(svc, zerolog.Nop())
	require.NoError(t, v.Load(context.Background()))
	return v
}

func TestUserListLoad(t *testing.T) {
	v := newLoadedUserList(t, &fakeUsers{users: sampleUsers()})
	snap := v.Snapshot()
	assert.Equal(t, load.StateReady, snap.State)
	assert.Len(t, snap.Users, 3)

	failing := NewUserList(&fakeUsers{listErr: errBackend}, zerolog.Nop())
	require.Error(t, failing.Load(context.Background()))
	assert.Equal(t, MsgFetchUsers, failing.Snapshot().Error)
}

func TestUserListToggleStatus(t *testing.T) {
	t.Run("sends the flipped status with other fields unchanged", func(t *testing.T) {
		svc := &fakeUsers{users: sampleUsers()}
		v := newLoadedUserList(t, svc)
		before, _ := v.User(7)

		updated, err := v.ToggleStatus(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, models.UserInactive, updated.Status)

		assert.Equal(t, int64(7), svc.lastID)
		want := before
		want.Status = models.UserInactive
		assert.Equal(t, want, svc.lastUpdate)

		after, ok := v.User(7)
		require.True(t, ok)
		assert.Equal(t, models.UserInactive, after.Status)

		other, _ := v.User(3)
		assert.Equal(t, models.UserActive, other.Status)
	})

	t.Run("inactive becomes active", func(t *testing.T) {
		v := newLoadedUserList(t, &fakeUsers{users: sampleUsers()})
		updated, err := v.ToggleStatus(context.Background(), 9)
		require.NoError(t, err)
		assert.Equal(t, models.UserActive, updated.Status)
	})

	t.Run("unknown user makes no request", func(t *testing.T) {
		svc := &fakeUsers{users: sampleUsers()}
		v := newLoadedUserList(t, svc)

		_, err := v.ToggleStatus(context.Background(), 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Equal(t, 0, svc.updateCalls)
		assert.Equal(t, MsgUpdateUserStatus, v.Snapshot().ActionError)
	})

	t.Run("failure leaves the user unchanged", func(t *testing.T) {
		svc := &fakeUsers{users: sampleUsers(), updateErr: errBackend}
		v := newLoadedUserList(t, svc)

		_, err := v.ToggleStatus(context.Background(), 7)
		require.ErrorIs(t, err, errBackend)
		user, _ := v.User(7)
		assert.Equal(t, models.UserActive, user.Status)
		assert.Equal(t, MsgUpdateUserStatus, v.Snapshot().ActionError)
	})
}

func TestUserListEditIsAcknowledgedOnly(t *testing.T) {
	svc := &fakeUsers{users: sampleUsers()}
	v := newLoadedUserList(t, svc)

	user, err := v.Edit(3)
	require.NoError(t, err)
	assert.Equal(t, "Carol Agent", user.Name)
	assert.Equal(t, 0, svc.updateCalls)

	_, err = v.Edit(404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserListSearch(t *testing.T) {
	v := newLoadedUserList(t, &fakeUsers{users: sampleUsers()})
	v.SetSearch("carol")
	filtered := v.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(3), filtered[0].ID)

	v.SetSearch("nobody")
	snap := v.Snapshot()
	assert.True(t, snap.Empty())
	assert.Equal(t, 3, snap.Total)
}
