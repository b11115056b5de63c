package session

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/culinaryshare/internal/client/client"
	"github.com/dmitrijs2005/culinaryshare/internal/client/client/clienttest"
	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
	"github.com/dmitrijs2005/culinaryshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/culinaryshare/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*Session, *clienttest.Fake, *metadata.MemoryRepository) {
	t.Helper()
	api := clienttest.New()
	store := metadata.NewMemoryRepository()
	return New(api, store, logging.Nop()), api, store
}

func storedToken(t *testing.T, store metadata.Repository) string {
	t.Helper()
	v, err := store.Get(context.Background(), metadata.KeyToken)
	require.NoError(t, err)
	return string(v)
}

func TestRegister_LogsInAndPersists(t *testing.T) {
	s, _, store := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "alice", "a@x.io", "pw"))

	assert.True(t, s.LoggedIn())
	assert.Equal(t, "alice", s.User().Username)
	assert.Equal(t, s.Token(), storedToken(t, store))
}

func TestLogin_Failure_StaysLoggedOut(t *testing.T) {
	s, api, store := newSession(t)
	api.AddUser("alice", "a@x.io", "pw")

	err := s.Login(context.Background(), "a@x.io", "nope")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, s.LoggedIn())
	assert.Nil(t, s.User())
	assert.Empty(t, storedToken(t, store))
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("no token", func(t *testing.T) {
		s, api, _ := newSession(t)
		assert.False(t, s.Restore(ctx))
		assert.Empty(t, api.Calls())
	})

	t.Run("valid token", func(t *testing.T) {
		s, api, store := newSession(t)
		alice := api.AddUser("alice", "a@x.io", "pw")
		require.NoError(t, store.Set(ctx, metadata.KeyToken, []byte(alice.Token)))

		assert.True(t, s.Restore(ctx))
		assert.Equal(t, alice.User.ID, s.User().ID)
	})

	t.Run("rejected token is dropped", func(t *testing.T) {
		s, _, store := newSession(t)
		require.NoError(t, store.Set(ctx, metadata.KeyToken, []byte("stale")))

		assert.False(t, s.Restore(ctx))
		assert.False(t, s.LoggedIn())
		assert.Empty(t, storedToken(t, store))
	})

	t.Run("server down counts as logged out", func(t *testing.T) {
		s, api, store := newSession(t)
		alice := api.AddUser("alice", "a@x.io", "pw")
		require.NoError(t, store.Set(ctx, metadata.KeyToken, []byte(alice.Token)))
		api.Fail("Profile", client.ErrUnavailable)

		assert.False(t, s.Restore(ctx))
		assert.False(t, s.LoggedIn())
	})
}

func TestLogout_AlwaysClears(t *testing.T) {
	s, api, store := newSession(t)
	ctx := context.Background()
	api.AddUser("alice", "a@x.io", "pw")
	require.NoError(t, s.Login(ctx, "a@x.io", "pw"))

	api.Fail("Logout", errors.New("network down"))
	s.Logout(ctx)

	assert.False(t, s.LoggedIn())
	assert.Nil(t, s.User())
	assert.Empty(t, storedToken(t, store))
	assert.Contains(t, api.Calls(), "Logout")
}

func TestLogout_WhenLoggedOutSkipsAPI(t *testing.T) {
	s, api, _ := newSession(t)
	s.Logout(context.Background())
	assert.NotContains(t, api.Calls(), "Logout")
}

func TestRefresh(t *testing.T) {
	s, api, _ := newSession(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Refresh(ctx), client.ErrUnauthorized)

	alice := api.AddUser("alice", "a@x.io", "pw")
	r := api.AddRecipe(alice.User.ID, models.Recipe{Title: "Soup", Ingredients: []string{"water"}, Instructions: "boil"})
	require.NoError(t, s.Login(ctx, "a@x.io", "pw"))
	require.NoError(t, api.SaveRecipe(ctx, s.Token(), r.ID))

	require.NoError(t, s.Refresh(ctx))
	assert.True(t, s.User().HasSaved(r.ID))
}

func TestUser_ReturnsCopy(t *testing.T) {
	s, api, _ := newSession(t)
	api.AddUser("alice", "a@x.io", "pw")
	require.NoError(t, s.Login(context.Background(), "a@x.io", "pw"))

	u := s.User()
	u.Username = "mallory"
	assert.Equal(t, "alice", s.User().Username)
}
