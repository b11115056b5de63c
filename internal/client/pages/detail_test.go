package pages

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/culinaryshare/internal/client/client"
	"github.com/dmitrijs2005/culinaryshare/internal/client/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetail_LoadAndAuthor(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user("alice")
	e.user("bob")
	r := e.api.AddRecipe(alice.User.ID, soup())

	d := NewDetail(e.deps, r.ID)
	require.NoError(t, d.Load(ctx))
	assert.Equal(t, "alice", d.Recipe().AuthorName)
	assert.False(t, d.IsAuthor(), "anonymous visitor")
	assert.False(t, d.Saved())

	e.login(t, "bob")
	assert.False(t, d.IsAuthor())

	e.deps.Session.Logout(ctx)
	e.login(t, "alice")
	assert.True(t, d.IsAuthor())
}

func TestDetail_LoadNotFound(t *testing.T) {
	e := newEnv(t)

	d := NewDetail(e.deps, "missing")
	err := d.Load(context.Background())
	assert.ErrorIs(t, err, client.ErrNotFound)

	status, msg := d.Status()
	assert.Equal(t, StatusError, status)
	assert.Equal(t, "Recipe not found", msg)
	assert.Nil(t, d.Recipe())
}

func TestDetail_LoadServerError(t *testing.T) {
	e := newEnv(t)
	e.api.Fail("GetRecipe", client.ErrUnavailable)

	d := NewDetail(e.deps, "r1")
	require.Error(t, d.Load(context.Background()))
	_, msg := d.Status()
	assert.Equal(t, "Failed to fetch recipe details", msg)
}

func TestDetail_ToggleSave(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user("alice")
	r := e.api.AddRecipe(alice.User.ID, soup())
	require.NoError(t, e.api.SaveRecipe(ctx, alice.Token, r.ID))
	e.login(t, "alice")

	d := NewDetail(e.deps, r.ID)
	require.NoError(t, d.Load(ctx))
	assert.True(t, d.Saved())

	require.NoError(t, d.ToggleSave(ctx))
	assert.False(t, d.Saved())
	assert.Equal(t, "Recipe removed from your collection", e.last(t).Message)

	e.api.Fail("SaveRecipe", client.ErrUnavailable)
	require.Error(t, d.ToggleSave(ctx))
	assert.False(t, d.Saved())
	assert.Equal(t, notify.KindError, e.last(t).Kind)
	assert.Equal(t, "Failed to update saved recipes", e.last(t).Message)

	e.api.Fail("SaveRecipe", nil)
	require.NoError(t, d.ToggleSave(ctx))
	assert.True(t, d.Saved())
	assert.Equal(t, "Recipe saved to your collection", e.last(t).Message)
}

func TestDetail_ToggleSaveAnonymous(t *testing.T) {
	e := newEnv(t)
	alice := e.user("alice")
	r := e.api.AddRecipe(alice.User.ID, soup())

	d := NewDetail(e.deps, r.ID)
	require.NoError(t, d.Load(context.Background()))
	assert.ErrorIs(t, d.ToggleSave(context.Background()), ErrLoginRequired)
	assert.Equal(t, "Please log in to save recipes", e.last(t).Message)
}

func TestDetail_Delete(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user("alice")
	bob := e.user("bob")
	r := e.api.AddRecipe(alice.User.ID, soup())
	require.NoError(t, e.api.SaveRecipe(ctx, bob.Token, r.ID))

	e.login(t, "bob")
	d := NewDetail(e.deps, r.ID)
	require.NoError(t, d.Load(ctx))
	assert.ErrorIs(t, d.Delete(ctx), ErrNotAuthor)
	assert.NotContains(t, e.api.Calls(), "DeleteRecipe")

	e.deps.Session.Logout(ctx)
	e.login(t, "alice")

	e.api.Fail("DeleteRecipe", client.ErrUnavailable)
	require.Error(t, d.Delete(ctx))
	assert.Equal(t, "Failed to delete recipe", e.last(t).Message)
	assert.NotNil(t, d.Recipe())

	e.api.Fail("DeleteRecipe", nil)
	require.NoError(t, d.Delete(ctx))
	assert.Equal(t, notify.KindSuccess, e.last(t).Kind)
	assert.Equal(t, "Recipe deleted successfully", e.last(t).Message)
	assert.Nil(t, d.Recipe())

	saved, err := e.api.SavedRecipes(ctx, bob.Token, bob.User.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)
}
