package pages

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/culinaryshare/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaved_RequiresLogin(t *testing.T) {
	e := newEnv(t)

	s := NewSaved(e.deps)
	assert.ErrorIs(t, s.Load(context.Background()), ErrLoginRequired)
	status, msg := s.Status()
	assert.Equal(t, StatusError, status)
	assert.Equal(t, "Please log in to view saved recipes", msg)
}

func TestSaved_LoadAndUnsave(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user("alice")
	first := e.api.AddRecipe(alice.User.ID, soup())
	second := e.api.AddRecipe(alice.User.ID, cake())
	require.NoError(t, e.api.SaveRecipe(ctx, alice.Token, first.ID))
	require.NoError(t, e.api.SaveRecipe(ctx, alice.Token, second.ID))
	e.login(t, "alice")

	s := NewSaved(e.deps)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, []string{"Soup", "Cake"}, titles(s.Recipes()))

	e.api.Fail("UnsaveRecipe", client.ErrUnavailable)
	require.Error(t, s.Unsave(ctx, first.ID))
	assert.Equal(t, []string{"Soup", "Cake"}, titles(s.Recipes()), "rolled back in place")
	assert.Equal(t, "Failed to remove recipe", e.last(t).Message)

	e.api.Fail("UnsaveRecipe", nil)
	require.NoError(t, s.Unsave(ctx, first.ID))
	assert.Equal(t, []string{"Cake"}, titles(s.Recipes()))
	assert.Equal(t, `"Soup" removed from your collection`, e.last(t).Message)

	require.NoError(t, s.Unsave(ctx, "not-listed"))
}

func TestSaved_LoadFailure(t *testing.T) {
	e := newEnv(t)
	e.user("alice")
	e.login(t, "alice")
	e.api.Fail("SavedRecipes", client.ErrUnavailable)

	s := NewSaved(e.deps)
	require.Error(t, s.Load(context.Background()))
	_, msg := s.Status()
	assert.Equal(t, "Failed to fetch saved recipes", msg)
}
