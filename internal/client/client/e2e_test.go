package client

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
	"github.com/dmitrijs2005/culinaryshare/internal/logging"
	"github.com/dmitrijs2005/culinaryshare/internal/server/auth"
	"github.com/dmitrijs2005/culinaryshare/internal/server/config"
	"github.com/dmitrijs2005/culinaryshare/internal/server/httpserver"
	"github.com/dmitrijs2005/culinaryshare/internal/server/metrics"
	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/culinaryshare/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	auth.HashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

// newAPI starts the real API on the memory backend.
func newAPI(t *testing.T) *HTTPClient {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	cfg := &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour}
	s := httpserver.New(
		httpserver.Options{AllowedOrigins: []string{"*"}},
		logging.Nop(),
		services.NewUserService(rm, cfg),
		services.NewRecipeService(rm),
		metrics.New(),
	)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 2*time.Second)
}

func TestHTTPClient_AgainstAPI(t *testing.T) {
	ctx := context.Background()
	c := newAPI(t)

	alice, err := c.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, alice.Token)
	bob, err := c.Register(ctx, "bob", "bob@example.com", "pw")
	require.NoError(t, err)

	_, err = c.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualError(t, err, "Invalid email or password")

	soup, err := c.CreateRecipe(ctx, alice.Token, models.RecipeInput{
		Title:        "Soup",
		Ingredients:  []string{"water", "salt"},
		Instructions: "boil",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyMedium, soup.Difficulty)
	assert.Equal(t, alice.User.ID, soup.Author)

	got, err := c.GetRecipe(ctx, soup.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.AuthorName)

	_, err = c.UpdateRecipe(ctx, bob.Token, soup.ID, models.RecipeInput{Title: "Mine"})
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, c.SaveRecipe(ctx, bob.Token, soup.ID))
	assert.ErrorIs(t, c.SaveRecipe(ctx, bob.Token, soup.ID), ErrConflict)

	saved, err := c.SavedRecipes(ctx, bob.Token, bob.User.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, soup.ID, saved[0].ID)

	profile, err := c.Profile(ctx, bob.Token)
	require.NoError(t, err)
	assert.True(t, profile.HasSaved(soup.ID))

	require.NoError(t, c.DeleteRecipe(ctx, alice.Token, soup.ID))
	_, err = c.GetRecipe(ctx, soup.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	saved, err = c.SavedRecipes(ctx, bob.Token, bob.User.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)

	require.NoError(t, c.UnsaveRecipe(ctx, bob.Token, soup.ID))
	require.NoError(t, c.Logout(ctx, bob.Token))

	list, err := c.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
