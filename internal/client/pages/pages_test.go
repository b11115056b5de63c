package pages

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/culinaryshare/internal/client/client/clienttest"
	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
	"github.com/dmitrijs2005/culinaryshare/internal/client/notify"
	"github.com/dmitrijs2005/culinaryshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/culinaryshare/internal/client/session"
	"github.com/dmitrijs2005/culinaryshare/internal/logging"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	api   *clienttest.Fake
	deps  Deps
	notes []notify.Notification
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	api := clienttest.New()
	bus := notify.NewBus()
	t.Cleanup(bus.Close)

	e := &testEnv{api: api}
	e.deps = Deps{
		API:     api,
		Session: session.New(api, metadata.NewMemoryRepository(), logging.Nop()),
		Bus:     bus,
		Logger:  logging.Nop(),
	}
	bus.Subscribe(func(n notify.Notification) { e.notes = append(e.notes, n) })
	return e
}

// user registers username on the fake API without logging in.
func (e *testEnv) user(username string) *models.Session {
	return e.api.AddUser(username, username+"@example.com", "pw")
}

func (e *testEnv) login(t *testing.T, username string) {
	t.Helper()
	require.NoError(t, e.deps.Session.Login(context.Background(), username+"@example.com", "pw"))
}

func (e *testEnv) last(t *testing.T) notify.Notification {
	t.Helper()
	require.NotEmpty(t, e.notes)
	return e.notes[len(e.notes)-1]
}

func soup() models.Recipe {
	return models.Recipe{
		Title:        "Soup",
		Ingredients:  []string{"water", "salt"},
		Instructions: "boil",
		Difficulty:   models.DifficultyEasy,
	}
}

func cake() models.Recipe {
	return models.Recipe{
		Title:        "Cake",
		Ingredients:  []string{"flour", "sugar"},
		Instructions: "bake",
		Difficulty:   models.DifficultyMedium,
	}
}
