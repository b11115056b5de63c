package pages

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/culinaryshare/internal/client/client"
	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// Detail shows one recipe with its saved flag and the author's actions.
type Detail struct {
	deps Deps
	id   string

	mu     sync.Mutex
	status Status
	err    string
	recipe *models.Recipe
	saved  bool
}

func NewDetail(deps Deps, id string) *Detail {
	return &Detail{deps: deps, id: id, status: StatusLoading}
}

// Load fetches the recipe and, when logged in, whether it is saved.
func (d *Detail) Load(ctx context.Context) error {
	var (
		recipe *models.Recipe
		saved  bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipe, err = d.deps.API.GetRecipe(gctx, d.id)
		return err
	})
	if user := d.deps.Session.User(); user != nil {
		token := d.deps.Session.Token()
		g.Go(func() error {
			list, err := d.deps.API.SavedRecipes(gctx, token, user.ID)
			if err != nil {
				d.deps.Logger.Warn(gctx, "failed to check saved recipes", "error", err)
				return nil
			}
			saved = slices.ContainsFunc(list, func(r models.Recipe) bool { return r.ID == d.id })
			return nil
		})
	}

	err := g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.status = StatusError
		d.err = "Failed to fetch recipe details"
		if errors.Is(err, client.ErrNotFound) {
			d.err = "Recipe not found"
		}
		return err
	}
	d.recipe = recipe
	d.saved = saved
	d.status = StatusReady
	return nil
}

func (d *Detail) Status() (Status, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status, d.err
}

// Recipe returns the loaded recipe, or nil before a successful Load.
func (d *Detail) Recipe() *models.Recipe {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.recipe == nil {
		return nil
	}
	r := *d.recipe
	r.Ingredients = slices.Clone(d.recipe.Ingredients)
	return &r
}

func (d *Detail) Saved() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saved
}

// IsAuthor reports whether the logged-in user wrote the recipe.
func (d *Detail) IsAuthor() bool {
	user := d.deps.Session.User()
	d.mu.Lock()
	defer d.mu.Unlock()
	return user != nil && d.recipe != nil && d.recipe.Author == user.ID
}

// ToggleSave flips the saved flag optimistically and rolls it back if the
// API call fails.
func (d *Detail) ToggleSave(ctx context.Context) error {
	if !d.deps.Session.LoggedIn() {
		d.deps.Bus.Error("Please log in to save recipes")
		return ErrLoginRequired
	}

	d.mu.Lock()
	wasSaved := d.saved
	d.saved = !wasSaved
	d.mu.Unlock()

	token := d.deps.Session.Token()
	var err error
	if wasSaved {
		err = d.deps.API.UnsaveRecipe(ctx, token, d.id)
	} else {
		err = d.deps.API.SaveRecipe(ctx, token, d.id)
	}

	switch {
	case err == nil && wasSaved:
		d.deps.Bus.Info("Recipe removed from your collection")
		return nil
	case err == nil:
		d.deps.Bus.Success("Recipe saved to your collection")
		return nil
	case !wasSaved && errors.Is(err, client.ErrConflict):
		d.deps.Bus.Error(apiMessage(err, "Recipe already saved"))
		return err
	}

	d.mu.Lock()
	d.saved = wasSaved
	d.mu.Unlock()

	d.deps.Logger.Warn(ctx, "toggle save failed", "recipe_id", d.id, "error", err)
	d.deps.Bus.Error("Failed to update saved recipes")
	return err
}

// Delete removes the recipe. Only its author may do so.
func (d *Detail) Delete(ctx context.Context) error {
	if !d.deps.Session.LoggedIn() {
		d.deps.Bus.Error("Please log in to delete recipes")
		return ErrLoginRequired
	}
	if !d.IsAuthor() {
		d.deps.Bus.Error("Only the author can delete this recipe")
		return ErrNotAuthor
	}

	if err := d.deps.API.DeleteRecipe(ctx, d.deps.Session.Token(), d.id); err != nil {
		d.deps.Logger.Warn(ctx, "delete failed", "recipe_id", d.id, "error", err)
		d.deps.Bus.Error("Failed to delete recipe")
		return err
	}

	d.mu.Lock()
	d.recipe = nil
	d.saved = false
	d.status = StatusError
	d.err = "Recipe not found"
	d.mu.Unlock()

	d.deps.Bus.Success("Recipe deleted successfully")
	return nil
}
