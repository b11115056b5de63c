package pages

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
)

// Saved lists the logged-in user's saved recipes.
type Saved struct {
	deps Deps

	mu      sync.Mutex
	status  Status
	err     string
	recipes []models.Recipe
}

func NewSaved(deps Deps) *Saved {
	return &Saved{deps: deps, status: StatusLoading}
}

func (s *Saved) Load(ctx context.Context) error {
	user := s.deps.Session.User()
	if user == nil {
		s.setError("Please log in to view saved recipes")
		return ErrLoginRequired
	}

	list, err := s.deps.API.SavedRecipes(ctx, s.deps.Session.Token(), user.ID)
	if err != nil {
		s.setError("Failed to fetch saved recipes")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = list
	s.status = StatusReady
	s.err = ""
	return nil
}

func (s *Saved) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusError
	s.err = msg
}

func (s *Saved) Status() (Status, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.err
}

func (s *Saved) Recipes() []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.recipes)
}

// Unsave drops the recipe from the list at once and puts it back in place
// if the API call fails.
func (s *Saved) Unsave(ctx context.Context, id string) error {
	s.mu.Lock()
	i := slices.IndexFunc(s.recipes, func(r models.Recipe) bool { return r.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.recipes[i]
	s.recipes = slices.Delete(s.recipes, i, i+1)
	s.mu.Unlock()

	if err := s.deps.API.UnsaveRecipe(ctx, s.deps.Session.Token(), id); err != nil {
		s.mu.Lock()
		s.recipes = slices.Insert(s.recipes, min(i, len(s.recipes)), removed)
		s.mu.Unlock()

		s.deps.Logger.Warn(ctx, "unsave failed", "recipe_id", id, "error", err)
		s.deps.Bus.Error("Failed to remove recipe")
		return err
	}

	s.deps.Bus.Info(fmt.Sprintf("%q removed from your collection", removed.Title))
	return nil
}
