package pages

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/culinaryshare/internal/client/client"
	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// Home lists all recipes with search and difficulty filters.
type Home struct {
	deps Deps

	mu         sync.Mutex
	status     Status
	err        string
	recipes    []models.Recipe
	saved      map[string]bool
	term       string
	difficulty string
}

func NewHome(deps Deps) *Home {
	return &Home{
		deps:       deps,
		status:     StatusLoading,
		saved:      make(map[string]bool),
		difficulty: models.DifficultyAll,
	}
}

// Load fetches the recipe list and, for a logged-in user, the saved ids
// concurrently. A failed saved-ids fetch only loses the saved markers.
func (h *Home) Load(ctx context.Context) error {
	h.mu.Lock()
	h.status = StatusLoading
	h.err = ""
	h.mu.Unlock()

	var (
		recipes []models.Recipe
		saved   []models.Recipe
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipes, err = h.deps.API.ListRecipes(gctx)
		return err
	})
	if user := h.deps.Session.User(); user != nil {
		token := h.deps.Session.Token()
		g.Go(func() error {
			var err error
			saved, err = h.deps.API.SavedRecipes(gctx, token, user.ID)
			if err != nil {
				h.deps.Logger.Warn(gctx, "failed to fetch saved recipes", "error", err)
				saved = nil
			}
			return nil
		})
	}

	err := g.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.status = StatusError
		h.err = "Failed to fetch recipes"
		return err
	}

	h.recipes = recipes
	h.saved = make(map[string]bool, len(saved))
	for _, r := range saved {
		h.saved[r.ID] = true
	}
	h.status = StatusReady
	return nil
}

// Status returns the fetch status and, on error, the text to show.
func (h *Home) Status() (Status, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status, h.err
}

func (h *Home) SetSearch(term string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.term = term
}

// SetDifficulty accepts All or one of models.Difficulties.
func (h *Home) SetDifficulty(d string) error {
	if d != models.DifficultyAll && !slices.Contains(models.Difficulties, d) {
		return fmt.Errorf("unknown difficulty %q", d)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.difficulty = d
	return nil
}

func (h *Home) ClearFilters() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.term = ""
	h.difficulty = models.DifficultyAll
}

// Filters returns the current search term and difficulty.
func (h *Home) Filters() (string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.term, h.difficulty
}

// HasFilters reports whether any filter narrows the list.
func (h *Home) HasFilters() bool {
	term, difficulty := h.Filters()
	return term != "" || difficulty != models.DifficultyAll
}

// Visible returns the recipes that pass the current filters, newest first.
func (h *Home) Visible() []models.Recipe {
	h.mu.Lock()
	defer h.mu.Unlock()
	return FilterRecipes(h.recipes, h.term, h.difficulty)
}

func (h *Home) IsSaved(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.saved[id]
}

// FilterRecipes keeps recipes whose title or any ingredient contains term
// (case-insensitive) and whose difficulty matches; "All" matches any.
func FilterRecipes(recipes []models.Recipe, term, difficulty string) []models.Recipe {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if difficulty != "" && difficulty != models.DifficultyAll && r.Difficulty != difficulty {
			continue
		}
		if term != "" && !matches(r, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(r models.Recipe, term string) bool {
	if strings.Contains(strings.ToLower(r.Title), term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), term) {
			return true
		}
	}
	return false
}

// ToggleSave flips the saved marker right away and calls the API. The
// marker is rolled back if the call fails.
func (h *Home) ToggleSave(ctx context.Context, id string) error {
	if !h.deps.Session.LoggedIn() {
		h.deps.Bus.Error("Please log in to save recipes")
		return ErrLoginRequired
	}

	h.mu.Lock()
	i := slices.IndexFunc(h.recipes, func(r models.Recipe) bool { return r.ID == id })
	if i < 0 {
		h.mu.Unlock()
		return fmt.Errorf("recipe %s is not on the page: %w", id, client.ErrNotFound)
	}
	title := h.recipes[i].Title
	wasSaved := h.saved[id]
	h.saved[id] = !wasSaved
	h.mu.Unlock()

	token := h.deps.Session.Token()
	var err error
	if wasSaved {
		err = h.deps.API.UnsaveRecipe(ctx, token, id)
	} else {
		err = h.deps.API.SaveRecipe(ctx, token, id)
	}

	switch {
	case err == nil && wasSaved:
		h.deps.Bus.Info(fmt.Sprintf("%q removed from your collection", title))
		return nil
	case err == nil:
		h.deps.Bus.Success(fmt.Sprintf("%q saved to your collection", title))
		return nil
	case !wasSaved && errors.Is(err, client.ErrConflict):
		// Already saved on the server; the optimistic marker is right.
		h.deps.Bus.Error(apiMessage(err, "Recipe already saved"))
		return err
	}

	h.mu.Lock()
	h.saved[id] = wasSaved
	h.mu.Unlock()

	h.deps.Logger.Warn(ctx, "toggle save failed", "recipe_id", id, "error", err)
	if wasSaved {
		h.deps.Bus.Error("Failed to remove recipe")
	} else {
		h.deps.Bus.Error("Failed to save recipe")
	}
	return err
}
