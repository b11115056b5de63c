package recipes

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/common"
	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
	"github.com/google/uuid"
)

type memoryEntry struct {
	recipe *models.Recipe
	seq    uint64
}

// MemoryRepository keeps recipes in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	recipes map[string]memoryEntry
	seq     uint64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{recipes: make(map[string]memoryEntry)}
}

func (r *MemoryRepository) Create(_ context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	recipe.ID = uuid.NewString()
	recipe.CreatedAt = time.Now().UTC()
	r.recipes[recipe.ID] = memoryEntry{recipe: clone(recipe), seq: r.seq}

	return recipe, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.recipes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(e.recipe), nil
}

func (r *MemoryRepository) GetByIDs(_ context.Context, ids []string) ([]*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Recipe, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.recipes[id]; ok {
			result = append(result, clone(e.recipe))
		}
	}
	return result, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]memoryEntry, 0, len(r.recipes))
	for _, e := range r.recipes {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b memoryEntry) int {
		switch {
		case a.seq > b.seq:
			return -1
		case a.seq < b.seq:
			return 1
		}
		return 0
	})

	result := make([]*models.Recipe, 0, len(entries))
	for _, e := range entries {
		result = append(result, clone(e.recipe))
	}
	return result, nil
}

func (r *MemoryRepository) Update(_ context.Context, recipe *models.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.recipes[recipe.ID]
	if !ok {
		return common.ErrorNotFound
	}

	updated := clone(recipe)
	updated.AuthorID = e.recipe.AuthorID
	updated.CreatedAt = e.recipe.CreatedAt
	updated.AuthorName = ""
	r.recipes[recipe.ID] = memoryEntry{recipe: updated, seq: e.seq}

	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.recipes[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.recipes, id)
	return nil
}

func clone(r *models.Recipe) *models.Recipe {
	c := *r
	c.Ingredients = slices.Clone(r.Ingredients)
	return &c
}
