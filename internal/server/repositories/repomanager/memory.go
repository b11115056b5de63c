package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory.
type MemoryRepositoryManager struct {
	mu      sync.Mutex
	users   *users.MemoryRepository
	recipes *recipes.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:   users.NewMemoryRepository(),
		recipes: recipes.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository     { return m.users }
func (m *MemoryRepositoryManager) Recipes() recipes.Repository { return m.recipes }

func (m *MemoryRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, m)
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Close(context.Context) error         { return nil }
