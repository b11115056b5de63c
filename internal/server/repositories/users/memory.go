package users

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/common"
	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*models.User)}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, common.ErrorAlreadyExists
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.SavedRecipes = []string{}
	r.users[user.ID] = clone(user)

	return user, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *MemoryRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *MemoryRepository) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return clone(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) AddSaved(_ context.Context, userID, recipeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	if slices.Contains(u.SavedRecipes, recipeID) {
		return common.ErrorAlreadyExists
	}
	u.SavedRecipes = append(u.SavedRecipes, recipeID)
	return nil
}

func (r *MemoryRepository) RemoveSaved(_ context.Context, userID, recipeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[userID]; ok {
		u.SavedRecipes = slices.DeleteFunc(u.SavedRecipes, func(id string) bool { return id == recipeID })
	}
	return nil
}

func (r *MemoryRepository) RemoveSavedEverywhere(_ context.Context, recipeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		u.SavedRecipes = slices.DeleteFunc(u.SavedRecipes, func(id string) bool { return id == recipeID })
	}
	return nil
}

func (r *MemoryRepository) SavedIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return slices.Clone(u.SavedRecipes), nil
}

func clone(u *models.User) *models.User {
	c := *u
	c.SavedRecipes = slices.Clone(u.SavedRecipes)
	if c.SavedRecipes == nil {
		c.SavedRecipes = []string{}
	}
	return &c
}
