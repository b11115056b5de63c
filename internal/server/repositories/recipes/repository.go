// Package recipes is the recipe store.
package recipes

import (
	"context"

	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
)

// Repository persists recipes. Unknown or malformed ids yield
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	// GetByIDs returns the recipes that still exist, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]*models.Recipe, error)
	// List returns every recipe, newest first.
	List(ctx context.Context) ([]*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id string) error
}
