// Package users is the credential store: user identities and the per-user
// set of saved recipe ids.
package users

import (
	"context"

	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
)

// Repository persists users and their saved recipes.
//
// Lookups of an unknown or malformed id return common.ErrorNotFound.
// Create returns common.ErrorAlreadyExists when the username or email is taken,
// AddSaved returns it when the recipe is already in the user's saved set.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	AddSaved(ctx context.Context, userID, recipeID string) error
	RemoveSaved(ctx context.Context, userID, recipeID string) error
	RemoveSavedEverywhere(ctx context.Context, recipeID string) error
	SavedIDs(ctx context.Context, userID string) ([]string, error)
}
