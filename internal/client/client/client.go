// Package client is a typed REST client for the Culinary Share API.
package client

import (
	"context"

	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
)

// Client lists every API call the CLI makes. Calls that need an identity
// take the bearer token explicitly so a single Client can be shared.
type Client interface {
	Register(ctx context.Context, username, email, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*models.User, error)

	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, token string, in models.RecipeInput) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, token, id string, in models.RecipeInput) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, token, id string) error

	SaveRecipe(ctx context.Context, token, id string) error
	UnsaveRecipe(ctx context.Context, token, id string) error
	SavedRecipes(ctx context.Context, token, userID string) ([]models.Recipe, error)
}
