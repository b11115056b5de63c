package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/culinaryshare/internal/common"
	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/repomanager"
)

// RecipeService provides recipe CRUD with ownership checks and the
// save/unsave relation.
type RecipeService struct {
	repomanager repomanager.RepositoryManager
}

func NewRecipeService(m repomanager.RepositoryManager) *RecipeService {
	return &RecipeService{repomanager: m}
}

var errRecipeNotFound = common.WithMessage(common.ErrorNotFound, "Recipe not found")

// List returns every recipe, newest first.
func (s *RecipeService) List(ctx context.Context) ([]*models.Recipe, error) {
	list, err := s.repomanager.Recipes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing recipes: %w", err)
	}
	return list, nil
}

// Get returns one recipe with its author's username resolved.
func (s *RecipeService) Get(ctx context.Context, id string) (*models.Recipe, error) {
	recipe, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.repomanager.Users().GetByID(ctx, recipe.AuthorID)
	switch {
	case err == nil:
		recipe.AuthorName = author.Username
	case errors.Is(err, common.ErrorNotFound):
		recipe.AuthorName = common.UnknownAuthorName
	default:
		return nil, fmt.Errorf("error loading author: %w", err)
	}

	return recipe, nil
}

// Create validates in and stores a recipe authored by userID.
func (s *RecipeService) Create(ctx context.Context, userID string, in models.RecipeInput) (*models.Recipe, error) {
	recipe, err := models.NewRecipe(in, userID)
	if err != nil {
		return nil, err
	}

	created, err := s.repomanager.Recipes().Create(ctx, recipe)
	if err != nil {
		return nil, fmt.Errorf("error creating recipe: %w", err)
	}
	return created, nil
}

// Update applies a partial update. Only the author may update.
func (s *RecipeService) Update(ctx context.Context, userID, id string, upd models.RecipeUpdate) (*models.Recipe, error) {
	recipe, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, common.WithMessage(common.ErrForbidden, "User not authorized to update this recipe")
	}

	if err := recipe.Apply(upd); err != nil {
		return nil, err
	}

	if err := s.repomanager.Recipes().Update(ctx, recipe); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errRecipeNotFound
		}
		return nil, fmt.Errorf("error updating recipe: %w", err)
	}
	return recipe, nil
}

// Delete removes the recipe from every saved set and then deletes it.
// Only the author may delete.
func (s *RecipeService) Delete(ctx context.Context, userID, id string) error {
	recipe, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return common.WithMessage(common.ErrForbidden, "User not authorized to delete this recipe")
	}

	err = s.repomanager.InTx(ctx, func(ctx context.Context, st repomanager.Stores) error {
		if err := st.Users().RemoveSavedEverywhere(ctx, recipe.ID); err != nil {
			return fmt.Errorf("error removing saved references: %w", err)
		}
		if err := st.Recipes().Delete(ctx, recipe.ID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return errRecipeNotFound
			}
			return fmt.Errorf("error deleting recipe: %w", err)
		}
		return nil
	})
	return err
}

// Save adds recipeID to the user's saved set.
func (s *RecipeService) Save(ctx context.Context, userID, recipeID string) error {
	if _, err := s.load(ctx, recipeID); err != nil {
		return err
	}

	if err := s.repomanager.Users().AddSaved(ctx, userID, recipeID); err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return common.WithMessage(common.ErrConflict, "Recipe already saved")
		case errors.Is(err, common.ErrorNotFound):
			return errRecipeNotFound
		}
		return fmt.Errorf("error saving recipe: %w", err)
	}
	return nil
}

// Unsave removes recipeID from the user's saved set. Removing an id that is
// not there succeeds.
func (s *RecipeService) Unsave(ctx context.Context, userID, recipeID string) error {
	if err := s.repomanager.Users().RemoveSaved(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("error removing saved recipe: %w", err)
	}
	return nil
}

// Saved resolves the user's saved set in saved order, skipping recipes
// that no longer exist.
func (s *RecipeService) Saved(ctx context.Context, userID string) ([]*models.Recipe, error) {
	ids, err := s.repomanager.Users().SavedIDs(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.WithMessage(common.ErrorNotFound, "User not found")
		}
		return nil, fmt.Errorf("error loading saved recipes: %w", err)
	}

	found, err := s.repomanager.Recipes().GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error loading saved recipes: %w", err)
	}

	byID := make(map[string]*models.Recipe, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	result := make([]*models.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *RecipeService) load(ctx context.Context, id string) (*models.Recipe, error) {
	recipe, err := s.repomanager.Recipes().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errRecipeNotFound
		}
		return nil, fmt.Errorf("error loading recipe: %w", err)
	}
	return recipe, nil
}
