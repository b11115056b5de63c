package recipes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/culinaryshare/internal/common"
	"github.com/dmitrijs2005/culinaryshare/internal/dbx"
	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
	"github.com/google/uuid"
)

const recipeColumns = `id, title, ingredients, instructions, image_url, difficulty, cooking_time, author_id, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("encode ingredients: %w", err)
	}

	query :=
		`INSERT INTO recipes (title, ingredients, instructions, image_url, difficulty, cooking_time, author_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		recipe.Title, string(ingredients), recipe.Instructions, recipe.ImageURL,
		string(recipe.Difficulty), recipe.CookingTime, recipe.AuthorID,
	).Scan(&recipe.ID, &recipe.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recipe, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes
		 WHERE id = $1
		 `

	recipe, err := scanRecipe(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recipe, nil
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Recipe, error) {
	args := make([]any, 0, len(ids))
	placeholders := make([]string, 0, len(ids))
	for _, id := range ids {
		if !validID(id) {
			continue
		}
		args = append(args, id)
		placeholders = append(placeholders, "$"+strconv.Itoa(len(args)))
	}
	if len(args) == 0 {
		return []*models.Recipe{}, nil
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes
		 WHERE id IN (` + strings.Join(placeholders, ", ") + `)
		 `

	return r.query(ctx, query, args...)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes
		 ORDER BY created_at DESC
		 `

	return r.query(ctx, query)
}

func (r *PostgresRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	if !validID(recipe.ID) {
		return common.ErrorNotFound
	}

	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("encode ingredients: %w", err)
	}

	query :=
		`UPDATE recipes
		 SET title = $2, ingredients = $3, instructions = $4, image_url = $5, difficulty = $6, cooking_time = $7
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		recipe.ID, recipe.Title, string(ingredients), recipe.Instructions, recipe.ImageURL,
		string(recipe.Difficulty), recipe.CookingTime,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}

	query :=
		`DELETE FROM recipes
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s scanner) (*models.Recipe, error) {
	var (
		recipe      models.Recipe
		ingredients []byte
		difficulty  string
	)

	err := s.Scan(&recipe.ID, &recipe.Title, &ingredients, &recipe.Instructions, &recipe.ImageURL,
		&difficulty, &recipe.CookingTime, &recipe.AuthorID, &recipe.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(ingredients, &recipe.Ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	recipe.Difficulty = models.Difficulty(difficulty)

	return &recipe, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
