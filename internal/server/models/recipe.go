package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/common"
)

// Difficulty is one of Easy, Medium or Hard.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type Recipe struct {
	ID           string     `json:"_id"`
	Title        string     `json:"title"`
	Ingredients  []string   `json:"ingredients"`
	Instructions string     `json:"instructions"`
	ImageURL     string     `json:"imageUrl"`
	Difficulty   Difficulty `json:"difficulty"`
	CookingTime  string     `json:"cookingTime"`
	AuthorID     string     `json:"author"`
	CreatedAt    time.Time  `json:"createdAt"`

	// AuthorName is resolved at read time and only set on single-recipe reads.
	AuthorName string `json:"authorName,omitempty"`
}

// RecipeInput carries the fields of a create request.
type RecipeInput struct {
	Title        string     `json:"title"`
	Ingredients  []string   `json:"ingredients"`
	Instructions string     `json:"instructions"`
	ImageURL     string     `json:"imageUrl"`
	Difficulty   Difficulty `json:"difficulty"`
	CookingTime  string     `json:"cookingTime"`
}

// RecipeUpdate carries a partial update; nil fields are left untouched.
type RecipeUpdate struct {
	Title        *string     `json:"title"`
	Ingredients  []string    `json:"ingredients"`
	Instructions *string     `json:"instructions"`
	ImageURL     *string     `json:"imageUrl"`
	Difficulty   *Difficulty `json:"difficulty"`
	CookingTime  *string     `json:"cookingTime"`
}

// CleanIngredients trims every line and drops the blank ones.
func CleanIngredients(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// NewRecipe validates in, applies defaults and returns a recipe owned by authorID.
func NewRecipe(in RecipeInput, authorID string) (*Recipe, error) {
	r := &Recipe{
		Title:        strings.TrimSpace(in.Title),
		Ingredients:  CleanIngredients(in.Ingredients),
		Instructions: strings.TrimSpace(in.Instructions),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		Difficulty:   Difficulty(strings.TrimSpace(string(in.Difficulty))),
		CookingTime:  strings.TrimSpace(in.CookingTime),
		AuthorID:     authorID,
	}

	if r.Title == "" || len(r.Ingredients) == 0 || r.Instructions == "" {
		return nil, common.WithMessage(common.ErrValidation, "Title, ingredients and instructions are required")
	}
	if r.ImageURL == "" {
		r.ImageURL = common.DefaultImageURL
	}
	if r.Difficulty == "" {
		r.Difficulty = common.DefaultDifficulty
	}
	if r.CookingTime == "" {
		r.CookingTime = common.DefaultCookingTime
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply overwrites r with every supplied, non-empty value of u and
// validates the result. r is left unchanged on error.
func (r *Recipe) Apply(u RecipeUpdate) error {
	next := *r
	next.Ingredients = append([]string(nil), r.Ingredients...)

	if v := trimmed(u.Title); v != "" {
		next.Title = v
	}
	if lines := CleanIngredients(u.Ingredients); len(lines) > 0 {
		next.Ingredients = lines
	}
	if v := trimmed(u.Instructions); v != "" {
		next.Instructions = v
	}
	if v := trimmed(u.ImageURL); v != "" {
		next.ImageURL = v
	}
	if u.Difficulty != nil {
		if v := Difficulty(strings.TrimSpace(string(*u.Difficulty))); v != "" {
			next.Difficulty = v
		}
	}
	if v := trimmed(u.CookingTime); v != "" {
		next.CookingTime = v
	}

	if err := next.validate(); err != nil {
		return err
	}
	*r = next
	return nil
}

func (r *Recipe) validate() error {
	if len([]rune(r.Title)) > common.MaxTitleLength {
		return common.WithMessage(common.ErrValidation, fmt.Sprintf("Title cannot be more than %d characters", common.MaxTitleLength))
	}
	if !r.Difficulty.Valid() {
		return common.WithMessage(common.ErrValidation, "Difficulty must be one of Easy, Medium, Hard")
	}
	return nil
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
