// Package models holds the client-side view of API payloads.
package models

import "time"

// Difficulty levels plus the "All" filter value used by the home page.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
	DifficultyAll    = "All"
)

// Difficulties lists the levels a recipe may carry, in display order.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

type Recipe struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Ingredients  []string  `json:"ingredients"`
	Instructions string    `json:"instructions"`
	ImageURL     string    `json:"imageUrl"`
	Difficulty   string    `json:"difficulty"`
	CookingTime  string    `json:"cookingTime"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
	AuthorName   string    `json:"authorName,omitempty"`
}

// RecipeInput is the body of create and update requests. Empty fields are
// omitted so that an update only touches what the user filled in.
type RecipeInput struct {
	Title        string   `json:"title,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	CookingTime  string   `json:"cookingTime,omitempty"`
}
