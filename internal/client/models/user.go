package models

import "time"

type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	SavedRecipes []string  `json:"savedRecipes"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is returned by register and login.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// HasSaved reports whether recipeID is in the user's saved set.
func (u *User) HasSaved(recipeID string) bool {
	for _, id := range u.SavedRecipes {
		if id == recipeID {
			return true
		}
	}
	return false
}
