// Package models defines server-side data models shared by stores, services
// and the HTTP layer.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	SavedRecipes []string  `json:"savedRecipes"`
	CreatedAt    time.Time `json:"createdAt"`
}
