// Package common contains shared constants and sentinel errors used across
// Culinary Share components.
package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// Recipe defaults applied when the author leaves optional fields empty.
const (
	DefaultImageURL    = "https://via.placeholder.com/350x250?text=No+Image+Available"
	DefaultDifficulty  = "Medium"
	DefaultCookingTime = "45"
	UnknownAuthorName  = "Unknown Chef"
	MaxTitleLength     = 100
)
