// Package repomanager vends the credential and recipe stores of one storage
// backend and runs units of work across both.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/users"
)

// Stores gives access to both repositories.
type Stores interface {
	Users() users.Repository
	Recipes() recipes.Repository
}

type RepositoryManager interface {
	Stores

	// InTx runs fn against stores that share one unit of work. On postgres it
	// is a transaction; on mongodb the writes in fn run sequentially without
	// one; the memory backend serializes units of work under a lock.
	InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error

	// RunMigrations brings the schema (tables or indexes) up to date.
	RunMigrations(ctx context.Context) error

	Close(ctx context.Context) error
}

type stores struct {
	users   users.Repository
	recipes recipes.Repository
}

func (s stores) Users() users.Repository     { return s.users }
func (s stores) Recipes() recipes.Repository { return s.recipes }
