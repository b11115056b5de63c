package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipeID = "22222222-2222-2222-2222-222222222222"

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return db, mock
}

func TestPostgres_ImplementsInterface(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var m RepositoryManager = NewPostgresRepositoryManager(db)

	var _ users.Repository = m.Users()
	var _ recipes.Repository = m.Recipes()
	assert.IsType(t, &users.PostgresRepository{}, m.Users())
	assert.IsType(t, &recipes.PostgresRepository{}, m.Recipes())
}

func TestPostgres_InTx_CommitsCascade(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE\s+FROM\s+saved_recipes`).WithArgs(recipeID).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE\s+FROM\s+recipes`).WithArgs(recipeID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := NewPostgresRepositoryManager(db)
	err := m.InTx(context.Background(), func(ctx context.Context, s Stores) error {
		if err := s.Users().RemoveSavedEverywhere(ctx, recipeID); err != nil {
			return err
		}
		return s.Recipes().Delete(ctx, recipeID)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_InTx_RollsBackOnError(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE\s+FROM\s+saved_recipes`).WithArgs(recipeID).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE\s+FROM\s+recipes`).WithArgs(recipeID).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	m := NewPostgresRepositoryManager(db)
	err := m.InTx(context.Background(), func(ctx context.Context, s Stores) error {
		if err := s.Users().RemoveSavedEverywhere(ctx, recipeID); err != nil {
			return err
		}
		return s.Recipes().Delete(ctx, recipeID)
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	require.NoError(t, m.RunMigrations(context.Background()))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("migration failed")
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	assert.EqualError(t, m.RunMigrations(context.Background()), "migration failed")
}

func TestPostgres_Close(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectClose()

	m := NewPostgresRepositoryManager(db)
	require.NoError(t, m.Close(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
