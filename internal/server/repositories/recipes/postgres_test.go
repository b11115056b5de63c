package recipes

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/culinaryshare/internal/common"
	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	recipeID  = "22222222-2222-2222-2222-222222222222"
	recipeID2 = "33333333-3333-3333-3333-333333333333"
	authorID  = "11111111-1111-1111-1111-111111111111"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func recipeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "ingredients", "instructions", "image_url", "difficulty", "cooking_time", "author_id", "created_at",
	})
}

func sampleRecipe() *models.Recipe {
	return &models.Recipe{
		Title:        "Soup",
		Ingredients:  []string{"water", "salt"},
		Instructions: "boil",
		ImageURL:     common.DefaultImageURL,
		Difficulty:   models.DifficultyEasy,
		CookingTime:  "20",
		AuthorID:     authorID,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+recipes\s*\(title,\s*ingredients,\s*instructions,\s*image_url,\s*difficulty,\s*cooking_time,\s*author_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*RETURNING\s+id,\s*created_at\s*$`
	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("Soup", `["water","salt"]`, "boil", common.DefaultImageURL, "Easy", "20", authorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(recipeID, now))

	got, err := repo.Create(context.Background(), sampleRecipe())
	require.NoError(t, err)
	assert.Equal(t, recipeID, got.ID)
	assert.Equal(t, now, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+recipes`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), sampleRecipe())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	q := `(?s)^SELECT\s+id,\s*title,.*FROM\s+recipes\s+WHERE\s+id\s*=\s*\$1\s*$`

	t.Run("found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).WithArgs(recipeID).WillReturnRows(recipeRows().
			AddRow(recipeID, "Soup", []byte(`["water","salt"]`), "boil", "img", "Hard", "20", authorID, time.Now()))

		got, err := repo.GetByID(context.Background(), recipeID)
		require.NoError(t, err)
		assert.Equal(t, []string{"water", "salt"}, got.Ingredients)
		assert.Equal(t, models.DifficultyHard, got.Difficulty)
		assert.Equal(t, authorID, got.AuthorID)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).WithArgs(recipeID).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), recipeID)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		_, err := repo.GetByID(context.Background(), "12345")
		assert.ErrorIs(t, err, common.ErrorNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt ingredients", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).WithArgs(recipeID).WillReturnRows(recipeRows().
			AddRow(recipeID, "Soup", []byte(`{`), "boil", "img", "Hard", "20", authorID, time.Now()))

		_, err := repo.GetByID(context.Background(), recipeID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestList_NewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+recipes\s+ORDER\s+BY\s+created_at\s+DESC\s*$`
	now := time.Now()
	mock.ExpectQuery(q).WillReturnRows(recipeRows().
		AddRow(recipeID2, "New", []byte(`["a"]`), "x", "img", "Easy", "5", authorID, now).
		AddRow(recipeID, "Old", []byte(`["b"]`), "y", "img", "Medium", "45", authorID, now.Add(-time.Hour)))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "New", got[0].Title)
	assert.Equal(t, "Old", got[1].Title)
}

func TestGetByIDs(t *testing.T) {
	t.Run("skips malformed ids", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		q := `(?s)^SELECT\s+id,.*FROM\s+recipes\s+WHERE\s+id\s+IN\s+\(\$1,\s*\$2\)\s*$`
		mock.ExpectQuery(q).WithArgs(recipeID, recipeID2).WillReturnRows(recipeRows().
			AddRow(recipeID, "Soup", []byte(`["a"]`), "x", "img", "Easy", "5", authorID, time.Now()))

		got, err := repo.GetByIDs(context.Background(), []string{recipeID, "bad", recipeID2})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, recipeID, got[0].ID)
	})

	t.Run("no valid ids skips the query", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		got, err := repo.GetByIDs(context.Background(), []string{"bad"})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdate(t *testing.T) {
	q := `(?s)^UPDATE\s+recipes\s+SET\s+title\s*=\s*\$2,.*WHERE\s+id\s*=\s*\$1\s*$`

	t.Run("updated", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		r := sampleRecipe()
		r.ID = recipeID
		mock.ExpectExec(q).
			WithArgs(recipeID, "Soup", `["water","salt"]`, "boil", common.DefaultImageURL, "Easy", "20").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), r))
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		r := sampleRecipe()
		r.ID = recipeID
		mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), r), common.ErrorNotFound)
	})
}

func TestDelete(t *testing.T) {
	q := `(?s)^DELETE\s+FROM\s+recipes\s+WHERE\s+id\s*=\s*\$1\s*$`

	t.Run("deleted", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WithArgs(recipeID).WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.Delete(context.Background(), recipeID))
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WithArgs(recipeID).WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Delete(context.Background(), recipeID), common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WithArgs(recipeID).WillReturnError(errors.New("db err"))
		err := repo.Delete(context.Background(), recipeID)
		if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})
}
