package recipes

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/common"
	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func recipeDoc(id, author primitive.ObjectID, title string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "ingredients", Value: bson.A{"water", "salt"}},
		{Key: "instructions", Value: "boil"},
		{Key: "imageUrl", Value: "img"},
		{Key: "difficulty", Value: "Easy"},
		{Key: "cookingTime", Value: "20"},
		{Key: "author", Value: author},
		{Key: "createdAt", Value: time.Now()},
	}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "culinaryshare.recipes"

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		r, err := repo.Create(context.Background(), &models.Recipe{
			Title: "Soup", Ingredients: []string{"water"}, AuthorID: primitive.NewObjectID().Hex(),
		})
		require.NoError(mt, err)
		assert.NotEmpty(mt, r.ID)
		assert.False(mt, r.CreatedAt.IsZero())
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		id, author := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, recipeDoc(id, author, "Soup")))

		r, err := repo.GetByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "Soup", r.Title)
		assert.Equal(mt, author.Hex(), r.AuthorID)
		assert.Equal(mt, []string{"water", "salt"}, r.Ingredients)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)

		_, err := repo.GetByID(context.Background(), "zzz")
		assert.ErrorIs(mt, err, common.ErrorNotFound)
		assert.ErrorIs(mt, repo.Delete(context.Background(), "zzz"), common.ErrorNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		author := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				recipeDoc(primitive.NewObjectID(), author, "New"),
				recipeDoc(primitive.NewObjectID(), author, "Old")),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		list, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, "New", list[0].Title)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.Update(context.Background(), &models.Recipe{ID: primitive.NewObjectID().Hex()})
		assert.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, repo.Delete(context.Background(), primitive.NewObjectID().Hex()))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(mt, repo.Delete(context.Background(), primitive.NewObjectID().Hex()), common.ErrorNotFound)
	})
}
