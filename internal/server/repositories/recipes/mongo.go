package recipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/common"
	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the mongo collection holding recipes.
const CollectionName = "recipes"

type recipeDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Ingredients  []string           `bson:"ingredients"`
	Instructions string             `bson:"instructions"`
	ImageURL     string             `bson:"imageUrl"`
	Difficulty   string             `bson:"difficulty"`
	CookingTime  string             `bson:"cookingTime"`
	Author       primitive.ObjectID `bson:"author"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d *recipeDocument) toModel() *models.Recipe {
	return &models.Recipe{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Ingredients:  d.Ingredients,
		Instructions: d.Instructions,
		ImageURL:     d.ImageURL,
		Difficulty:   models.Difficulty(d.Difficulty),
		CookingTime:  d.CookingTime,
		AuthorID:     d.Author.Hex(),
		CreatedAt:    d.CreatedAt,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// Indexes returns the listing index on createdAt.
func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
}

func (r *MongoRepository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	author, err := primitive.ObjectIDFromHex(recipe.AuthorID)
	if err != nil {
		return nil, common.WithMessage(common.ErrValidation, "Invalid author")
	}

	doc := recipeDocument{
		Title:        recipe.Title,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
		ImageURL:     recipe.ImageURL,
		Difficulty:   string(recipe.Difficulty),
		CookingTime:  recipe.CookingTime,
		Author:       author,
		CreatedAt:    time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("db error: unexpected inserted id %v", res.InsertedID)
	}
	recipe.ID = id.Hex()
	recipe.CreatedAt = doc.CreatedAt

	return recipe, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	var doc recipeDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Recipe, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*models.Recipe{}, nil
	}

	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find())
}

func (r *MongoRepository) List(ctx context.Context) ([]*models.Recipe, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Recipe, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	result := make([]*models.Recipe, 0)
	for cur.Next(ctx) {
		var doc recipeDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *MongoRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	oid, err := primitive.ObjectIDFromHex(recipe.ID)
	if err != nil {
		return common.ErrorNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":        recipe.Title,
		"ingredients":  recipe.Ingredients,
		"instructions": recipe.Instructions,
		"imageUrl":     recipe.ImageURL,
		"difficulty":   string(recipe.Difficulty),
		"cookingTime":  recipe.CookingTime,
	}})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrorNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}

	return nil
}
