package users

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

// CollectionName is the mongo collection holding users.
const CollectionName = "users"

type userDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Username     string               `bson:"username"`
	Email        string               `bson:"email"`
	PasswordHash string               `bson:"passwordHash"`
	SavedRecipes []primitive.ObjectID `bson:"savedRecipes"`
	CreatedAt    time.Time            `bson:"createdAt"`
}

func (d *userDocument) toModel() *models.User {
	saved := make([]string, 0, len(d.SavedRecipes))
	for _, id := range d.SavedRecipes {
		saved = append(saved, id.Hex())
	}
	return &models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		SavedRecipes: saved,
		CreatedAt:    d.CreatedAt,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// Indexes returns the unique indexes on email and username.
func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	doc := userDocument{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		SavedRecipes: []primitive.ObjectID{},
		CreatedAt:    time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("db error: unexpected inserted id %v", res.InsertedID)
	}
	user.ID = id.Hex()
	user.CreatedAt = doc.CreatedAt
	user.SavedRecipes = []string{}

	return user, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) AddSaved(ctx context.Context, userID, recipeID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return common.ErrorNotFound
	}
	rid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return common.ErrorNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": uid, "savedRecipes": bson.M{"$ne": rid}},
		bson.M{"$push": bson.M{"savedRecipes": rid}},
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the user is gone or the id is already there.
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": uid})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return common.ErrorAlreadyExists
}

func (r *MongoRepository) RemoveSaved(ctx context.Context, userID, recipeID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	rid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return nil
	}

	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$pull": bson.M{"savedRecipes": rid}}); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) RemoveSavedEverywhere(ctx context.Context, recipeID string) error {
	rid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return nil
	}

	if _, err := r.coll.UpdateMany(ctx,
		bson.M{"savedRecipes": rid},
		bson.M{"$pull": bson.M{"savedRecipes": rid}},
	); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) SavedIDs(ctx context.Context, userID string) ([]string, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.SavedRecipes, nil
}
