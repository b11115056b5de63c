package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepositoryManager vends repositories over one mongo database.
type MongoRepositoryManager struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoRepositoryManager wraps a database handle. client may be nil when
// the caller owns the connection.
func NewMongoRepositoryManager(client *mongo.Client, db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{client: client, db: db}
}

// OpenMongo connects to uri and checks connectivity.
func OpenMongo(ctx context.Context, uri, database string) (*MongoRepositoryManager, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return NewMongoRepositoryManager(client, client.Database(database)), nil
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return users.NewMongoRepository(m.db)
}

func (m *MongoRepositoryManager) Recipes() recipes.Repository {
	return recipes.NewMongoRepository(m.db)
}

// InTx runs fn against the plain stores. A standalone mongod has no
// multi-document transactions, so callers order their writes so that a
// partial failure leaves no dangling references.
func (m *MongoRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error {
	return fn(ctx, m)
}

// RunMigrations creates the collection indexes.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	if _, err := m.db.Collection(users.CollectionName).Indexes().CreateMany(ctx, users.Indexes()); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if _, err := m.db.Collection(recipes.CollectionName).Indexes().CreateMany(ctx, recipes.Indexes()); err != nil {
		return fmt.Errorf("recipes indexes: %w", err)
	}
	return nil
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
