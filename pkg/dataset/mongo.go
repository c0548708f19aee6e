package dataset

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lootdex/lootdex/pkg/catalog"
	"github.com/lootdex/lootdex/pkg/errors"
)

// MongoConfig holds connection settings for the publish store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore publishes the final item set into a MongoDB collection so a
// downstream read API can serve it. The collection always holds exactly one
// complete dataset: Replace swaps the old contents for the new in full.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect %s", cfg.URI)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping %s", cfg.URI)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Replace swaps the collection contents for the given item set.
func (s *MongoStore) Replace(ctx context.Context, items []catalog.ItemRecord) error {
	if _, err := s.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "clear collection")
	}
	if len(items) == 0 {
		return nil
	}

	docs := make([]any, len(items))
	for i, it := range items {
		docs[i] = it
	}
	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "insert %d items", len(items))
	}
	return nil
}

// Count returns the number of items currently published.
func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeStore, err, "count items")
	}
	return n, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
