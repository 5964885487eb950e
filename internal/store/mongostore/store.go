// Package mongostore implements the catalog and collection stores on MongoDB.
//
// Categories, attributes, units and attribute groups are stored with their
// bson tags from internal/types. Collections use a local document shape so
// rule values keep their natural form. Collection membership is pushed down
// to the server by rendering the compiled predicate with Predicate.Filter.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/catalog"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/collection"
)

// Collection names.
const (
	categoriesColl      = "categories"
	unitsColl           = "units"
	attributesColl      = "attributes"
	attributeGroupsColl = "attribute_groups"
	collectionsColl     = "collections"
	productsColl        = "products"
)

const connectTimeout = 10 * time.Second

// Store is the MongoDB-backed catalog and collection store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

var (
	_ catalog.Store    = (*Store)(nil)
	_ collection.Store = (*Store)(nil)
)

// Connect dials uri, verifies the connection and returns a store over the
// named database.
func Connect(ctx context.Context, uri, database string, logger *zap.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	// Embedded documents in product attributes decode as maps, not bson.D.
	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := New(client.Database(database), logger)
	s.client = client
	return s, nil
}

// New wraps an existing database handle.
func New(db *mongo.Database, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Close disconnects the client opened by Connect.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique and lookup indexes the store relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		attributesColl: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionsColl: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "rules.attribute", Value: 1}}},
		},
		categoriesColl: {
			{Keys: bson.D{{Key: "parent_id", Value: 1}}},
			{Keys: bson.D{{Key: "attributes", Value: 1}}},
		},
		attributeGroupsColl: {
			{Keys: bson.D{{Key: "attributes", Value: 1}}},
		},
		productsColl: {
			{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		},
	}
	for coll, models := range specs {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		s.logger.Debug("ensured indexes", zap.String("collection", coll), zap.Int("count", len(models)))
	}
	return nil
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// notFound maps mongo.ErrNoDocuments to the given sentinel.
func notFound(err error, sentinel error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sentinel
	}
	return err
}

// requireMatched returns sentinel when an update matched no document.
func requireMatched(res *mongo.UpdateResult, sentinel error) error {
	if res.MatchedCount == 0 {
		return sentinel
	}
	return nil
}

// byID is the primary key filter.
func byID(id any) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

// findAll decodes every document matching filter into a slice.
func findAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
