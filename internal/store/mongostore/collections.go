package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/rules"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// ruleDoc stores a rule value in its natural bson form.
type ruleDoc struct {
	Attribute string `bson:"attribute"`
	Operator  string `bson:"operator"`
	Value     any    `bson:"value"`
	Position  int    `bson:"position"`
}

type collectionDoc struct {
	ID          types.CollectionID     `bson:"_id"`
	Name        string                 `bson:"name"`
	CategoryID  types.CategoryID       `bson:"category_id"`
	Rules       []ruleDoc              `bson:"rules"`
	Status      types.CollectionStatus `bson:"status"`
	Description string                 `bson:"description,omitempty"`
	ImageURL    string                 `bson:"image_url,omitempty"`
	CreatedAt   time.Time              `bson:"created_at"`
	UpdatedAt   time.Time              `bson:"updated_at"`
}

func toCollectionDoc(c *types.Collection) collectionDoc {
	rs := make([]ruleDoc, len(c.Rules))
	for i, r := range c.Rules {
		rs[i] = ruleDoc{Attribute: r.Attribute, Operator: r.Operator, Value: r.Value.Native(), Position: r.Position}
	}
	return collectionDoc{
		ID:          c.ID,
		Name:        c.Name,
		CategoryID:  c.CategoryID,
		Rules:       rs,
		Status:      c.Status,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d collectionDoc) toCollection() (types.Collection, error) {
	rs := make([]types.Rule, len(d.Rules))
	for i, r := range d.Rules {
		v, err := types.FromNative(r.Value)
		if err != nil {
			return types.Collection{}, fmt.Errorf("decode rule %d of collection %s: %w", r.Position, d.ID, err)
		}
		rs[i] = types.Rule{Attribute: r.Attribute, Operator: r.Operator, Value: v, Position: r.Position}
	}
	return types.Collection{
		ID:          d.ID,
		Name:        d.Name,
		CategoryID:  d.CategoryID,
		Rules:       rs,
		Status:      d.Status,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}, nil
}

func (s *Store) findCollection(ctx context.Context, filter bson.D) (*types.Collection, error) {
	var d collectionDoc
	if err := s.coll(collectionsColl).FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, notFound(err, types.ErrCollectionNotFound)
	}
	c, err := d.toCollection()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCollection loads a collection by id.
func (s *Store) GetCollection(ctx context.Context, id types.CollectionID) (*types.Collection, error) {
	return s.findCollection(ctx, byID(id))
}

// GetCollectionByName loads a collection by its unique name.
func (s *Store) GetCollectionByName(ctx context.Context, name string) (*types.Collection, error) {
	return s.findCollection(ctx, bson.D{{Key: "name", Value: name}})
}

// ListCollections loads every collection, oldest first.
func (s *Store) ListCollections(ctx context.Context) ([]types.Collection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	docs, err := findAll[collectionDoc](ctx, s.coll(collectionsColl), bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]types.Collection, 0, len(docs))
	for _, d := range docs {
		c, err := d.toCollection()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// CreateCollection inserts a collection document. A taken name surfaces as
// types.ErrDuplicateName.
func (s *Store) CreateCollection(ctx context.Context, c *types.Collection) error {
	if _, err := s.coll(collectionsColl).InsertOne(ctx, toCollectionDoc(c)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", types.ErrDuplicateName, c.Name)
		}
		return err
	}
	return nil
}

// UpdateCollection replaces the whole document, rules included.
func (s *Store) UpdateCollection(ctx context.Context, c *types.Collection) error {
	res, err := s.coll(collectionsColl).ReplaceOne(ctx, byID(c.ID), toCollectionDoc(c))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", types.ErrDuplicateName, c.Name)
		}
		return err
	}
	return requireMatched(res, types.ErrCollectionNotFound)
}

// DeleteCollection removes a collection document.
func (s *Store) DeleteCollection(ctx context.Context, id types.CollectionID) error {
	res, err := s.coll(collectionsColl).DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return types.ErrCollectionNotFound
	}
	return nil
}

// CreateProduct inserts a product document.
func (s *Store) CreateProduct(ctx context.Context, p *types.Product) error {
	_, err := s.coll(productsColl).InsertOne(ctx, p)
	return err
}

// FindProducts runs the rendered predicate server-side: one Find for the
// first limit documents, oldest first, and one CountDocuments for the total.
func (s *Store) FindProducts(ctx context.Context, pred *rules.Predicate, limit int) ([]types.Product, int, error) {
	filter := pred.Filter()

	var items []types.Product
	if limit > 0 {
		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
			SetLimit(int64(limit))
		found, err := findAll[types.Product](ctx, s.coll(productsColl), filter, opts)
		if err != nil {
			return nil, 0, fmt.Errorf("find products: %w", err)
		}
		items = found
	}

	n, err := s.coll(productsColl).CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	return items, int(n), nil
}
