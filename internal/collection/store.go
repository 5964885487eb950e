package collection

import (
	"context"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/rules"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// ProductReader finds products matching a compiled predicate.
type ProductReader interface {
	// FindProducts returns at most limit matching products, oldest first, and
	// the total number of matches. An empty predicate matches every product.
	FindProducts(ctx context.Context, pred *rules.Predicate, limit int) ([]types.Product, int, error)
}

// Store persists collections and products.
type Store interface {
	ProductReader

	CreateProduct(ctx context.Context, p *types.Product) error

	CreateCollection(ctx context.Context, c *types.Collection) error

	// UpdateCollection overwrites every field and the whole rule list.
	// Returns types.ErrCollectionNotFound when the id does not exist.
	UpdateCollection(ctx context.Context, c *types.Collection) error

	GetCollection(ctx context.Context, id types.CollectionID) (*types.Collection, error)
	GetCollectionByName(ctx context.Context, name string) (*types.Collection, error)
	ListCollections(ctx context.Context) ([]types.Collection, error)
	DeleteCollection(ctx context.Context, id types.CollectionID) error
}
