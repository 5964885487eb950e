package collection

import (
	"context"
	"errors"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/rules"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// memStore is an in-memory Store evaluating predicates in process.
type memStore struct {
	products    []types.Product
	collections []types.Collection
	findErr     error
}

func (m *memStore) FindProducts(_ context.Context, pred *rules.Predicate, limit int) ([]types.Product, int, error) {
	if m.findErr != nil {
		return nil, 0, m.findErr
	}
	var items []types.Product
	count := 0
	for _, p := range m.products {
		ok, err := pred.MatchProduct(p)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			continue
		}
		count++
		if len(items) < limit {
			items = append(items, p)
		}
	}
	return items, count, nil
}

func (m *memStore) CreateProduct(_ context.Context, p *types.Product) error {
	m.products = append(m.products, *p)
	return nil
}

func (m *memStore) CreateCollection(_ context.Context, c *types.Collection) error {
	m.collections = append(m.collections, *c)
	return nil
}

func (m *memStore) UpdateCollection(_ context.Context, c *types.Collection) error {
	for i := range m.collections {
		if m.collections[i].ID == c.ID {
			m.collections[i] = *c
			return nil
		}
	}
	return types.ErrCollectionNotFound
}

func (m *memStore) GetCollection(_ context.Context, id types.CollectionID) (*types.Collection, error) {
	for _, c := range m.collections {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, types.ErrCollectionNotFound
}

func (m *memStore) GetCollectionByName(_ context.Context, name string) (*types.Collection, error) {
	for _, c := range m.collections {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, types.ErrCollectionNotFound
}

func (m *memStore) ListCollections(context.Context) ([]types.Collection, error) {
	return append([]types.Collection(nil), m.collections...), nil
}

func (m *memStore) DeleteCollection(_ context.Context, id types.CollectionID) error {
	for i, c := range m.collections {
		if c.ID == id {
			m.collections = append(m.collections[:i], m.collections[i+1:]...)
			return nil
		}
	}
	return types.ErrCollectionNotFound
}

// categorySet is a CategoryReader knowing only ids.
type categorySet map[types.CategoryID]bool

func (s categorySet) GetCategory(_ context.Context, id types.CategoryID) (*types.Category, error) {
	if !s[id] {
		return nil, types.ErrCategoryNotFound
	}
	return &types.Category{ID: id}, nil
}

var errStoreDown = errors.New("store unavailable")
