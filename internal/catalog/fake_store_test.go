package catalog

import (
	"context"
	"time"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// fakeStore is a map-backed Store for resolver and service tests.
type fakeStore struct {
	categories map[types.CategoryID]types.Category
	attributes map[types.AttributeID]types.Attribute
	units      map[types.UnitID]types.Unit
	groups     []types.AttributeGroup
	ruleCodes  map[string]bool // attribute codes used by collection rules
	gets       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		categories: make(map[types.CategoryID]types.Category),
		attributes: make(map[types.AttributeID]types.Attribute),
		units:      make(map[types.UnitID]types.Unit),
		ruleCodes:  make(map[string]bool),
	}
}

func (f *fakeStore) addCategory(id types.CategoryID, parent *types.CategoryID, attrs ...types.AttributeID) {
	f.categories[id] = types.Category{ID: id, ParentID: parent, Name: string(id), Attributes: attrs}
}

func (f *fakeStore) GetCategory(_ context.Context, id types.CategoryID) (*types.Category, error) {
	f.gets++
	c, ok := f.categories[id]
	if !ok {
		return nil, types.ErrCategoryNotFound
	}
	c.Attributes = append([]types.AttributeID(nil), c.Attributes...)
	return &c, nil
}

func (f *fakeStore) ListCategories(context.Context) ([]types.Category, error) {
	out := make([]types.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) CreateCategory(_ context.Context, c *types.Category) error {
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeStore) UpdateCategoryParent(_ context.Context, id types.CategoryID, parent *types.CategoryID, updatedAt time.Time) error {
	c, ok := f.categories[id]
	if !ok {
		return types.ErrCategoryNotFound
	}
	c.ParentID = parent
	c.UpdatedAt = updatedAt
	f.categories[id] = c
	return nil
}

func (f *fakeStore) ReplaceCategoryAttributes(_ context.Context, id types.CategoryID, attrs []types.AttributeID, updatedAt time.Time) error {
	c, ok := f.categories[id]
	if !ok {
		return types.ErrCategoryNotFound
	}
	c.Attributes = append([]types.AttributeID(nil), attrs...)
	c.UpdatedAt = updatedAt
	f.categories[id] = c
	return nil
}

func (f *fakeStore) CreateUnit(_ context.Context, u *types.Unit) error {
	f.units[u.ID] = *u
	return nil
}

func (f *fakeStore) GetUnits(_ context.Context, ids []types.UnitID) ([]types.Unit, error) {
	var out []types.Unit
	for _, id := range ids {
		if u, ok := f.units[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateAttribute(_ context.Context, a *types.Attribute) error {
	f.attributes[a.ID] = *a
	return nil
}

func (f *fakeStore) GetAttribute(_ context.Context, id types.AttributeID) (*types.Attribute, error) {
	a, ok := f.attributes[id]
	if !ok {
		return nil, types.ErrAttributeNotFound
	}
	return &a, nil
}

func (f *fakeStore) GetAttributeByCode(_ context.Context, code string) (*types.Attribute, error) {
	for _, a := range f.attributes {
		if a.Code == code {
			return &a, nil
		}
	}
	return nil, types.ErrAttributeNotFound
}

func (f *fakeStore) GetAttributes(_ context.Context, ids []types.AttributeID) ([]types.Attribute, error) {
	var out []types.Attribute
	for _, id := range ids {
		if a, ok := f.attributes[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAttributes(context.Context) ([]types.Attribute, error) {
	out := make([]types.Attribute, 0, len(f.attributes))
	for _, a := range f.attributes {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) DeleteAttribute(_ context.Context, id types.AttributeID) error {
	if _, ok := f.attributes[id]; !ok {
		return types.ErrAttributeNotFound
	}
	delete(f.attributes, id)
	return nil
}

func (f *fakeStore) AttributeReferenced(_ context.Context, id types.AttributeID, code string) (bool, error) {
	for _, c := range f.categories {
		for _, a := range c.Attributes {
			if a == id {
				return true, nil
			}
		}
	}
	for _, g := range f.groups {
		for _, a := range g.Attributes {
			if a == id {
				return true, nil
			}
		}
	}
	return f.ruleCodes[code], nil
}

func (f *fakeStore) ListAttributeGroups(context.Context) ([]types.AttributeGroup, error) {
	return append([]types.AttributeGroup(nil), f.groups...), nil
}

func (f *fakeStore) GetAttributeGroup(_ context.Context, id types.AttributeGroupID) (*types.AttributeGroup, error) {
	for _, g := range f.groups {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, types.ErrAttributeGroupNotFound
}

func (f *fakeStore) CreateAttributeGroup(_ context.Context, g *types.AttributeGroup) error {
	f.groups = append(f.groups, *g)
	return nil
}

func (f *fakeStore) ReplaceGroupAttributes(_ context.Context, id types.AttributeGroupID, attrs []types.AttributeID) error {
	for i := range f.groups {
		if f.groups[i].ID == id {
			f.groups[i].Attributes = append([]types.AttributeID(nil), attrs...)
			return nil
		}
	}
	return types.ErrAttributeGroupNotFound
}

func ptr[T any](v T) *T { return &v }
