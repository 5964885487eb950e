package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

func normalizeCategory(c *types.Category) {
	if c.Attributes == nil {
		c.Attributes = []types.AttributeID{}
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
}

// GetCategory loads a category by id.
func (s *Store) GetCategory(ctx context.Context, id types.CategoryID) (*types.Category, error) {
	var c types.Category
	if err := s.coll(categoriesColl).FindOne(ctx, byID(id)).Decode(&c); err != nil {
		return nil, notFound(err, types.ErrCategoryNotFound)
	}
	normalizeCategory(&c)
	return &c, nil
}

// ListCategories loads every category, oldest first.
func (s *Store) ListCategories(ctx context.Context) ([]types.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	out, err := findAll[types.Category](ctx, s.coll(categoriesColl), bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	for i := range out {
		normalizeCategory(&out[i])
	}
	return out, nil
}

// CreateCategory inserts a category document.
func (s *Store) CreateCategory(ctx context.Context, c *types.Category) error {
	_, err := s.coll(categoriesColl).InsertOne(ctx, c)
	return err
}

// UpdateCategoryParent sets or clears parent_id.
func (s *Store) UpdateCategoryParent(ctx context.Context, id types.CategoryID, parent *types.CategoryID, updatedAt time.Time) error {
	set := bson.D{{Key: "updated_at", Value: updatedAt}}
	var update bson.D
	if parent != nil {
		set = append(set, bson.E{Key: "parent_id", Value: *parent})
		update = bson.D{{Key: "$set", Value: set}}
	} else {
		update = bson.D{
			{Key: "$set", Value: set},
			{Key: "$unset", Value: bson.D{{Key: "parent_id", Value: ""}}},
		}
	}
	res, err := s.coll(categoriesColl).UpdateOne(ctx, byID(id), update)
	if err != nil {
		return err
	}
	return requireMatched(res, types.ErrCategoryNotFound)
}

// ReplaceCategoryAttributes overwrites the attribute array in one document write.
func (s *Store) ReplaceCategoryAttributes(ctx context.Context, id types.CategoryID, attrs []types.AttributeID, updatedAt time.Time) error {
	if attrs == nil {
		attrs = []types.AttributeID{}
	}
	res, err := s.coll(categoriesColl).UpdateOne(ctx, byID(id), bson.D{{Key: "$set", Value: bson.D{
		{Key: "attributes", Value: attrs},
		{Key: "updated_at", Value: updatedAt},
	}}})
	if err != nil {
		return err
	}
	return requireMatched(res, types.ErrCategoryNotFound)
}

// CreateUnit inserts a unit document.
func (s *Store) CreateUnit(ctx context.Context, u *types.Unit) error {
	_, err := s.coll(unitsColl).InsertOne(ctx, u)
	return err
}

// GetUnits returns the units that exist among ids.
func (s *Store) GetUnits(ctx context.Context, ids []types.UnitID) ([]types.Unit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return findAll[types.Unit](ctx, s.coll(unitsColl), bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}

// CreateAttribute inserts an attribute document. A taken code surfaces as
// types.ErrDuplicateCode.
func (s *Store) CreateAttribute(ctx context.Context, a *types.Attribute) error {
	if _, err := s.coll(attributesColl).InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", types.ErrDuplicateCode, a.Code)
		}
		return err
	}
	return nil
}

// GetAttribute loads one attribute by id.
func (s *Store) GetAttribute(ctx context.Context, id types.AttributeID) (*types.Attribute, error) {
	var a types.Attribute
	if err := s.coll(attributesColl).FindOne(ctx, byID(id)).Decode(&a); err != nil {
		return nil, notFound(err, types.ErrAttributeNotFound)
	}
	return &a, nil
}

// GetAttributeByCode loads one attribute by code.
func (s *Store) GetAttributeByCode(ctx context.Context, code string) (*types.Attribute, error) {
	var a types.Attribute
	if err := s.coll(attributesColl).FindOne(ctx, bson.D{{Key: "code", Value: code}}).Decode(&a); err != nil {
		return nil, notFound(err, types.ErrAttributeNotFound)
	}
	return &a, nil
}

// GetAttributes returns the attributes that exist among ids.
func (s *Store) GetAttributes(ctx context.Context, ids []types.AttributeID) ([]types.Attribute, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return findAll[types.Attribute](ctx, s.coll(attributesColl), bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}

// ListAttributes loads every attribute ordered by code.
func (s *Store) ListAttributes(ctx context.Context) ([]types.Attribute, error) {
	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	return findAll[types.Attribute](ctx, s.coll(attributesColl), bson.D{}, opts)
}

// DeleteAttribute removes an attribute document.
func (s *Store) DeleteAttribute(ctx context.Context, id types.AttributeID) error {
	res, err := s.coll(attributesColl).DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return types.ErrAttributeNotFound
	}
	return nil
}

// AttributeReferenced checks categories, groups and collection rules in turn,
// stopping at the first reference.
func (s *Store) AttributeReferenced(ctx context.Context, id types.AttributeID, code string) (bool, error) {
	checks := []struct {
		coll   string
		filter bson.D
	}{
		{categoriesColl, bson.D{{Key: "attributes", Value: id}}},
		{attributeGroupsColl, bson.D{{Key: "attributes", Value: id}}},
		{collectionsColl, bson.D{{Key: "rules.attribute", Value: bson.D{
			{Key: "$in", Value: bson.A{code, "attributes." + code}},
		}}}},
	}
	for _, c := range checks {
		n, err := s.coll(c.coll).CountDocuments(ctx, c.filter, options.Count().SetLimit(1))
		if err != nil {
			return false, fmt.Errorf("count references in %s: %w", c.coll, err)
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

func normalizeGroup(g *types.AttributeGroup) {
	if g.Attributes == nil {
		g.Attributes = []types.AttributeID{}
	}
}

// ListAttributeGroups loads every group in insertion order. Ids are UUIDv7,
// so sorting on _id follows creation time.
func (s *Store) ListAttributeGroups(ctx context.Context) ([]types.AttributeGroup, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	out, err := findAll[types.AttributeGroup](ctx, s.coll(attributeGroupsColl), bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	for i := range out {
		normalizeGroup(&out[i])
	}
	return out, nil
}

// GetAttributeGroup loads one group by id.
func (s *Store) GetAttributeGroup(ctx context.Context, id types.AttributeGroupID) (*types.AttributeGroup, error) {
	var g types.AttributeGroup
	if err := s.coll(attributeGroupsColl).FindOne(ctx, byID(id)).Decode(&g); err != nil {
		return nil, notFound(err, types.ErrAttributeGroupNotFound)
	}
	normalizeGroup(&g)
	return &g, nil
}

// CreateAttributeGroup inserts a group document.
func (s *Store) CreateAttributeGroup(ctx context.Context, g *types.AttributeGroup) error {
	_, err := s.coll(attributeGroupsColl).InsertOne(ctx, g)
	return err
}

// ReplaceGroupAttributes overwrites the group's attribute array.
func (s *Store) ReplaceGroupAttributes(ctx context.Context, id types.AttributeGroupID, attrs []types.AttributeID) error {
	if attrs == nil {
		attrs = []types.AttributeID{}
	}
	res, err := s.coll(attributeGroupsColl).UpdateOne(ctx, byID(id),
		bson.D{{Key: "$set", Value: bson.D{{Key: "attributes", Value: attrs}}}})
	if err != nil {
		return err
	}
	return requireMatched(res, types.ErrAttributeGroupNotFound)
}
