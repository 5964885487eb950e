package catalog

import (
	"context"
	"time"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// CategoryReader is the read side needed by ancestry and inheritance resolution.
// GetCategory returns types.ErrCategoryNotFound for unknown ids.
type CategoryReader interface {
	GetCategory(ctx context.Context, id types.CategoryID) (*types.Category, error)
}

// CategoryStore persists categories and their directly assigned attribute ids.
type CategoryStore interface {
	CategoryReader
	ListCategories(ctx context.Context) ([]types.Category, error)
	CreateCategory(ctx context.Context, c *types.Category) error

	// UpdateCategoryParent reassigns the parent. Returns types.ErrCategoryNotFound
	// when id does not exist.
	UpdateCategoryParent(ctx context.Context, id types.CategoryID, parent *types.CategoryID, updatedAt time.Time) error

	// ReplaceCategoryAttributes overwrites the attribute list in one write.
	// Returns types.ErrCategoryNotFound when id does not exist.
	ReplaceCategoryAttributes(ctx context.Context, id types.CategoryID, attrs []types.AttributeID, updatedAt time.Time) error
}

// AttributeStore persists attributes, units and attribute groups.
type AttributeStore interface {
	CreateUnit(ctx context.Context, u *types.Unit) error

	// GetUnits returns the units that exist among ids; unknown ids are omitted.
	GetUnits(ctx context.Context, ids []types.UnitID) ([]types.Unit, error)

	CreateAttribute(ctx context.Context, a *types.Attribute) error
	GetAttribute(ctx context.Context, id types.AttributeID) (*types.Attribute, error)
	GetAttributeByCode(ctx context.Context, code string) (*types.Attribute, error)

	// GetAttributes returns the attributes that exist among ids; unknown ids are omitted.
	GetAttributes(ctx context.Context, ids []types.AttributeID) ([]types.Attribute, error)
	ListAttributes(ctx context.Context) ([]types.Attribute, error)
	DeleteAttribute(ctx context.Context, id types.AttributeID) error

	// AttributeReferenced reports whether a category, an attribute group or a
	// collection rule (by code) still points at the attribute.
	AttributeReferenced(ctx context.Context, id types.AttributeID, code string) (bool, error)

	ListAttributeGroups(ctx context.Context) ([]types.AttributeGroup, error)
	GetAttributeGroup(ctx context.Context, id types.AttributeGroupID) (*types.AttributeGroup, error)
	CreateAttributeGroup(ctx context.Context, g *types.AttributeGroup) error

	// ReplaceGroupAttributes overwrites the group's attribute list in one write.
	// Returns types.ErrAttributeGroupNotFound when id does not exist.
	ReplaceGroupAttributes(ctx context.Context, id types.AttributeGroupID, attrs []types.AttributeID) error
}

// Store is the persistence collaborator of the catalog service.
type Store interface {
	CategoryStore
	AttributeStore
}
