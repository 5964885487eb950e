// Package types provides domain models shared across the catalog components.
//
// Categories, attribute groups, attributes and collections are plain data:
// resolution, tree building and rule compilation live in internal/catalog,
// internal/collection and internal/rules. Struct tags cover the three
// encodings in use: json (transport), db (sqlx) and bson (mongo documents).
package types

import "time"

// CategoryID identifies a category. UUIDv7 string, see ids.go.
type CategoryID string

// AttributeID identifies an attribute.
type AttributeID string

// AttributeGroupID identifies an attribute group.
type AttributeGroupID string

// UnitID identifies a measurement unit referenced by attributes.
type UnitID string

// CollectionID identifies a collection.
type CollectionID string

// ProductID identifies a product document.
type ProductID string

// Category is one node of the category forest.
// Attributes holds only the directly assigned ids; inherited ids are never stored.
type Category struct {
	ID         CategoryID    `json:"id" bson:"_id"`
	ParentID   *CategoryID   `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Name       string        `json:"name" bson:"name"`
	Attributes []AttributeID `json:"attributes" bson:"attributes"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" bson:"updated_at"`
}

// AttributeType is the declared value type of an attribute.
type AttributeType string

const (
	AttributeTypeText        AttributeType = "text"
	AttributeTypeNumber      AttributeType = "number"
	AttributeTypeSelect      AttributeType = "select"
	AttributeTypeMultiSelect AttributeType = "multiselect"
	AttributeTypeBoolean     AttributeType = "boolean"
	AttributeTypeDate        AttributeType = "date"
)

// Attribute is a product attribute definition shared by categories, groups and rules.
type Attribute struct {
	ID       AttributeID   `json:"id" bson:"_id"`
	Code     string        `json:"code" bson:"code"`
	Name     string        `json:"name" bson:"name"`
	Type     AttributeType `json:"type" bson:"type"`
	Options  []string      `json:"options,omitempty" bson:"options,omitempty"`
	Required bool          `json:"required" bson:"required"`
	UnitID   *UnitID       `json:"unit_id,omitempty" bson:"unit_id,omitempty"`
}

// Unit is a measurement unit (kg, cm, GB...).
type Unit struct {
	ID     UnitID `json:"id" bson:"_id"`
	Name   string `json:"name" bson:"name"`
	Symbol string `json:"symbol" bson:"symbol"`
}

// AttributeDetail is an attribute with its unit resolved inline.
type AttributeDetail struct {
	Attribute
	Unit *Unit `json:"unit,omitempty" bson:"unit,omitempty"`
}

// AttributeGroup bundles attributes for display. Group nesting is independent
// of category nesting.
type AttributeGroup struct {
	ID         AttributeGroupID  `json:"id" bson:"_id"`
	ParentID   *AttributeGroupID `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Code       string            `json:"code" bson:"code"`
	Name       string            `json:"name" bson:"name"`
	GroupOrder int               `json:"group_order" bson:"group_order"`
	Attributes []AttributeID     `json:"attributes" bson:"attributes"`
}

// CollectionStatus is a plain flag; it does not influence rule evaluation.
type CollectionStatus string

const (
	CollectionActive   CollectionStatus = "active"
	CollectionInactive CollectionStatus = "inactive"
)

// Collection is a named, rule-defined product set. Membership is never stored.
type Collection struct {
	ID          CollectionID     `json:"id" bson:"_id"`
	Name        string           `json:"name" bson:"name"`
	CategoryID  CategoryID       `json:"category_id" bson:"category_id"`
	Rules       []Rule           `json:"rules" bson:"rules"`
	Status      CollectionStatus `json:"status" bson:"status"`
	Description string           `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string           `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" bson:"updated_at"`
}

// Product is a catalog document. ListPrice is intentionally untyped: stored
// documents are not guaranteed to carry a number there.
type Product struct {
	ID         ProductID      `json:"id" bson:"_id"`
	CategoryID CategoryID     `json:"category_id" bson:"category_id"`
	Name       string         `json:"name" bson:"name"`
	SKU        string         `json:"sku" bson:"sku"`
	ListPrice  any            `json:"list_price" bson:"list_price"`
	Status     string         `json:"status" bson:"status"`
	Attributes map[string]any `json:"attributes,omitempty" bson:"attributes,omitempty"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}

// Limits applied by the collection and rule components.
const (
	// DefaultCollectionItemLimit caps products returned per collection in list views.
	DefaultCollectionItemLimit = 50

	// MaxRulesPerCollection bounds rule lists accepted on save.
	MaxRulesPerCollection = 64

	// MaxInOperatorValues bounds $in/$nin value lists accepted on collection writes.
	MaxInOperatorValues = 256
)
