package api

import (
	"github.com/fotiotech/novaorizon-seller-sub000/internal/catalog"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/collection"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/rules"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// Request and response messages for novaorizon.catalog.v1.CatalogService.
// They travel as JSON (see codec.go).

type CategoryRequest struct {
	CategoryID types.CategoryID `json:"category_id"`
}

type AttributesResponse struct {
	Attributes []types.AttributeID `json:"attributes"`
}

type GroupTreeRequest struct {
	CategoryID types.CategoryID `json:"category_id,omitempty"`
	// Attributes builds the tree for an explicit id set when CategoryID is empty.
	Attributes []types.AttributeID `json:"attributes,omitempty"`
}

type GroupTreeResponse struct {
	Groups []*catalog.GroupNode `json:"groups"`
}

type ReplaceCategoryAttributesRequest struct {
	CategoryID types.CategoryID    `json:"category_id"`
	Attributes []types.AttributeID `json:"attributes"`
}

type MoveCategoryRequest struct {
	CategoryID types.CategoryID  `json:"category_id"`
	ParentID   *types.CategoryID `json:"parent_id"`
}

type ListCategoriesRequest struct{}

type CategoriesResponse struct {
	Categories []types.Category `json:"categories"`
}

type ListAttributesRequest struct{}

type AttributeListResponse struct {
	Attributes []types.Attribute `json:"attributes"`
}

type DeleteAttributeRequest struct {
	AttributeID types.AttributeID `json:"attribute_id"`
}

type Empty struct{}

type ListAttributeGroupsRequest struct{}

type AttributeGroupsResponse struct {
	Groups []types.AttributeGroup `json:"groups"`
}

type ReplaceGroupAttributesRequest struct {
	GroupID    types.AttributeGroupID `json:"group_id"`
	Attributes []types.AttributeID    `json:"attributes"`
}

type UpdateCollectionRequest struct {
	CollectionID types.CollectionID `json:"collection_id"`
	collection.CollectionInput
}

type CollectionRequest struct {
	CollectionID types.CollectionID `json:"collection_id"`
}

type ListCollectionsRequest struct{}

type CollectionsResponse struct {
	Collections []types.Collection `json:"collections"`
}

type CollectionProductsRequest struct {
	CollectionID types.CollectionID `json:"collection_id"`
	Limit        int                `json:"limit,omitempty"`
}

type ProductsResponse struct {
	Items []types.Product `json:"items"`
	Count int             `json:"count"`
	// Skipped lists clauses left out of the predicate (preview only).
	Skipped []rules.SkippedRule `json:"skipped,omitempty"`
}

type CollectionsWithProductsResponse struct {
	Collections []collection.CollectionWithProducts `json:"collections"`
}

type PreviewRulesRequest struct {
	Rules []types.Rule `json:"rules"`
	Limit int          `json:"limit,omitempty"`
}
