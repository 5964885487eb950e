// Package api provides the gRPC CatalogService over the catalog and
// collection services.
package api

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/catalog"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/collection"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// CatalogServer is the server API for novaorizon.catalog.v1.CatalogService.
type CatalogServer interface {
	ResolveEffectiveAttributes(context.Context, *CategoryRequest) (*AttributesResponse, error)
	BuildAttributeGroupTree(context.Context, *GroupTreeRequest) (*GroupTreeResponse, error)
	GetCategoryPage(context.Context, *CategoryRequest) (*catalog.CategoryView, error)
	ReplaceCategoryAttributes(context.Context, *ReplaceCategoryAttributesRequest) (*AttributesResponse, error)
	CreateCategory(context.Context, *catalog.CreateCategoryInput) (*types.Category, error)
	MoveCategory(context.Context, *MoveCategoryRequest) (*types.Category, error)
	GetCategory(context.Context, *CategoryRequest) (*types.Category, error)
	ListCategories(context.Context, *ListCategoriesRequest) (*CategoriesResponse, error)

	CreateUnit(context.Context, *catalog.CreateUnitInput) (*types.Unit, error)
	CreateAttribute(context.Context, *catalog.CreateAttributeInput) (*types.Attribute, error)
	ListAttributes(context.Context, *ListAttributesRequest) (*AttributeListResponse, error)
	DeleteAttribute(context.Context, *DeleteAttributeRequest) (*Empty, error)
	CreateAttributeGroup(context.Context, *catalog.CreateAttributeGroupInput) (*types.AttributeGroup, error)
	ListAttributeGroups(context.Context, *ListAttributeGroupsRequest) (*AttributeGroupsResponse, error)
	ReplaceGroupAttributes(context.Context, *ReplaceGroupAttributesRequest) (*AttributesResponse, error)

	CreateCollection(context.Context, *collection.CollectionInput) (*types.Collection, error)
	UpdateCollection(context.Context, *UpdateCollectionRequest) (*types.Collection, error)
	GetCollection(context.Context, *CollectionRequest) (*types.Collection, error)
	ListCollections(context.Context, *ListCollectionsRequest) (*CollectionsResponse, error)
	DeleteCollection(context.Context, *CollectionRequest) (*Empty, error)
	CollectionProducts(context.Context, *CollectionProductsRequest) (*ProductsResponse, error)
	ListCollectionsWithProducts(context.Context, *ListCollectionsRequest) (*CollectionsWithProductsResponse, error)
	PreviewRules(context.Context, *PreviewRulesRequest) (*ProductsResponse, error)
	CreateProduct(context.Context, *collection.CreateProductInput) (*types.Product, error)
}

// CatalogService implements CatalogServer.
// Thin orchestration layer delegating to the catalog and collection services;
// every error leaves through toStatus.
type CatalogService struct {
	catalog     *catalog.Service
	collections *collection.Service
	logger      *zap.Logger
}

var _ CatalogServer = (*CatalogService)(nil)

// NewCatalogService creates service instance with dependencies.
func NewCatalogService(cat *catalog.Service, collections *collection.Service, logger *zap.Logger) (*CatalogService, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog service cannot be nil")
	}
	if collections == nil {
		return nil, fmt.Errorf("collection service cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{catalog: cat, collections: collections, logger: logger}, nil
}

func (s *CatalogService) ResolveEffectiveAttributes(ctx context.Context, req *CategoryRequest) (*AttributesResponse, error) {
	set, err := s.catalog.ResolveEffectiveAttributes(ctx, req.CategoryID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &AttributesResponse{Attributes: set}, nil
}

func (s *CatalogService) BuildAttributeGroupTree(ctx context.Context, req *GroupTreeRequest) (*GroupTreeResponse, error) {
	var (
		groups []*catalog.GroupNode
		err    error
	)
	if req.CategoryID != "" {
		groups, err = s.catalog.BuildAttributeGroupTree(ctx, req.CategoryID)
	} else {
		groups, err = s.catalog.BuildGroupTreeForAttributes(ctx, req.Attributes)
	}
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &GroupTreeResponse{Groups: groups}, nil
}

func (s *CatalogService) GetCategoryPage(ctx context.Context, req *CategoryRequest) (*catalog.CategoryView, error) {
	view, err := s.catalog.CategoryPage(ctx, req.CategoryID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return view, nil
}

func (s *CatalogService) ReplaceCategoryAttributes(ctx context.Context, req *ReplaceCategoryAttributesRequest) (*AttributesResponse, error) {
	ids, err := s.catalog.ReplaceCategoryAttributes(ctx, req.CategoryID, req.Attributes)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &AttributesResponse{Attributes: ids}, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *catalog.CreateCategoryInput) (*types.Category, error) {
	c, err := s.catalog.CreateCategory(ctx, *req)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return c, nil
}

func (s *CatalogService) MoveCategory(ctx context.Context, req *MoveCategoryRequest) (*types.Category, error) {
	c, err := s.catalog.MoveCategory(ctx, req.CategoryID, req.ParentID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return c, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, req *CategoryRequest) (*types.Category, error) {
	c, err := s.catalog.GetCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, _ *ListCategoriesRequest) (*CategoriesResponse, error) {
	list, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &CategoriesResponse{Categories: list}, nil
}

func (s *CatalogService) CreateUnit(ctx context.Context, req *catalog.CreateUnitInput) (*types.Unit, error) {
	u, err := s.catalog.CreateUnit(ctx, *req)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return u, nil
}

func (s *CatalogService) CreateAttribute(ctx context.Context, req *catalog.CreateAttributeInput) (*types.Attribute, error) {
	a, err := s.catalog.CreateAttribute(ctx, *req)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return a, nil
}

func (s *CatalogService) ListAttributes(ctx context.Context, _ *ListAttributesRequest) (*AttributeListResponse, error) {
	list, err := s.catalog.ListAttributes(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &AttributeListResponse{Attributes: list}, nil
}

func (s *CatalogService) DeleteAttribute(ctx context.Context, req *DeleteAttributeRequest) (*Empty, error) {
	if err := s.catalog.DeleteAttribute(ctx, req.AttributeID); err != nil {
		return nil, s.toStatus(err)
	}
	return &Empty{}, nil
}

func (s *CatalogService) CreateAttributeGroup(ctx context.Context, req *catalog.CreateAttributeGroupInput) (*types.AttributeGroup, error) {
	g, err := s.catalog.CreateAttributeGroup(ctx, *req)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return g, nil
}

func (s *CatalogService) ListAttributeGroups(ctx context.Context, _ *ListAttributeGroupsRequest) (*AttributeGroupsResponse, error) {
	list, err := s.catalog.ListAttributeGroups(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &AttributeGroupsResponse{Groups: list}, nil
}

func (s *CatalogService) ReplaceGroupAttributes(ctx context.Context, req *ReplaceGroupAttributesRequest) (*AttributesResponse, error) {
	ids, err := s.catalog.ReplaceGroupAttributes(ctx, req.GroupID, req.Attributes)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &AttributesResponse{Attributes: ids}, nil
}

func (s *CatalogService) CreateCollection(ctx context.Context, req *collection.CollectionInput) (*types.Collection, error) {
	c, err := s.collections.CreateCollection(ctx, *req)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return c, nil
}

func (s *CatalogService) UpdateCollection(ctx context.Context, req *UpdateCollectionRequest) (*types.Collection, error) {
	c, err := s.collections.UpdateCollection(ctx, req.CollectionID, req.CollectionInput)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return c, nil
}

func (s *CatalogService) GetCollection(ctx context.Context, req *CollectionRequest) (*types.Collection, error) {
	c, err := s.collections.GetCollection(ctx, req.CollectionID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return c, nil
}

func (s *CatalogService) ListCollections(ctx context.Context, _ *ListCollectionsRequest) (*CollectionsResponse, error) {
	list, err := s.collections.ListCollections(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &CollectionsResponse{Collections: list}, nil
}

func (s *CatalogService) DeleteCollection(ctx context.Context, req *CollectionRequest) (*Empty, error) {
	if err := s.collections.DeleteCollection(ctx, req.CollectionID); err != nil {
		return nil, s.toStatus(err)
	}
	return &Empty{}, nil
}

func (s *CatalogService) CollectionProducts(ctx context.Context, req *CollectionProductsRequest) (*ProductsResponse, error) {
	res, err := s.collections.CollectionProducts(ctx, req.CollectionID, req.Limit)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &ProductsResponse{Items: res.Items, Count: res.Count}, nil
}

func (s *CatalogService) ListCollectionsWithProducts(ctx context.Context, _ *ListCollectionsRequest) (*CollectionsWithProductsResponse, error) {
	list, err := s.collections.ListCollectionsWithProducts(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &CollectionsWithProductsResponse{Collections: list}, nil
}

// PreviewRules materializes an unsaved rule list and reports which clauses
// were skipped alongside the matches.
func (s *CatalogService) PreviewRules(ctx context.Context, req *PreviewRulesRequest) (*ProductsResponse, error) {
	res, err := s.collections.PreviewRules(ctx, req.Rules, req.Limit)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &ProductsResponse{Items: res.Items, Count: res.Count, Skipped: res.Skipped}, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *collection.CreateProductInput) (*types.Product, error) {
	p, err := s.collections.CreateProduct(ctx, *req)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return p, nil
}
