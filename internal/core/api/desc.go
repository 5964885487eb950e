package api

import (
	"context"

	"google.golang.org/grpc"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/catalog"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/collection"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "novaorizon.catalog.v1.CatalogService"

// unary builds the MethodDesc for one RPC from a CatalogServer method expression.
func unary[Req, Resp any](name string, call func(CatalogServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			server := srv.(CatalogServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(server, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// CatalogServiceDesc describes CatalogService for grpc.Server.RegisterService.
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ResolveEffectiveAttributes", CatalogServer.ResolveEffectiveAttributes),
		unary("BuildAttributeGroupTree", CatalogServer.BuildAttributeGroupTree),
		unary("GetCategoryPage", CatalogServer.GetCategoryPage),
		unary("ReplaceCategoryAttributes", CatalogServer.ReplaceCategoryAttributes),
		unary("CreateCategory", CatalogServer.CreateCategory),
		unary("MoveCategory", CatalogServer.MoveCategory),
		unary("GetCategory", CatalogServer.GetCategory),
		unary("ListCategories", CatalogServer.ListCategories),
		unary("CreateUnit", CatalogServer.CreateUnit),
		unary("CreateAttribute", CatalogServer.CreateAttribute),
		unary("ListAttributes", CatalogServer.ListAttributes),
		unary("DeleteAttribute", CatalogServer.DeleteAttribute),
		unary("CreateAttributeGroup", CatalogServer.CreateAttributeGroup),
		unary("ListAttributeGroups", CatalogServer.ListAttributeGroups),
		unary("ReplaceGroupAttributes", CatalogServer.ReplaceGroupAttributes),
		unary("CreateCollection", CatalogServer.CreateCollection),
		unary("UpdateCollection", CatalogServer.UpdateCollection),
		unary("GetCollection", CatalogServer.GetCollection),
		unary("ListCollections", CatalogServer.ListCollections),
		unary("DeleteCollection", CatalogServer.DeleteCollection),
		unary("CollectionProducts", CatalogServer.CollectionProducts),
		unary("ListCollectionsWithProducts", CatalogServer.ListCollectionsWithProducts),
		unary("PreviewRules", CatalogServer.PreviewRules),
		unary("CreateProduct", CatalogServer.CreateProduct),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "novaorizon/catalog/v1/catalog.json",
}

// RegisterCatalogServer registers srv on s.
func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

// CatalogClient calls CatalogService with the JSON codec.
type CatalogClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogClient creates a client over an established connection.
func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogClient) ResolveEffectiveAttributes(ctx context.Context, in *CategoryRequest, opts ...grpc.CallOption) (*AttributesResponse, error) {
	return invoke[AttributesResponse](ctx, c.cc, "ResolveEffectiveAttributes", in, opts...)
}

func (c *CatalogClient) BuildAttributeGroupTree(ctx context.Context, in *GroupTreeRequest, opts ...grpc.CallOption) (*GroupTreeResponse, error) {
	return invoke[GroupTreeResponse](ctx, c.cc, "BuildAttributeGroupTree", in, opts...)
}

func (c *CatalogClient) GetCategoryPage(ctx context.Context, in *CategoryRequest, opts ...grpc.CallOption) (*catalog.CategoryView, error) {
	return invoke[catalog.CategoryView](ctx, c.cc, "GetCategoryPage", in, opts...)
}

func (c *CatalogClient) ReplaceCategoryAttributes(ctx context.Context, in *ReplaceCategoryAttributesRequest, opts ...grpc.CallOption) (*AttributesResponse, error) {
	return invoke[AttributesResponse](ctx, c.cc, "ReplaceCategoryAttributes", in, opts...)
}

func (c *CatalogClient) CreateCategory(ctx context.Context, in *catalog.CreateCategoryInput, opts ...grpc.CallOption) (*types.Category, error) {
	return invoke[types.Category](ctx, c.cc, "CreateCategory", in, opts...)
}

func (c *CatalogClient) MoveCategory(ctx context.Context, in *MoveCategoryRequest, opts ...grpc.CallOption) (*types.Category, error) {
	return invoke[types.Category](ctx, c.cc, "MoveCategory", in, opts...)
}

func (c *CatalogClient) GetCategory(ctx context.Context, in *CategoryRequest, opts ...grpc.CallOption) (*types.Category, error) {
	return invoke[types.Category](ctx, c.cc, "GetCategory", in, opts...)
}

func (c *CatalogClient) ListCategories(ctx context.Context, in *ListCategoriesRequest, opts ...grpc.CallOption) (*CategoriesResponse, error) {
	return invoke[CategoriesResponse](ctx, c.cc, "ListCategories", in, opts...)
}

func (c *CatalogClient) CreateUnit(ctx context.Context, in *catalog.CreateUnitInput, opts ...grpc.CallOption) (*types.Unit, error) {
	return invoke[types.Unit](ctx, c.cc, "CreateUnit", in, opts...)
}

func (c *CatalogClient) CreateAttribute(ctx context.Context, in *catalog.CreateAttributeInput, opts ...grpc.CallOption) (*types.Attribute, error) {
	return invoke[types.Attribute](ctx, c.cc, "CreateAttribute", in, opts...)
}

func (c *CatalogClient) ListAttributes(ctx context.Context, in *ListAttributesRequest, opts ...grpc.CallOption) (*AttributeListResponse, error) {
	return invoke[AttributeListResponse](ctx, c.cc, "ListAttributes", in, opts...)
}

func (c *CatalogClient) DeleteAttribute(ctx context.Context, in *DeleteAttributeRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteAttribute", in, opts...)
}

func (c *CatalogClient) CreateAttributeGroup(ctx context.Context, in *catalog.CreateAttributeGroupInput, opts ...grpc.CallOption) (*types.AttributeGroup, error) {
	return invoke[types.AttributeGroup](ctx, c.cc, "CreateAttributeGroup", in, opts...)
}

func (c *CatalogClient) ListAttributeGroups(ctx context.Context, in *ListAttributeGroupsRequest, opts ...grpc.CallOption) (*AttributeGroupsResponse, error) {
	return invoke[AttributeGroupsResponse](ctx, c.cc, "ListAttributeGroups", in, opts...)
}

func (c *CatalogClient) ReplaceGroupAttributes(ctx context.Context, in *ReplaceGroupAttributesRequest, opts ...grpc.CallOption) (*AttributesResponse, error) {
	return invoke[AttributesResponse](ctx, c.cc, "ReplaceGroupAttributes", in, opts...)
}

func (c *CatalogClient) CreateCollection(ctx context.Context, in *collection.CollectionInput, opts ...grpc.CallOption) (*types.Collection, error) {
	return invoke[types.Collection](ctx, c.cc, "CreateCollection", in, opts...)
}

func (c *CatalogClient) UpdateCollection(ctx context.Context, in *UpdateCollectionRequest, opts ...grpc.CallOption) (*types.Collection, error) {
	return invoke[types.Collection](ctx, c.cc, "UpdateCollection", in, opts...)
}

func (c *CatalogClient) GetCollection(ctx context.Context, in *CollectionRequest, opts ...grpc.CallOption) (*types.Collection, error) {
	return invoke[types.Collection](ctx, c.cc, "GetCollection", in, opts...)
}

func (c *CatalogClient) ListCollections(ctx context.Context, in *ListCollectionsRequest, opts ...grpc.CallOption) (*CollectionsResponse, error) {
	return invoke[CollectionsResponse](ctx, c.cc, "ListCollections", in, opts...)
}

func (c *CatalogClient) DeleteCollection(ctx context.Context, in *CollectionRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteCollection", in, opts...)
}

func (c *CatalogClient) CollectionProducts(ctx context.Context, in *CollectionProductsRequest, opts ...grpc.CallOption) (*ProductsResponse, error) {
	return invoke[ProductsResponse](ctx, c.cc, "CollectionProducts", in, opts...)
}

func (c *CatalogClient) ListCollectionsWithProducts(ctx context.Context, in *ListCollectionsRequest, opts ...grpc.CallOption) (*CollectionsWithProductsResponse, error) {
	return invoke[CollectionsWithProductsResponse](ctx, c.cc, "ListCollectionsWithProducts", in, opts...)
}

func (c *CatalogClient) PreviewRules(ctx context.Context, in *PreviewRulesRequest, opts ...grpc.CallOption) (*ProductsResponse, error) {
	return invoke[ProductsResponse](ctx, c.cc, "PreviewRules", in, opts...)
}

func (c *CatalogClient) CreateProduct(ctx context.Context, in *collection.CreateProductInput, opts ...grpc.CallOption) (*types.Product, error) {
	return invoke[types.Product](ctx, c.cc, "CreateProduct", in, opts...)
}
