package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

func TestService_ReplaceIsNotMerge(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	a1, a2, a3 := types.NewAttributeID(), types.NewAttributeID(), types.NewAttributeID()

	electronics, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Electronics", Attributes: []types.AttributeID{a1}})
	require.NoError(t, err)
	phones, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Phones", ParentID: &electronics.ID, Attributes: []types.AttributeID{a2}})
	require.NoError(t, err)

	set, err := svc.ResolveEffectiveAttributes(ctx, phones.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []types.AttributeID{a1, a2}, []types.AttributeID(set))

	replaced, err := svc.ReplaceCategoryAttributes(ctx, phones.ID, []types.AttributeID{a3})
	require.NoError(t, err)
	assert.Equal(t, []types.AttributeID{a3}, replaced)

	set, err = svc.ResolveEffectiveAttributes(ctx, phones.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []types.AttributeID{a1, a3}, []types.AttributeID(set))
}

func TestService_ReplaceCategoryAttributes_NotFound(t *testing.T) {
	svc := NewService(newFakeStore(), nil)
	_, err := svc.ReplaceCategoryAttributes(context.Background(), types.NewCategoryID(), nil)
	assert.ErrorIs(t, err, types.ErrCategoryNotFound)
}

func TestService_ReplaceCategoryAttributes_RejectsMalformedIDs(t *testing.T) {
	store := newFakeStore()
	store.addCategory("c1", nil)
	svc := NewService(store, nil)

	_, err := svc.ReplaceCategoryAttributes(context.Background(), "c1", []types.AttributeID{"not-an-id"})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestService_CreateCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	_, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: ""})
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	missing := types.NewCategoryID()
	_, err = svc.CreateCategory(ctx, CreateCategoryInput{Name: "Phones", ParentID: &missing})
	assert.ErrorIs(t, err, types.ErrCategoryNotFound)

	a := types.NewAttributeID()
	c, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Phones", Attributes: []types.AttributeID{a, a}})
	require.NoError(t, err)
	assert.True(t, types.IsValidID(string(c.ID)))
	assert.Equal(t, []types.AttributeID{a}, c.Attributes)
}

func TestService_MoveCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	root, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Root"})
	require.NoError(t, err)
	mid, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Mid", ParentID: &root.ID})
	require.NoError(t, err)
	leaf, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Leaf", ParentID: &mid.ID})
	require.NoError(t, err)
	other, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Other"})
	require.NoError(t, err)

	t.Run("under own descendant", func(t *testing.T) {
		_, err := svc.MoveCategory(ctx, root.ID, &leaf.ID)
		assert.ErrorIs(t, err, types.ErrCategoryCycle)
	})

	t.Run("under itself", func(t *testing.T) {
		_, err := svc.MoveCategory(ctx, mid.ID, &mid.ID)
		assert.ErrorIs(t, err, types.ErrCategoryCycle)
	})

	t.Run("under missing parent", func(t *testing.T) {
		missing := types.NewCategoryID()
		_, err := svc.MoveCategory(ctx, mid.ID, &missing)
		assert.ErrorIs(t, err, types.ErrCategoryNotFound)
	})

	t.Run("to another tree", func(t *testing.T) {
		moved, err := svc.MoveCategory(ctx, mid.ID, &other.ID)
		require.NoError(t, err)
		require.NotNil(t, moved.ParentID)
		assert.Equal(t, other.ID, *moved.ParentID)

		lineage, err := svc.Resolver().Ancestry(ctx, leaf.ID)
		require.NoError(t, err)
		require.Len(t, lineage.Ancestors, 2)
		assert.Equal(t, other.ID, lineage.Ancestors[1].ID)
	})

	t.Run("to root", func(t *testing.T) {
		moved, err := svc.MoveCategory(ctx, mid.ID, nil)
		require.NoError(t, err)
		assert.Nil(t, moved.ParentID)
	})
}

func TestService_CreateAttribute(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	kg, err := svc.CreateUnit(ctx, CreateUnitInput{Name: "kilogram", Symbol: "kg"})
	require.NoError(t, err)

	weight, err := svc.CreateAttribute(ctx, CreateAttributeInput{
		Code: "weight", Name: "Weight", Type: types.AttributeTypeNumber, UnitID: &kg.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "weight", weight.Code)

	_, err = svc.CreateAttribute(ctx, CreateAttributeInput{Code: "weight", Name: "Weight 2", Type: types.AttributeTypeNumber})
	assert.ErrorIs(t, err, types.ErrDuplicateCode)

	missingUnit := types.NewUnitID()
	_, err = svc.CreateAttribute(ctx, CreateAttributeInput{Code: "height", Name: "Height", Type: types.AttributeTypeNumber, UnitID: &missingUnit})
	assert.ErrorIs(t, err, types.ErrUnitNotFound)

	for _, code := range []string{"Screen Size", "list_price", "1st", "a.b", ""} {
		_, err = svc.CreateAttribute(ctx, CreateAttributeInput{Code: code, Name: "x", Type: types.AttributeTypeText})
		assert.ErrorIs(t, err, types.ErrInvalidInput, "code %q", code)
	}

	_, err = svc.CreateAttribute(ctx, CreateAttributeInput{Code: "finish", Name: "Finish", Type: "color"})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestService_DeleteAttribute(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, nil)

	color, err := svc.CreateAttribute(ctx, CreateAttributeInput{Code: "color", Name: "Color", Type: types.AttributeTypeSelect, Options: []string{"red", "blue"}})
	require.NoError(t, err)
	c, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Shirts", Attributes: []types.AttributeID{color.ID}})
	require.NoError(t, err)

	err = svc.DeleteAttribute(ctx, color.ID)
	assert.ErrorIs(t, err, types.ErrAttributeInUse)

	_, err = svc.ReplaceCategoryAttributes(ctx, c.ID, nil)
	require.NoError(t, err)

	store.ruleCodes["color"] = true
	err = svc.DeleteAttribute(ctx, color.ID)
	assert.ErrorIs(t, err, types.ErrAttributeInUse)

	store.ruleCodes["color"] = false
	require.NoError(t, svc.DeleteAttribute(ctx, color.ID))

	err = svc.DeleteAttribute(ctx, color.ID)
	assert.ErrorIs(t, err, types.ErrAttributeNotFound)
}

func TestService_BuildAttributeGroupTree(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	cm, err := svc.CreateUnit(ctx, CreateUnitInput{Name: "centimeter", Symbol: "cm"})
	require.NoError(t, err)
	screen, err := svc.CreateAttribute(ctx, CreateAttributeInput{Code: "screen_size", Name: "Screen size", Type: types.AttributeTypeNumber, UnitID: &cm.ID})
	require.NoError(t, err)
	brand, err := svc.CreateAttribute(ctx, CreateAttributeInput{Code: "brand", Name: "Brand", Type: types.AttributeTypeText})
	require.NoError(t, err)
	fabric, err := svc.CreateAttribute(ctx, CreateAttributeInput{Code: "fabric", Name: "Fabric", Type: types.AttributeTypeText})
	require.NoError(t, err)

	electronics, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Electronics", Attributes: []types.AttributeID{brand.ID}})
	require.NoError(t, err)
	phones, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Phones", ParentID: &electronics.ID, Attributes: []types.AttributeID{screen.ID}})
	require.NoError(t, err)

	general, err := svc.CreateAttributeGroup(ctx, CreateAttributeGroupInput{Code: "general", Name: "General", GroupOrder: 0, Attributes: []types.AttributeID{brand.ID, fabric.ID}})
	require.NoError(t, err)
	_, err = svc.CreateAttributeGroup(ctx, CreateAttributeGroupInput{Code: "display", Name: "Display", ParentID: &general.ID, GroupOrder: 0, Attributes: []types.AttributeID{screen.ID}})
	require.NoError(t, err)
	_, err = svc.CreateAttributeGroup(ctx, CreateAttributeGroupInput{Code: "textile", Name: "Textile", GroupOrder: 1, Attributes: []types.AttributeID{fabric.ID}})
	require.NoError(t, err)

	tree, err := svc.BuildAttributeGroupTree(ctx, phones.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "general", tree[0].Code)
	require.Len(t, tree[0].Attributes, 1)
	assert.Equal(t, brand.ID, tree[0].Attributes[0].ID)
	require.Len(t, tree[0].Children, 1)
	require.Len(t, tree[0].Children[0].Attributes, 1)
	require.NotNil(t, tree[0].Children[0].Attributes[0].Unit)
	assert.Equal(t, "cm", tree[0].Children[0].Attributes[0].Unit.Symbol)

	tree, err = svc.BuildAttributeGroupTree(ctx, electronics.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Children)

	_, err = svc.BuildAttributeGroupTree(ctx, types.NewCategoryID())
	assert.ErrorIs(t, err, types.ErrCategoryNotFound)

	tree, err = svc.BuildGroupTreeForAttributes(ctx, []types.AttributeID{fabric.ID})
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "general", tree[0].Code)
	assert.Equal(t, "textile", tree[1].Code)

	page, err := svc.CategoryPage(ctx, phones.ID)
	require.NoError(t, err)
	assert.Equal(t, phones.ID, page.Category.ID)
	assert.Len(t, page.Attributes, 2)
	assert.Len(t, page.Groups, 1)
}

func TestService_AttributeGroups(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	missing := types.NewAttributeGroupID()
	_, err := svc.CreateAttributeGroup(ctx, CreateAttributeGroupInput{Code: "x", Name: "X", ParentID: &missing})
	assert.ErrorIs(t, err, types.ErrAttributeGroupNotFound)

	g, err := svc.CreateAttributeGroup(ctx, CreateAttributeGroupInput{Code: "general", Name: "General"})
	require.NoError(t, err)

	a := types.NewAttributeID()
	ids, err := svc.ReplaceGroupAttributes(ctx, g.ID, []types.AttributeID{a, a})
	require.NoError(t, err)
	assert.Equal(t, []types.AttributeID{a}, ids)

	_, err = svc.ReplaceGroupAttributes(ctx, missing, nil)
	assert.ErrorIs(t, err, types.ErrAttributeGroupNotFound)

	groups, err := svc.ListAttributeGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []types.AttributeID{a}, groups[0].Attributes)
}
