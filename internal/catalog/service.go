package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// Service implements category attribute inheritance and attribute group
// management over a Store.
type Service struct {
	store    Store
	resolver *Resolver
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a catalog service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		resolver: NewResolver(store, logger),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Resolver exposes the ancestry resolver, e.g. to open a RequestScope.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// ResolveEffectiveAttributes returns the attribute ids a category inherits.
func (s *Service) ResolveEffectiveAttributes(ctx context.Context, id types.CategoryID) (AttributeSet, error) {
	return s.resolver.EffectiveAttributes(ctx, id)
}

// BuildAttributeGroupTree returns the group tree scoped to the category's
// effective attributes. An empty slice when no group references any of them.
func (s *Service) BuildAttributeGroupTree(ctx context.Context, id types.CategoryID) ([]*GroupNode, error) {
	set, err := s.resolver.EffectiveAttributes(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.groupTree(ctx, set)
}

// BuildGroupTreeForAttributes returns the group tree scoped to an explicit id list.
func (s *Service) BuildGroupTreeForAttributes(ctx context.Context, ids []types.AttributeID) ([]*GroupNode, error) {
	return s.groupTree(ctx, AttributeSet(dedupe(ids)))
}

func (s *Service) groupTree(ctx context.Context, set AttributeSet) ([]*GroupNode, error) {
	if len(set) == 0 {
		return []*GroupNode{}, nil
	}
	groups, err := s.store.ListAttributeGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attribute groups: %w", err)
	}
	details, err := s.attributeDetails(ctx, set)
	if err != nil {
		return nil, err
	}
	return BuildGroupTree(groups, details, set.Index()), nil
}

// CategoryView is everything a product form needs for one category.
type CategoryView struct {
	Category   types.Category          `json:"category"`
	Attributes []types.AttributeDetail `json:"attributes"`
	Groups     []*GroupNode            `json:"groups"`
}

// CategoryPage resolves the category, its effective attribute details and its
// group tree, resolving inheritance once.
func (s *Service) CategoryPage(ctx context.Context, id types.CategoryID) (*CategoryView, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	scope := s.resolver.NewScope()
	set, err := scope.EffectiveAttributes(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.attributeDetails(ctx, set)
	if err != nil {
		return nil, err
	}

	view := &CategoryView{
		Category:   *category,
		Attributes: make([]types.AttributeDetail, 0, len(set)),
	}
	for _, attrID := range set {
		if d, ok := details[attrID]; ok {
			view.Attributes = append(view.Attributes, d)
		}
	}

	groups, err := s.store.ListAttributeGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attribute groups: %w", err)
	}
	view.Groups = BuildGroupTree(groups, details, set.Index())
	return view, nil
}

// attributeDetails loads the attributes in set with units resolved inline.
// Ids that no longer resolve are left out.
func (s *Service) attributeDetails(ctx context.Context, set AttributeSet) (map[types.AttributeID]types.AttributeDetail, error) {
	attrs, err := s.store.GetAttributes(ctx, set)
	if err != nil {
		return nil, fmt.Errorf("load attributes: %w", err)
	}

	var unitIDs []types.UnitID
	for _, a := range attrs {
		if a.UnitID != nil {
			unitIDs = append(unitIDs, *a.UnitID)
		}
	}
	units := make(map[types.UnitID]types.Unit)
	if len(unitIDs) > 0 {
		loaded, err := s.store.GetUnits(ctx, unitIDs)
		if err != nil {
			return nil, fmt.Errorf("load units: %w", err)
		}
		for _, u := range loaded {
			units[u.ID] = u
		}
	}

	details := make(map[types.AttributeID]types.AttributeDetail, len(attrs))
	for _, a := range attrs {
		d := types.AttributeDetail{Attribute: a}
		if a.UnitID != nil {
			if u, ok := units[*a.UnitID]; ok {
				d.Unit = &u
			}
		}
		details[a.ID] = d
	}
	return details, nil
}

// ReplaceCategoryAttributes overwrites the category's own attribute list.
// Full replace, last writer wins.
func (s *Service) ReplaceCategoryAttributes(ctx context.Context, id types.CategoryID, ids []types.AttributeID) ([]types.AttributeID, error) {
	if err := validateInput(replaceAttributesInput{Attributes: ids}); err != nil {
		return nil, err
	}
	ids = dedupe(ids)
	if err := s.store.ReplaceCategoryAttributes(ctx, id, ids, s.now()); err != nil {
		return nil, err
	}
	s.logger.Info("category attributes replaced",
		zap.String("category_id", string(id)),
		zap.Int("attributes", len(ids)),
	)
	return ids, nil
}

// GetCategory returns one category.
func (s *Service) GetCategory(ctx context.Context, id types.CategoryID) (*types.Category, error) {
	return s.store.GetCategory(ctx, id)
}

// ListCategories returns every category.
func (s *Service) ListCategories(ctx context.Context) ([]types.Category, error) {
	return s.store.ListCategories(ctx)
}

// CreateCategory creates a category under an existing parent, or as a root.
func (s *Service) CreateCategory(ctx context.Context, in CreateCategoryInput) (*types.Category, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		if _, err := s.store.GetCategory(ctx, *in.ParentID); err != nil {
			return nil, fmt.Errorf("parent %s: %w", *in.ParentID, err)
		}
	}

	now := s.now()
	c := &types.Category{
		ID:         types.NewCategoryID(),
		ParentID:   in.ParentID,
		Name:       in.Name,
		Attributes: dedupe(in.Attributes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.logger.Info("category created", zap.String("category_id", string(c.ID)))
	return c, nil
}

// MoveCategory reparents a category. A nil parent makes it a root. Moving a
// category under itself or one of its descendants returns types.ErrCategoryCycle.
func (s *Service) MoveCategory(ctx context.Context, id types.CategoryID, parent *types.CategoryID) (*types.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if parent != nil {
		if !types.IsValidID(string(*parent)) {
			return nil, fmt.Errorf("%w: parent %q", types.ErrInvalidID, *parent)
		}
		cycle, err := s.resolver.IsAncestor(ctx, id, *parent)
		if err != nil {
			return nil, fmt.Errorf("parent %s: %w", *parent, err)
		}
		if cycle {
			return nil, fmt.Errorf("%w: %s under %s", types.ErrCategoryCycle, id, *parent)
		}
	}

	now := s.now()
	if err := s.store.UpdateCategoryParent(ctx, id, parent, now); err != nil {
		return nil, err
	}
	category.ParentID = parent
	category.UpdatedAt = now
	return category, nil
}

// CreateUnit creates a measurement unit.
func (s *Service) CreateUnit(ctx context.Context, in CreateUnitInput) (*types.Unit, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	u := &types.Unit{ID: types.NewUnitID(), Name: in.Name, Symbol: in.Symbol}
	if err := s.store.CreateUnit(ctx, u); err != nil {
		return nil, fmt.Errorf("create unit: %w", err)
	}
	return u, nil
}

// CreateAttribute creates an attribute with a unique code.
func (s *Service) CreateAttribute(ctx context.Context, in CreateAttributeInput) (*types.Attribute, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	_, err := s.store.GetAttributeByCode(ctx, in.Code)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: attribute %q", types.ErrDuplicateCode, in.Code)
	case !errors.Is(err, types.ErrAttributeNotFound):
		return nil, fmt.Errorf("lookup attribute code: %w", err)
	}

	if in.UnitID != nil {
		units, err := s.store.GetUnits(ctx, []types.UnitID{*in.UnitID})
		if err != nil {
			return nil, fmt.Errorf("lookup unit: %w", err)
		}
		if len(units) == 0 {
			return nil, fmt.Errorf("%w: %s", types.ErrUnitNotFound, *in.UnitID)
		}
	}

	a := &types.Attribute{
		ID:       types.NewAttributeID(),
		Code:     in.Code,
		Name:     in.Name,
		Type:     in.Type,
		Options:  in.Options,
		Required: in.Required,
		UnitID:   in.UnitID,
	}
	if err := s.store.CreateAttribute(ctx, a); err != nil {
		return nil, fmt.Errorf("create attribute: %w", err)
	}
	s.logger.Info("attribute created",
		zap.String("attribute_id", string(a.ID)),
		zap.String("code", a.Code),
	)
	return a, nil
}

// ListAttributes returns every attribute.
func (s *Service) ListAttributes(ctx context.Context) ([]types.Attribute, error) {
	return s.store.ListAttributes(ctx)
}

// DeleteAttribute removes an attribute nobody references. Returns
// types.ErrAttributeInUse while a category, group or collection rule still
// points at it.
func (s *Service) DeleteAttribute(ctx context.Context, id types.AttributeID) error {
	a, err := s.store.GetAttribute(ctx, id)
	if err != nil {
		return err
	}
	inUse, err := s.store.AttributeReferenced(ctx, id, a.Code)
	if err != nil {
		return fmt.Errorf("check attribute references: %w", err)
	}
	if inUse {
		return fmt.Errorf("%w: %s", types.ErrAttributeInUse, a.Code)
	}
	if err := s.store.DeleteAttribute(ctx, id); err != nil {
		return err
	}
	s.logger.Info("attribute deleted", zap.String("attribute_id", string(id)))
	return nil
}

// ListAttributeGroups returns the flat group list.
func (s *Service) ListAttributeGroups(ctx context.Context) ([]types.AttributeGroup, error) {
	return s.store.ListAttributeGroups(ctx)
}

// CreateAttributeGroup creates a group under an existing parent group, or as a root.
func (s *Service) CreateAttributeGroup(ctx context.Context, in CreateAttributeGroupInput) (*types.AttributeGroup, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		if _, err := s.store.GetAttributeGroup(ctx, *in.ParentID); err != nil {
			return nil, fmt.Errorf("parent %s: %w", *in.ParentID, err)
		}
	}

	g := &types.AttributeGroup{
		ID:         types.NewAttributeGroupID(),
		ParentID:   in.ParentID,
		Code:       in.Code,
		Name:       in.Name,
		GroupOrder: in.GroupOrder,
		Attributes: dedupe(in.Attributes),
	}
	if err := s.store.CreateAttributeGroup(ctx, g); err != nil {
		return nil, fmt.Errorf("create attribute group: %w", err)
	}
	return g, nil
}

// ReplaceGroupAttributes overwrites a group's attribute list. Full replace.
func (s *Service) ReplaceGroupAttributes(ctx context.Context, id types.AttributeGroupID, ids []types.AttributeID) ([]types.AttributeID, error) {
	if err := validateInput(replaceAttributesInput{Attributes: ids}); err != nil {
		return nil, err
	}
	ids = dedupe(ids)
	if err := s.store.ReplaceGroupAttributes(ctx, id, ids); err != nil {
		return nil, err
	}
	return ids, nil
}
