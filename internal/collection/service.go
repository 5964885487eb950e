package collection

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/catalog"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/rules"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

var collectionValidate = validator.New()

// CollectionInput is the full state of a collection on create or update.
// Rules are stored as authored; incomplete rules are kept and skipped at
// compile time.
type CollectionInput struct {
	Name        string                 `json:"name" validate:"required,max=200"`
	CategoryID  types.CategoryID       `json:"category_id" validate:"required,uuid"`
	Rules       []types.Rule           `json:"rules"`
	Status      types.CollectionStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Description string                 `json:"description,omitempty" validate:"max=2000"`
	ImageURL    string                 `json:"image_url,omitempty" validate:"omitempty,url"`
}

// CreateProductInput is the request to add a product document.
type CreateProductInput struct {
	CategoryID types.CategoryID `json:"category_id" validate:"required,uuid"`
	Name       string           `json:"name" validate:"required,max=300"`
	SKU        string           `json:"sku" validate:"max=100"`
	ListPrice  any              `json:"list_price"`
	Status     string           `json:"status" validate:"max=50"`
	Attributes map[string]any   `json:"attributes,omitempty"`
}

// CollectionWithProducts is one entry of the collection list view.
type CollectionWithProducts struct {
	types.Collection
	Items []types.Product `json:"items"`
	Count int             `json:"count"`
}

// Options tunes the service.
type Options struct {
	// ItemLimit caps products returned per collection. Zero uses
	// types.DefaultCollectionItemLimit.
	ItemLimit int
}

// Service implements collection management and materialization.
type Service struct {
	store        Store
	categories   catalog.CategoryReader
	engine       *rules.Engine
	materializer *Materializer
	logger       *zap.Logger
	itemLimit    int
	now          func() time.Time
}

// NewService creates a collection service.
func NewService(store Store, categories catalog.CategoryReader, engine *rules.Engine, logger *zap.Logger, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = rules.NewEngine(logger)
	}
	limit := opts.ItemLimit
	if limit <= 0 {
		limit = types.DefaultCollectionItemLimit
	}
	return &Service{
		store:        store,
		categories:   categories,
		engine:       engine,
		materializer: NewMaterializer(store),
		logger:       logger,
		itemLimit:    limit,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateCollection stores a new collection.
func (s *Service) CreateCollection(ctx context.Context, in CollectionInput) (*types.Collection, error) {
	if err := s.checkInput(ctx, "", in); err != nil {
		return nil, err
	}

	now := s.now()
	c := &types.Collection{
		ID:        types.NewCollectionID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyInput(c, in)

	if err := s.store.CreateCollection(ctx, c); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	s.logger.Info("collection created",
		zap.String("collection_id", string(c.ID)),
		zap.Int("rules", len(c.Rules)),
	)
	return c, nil
}

// UpdateCollection replaces a collection's fields and rule list. Last writer wins.
func (s *Service) UpdateCollection(ctx context.Context, id types.CollectionID, in CollectionInput) (*types.Collection, error) {
	c, err := s.store.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkInput(ctx, id, in); err != nil {
		return nil, err
	}

	applyInput(c, in)
	c.UpdatedAt = s.now()

	if err := s.store.UpdateCollection(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("collection updated",
		zap.String("collection_id", string(c.ID)),
		zap.Int("rules", len(c.Rules)),
	)
	return c, nil
}

// checkInput validates a write. self is the collection being updated, empty on create.
func (s *Service) checkInput(ctx context.Context, self types.CollectionID, in CollectionInput) error {
	if err := collectionValidate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidInput, err)
	}
	if len(in.Rules) > types.MaxRulesPerCollection {
		return fmt.Errorf("%w: %d rules, at most %d", types.ErrTooManyRules, len(in.Rules), types.MaxRulesPerCollection)
	}
	if err := checkMembershipLists(in.Rules); err != nil {
		return err
	}

	existing, err := s.store.GetCollectionByName(ctx, in.Name)
	switch {
	case err == nil && existing.ID != self:
		return fmt.Errorf("%w: collection %q", types.ErrDuplicateName, in.Name)
	case err != nil && !errors.Is(err, types.ErrCollectionNotFound):
		return fmt.Errorf("lookup collection name: %w", err)
	}

	if _, err := s.categories.GetCategory(ctx, in.CategoryID); err != nil {
		return fmt.Errorf("collection category %s: %w", in.CategoryID, err)
	}
	return nil
}

// checkMembershipLists rejects $in/$nin rules whose coerced list is longer
// than types.MaxInOperatorValues. Oversized lists are refused on write, never
// dropped at compile time.
func checkMembershipLists(rs []types.Rule) error {
	for _, r := range rs {
		op, ok := rules.ParseOperator(r.Operator)
		if !ok || !op.IsMembership() {
			continue
		}
		if list, _ := rules.Coerce(op, r.Value).([]any); len(list) > types.MaxInOperatorValues {
			return fmt.Errorf("%w: rule on %q has %d values, at most %d",
				types.ErrInvalidInput, r.Attribute, len(list), types.MaxInOperatorValues)
		}
	}
	return nil
}

func applyInput(c *types.Collection, in CollectionInput) {
	c.Name = in.Name
	c.CategoryID = in.CategoryID
	c.Rules = NormalizeRules(in.Rules)
	c.Status = in.Status
	if c.Status == "" {
		c.Status = types.CollectionActive
	}
	c.Description = in.Description
	c.ImageURL = in.ImageURL
}

// NormalizeRules orders rules by position (stable) and renumbers positions
// from zero without gaps.
func NormalizeRules(rs []types.Rule) []types.Rule {
	out := make([]types.Rule, len(rs))
	copy(out, rs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	for i := range out {
		out[i].Position = i
	}
	return out
}

// GetCollection returns one collection.
func (s *Service) GetCollection(ctx context.Context, id types.CollectionID) (*types.Collection, error) {
	return s.store.GetCollection(ctx, id)
}

// ListCollections returns every collection.
func (s *Service) ListCollections(ctx context.Context) ([]types.Collection, error) {
	return s.store.ListCollections(ctx)
}

// DeleteCollection removes a collection. Products are untouched.
func (s *Service) DeleteCollection(ctx context.Context, id types.CollectionID) error {
	if err := s.store.DeleteCollection(ctx, id); err != nil {
		return err
	}
	s.logger.Info("collection deleted", zap.String("collection_id", string(id)))
	return nil
}

// CollectionProducts compiles a stored collection and returns its current members.
// A non-positive limit uses the service item limit.
func (s *Service) CollectionProducts(ctx context.Context, id types.CollectionID, limit int) (*Result, error) {
	c, err := s.store.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.itemLimit
	}
	return s.materializer.Materialize(ctx, s.engine.Compile(c.ID, c.Rules), limit)
}

// PreviewRules materializes an unsaved rule list, for authoring, and reports
// the rules the compiler skipped.
func (s *Service) PreviewRules(ctx context.Context, rs []types.Rule, limit int) (*Result, error) {
	if limit <= 0 {
		limit = s.itemLimit
	}
	pred := s.engine.Compile("", NormalizeRules(rs))
	res, err := s.materializer.Materialize(ctx, pred, limit)
	if err != nil {
		return nil, err
	}
	res.Skipped = pred.Skipped
	return res, nil
}

// ListCollectionsWithProducts returns every collection with its current
// members, each capped at the item limit.
func (s *Service) ListCollectionsWithProducts(ctx context.Context) ([]CollectionWithProducts, error) {
	collections, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CollectionWithProducts, 0, len(collections))
	for _, c := range collections {
		res, err := s.materializer.Materialize(ctx, s.engine.Compile(c.ID, c.Rules), s.itemLimit)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", c.ID, err)
		}
		out = append(out, CollectionWithProducts{Collection: c, Items: res.Items, Count: res.Count})
	}
	return out, nil
}

// CreateProduct stores a product document.
func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*types.Product, error) {
	if err := collectionValidate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidInput, err)
	}
	if _, err := s.categories.GetCategory(ctx, in.CategoryID); err != nil {
		return nil, fmt.Errorf("product category %s: %w", in.CategoryID, err)
	}

	p := &types.Product{
		ID:         types.NewProductID(),
		CategoryID: in.CategoryID,
		Name:       in.Name,
		SKU:        in.SKU,
		ListPrice:  in.ListPrice,
		Status:     in.Status,
		Attributes: in.Attributes,
		CreatedAt:  s.now(),
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}
