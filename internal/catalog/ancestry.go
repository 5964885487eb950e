// Package catalog resolves category attribute inheritance and builds
// attribute group trees scoped to a category.
//
// Everything here is recomputed per read from the store. Nothing is cached
// across requests; an ancestor edit is visible to every descendant on the
// next read.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// Lineage is a category plus its ancestors, nearest first.
type Lineage struct {
	Category  types.Category
	Ancestors []types.Category
}

// Chain returns the category followed by its ancestors.
func (l Lineage) Chain() []types.Category {
	chain := make([]types.Category, 0, len(l.Ancestors)+1)
	chain = append(chain, l.Category)
	return append(chain, l.Ancestors...)
}

// Resolver walks category ancestry.
type Resolver struct {
	store  CategoryReader
	logger *zap.Logger
}

// NewResolver creates a resolver over store.
func NewResolver(store CategoryReader, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, logger: logger}
}

// Ancestry returns the category and its ancestors. Unknown id returns
// types.ErrCategoryNotFound. A parent that no longer exists ends the walk as
// if the category were a root. Revisiting an id ends the walk and returns the
// chain collected so far.
func (r *Resolver) Ancestry(ctx context.Context, id types.CategoryID) (Lineage, error) {
	start, err := r.store.GetCategory(ctx, id)
	if err != nil {
		return Lineage{}, err
	}

	lineage := Lineage{Category: *start}
	visited := map[types.CategoryID]struct{}{start.ID: {}}

	parent := start.ParentID
	for parent != nil {
		if _, seen := visited[*parent]; seen {
			r.logger.Warn("category ancestry cycle",
				zap.String("category_id", string(id)),
				zap.String("revisited_id", string(*parent)),
			)
			break
		}
		visited[*parent] = struct{}{}

		next, err := r.store.GetCategory(ctx, *parent)
		if errors.Is(err, types.ErrCategoryNotFound) {
			r.logger.Debug("category parent missing",
				zap.String("category_id", string(id)),
				zap.String("parent_id", string(*parent)),
			)
			break
		}
		if err != nil {
			return Lineage{}, fmt.Errorf("load ancestor %s: %w", *parent, err)
		}

		lineage.Ancestors = append(lineage.Ancestors, *next)
		parent = next.ParentID
	}

	return lineage, nil
}

// IsAncestor reports whether candidate appears in id's ancestor chain or is id itself.
func (r *Resolver) IsAncestor(ctx context.Context, candidate, id types.CategoryID) (bool, error) {
	lineage, err := r.Ancestry(ctx, id)
	if err != nil {
		return false, err
	}
	for _, c := range lineage.Chain() {
		if c.ID == candidate {
			return true, nil
		}
	}
	return false, nil
}
