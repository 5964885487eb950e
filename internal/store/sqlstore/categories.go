package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/db"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

type categoryRow struct {
	ID        string         `db:"category_id"`
	ParentID  sql.NullString `db:"parent_id"`
	Name      string         `db:"name"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r categoryRow) toCategory(attrs []types.AttributeID) types.Category {
	if attrs == nil {
		attrs = []types.AttributeID{}
	}
	return types.Category{
		ID:         types.CategoryID(r.ID),
		ParentID:   optional[types.CategoryID](r.ParentID),
		Name:       r.Name,
		Attributes: attrs,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
}

type categoryAttributeRow struct {
	CategoryID  string `db:"category_id"`
	AttributeID string `db:"attribute_id"`
}

// GetCategory loads a category with its directly assigned attribute ids.
func (s *Store) GetCategory(ctx context.Context, id types.CategoryID) (*types.Category, error) {
	var row categoryRow
	if err := s.q.Get(ctx, "get-category", &row, string(id)); err != nil {
		return nil, notFound(err, types.ErrCategoryNotFound)
	}

	var attrs []types.AttributeID
	if err := s.q.Select(ctx, "list-category-attributes", &attrs, string(id)); err != nil {
		return nil, fmt.Errorf("list category attributes: %w", err)
	}

	c := row.toCategory(attrs)
	return &c, nil
}

// ListCategories loads every category, oldest first.
func (s *Store) ListCategories(ctx context.Context) ([]types.Category, error) {
	var rows []categoryRow
	if err := s.q.Select(ctx, "list-categories", &rows); err != nil {
		return nil, err
	}

	var links []categoryAttributeRow
	if err := s.q.Select(ctx, "list-all-category-attributes", &links); err != nil {
		return nil, fmt.Errorf("list category attributes: %w", err)
	}
	byCategory := make(map[string][]types.AttributeID)
	for _, l := range links {
		byCategory[l.CategoryID] = append(byCategory[l.CategoryID], types.AttributeID(l.AttributeID))
	}

	out := make([]types.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toCategory(byCategory[r.ID]))
	}
	return out, nil
}

// CreateCategory inserts a category and its attribute list.
func (s *Store) CreateCategory(ctx context.Context, c *types.Category) error {
	return s.q.InTx(ctx, func(tx *db.Tx) error {
		if _, err := tx.Exec(ctx, "create-category",
			string(c.ID), nullable(c.ParentID), c.Name, c.CreatedAt, c.UpdatedAt,
		); err != nil {
			return err
		}
		return insertCategoryAttributes(ctx, tx, c.ID, c.Attributes)
	})
}

// UpdateCategoryParent reassigns a category's parent.
func (s *Store) UpdateCategoryParent(ctx context.Context, id types.CategoryID, parent *types.CategoryID, updatedAt time.Time) error {
	res, err := s.q.Exec(ctx, "update-category-parent", nullable(parent), updatedAt, string(id))
	if err != nil {
		return err
	}
	return requireAffected(res, types.ErrCategoryNotFound)
}

// ReplaceCategoryAttributes deletes and reinserts the attribute list in one transaction.
func (s *Store) ReplaceCategoryAttributes(ctx context.Context, id types.CategoryID, attrs []types.AttributeID, updatedAt time.Time) error {
	return s.q.InTx(ctx, func(tx *db.Tx) error {
		res, err := tx.Exec(ctx, "touch-category", updatedAt, string(id))
		if err != nil {
			return err
		}
		if err := requireAffected(res, types.ErrCategoryNotFound); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, "delete-category-attributes", string(id)); err != nil {
			return err
		}
		return insertCategoryAttributes(ctx, tx, id, attrs)
	})
}

func insertCategoryAttributes(ctx context.Context, tx *db.Tx, id types.CategoryID, attrs []types.AttributeID) error {
	for i, a := range attrs {
		if _, err := tx.Exec(ctx, "insert-category-attribute", string(id), string(a), i); err != nil {
			return fmt.Errorf("insert category attribute %s: %w", a, err)
		}
	}
	return nil
}
