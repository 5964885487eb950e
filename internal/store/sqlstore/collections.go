package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/db"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

type collectionRow struct {
	ID          string    `db:"collection_id"`
	Name        string    `db:"name"`
	CategoryID  string    `db:"category_id"`
	Status      string    `db:"status"`
	Description string    `db:"description"`
	ImageURL    string    `db:"image_url"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r collectionRow) toCollection(rules []types.Rule) types.Collection {
	if rules == nil {
		rules = []types.Rule{}
	}
	return types.Collection{
		ID:          types.CollectionID(r.ID),
		Name:        r.Name,
		CategoryID:  types.CategoryID(r.CategoryID),
		Rules:       rules,
		Status:      types.CollectionStatus(r.Status),
		Description: r.Description,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type ruleRow struct {
	CollectionID string `db:"collection_id"`
	Position     int    `db:"position"`
	Attribute    string `db:"attribute"`
	Operator     string `db:"operator"`
	Value        string `db:"value"`
}

func (r ruleRow) toRule() (types.Rule, error) {
	rule := types.Rule{Attribute: r.Attribute, Operator: r.Operator, Position: r.Position}
	if err := json.Unmarshal([]byte(r.Value), &rule.Value); err != nil {
		return types.Rule{}, fmt.Errorf("decode rule %d of collection %s: %w", r.Position, r.CollectionID, err)
	}
	return rule, nil
}

// GetCollection loads a collection with its rules in position order.
func (s *Store) GetCollection(ctx context.Context, id types.CollectionID) (*types.Collection, error) {
	var row collectionRow
	if err := s.q.Get(ctx, "get-collection", &row, string(id)); err != nil {
		return nil, notFound(err, types.ErrCollectionNotFound)
	}
	return s.withRules(ctx, row)
}

// GetCollectionByName loads a collection by its unique name.
func (s *Store) GetCollectionByName(ctx context.Context, name string) (*types.Collection, error) {
	var row collectionRow
	if err := s.q.Get(ctx, "get-collection-by-name", &row, name); err != nil {
		return nil, notFound(err, types.ErrCollectionNotFound)
	}
	return s.withRules(ctx, row)
}

func (s *Store) withRules(ctx context.Context, row collectionRow) (*types.Collection, error) {
	var rows []ruleRow
	if err := s.q.Select(ctx, "list-collection-rules", &rows, row.ID); err != nil {
		return nil, fmt.Errorf("list collection rules: %w", err)
	}
	rules := make([]types.Rule, 0, len(rows))
	for _, r := range rows {
		rule, err := r.toRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	c := row.toCollection(rules)
	return &c, nil
}

// ListCollections loads every collection, oldest first.
func (s *Store) ListCollections(ctx context.Context) ([]types.Collection, error) {
	var rows []collectionRow
	if err := s.q.Select(ctx, "list-collections", &rows); err != nil {
		return nil, err
	}

	var ruleRows []ruleRow
	if err := s.q.Select(ctx, "list-all-collection-rules", &ruleRows); err != nil {
		return nil, fmt.Errorf("list collection rules: %w", err)
	}
	byCollection := make(map[string][]types.Rule)
	for _, r := range ruleRows {
		rule, err := r.toRule()
		if err != nil {
			return nil, err
		}
		byCollection[r.CollectionID] = append(byCollection[r.CollectionID], rule)
	}

	out := make([]types.Collection, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toCollection(byCollection[r.ID]))
	}
	return out, nil
}

// CreateCollection inserts a collection and its rules.
func (s *Store) CreateCollection(ctx context.Context, c *types.Collection) error {
	return s.q.InTx(ctx, func(tx *db.Tx) error {
		if _, err := tx.Exec(ctx, "create-collection",
			string(c.ID), c.Name, string(c.CategoryID), string(c.Status),
			c.Description, c.ImageURL, c.CreatedAt, c.UpdatedAt,
		); err != nil {
			return err
		}
		return insertRules(ctx, tx, c.ID, c.Rules)
	})
}

// UpdateCollection overwrites the collection row and replaces its rules.
func (s *Store) UpdateCollection(ctx context.Context, c *types.Collection) error {
	return s.q.InTx(ctx, func(tx *db.Tx) error {
		res, err := tx.Exec(ctx, "update-collection",
			c.Name, string(c.CategoryID), string(c.Status),
			c.Description, c.ImageURL, c.UpdatedAt, string(c.ID),
		)
		if err != nil {
			return err
		}
		if err := requireAffected(res, types.ErrCollectionNotFound); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, "delete-collection-rules", string(c.ID)); err != nil {
			return err
		}
		return insertRules(ctx, tx, c.ID, c.Rules)
	})
}

// DeleteCollection removes a collection and its rules.
func (s *Store) DeleteCollection(ctx context.Context, id types.CollectionID) error {
	return s.q.InTx(ctx, func(tx *db.Tx) error {
		if _, err := tx.Exec(ctx, "delete-collection-rules", string(id)); err != nil {
			return err
		}
		res, err := tx.Exec(ctx, "delete-collection", string(id))
		if err != nil {
			return err
		}
		return requireAffected(res, types.ErrCollectionNotFound)
	})
}

func insertRules(ctx context.Context, tx *db.Tx, id types.CollectionID, rules []types.Rule) error {
	for _, r := range rules {
		value, err := json.Marshal(r.Value)
		if err != nil {
			return fmt.Errorf("encode rule %d: %w", r.Position, err)
		}
		if _, err := tx.Exec(ctx, "insert-collection-rule",
			string(id), r.Position, r.Attribute, r.Operator, string(value),
		); err != nil {
			return fmt.Errorf("insert rule %d: %w", r.Position, err)
		}
	}
	return nil
}
