package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/rules"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

type productRow struct {
	ID       string `db:"product_id"`
	Document string `db:"document"`
}

// CreateProduct stores the product as a JSON document.
func (s *Store) CreateProduct(ctx context.Context, p *types.Product) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	_, err = s.q.Exec(ctx, "create-product", string(p.ID), string(p.CategoryID), string(doc), p.CreatedAt)
	return err
}

// FindProducts scans product documents oldest first and evaluates pred
// against each. Rows are loaded before evaluation so the connection is free
// for the caller.
func (s *Store) FindProducts(ctx context.Context, pred *rules.Predicate, limit int) ([]types.Product, int, error) {
	var rows []productRow
	if err := s.q.Select(ctx, "scan-products", &rows); err != nil {
		return nil, 0, err
	}

	var items []types.Product
	count := 0
	for _, r := range rows {
		ok, err := pred.MatchJSON([]byte(r.Document))
		if err != nil {
			s.logger.Warn("skipping undecodable product document",
				zap.String("product_id", r.ID), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		count++
		if len(items) >= limit {
			continue
		}
		var p types.Product
		if err := json.Unmarshal([]byte(r.Document), &p); err != nil {
			return nil, 0, fmt.Errorf("decode product %s: %w", r.ID, err)
		}
		items = append(items, p)
	}
	return items, count, nil
}
