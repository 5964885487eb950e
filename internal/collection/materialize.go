// Package collection manages rule-defined product collections.
//
// Membership is never stored. Every read compiles the collection's rules and
// asks the store for the products matching right now.
package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/rules"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

var (
	materializeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "novaorizon_collection_materialize_duration_seconds",
		Help:    "Time spent materializing a collection",
		Buckets: prometheus.DefBuckets,
	})

	materializeMatches = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "novaorizon_collection_materialize_matches",
		Help:    "Products matched per materialization",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})
)

// Result is a materialized collection: the first products and the total count.
type Result struct {
	Items []types.Product `json:"items"`
	Count int             `json:"count"`
	// Skipped lists rules left out of the predicate. Set by PreviewRules only.
	Skipped []rules.SkippedRule `json:"skipped,omitempty"`
}

// Materializer evaluates compiled predicates against the product store.
type Materializer struct {
	products ProductReader
}

// NewMaterializer creates a materializer over products.
func NewMaterializer(products ProductReader) *Materializer {
	return &Materializer{products: products}
}

// Materialize returns at most limit matching products and the total count.
// A non-positive limit uses types.DefaultCollectionItemLimit.
func (m *Materializer) Materialize(ctx context.Context, pred *rules.Predicate, limit int) (*Result, error) {
	if limit <= 0 {
		limit = types.DefaultCollectionItemLimit
	}

	start := time.Now()
	items, count, err := m.products.FindProducts(ctx, pred, limit)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	materializeDuration.Observe(time.Since(start).Seconds())
	materializeMatches.Observe(float64(count))

	if items == nil {
		items = []types.Product{}
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return &Result{Items: items, Count: count}, nil
}
