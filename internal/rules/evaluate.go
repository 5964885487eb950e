// internal/rules/evaluate.go
package rules

import (
	"encoding/json"
	"fmt"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

/*
 * Predicate evaluation.
 *
 * Evaluates a compiled Predicate against a product document. Used by stores
 * that cannot push the predicate down as a server-side filter (sqlstore keeps
 * products as JSON documents and scans them).
 *
 * Evaluation flow:
 *   1. Empty predicate: match (catch-all collection)
 *   2. Clauses in cost order, short-circuit on first non-match
 *   3. Per clause: resolve path -> compare operator
 *
 * Documents are plain decoded JSON (map[string]any, []any, float64, string,
 * bool, nil). ProductDocument converts a typed Product into that shape so both
 * the typed and raw paths see identical values.
 */

// Match reports whether doc satisfies every clause of p.
func (p *Predicate) Match(doc map[string]any) bool {
	if p.IsEmpty() {
		return true
	}
	for _, idx := range p.evalOrder {
		if !p.Clauses[idx].Match(doc) {
			return false
		}
	}
	return true
}

// Match evaluates a single clause against doc.
func (c Clause) Match(doc map[string]any) bool {
	res := Resolve(c.Path, doc)
	return Compare(c.Operator, res.Value, res.Found, c.Value)
}

// MatchJSON decodes a raw product document and evaluates p against it.
func (p *Predicate) MatchJSON(raw []byte) (bool, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, fmt.Errorf("decode product document: %w", err)
	}
	return p.Match(doc), nil
}

// MatchProduct evaluates p against a typed product.
func (p *Predicate) MatchProduct(product types.Product) (bool, error) {
	doc, err := ProductDocument(product)
	if err != nil {
		return false, err
	}
	return p.Match(doc), nil
}

// ProductDocument converts a product into its decoded JSON document form.
func ProductDocument(product types.Product) (map[string]any, error) {
	raw, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("encode product %s: %w", product.ID, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", product.ID, err)
	}
	return doc, nil
}
