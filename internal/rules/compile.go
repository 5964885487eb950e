// internal/rules/compile.go
package rules

import (
	"sort"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

/*
 * Rule compilation.
 *
 * Compiles a collection's ordered rule list into a Predicate: the logical AND
 * of one clause per usable rule.
 *
 * Compilation workflow:
 *   1. Order rules by position (stable, so equal positions keep input order)
 *   2. Skip incomplete rules (missing attribute or operator, unknown token,
 *      unusable field reference). Authoring saves half-built rules routinely,
 *      so these are recorded in Predicate.Skipped rather than returned as errors
 *   3. Coerce the raw value for the operator (coercion.go)
 *   4. For the category reference field, keep only values that are valid
 *      identifiers; drop the clause if none remain
 *   5. Calculate the cost-based evaluation order (cost.go)
 *
 * An empty rule list compiles to a predicate with no clauses, which matches
 * every product. A collection without rules is a catch-all.
 */

// CategoryField is the product field holding the category reference.
const CategoryField = "category_id"

// SkipReason explains why a rule did not become a clause.
type SkipReason string

const (
	SkipMalformedRule     SkipReason = "malformed_rule"
	SkipInvalidIdentifier SkipReason = "invalid_identifier"
)

// SkippedRule records a rule left out of a compiled predicate.
type SkippedRule struct {
	Position  int        `json:"position"`
	Attribute string     `json:"attribute"`
	Operator  string     `json:"operator"`
	Reason    SkipReason `json:"reason"`
}

// Clause is one compiled comparison.
type Clause struct {
	Field    string    // document field reference, e.g. "attributes.color"
	Path     FieldPath // parsed Field
	Operator Operator
	Value    any // coerced operand: scalar native or []any
	Position int
	Cost     int
}

// Predicate is the conjunction of compiled clauses.
type Predicate struct {
	Clauses   []Clause      // authored position order
	Skipped   []SkippedRule // rules excluded during compilation
	evalOrder []int         // clause indexes by ascending cost
}

// IsEmpty reports whether the predicate has no clauses and so matches everything.
func (p *Predicate) IsEmpty() bool {
	return p == nil || len(p.Clauses) == 0
}

// Compile turns rules into a predicate. It never fails; unusable rules are
// listed in Predicate.Skipped.
func Compile(rules []types.Rule) *Predicate {
	ordered := make([]types.Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	pred := &Predicate{
		Clauses: make([]Clause, 0, len(ordered)),
	}

	for _, rule := range ordered {
		clause, reason, ok := compileRule(rule)
		if !ok {
			pred.Skipped = append(pred.Skipped, SkippedRule{
				Position:  rule.Position,
				Attribute: rule.Attribute,
				Operator:  rule.Operator,
				Reason:    reason,
			})
			continue
		}
		pred.Clauses = append(pred.Clauses, clause)
	}

	pred.evalOrder = make([]int, len(pred.Clauses))
	for i := range pred.evalOrder {
		pred.evalOrder[i] = i
	}
	// Stable sort: equal-cost clauses keep authored order
	sort.SliceStable(pred.evalOrder, func(i, j int) bool {
		return pred.Clauses[pred.evalOrder[i]].Cost < pred.Clauses[pred.evalOrder[j]].Cost
	})

	return pred
}

// compileRule validates and coerces a single rule.
func compileRule(rule types.Rule) (Clause, SkipReason, bool) {
	if rule.Attribute == "" || rule.Operator == "" {
		return Clause{}, SkipMalformedRule, false
	}
	op, ok := ParseOperator(rule.Operator)
	if !ok {
		return Clause{}, SkipMalformedRule, false
	}

	field := FieldFor(rule.Attribute)
	path, err := ParseFieldPath(field)
	if err != nil {
		return Clause{}, SkipMalformedRule, false
	}

	value := Coerce(op, rule.Value)

	if field == CategoryField {
		admitted, ok := admitIdentifiers(value)
		if !ok {
			return Clause{}, SkipInvalidIdentifier, false
		}
		value = admitted
	}

	return Clause{
		Field:    field,
		Path:     path,
		Operator: op,
		Value:    value,
		Position: rule.Position,
		Cost:     CalculateClauseCost(path, op, value),
	}, "", true
}

// admitIdentifiers keeps only values that are valid identifiers.
// A scalar must be valid itself; a list keeps its valid members and is
// rejected only when none remain.
func admitIdentifiers(value any) (any, bool) {
	if list, ok := value.([]any); ok {
		kept := make([]any, 0, len(list))
		for _, v := range list {
			if s, ok := v.(string); ok && types.IsValidID(s) {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			return nil, false
		}
		return kept, true
	}
	if s, ok := value.(string); ok && types.IsValidID(s) {
		return s, true
	}
	return nil, false
}
