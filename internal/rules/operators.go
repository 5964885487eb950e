// internal/rules/operators.go
package rules

import (
	"reflect"
	"strings"
)

/*
 * Operator taxonomy and comparison logic.
 *
 * The operator tokens are the persisted wire format of authored collections
 * and must not change: $eq, $ne, $in, $nin, $lt, $lte, $gt, $gte.
 *
 * Comparison follows document-store semantics so that in-process evaluation
 * and a server-side filter agree on every product:
 *   - eq/ne: numbers compare numerically across int/float; an array field
 *     matches $eq when any element (or the whole array) equals the operand
 *   - in/nin: $in matches when the field (or any array element) equals one
 *     of the operand values
 *   - lt/lte/gt/gte: type bracketed. Numbers compare with numbers, strings
 *     with strings; any other pairing never matches
 *   - missing fields: $eq null and $in [null] match, $ne and $nin match,
 *     ordering never matches
 *
 * Values should already be coerced via Coerce() before reaching Compare().
 */

// Operator is one of the eight comparison operators.
type Operator int

const (
	OpUnspecified Operator = iota
	OpEq
	OpNe
	OpIn
	OpNin
	OpLt
	OpLte
	OpGt
	OpGte
)

var operatorTokens = map[Operator]string{
	OpEq:  "$eq",
	OpNe:  "$ne",
	OpIn:  "$in",
	OpNin: "$nin",
	OpLt:  "$lt",
	OpLte: "$lte",
	OpGt:  "$gt",
	OpGte: "$gte",
}

var tokenOperators = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorTokens))
	for op, tok := range operatorTokens {
		m[tok] = op
	}
	return m
}()

// Tokens lists every persisted operator token in declaration order.
func Tokens() []string {
	return []string{"$eq", "$ne", "$in", "$nin", "$lt", "$lte", "$gt", "$gte"}
}

// ParseOperator maps a persisted token to its Operator.
// Returns false for empty or unknown tokens.
func ParseOperator(token string) (Operator, bool) {
	op, ok := tokenOperators[strings.TrimSpace(token)]
	return op, ok
}

// Token returns the persisted token for op, or "" for OpUnspecified.
func (op Operator) Token() string {
	return operatorTokens[op]
}

func (op Operator) String() string {
	if tok := op.Token(); tok != "" {
		return tok
	}
	return "unspecified"
}

// IsMembership reports whether op takes a list operand.
func (op Operator) IsMembership() bool {
	return op == OpIn || op == OpNin
}

// IsOrdering reports whether op is an ordering comparison.
func (op Operator) IsOrdering() bool {
	switch op {
	case OpLt, OpLte, OpGt, OpGte:
		return true
	default:
		return false
	}
}

// Compare applies op to a resolved document value against the coerced target.
// found is false when the field is absent from the document.
func Compare(op Operator, value any, found bool, target any) bool {
	switch op {
	case OpEq:
		return matchEqual(value, found, target)
	case OpNe:
		return !matchEqual(value, found, target)
	case OpIn:
		return matchIn(value, found, target)
	case OpNin:
		return !matchIn(value, found, target)
	case OpLt, OpLte, OpGt, OpGte:
		return matchOrdering(op, value, found, target)
	default:
		return false
	}
}

// matchEqual handles missing fields and array fields before scalar equality.
func matchEqual(value any, found bool, target any) bool {
	if !found || value == nil {
		return target == nil
	}
	if arr, ok := value.([]any); ok {
		for _, elem := range arr {
			if compareEqual(elem, target) {
				return true
			}
		}
	}
	return compareEqual(value, target)
}

// matchIn checks membership of the value, or any of its elements, in the target set.
func matchIn(value any, found bool, target any) bool {
	set, ok := target.([]any)
	if !ok {
		return false
	}
	for _, candidate := range set {
		if matchEqual(value, found, candidate) {
			return true
		}
	}
	return false
}

// matchOrdering applies ordering comparisons with type bracketing.
func matchOrdering(op Operator, value any, found bool, target any) bool {
	if !found || value == nil {
		return false
	}
	if arr, ok := value.([]any); ok {
		for _, elem := range arr {
			if matchOrdering(op, elem, true, target) {
				return true
			}
		}
		return false
	}
	cmp, ok := compareOrdered(value, target)
	if !ok {
		return false
	}
	switch op {
	case OpLt:
		return cmp < 0
	case OpLte:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGte:
		return cmp >= 0
	default:
		return false
	}
}

// compareEqual performs equality comparison with numeric type coercion.
// Handles float64/int/int64 mixing for JSON and BSON compatibility.
func compareEqual(a, b any) bool {
	if na, nb, ok := asNumbers(a, b); ok {
		return na == nb
	}
	if isComposite(a) || isComposite(b) {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

// compareOrdered performs three-way comparison within one type bracket.
// Returns false when the operands are not both numbers or both strings.
func compareOrdered(a, b any) (int, bool) {
	if na, nb, ok := asNumbers(a, b); ok {
		switch {
		case na < nb:
			return -1, true
		case na > nb:
			return 1, true
		default:
			return 0, true
		}
	}
	sa, oka := a.(string)
	sb, okb := b.(string)
	if oka && okb {
		return strings.Compare(sa, sb), true
	}
	return 0, false
}

// asNumbers attempts to convert both values to float64 for numeric comparison.
func asNumbers(a, b any) (float64, float64, bool) {
	na, oka := toFloat64(a)
	nb, okb := toFloat64(b)
	return na, nb, oka && okb
}

// toFloat64 converts value to float64 if it's a numeric type.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// isComposite reports values that cannot be compared with ==.
func isComposite(v any) bool {
	switch v.(type) {
	case []any, map[string]any:
		return true
	default:
		return false
	}
}
