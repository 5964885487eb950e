// internal/rules/coercion.go
package rules

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

/*
 * Rule value coercion.
 *
 * Converts a raw authored RuleValue into the operand shape its operator needs.
 * Coercion never fails: a value that cannot be converted passes through and
 * the comparison decides (see operators.go type bracketing).
 *
 * Operator modes:
 *   - $in/$nin: always a []any. Arrays pass through. Strings try a JSON array
 *     first, then a comma list with trimmed segments, then [raw]. Rule
 *     authors paste any of the three forms. Other scalars become [scalar]
 *   - $lt/$lte/$gt/$gte: numeric strings become float64, anything else
 *     passes through unchanged
 *   - everything else: the literal strings "true"/"false" become booleans,
 *     all other values pass through unchanged
 */

// Coerce converts raw into the operand used when comparing with op.
func Coerce(op Operator, raw types.RuleValue) any {
	switch {
	case op.IsMembership():
		return coerceMembership(raw)
	case op.IsOrdering():
		return coerceOrdering(raw)
	default:
		return coerceDefault(raw)
	}
}

// coerceMembership normalizes a membership operand to a list.
func coerceMembership(raw types.RuleValue) []any {
	if raw.IsArray {
		return raw.Native().([]any)
	}
	if raw.Scalar.Kind != types.KindString {
		return []any{raw.Scalar.Native()}
	}
	return parseList(raw.Scalar.Str)
}

// parseList applies the JSON array, comma list, single token fallback chain.
func parseList(s string) []any {
	var arr []any
	if err := json.Unmarshal([]byte(s), &arr); err == nil && arr != nil {
		return arr
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make([]any, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
		if len(out) > 0 {
			return out
		}
	}

	return []any{s}
}

// coerceOrdering converts numeric strings to float64 for ordering comparison.
// Non-numeric values, including "NaN" and "Inf", pass through unchanged.
func coerceOrdering(raw types.RuleValue) any {
	if raw.IsArray || raw.Scalar.Kind != types.KindString {
		return raw.Native()
	}
	v := strings.TrimSpace(raw.Scalar.Str)
	if v == "" {
		return raw.Scalar.Str
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return raw.Scalar.Str
	}
	return f
}

// coerceDefault maps the literal strings "true" and "false" to booleans.
func coerceDefault(raw types.RuleValue) any {
	if !raw.IsArray && raw.Scalar.Kind == types.KindString {
		switch raw.Scalar.Str {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return raw.Native()
}
