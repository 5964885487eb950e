// internal/rules/cost.go
package rules

/*
 * Cost model for clause evaluation.
 *
 * A compiled predicate is a conjunction, so evaluation can stop at the first
 * clause that fails. Running cheap clauses first makes non-matching products
 * cheap to reject during materialization. Clauses keep their authored
 * position order for display and filter rendering; only the in-process
 * evaluation order uses cost.
 *
 * Cost formula: lookup_cost + operator_cost + per-value cost for lists.
 */

const (
	// Operator base costs
	CostEq  = 5
	CostNe  = 5
	CostLt  = 7
	CostLte = 7
	CostGt  = 7
	CostGte = 7
	CostIn  = 8
	CostNin = 8

	// Field lookup cost per path segment
	CostLookupPerSegment = 16

	// Added per operand value for $in/$nin
	CostPerListValue = 1
)

// CalculateClauseCost computes the evaluation cost of a single clause.
func CalculateClauseCost(path FieldPath, op Operator, operand any) int {
	cost := len(path)*CostLookupPerSegment + operatorCost(op)
	if list, ok := operand.([]any); ok {
		cost += len(list) * CostPerListValue
	}
	return cost
}

// operatorCost returns base cost for operator execution.
func operatorCost(op Operator) int {
	switch op {
	case OpEq:
		return CostEq
	case OpNe:
		return CostNe
	case OpLt, OpLte, OpGt, OpGte:
		return CostLt
	case OpIn, OpNin:
		return CostIn
	default:
		return CostEq
	}
}
