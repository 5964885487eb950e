// internal/rules/operators_test.go
package rules

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParseOperator(t *testing.T) {
	for _, tok := range Tokens() {
		op, ok := ParseOperator(tok)
		if !ok {
			t.Fatalf("ParseOperator(%q) ok = false, want true", tok)
		}
		if op.Token() != tok {
			t.Errorf("Token() = %q, want %q", op.Token(), tok)
		}
	}

	for _, tok := range []string{"", "eq", "$EQ", "$regex", "$exists"} {
		if _, ok := ParseOperator(tok); ok {
			t.Errorf("ParseOperator(%q) ok = true, want false", tok)
		}
	}

	if op, ok := ParseOperator(" $gte "); !ok || op != OpGte {
		t.Errorf("ParseOperator(\" $gte \") = %v, %v, want $gte, true", op, ok)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name   string
		op     Operator
		value  any
		found  bool
		target any
		want   bool
	}{
		// Equality
		{"eq string", OpEq, "red", true, "red", true},
		{"eq string mismatch", OpEq, "red", true, "blue", false},
		{"eq int vs float", OpEq, int64(100), true, float64(100), true},
		{"eq bool", OpEq, true, true, true, true},
		{"eq number vs numeric string", OpEq, float64(42), true, "42", false},
		{"eq array element", OpEq, []any{"red", "blue"}, true, "blue", true},
		{"eq whole array", OpEq, []any{"red", "blue"}, true, []any{"red", "blue"}, true},
		{"eq missing vs null", OpEq, nil, false, nil, true},
		{"eq missing vs value", OpEq, nil, false, "red", false},
		{"eq null vs null", OpEq, nil, true, nil, true},
		{"ne string", OpNe, "red", true, "blue", true},
		{"ne missing", OpNe, nil, false, "red", true},
		{"ne array containing value", OpNe, []any{"red"}, true, "red", false},

		// Membership
		{"in hit", OpIn, "red", true, []any{"red", "blue"}, true},
		{"in miss", OpIn, "green", true, []any{"red", "blue"}, false},
		{"in numeric", OpIn, float64(2), true, []any{float64(1), float64(2)}, true},
		{"in array field overlap", OpIn, []any{"x", "blue"}, true, []any{"red", "blue"}, true},
		{"in missing with null member", OpIn, nil, false, []any{nil}, true},
		{"in missing", OpIn, nil, false, []any{"red"}, false},
		{"in empty set", OpIn, "red", true, []any{}, false},
		{"in non-list target", OpIn, "red", true, "red", false},
		{"nin hit", OpNin, "green", true, []any{"red", "blue"}, true},
		{"nin miss", OpNin, "red", true, []any{"red", "blue"}, false},
		{"nin missing", OpNin, nil, false, []any{"red"}, true},

		// Ordering
		{"gte equal", OpGte, float64(100), true, float64(100), true},
		{"gte above", OpGte, float64(150), true, float64(100), true},
		{"gte below", OpGte, float64(99.5), true, float64(100), false},
		{"gt int value", OpGt, int64(101), true, float64(100), true},
		{"lt", OpLt, float64(5), true, float64(10), true},
		{"lte", OpLte, float64(10), true, float64(10), true},
		{"gte numeric string value", OpGte, "150", true, float64(100), false},
		{"gte non-numeric string value", OpGte, "N/A", true, float64(100), false},
		{"gt strings compare lexically", OpGt, "medium", true, "large", true},
		{"lt strings compare lexically", OpLt, "9", true, "10", false},
		{"gte bool never matches", OpGte, true, true, float64(0), false},
		{"gte missing", OpGte, nil, false, float64(0), false},
		{"lt null", OpLt, nil, true, float64(10), false},
		{"gt array any element", OpGt, []any{float64(1), float64(20)}, true, float64(10), true},
		{"gt array no element", OpGt, []any{float64(1), float64(2)}, true, float64(10), false},

		{"unspecified", OpUnspecified, "red", true, "red", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.op, tt.value, tt.found, tt.target)
			if got != tt.want {
				t.Errorf("Compare(%v, %#v, %v, %#v) = %v, want %v", tt.op, tt.value, tt.found, tt.target, got, tt.want)
			}
		})
	}
}

// Property-based test: negated operators are exact complements
func TestCompare_PropertyComplements(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("$ne is the complement of $eq", prop.ForAll(
		func(a, b int, found bool) bool {
			value, target := float64(a), float64(b)
			return Compare(OpEq, value, found, target) != Compare(OpNe, value, found, target)
		},
		gen.IntRange(-5, 5),
		gen.IntRange(-5, 5),
		gen.Bool(),
	))

	properties.Property("$nin is the complement of $in", prop.ForAll(
		func(a int, set []int) bool {
			target := make([]any, len(set))
			for i, v := range set {
				target[i] = float64(v)
			}
			return Compare(OpIn, float64(a), true, target) != Compare(OpNin, float64(a), true, target)
		},
		gen.IntRange(-5, 5),
		gen.SliceOf(gen.IntRange(-5, 5)),
	))

	properties.Property("$lt and $gte partition numbers", prop.ForAll(
		func(a, b float64) bool {
			return Compare(OpLt, a, true, b) != Compare(OpGte, a, true, b)
		},
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}
