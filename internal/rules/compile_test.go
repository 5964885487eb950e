// internal/rules/compile_test.go
package rules

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

const (
	testCategoryA = "0190a4c2-7b1e-7c3a-9f00-000000000001"
	testCategoryB = "0190a4c2-7b1e-7c3a-9f00-000000000002"
)

func TestCompile_SimpleRule(t *testing.T) {
	pred := Compile([]types.Rule{
		{Attribute: "color", Operator: "$eq", Value: types.StringValue("red"), Position: 0},
	})

	if len(pred.Clauses) != 1 {
		t.Fatalf("len(Clauses) = %d, want 1", len(pred.Clauses))
	}
	if len(pred.Skipped) != 0 {
		t.Errorf("len(Skipped) = %d, want 0", len(pred.Skipped))
	}

	c := pred.Clauses[0]
	if c.Field != "attributes.color" {
		t.Errorf("Field = %q, want attributes.color", c.Field)
	}
	if c.Operator != OpEq {
		t.Errorf("Operator = %v, want $eq", c.Operator)
	}
	if c.Value != "red" {
		t.Errorf("Value = %#v, want red", c.Value)
	}
}

func TestCompile_EmptyRuleList(t *testing.T) {
	for _, rules := range [][]types.Rule{nil, {}} {
		pred := Compile(rules)
		if !pred.IsEmpty() {
			t.Errorf("IsEmpty() = false, want true for %v", rules)
		}
	}
}

func TestCompile_OrdersByPosition(t *testing.T) {
	pred := Compile([]types.Rule{
		{Attribute: "size", Operator: "$eq", Value: types.StringValue("L"), Position: 2},
		{Attribute: "color", Operator: "$eq", Value: types.StringValue("red"), Position: 0},
		{Attribute: "brand", Operator: "$eq", Value: types.StringValue("acme"), Position: 1},
		{Attribute: "material", Operator: "$eq", Value: types.StringValue("wool"), Position: 1},
	})

	var got []string
	for _, c := range pred.Clauses {
		got = append(got, c.Field)
	}
	want := []string{"attributes.color", "attributes.brand", "attributes.material", "attributes.size"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("clause order = %v, want %v", got, want)
	}
}

func TestCompile_SkipsMalformedRules(t *testing.T) {
	pred := Compile([]types.Rule{
		{Attribute: "color", Operator: "", Value: types.StringValue("red"), Position: 0},
		{Attribute: "", Operator: "$eq", Value: types.StringValue("red"), Position: 1},
		{Attribute: "color", Operator: "$regex", Value: types.StringValue("r.*"), Position: 2},
		{Attribute: "attributes..color", Operator: "$eq", Value: types.StringValue("red"), Position: 3},
		{Attribute: "size", Operator: "$eq", Value: types.StringValue("L"), Position: 4},
	})

	if len(pred.Clauses) != 1 {
		t.Fatalf("len(Clauses) = %d, want 1", len(pred.Clauses))
	}
	if pred.Clauses[0].Field != "attributes.size" {
		t.Errorf("remaining Field = %q, want attributes.size", pred.Clauses[0].Field)
	}
	if len(pred.Skipped) != 4 {
		t.Fatalf("len(Skipped) = %d, want 4", len(pred.Skipped))
	}
	for _, s := range pred.Skipped {
		if s.Reason != SkipMalformedRule {
			t.Errorf("Skipped[%d].Reason = %v, want %v", s.Position, s.Reason, SkipMalformedRule)
		}
	}
}

func TestCompile_CategoryIdentifiers(t *testing.T) {
	tests := []struct {
		name       string
		rule       types.Rule
		wantValue  any
		wantSkip   bool
		wantReason SkipReason
	}{
		{
			name:      "valid scalar",
			rule:      types.Rule{Attribute: "category_id", Operator: "$eq", Value: types.StringValue(testCategoryA)},
			wantValue: testCategoryA,
		},
		{
			name:       "invalid scalar",
			rule:       types.Rule{Attribute: "category_id", Operator: "$eq", Value: types.StringValue("electronics")},
			wantSkip:   true,
			wantReason: SkipInvalidIdentifier,
		},
		{
			name:      "list drops invalid members",
			rule:      types.Rule{Attribute: "category_id", Operator: "$in", Value: types.StringValue(testCategoryA + ", bogus, " + testCategoryB)},
			wantValue: []any{testCategoryA, testCategoryB},
		},
		{
			name:       "list with no valid members",
			rule:       types.Rule{Attribute: "category_id", Operator: "$nin", Value: types.StringsValue("x", "y")},
			wantSkip:   true,
			wantReason: SkipInvalidIdentifier,
		},
		{
			name:       "numeric value",
			rule:       types.Rule{Attribute: "category_id", Operator: "$eq", Value: types.NumberValue(7)},
			wantSkip:   true,
			wantReason: SkipInvalidIdentifier,
		},
		{
			name:      "other fields are not validated",
			rule:      types.Rule{Attribute: "brand_id", Operator: "$eq", Value: types.StringValue("not-a-uuid")},
			wantValue: "not-a-uuid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := Compile([]types.Rule{tt.rule})
			if tt.wantSkip {
				if len(pred.Clauses) != 0 {
					t.Fatalf("len(Clauses) = %d, want 0", len(pred.Clauses))
				}
				if len(pred.Skipped) != 1 || pred.Skipped[0].Reason != tt.wantReason {
					t.Fatalf("Skipped = %+v, want one with reason %v", pred.Skipped, tt.wantReason)
				}
				return
			}
			if len(pred.Clauses) != 1 {
				t.Fatalf("len(Clauses) = %d, want 1 (skipped %+v)", len(pred.Clauses), pred.Skipped)
			}
			if !reflect.DeepEqual(pred.Clauses[0].Value, tt.wantValue) {
				t.Errorf("Value = %#v, want %#v", pred.Clauses[0].Value, tt.wantValue)
			}
		})
	}
}

func TestCompile_LongInListIsKept(t *testing.T) {
	values := make([]string, types.MaxInOperatorValues+1)
	for i := range values {
		values[i] = fmt.Sprintf("sku-%d", i)
	}

	pred := Compile([]types.Rule{
		{Attribute: "sku", Operator: "$in", Value: types.StringsValue(values...)},
	})

	if len(pred.Clauses) != 1 {
		t.Fatalf("len(Clauses) = %d, want 1 (skipped %+v)", len(pred.Clauses), pred.Skipped)
	}
	if len(pred.Skipped) != 0 {
		t.Errorf("Skipped = %+v, want none", pred.Skipped)
	}
	if pred.Match(map[string]any{"sku": "unrelated"}) {
		t.Errorf("Match(unrelated sku) = true, want false")
	}
	if !pred.Match(map[string]any{"sku": "sku-256"}) {
		t.Errorf("Match(sku-256) = false, want true")
	}
}

func TestCompile_MembershipFormsConverge(t *testing.T) {
	comma := Compile([]types.Rule{{Attribute: "color", Operator: "$in", Value: types.StringValue("red, blue")}})
	jsonList := Compile([]types.Rule{{Attribute: "color", Operator: "$in", Value: types.StringValue(`["red","blue"]`)}})

	if !reflect.DeepEqual(comma.Clauses, jsonList.Clauses) {
		t.Errorf("comma form %+v != JSON form %+v", comma.Clauses, jsonList.Clauses)
	}
	if !reflect.DeepEqual(comma.Clauses[0].Value, []any{"red", "blue"}) {
		t.Errorf("Value = %#v, want [red blue]", comma.Clauses[0].Value)
	}
}

func TestCompile_EvaluationOrderByCost(t *testing.T) {
	pred := Compile([]types.Rule{
		{Attribute: "variants.specs.weight", Operator: "$lt", Value: types.NumberValue(2), Position: 0},
		{Attribute: "list_price", Operator: "$eq", Value: types.NumberValue(10), Position: 1},
	})

	if len(pred.evalOrder) != 2 {
		t.Fatalf("len(evalOrder) = %d, want 2", len(pred.evalOrder))
	}
	if pred.evalOrder[0] != 1 {
		t.Errorf("evalOrder = %v, want cheaper list_price clause first", pred.evalOrder)
	}
	// Authored order is preserved for display and filter rendering
	if pred.Clauses[0].Field != "variants.specs.weight" {
		t.Errorf("Clauses[0].Field = %q, want variants.specs.weight", pred.Clauses[0].Field)
	}
}

// Property-based test: compilation never fails and accounts for every rule
func TestCompile_PropertyAccountsForEveryRule(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	attrs := []string{"", "color", "category_id", "list_price", "a..b"}
	ops := append([]string{"", "$bogus"}, Tokens()...)

	properties.Property("clauses + skipped == rules", prop.ForAll(
		func(attrIdx, opIdx []int, value string) bool {
			n := len(attrIdx)
			if len(opIdx) < n {
				n = len(opIdx)
			}
			rules := make([]types.Rule, n)
			for i := 0; i < n; i++ {
				rules[i] = types.Rule{
					Attribute: attrs[attrIdx[i]],
					Operator:  ops[opIdx[i]],
					Value:     types.StringValue(value),
					Position:  i,
				}
			}
			pred := Compile(rules)
			return len(pred.Clauses)+len(pred.Skipped) == n && len(pred.evalOrder) == len(pred.Clauses)
		},
		gen.SliceOf(gen.IntRange(0, len(attrs)-1)),
		gen.SliceOf(gen.IntRange(0, len(ops)-1)),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
