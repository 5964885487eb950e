// internal/rules/coercion_test.go
package rules

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		op   Operator
		raw  types.RuleValue
		want any
	}{
		// Membership: three-tier fallback
		{
			name: "in array passes through",
			op:   OpIn,
			raw:  types.StringsValue("red", "blue"),
			want: []any{"red", "blue"},
		},
		{
			name: "in JSON array string",
			op:   OpIn,
			raw:  types.StringValue(`["red","blue"]`),
			want: []any{"red", "blue"},
		},
		{
			name: "in JSON array with numbers",
			op:   OpIn,
			raw:  types.StringValue(`[1, 2.5]`),
			want: []any{float64(1), 2.5},
		},
		{
			name: "in comma list trims segments",
			op:   OpIn,
			raw:  types.StringValue("red, blue"),
			want: []any{"red", "blue"},
		},
		{
			name: "in comma list drops empty segments",
			op:   OpIn,
			raw:  types.StringValue("red,, blue ,"),
			want: []any{"red", "blue"},
		},
		{
			name: "in bare token",
			op:   OpIn,
			raw:  types.StringValue("red"),
			want: []any{"red"},
		},
		{
			name: "in only commas falls back to raw",
			op:   OpIn,
			raw:  types.StringValue(" , "),
			want: []any{" , "},
		},
		{
			name: "in JSON object is not a list",
			op:   OpIn,
			raw:  types.StringValue(`{"a":1}`),
			want: []any{`{"a":1}`},
		},
		{
			name: "nin number wraps",
			op:   OpNin,
			raw:  types.NumberValue(3),
			want: []any{float64(3)},
		},
		{
			name: "in empty array",
			op:   OpIn,
			raw:  types.ArrayValue(),
			want: []any{},
		},

		// Ordering: numeric conversion with passthrough
		{
			name: "gte numeric string",
			op:   OpGte,
			raw:  types.StringValue("100"),
			want: float64(100),
		},
		{
			name: "lt padded decimal string",
			op:   OpLt,
			raw:  types.StringValue(" 19.99 "),
			want: 19.99,
		},
		{
			name: "gt number",
			op:   OpGt,
			raw:  types.NumberValue(5),
			want: float64(5),
		},
		{
			name: "lte non-numeric passes through",
			op:   OpLte,
			raw:  types.StringValue("medium"),
			want: "medium",
		},
		{
			name: "gte NaN passes through",
			op:   OpGte,
			raw:  types.StringValue("NaN"),
			want: "NaN",
		},
		{
			name: "lt infinity passes through",
			op:   OpLt,
			raw:  types.StringValue("Inf"),
			want: "Inf",
		},
		{
			name: "lte negative infinity passes through",
			op:   OpLte,
			raw:  types.StringValue("-infinity"),
			want: "-infinity",
		},
		{
			name: "gt empty string passes through",
			op:   OpGt,
			raw:  types.StringValue(""),
			want: "",
		},

		// Default: boolean literals
		{
			name: "eq true literal",
			op:   OpEq,
			raw:  types.StringValue("true"),
			want: true,
		},
		{
			name: "ne false literal",
			op:   OpNe,
			raw:  types.StringValue("false"),
			want: false,
		},
		{
			name: "eq capitalized literal is a string",
			op:   OpEq,
			raw:  types.StringValue("True"),
			want: "True",
		},
		{
			name: "eq numeric string stays a string",
			op:   OpEq,
			raw:  types.StringValue("42"),
			want: "42",
		},
		{
			name: "eq null",
			op:   OpEq,
			raw:  types.RuleValue{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coerce(tt.op, tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Coerce(%v, %v) = %#v, want %#v", tt.op, tt.raw.Native(), got, tt.want)
			}
		})
	}
}

func TestCoerce_MembershipFormsConverge(t *testing.T) {
	jsonForm := Coerce(OpIn, types.StringValue(`["red","blue"]`))
	commaForm := Coerce(OpIn, types.StringValue("red, blue"))
	arrayForm := Coerce(OpIn, types.StringsValue("red", "blue"))

	if !reflect.DeepEqual(jsonForm, commaForm) {
		t.Errorf("JSON form %#v != comma form %#v", jsonForm, commaForm)
	}
	if !reflect.DeepEqual(commaForm, arrayForm) {
		t.Errorf("comma form %#v != array form %#v", commaForm, arrayForm)
	}
}

// Property-based test: membership coercion always yields a list
func TestCoerce_PropertyMembershipAlwaysList(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("$in operand is always a non-nil list", prop.ForAll(
		func(s string) bool {
			list, ok := Coerce(OpIn, types.StringValue(s)).([]any)
			return ok && list != nil
		},
		gen.AnyString(),
	))

	properties.Property("comma lists split into trimmed non-empty tokens", prop.ForAll(
		func(tokens []string) bool {
			raw := ""
			for i, tok := range tokens {
				if i > 0 {
					raw += " , "
				}
				raw += tok
			}
			got := Coerce(OpIn, types.StringValue(raw)).([]any)
			if len(got) != len(tokens) {
				return false
			}
			for i, tok := range tokens {
				if got[i] != tok {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(3, gen.AlphaString().SuchThat(func(s string) bool { return s != "" })),
	))

	properties.TestingRun(t)
}

// Property-based test: ordering coercion of formatted numbers round-trips
func TestCoerce_PropertyOrderingNumeric(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("integer strings coerce to their value", prop.ForAll(
		func(n int) bool {
			got := Coerce(OpGte, types.StringValue(strconv.Itoa(n)))
			f, ok := got.(float64)
			return ok && f == float64(n)
		},
		gen.IntRange(-1000000, 1000000),
	))

	properties.TestingRun(t)
}
