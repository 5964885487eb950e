// internal/types/rules.go
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

/*
 * Domain types for collection rules.
 *
 * A Rule is one clause of a collection's membership predicate. Values arrive
 * loosely typed from authoring (string, number, boolean, null or an array of
 * those), so RuleValue is a tagged variant instead of a bare any. Coercion to
 * the operand an operator needs happens in internal/rules, never here.
 *
 * Key types:
 *   - Rule: attribute reference, operator token, raw value, position
 *   - RuleValue: Scalar | Array(Scalar...)
 *   - Scalar: String | Number | Bool | Null
 *
 * Wire format: Rule marshals to {"attribute","operator","value","position"}
 * with the value in its natural JSON form, which is also how rules are
 * persisted.
 */

// ValueKind tags the variant held by a Scalar.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Scalar is a single rule value.
type Scalar struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

// StringScalar returns a string scalar.
func StringScalar(s string) Scalar { return Scalar{Kind: KindString, Str: s} }

// NumberScalar returns a numeric scalar.
func NumberScalar(n float64) Scalar { return Scalar{Kind: KindNumber, Num: n} }

// BoolScalar returns a boolean scalar.
func BoolScalar(b bool) Scalar { return Scalar{Kind: KindBool, Bool: b} }

// Native returns the scalar as string, float64, bool or nil.
func (s Scalar) Native() any {
	switch s.Kind {
	case KindString:
		return s.Str
	case KindNumber:
		return s.Num
	case KindBool:
		return s.Bool
	default:
		return nil
	}
}

func (s Scalar) String() string {
	switch s.Kind {
	case KindString:
		return s.Str
	case KindNumber:
		return strconv.FormatFloat(s.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(s.Bool)
	default:
		return "null"
	}
}

// RuleValue is the raw, pre-coercion value of a rule.
// The zero value is a null scalar.
type RuleValue struct {
	IsArray bool
	Scalar  Scalar   // valid when !IsArray
	Items   []Scalar // valid when IsArray
}

// ScalarValue wraps a scalar.
func ScalarValue(s Scalar) RuleValue { return RuleValue{Scalar: s} }

// StringValue wraps a string.
func StringValue(s string) RuleValue { return ScalarValue(StringScalar(s)) }

// NumberValue wraps a number.
func NumberValue(n float64) RuleValue { return ScalarValue(NumberScalar(n)) }

// BoolValue wraps a boolean.
func BoolValue(b bool) RuleValue { return ScalarValue(BoolScalar(b)) }

// ArrayValue wraps a list of scalars.
func ArrayValue(items ...Scalar) RuleValue {
	if items == nil {
		items = []Scalar{}
	}
	return RuleValue{IsArray: true, Items: items}
}

// StringsValue wraps a list of strings.
func StringsValue(items ...string) RuleValue {
	scalars := make([]Scalar, len(items))
	for i, s := range items {
		scalars[i] = StringScalar(s)
	}
	return ArrayValue(scalars...)
}

// IsNull reports whether the value is a null scalar.
func (v RuleValue) IsNull() bool {
	return !v.IsArray && v.Scalar.Kind == KindNull
}

// Native returns the value as a scalar native or []any of natives.
func (v RuleValue) Native() any {
	if !v.IsArray {
		return v.Scalar.Native()
	}
	out := make([]any, len(v.Items))
	for i, item := range v.Items {
		out[i] = item.Native()
	}
	return out
}

// FromNative converts a decoded JSON/BSON value into a RuleValue.
// Accepts string, bool, nil, Go numeric types, and slices of those.
func FromNative(v any) (RuleValue, error) {
	if items, ok := asSlice(v); ok {
		scalars := make([]Scalar, 0, len(items))
		for _, item := range items {
			s, err := scalarFromNative(item)
			if err != nil {
				return RuleValue{}, err
			}
			scalars = append(scalars, s)
		}
		return ArrayValue(scalars...), nil
	}
	s, err := scalarFromNative(v)
	if err != nil {
		return RuleValue{}, err
	}
	return ScalarValue(s), nil
}

// asSlice accepts []any and named slice types such as bson.A.
func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func scalarFromNative(v any) (Scalar, error) {
	switch t := v.(type) {
	case nil:
		return Scalar{}, nil
	case string:
		return StringScalar(t), nil
	case bool:
		return BoolScalar(t), nil
	case float64:
		return NumberScalar(t), nil
	case float32:
		return NumberScalar(float64(t)), nil
	case int:
		return NumberScalar(float64(t)), nil
	case int32:
		return NumberScalar(float64(t)), nil
	case int64:
		return NumberScalar(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Scalar{}, fmt.Errorf("rule value %q: %w", t.String(), err)
		}
		return NumberScalar(f), nil
	default:
		return Scalar{}, fmt.Errorf("rule value must be a scalar or an array of scalars, got %T", v)
	}
}

// MarshalJSON implements json.Marshaler.
func (v RuleValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *RuleValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := FromNative(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Rule is one clause of a collection's membership predicate.
// Attribute is an attribute code or a literal product field name. Operator is
// one of the persisted tokens ($eq, $ne, $in, $nin, $lt, $lte, $gt, $gte).
type Rule struct {
	Attribute string    `json:"attribute"`
	Operator  string    `json:"operator"`
	Value     RuleValue `json:"value"`
	Position  int       `json:"position"`
}
