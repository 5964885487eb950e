// internal/rules/filter_test.go
package rules

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		rules []types.Rule
		want  bson.D
	}{
		{
			name:  "no rules",
			rules: nil,
			want:  bson.D{},
		},
		{
			name: "single clause",
			rules: []types.Rule{
				{Attribute: "list_price", Operator: "$gte", Value: types.StringValue("100")},
			},
			want: bson.D{{Key: "list_price", Value: bson.D{{Key: "$gte", Value: float64(100)}}}},
		},
		{
			name: "membership renders as array",
			rules: []types.Rule{
				{Attribute: "color", Operator: "$in", Value: types.StringValue("red, blue")},
			},
			want: bson.D{{Key: "attributes.color", Value: bson.D{{Key: "$in", Value: bson.A{"red", "blue"}}}}},
		},
		{
			name: "id maps to primary key",
			rules: []types.Rule{
				{Attribute: "id", Operator: "$ne", Value: types.StringValue("p-1")},
			},
			want: bson.D{{Key: "_id", Value: bson.D{{Key: "$ne", Value: "p-1"}}}},
		},
		{
			name: "conjunction keeps repeated fields",
			rules: []types.Rule{
				{Attribute: "list_price", Operator: "$lt", Value: types.NumberValue(200), Position: 1},
				{Attribute: "list_price", Operator: "$gte", Value: types.NumberValue(100), Position: 0},
				{Attribute: "status", Operator: "", Value: types.StringValue("active"), Position: 2},
			},
			want: bson.D{{Key: "$and", Value: bson.A{
				bson.D{{Key: "list_price", Value: bson.D{{Key: "$gte", Value: float64(100)}}}},
				bson.D{{Key: "list_price", Value: bson.D{{Key: "$lt", Value: float64(200)}}}},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compile(tt.rules).Filter()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngine_CompileLogsSkippedRules(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	engine := NewEngine(zap.New(core))

	pred := engine.Compile("c-1", []types.Rule{
		{Attribute: "color", Operator: "$eq", Value: types.StringValue("red"), Position: 0},
		{Attribute: "size", Operator: "", Position: 1},
	})

	if len(pred.Clauses) != 1 {
		t.Fatalf("len(Clauses) = %d, want 1", len(pred.Clauses))
	}

	entries := logs.FilterMessage("rule skipped").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d skip entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["reason"] != string(SkipMalformedRule) {
		t.Errorf("reason = %v, want %v", fields["reason"], SkipMalformedRule)
	}
	if fields["collection_id"] != "c-1" {
		t.Errorf("collection_id = %v, want c-1", fields["collection_id"])
	}
}

func TestNewEngine_NilLogger(t *testing.T) {
	pred := NewEngine(nil).Compile("c-1", []types.Rule{{Attribute: "x"}})
	if len(pred.Skipped) != 1 {
		t.Errorf("len(Skipped) = %d, want 1", len(pred.Skipped))
	}
}
