// internal/rules/filter.go
package rules

import (
	"go.mongodb.org/mongo-driver/bson"
)

/*
 * Document-store filter rendering.
 *
 * Renders a Predicate as a query document for stores that evaluate
 * server-side (mongostore). The rendering is a direct transcription: each
 * clause becomes {field: {op: value}} with the persisted operator token, so
 * the server applies the same semantics Match() implements in process.
 *
 *   0 clauses -> {}                      (matches every document)
 *   1 clause  -> {field: {op: value}}
 *   n clauses -> {$and: [{...}, {...}]}  (repeated fields stay distinct)
 */

// idField is the document-store primary key field for the product id.
const idField = "_id"

// Filter renders p as a bson query document.
func (p *Predicate) Filter() bson.D {
	if p.IsEmpty() {
		return bson.D{}
	}
	if len(p.Clauses) == 1 {
		return p.Clauses[0].Filter()
	}
	conds := make(bson.A, 0, len(p.Clauses))
	for _, c := range p.Clauses {
		conds = append(conds, c.Filter())
	}
	return bson.D{{Key: "$and", Value: conds}}
}

// Filter renders a single clause.
func (c Clause) Filter() bson.D {
	field := c.Field
	if field == "id" {
		field = idField
	}
	value := c.Value
	if list, ok := value.([]any); ok {
		value = bson.A(list)
	}
	return bson.D{{Key: field, Value: bson.D{{Key: c.Operator.Token(), Value: value}}}}
}
