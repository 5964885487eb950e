// internal/rules/fieldpath.go
package rules

import (
	"errors"
	"strconv"
	"strings"
)

/*
 * Field path resolution for product documents.
 *
 * A rule's attribute reference is either a product field name (list_price,
 * category_id) or an attribute code, which lives under the product's
 * "attributes" map. Dotted references address nested fields directly.
 *
 * Resolution mirrors document-store dot notation:
 *   - object: key lookup
 *   - array + numeric segment: element by index
 *   - array + key segment: fan out over elements, collecting every element
 *     that resolves (an array of sub-documents matches if any element does)
 *
 * Depth is bounded by MaxPathDepth; deeper references are rejected at compile
 * time rather than walked.
 */

// MaxPathDepth bounds the number of segments in a field reference.
const MaxPathDepth = 8

// AttributesField is the product field holding attribute values by code.
const AttributesField = "attributes"

var (
	// ErrEmptyPath indicates a blank field reference.
	ErrEmptyPath = errors.New("field path is empty")

	// ErrPathTooDeep indicates a field reference exceeds MaxPathDepth.
	ErrPathTooDeep = errors.New("field path exceeds maximum depth")
)

// productFields are top-level product document fields addressable by name.
var productFields = map[string]bool{
	"id":          true,
	"name":        true,
	"sku":         true,
	"category_id": true,
	"list_price":  true,
	"status":      true,
	"created_at":  true,
	"attributes":  true,
}

// FieldPath is a parsed, dotted field reference.
type FieldPath []string

// FieldFor maps a rule's attribute reference to a document field reference.
// Product fields and dotted paths are used as-is; a bare attribute code
// resolves under attributes.
func FieldFor(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || productFields[ref] || strings.Contains(ref, ".") {
		return ref
	}
	return AttributesField + "." + ref
}

// ParseFieldPath splits a dotted reference into segments.
// Returns ErrEmptyPath for blank references or empty segments.
func ParseFieldPath(ref string) (FieldPath, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, ErrEmptyPath
	}
	segments := strings.Split(ref, ".")
	if len(segments) > MaxPathDepth {
		return nil, ErrPathTooDeep
	}
	for _, seg := range segments {
		if seg == "" {
			return nil, ErrEmptyPath
		}
	}
	return FieldPath(segments), nil
}

func (p FieldPath) String() string {
	return strings.Join(p, ".")
}

// ResolveResult contains the resolved value.
type ResolveResult struct {
	Value any  // resolved value (nil if not found)
	Found bool // true if path resolved to a value
}

// Resolve traverses doc following path segments.
func Resolve(path FieldPath, doc map[string]any) ResolveResult {
	if len(path) == 0 {
		return ResolveResult{}
	}
	return resolveRecursive(path, doc)
}

// resolveRecursive walks one segment per call. Arrays addressed by key fan
// out and return the list of element results.
func resolveRecursive(path FieldPath, current any) ResolveResult {
	if len(path) == 0 {
		return ResolveResult{Value: current, Found: true}
	}

	seg := path[0]
	remaining := path[1:]

	switch v := current.(type) {
	case map[string]any:
		val, ok := v[seg]
		if !ok {
			return ResolveResult{}
		}
		return resolveRecursive(remaining, val)

	case []any:
		if idx, err := strconv.Atoi(seg); err == nil {
			if idx < 0 || idx >= len(v) {
				return ResolveResult{}
			}
			return resolveRecursive(remaining, v[idx])
		}
		var collected []any
		for _, elem := range v {
			if _, isDoc := elem.(map[string]any); !isDoc {
				continue
			}
			res := resolveRecursive(path, elem)
			if !res.Found {
				continue
			}
			if arr, ok := res.Value.([]any); ok {
				collected = append(collected, arr...)
			} else {
				collected = append(collected, res.Value)
			}
		}
		if len(collected) == 0 {
			return ResolveResult{}
		}
		return ResolveResult{Value: collected, Found: true}

	default:
		// Scalar or null value but path continues
		return ResolveResult{}
	}
}
