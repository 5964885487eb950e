package catalog

import (
	"context"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// AttributeSet is a deduplicated list of attribute ids. Order is the category's
// own ids first, then each ancestor's, nearest first; callers must not depend
// on it beyond display.
type AttributeSet []types.AttributeID

// Contains reports whether id is in the set.
func (s AttributeSet) Contains(id types.AttributeID) bool {
	for _, a := range s {
		if a == id {
			return true
		}
	}
	return false
}

// Index returns the set as a lookup map.
func (s AttributeSet) Index() map[types.AttributeID]struct{} {
	idx := make(map[types.AttributeID]struct{}, len(s))
	for _, a := range s {
		idx[a] = struct{}{}
	}
	return idx
}

// Inherit unions the directly assigned attributes of every category in the
// lineage.
func Inherit(lineage Lineage) AttributeSet {
	seen := make(map[types.AttributeID]struct{})
	set := AttributeSet{}
	for _, c := range lineage.Chain() {
		for _, id := range c.Attributes {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			set = append(set, id)
		}
	}
	return set
}

// EffectiveAttributes resolves the attribute set a category inherits.
// Returns types.ErrCategoryNotFound for unknown ids and an empty set when
// nothing is assigned anywhere in the chain.
func (r *Resolver) EffectiveAttributes(ctx context.Context, id types.CategoryID) (AttributeSet, error) {
	lineage, err := r.Ancestry(ctx, id)
	if err != nil {
		return nil, err
	}
	return Inherit(lineage), nil
}

// RequestScope memoizes effective attribute sets for the lifetime of one
// request. Not safe for concurrent use; create one per request.
type RequestScope struct {
	resolver *Resolver
	sets     map[types.CategoryID]AttributeSet
}

// NewScope starts a per-request memo.
func (r *Resolver) NewScope() *RequestScope {
	return &RequestScope{
		resolver: r,
		sets:     make(map[types.CategoryID]AttributeSet),
	}
}

// EffectiveAttributes is Resolver.EffectiveAttributes, computed at most once per id.
func (s *RequestScope) EffectiveAttributes(ctx context.Context, id types.CategoryID) (AttributeSet, error) {
	if set, ok := s.sets[id]; ok {
		return set, nil
	}
	set, err := s.resolver.EffectiveAttributes(ctx, id)
	if err != nil {
		return nil, err
	}
	s.sets[id] = set
	return set, nil
}
