package catalog

import (
	"sort"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/types"
)

// GroupNode is one attribute group in a category-scoped tree.
type GroupNode struct {
	ID         types.AttributeGroupID  `json:"id"`
	Code       string                  `json:"code"`
	Name       string                  `json:"name"`
	ParentID   *types.AttributeGroupID `json:"parent_id,omitempty"`
	GroupOrder int                     `json:"group_order"`
	Attributes []types.AttributeDetail `json:"attributes"`
	Children   []*GroupNode            `json:"children"`
}

// groupArena indexes a flat group list once for tree assembly.
type groupArena struct {
	groups   []types.AttributeGroup
	children map[int][]int // parent index -> child indexes, sorted
	roots    []int
	byID     map[types.AttributeGroupID]int
}

func newGroupArena(groups []types.AttributeGroup) *groupArena {
	a := &groupArena{
		groups:   groups,
		children: make(map[int][]int),
	}

	byID := make(map[types.AttributeGroupID]int, len(groups))
	for i, g := range groups {
		if _, dup := byID[g.ID]; !dup {
			byID[g.ID] = i
		}
	}

	for i, g := range groups {
		if byID[g.ID] != i {
			continue // duplicate id, first wins
		}
		if g.ParentID == nil {
			a.roots = append(a.roots, i)
			continue
		}
		parent, ok := byID[*g.ParentID]
		if !ok || parent == i {
			// Orphans and self-parented groups render as roots
			a.roots = append(a.roots, i)
			continue
		}
		a.children[parent] = append(a.children[parent], i)
	}

	a.byID = byID
	a.sortByOrder(a.roots)
	for _, kids := range a.children {
		a.sortByOrder(kids)
	}
	return a
}

// sortByOrder orders sibling indexes by GroupOrder; ties keep input order.
func (a *groupArena) sortByOrder(idx []int) {
	sort.SliceStable(idx, func(i, j int) bool {
		return a.groups[idx[i]].GroupOrder < a.groups[idx[j]].GroupOrder
	})
}

// BuildGroupTree assembles the group forest filtered to target.
//
// Each node keeps only the attributes of its own list that are in target and
// present in details (unknown ids are dropped). A node with no remaining
// attributes is kept only when some descendant qualifies. Groups caught in a
// parent cycle are unreachable from the roots; after the roots are assembled
// each group never visited becomes an extra root, in input order. Every root
// has a nil ParentID, including orphans whose parent no longer exists.
func BuildGroupTree(groups []types.AttributeGroup, details map[types.AttributeID]types.AttributeDetail, target map[types.AttributeID]struct{}) []*GroupNode {
	arena := newGroupArena(groups)
	visited := make(map[int]bool, len(groups))

	out := []*GroupNode{}
	addRoot := func(i int) {
		if node := arena.build(i, details, target, visited); node != nil {
			node.ParentID = nil
			out = append(out, node)
		}
	}
	for _, root := range arena.roots {
		addRoot(root)
	}
	for i, g := range groups {
		if arena.byID[g.ID] == i && !visited[i] {
			addRoot(i)
		}
	}
	return out
}

func (a *groupArena) build(i int, details map[types.AttributeID]types.AttributeDetail, target map[types.AttributeID]struct{}, visited map[int]bool) *GroupNode {
	if visited[i] {
		return nil
	}
	visited[i] = true

	g := a.groups[i]
	node := &GroupNode{
		ID:         g.ID,
		Code:       g.Code,
		Name:       g.Name,
		ParentID:   g.ParentID,
		GroupOrder: g.GroupOrder,
		Attributes: []types.AttributeDetail{},
		Children:   []*GroupNode{},
	}

	seen := make(map[types.AttributeID]bool, len(g.Attributes))
	for _, id := range g.Attributes {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := target[id]; !ok {
			continue
		}
		detail, ok := details[id]
		if !ok {
			continue
		}
		node.Attributes = append(node.Attributes, detail)
	}

	for _, child := range a.children[i] {
		if c := a.build(child, details, target, visited); c != nil {
			node.Children = append(node.Children, c)
		}
	}

	if len(node.Attributes) == 0 && len(node.Children) == 0 {
		return nil
	}
	return node
}
