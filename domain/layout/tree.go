package layout

import (
	"whiteboard/domain/core/entities"
	vo "whiteboard/domain/core/valueobjects"
)

// TreeItem is one visible row of the outline.
type TreeItem struct {
	Node       *entities.Node
	Depth      int
	Expandable bool
	Expanded   bool
}

// TreeView renders a collection as a nested outline. Expansion state is
// local to the view and never stored on the nodes.
type TreeView struct {
	expanded map[vo.NodeID]bool
}

// NewTreeView creates a view with every row collapsed
func NewTreeView() *TreeView {
	return &TreeView{expanded: make(map[vo.NodeID]bool)}
}

// Toggle flips the expansion of a row and returns the new state.
func (v *TreeView) Toggle(id vo.NodeID) bool {
	v.expanded[id] = !v.expanded[id]
	return v.expanded[id]
}

// SetExpanded sets the expansion of a row
func (v *TreeView) SetExpanded(id vo.NodeID, expanded bool) {
	if expanded {
		v.expanded[id] = true
		return
	}
	delete(v.expanded, id)
}

// IsExpanded reports whether a row is expanded
func (v *TreeView) IsExpanded(id vo.NodeID) bool {
	return v.expanded[id]
}

// Items lists the visible rows below root in display order, descending
// into expanded collections.
func (v *TreeView) Items(root *entities.Node) []TreeItem {
	items := []TreeItem{}
	if root == nil {
		return items
	}
	v.collect(root, 0, map[*entities.Node]bool{root: true}, &items)
	return items
}

func (v *TreeView) collect(parent *entities.Node, depth int, path map[*entities.Node]bool, items *[]TreeItem) {
	for _, child := range parent.Nodes() {
		item := TreeItem{
			Node:       child,
			Depth:      depth,
			Expandable: child.IsCollection(),
			Expanded:   child.IsCollection() && v.expanded[child.ID()],
		}
		*items = append(*items, item)

		if item.Expanded && !path[child] {
			path[child] = true
			v.collect(child, depth+1, path, items)
			delete(path, child)
		}
	}
}
