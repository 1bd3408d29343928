package entities

import (
	"fmt"
	"time"

	vo "whiteboard/domain/core/valueobjects"
	"whiteboard/domain/events"
	pkgerrors "whiteboard/pkg/errors"
)

type compositeState struct {
	children []*Node
}

// Children returns a snapshot of the stacked children
func (n *Node) Children() []*Node {
	if n.composite == nil {
		return nil
	}
	out := make([]*Node, len(n.composite.children))
	copy(out, n.composite.children)
	return out
}

// ChildCount returns the number of stacked children
func (n *Node) ChildCount() int {
	if n.composite == nil {
		return 0
	}
	return len(n.composite.children)
}

// ChildOfKind returns the first child of kind, or nil.
func (n *Node) ChildOfKind(kind vo.NodeKind) *Node {
	if n.composite == nil {
		return nil
	}
	for _, child := range n.composite.children {
		if child.kind == kind {
			return child
		}
	}
	return nil
}

// AddChild stacks child on the composite. On a scrapbook, a child whose kind
// owns a reserved slot first evicts the current occupant of that slot; the
// evicted node is destroyed and its links are severed.
func (n *Node) AddChild(child *Node) error {
	if n.composite == nil {
		return fmt.Errorf("%s node %s: %w", n.kind, n.id, pkgerrors.ErrNotAContainer)
	}
	if child == nil || indexOf(n.composite.children, child) >= 0 {
		return nil
	}

	if n.kind == vo.KindScrapbook && n.cfg.IsScrapbookSlot(child.kind) {
		for _, occupant := range n.Children() {
			if occupant.kind != child.kind {
				continue
			}
			n.RemoveChild(occupant)
			n.addEvent(events.NewScrapbookSlotEvicted(n.id, occupant.id, child.id, child.kind, time.Now()))
		}
	}

	n.composite.children = append(n.composite.children, child)
	n.addEvent(events.NewNodeAdded(n.id, child.id, time.Now()))
	return nil
}

// RemoveChild severs the child's links and removes it. Returns false when
// child is not stacked on n.
func (n *Node) RemoveChild(child *Node) bool {
	if n.composite == nil || indexOf(n.composite.children, child) < 0 {
		return false
	}
	child.UnlinkAll()
	n.composite.children = without(n.composite.children, child)
	n.absorbEvents(child)
	n.addEvent(events.NewNodeRemoved(n.id, child.id, true, time.Now()))
	return true
}
