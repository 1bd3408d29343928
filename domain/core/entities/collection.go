package entities

import (
	"fmt"
	"time"

	vo "whiteboard/domain/core/valueobjects"
	"whiteboard/domain/events"
	pkgerrors "whiteboard/pkg/errors"
)

type collectionState struct {
	nodes      []*Node
	panX, panY float64
	layoutMode vo.LayoutMode
}

// Nodes returns a snapshot of the children in display order. Mutating the
// collection afterwards does not affect the returned slice.
func (n *Node) Nodes() []*Node {
	if n.collection == nil {
		return nil
	}
	out := make([]*Node, len(n.collection.nodes))
	copy(out, n.collection.nodes)
	return out
}

// NodeCount returns the number of direct children
func (n *Node) NodeCount() int {
	if n.collection == nil {
		return 0
	}
	return len(n.collection.nodes)
}

// IndexOf returns the display index of child, or -1.
func (n *Node) IndexOf(child *Node) int {
	if n.collection == nil {
		return -1
	}
	return indexOf(n.collection.nodes, child)
}

// Contains reports whether child is a direct member of the collection or composite
func (n *Node) Contains(child *Node) bool {
	return indexOf(n.members(), child) >= 0
}

func (n *Node) PanX() float64 {
	if n.collection == nil {
		return 0
	}
	return n.collection.panX
}

func (n *Node) PanY() float64 {
	if n.collection == nil {
		return 0
	}
	return n.collection.panY
}

// LayoutMode returns the collection's layout mode; non-collections report freeform.
func (n *Node) LayoutMode() vo.LayoutMode {
	if n.collection == nil {
		return vo.LayoutFreeform
	}
	return n.collection.layoutMode
}

// SetLayoutMode switches how the collection arranges its children
func (n *Node) SetLayoutMode(mode vo.LayoutMode) error {
	if err := n.requireCollection(); err != nil {
		return err
	}
	mode, err := vo.ParseLayoutMode(string(mode))
	if err != nil {
		return err
	}
	if n.collection.layoutMode == mode {
		return nil
	}
	old := n.collection.layoutMode
	n.collection.layoutMode = mode
	n.addEvent(events.NewLayoutModeChanged(n.id, old, mode, time.Now()))
	return nil
}

// SetPan sets the camera offset of the collection
func (n *Node) SetPan(panX, panY float64) {
	if n.collection == nil {
		return
	}
	if n.collection.panX == panX && n.collection.panY == panY {
		return
	}
	n.collection.panX, n.collection.panY = panX, panY
	n.addEvent(events.NewCollectionPanned(n.id, panX, panY, time.Now()))
}

// PanBy adds the deltas to the camera offset; node coordinates are untouched.
func (n *Node) PanBy(dx, dy float64) {
	n.SetPan(n.PanX()+dx, n.PanY()+dy)
}

// AddNode appends child to the collection. No containment cycle check is
// done here; callers that restructure the tree must guard against it.
func (n *Node) AddNode(child *Node) error {
	return n.AddNodes(child)
}

// AddNodes appends children in order, skipping nil entries.
func (n *Node) AddNodes(children ...*Node) error {
	if err := n.requireCollection(); err != nil {
		return err
	}
	for _, child := range children {
		if child == nil {
			continue
		}
		n.collection.nodes = append(n.collection.nodes, child)
		n.addEvent(events.NewNodeAdded(n.id, child.id, time.Now()))
	}
	return nil
}

// RemoveNode severs every link of child and then removes it from the
// collection. Returns false, changing nothing, when child is not a member.
func (n *Node) RemoveNode(child *Node) bool {
	if n.IndexOf(child) < 0 {
		return false
	}
	child.UnlinkAll()
	n.detach(child, true)
	return true
}

// DetachNode removes child without touching its links.
func (n *Node) DetachNode(child *Node) bool {
	if n.IndexOf(child) < 0 {
		return false
	}
	n.detach(child, false)
	return true
}

func (n *Node) detach(child *Node, severed bool) {
	n.collection.nodes = without(n.collection.nodes, child)
	n.absorbEvents(child)
	n.addEvent(events.NewNodeRemoved(n.id, child.id, severed, time.Now()))
}

// ClearNodes severs the links of every child and empties the collection.
// Returns the number of removed children.
func (n *Node) ClearNodes() int {
	if n.collection == nil {
		return 0
	}
	removed := n.collection.nodes
	for _, child := range removed {
		child.UnlinkAll()
	}
	n.collection.nodes = []*Node{}
	for _, child := range removed {
		n.absorbEvents(child)
	}
	n.addEvent(events.NewContainerCleared(n.id, len(removed), time.Now()))
	return len(removed)
}

// CenterOn pans so the center of child lands in the middle of the
// collection's own width and height.
func (n *Node) CenterOn(child *Node) {
	n.CenterOnViewport(child, n.width, n.height)
}

// CenterOnViewport pans so the center of child lands in the middle of a
// viewport of the given size.
func (n *Node) CenterOnViewport(child *Node, viewportWidth, viewportHeight float64) {
	if n.collection == nil || child == nil {
		return
	}
	n.SetPan(PanToCenter(child, viewportWidth, viewportHeight))
}

// PanToCenter returns the pan offset placing child's center at the middle of
// a viewport of the given size.
func PanToCenter(child *Node, viewportWidth, viewportHeight float64) (float64, float64) {
	c := child.Bounds().Center()
	return viewportWidth/2 - c.X, viewportHeight/2 - c.Y
}

func (n *Node) requireCollection() error {
	if n.collection == nil {
		return fmt.Errorf("%s node %s: %w", n.kind, n.id, pkgerrors.ErrNotACollection)
	}
	return nil
}
