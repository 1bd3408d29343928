// Package layout positions the children of a collection: top-bar hit
// testing for freeform drops, the staggered grid, the tree outline and
// eased pan animation.
package layout

import (
	"whiteboard/domain/core/entities"
)

// IntersectsTopBar reports whether the header strips of a and b overlap.
// Each strip spans the node's width and topBarHeight from its top-left
// corner; touching edges do not count.
func IntersectsTopBar(a, b *entities.Node, topBarHeight float64) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Bounds().TopStrip(topBarHeight).Intersects(b.Bounds().TopStrip(topBarHeight))
}

// FindDropTarget returns the first sibling, in list order, whose top bar
// intersects dragged's. The caller passes a snapshot of the sibling list.
func FindDropTarget(dragged *entities.Node, siblings []*entities.Node, topBarHeight float64) *entities.Node {
	for _, s := range siblings {
		if s == dragged {
			continue
		}
		if IntersectsTopBar(dragged, s, topBarHeight) {
			return s
		}
	}
	return nil
}
