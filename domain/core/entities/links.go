package entities

import (
	"time"

	"whiteboard/domain/events"
)

// LinkTo adds a symmetric link between n and other. Linking a node to itself,
// to nil or to an already linked peer is a no-op.
func (n *Node) LinkTo(other *Node) {
	if other == nil || other == n || n.IsLinkedTo(other) {
		return
	}
	n.links = append(n.links, other)
	other.links = append(other.links, n)

	n.addEvent(events.NewNodesLinked(n.id, other.id, time.Now()))
}

// Unlink removes the link in both directions. No-op when absent.
func (n *Node) Unlink(other *Node) {
	if other == nil || !n.IsLinkedTo(other) {
		return
	}
	n.links = without(n.links, other)
	other.links = without(other.links, n)

	n.addEvent(events.NewNodesUnlinked(n.id, other.id, time.Now()))
}

// UnlinkAll severs every link of n.
func (n *Node) UnlinkAll() {
	for len(n.links) > 0 {
		n.Unlink(n.links[0])
	}
}

// Links returns a copy of the linked peers in link order
func (n *Node) Links() []*Node {
	out := make([]*Node, len(n.links))
	copy(out, n.links)
	return out
}

// LinkCount returns the number of peers
func (n *Node) LinkCount() int {
	return len(n.links)
}

// IsLinkedTo checks whether other is a peer of n
func (n *Node) IsLinkedTo(other *Node) bool {
	return indexOf(n.links, other) >= 0
}

func indexOf(list []*Node, target *Node) int {
	for i, item := range list {
		if item == target {
			return i
		}
	}
	return -1
}

// without returns list minus every occurrence of target. A new slice is
// built so snapshots handed out earlier stay intact.
func without(list []*Node, target *Node) []*Node {
	out := make([]*Node, 0, len(list))
	for _, item := range list {
		if item != target {
			out = append(out, item)
		}
	}
	return out
}
