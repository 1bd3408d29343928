package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "whiteboard/domain/core/valueobjects"
	"whiteboard/domain/events"
	pkgerrors "whiteboard/pkg/errors"
)

func TestAddNodesPreservesOrder(t *testing.T) {
	c := newTestNode(t, vo.KindCollection, 0, 0, 800, 600)
	a := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	b := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	d := newTestNode(t, vo.KindText, 0, 0, 50, 50)

	require.NoError(t, c.AddNode(a))
	require.NoError(t, c.AddNodes(b, nil, d))

	assert.Equal(t, []*Node{a, b, d}, c.Nodes())
	assert.Equal(t, 1, c.IndexOf(b))
	assert.True(t, c.Contains(d))
}

func TestAddNodeRequiresCollection(t *testing.T) {
	text := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	other := newTestNode(t, vo.KindText, 0, 0, 50, 50)

	err := text.AddNode(other)
	assert.True(t, errors.Is(err, pkgerrors.ErrNotACollection))
	assert.Error(t, text.SetLayoutMode(vo.LayoutGrid))
}

func TestRemoveNodeSeversLinks(t *testing.T) {
	c := newTestNode(t, vo.KindCollection, 0, 0, 800, 600)
	a := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	b := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	d := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	require.NoError(t, c.AddNodes(a, b, d))

	a.LinkTo(b)
	a.LinkTo(d)

	assert.True(t, c.RemoveNode(a))

	assert.Empty(t, a.Links())
	assert.False(t, b.IsLinkedTo(a))
	assert.False(t, d.IsLinkedTo(a))
	assert.Equal(t, []*Node{b, d}, c.Nodes())

	// removing twice is a no-op
	assert.False(t, c.RemoveNode(a))
	assert.Equal(t, 2, c.NodeCount())
}

func TestRemoveCollectionDetachesChildren(t *testing.T) {
	root := newTestNode(t, vo.KindCollection, 0, 0, 800, 600)
	folder := newTestNode(t, vo.KindCollection, 0, 0, 400, 400)
	child := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	require.NoError(t, folder.AddNode(child))
	require.NoError(t, root.AddNode(folder))

	root.RemoveNode(folder)

	assert.Equal(t, []*Node{child}, folder.Nodes())
}

func TestDetachNodeKeepsLinks(t *testing.T) {
	c := newTestNode(t, vo.KindCollection, 0, 0, 800, 600)
	a := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	b := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	require.NoError(t, c.AddNodes(a, b))
	a.LinkTo(b)

	assert.True(t, c.DetachNode(a))
	assert.True(t, a.IsLinkedTo(b))
	assert.False(t, c.DetachNode(a))
}

func TestClearNodes(t *testing.T) {
	c := newTestNode(t, vo.KindCollection, 0, 0, 800, 600)
	a := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	b := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	outside := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	require.NoError(t, c.AddNodes(a, b))
	a.LinkTo(b)
	b.LinkTo(outside)

	assert.Equal(t, 2, c.ClearNodes())

	assert.Empty(t, c.Nodes())
	assert.Empty(t, a.Links())
	assert.Empty(t, b.Links())
	assert.Empty(t, outside.Links())
}

func TestCenterOn(t *testing.T) {
	c := newTestNode(t, vo.KindCollection, 0, 0, 800, 600)
	n := newTestNode(t, vo.KindText, 100, 200, 50, 50)
	require.NoError(t, c.AddNode(n))

	c.CenterOn(n)
	assert.Equal(t, 400.0-125, c.PanX())
	assert.Equal(t, 300.0-225, c.PanY())

	c.CenterOnViewport(n, 1000, 1000)
	assert.Equal(t, 500.0-125, c.PanX())
	assert.Equal(t, 500.0-225, c.PanY())
}

func TestPanAndLayoutMode(t *testing.T) {
	c := newTestNode(t, vo.KindCollection, 0, 0, 800, 600)
	c.MarkEventsAsCommitted()

	c.PanBy(10, -5)
	c.PanBy(1, 1)
	assert.Equal(t, 11.0, c.PanX())
	assert.Equal(t, -4.0, c.PanY())

	require.NoError(t, c.SetLayoutMode("TREE"))
	assert.Equal(t, vo.LayoutTree, c.LayoutMode())
	require.NoError(t, c.SetLayoutMode(vo.LayoutTree))
	assert.Error(t, c.SetLayoutMode("radial"))

	types := []string{}
	for _, e := range c.GetUncommittedEvents() {
		types = append(types, e.GetEventType())
	}
	assert.Equal(t, []string{events.TypeCollectionPanned, events.TypeCollectionPanned, events.TypeLayoutModeChanged}, types)
}

func TestNodesSnapshotIsStable(t *testing.T) {
	c := newTestNode(t, vo.KindCollection, 0, 0, 800, 600)
	a := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	b := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	require.NoError(t, c.AddNodes(a, b))

	snapshot := c.Nodes()
	c.RemoveNode(a)

	assert.Equal(t, []*Node{a, b}, snapshot)
}

func TestRemovedNodeEventsAreAbsorbed(t *testing.T) {
	c := newTestNode(t, vo.KindCollection, 0, 0, 800, 600)
	a := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	b := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	require.NoError(t, c.AddNodes(a, b))
	c.MarkEventsAsCommitted()
	a.MarkEventsAsCommitted()
	b.MarkEventsAsCommitted()

	a.LinkTo(b)
	c.RemoveNode(a)

	assert.Empty(t, a.GetUncommittedEvents())
	types := []string{}
	for _, e := range c.GetUncommittedEvents() {
		types = append(types, e.GetEventType())
	}
	assert.Equal(t, []string{events.TypeNodesLinked, events.TypeNodesUnlinked, events.TypeNodeRemoved}, types)
}

func TestIsAncestorOf(t *testing.T) {
	root := newTestNode(t, vo.KindCollection, 0, 0, 800, 600)
	mid := newTestNode(t, vo.KindCollection, 0, 0, 400, 400)
	comp := newTestNode(t, vo.KindComposite, 0, 0, 100, 100)
	leaf := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	require.NoError(t, comp.AddChild(leaf))
	require.NoError(t, mid.AddNode(comp))
	require.NoError(t, root.AddNode(mid))

	assert.True(t, root.IsAncestorOf(leaf))
	assert.True(t, mid.IsAncestorOf(comp))
	assert.False(t, leaf.IsAncestorOf(root))
	assert.False(t, mid.IsAncestorOf(mid))
	assert.False(t, root.IsAncestorOf(nil))
}
