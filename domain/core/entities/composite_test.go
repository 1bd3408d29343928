package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whiteboard/domain/config"
	vo "whiteboard/domain/core/valueobjects"
	"whiteboard/domain/events"
	pkgerrors "whiteboard/pkg/errors"
)

func TestCompositeAddRemoveChild(t *testing.T) {
	comp := newTestNode(t, vo.KindComposite, 0, 0, 300, 300)
	a := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	b := newTestNode(t, vo.KindVideo, 0, 0, 50, 50)
	require.NoError(t, comp.AddChild(a))
	require.NoError(t, comp.AddChild(b))
	require.NoError(t, comp.AddChild(a))

	assert.Equal(t, []*Node{a, b}, comp.Children())

	other := newTestNode(t, vo.KindVideo, 0, 0, 50, 50)
	comp.AddChild(other)
	assert.Equal(t, 3, comp.ChildCount(), "plain composites never evict")

	a.LinkTo(b)
	assert.True(t, comp.RemoveChild(a))
	assert.False(t, b.IsLinkedTo(a))
	assert.False(t, comp.RemoveChild(a))
}

func TestAddChildRequiresComposite(t *testing.T) {
	c := newTestNode(t, vo.KindCollection, 0, 0, 300, 300)
	a := newTestNode(t, vo.KindText, 0, 0, 50, 50)

	assert.True(t, errors.Is(c.AddChild(a), pkgerrors.ErrNotAContainer))
}

func TestScrapbookSingleSlot(t *testing.T) {
	sb := newTestNode(t, vo.KindScrapbook, 0, 0, 500, 500)
	w1 := newTestNode(t, vo.KindWebsite, 0, 0, 50, 50)
	w2 := newTestNode(t, vo.KindWebsite, 0, 0, 50, 50)
	txt := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	require.NoError(t, sb.AddChild(w1))
	require.NoError(t, sb.AddChild(txt))
	w1.LinkTo(txt)
	sb.MarkEventsAsCommitted()

	before := sb.ChildCount()
	require.NoError(t, sb.AddChild(w2))

	assert.Equal(t, before, sb.ChildCount())
	assert.Contains(t, sb.Children(), w2)
	assert.NotContains(t, sb.Children(), w1)
	assert.Same(t, w2, sb.ChildOfKind(vo.KindWebsite))
	assert.Empty(t, w1.Links())
	assert.Empty(t, txt.Links())

	var evicted *events.ScrapbookSlotEvicted
	for _, e := range sb.GetUncommittedEvents() {
		if ev, ok := e.(events.ScrapbookSlotEvicted); ok {
			evicted = &ev
		}
	}
	require.NotNil(t, evicted)
	assert.Equal(t, w1.ID(), evicted.EvictedID)
	assert.Equal(t, w2.ID(), evicted.IncomingID)
}

func TestScrapbookVideoSlotAndFreeKinds(t *testing.T) {
	sb := newTestNode(t, vo.KindScrapbook, 0, 0, 500, 500)
	v1 := newTestNode(t, vo.KindVideo, 0, 0, 50, 50)
	v2 := newTestNode(t, vo.KindVideo, 0, 0, 50, 50)
	t1 := newTestNode(t, vo.KindText, 0, 0, 50, 50)
	t2 := newTestNode(t, vo.KindText, 0, 0, 50, 50)

	for _, n := range []*Node{v1, t1, v2, t2} {
		require.NoError(t, sb.AddChild(n))
	}

	assert.Equal(t, []*Node{t1, v2, t2}, sb.Children())
}

func TestScrapbookConfiguredSlots(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.ScrapbookSlotKinds = []vo.NodeKind{vo.KindImage}

	sb, err := NewNodeWithConfig(vo.KindScrapbook, Initializer{}, cfg)
	require.NoError(t, err)
	i1 := newTestNode(t, vo.KindImage, 0, 0, 50, 50)
	i2 := newTestNode(t, vo.KindImage, 0, 0, 50, 50)
	w1 := newTestNode(t, vo.KindWebsite, 0, 0, 50, 50)
	w2 := newTestNode(t, vo.KindWebsite, 0, 0, 50, 50)

	for _, n := range []*Node{i1, w1, i2, w2} {
		require.NoError(t, sb.AddChild(n))
	}

	assert.Equal(t, []*Node{w1, i2, w2}, sb.Children())
}
