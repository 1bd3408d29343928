package interaction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whiteboard/domain/config"
	"whiteboard/domain/core/entities"
	vo "whiteboard/domain/core/valueobjects"
	"whiteboard/domain/services"
	pkgerrors "whiteboard/pkg/errors"
)

func node(t *testing.T, kind vo.NodeKind, x, y, w, h float64) *entities.Node {
	t.Helper()
	n, err := entities.NewNode(kind, entities.Initializer{
		Position: &vo.Point{X: x, Y: y},
		Size:     &vo.Size{Width: w, Height: h},
	})
	require.NoError(t, err)
	return n
}

func newController(t *testing.T, children ...*entities.Node) (*Controller, *entities.Node) {
	t.Helper()
	c := node(t, vo.KindCollection, 0, 0, 800, 600)
	require.NoError(t, c.AddNodes(children...))
	ctrl, err := NewController(c, services.NewMergeEngine(nil), nil)
	require.NoError(t, err)
	return ctrl, c
}

type failingMerger struct{ calls int }

func (m *failingMerger) MergeNodes(_, _ *entities.Node, _ bool, _ *entities.Node) (services.MergeResult, error) {
	m.calls++
	return services.MergeResult{}, pkgerrors.ErrSelfMerge
}

func TestDragMergeScenario(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 50, 50)
	b := node(t, vo.KindText, 40, 0, 50, 50)
	ctrl, c := newController(t, a, b)

	require.NoError(t, ctrl.OnDragStart(a))
	assert.Equal(t, ModeDragging, ctrl.Mode())
	assert.Nil(t, ctrl.DropTargetNode())

	require.NoError(t, ctrl.OnDrag(a, 5, 5))
	require.NoError(t, ctrl.OnDrag(a, 5, 5))
	assert.Equal(t, vo.Point{X: 10, Y: 10}, a.Position())
	assert.Same(t, b, ctrl.DropTargetNode())

	result, err := ctrl.OnDragEnd(a, false)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, services.StrategyWrap, result.Strategy)

	assert.Nil(t, ctrl.DraggingNode())
	assert.Nil(t, ctrl.DropTargetNode())
	assert.Equal(t, ModeIdle, ctrl.Mode())

	nodes := c.Nodes()
	require.Len(t, nodes, 1)
	wrapper := nodes[0]
	assert.Equal(t, vo.KindCollection, wrapper.Kind())
	assert.False(t, c.Contains(a))
	assert.False(t, c.Contains(b))
	assert.True(t, wrapper.Contains(a))
	assert.True(t, wrapper.Contains(b))
	assert.Equal(t, vo.Point{X: 40, Y: 0}, wrapper.Position())
	assert.Equal(t, vo.Point{X: -30, Y: 10}, a.Position())
	assert.Equal(t, vo.Point{X: 0, Y: 0}, b.Position())
}

func TestDragWithModifierBuildsComposite(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 50, 50)
	b := node(t, vo.KindVideo, 20, 0, 50, 50)
	ctrl, c := newController(t, a, b)

	require.NoError(t, ctrl.OnDragStart(a))
	require.NoError(t, ctrl.OnDrag(a, 1, 0))
	result, err := ctrl.OnDragEnd(a, true)
	require.NoError(t, err)

	assert.Equal(t, services.StrategyComposite, result.Strategy)
	assert.Equal(t, vo.KindComposite, c.Nodes()[0].Kind())
}

func TestDragWithoutTargetIsPlainMove(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 50, 50)
	b := node(t, vo.KindText, 400, 400, 50, 50)
	ctrl, c := newController(t, a, b)

	require.NoError(t, ctrl.OnDragStart(a))
	require.NoError(t, ctrl.OnDrag(a, 100, 0))
	result, err := ctrl.OnDragEnd(a, false)

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, []*entities.Node{a, b}, c.Nodes())
	assert.Equal(t, vo.Point{X: 100, Y: 0}, a.Position())
}

func TestDragTargetClearsWhenMovedAway(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 50, 50)
	b := node(t, vo.KindText, 30, 0, 50, 50)
	ctrl, _ := newController(t, a, b)

	require.NoError(t, ctrl.OnDragStart(a))
	require.NoError(t, ctrl.OnDrag(a, 1, 1))
	assert.Same(t, b, ctrl.DropTargetNode())
	require.NoError(t, ctrl.OnDrag(a, 0, 200))
	assert.Nil(t, ctrl.DropTargetNode())
}

func TestForgetDropTargetEndsAsPlainMove(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 50, 50)
	b := node(t, vo.KindText, 30, 0, 50, 50)
	ctrl, c := newController(t, a, b)

	require.NoError(t, ctrl.OnDragStart(a))
	require.NoError(t, ctrl.OnDrag(a, 1, 1))
	require.Same(t, b, ctrl.DropTargetNode())

	c.RemoveNode(b)
	ctrl.Forget(b)
	assert.Nil(t, ctrl.DropTargetNode())
	assert.Equal(t, ModeDragging, ctrl.Mode())

	result, err := ctrl.OnDragEnd(a, false)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, []*entities.Node{a}, c.Nodes())
}

func TestForgetDraggedNodeCancelsDrag(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 50, 50)
	ctrl, _ := newController(t, a)

	require.NoError(t, ctrl.OnDragStart(a))
	ctrl.Forget(a)
	assert.Equal(t, ModeIdle, ctrl.Mode())
	assert.Nil(t, ctrl.DraggingNode())

	ctrl.Forget(nil)
	assert.Equal(t, ModeIdle, ctrl.Mode())
}

func TestDragFirstMatchWins(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 50, 50)
	first := node(t, vo.KindText, 30, 0, 50, 50)
	second := node(t, vo.KindText, 10, 5, 50, 50)
	ctrl, _ := newController(t, a, first, second)

	require.NoError(t, ctrl.OnDragStart(a))
	require.NoError(t, ctrl.OnDrag(a, 1, 0))
	assert.Same(t, first, ctrl.DropTargetNode())
}

func TestNoDetectionOutsideFreeform(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 50, 50)
	b := node(t, vo.KindText, 40, 0, 50, 50)
	ctrl, c := newController(t, a, b)
	require.NoError(t, c.SetLayoutMode(vo.LayoutGrid))

	require.NoError(t, ctrl.OnDragStart(a))
	require.NoError(t, ctrl.OnDrag(a, 10, 10))
	assert.Equal(t, vo.Point{X: 10, Y: 10}, a.Position())
	assert.Nil(t, ctrl.DropTargetNode())

	result, err := ctrl.OnDragEnd(a, false)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, []*entities.Node{a, b}, c.Nodes())
}

func TestDragEndClearsStateOnMergeFailure(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 50, 50)
	b := node(t, vo.KindText, 40, 0, 50, 50)
	c := node(t, vo.KindCollection, 0, 0, 800, 600)
	require.NoError(t, c.AddNodes(a, b))
	merger := &failingMerger{}
	ctrl, err := NewController(c, merger, nil)
	require.NoError(t, err)

	require.NoError(t, ctrl.OnDragStart(a))
	require.NoError(t, ctrl.OnDrag(a, 1, 0))
	_, err = ctrl.OnDragEnd(a, false)

	assert.Error(t, err)
	assert.Equal(t, 1, merger.calls)
	assert.Nil(t, ctrl.DraggingNode())
	assert.Nil(t, ctrl.DropTargetNode())
	assert.Equal(t, ModeIdle, ctrl.Mode())
}

func TestDragProtocolErrors(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 50, 50)
	b := node(t, vo.KindText, 100, 0, 50, 50)
	stray := node(t, vo.KindText, 0, 0, 50, 50)
	ctrl, _ := newController(t, a, b)

	assert.True(t, errors.Is(ctrl.OnDrag(a, 1, 1), pkgerrors.ErrNotDragging))
	_, err := ctrl.OnDragEnd(a, false)
	assert.True(t, errors.Is(err, pkgerrors.ErrNotDragging))
	assert.True(t, errors.Is(ctrl.OnDragStart(stray), pkgerrors.ErrNodeNotInCollection))

	require.NoError(t, ctrl.OnDragStart(a))
	assert.True(t, errors.Is(ctrl.OnDrag(b, 1, 1), pkgerrors.ErrNotDragging))
}

func TestPanningSession(t *testing.T) {
	a := node(t, vo.KindText, 10, 20, 50, 50)
	ctrl, c := newController(t, a)

	assert.False(t, ctrl.OnPointerMove(PointerEvent{MovementX: 5}))

	require.NoError(t, ctrl.OnPointerDown(PointerEvent{ClientX: 100, ClientY: 100}))
	assert.Equal(t, ModePanning, ctrl.Mode())
	assert.True(t, ctrl.OnPointerMove(PointerEvent{ClientX: 105, ClientY: 98, MovementX: 5, MovementY: -2}))
	assert.True(t, ctrl.OnPointerMove(PointerEvent{ClientX: 110, ClientY: 98, MovementX: 5}))
	ctrl.OnPointerUp()

	assert.Equal(t, 10.0, c.PanX())
	assert.Equal(t, -2.0, c.PanY())
	assert.Equal(t, vo.Point{X: 10, Y: 20}, a.Position())
	assert.Equal(t, 2, ctrl.Trail().Len())
	assert.Equal(t, ModeIdle, ctrl.Mode())

	assert.False(t, ctrl.OnPointerMove(PointerEvent{MovementX: 5}))
	assert.Equal(t, 10.0, c.PanX())
}

func TestPanAndDragAreExclusive(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 50, 50)
	ctrl, _ := newController(t, a)

	require.NoError(t, ctrl.OnDragStart(a))
	assert.True(t, errors.Is(ctrl.OnPointerDown(PointerEvent{}), pkgerrors.ErrInteractionBusy))
	_, err := ctrl.OnDragEnd(a, false)
	require.NoError(t, err)

	require.NoError(t, ctrl.OnPointerDown(PointerEvent{}))
	assert.True(t, errors.Is(ctrl.OnDragStart(a), pkgerrors.ErrInteractionBusy))
}

func TestResizeClampsToMinimum(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 100, 100)
	ctrl, _ := newController(t, a)

	require.NoError(t, ctrl.Resize(a, 20, -80))
	assert.Equal(t, vo.Size{Width: 120, Height: 50}, a.Size())
	assert.Error(t, ctrl.Resize(node(t, vo.KindText, 0, 0, 50, 50), 1, 1))
}

func TestFollowLinkCentersNode(t *testing.T) {
	a := node(t, vo.KindText, 500, 500, 100, 100)
	b := node(t, vo.KindText, 0, 0, 100, 100)
	ctrl, c := newController(t, a, b)

	anim, err := ctrl.FollowLink(a, 800, 600)
	require.NoError(t, err)
	for i := 0; i < 100 && !anim.Done; i++ {
		anim.Update(0.05)
	}

	assert.True(t, anim.Done)
	assert.Equal(t, 400.0-550, c.PanX())
	assert.Equal(t, 300.0-550, c.PanY())
}

func TestLinkCandidates(t *testing.T) {
	a := node(t, vo.KindText, 0, 0, 50, 50)
	b := node(t, vo.KindText, 0, 0, 50, 50)
	d := node(t, vo.KindText, 0, 0, 50, 50)
	ctrl, _ := newController(t, a, b, d)

	assert.Equal(t, []*entities.Node{b, d}, ctrl.LinkCandidates(a))
}

func TestNewControllerRequiresCollection(t *testing.T) {
	_, err := NewController(node(t, vo.KindText, 0, 0, 50, 50), nil, nil)
	assert.True(t, errors.Is(err, pkgerrors.ErrNotACollection))

	cfg := config.DefaultDomainConfig()
	cfg.MouseTrailMaxPoints = 3
	ctrl, err := NewController(node(t, vo.KindCollection, 0, 0, 50, 50), nil, cfg)
	require.NoError(t, err)
	require.NoError(t, ctrl.OnPointerDown(PointerEvent{}))
	for i := 0; i < 10; i++ {
		ctrl.OnPointerMove(PointerEvent{ClientX: float64(i)})
	}
	points := ctrl.Trail().Points()
	require.Len(t, points, 3)
	assert.Equal(t, 7.0, points[0].X)
	assert.Equal(t, 9.0, points[2].X)
}
