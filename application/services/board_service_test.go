package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"whiteboard/domain/core/aggregates"
	vo "whiteboard/domain/core/valueobjects"
	"whiteboard/domain/events"
	pkgerrors "whiteboard/pkg/errors"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

func (p *recordingPublisher) PublishBatch(_ context.Context, evts []events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evts...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.GetEventType())
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

func newService(t *testing.T) (*BoardService, *recordingPublisher) {
	t.Helper()
	board, err := aggregates.NewBoard()
	require.NoError(t, err)
	pub := &recordingPublisher{}
	return NewBoardService(board, pub, nil, zap.NewNop()), pub
}

func createAt(t *testing.T, s *BoardService, parent vo.NodeID, kind vo.NodeKind, x, y, w, h float64) vo.NodeID {
	t.Helper()
	node, err := s.CreateNode(context.Background(), CreateNodeInput{
		ParentID: parent,
		Kind:     kind,
		Position: &vo.Point{X: x, Y: y},
		Size:     &vo.Size{Width: w, Height: h},
	})
	require.NoError(t, err)
	id, err := vo.NewNodeIDFromString(node.ID)
	require.NoError(t, err)
	return id
}

func TestCreateNodeDefaults(t *testing.T) {
	s, pub := newService(t)
	ctx := context.Background()

	node, err := s.CreateNode(ctx, CreateNodeInput{Kind: vo.KindWebsite})
	require.NoError(t, err)

	assert.Equal(t, "website", node.Kind)
	assert.Equal(t, "New Website Node", node.Title)
	assert.Equal(t, 500.0, node.Size.Width)
	assert.Equal(t, 300.0, node.Size.Height)

	cfg := s.cfg
	assert.GreaterOrEqual(t, node.Position.X, 0.0)
	assert.Less(t, node.Position.X, cfg.CanvasWidth/cfg.RandomLocationFactor)
	assert.GreaterOrEqual(t, node.Position.Y, 0.0)
	assert.Less(t, node.Position.Y, cfg.CanvasHeight/cfg.RandomLocationFactor)

	board := s.Board(ctx)
	assert.Equal(t, 1, board.NodeCount)
	require.Len(t, board.Root.Nodes, 1)
	assert.Equal(t, node.ID, board.Root.Nodes[0].ID)

	assert.Contains(t, pub.types(), events.TypeNodeCreated)
	assert.Contains(t, pub.types(), events.TypeNodeAdded)
}

func TestCreateNodeRejections(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	_, err := s.CreateNode(ctx, CreateNodeInput{Kind: vo.KindComposite})
	assert.True(t, errors.Is(err, pkgerrors.ErrCompositeViaForm))

	_, err = s.CreateNode(ctx, CreateNodeInput{Kind: vo.NodeKind("sticker")})
	assert.True(t, errors.Is(err, pkgerrors.ErrUnknownKind))

	text := createAt(t, s, vo.NodeID{}, vo.KindText, 0, 0, 100, 100)
	_, err = s.CreateNode(ctx, CreateNodeInput{ParentID: text, Kind: vo.KindText})
	assert.True(t, errors.Is(err, pkgerrors.ErrNotACollection))

	_, err = s.CreateNode(ctx, CreateNodeInput{ID: text, Kind: vo.KindText})
	assert.True(t, pkgerrors.IsConflict(err))

	scrapbook, err := s.CreateNode(ctx, CreateNodeInput{Kind: vo.KindScrapbook})
	require.NoError(t, err)
	assert.Equal(t, "My Scrapbook", scrapbook.Title)
}

func TestCreateNodeIntoNestedCollection(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	folder := createAt(t, s, vo.NodeID{}, vo.KindCollection, 0, 0, 400, 400)
	child := createAt(t, s, folder, vo.KindImage, 10, 10, 100, 100)

	node, err := s.GetNode(ctx, folder)
	require.NoError(t, err)
	require.Len(t, node.Nodes, 1)
	assert.Equal(t, child.String(), node.Nodes[0].ID)
	assert.Equal(t, 2, s.Board(ctx).NodeCount)
}

func TestLinkUnlinkAndRemove(t *testing.T) {
	s, pub := newService(t)
	ctx := context.Background()
	a := createAt(t, s, vo.NodeID{}, vo.KindText, 0, 0, 100, 100)
	b := createAt(t, s, vo.NodeID{}, vo.KindText, 200, 0, 100, 100)

	require.NoError(t, s.LinkNodes(ctx, a, b))
	require.NoError(t, s.LinkNodes(ctx, b, a))
	nodeA, err := s.GetNode(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []string{b.String()}, nodeA.Links)

	assert.True(t, pkgerrors.IsValidation(s.LinkNodes(ctx, a, a)))

	require.NoError(t, s.UnlinkNodes(ctx, b, a))
	nodeA, err = s.GetNode(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, nodeA.Links)

	require.NoError(t, s.LinkNodes(ctx, a, b))
	pub.reset()
	require.NoError(t, s.RemoveNode(ctx, a))
	nodeB, err := s.GetNode(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, nodeB.Links)
	assert.Contains(t, pub.types(), events.TypeNodeRemoved)

	_, err = s.GetNode(ctx, a)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.True(t, pkgerrors.IsNotFound(s.RemoveNode(ctx, a)))
	assert.True(t, errors.Is(s.RemoveNode(ctx, s.RootID()), pkgerrors.ErrRootRemoval))
	assert.NoError(t, s.Validate(ctx))
}

func TestResizeNodeClamps(t *testing.T) {
	s, _ := newService(t)
	a := createAt(t, s, vo.NodeID{}, vo.KindText, 0, 0, 100, 100)

	node, err := s.ResizeNode(context.Background(), a, 25, -500)
	require.NoError(t, err)
	assert.Equal(t, 125.0, node.Size.Width)
	assert.Equal(t, 50.0, node.Size.Height)
}

func TestClearCollection(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	a := createAt(t, s, vo.NodeID{}, vo.KindText, 0, 0, 100, 100)
	b := createAt(t, s, vo.NodeID{}, vo.KindText, 0, 0, 100, 100)
	require.NoError(t, s.LinkNodes(ctx, a, b))

	removed, err := s.ClearCollection(ctx, s.RootID())
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, s.Board(ctx).NodeCount)

	removed, err = s.ClearCollection(ctx, s.RootID())
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestDragScenarioThroughService(t *testing.T) {
	s, pub := newService(t)
	ctx := context.Background()
	root := s.RootID()
	a := createAt(t, s, root, vo.KindText, 0, 0, 50, 50)
	b := createAt(t, s, root, vo.KindText, 40, 0, 50, 50)

	state, err := s.DragStart(ctx, root, a)
	require.NoError(t, err)
	assert.Equal(t, "dragging", state.Mode)

	_, err = s.DragMove(ctx, root, a, 5, 5)
	require.NoError(t, err)
	state, err = s.DragMove(ctx, root, a, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 10.0, state.Position.X)
	assert.Equal(t, b.String(), state.DropTargetID)

	pub.reset()
	state, err = s.DragEnd(ctx, root, a, false)
	require.NoError(t, err)
	assert.Equal(t, "idle", state.Mode)
	require.NotNil(t, state.Merge)
	assert.Equal(t, "wrap", state.Merge.Strategy)
	assert.Equal(t, "Merged Collection", state.Merge.Container.Title)
	require.Len(t, state.Merge.Container.Nodes, 2)
	assert.Equal(t, b.String(), state.Merge.Container.Nodes[0].ID)
	assert.Equal(t, a.String(), state.Merge.Container.Nodes[1].ID)
	assert.Contains(t, pub.types(), events.TypeNodesMerged)

	board := s.Board(ctx)
	require.Len(t, board.Root.Nodes, 1)
	assert.Equal(t, state.Merge.Container.ID, board.Root.Nodes[0].ID)
	assert.NoError(t, s.Validate(ctx))
}

func TestDragErrors(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	root := s.RootID()
	a := createAt(t, s, root, vo.KindText, 0, 0, 50, 50)

	_, err := s.DragMove(ctx, root, a, 1, 1)
	assert.True(t, errors.Is(err, pkgerrors.ErrNotDragging))

	_, err = s.DragStart(ctx, a, a)
	assert.True(t, errors.Is(err, pkgerrors.ErrNotACollection))

	_, err = s.DragStart(ctx, root, vo.NewNodeID())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestMergeThroughService(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	root := s.RootID()
	a := createAt(t, s, root, vo.KindText, 0, 0, 100, 80)
	b := createAt(t, s, root, vo.KindVideo, 30, 20, 60, 120)

	merged, err := s.Merge(ctx, root, a, b, true)
	require.NoError(t, err)
	assert.Equal(t, "composite", merged.Strategy)
	assert.Equal(t, "composite", merged.Container.Kind)
	assert.Equal(t, 100.0, merged.Container.Size.Width)
	assert.Equal(t, 120.0, merged.Container.Size.Height)
	require.Len(t, merged.Container.Children, 2)

	_, err = s.Merge(ctx, root, a, a, false)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.NoError(t, s.Validate(ctx))
}

func TestLayoutOperations(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	folder := createAt(t, s, vo.NodeID{}, vo.KindCollection, 0, 0, 800, 400)
	for i := 0; i < 4; i++ {
		createAt(t, s, folder, vo.KindText, 999, 999, 300, 350)
	}

	arranged, err := s.ArrangeGrid(ctx, folder, 0, 0)
	require.NoError(t, err)
	require.Len(t, arranged.Nodes, 4)
	assert.InDelta(t, 180.0, arranged.Nodes[0].Size.Width, 1e-9)
	assert.InDelta(t, 200.0, arranged.Nodes[1].Position.X, 1e-9)
	assert.InDelta(t, 200.0, arranged.Nodes[1].Position.Y, 1e-9)

	require.NoError(t, s.SetLayoutMode(ctx, folder, vo.LayoutTree))
	node, err := s.GetNode(ctx, folder)
	require.NoError(t, err)
	assert.Equal(t, "tree", node.LayoutMode)

	assert.True(t, errors.Is(s.SetLayoutMode(ctx, folder, vo.LayoutMode("spiral")), pkgerrors.ErrUnknownLayoutMode))
}

func TestTreeOutline(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	root := s.RootID()
	folder := createAt(t, s, root, vo.KindCollection, 0, 0, 400, 400)
	createAt(t, s, folder, vo.KindText, 0, 0, 100, 100)
	createAt(t, s, root, vo.KindImage, 0, 0, 100, 100)

	items, err := s.Tree(ctx, root)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Expandable)
	assert.False(t, items[0].Expanded)

	items, err = s.ToggleTreeItem(ctx, root, folder)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 1, items[1].Depth)

	items, err = s.Tree(ctx, root)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestRemoveCollectionSeversOutsideLinks(t *testing.T) {
	s, pub := newService(t)
	ctx := context.Background()
	root := s.RootID()
	folder := createAt(t, s, root, vo.KindCollection, 0, 0, 400, 400)
	inner := createAt(t, s, folder, vo.KindText, 0, 0, 100, 100)
	outside := createAt(t, s, root, vo.KindText, 500, 500, 100, 100)
	require.NoError(t, s.LinkNodes(ctx, inner, outside))

	pub.reset()
	require.NoError(t, s.RemoveNode(ctx, folder))
	assert.NoError(t, s.Validate(ctx))
	assert.Contains(t, pub.types(), events.TypeNodesUnlinked)

	peer, err := s.GetNode(ctx, outside)
	require.NoError(t, err)
	assert.Empty(t, peer.Links)

	node, err := s.board.FindNode(outside)
	require.NoError(t, err)
	assert.Equal(t, 0, node.LinkCount())
}

func TestClearCollectionSeversNestedLinks(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	root := s.RootID()
	folder := createAt(t, s, root, vo.KindCollection, 0, 0, 400, 400)
	nested := createAt(t, s, folder, vo.KindCollection, 0, 0, 200, 200)
	deep := createAt(t, s, nested, vo.KindText, 0, 0, 50, 50)
	outside := createAt(t, s, root, vo.KindText, 500, 500, 100, 100)
	require.NoError(t, s.LinkNodes(ctx, outside, deep))

	_, err := s.ClearCollection(ctx, folder)
	require.NoError(t, err)
	assert.NoError(t, s.Validate(ctx))

	node, err := s.board.FindNode(outside)
	require.NoError(t, err)
	assert.Equal(t, 0, node.LinkCount())
}

func TestRemovingDropTargetEndsDragAsMove(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	root := s.RootID()
	a := createAt(t, s, root, vo.KindText, 0, 0, 50, 50)
	b := createAt(t, s, root, vo.KindText, 40, 0, 50, 50)

	_, err := s.DragStart(ctx, root, a)
	require.NoError(t, err)
	state, err := s.DragMove(ctx, root, a, 5, 5)
	require.NoError(t, err)
	require.Equal(t, b.String(), state.DropTargetID)

	require.NoError(t, s.RemoveNode(ctx, b))

	state, err = s.DragEnd(ctx, root, a, false)
	require.NoError(t, err)
	assert.Equal(t, "idle", state.Mode)
	assert.Nil(t, state.Merge)
	assert.Equal(t, 5.0, state.Position.X)

	board := s.Board(ctx)
	require.Len(t, board.Root.Nodes, 1)
	assert.Equal(t, a.String(), board.Root.Nodes[0].ID)
	assert.NoError(t, s.Validate(ctx))
}

func TestRemovingCollectionDropsNestedViewState(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	root := s.RootID()
	folder := createAt(t, s, root, vo.KindCollection, 0, 0, 400, 400)
	nested := createAt(t, s, folder, vo.KindCollection, 0, 0, 200, 200)
	leaf := createAt(t, s, nested, vo.KindText, 0, 0, 50, 50)

	_, err := s.Tree(ctx, nested)
	require.NoError(t, err)
	_, err = s.DragStart(ctx, nested, leaf)
	require.NoError(t, err)
	_, err = s.ToggleTreeItem(ctx, root, nested)
	require.NoError(t, err)
	require.Contains(t, s.controllers, nested)
	require.Contains(t, s.trees, nested)
	require.True(t, s.trees[root].IsExpanded(nested))

	require.NoError(t, s.RemoveNode(ctx, folder))
	assert.NotContains(t, s.controllers, nested)
	assert.NotContains(t, s.trees, nested)
	assert.False(t, s.trees[root].IsExpanded(nested))
}

func TestToggleTreeItemOutsideCollection(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	root := s.RootID()
	left := createAt(t, s, root, vo.KindCollection, 0, 0, 400, 400)
	right := createAt(t, s, root, vo.KindCollection, 500, 0, 400, 400)
	inRight := createAt(t, s, right, vo.KindCollection, 0, 0, 100, 100)

	_, err := s.ToggleTreeItem(ctx, left, inRight)
	assert.True(t, errors.Is(err, pkgerrors.ErrNodeNotInCollection))
	_, err = s.ToggleTreeItem(ctx, left, left)
	assert.True(t, errors.Is(err, pkgerrors.ErrNodeNotInCollection))

	items, err := s.ToggleTreeItem(ctx, root, inRight)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.True(t, s.trees[root].IsExpanded(inRight))
}

func TestCenterOnAndPan(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	root := s.RootID()
	a := createAt(t, s, root, vo.KindText, 500, 500, 100, 100)

	frames, err := s.CenterOn(ctx, root, a, 800, 600, 0)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, 400.0-550, frames[0].PanX)
	assert.Equal(t, 300.0-550, frames[0].PanY)

	pan, err := s.Pan(ctx, root, 10, -5, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, 400.0-550+10, pan.PanX)
	assert.Equal(t, 300.0-550-5, pan.PanY)

	trail, err := s.Trail(ctx, root)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, 110.0, trail[0].X)

	frames, err = s.CenterOn(ctx, root, a, 800, 600, 60)
	require.NoError(t, err)
	require.Greater(t, len(frames), 1)
	last := frames[len(frames)-1]
	assert.Equal(t, 400.0-550, last.PanX)
	assert.Equal(t, 300.0-550, last.PanY)

	other := createAt(t, s, vo.NodeID{}, vo.KindCollection, 0, 0, 100, 100)
	_, err = s.CenterOn(ctx, other, a, 800, 600, 0)
	assert.True(t, errors.Is(err, pkgerrors.ErrNodeNotInCollection))
}

func TestConcurrentOperations(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateNode(ctx, CreateNodeInput{Kind: vo.KindText})
			assert.NoError(t, err)
			_ = s.Board(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, s.Board(ctx).NodeCount)
	assert.NoError(t, s.Validate(ctx))
}
