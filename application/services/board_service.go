package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"whiteboard/application/dto"
	"whiteboard/application/ports"
	"whiteboard/domain/config"
	"whiteboard/domain/core/aggregates"
	"whiteboard/domain/core/entities"
	"whiteboard/domain/core/schema"
	vo "whiteboard/domain/core/valueobjects"
	"whiteboard/domain/events"
	"whiteboard/domain/interaction"
	"whiteboard/domain/layout"
	domainservices "whiteboard/domain/services"
	pkgerrors "whiteboard/pkg/errors"

	"go.uber.org/zap"
)

// maxAnimationFrames bounds the keyframes produced for one eased pan.
const maxAnimationFrames = 600

// CreateNodeInput carries the attributes of a node created through the form path
type CreateNodeInput struct {
	// ID preset; generated when zero
	ID vo.NodeID
	// ParentID of the receiving collection; the root when zero
	ParentID vo.NodeID
	Kind     vo.NodeKind
	Position *vo.Point
	Size     *vo.Size
	Fields   map[string]string
}

// BoardService is the single entry point to a board for concurrent callers.
// Every operation runs under one lock; the domain model itself never locks.
// Events raised by an operation are drained and published once it finishes.
type BoardService struct {
	mu sync.Mutex

	board       *aggregates.Board
	cfg         *config.DomainConfig
	engine      *domainservices.MergeEngine
	controllers map[vo.NodeID]*interaction.Controller
	trees       map[vo.NodeID]*layout.TreeView
	rng         *rand.Rand

	publisher ports.EventPublisher
	metrics   ports.MetricsRecorder
	logger    *zap.Logger
}

// NewBoardService creates a service around board. publisher and metrics may be nil.
func NewBoardService(
	board *aggregates.Board,
	publisher ports.EventPublisher,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *BoardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &BoardService{
		board:       board,
		cfg:         board.Config(),
		engine:      domainservices.NewMergeEngine(board.Config()),
		controllers: make(map[vo.NodeID]*interaction.Controller),
		trees:       make(map[vo.NodeID]*layout.TreeView),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// RootID returns the id of the board's root collection
func (s *BoardService) RootID() vo.NodeID {
	return s.board.Root().ID()
}

// Board returns a snapshot of the whole board
func (s *BoardService) Board(ctx context.Context) dto.BoardDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	return dto.BoardDTO{
		Root:      dto.NewNodeDTO(s.board.Root()),
		NodeCount: s.board.NodeCount(),
		CreatedAt: s.board.CreatedAt().Format(time.RFC3339),
	}
}

// GetNode returns a snapshot of one node and its contents
func (s *BoardService) GetNode(ctx context.Context, id vo.NodeID) (dto.NodeDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, err := s.board.FindNode(id)
	if err != nil {
		return dto.NodeDTO{}, err
	}
	return dto.NewNodeDTO(node), nil
}

// Schema returns the creation form of kind
func (s *BoardService) Schema(kind vo.NodeKind) []dto.FieldDTO {
	return dto.NewFieldDTOs(schema.FieldDefinitions(kind))
}

// Validate checks the structural invariants of the board
func (s *BoardService) Validate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Validate()
}

// CreateNode builds a node from form input and appends it to a collection.
// Nodes without a position land at a random spot in the visible top-left
// region of the collection.
func (s *BoardService) CreateNode(ctx context.Context, in CreateNodeInput) (dto.NodeDTO, error) {
	var created dto.NodeDTO
	err := s.execute(ctx, "create_node", func() error {
		if in.Kind == vo.KindComposite {
			return fmt.Errorf("create node: %w", pkgerrors.ErrCompositeViaForm)
		}

		parent, err := s.collection(in.ParentID)
		if err != nil {
			return err
		}
		if !in.ID.IsZero() {
			if _, err := s.board.FindNode(in.ID); err == nil {
				return pkgerrors.NewConflictError(fmt.Sprintf("node %s already exists", in.ID))
			}
		}

		position := in.Position
		if position == nil {
			position = s.randomPosition(parent)
		}

		node, err := entities.NewNodeWithConfig(in.Kind, entities.Initializer{
			ID:       in.ID,
			Position: position,
			Size:     in.Size,
			Fields:   in.Fields,
		}, s.cfg)
		if err != nil {
			return err
		}
		if err := parent.AddNode(node); err != nil {
			return err
		}
		if parent.LayoutMode() == vo.LayoutGrid {
			if err := layout.ArrangeInGrid(parent, parent.Width(), parent.Height()); err != nil {
				return err
			}
		}

		s.metrics.RecordNodeCreated(node.Kind().String())
		s.logger.Debug("Node created",
			zap.String("nodeID", node.ID().String()),
			zap.String("kind", node.Kind().String()),
			zap.String("parentID", parent.ID().String()),
		)
		created = dto.NewNodeDTO(node)
		return nil
	})
	return created, err
}

func (s *BoardService) randomPosition(parent *entities.Node) *vo.Point {
	factor := s.cfg.RandomLocationFactor
	if factor <= 0 {
		factor = 1
	}
	return &vo.Point{
		X: s.rng.Float64()*parent.Width()/factor - parent.PanX(),
		Y: s.rng.Float64()*parent.Height()/factor - parent.PanY(),
	}
}

// RemoveNode destroys a node: its links are severed and it leaves its
// container. Removing a collection detaches its members along with it.
func (s *BoardService) RemoveNode(ctx context.Context, id vo.NodeID) error {
	return s.execute(ctx, "remove_node", func() error {
		if id.Equals(s.board.Root().ID()) {
			return pkgerrors.ErrRootRemoval
		}
		node, err := s.board.FindNode(id)
		if err != nil {
			return err
		}
		parent, err := s.board.FindParent(id)
		if err != nil {
			return err
		}

		s.releaseSubtree(node)
		if parent.IsCollection() {
			parent.RemoveNode(node)
		} else {
			parent.RemoveChild(node)
		}

		s.metrics.RecordNodesRemoved(1)
		return nil
	})
}

// LinkNodes links two nodes anywhere on the board
func (s *BoardService) LinkNodes(ctx context.Context, id, peerID vo.NodeID) error {
	return s.execute(ctx, "link_nodes", func() error {
		node, peer, err := s.pair(id, peerID)
		if err != nil {
			return err
		}
		if node == peer {
			return pkgerrors.NewValidationError("a node cannot be linked to itself")
		}
		if !node.IsLinkedTo(peer) {
			node.LinkTo(peer)
			s.metrics.RecordLinkChange(true)
		}
		return nil
	})
}

// UnlinkNodes removes the link between two nodes, if any
func (s *BoardService) UnlinkNodes(ctx context.Context, id, peerID vo.NodeID) error {
	return s.execute(ctx, "unlink_nodes", func() error {
		node, peer, err := s.pair(id, peerID)
		if err != nil {
			return err
		}
		if node.IsLinkedTo(peer) {
			node.Unlink(peer)
			s.metrics.RecordLinkChange(false)
		}
		return nil
	})
}

// releaseSubtree prepares node and everything below it to leave the board.
// Links to peers outside the subtree are severed from the peer's side, the
// view state of collections inside it is dropped, and controllers elsewhere
// forget any reference into it. It must run while the subtree is attached.
func (s *BoardService) releaseSubtree(node *entities.Node) {
	subtree, inside := collectSubtree(node)

	for _, n := range subtree {
		for _, peer := range n.Links() {
			if !inside[peer] {
				peer.Unlink(n)
				s.metrics.RecordLinkChange(false)
			}
		}
		if n.IsCollection() {
			delete(s.controllers, n.ID())
			delete(s.trees, n.ID())
		}
	}

	for _, n := range subtree {
		for _, ctrl := range s.controllers {
			ctrl.Forget(n)
		}
		if n.IsCollection() {
			for _, view := range s.trees {
				view.SetExpanded(n.ID(), false)
			}
		}
	}
}

// collectSubtree lists node and its descendants, parents first, along with
// the same nodes as a set.
func collectSubtree(node *entities.Node) ([]*entities.Node, map[*entities.Node]bool) {
	out := []*entities.Node{node}
	inside := map[*entities.Node]bool{node: true}
	for i := 0; i < len(out); i++ {
		for _, member := range out[i].Members() {
			if !inside[member] {
				inside[member] = true
				out = append(out, member)
			}
		}
	}
	return out, inside
}

func (s *BoardService) pair(id, peerID vo.NodeID) (*entities.Node, *entities.Node, error) {
	node, err := s.board.FindNode(id)
	if err != nil {
		return nil, nil, err
	}
	peer, err := s.board.FindNode(peerID)
	if err != nil {
		return nil, nil, err
	}
	return node, peer, nil
}

// ResizeNode grows or shrinks a node by a resize handle drag
func (s *BoardService) ResizeNode(ctx context.Context, id vo.NodeID, dw, dh float64) (dto.NodeDTO, error) {
	var resized dto.NodeDTO
	err := s.execute(ctx, "resize_node", func() error {
		node, err := s.board.FindNode(id)
		if err != nil {
			return err
		}
		parent, err := s.board.FindParent(id)
		if err == nil && parent.IsCollection() {
			ctrl, err := s.controller(parent)
			if err != nil {
				return err
			}
			if err := ctrl.Resize(node, dw, dh); err != nil {
				return err
			}
		} else {
			node.ResizeBy(dw, dh)
		}
		resized = dto.NewNodeDTO(node)
		return nil
	})
	return resized, err
}

// ClearCollection removes every member of a collection and reports how many
func (s *BoardService) ClearCollection(ctx context.Context, id vo.NodeID) (int, error) {
	removed := 0
	err := s.execute(ctx, "clear_collection", func() error {
		collection, err := s.collection(id)
		if err != nil {
			return err
		}
		if ctrl, ok := s.controllers[collection.ID()]; ok {
			ctrl.Cancel()
		}
		for _, member := range collection.Nodes() {
			s.releaseSubtree(member)
		}
		removed = collection.ClearNodes()
		s.metrics.RecordNodesRemoved(removed)
		return nil
	})
	return removed, err
}

// CenterOn pans a collection so that node sits in the middle of the
// viewport. A non-positive viewport uses the collection's own size. With a
// positive frameRate the pan is eased and every rendered frame is returned;
// otherwise the single final offset is.
func (s *BoardService) CenterOn(ctx context.Context, collectionID, nodeID vo.NodeID, viewportWidth, viewportHeight float64, frameRate int) ([]dto.PanDTO, error) {
	var frames []dto.PanDTO
	err := s.execute(ctx, "center_on", func() error {
		collection, err := s.collection(collectionID)
		if err != nil {
			return err
		}
		node, err := s.board.FindNode(nodeID)
		if err != nil {
			return err
		}
		if !collection.Contains(node) {
			return fmt.Errorf("center on %s: %w", nodeID, pkgerrors.ErrNodeNotInCollection)
		}
		if viewportWidth <= 0 || viewportHeight <= 0 {
			viewportWidth, viewportHeight = collection.Width(), collection.Height()
		}

		if frameRate <= 0 {
			collection.CenterOnViewport(node, viewportWidth, viewportHeight)
			frames = []dto.PanDTO{panOf(collection)}
			return nil
		}

		ctrl, err := s.controller(collection)
		if err != nil {
			return err
		}
		anim, err := ctrl.FollowLink(node, viewportWidth, viewportHeight)
		if err != nil {
			return err
		}
		dt := 1 / float32(frameRate)
		for i := 0; !anim.Done && i < maxAnimationFrames; i++ {
			anim.Update(dt)
			frames = append(frames, panOf(collection))
		}
		if !anim.Done {
			toX, toY := anim.Target()
			collection.SetPan(toX, toY)
			frames = append(frames, panOf(collection))
		}
		if len(frames) == 0 {
			frames = []dto.PanDTO{panOf(collection)}
		}
		return nil
	})
	return frames, err
}

// Pan runs a one-step pan session on a collection, as if the pointer went
// down at (clientX, clientY) and moved by (dx, dy).
func (s *BoardService) Pan(ctx context.Context, collectionID vo.NodeID, dx, dy, clientX, clientY float64) (dto.PanDTO, error) {
	var pan dto.PanDTO
	err := s.execute(ctx, "pan", func() error {
		collection, err := s.collection(collectionID)
		if err != nil {
			return err
		}
		ctrl, err := s.controller(collection)
		if err != nil {
			return err
		}
		if err := ctrl.OnPointerDown(interaction.PointerEvent{ClientX: clientX, ClientY: clientY}); err != nil {
			return err
		}
		ctrl.OnPointerMove(interaction.PointerEvent{
			ClientX:   clientX + dx,
			ClientY:   clientY + dy,
			MovementX: dx,
			MovementY: dy,
		})
		ctrl.OnPointerUp()
		pan = panOf(collection)
		return nil
	})
	return pan, err
}

// Trail returns the mouse trail recorded while panning a collection
func (s *BoardService) Trail(ctx context.Context, collectionID vo.NodeID) ([]dto.TrailPointDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.collection(collectionID)
	if err != nil {
		return nil, err
	}
	ctrl, err := s.controller(collection)
	if err != nil {
		return nil, err
	}
	return dto.NewTrailPointDTOs(ctrl.Trail().Points()), nil
}

// SetLayoutMode switches how a collection displays its members. Switching to
// grid mode arranges the members in the collection's own bounds.
func (s *BoardService) SetLayoutMode(ctx context.Context, collectionID vo.NodeID, mode vo.LayoutMode) error {
	return s.execute(ctx, "set_layout_mode", func() error {
		collection, err := s.collection(collectionID)
		if err != nil {
			return err
		}
		if err := collection.SetLayoutMode(mode); err != nil {
			return err
		}
		if collection.LayoutMode() == vo.LayoutGrid {
			return layout.ArrangeInGrid(collection, collection.Width(), collection.Height())
		}
		return nil
	})
}

// ArrangeGrid lays a collection's members out in a staggered grid over the
// given viewport; a non-positive viewport uses the collection's own size.
func (s *BoardService) ArrangeGrid(ctx context.Context, collectionID vo.NodeID, viewportWidth, viewportHeight float64) (dto.NodeDTO, error) {
	var arranged dto.NodeDTO
	err := s.execute(ctx, "arrange_grid", func() error {
		collection, err := s.collection(collectionID)
		if err != nil {
			return err
		}
		if viewportWidth <= 0 || viewportHeight <= 0 {
			viewportWidth, viewportHeight = collection.Width(), collection.Height()
		}
		if err := layout.ArrangeInGrid(collection, viewportWidth, viewportHeight); err != nil {
			return err
		}
		s.metrics.RecordGridArranged(collection.NodeCount())
		arranged = dto.NewNodeDTO(collection)
		return nil
	})
	return arranged, err
}

// Tree returns the visible outline rows of a collection
func (s *BoardService) Tree(ctx context.Context, collectionID vo.NodeID) ([]dto.TreeItemDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.collection(collectionID)
	if err != nil {
		return nil, err
	}
	return dto.NewTreeItemDTOs(s.tree(collection).Items(collection)), nil
}

// ToggleTreeItem expands or collapses a collection row in the outline of
// another collection and returns the new visible rows.
func (s *BoardService) ToggleTreeItem(ctx context.Context, collectionID, itemID vo.NodeID) ([]dto.TreeItemDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection, err := s.collection(collectionID)
	if err != nil {
		return nil, err
	}
	item, err := s.board.FindNode(itemID)
	if err != nil {
		return nil, err
	}
	if !collection.IsAncestorOf(item) {
		return nil, fmt.Errorf("toggle %s in %s: %w", itemID, collectionID, pkgerrors.ErrNodeNotInCollection)
	}
	if !item.IsCollection() {
		return nil, fmt.Errorf("toggle %s: %w", itemID, pkgerrors.ErrNotACollection)
	}

	view := s.tree(collection)
	view.Toggle(itemID)
	return dto.NewTreeItemDTOs(view.Items(collection)), nil
}

// DragStart begins dragging a member of a collection by its top bar
func (s *BoardService) DragStart(ctx context.Context, collectionID, nodeID vo.NodeID) (dto.DragDTO, error) {
	var state dto.DragDTO
	err := s.execute(ctx, "drag_start", func() error {
		ctrl, node, err := s.dragTarget(collectionID, nodeID)
		if err != nil {
			return err
		}
		if err := ctrl.OnDragStart(node); err != nil {
			return err
		}
		state = dragState(ctrl, node)
		return nil
	})
	return state, err
}

// DragMove moves the dragged node and reports the current drop target
func (s *BoardService) DragMove(ctx context.Context, collectionID, nodeID vo.NodeID, dx, dy float64) (dto.DragDTO, error) {
	var state dto.DragDTO
	err := s.execute(ctx, "drag_move", func() error {
		ctrl, node, err := s.dragTarget(collectionID, nodeID)
		if err != nil {
			return err
		}
		if err := ctrl.OnDrag(node, dx, dy); err != nil {
			return err
		}
		state = dragState(ctrl, node)
		return nil
	})
	return state, err
}

// DragEnd releases the dragged node, merging it into the drop target when
// there is one. modifier selects the composite merge.
func (s *BoardService) DragEnd(ctx context.Context, collectionID, nodeID vo.NodeID, modifier bool) (dto.DragDTO, error) {
	var state dto.DragDTO
	err := s.execute(ctx, "drag_end", func() error {
		ctrl, node, err := s.dragTarget(collectionID, nodeID)
		if err != nil {
			return err
		}
		result, err := ctrl.OnDragEnd(node, modifier)
		if err != nil {
			return err
		}
		state = dragState(ctrl, node)
		if result != nil {
			s.metrics.RecordMerge(string(result.Strategy))
			state.Merge = &dto.MergeDTO{
				Strategy:  string(result.Strategy),
				Container: dto.NewNodeDTO(result.Container),
			}
		}
		return nil
	})
	return state, err
}

// Merge combines two members of a collection without a drag
func (s *BoardService) Merge(ctx context.Context, collectionID, draggedID, targetID vo.NodeID, useComposite bool) (dto.MergeDTO, error) {
	var merged dto.MergeDTO
	err := s.execute(ctx, "merge", func() error {
		parent, err := s.collection(collectionID)
		if err != nil {
			return err
		}
		dragged, target, err := s.pair(draggedID, targetID)
		if err != nil {
			return err
		}
		result, err := s.engine.MergeNodes(dragged, target, useComposite, parent)
		if err != nil {
			return err
		}

		s.metrics.RecordMerge(string(result.Strategy))
		s.logger.Info("Nodes merged",
			zap.String("strategy", string(result.Strategy)),
			zap.String("draggedID", draggedID.String()),
			zap.String("targetID", targetID.String()),
			zap.String("containerID", result.Container.ID().String()),
		)
		merged = dto.MergeDTO{
			Strategy:  string(result.Strategy),
			Container: dto.NewNodeDTO(result.Container),
		}
		return nil
	})
	return merged, err
}

func (s *BoardService) dragTarget(collectionID, nodeID vo.NodeID) (*interaction.Controller, *entities.Node, error) {
	collection, err := s.collection(collectionID)
	if err != nil {
		return nil, nil, err
	}
	node, err := s.board.FindNode(nodeID)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := s.controller(collection)
	if err != nil {
		return nil, nil, err
	}
	return ctrl, node, nil
}

// collection resolves id to a collection on the board; zero means the root.
func (s *BoardService) collection(id vo.NodeID) (*entities.Node, error) {
	if id.IsZero() {
		return s.board.Root(), nil
	}
	return s.board.FindCollection(id)
}

func (s *BoardService) controller(collection *entities.Node) (*interaction.Controller, error) {
	if ctrl, ok := s.controllers[collection.ID()]; ok && ctrl.Collection() == collection {
		return ctrl, nil
	}
	ctrl, err := interaction.NewController(collection, s.engine, s.cfg)
	if err != nil {
		return nil, err
	}
	s.controllers[collection.ID()] = ctrl
	return ctrl, nil
}

func (s *BoardService) tree(collection *entities.Node) *layout.TreeView {
	view, ok := s.trees[collection.ID()]
	if !ok {
		view = layout.NewTreeView()
		s.trees[collection.ID()] = view
	}
	return view
}

// execute runs fn under the board lock, then publishes the events it raised.
func (s *BoardService) execute(ctx context.Context, operation string, fn func() error) error {
	start := time.Now()

	s.mu.Lock()
	err := fn()
	pending := s.board.GetUncommittedEvents()
	s.board.MarkEventsAsCommitted()
	count := s.board.NodeCount()
	s.mu.Unlock()

	s.metrics.RecordOperation(operation, err)
	s.metrics.SetBoardNodes(count)
	if err != nil {
		s.logger.Debug("Board operation rejected",
			zap.String("operation", operation),
			zap.Error(err),
		)
	} else {
		s.logger.Debug("Board operation completed",
			zap.String("operation", operation),
			zap.Int("events", len(pending)),
			zap.Duration("duration", time.Since(start)),
		)
	}

	s.publish(ctx, pending)
	return err
}

func (s *BoardService) publish(ctx context.Context, pending []events.DomainEvent) {
	if s.publisher == nil || len(pending) == 0 {
		return
	}
	err := s.publisher.PublishBatch(ctx, pending)
	s.metrics.RecordEventsPublished(len(pending), err)
	if err != nil {
		s.logger.Warn("Failed to publish board events",
			zap.Int("count", len(pending)),
			zap.Error(err),
		)
	}
}

func panOf(collection *entities.Node) dto.PanDTO {
	return dto.PanDTO{PanX: collection.PanX(), PanY: collection.PanY()}
}

func dragState(ctrl *interaction.Controller, node *entities.Node) dto.DragDTO {
	state := dto.DragDTO{
		Mode:     ctrl.Mode().String(),
		NodeID:   node.ID().String(),
		Position: dto.PositionDTO{X: node.X(), Y: node.Y()},
	}
	if target := ctrl.DropTargetNode(); target != nil {
		state.DropTargetID = target.ID().String()
	}
	return state
}
