package aggregates

import (
	"fmt"
	"sort"
	"time"

	"whiteboard/domain/config"
	"whiteboard/domain/core/entities"
	"whiteboard/domain/core/schema"
	vo "whiteboard/domain/core/valueobjects"
	"whiteboard/domain/events"
	pkgerrors "whiteboard/pkg/errors"
)

// Board is the aggregate root of a whiteboard: a root collection and
// everything nested below it.
type Board struct {
	root      *entities.Node
	cfg       *config.DomainConfig
	createdAt time.Time
}

// NewBoard creates an empty board using the default configuration
func NewBoard() (*Board, error) {
	return NewBoardWithConfig(config.DefaultDomainConfig())
}

// NewBoardWithConfig creates an empty board whose root collection spans the
// configured canvas size.
func NewBoardWithConfig(cfg *config.DomainConfig) (*Board, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	root, err := entities.NewNodeWithConfig(vo.KindCollection, entities.Initializer{
		Size:   &vo.Size{Width: cfg.CanvasWidth, Height: cfg.CanvasHeight},
		Fields: map[string]string{schema.FieldTitle: cfg.RootCollectionTitle},
	}, cfg)
	if err != nil {
		return nil, fmt.Errorf("create root collection: %w", err)
	}
	// the root exists with the board; nothing announces it
	root.MarkEventsAsCommitted()

	return &Board{
		root:      root,
		cfg:       cfg,
		createdAt: time.Now(),
	}, nil
}

// Root returns the root collection
func (b *Board) Root() *entities.Node {
	return b.root
}

// Config returns the board's domain configuration
func (b *Board) Config() *config.DomainConfig {
	return b.cfg
}

// CreatedAt returns when the board was created
func (b *Board) CreatedAt() time.Time {
	return b.createdAt
}

// VisitFunc is called for every node below the root. Returning false skips
// the node's subtree.
type VisitFunc func(node, parent *entities.Node, depth int) bool

// Walk visits every node in display order, depth first.
func (b *Board) Walk(fn VisitFunc) {
	visited := map[*entities.Node]bool{b.root: true}
	walk(b.root, 0, visited, fn)
}

func walk(parent *entities.Node, depth int, visited map[*entities.Node]bool, fn VisitFunc) {
	for _, child := range parent.Members() {
		if visited[child] {
			continue
		}
		visited[child] = true
		if fn(child, parent, depth) {
			walk(child, depth+1, visited, fn)
		}
	}
}

// FindNode returns the node with id, including the root.
func (b *Board) FindNode(id vo.NodeID) (*entities.Node, error) {
	if b.root.ID().Equals(id) {
		return b.root, nil
	}
	var found *entities.Node
	b.Walk(func(node, _ *entities.Node, _ int) bool {
		if found == nil && node.ID().Equals(id) {
			found = node
		}
		return found == nil
	})
	if found == nil {
		return nil, fmt.Errorf("node %s: %w", id, pkgerrors.ErrNodeNotFound)
	}
	return found, nil
}

// FindParent returns the collection or composite directly holding id.
func (b *Board) FindParent(id vo.NodeID) (*entities.Node, error) {
	var parent *entities.Node
	b.Walk(func(node, p *entities.Node, _ int) bool {
		if parent == nil && node.ID().Equals(id) {
			parent = p
		}
		return parent == nil
	})
	if parent == nil {
		return nil, fmt.Errorf("parent of node %s: %w", id, pkgerrors.ErrNodeNotFound)
	}
	return parent, nil
}

// FindCollection returns the collection with id.
func (b *Board) FindCollection(id vo.NodeID) (*entities.Node, error) {
	node, err := b.FindNode(id)
	if err != nil {
		return nil, err
	}
	if !node.IsCollection() {
		return nil, fmt.Errorf("node %s: %w", id, pkgerrors.ErrNotACollection)
	}
	return node, nil
}

// NodeCount returns the number of nodes below the root
func (b *Board) NodeCount() int {
	count := 0
	b.Walk(func(_, _ *entities.Node, _ int) bool {
		count++
		return true
	})
	return count
}

// Validate checks the structural invariants of the board: every node is
// held by exactly one container, containment is acyclic, and links are
// symmetric, free of self links and duplicates, and stay on the board.
func (b *Board) Validate() error {
	owners := map[*entities.Node]*entities.Node{}
	var structural error

	var check func(parent *entities.Node, path map[*entities.Node]bool)
	check = func(parent *entities.Node, path map[*entities.Node]bool) {
		for _, child := range parent.Members() {
			if structural != nil {
				return
			}
			if path[child] || child == b.root {
				structural = pkgerrors.NewValidationError(
					fmt.Sprintf("containment cycle through node %s", child.ID()))
				return
			}
			if owner, ok := owners[child]; ok {
				structural = pkgerrors.NewValidationError(
					fmt.Sprintf("node %s is held by both %s and %s", child.ID(), owner.ID(), parent.ID()))
				return
			}
			owners[child] = parent
			path[child] = true
			check(child, path)
			delete(path, child)
		}
	}
	check(b.root, map[*entities.Node]bool{b.root: true})
	if structural != nil {
		return structural
	}

	onBoard := func(n *entities.Node) bool {
		_, ok := owners[n]
		return ok || n == b.root
	}

	for node := range owners {
		seen := map[*entities.Node]bool{}
		for _, peer := range node.Links() {
			switch {
			case peer == node:
				return pkgerrors.NewValidationError(fmt.Sprintf("node %s is linked to itself", node.ID()))
			case seen[peer]:
				return pkgerrors.NewValidationError(fmt.Sprintf("duplicate link %s -> %s", node.ID(), peer.ID()))
			case !peer.IsLinkedTo(node):
				return pkgerrors.NewValidationError(fmt.Sprintf("asymmetric link %s -> %s", node.ID(), peer.ID()))
			case !onBoard(peer):
				return pkgerrors.NewValidationError(fmt.Sprintf("node %s is linked to detached node %s", node.ID(), peer.ID()))
			}
			seen[peer] = true
		}
	}

	return nil
}

// GetUncommittedEvents returns the pending events of every node on the
// board in the order they happened.
func (b *Board) GetUncommittedEvents() []events.DomainEvent {
	allEvents := append([]events.DomainEvent{}, b.root.GetUncommittedEvents()...)
	b.Walk(func(node, _ *entities.Node, _ int) bool {
		allEvents = append(allEvents, node.GetUncommittedEvents()...)
		return true
	})

	sort.SliceStable(allEvents, func(i, j int) bool {
		return allEvents[i].GetTimestamp().Before(allEvents[j].GetTimestamp())
	})
	return allEvents
}

// MarkEventsAsCommitted clears all uncommitted events
func (b *Board) MarkEventsAsCommitted() {
	b.root.MarkEventsAsCommitted()
	b.Walk(func(node, _ *entities.Node, _ int) bool {
		node.MarkEventsAsCommitted()
		return true
	})
}
