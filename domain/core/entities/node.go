package entities

import (
	"fmt"
	"math"
	"time"

	"whiteboard/domain/config"
	"whiteboard/domain/core/schema"
	vo "whiteboard/domain/core/valueobjects"
	"whiteboard/domain/events"
)

// Node is a single placeable widget on the canvas.
// Every kind shares this record; collection and composite behaviour lives in
// optional side structures selected by kind.
type Node struct {
	id        vo.NodeID
	kind      vo.NodeKind
	title     string
	x, y      float64
	width     float64
	height    float64
	content   vo.NodeContent
	links     []*Node
	createdAt time.Time

	collection *collectionState
	composite  *compositeState

	cfg *config.DomainConfig

	// Domain events that occurred on this node and were not yet drained
	events []events.DomainEvent
}

// Initializer carries the optional attributes of a new node. Anything left
// unset falls back to the field schema and the configured default size.
type Initializer struct {
	// ID preset; a fresh identifier is generated when zero
	ID       vo.NodeID
	Position *vo.Point
	Size     *vo.Size
	// Fields holds schema field values keyed by field name
	Fields map[string]string
}

// NewNode creates a node of the given kind using the default configuration.
func NewNode(kind vo.NodeKind, init Initializer) (*Node, error) {
	return NewNodeWithConfig(kind, init, config.DefaultDomainConfig())
}

// NewNodeWithConfig creates a node of the given kind.
func NewNodeWithConfig(kind vo.NodeKind, init Initializer, cfg *config.DomainConfig) (*Node, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if !kind.IsValid() {
		_, err := vo.ParseNodeKind(string(kind))
		return nil, err
	}

	fields := schema.Defaults(kind)
	for k, v := range init.Fields {
		fields[k] = v
	}
	if kind == vo.KindScrapbook && init.Fields[schema.FieldTitle] == "" {
		fields[schema.FieldTitle] = cfg.ScrapbookTitle
	}

	id := init.ID
	if id.IsZero() {
		id = vo.NewNodeID()
	}

	size := cfg.SizeFor(kind)
	if init.Size != nil {
		size = *init.Size
	}

	n := &Node{
		id:        id,
		kind:      kind,
		title:     fields[schema.FieldTitle],
		width:     math.Max(size.Width, cfg.MinNodeWidth),
		height:    math.Max(size.Height, cfg.MinNodeHeight),
		links:     []*Node{},
		createdAt: time.Now(),
		cfg:       cfg,
		events:    []events.DomainEvent{},
	}
	if init.Position != nil {
		n.x, n.y = init.Position.X, init.Position.Y
	}

	if field := vo.ContentFieldFor(kind); field != "" {
		n.content = vo.NewNodeContent(vo.ContentFormatFor(kind), fields[field])
	}

	switch {
	case kind == vo.KindCollection:
		mode := vo.LayoutFreeform
		if raw := fields[schema.FieldLayoutMode]; raw != "" {
			parsed, err := vo.ParseLayoutMode(raw)
			if err != nil {
				return nil, fmt.Errorf("create %s node: %w", kind, err)
			}
			mode = parsed
		}
		n.collection = &collectionState{nodes: []*Node{}, layoutMode: mode}
	case kind.IsComposite():
		n.composite = &compositeState{children: []*Node{}}
	}

	n.addEvent(events.NewNodeCreated(n.id, kind, n.title, n.createdAt))

	return n, nil
}

// ID returns the node's unique identifier
func (n *Node) ID() vo.NodeID {
	return n.id
}

// Kind returns the node's variant
func (n *Node) Kind() vo.NodeKind {
	return n.kind
}

// Title returns the optional title
func (n *Node) Title() string {
	return n.title
}

// SetTitle replaces the title
func (n *Node) SetTitle(title string) {
	n.title = title
}

// DisplayLabel is the title, or a short placeholder derived from the id.
func (n *Node) DisplayLabel() string {
	if n.title != "" {
		return n.title
	}
	return "Untitled Node " + n.id.Short(3)
}

// Content returns the kind-specific payload
func (n *Node) Content() vo.NodeContent {
	return n.content
}

// SetContent replaces the payload, keeping the kind's format.
func (n *Node) SetContent(value string) {
	n.content = vo.NewNodeContent(vo.ContentFormatFor(n.kind), value)
}

// CreatedAt returns the construction time
func (n *Node) CreatedAt() time.Time {
	return n.createdAt
}

// Config returns the configuration the node was created with
func (n *Node) Config() *config.DomainConfig {
	return n.cfg
}

func (n *Node) X() float64      { return n.x }
func (n *Node) Y() float64      { return n.y }
func (n *Node) Width() float64  { return n.width }
func (n *Node) Height() float64 { return n.height }

// Position returns the top-left corner relative to the owning container
func (n *Node) Position() vo.Point {
	return vo.Point{X: n.x, Y: n.y}
}

// Size returns width and height
func (n *Node) Size() vo.Size {
	return vo.Size{Width: n.width, Height: n.height}
}

// Bounds returns the node's rectangle in its container's coordinates
func (n *Node) Bounds() vo.Rect {
	return vo.NewRect(n.x, n.y, n.width, n.height)
}

// TopBar returns the header strip used for dragging and merge targeting.
func (n *Node) TopBar() vo.Rect {
	return n.Bounds().TopStrip(n.cfg.TopBarHeight)
}

// MoveTo places the node at (x, y)
func (n *Node) MoveTo(x, y float64) {
	if x == n.x && y == n.y {
		return
	}
	old := n.Position()
	n.x, n.y = x, y
	n.addEvent(events.NewNodeMoved(n.id, old, n.Position(), time.Now()))
}

// MoveBy translates the node by (dx, dy)
func (n *Node) MoveBy(dx, dy float64) {
	n.MoveTo(n.x+dx, n.y+dy)
}

// Resize sets width and height, clamped to the configured minimum.
func (n *Node) Resize(width, height float64) {
	width = math.Max(width, n.cfg.MinNodeWidth)
	height = math.Max(height, n.cfg.MinNodeHeight)
	if width == n.width && height == n.height {
		return
	}
	old := n.Size()
	n.width, n.height = width, height
	n.addEvent(events.NewNodeResized(n.id, old, n.Size(), time.Now()))
}

// ResizeBy grows or shrinks the node by the given deltas.
func (n *Node) ResizeBy(dw, dh float64) {
	n.Resize(n.width+dw, n.height+dh)
}

// IsCollection reports whether the node owns a child list with pan and layout
func (n *Node) IsCollection() bool {
	return n.collection != nil
}

// IsComposite reports whether the node stacks children (Composite or Scrapbook)
func (n *Node) IsComposite() bool {
	return n.composite != nil
}

// IsContainer reports whether the node can hold other nodes
func (n *Node) IsContainer() bool {
	return n.IsCollection() || n.IsComposite()
}

// Members returns the direct children of a collection or composite.
func (n *Node) Members() []*Node {
	switch {
	case n.collection != nil:
		return n.Nodes()
	case n.composite != nil:
		return n.Children()
	default:
		return nil
	}
}

// IsAncestorOf reports whether other lies anywhere below n.
func (n *Node) IsAncestorOf(other *Node) bool {
	if other == nil {
		return false
	}
	for _, child := range n.members() {
		if child == other || child.IsAncestorOf(other) {
			return true
		}
	}
	return false
}

func (n *Node) members() []*Node {
	switch {
	case n.collection != nil:
		return n.collection.nodes
	case n.composite != nil:
		return n.composite.children
	default:
		return nil
	}
}

// Event management

// GetUncommittedEvents returns the events recorded on this node only.
func (n *Node) GetUncommittedEvents() []events.DomainEvent {
	return n.events
}

// MarkEventsAsCommitted clears the node's events
func (n *Node) MarkEventsAsCommitted() {
	n.events = []events.DomainEvent{}
}

// RecordEvent attaches an event raised by a domain service acting on n.
func (n *Node) RecordEvent(event events.DomainEvent) {
	n.addEvent(event)
}

func (n *Node) addEvent(event events.DomainEvent) {
	n.events = append(n.events, event)
}

// absorbEvents moves pending events of a subtree leaving the tree onto n, so
// they are still observed through n's owner.
func (n *Node) absorbEvents(from *Node) {
	if from == n {
		return
	}
	n.events = append(n.events, from.drainSubtreeEvents()...)
}

func (n *Node) drainSubtreeEvents() []events.DomainEvent {
	drained := n.events
	n.events = []events.DomainEvent{}
	for _, child := range n.members() {
		drained = append(drained, child.drainSubtreeEvents()...)
	}
	return drained
}
