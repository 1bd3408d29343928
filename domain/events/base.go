package events

import (
	"time"

	"whiteboard/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

func newBase(aggregateID valueobjects.NodeID, eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		AggregateID: aggregateID.String(),
		EventType:   eventType,
		Timestamp:   timestamp,
		Version:     1,
	}
}

// Event type names
const (
	TypeNodeCreated          = "node.created"
	TypeNodesLinked          = "nodes.linked"
	TypeNodesUnlinked        = "nodes.unlinked"
	TypeNodeMoved            = "node.moved"
	TypeNodeResized          = "node.resized"
	TypeNodeAdded            = "container.node_added"
	TypeNodeRemoved          = "container.node_removed"
	TypeContainerCleared     = "container.cleared"
	TypeCollectionPanned     = "collection.panned"
	TypeLayoutModeChanged    = "collection.layout_changed"
	TypeGridArranged         = "collection.grid_arranged"
	TypeNodesMerged          = "nodes.merged"
	TypeScrapbookSlotEvicted = "scrapbook.slot_evicted"
)

// Node Events

// NodeCreated is raised when a new node is created
type NodeCreated struct {
	BaseEvent
	NodeID valueobjects.NodeID   `json:"node_id"`
	Kind   valueobjects.NodeKind `json:"kind"`
	Title  string                `json:"title"`
}

// NewNodeCreated creates a NodeCreated event
func NewNodeCreated(nodeID valueobjects.NodeID, kind valueobjects.NodeKind, title string, timestamp time.Time) NodeCreated {
	return NodeCreated{
		BaseEvent: newBase(nodeID, TypeNodeCreated, timestamp),
		NodeID:    nodeID,
		Kind:      kind,
		Title:     title,
	}
}

// NodeMoved is raised when a node is moved to a new position
type NodeMoved struct {
	BaseEvent
	NodeID      valueobjects.NodeID `json:"node_id"`
	OldPosition valueobjects.Point  `json:"old_position"`
	NewPosition valueobjects.Point  `json:"new_position"`
}

// NewNodeMoved creates a NodeMoved event
func NewNodeMoved(nodeID valueobjects.NodeID, oldPos, newPos valueobjects.Point, timestamp time.Time) NodeMoved {
	return NodeMoved{
		BaseEvent:   newBase(nodeID, TypeNodeMoved, timestamp),
		NodeID:      nodeID,
		OldPosition: oldPos,
		NewPosition: newPos,
	}
}

// NodeResized is raised when a node's width or height changes
type NodeResized struct {
	BaseEvent
	NodeID  valueobjects.NodeID `json:"node_id"`
	OldSize valueobjects.Size   `json:"old_size"`
	NewSize valueobjects.Size   `json:"new_size"`
}

// NewNodeResized creates a NodeResized event
func NewNodeResized(nodeID valueobjects.NodeID, oldSize, newSize valueobjects.Size, timestamp time.Time) NodeResized {
	return NodeResized{
		BaseEvent: newBase(nodeID, TypeNodeResized, timestamp),
		NodeID:    nodeID,
		OldSize:   oldSize,
		NewSize:   newSize,
	}
}

// Link Events

// NodesLinked is raised when a symmetric link is created
type NodesLinked struct {
	BaseEvent
	SourceID valueobjects.NodeID `json:"source_id"`
	TargetID valueobjects.NodeID `json:"target_id"`
}

// NewNodesLinked creates a NodesLinked event
func NewNodesLinked(sourceID, targetID valueobjects.NodeID, timestamp time.Time) NodesLinked {
	return NodesLinked{
		BaseEvent: newBase(sourceID, TypeNodesLinked, timestamp),
		SourceID:  sourceID,
		TargetID:  targetID,
	}
}

// NodesUnlinked is raised when a link is removed in both directions
type NodesUnlinked struct {
	BaseEvent
	SourceID valueobjects.NodeID `json:"source_id"`
	TargetID valueobjects.NodeID `json:"target_id"`
}

// NewNodesUnlinked creates a NodesUnlinked event
func NewNodesUnlinked(sourceID, targetID valueobjects.NodeID, timestamp time.Time) NodesUnlinked {
	return NodesUnlinked{
		BaseEvent: newBase(sourceID, TypeNodesUnlinked, timestamp),
		SourceID:  sourceID,
		TargetID:  targetID,
	}
}

// Container Events

// NodeAdded is raised when a node is appended to a collection or composite
type NodeAdded struct {
	BaseEvent
	ContainerID valueobjects.NodeID `json:"container_id"`
	NodeID      valueobjects.NodeID `json:"node_id"`
}

// NewNodeAdded creates a NodeAdded event
func NewNodeAdded(containerID, nodeID valueobjects.NodeID, timestamp time.Time) NodeAdded {
	return NodeAdded{
		BaseEvent:   newBase(containerID, TypeNodeAdded, timestamp),
		ContainerID: containerID,
		NodeID:      nodeID,
	}
}

// NodeRemoved is raised when a node leaves its container
type NodeRemoved struct {
	BaseEvent
	ContainerID  valueobjects.NodeID `json:"container_id"`
	NodeID       valueobjects.NodeID `json:"node_id"`
	LinksSevered bool                `json:"links_severed"`
}

// NewNodeRemoved creates a NodeRemoved event
func NewNodeRemoved(containerID, nodeID valueobjects.NodeID, linksSevered bool, timestamp time.Time) NodeRemoved {
	return NodeRemoved{
		BaseEvent:    newBase(containerID, TypeNodeRemoved, timestamp),
		ContainerID:  containerID,
		NodeID:       nodeID,
		LinksSevered: linksSevered,
	}
}

// ContainerCleared is raised when every child of a collection is dropped
type ContainerCleared struct {
	BaseEvent
	ContainerID valueobjects.NodeID `json:"container_id"`
	Removed     int                 `json:"removed"`
}

// NewContainerCleared creates a ContainerCleared event
func NewContainerCleared(containerID valueobjects.NodeID, removed int, timestamp time.Time) ContainerCleared {
	return ContainerCleared{
		BaseEvent:   newBase(containerID, TypeContainerCleared, timestamp),
		ContainerID: containerID,
		Removed:     removed,
	}
}

// Collection Events

// CollectionPanned is raised when a collection's camera offset changes
type CollectionPanned struct {
	BaseEvent
	CollectionID valueobjects.NodeID `json:"collection_id"`
	PanX         float64             `json:"pan_x"`
	PanY         float64             `json:"pan_y"`
}

// NewCollectionPanned creates a CollectionPanned event
func NewCollectionPanned(collectionID valueobjects.NodeID, panX, panY float64, timestamp time.Time) CollectionPanned {
	return CollectionPanned{
		BaseEvent:    newBase(collectionID, TypeCollectionPanned, timestamp),
		CollectionID: collectionID,
		PanX:         panX,
		PanY:         panY,
	}
}

// LayoutModeChanged is raised when a collection switches layout mode
type LayoutModeChanged struct {
	BaseEvent
	CollectionID valueobjects.NodeID     `json:"collection_id"`
	OldMode      valueobjects.LayoutMode `json:"old_mode"`
	NewMode      valueobjects.LayoutMode `json:"new_mode"`
}

// NewLayoutModeChanged creates a LayoutModeChanged event
func NewLayoutModeChanged(collectionID valueobjects.NodeID, oldMode, newMode valueobjects.LayoutMode, timestamp time.Time) LayoutModeChanged {
	return LayoutModeChanged{
		BaseEvent:    newBase(collectionID, TypeLayoutModeChanged, timestamp),
		CollectionID: collectionID,
		OldMode:      oldMode,
		NewMode:      newMode,
	}
}

// GridArranged is raised after children were laid out in the staggered grid
type GridArranged struct {
	BaseEvent
	CollectionID   valueobjects.NodeID `json:"collection_id"`
	NodeCount      int                 `json:"node_count"`
	ViewportWidth  float64             `json:"viewport_width"`
	ViewportHeight float64             `json:"viewport_height"`
}

// NewGridArranged creates a GridArranged event
func NewGridArranged(collectionID valueobjects.NodeID, count int, w, h float64, timestamp time.Time) GridArranged {
	return GridArranged{
		BaseEvent:      newBase(collectionID, TypeGridArranged, timestamp),
		CollectionID:   collectionID,
		NodeCount:      count,
		ViewportWidth:  w,
		ViewportHeight: h,
	}
}

// Merge Events

// NodesMerged is raised when a drop restructured two sibling nodes
type NodesMerged struct {
	BaseEvent
	ParentID    valueobjects.NodeID `json:"parent_id"`
	DraggedID   valueobjects.NodeID `json:"dragged_id"`
	TargetID    valueobjects.NodeID `json:"target_id"`
	ContainerID valueobjects.NodeID `json:"container_id"`
	Strategy    string              `json:"strategy"`
}

// NewNodesMerged creates a NodesMerged event
func NewNodesMerged(parentID, draggedID, targetID, containerID valueobjects.NodeID, strategy string, timestamp time.Time) NodesMerged {
	return NodesMerged{
		BaseEvent:   newBase(parentID, TypeNodesMerged, timestamp),
		ParentID:    parentID,
		DraggedID:   draggedID,
		TargetID:    targetID,
		ContainerID: containerID,
		Strategy:    strategy,
	}
}

// ScrapbookSlotEvicted is raised when an incoming child displaced the
// occupant of a reserved slot
type ScrapbookSlotEvicted struct {
	BaseEvent
	ScrapbookID valueobjects.NodeID   `json:"scrapbook_id"`
	EvictedID   valueobjects.NodeID   `json:"evicted_id"`
	IncomingID  valueobjects.NodeID   `json:"incoming_id"`
	SlotKind    valueobjects.NodeKind `json:"slot_kind"`
}

// NewScrapbookSlotEvicted creates a ScrapbookSlotEvicted event
func NewScrapbookSlotEvicted(scrapbookID, evictedID, incomingID valueobjects.NodeID, kind valueobjects.NodeKind, timestamp time.Time) ScrapbookSlotEvicted {
	return ScrapbookSlotEvicted{
		BaseEvent:   newBase(scrapbookID, TypeScrapbookSlotEvicted, timestamp),
		ScrapbookID: scrapbookID,
		EvictedID:   evictedID,
		IncomingID:  incomingID,
		SlotKind:    kind,
	}
}
