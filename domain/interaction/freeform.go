// Package interaction drives a collection from pointer input: node drags
// that may end in a merge, canvas panning, resizing and the mouse trail.
package interaction

import (
	"fmt"

	"github.com/tanema/gween/ease"

	"whiteboard/domain/config"
	"whiteboard/domain/core/entities"
	vo "whiteboard/domain/core/valueobjects"
	"whiteboard/domain/layout"
	"whiteboard/domain/services"
	pkgerrors "whiteboard/pkg/errors"
)

// Merger combines two sibling nodes after a drop.
type Merger interface {
	MergeNodes(dragged, target *entities.Node, useComposite bool, parent *entities.Node) (services.MergeResult, error)
}

// Mode is the current pointer session of a controller.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModePanning
)

func (m Mode) String() string {
	switch m {
	case ModeDragging:
		return "dragging"
	case ModePanning:
		return "panning"
	default:
		return "idle"
	}
}

// PointerEvent is a pointer sample in viewport coordinates with the
// movement since the previous sample.
type PointerEvent struct {
	ClientX   float64 `json:"client_x"`
	ClientY   float64 `json:"client_y"`
	MovementX float64 `json:"movement_x"`
	MovementY float64 `json:"movement_y"`
}

// Controller is the freeform interaction state of one collection. It is not
// safe for concurrent use.
type Controller struct {
	collection *entities.Node
	merger     Merger
	cfg        *config.DomainConfig
	trail      *MouseTrail

	mode           Mode
	draggingNode   *entities.Node
	dropTargetNode *entities.Node
}

// NewController creates a controller for collection. A nil config uses the
// collection's own configuration.
func NewController(collection *entities.Node, merger Merger, cfg *config.DomainConfig) (*Controller, error) {
	if collection == nil || !collection.IsCollection() {
		return nil, fmt.Errorf("interaction controller: %w", pkgerrors.ErrNotACollection)
	}
	if cfg == nil {
		cfg = collection.Config()
	}
	return &Controller{
		collection: collection,
		merger:     merger,
		cfg:        cfg,
		trail:      NewMouseTrail(cfg.MouseTrailMaxPoints),
	}, nil
}

func (c *Controller) Collection() *entities.Node     { return c.collection }
func (c *Controller) Mode() Mode                     { return c.mode }
func (c *Controller) DraggingNode() *entities.Node   { return c.draggingNode }
func (c *Controller) DropTargetNode() *entities.Node { return c.dropTargetNode }
func (c *Controller) Trail() *MouseTrail             { return c.trail }

// OnDragStart begins dragging node by its top bar.
func (c *Controller) OnDragStart(node *entities.Node) error {
	if c.mode == ModePanning {
		return fmt.Errorf("drag start: %w", pkgerrors.ErrInteractionBusy)
	}
	if !c.collection.Contains(node) {
		return fmt.Errorf("drag start: %w", pkgerrors.ErrNodeNotInCollection)
	}
	c.mode = ModeDragging
	c.draggingNode = node
	c.dropTargetNode = nil
	return nil
}

// OnDrag moves the dragged node and, in freeform mode, recomputes the drop
// target as the first sibling whose top bar intersects the node's.
func (c *Controller) OnDrag(node *entities.Node, dx, dy float64) error {
	if c.mode != ModeDragging || c.draggingNode != node {
		return fmt.Errorf("drag: %w", pkgerrors.ErrNotDragging)
	}

	node.MoveBy(dx, dy)

	if c.collection.LayoutMode() != vo.LayoutFreeform {
		c.dropTargetNode = nil
		return nil
	}
	c.dropTargetNode = layout.FindDropTarget(node, c.collection.Nodes(), c.cfg.TopBarHeight)
	return nil
}

// OnDragEnd finishes the drag. When a drop target was found the nodes are
// merged, as a composite if modifierPressed. The drag state is cleared
// whatever the merge outcome; a nil result means a plain move.
func (c *Controller) OnDragEnd(node *entities.Node, modifierPressed bool) (*services.MergeResult, error) {
	if c.mode != ModeDragging || c.draggingNode != node {
		return nil, fmt.Errorf("drag end: %w", pkgerrors.ErrNotDragging)
	}

	target := c.dropTargetNode
	c.reset()

	if target == nil || c.merger == nil {
		return nil, nil
	}
	result, err := c.merger.MergeNodes(node, target, modifierPressed, c.collection)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// OnPointerDown starts a pan session on empty canvas.
func (c *Controller) OnPointerDown(evt PointerEvent) error {
	if c.mode == ModeDragging {
		return fmt.Errorf("pan start: %w", pkgerrors.ErrInteractionBusy)
	}
	c.mode = ModePanning
	return nil
}

// OnPointerMove pans by the pointer movement while a pan session is active
// and records the pointer on the mouse trail. Ignored otherwise.
func (c *Controller) OnPointerMove(evt PointerEvent) bool {
	if c.mode != ModePanning {
		return false
	}
	c.collection.PanBy(evt.MovementX, evt.MovementY)
	c.trail.Add(evt.ClientX, evt.ClientY)
	return true
}

// OnPointerUp ends a pan session
func (c *Controller) OnPointerUp() {
	if c.mode == ModePanning {
		c.mode = ModeIdle
	}
}

// Resize grows or shrinks node by the handle deltas, never below the minimum size.
func (c *Controller) Resize(node *entities.Node, dw, dh float64) error {
	if !c.collection.Contains(node) {
		return fmt.Errorf("resize: %w", pkgerrors.ErrNodeNotInCollection)
	}
	node.ResizeBy(dw, dh)
	return nil
}

// FollowLink starts an eased pan that centers node in the given viewport.
func (c *Controller) FollowLink(node *entities.Node, viewportWidth, viewportHeight float64) (*layout.PanAnimation, error) {
	if !c.collection.Contains(node) {
		return nil, fmt.Errorf("follow link: %w", pkgerrors.ErrNodeNotInCollection)
	}
	return layout.AnimateCenterOn(c.collection, node, viewportWidth, viewportHeight,
		c.cfg.PanAnimationDuration, ease.OutCubic), nil
}

// LinkCandidates lists the siblings node may be linked to.
func (c *Controller) LinkCandidates(node *entities.Node) []*entities.Node {
	out := []*entities.Node{}
	for _, n := range c.collection.Nodes() {
		if n != node {
			out = append(out, n)
		}
	}
	return out
}

// Cancel abandons the current drag or pan session without merging.
func (c *Controller) Cancel() {
	c.reset()
}

// Forget drops the controller's references to a node leaving the board. A
// drag of node is cancelled; a drop target on node is cleared so the drag
// ends as a plain move.
func (c *Controller) Forget(node *entities.Node) {
	if node == nil {
		return
	}
	if c.draggingNode == node {
		c.reset()
		return
	}
	if c.dropTargetNode == node {
		c.dropTargetNode = nil
	}
}

func (c *Controller) reset() {
	c.mode = ModeIdle
	c.draggingNode = nil
	c.dropTargetNode = nil
}
