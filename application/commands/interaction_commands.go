package commands

import "whiteboard/pkg/utils"

// StartDragCommand begins dragging a member of a collection
type StartDragCommand struct {
	CollectionID string `json:"collection_id" validate:"required,uuid"`
	NodeID       string `json:"node_id" validate:"required,uuid"`
}

func (c StartDragCommand) Validate() error { return utils.ValidateStruct(c) }

// MoveDragCommand moves the dragged node by a pointer delta
type MoveDragCommand struct {
	CollectionID string  `json:"collection_id" validate:"required,uuid"`
	NodeID       string  `json:"node_id" validate:"required,uuid"`
	DeltaX       float64 `json:"dx"`
	DeltaY       float64 `json:"dy"`
}

func (c MoveDragCommand) Validate() error { return utils.ValidateStruct(c) }

// EndDragCommand releases the dragged node. Modifier requests a composite merge.
type EndDragCommand struct {
	CollectionID string `json:"collection_id" validate:"required,uuid"`
	NodeID       string `json:"node_id" validate:"required,uuid"`
	Modifier     bool   `json:"modifier"`
}

func (c EndDragCommand) Validate() error { return utils.ValidateStruct(c) }

// MergeNodesCommand merges two members of a collection directly
type MergeNodesCommand struct {
	CollectionID string `json:"collection_id" validate:"required,uuid"`
	DraggedID    string `json:"dragged_id" validate:"required,uuid"`
	TargetID     string `json:"target_id" validate:"required,uuid"`
	UseComposite bool   `json:"use_composite"`
}

func (c MergeNodesCommand) Validate() error { return utils.ValidateStruct(c) }
