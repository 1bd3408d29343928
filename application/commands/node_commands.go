package commands

import "whiteboard/pkg/utils"

// CreateNodeCommand represents the command to create a new node through the
// form path. Unset geometry falls back to the kind's defaults and a random
// placement.
type CreateNodeCommand struct {
	NodeID   string            `json:"node_id" validate:"omitempty,uuid"`
	ParentID string            `json:"parent_id" validate:"omitempty,uuid"`
	Kind     string            `json:"kind" validate:"required"`
	X        *float64          `json:"x"`
	Y        *float64          `json:"y"`
	Width    *float64          `json:"width" validate:"omitempty,gt=0"`
	Height   *float64          `json:"height" validate:"omitempty,gt=0"`
	Fields   map[string]string `json:"fields" validate:"omitempty,max=10"`
}

func (c CreateNodeCommand) Validate() error { return utils.ValidateStruct(c) }

// RemoveNodeCommand destroys a node and severs its links
type RemoveNodeCommand struct {
	NodeID string `json:"node_id" validate:"required,uuid"`
}

func (c RemoveNodeCommand) Validate() error { return utils.ValidateStruct(c) }

// LinkNodesCommand links two nodes
type LinkNodesCommand struct {
	NodeID string `json:"node_id" validate:"required,uuid"`
	PeerID string `json:"peer_id" validate:"required,uuid,nefield=NodeID"`
}

func (c LinkNodesCommand) Validate() error { return utils.ValidateStruct(c) }

// UnlinkNodesCommand removes the link between two nodes
type UnlinkNodesCommand struct {
	NodeID string `json:"node_id" validate:"required,uuid"`
	PeerID string `json:"peer_id" validate:"required,uuid"`
}

func (c UnlinkNodesCommand) Validate() error { return utils.ValidateStruct(c) }

// ResizeNodeCommand applies a resize handle drag
type ResizeNodeCommand struct {
	NodeID      string  `json:"node_id" validate:"required,uuid"`
	DeltaWidth  float64 `json:"delta_width"`
	DeltaHeight float64 `json:"delta_height"`
}

func (c ResizeNodeCommand) Validate() error { return utils.ValidateStruct(c) }
