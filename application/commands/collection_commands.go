package commands

import "whiteboard/pkg/utils"

// ClearCollectionCommand removes every member of a collection
type ClearCollectionCommand struct {
	CollectionID string `json:"collection_id" validate:"required,uuid"`
}

func (c ClearCollectionCommand) Validate() error { return utils.ValidateStruct(c) }

// CenterOnNodeCommand pans a collection so that a member is centered in the
// viewport. A positive FrameRate asks for the eased animation frames.
type CenterOnNodeCommand struct {
	CollectionID   string  `json:"collection_id" validate:"required,uuid"`
	NodeID         string  `json:"node_id" validate:"required,uuid"`
	ViewportWidth  float64 `json:"viewport_width" validate:"gte=0"`
	ViewportHeight float64 `json:"viewport_height" validate:"gte=0"`
	FrameRate      int     `json:"frame_rate" validate:"gte=0,lte=240"`
}

func (c CenterOnNodeCommand) Validate() error { return utils.ValidateStruct(c) }

// PanCollectionCommand pans a collection by a pointer movement
type PanCollectionCommand struct {
	CollectionID string  `json:"collection_id" validate:"required,uuid"`
	DeltaX       float64 `json:"dx"`
	DeltaY       float64 `json:"dy"`
	ClientX      float64 `json:"client_x"`
	ClientY      float64 `json:"client_y"`
}

func (c PanCollectionCommand) Validate() error { return utils.ValidateStruct(c) }

// SetLayoutModeCommand switches a collection between freeform, grid and tree
type SetLayoutModeCommand struct {
	CollectionID string `json:"collection_id" validate:"required,uuid"`
	Mode         string `json:"mode" validate:"required,oneof=freeform grid tree"`
}

func (c SetLayoutModeCommand) Validate() error { return utils.ValidateStruct(c) }

// ArrangeGridCommand lays out a collection's members in a staggered grid
type ArrangeGridCommand struct {
	CollectionID   string  `json:"collection_id" validate:"required,uuid"`
	ViewportWidth  float64 `json:"viewport_width" validate:"gte=0"`
	ViewportHeight float64 `json:"viewport_height" validate:"gte=0"`
}

func (c ArrangeGridCommand) Validate() error { return utils.ValidateStruct(c) }

// ToggleTreeItemCommand expands or collapses a row of a collection outline
type ToggleTreeItemCommand struct {
	CollectionID string `json:"collection_id" validate:"required,uuid"`
	NodeID       string `json:"node_id" validate:"required,uuid"`
}

func (c ToggleTreeItemCommand) Validate() error { return utils.ValidateStruct(c) }
