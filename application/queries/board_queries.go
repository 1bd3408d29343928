package queries

import "whiteboard/pkg/utils"

// GetBoardQuery returns the whole board as a nested tree
type GetBoardQuery struct{}

// Validate validates the GetBoardQuery
func (q GetBoardQuery) Validate() error { return nil }

// GetNodeQuery represents a query to get a single node and everything below it
type GetNodeQuery struct {
	NodeID string `validate:"required,uuid"`
}

// Validate validates the GetNodeQuery
func (q GetNodeQuery) Validate() error { return utils.ValidateStruct(q) }

// GetTreeQuery returns the outline of a tree-mode collection
type GetTreeQuery struct {
	CollectionID string `validate:"required,uuid"`
}

func (q GetTreeQuery) Validate() error { return utils.ValidateStruct(q) }

// GetTrailQuery returns the recent pointer positions of a collection
type GetTrailQuery struct {
	CollectionID string `validate:"required,uuid"`
}

func (q GetTrailQuery) Validate() error { return utils.ValidateStruct(q) }

// GetSchemaQuery returns the form fields of a node kind
type GetSchemaQuery struct {
	Kind string `validate:"required"`
}

func (q GetSchemaQuery) Validate() error { return utils.ValidateStruct(q) }

// GetLinkGraphQuery flattens the board into nodes and link edges
type GetLinkGraphQuery struct{}

func (q GetLinkGraphQuery) Validate() error { return nil }

// LinkGraphResult is the flat node/edge view of the board
type LinkGraphResult struct {
	Nodes []LinkGraphNode `json:"nodes"`
	Edges []LinkGraphEdge `json:"edges"`
	Stats LinkGraphStats  `json:"stats"`
}

// LinkGraphNode is one node of the flat view
type LinkGraphNode struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title,omitempty"`
	ParentID string `json:"parent_id"`
	Depth    int    `json:"depth"`
}

// LinkGraphEdge is an undirected link, reported once with Source < Target
type LinkGraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// LinkGraphStats summarises the flat view
type LinkGraphStats struct {
	NodeCount int     `json:"node_count"`
	LinkCount int     `json:"link_count"`
	MaxDepth  int     `json:"max_depth"`
	Density   float64 `json:"density"`
}

// CheckBoardQuery verifies the structural invariants of the board
type CheckBoardQuery struct{}

func (q CheckBoardQuery) Validate() error { return nil }
