// Package dto holds the read models handed out by the application layer.
// They are plain snapshots: nothing in them points back into the live graph.
package dto

import (
	"time"

	"whiteboard/domain/core/entities"
	"whiteboard/domain/core/schema"
	"whiteboard/domain/interaction"
	"whiteboard/domain/layout"
)

// PositionDTO represents node position
type PositionDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SizeDTO represents node dimensions
type SizeDTO struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ContentDTO is the kind-specific payload of a node
type ContentDTO struct {
	Format string `json:"format"`
	Value  string `json:"value"`
}

// NodeDTO is a data transfer object for nodes. Collections carry their
// members in Nodes, composites in Children.
type NodeDTO struct {
	ID        string      `json:"id"`
	Kind      string      `json:"kind"`
	Title     string      `json:"title"`
	Label     string      `json:"label"`
	Position  PositionDTO `json:"position"`
	Size      SizeDTO     `json:"size"`
	Content   *ContentDTO `json:"content,omitempty"`
	Links     []string    `json:"links"`
	CreatedAt string      `json:"created_at"`

	PanX       *float64  `json:"pan_x,omitempty"`
	PanY       *float64  `json:"pan_y,omitempty"`
	LayoutMode string    `json:"layout_mode,omitempty"`
	Nodes      []NodeDTO `json:"nodes,omitempty"`
	Children   []NodeDTO `json:"children,omitempty"`
}

// NewNodeDTO snapshots node and everything it contains.
func NewNodeDTO(node *entities.Node) NodeDTO {
	return newNodeDTO(node, map[*entities.Node]bool{})
}

func newNodeDTO(node *entities.Node, seen map[*entities.Node]bool) NodeDTO {
	seen[node] = true

	dto := NodeDTO{
		ID:        node.ID().String(),
		Kind:      node.Kind().String(),
		Title:     node.Title(),
		Label:     node.DisplayLabel(),
		Position:  PositionDTO{X: node.X(), Y: node.Y()},
		Size:      SizeDTO{Width: node.Width(), Height: node.Height()},
		Links:     make([]string, 0, node.LinkCount()),
		CreatedAt: node.CreatedAt().Format(time.RFC3339),
	}

	if content := node.Content(); !content.IsEmpty() {
		dto.Content = &ContentDTO{Format: string(content.Format()), Value: content.Value()}
	}
	for _, peer := range node.Links() {
		dto.Links = append(dto.Links, peer.ID().String())
	}

	switch {
	case node.IsCollection():
		panX, panY := node.PanX(), node.PanY()
		dto.PanX, dto.PanY = &panX, &panY
		dto.LayoutMode = node.LayoutMode().String()
		dto.Nodes = childDTOs(node.Nodes(), seen)
	case node.IsComposite():
		dto.Children = childDTOs(node.Children(), seen)
	}
	return dto
}

func childDTOs(children []*entities.Node, seen map[*entities.Node]bool) []NodeDTO {
	out := make([]NodeDTO, 0, len(children))
	for _, child := range children {
		if seen[child] {
			continue
		}
		out = append(out, newNodeDTO(child, seen))
	}
	return out
}

// BoardDTO is a snapshot of the whole board
type BoardDTO struct {
	Root      NodeDTO `json:"root"`
	NodeCount int     `json:"node_count"`
	CreatedAt string  `json:"created_at"`
}

// PanDTO is a collection's pan offset
type PanDTO struct {
	PanX float64 `json:"pan_x"`
	PanY float64 `json:"pan_y"`
}

// TreeItemDTO is one visible row of a collection outline
type TreeItemDTO struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Label      string `json:"label"`
	Depth      int    `json:"depth"`
	Expandable bool   `json:"expandable"`
	Expanded   bool   `json:"expanded"`
}

// NewTreeItemDTOs converts outline rows
func NewTreeItemDTOs(items []layout.TreeItem) []TreeItemDTO {
	out := make([]TreeItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, TreeItemDTO{
			ID:         item.Node.ID().String(),
			Kind:       item.Node.Kind().String(),
			Label:      item.Node.DisplayLabel(),
			Depth:      item.Depth,
			Expandable: item.Expandable,
			Expanded:   item.Expanded,
		})
	}
	return out
}

// FieldDTO describes one field of a creation form
type FieldDTO struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	InputType    string   `json:"input_type"`
	DefaultValue string   `json:"default_value"`
	Options      []string `json:"options,omitempty"`
}

// NewFieldDTOs converts schema definitions
func NewFieldDTOs(defs []schema.FieldDefinition) []FieldDTO {
	out := make([]FieldDTO, 0, len(defs))
	for _, def := range defs {
		out = append(out, FieldDTO{
			Name:         def.Name,
			Label:        def.Label,
			InputType:    string(def.InputType),
			DefaultValue: def.DefaultValue,
			Options:      def.Options,
		})
	}
	return out
}

// MergeDTO reports the outcome of a merge
type MergeDTO struct {
	Strategy  string  `json:"strategy"`
	Container NodeDTO `json:"container"`
}

// DragDTO reports the drag state of a collection after a drag callback.
// Merge is set when a drag end merged the dragged node.
type DragDTO struct {
	Mode         string      `json:"mode"`
	NodeID       string      `json:"node_id"`
	Position     PositionDTO `json:"position"`
	DropTargetID string      `json:"drop_target_id,omitempty"`
	Merge        *MergeDTO   `json:"merge,omitempty"`
}

// TrailPointDTO is one mouse trail sample
type TrailPointDTO struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	CreatedAt string  `json:"created_at"`
}

// NewTrailPointDTOs converts trail samples
func NewTrailPointDTOs(points []interaction.TrailPoint) []TrailPointDTO {
	out := make([]TrailPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, TrailPointDTO{
			ID:        p.ID,
			X:         p.X,
			Y:         p.Y,
			CreatedAt: p.CreatedAt.Format(time.RFC3339Nano),
		})
	}
	return out
}
