package layout

import (
	"fmt"
	"time"

	"whiteboard/domain/core/entities"
	"whiteboard/domain/events"
	pkgerrors "whiteboard/pkg/errors"
)

// GridCell is the slot computed for the child at Index.
type GridCell struct {
	Index  int
	X, Y   float64
	Width  float64
	Height float64
}

// GridCells computes the staggered grid for n children in a viewport of
// the given size: one column per child, two row offsets alternating by
// index parity. Positions are in node coordinates, so the pan offset is
// subtracted. Returns nil when there is nothing to lay out.
func GridCells(n int, viewportWidth, viewportHeight, panX, panY, ratio float64) []GridCell {
	if n <= 0 || viewportWidth <= 0 || viewportHeight <= 0 {
		return nil
	}

	cellW := viewportWidth / float64(n)
	cellH := viewportHeight / 2

	cells := make([]GridCell, n)
	for i := range cells {
		row := 0.0
		if i%2 == 1 {
			row = cellH
		}
		cells[i] = GridCell{
			Index:  i,
			X:      float64(i)*cellW - panX,
			Y:      row - panY,
			Width:  ratio * cellW,
			Height: ratio * cellH,
		}
	}
	return cells
}

// ArrangeInGrid resizes and moves every child of collection onto its grid
// cell. It is a no-op for an empty collection or an unmeasured viewport.
func ArrangeInGrid(collection *entities.Node, viewportWidth, viewportHeight float64) error {
	if collection == nil || !collection.IsCollection() {
		return fmt.Errorf("arrange grid: %w", pkgerrors.ErrNotACollection)
	}

	nodes := collection.Nodes()
	cells := GridCells(len(nodes), viewportWidth, viewportHeight,
		collection.PanX(), collection.PanY(), collection.Config().GridNodeSizeRatio)
	if cells == nil {
		return nil
	}

	for i, cell := range cells {
		nodes[i].Resize(cell.Width, cell.Height)
		nodes[i].MoveTo(cell.X, cell.Y)
	}

	collection.RecordEvent(events.NewGridArranged(collection.ID(), len(nodes), viewportWidth, viewportHeight, time.Now()))
	return nil
}
