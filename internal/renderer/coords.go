package renderer

import "github.com/dshills/cellgrid/internal/renderer/core"

// Geometry and style types re-exported from the core package.
type (
	Position = core.Position
	Size     = core.Size
	Offset   = core.Offset
	Margin   = core.Margin
	Rect     = core.Rect
	Style    = core.Style
	Color    = core.Color
	Cell     = core.Cell
)

// NewRect creates a rectangle, clamping it to the coordinate space.
func NewRect(x, y, width, height uint16) Rect {
	return core.NewRect(x, y, width, height)
}

// NewPosition creates a position.
func NewPosition(x, y uint16) Position {
	return core.NewPosition(x, y)
}
