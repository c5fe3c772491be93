package widgets

import (
	"github.com/dshills/cellgrid/internal/renderer/buffer"
	"github.com/dshills/cellgrid/internal/renderer/core"
)

// Clear blanks its area. Render it before a popup so the content underneath does not show through.
type Clear struct{}

func (Clear) Render(area core.Rect, buf *buffer.Buffer) {
	buf.Fill(area, core.EmptyCell())
}
