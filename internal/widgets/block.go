package widgets

import (
	"github.com/dshills/cellgrid/internal/renderer/buffer"
	"github.com/dshills/cellgrid/internal/renderer/core"
)

// BorderSet is the glyphs of a box border.
type BorderSet struct {
	Horizontal, Vertical                       string
	TopLeft, TopRight, BottomLeft, BottomRight string
}

var (
	PlainBorder   = BorderSet{"─", "│", "┌", "┐", "└", "┘"}
	RoundedBorder = BorderSet{"─", "│", "╭", "╮", "╰", "╯"}
	DoubleBorder  = BorderSet{"═", "║", "╔", "╗", "╚", "╝"}
)

// Block draws a border with an optional title on the top edge.
type Block struct {
	Title       string
	Border      BorderSet
	BorderStyle core.Style
	TitleStyle  core.Style
}

// NewBlock creates a block with a plain border.
func NewBlock(title string) Block {
	return Block{Title: title, Border: PlainBorder}
}

// Inner returns the part of area inside the border.
func (b Block) Inner(area core.Rect) core.Rect {
	return area.Inner(core.NewMargin(1, 1))
}

func (b Block) Render(area core.Rect, buf *buffer.Buffer) {
	if area.Width < 2 || area.Height < 2 {
		return
	}
	left, top := area.X, area.Y
	right, bottom := area.Right()-1, area.Bottom()-1

	for x := left + 1; x < right; x++ {
		_ = buf.SetCell(x, top, core.NewStyledCell(b.Border.Horizontal, b.BorderStyle))
		_ = buf.SetCell(x, bottom, core.NewStyledCell(b.Border.Horizontal, b.BorderStyle))
	}
	for y := top + 1; y < bottom; y++ {
		_ = buf.SetCell(left, y, core.NewStyledCell(b.Border.Vertical, b.BorderStyle))
		_ = buf.SetCell(right, y, core.NewStyledCell(b.Border.Vertical, b.BorderStyle))
	}
	_ = buf.SetCell(left, top, core.NewStyledCell(b.Border.TopLeft, b.BorderStyle))
	_ = buf.SetCell(right, top, core.NewStyledCell(b.Border.TopRight, b.BorderStyle))
	_ = buf.SetCell(left, bottom, core.NewStyledCell(b.Border.BottomLeft, b.BorderStyle))
	_ = buf.SetCell(right, bottom, core.NewStyledCell(b.Border.BottomRight, b.BorderStyle))

	if b.Title != "" && area.Width > 2 {
		buf.SetStringN(left+1, top, b.Title, int(area.Width)-2, b.TitleStyle)
	}
}
