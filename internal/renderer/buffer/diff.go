package buffer

import (
	"strings"

	"github.com/dshills/cellgrid/internal/renderer/core"
)

// Instruction draws Content starting at (X, Y) in a single style.
type Instruction struct {
	X, Y    uint16
	Style   core.Style
	Content string
	// Width is the number of columns Content covers.
	Width int
}

// Cursor is the cursor state a frame asks for after drawing.
type Cursor struct {
	Visible  bool
	Position core.Position
}

// HiddenCursor is the cursor directive for frames that do not place a cursor.
var HiddenCursor = Cursor{}

// VisibleCursor returns a directive that shows the cursor at p.
func VisibleCursor(p core.Position) Cursor {
	return Cursor{Visible: true, Position: p}
}

// Patch is the result of diffing two buffers.
type Patch struct {
	Instructions []Instruction
	Cursor       Cursor
	// FullRepaint is set when the buffers covered different areas. Every
	// cell of the new buffer is drawn and the screen should be cleared first.
	FullRepaint bool
}

// Empty returns true if the patch draws nothing.
func (p Patch) Empty() bool {
	return len(p.Instructions) == 0
}

// Cells returns the number of columns the patch draws.
func (p Patch) Cells() int {
	n := 0
	for _, ins := range p.Instructions {
		n += ins.Width
	}
	return n
}

// Diff computes the instructions that turn prev into next on screen.
//
// Adjacent changed cells on the same row with the same style are coalesced
// into one instruction. Continuation cells are never emitted; they are
// covered by their wide grapheme. If prev is nil or covers a different area,
// every cell of next is emitted and FullRepaint is set.
func Diff(prev, next *Buffer, cursor Cursor) Patch {
	p := Patch{Cursor: cursor}
	full := prev == nil || prev.area != next.area
	p.FullRepaint = full

	width := int(next.area.Width)
	for row := 0; row < int(next.area.Height); row++ {
		var run *Instruction
		var sb strings.Builder
		flush := func() {
			if run != nil {
				run.Content = sb.String()
				p.Instructions = append(p.Instructions, *run)
				run = nil
				sb.Reset()
			}
		}

		x := 0
		for x < width {
			i := row*width + x
			c := next.cells[i]
			if c.Continuation {
				// Owner was unchanged or missing; nothing to draw here.
				flush()
				x++
				continue
			}
			w := c.Width()
			if !full && c.Equals(prev.cells[i]) {
				flush()
				x += w
				continue
			}
			if run != nil && run.Style.Equals(c.Style) && int(run.X-next.area.X)+run.Width == x {
				sb.WriteString(c.Content())
				run.Width += w
			} else {
				flush()
				run = &Instruction{
					X:     next.area.X + uint16(x),
					Y:     next.area.Y + uint16(row),
					Style: c.Style,
					Width: w,
				}
				sb.WriteString(c.Content())
			}
			x += w
		}
		flush()
	}
	return p
}
