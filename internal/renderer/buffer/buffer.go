// Package buffer provides the cell grid widgets draw into and the diff
// that turns two grids into terminal draw instructions.
package buffer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/cellgrid/internal/renderer/core"
)

// ErrOutOfBounds is returned when a coordinate lies outside the buffer area.
var ErrOutOfBounds = errors.New("position outside buffer area")

// Buffer is a rectangular grid of cells stored row-major.
// Coordinates passed to its methods are absolute, not relative to the area.
type Buffer struct {
	area  core.Rect
	cells []core.Cell
}

// New creates a buffer covering area filled with empty cells.
func New(area core.Rect) *Buffer {
	return Filled(area, core.EmptyCell())
}

// Filled creates a buffer covering area with every cell set to cell.
func Filled(area core.Rect, cell core.Cell) *Buffer {
	cells := make([]core.Cell, area.Area())
	for i := range cells {
		cells[i] = cell
	}
	return &Buffer{area: area, cells: cells}
}

// FromLines creates a buffer at the origin from lines of text.
// The buffer is as wide as the widest line.
func FromLines(lines ...string) *Buffer {
	width := 0
	for _, l := range lines {
		width = max(width, core.StringWidth(l))
	}
	b := New(core.NewRect(0, 0, uint16(min(width, 0xFFFF)), uint16(min(len(lines), 0xFFFF))))
	for y, l := range lines {
		b.SetString(0, uint16(y), l, core.DefaultStyle())
	}
	return b
}

// Area returns the rectangle the buffer covers.
func (b *Buffer) Area() core.Rect {
	return b.area
}

// Len returns the number of cells.
func (b *Buffer) Len() int {
	return len(b.cells)
}

// Cells returns the backing cell slice in row-major order.
// Callers must not change its length.
func (b *Buffer) Cells() []core.Cell {
	return b.cells
}

// IndexOf returns the slice index of the absolute position (x, y).
func (b *Buffer) IndexOf(x, y uint16) (int, error) {
	if !b.area.Contains(core.NewPosition(x, y)) {
		return 0, fmt.Errorf("index (%d, %d) in %v: %w", x, y, b.area, ErrOutOfBounds)
	}
	return int(y-b.area.Y)*int(b.area.Width) + int(x-b.area.X), nil
}

// PosOf returns the absolute position of slice index i.
func (b *Buffer) PosOf(i int) (core.Position, error) {
	if i < 0 || i >= len(b.cells) {
		return core.Position{}, fmt.Errorf("index %d of %d cells: %w", i, len(b.cells), ErrOutOfBounds)
	}
	w := int(b.area.Width)
	return core.NewPosition(b.area.X+uint16(i%w), b.area.Y+uint16(i/w)), nil
}

// Cell returns the cell at (x, y).
func (b *Buffer) Cell(x, y uint16) (core.Cell, error) {
	i, err := b.IndexOf(x, y)
	if err != nil {
		return core.Cell{}, err
	}
	return b.cells[i], nil
}

// SetCell replaces the cell at (x, y). Overwriting either half of a wide
// grapheme blanks the other half.
func (b *Buffer) SetCell(x, y uint16, cell core.Cell) error {
	i, err := b.IndexOf(x, y)
	if err != nil {
		return err
	}
	b.put(i, cell)
	return nil
}

// SetString writes s starting at (x, y) and returns the position just after
// the last written cell. Text is clipped at the right edge of the buffer.
func (b *Buffer) SetString(x, y uint16, s string, style core.Style) (uint16, uint16) {
	return b.SetStringN(x, y, s, int(b.area.Width), style)
}

// SetStringN is SetString limited to maxWidth columns.
// A wide grapheme that would straddle the limit is not written.
func (b *Buffer) SetStringN(x, y uint16, s string, maxWidth int, style core.Style) (uint16, uint16) {
	start, err := b.IndexOf(x, y)
	if err != nil {
		return x, y
	}
	limit := min(maxWidth, int(b.area.Right())-int(x))
	col := 0
	for _, g := range core.Graphemes(s) {
		if g.Width == 0 {
			continue
		}
		if col+g.Width > limit {
			break
		}
		b.put(start+col, core.NewStyledCell(g.Symbol, style))
		for k := 1; k < g.Width; k++ {
			b.put(start+col+k, core.ContinuationCell(style))
		}
		col += g.Width
	}
	return x + uint16(col), y
}

// SetStyle applies style to every cell in area, clipped to the buffer.
func (b *Buffer) SetStyle(area core.Rect, style core.Style) {
	area = area.Intersection(b.area)
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			i, _ := b.IndexOf(x, y)
			b.cells[i].Style = style
		}
	}
}

// Fill sets every cell in area, clipped to the buffer, to cell.
func (b *Buffer) Fill(area core.Rect, cell core.Cell) {
	area = area.Intersection(b.area)
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			i, _ := b.IndexOf(x, y)
			b.put(i, cell)
		}
	}
}

// Reset blanks every cell.
func (b *Buffer) Reset() {
	for i := range b.cells {
		b.cells[i].Reset()
	}
}

// Resize changes the buffer area. Cells at absolute positions covered by
// both the old and new area keep their content; the rest are blank.
func (b *Buffer) Resize(area core.Rect) {
	if area == b.area {
		return
	}
	next := New(area)
	next.copyFrom(b, core.OffsetZero)
	*b = *next
}

// Merge composites other onto b. The area grows to the union of both areas
// and other's cells win where they overlap.
func (b *Buffer) Merge(other *Buffer) {
	b.MergeAt(other, core.OffsetZero)
}

// MergeAt is Merge with other's area moved by offset first.
func (b *Buffer) MergeAt(other *Buffer, offset core.Offset) {
	b.Resize(b.area.Union(other.area.AddOffset(offset)))
	b.copyFrom(other, offset)
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	cells := make([]core.Cell, len(b.cells))
	copy(cells, b.cells)
	return &Buffer{area: b.area, cells: cells}
}

// Equals returns true if both buffers cover the same area with equal cells.
func (b *Buffer) Equals(other *Buffer) bool {
	if b.area != other.area || len(b.cells) != len(other.cells) {
		return false
	}
	for i := range b.cells {
		if !b.cells[i].Equals(other.cells[i]) {
			return false
		}
	}
	return true
}

// Lines returns the content of each row as text.
func (b *Buffer) Lines() []string {
	w := int(b.area.Width)
	lines := make([]string, 0, b.area.Height)
	for row := 0; row < int(b.area.Height); row++ {
		lines = append(lines, core.StringFromCells(b.cells[row*w:(row+1)*w]))
	}
	return lines
}

// String returns the rows joined with newlines.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// copyFrom writes the cells of src, moved by offset, into b where they overlap.
func (b *Buffer) copyFrom(src *Buffer, offset core.Offset) {
	moved := src.area.AddOffset(offset)
	overlap := moved.Intersection(b.area)
	if overlap.IsEmpty() {
		return
	}
	srcW := int(src.area.Width)
	for y := overlap.Y; y < overlap.Bottom(); y++ {
		for x := overlap.X; x < overlap.Right(); x++ {
			si := int(y-moved.Y)*srcW + int(x-moved.X)
			di, _ := b.IndexOf(x, y)
			b.cells[di] = src.cells[si]
		}
		b.repairRow(y, overlap.X, overlap.Right())
	}
}

// put stores cell at index i, blanking any wide grapheme it breaks.
func (b *Buffer) put(i int, cell core.Cell) {
	b.breakGlyph(i)
	b.cells[i] = cell
}

// breakGlyph blanks the parts of a wide grapheme that covers index i,
// other than i itself.
func (b *Buffer) breakGlyph(i int) {
	w := int(b.area.Width)
	rowStart := i - i%w
	rowEnd := rowStart + w

	owner := i
	for owner > rowStart && b.cells[owner].Continuation {
		owner--
	}
	if b.cells[owner].Continuation {
		return
	}
	span := b.cells[owner].Width()
	if owner == i && span < 2 {
		return
	}
	if owner != i {
		if span <= i-owner {
			return
		}
		b.cells[owner].Reset()
	}
	for k := owner + 1; k < rowEnd && b.cells[k].Continuation; k++ {
		if k != i {
			b.cells[k].Reset()
		}
	}
}

// repairRow blanks wide-grapheme fragments on row y at the edges of [from, to).
func (b *Buffer) repairRow(y, from, to uint16) {
	w := int(b.area.Width)
	rowStart := int(y-b.area.Y) * w
	rowEnd := rowStart + w

	// Continuations at the left edge whose owner was replaced.
	left := rowStart + int(from-b.area.X)
	if left < rowEnd && b.cells[left].Continuation {
		owner := left - 1
		for owner >= rowStart && b.cells[owner].Continuation {
			owner--
		}
		if owner < rowStart || b.cells[owner].Width() <= left-owner {
			for k := left; k < rowEnd && b.cells[k].Continuation; k++ {
				b.cells[k].Reset()
			}
		}
	}

	// Wide graphemes in the range whose continuations are missing or cut off.
	for i := left; i < rowStart+int(to-b.area.X) && i < rowEnd; i++ {
		c := b.cells[i]
		if c.Continuation {
			continue
		}
		span := c.Width()
		ok := i+span <= rowEnd
		for k := 1; ok && k < span; k++ {
			ok = b.cells[i+k].Continuation
		}
		if !ok {
			b.cells[i].Reset()
		}
	}

	// Continuations just past the range that lost their owner.
	right := rowStart + int(to-b.area.X)
	if right < rowEnd && b.cells[right].Continuation {
		owner := right - 1
		for owner >= rowStart && b.cells[owner].Continuation {
			owner--
		}
		if owner < rowStart || b.cells[owner].Width() <= right-owner {
			for k := right; k < rowEnd && b.cells[k].Continuation; k++ {
				b.cells[k].Reset()
			}
		}
	}
}
