package core

import (
	"fmt"
	"math"
)

// Position is a cell coordinate. The origin is the top-left corner.
type Position struct {
	X uint16
	Y uint16
}

// NewPosition creates a position.
func NewPosition(x, y uint16) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Size is a width and height in cells.
type Size struct {
	Width  uint16
	Height uint16
}

// Size bounds.
var (
	SizeZero = Size{}
	SizeMax  = Size{Width: math.MaxUint16, Height: math.MaxUint16}
)

// NewSize creates a size.
func NewSize(width, height uint16) Size {
	return Size{Width: width, Height: height}
}

// Area returns the number of cells covered.
func (s Size) Area() uint32 {
	return uint32(s.Width) * uint32(s.Height)
}

// String returns a string representation of the size.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Offset is a signed displacement used to move rectangles.
type Offset struct {
	X int32
	Y int32
}

// Offset bounds.
var (
	OffsetZero = Offset{}
	OffsetMin  = Offset{X: math.MinInt32, Y: math.MinInt32}
	OffsetMax  = Offset{X: math.MaxInt32, Y: math.MaxInt32}
)

// NewOffset creates an offset.
func NewOffset(x, y int32) Offset {
	return Offset{X: x, Y: y}
}

// Neg returns the negated offset.
// It panics if either component is math.MinInt32, whose negation does not fit.
func (o Offset) Neg() Offset {
	if o.X == math.MinInt32 || o.Y == math.MinInt32 {
		panic("core: negating offset overflows int32")
	}
	return Offset{X: -o.X, Y: -o.Y}
}

// Margin is the space kept free on each side of a rectangle.
type Margin struct {
	Horizontal uint16
	Vertical   uint16
}

// NewMargin creates a margin.
func NewMargin(horizontal, vertical uint16) Margin {
	return Margin{Horizontal: horizontal, Vertical: vertical}
}

// Rect is an axis-aligned rectangle of cells.
//
// Rects built with NewRect keep X+Width and Y+Height within uint16.
// Every operation below saturates instead of wrapping. A literal whose far
// edge overflows is first clamped the way NewRect clamps it.
type Rect struct {
	X      uint16
	Y      uint16
	Width  uint16
	Height uint16
}

// RectZero is the empty rectangle at the origin.
var RectZero = Rect{}

// NewRect creates a rectangle, clamping the size so the far edges stay representable.
func NewRect(x, y, width, height uint16) Rect {
	return Rect{
		X:      x,
		Y:      y,
		Width:  min(width, math.MaxUint16-x),
		Height: min(height, math.MaxUint16-y),
	}
}

// RectFromSize creates a rectangle at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// RectFromPositionSize creates a rectangle from its top-left corner and size.
func RectFromPositionSize(p Position, s Size) Rect {
	return NewRect(p.X, p.Y, s.Width, s.Height)
}

// Area returns the number of cells in the rectangle.
func (r Rect) Area() uint32 {
	return uint32(r.Width) * uint32(r.Height)
}

// IsEmpty returns true if the rectangle covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Width == 0 || r.Height == 0
}

// Left returns the first column.
func (r Rect) Left() uint16 { return r.X }

// Right returns the column just past the rectangle.
func (r Rect) Right() uint16 { return satAdd(r.X, r.Width) }

// Top returns the first row.
func (r Rect) Top() uint16 { return r.Y }

// Bottom returns the row just past the rectangle.
func (r Rect) Bottom() uint16 { return satAdd(r.Y, r.Height) }

// Position returns the top-left corner.
func (r Rect) Position() Position {
	return Position{X: r.X, Y: r.Y}
}

// Size returns the rectangle's size.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// AddOffset moves the rectangle by o. The position is clamped so the
// rectangle stays inside the representable plane; the size never changes.
func (r Rect) AddOffset(o Offset) Rect {
	r = NewRect(r.X, r.Y, r.Width, r.Height)
	r.X = clampAxis(int64(r.X)+int64(o.X), r.Width)
	r.Y = clampAxis(int64(r.Y)+int64(o.Y), r.Height)
	return r
}

// SubOffset moves the rectangle by -o with the same clamping as AddOffset.
// Unlike AddOffset(o.Neg()) it accepts OffsetMin.
func (r Rect) SubOffset(o Offset) Rect {
	r = NewRect(r.X, r.Y, r.Width, r.Height)
	r.X = clampAxis(int64(r.X)-int64(o.X), r.Width)
	r.Y = clampAxis(int64(r.Y)-int64(o.Y), r.Height)
	return r
}

// AddSize grows the rectangle. The new size saturates and is clamped
// so the far edges stay representable.
func (r Rect) AddSize(s Size) Rect {
	r.Width = min(satAdd(r.Width, s.Width), math.MaxUint16-r.X)
	r.Height = min(satAdd(r.Height, s.Height), math.MaxUint16-r.Y)
	return r
}

// SubSize shrinks the rectangle, saturating at zero.
func (r Rect) SubSize(s Size) Rect {
	r.Width = satSub(r.Width, s.Width)
	r.Height = satSub(r.Height, s.Height)
	return r
}

// AddOffsetAssign is the in-place form of AddOffset.
func (r *Rect) AddOffsetAssign(o Offset) { *r = r.AddOffset(o) }

// SubOffsetAssign is the in-place form of SubOffset.
func (r *Rect) SubOffsetAssign(o Offset) { *r = r.SubOffset(o) }

// AddSizeAssign is the in-place form of AddSize.
func (r *Rect) AddSizeAssign(s Size) { *r = r.AddSize(s) }

// SubSizeAssign is the in-place form of SubSize.
func (r *Rect) SubSizeAssign(s Size) { *r = r.SubSize(s) }

// Inner returns the rectangle shrunk by m on every side.
// When the margin does not fit, the result is empty at the original corner.
func (r Rect) Inner(m Margin) Rect {
	dh := uint32(m.Horizontal) * 2
	dv := uint32(m.Vertical) * 2
	if uint32(r.Width) < dh || uint32(r.Height) < dv {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{
		X:      satAdd(r.X, m.Horizontal),
		Y:      satAdd(r.Y, m.Vertical),
		Width:  r.Width - uint16(dh),
		Height: r.Height - uint16(dv),
	}
}

// Contains returns true if p lies inside the rectangle.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect returns true if other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Right() <= r.Right() &&
		other.Y >= r.Y && other.Bottom() <= r.Bottom()
}

// Intersects returns true if the two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && r.Right() > other.X &&
		r.Y < other.Bottom() && r.Bottom() > other.Y
}

// Intersection returns the overlapping region. Disjoint rectangles
// produce an empty rectangle.
func (r Rect) Intersection(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())
	return Rect{X: x1, Y: y1, Width: satSub(x2, x1), Height: satSub(y2, y1)}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	x1 := min(r.X, other.X)
	y1 := min(r.Y, other.Y)
	x2 := max(r.Right(), other.Right())
	y2 := max(r.Bottom(), other.Bottom())
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Clamp moves r inside other, shrinking it if it does not fit.
func (r Rect) Clamp(other Rect) Rect {
	width := min(r.Width, other.Width)
	height := min(r.Height, other.Height)
	x := min(max(r.X, other.X), satSub(other.Right(), width))
	y := min(max(r.Y, other.Y), satSub(other.Bottom(), height))
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Rows returns one single-row rectangle per row.
func (r Rect) Rows() []Rect {
	rows := make([]Rect, 0, r.Height)
	for y := r.Y; y < r.Bottom(); y++ {
		rows = append(rows, Rect{X: r.X, Y: y, Width: r.Width, Height: 1})
	}
	return rows
}

// Columns returns one single-column rectangle per column.
func (r Rect) Columns() []Rect {
	cols := make([]Rect, 0, r.Width)
	for x := r.X; x < r.Right(); x++ {
		cols = append(cols, Rect{X: x, Y: r.Y, Width: 1, Height: r.Height})
	}
	return cols
}

// String returns a string representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func satAdd(a, b uint16) uint16 {
	if s := uint32(a) + uint32(b); s <= math.MaxUint16 {
		return uint16(s)
	}
	return math.MaxUint16
}

func satSub(a, b uint16) uint16 {
	if a < b {
		return 0
	}
	return a - b
}

// clampAxis clamps a translated coordinate to [0, MaxUint16-extent].
func clampAxis(v int64, extent uint16) uint16 {
	hi := int64(math.MaxUint16 - extent)
	return uint16(min(max(v, 0), hi))
}
