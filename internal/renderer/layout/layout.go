// Package layout splits rectangles into sub-rectangles according to
// size constraints along one axis.
//
// The solver is deterministic and integer-only apart from percentage and
// ratio rounding. Segments and spacers always tile the split axis exactly:
// their lengths sum to the axis length after margins.
package layout

import (
	"fmt"
	"strings"

	"github.com/dshills/cellgrid/internal/renderer/core"
)

// Direction is the axis a Layout splits along.
type Direction uint8

// Directions.
const (
	DirectionVertical Direction = iota
	DirectionHorizontal
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionVertical:
		return "vertical"
	case DirectionHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// ParseDirection parses "vertical" or "horizontal".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v", "":
		return DirectionVertical, nil
	case "horizontal", "h":
		return DirectionHorizontal, nil
	}
	return DirectionVertical, fmt.Errorf("unknown direction %q", s)
}

// Flex decides where leftover space goes when no Fill constraint claims it.
type Flex uint8

// Flex modes.
const (
	FlexStart        Flex = iota // segments packed at the start, gap at the end
	FlexCenter                   // gap split between both ends
	FlexEnd                      // segments packed at the end
	FlexSpaceBetween             // gap spread between segments only
	FlexSpaceAround              // gap spread around and between segments
)

var flexNames = [...]string{
	FlexStart:        "start",
	FlexCenter:       "center",
	FlexEnd:          "end",
	FlexSpaceBetween: "space-between",
	FlexSpaceAround:  "space-around",
}

// String returns the flex mode name.
func (f Flex) String() string {
	if int(f) < len(flexNames) {
		return flexNames[f]
	}
	return "unknown"
}

// ParseFlex parses a flex mode name such as "space-between".
func ParseFlex(s string) (Flex, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if norm == "" {
		return FlexStart, nil
	}
	for i, name := range flexNames {
		if name == norm || strings.ReplaceAll(name, "-", "") == norm {
			return Flex(i), nil
		}
	}
	return FlexStart, fmt.Errorf("unknown flex mode %q", s)
}

// Layout describes how to split a rectangle.
type Layout struct {
	Direction   Direction
	Constraints []Constraint
	Margin      core.Margin
	Spacing     uint16
	Flex        Flex
}

// New creates a layout with the given direction and constraints.
func New(direction Direction, constraints ...Constraint) Layout {
	return Layout{Direction: direction, Constraints: constraints}
}

// Vertical creates a layout that stacks segments top to bottom.
func Vertical(constraints ...Constraint) Layout {
	return New(DirectionVertical, constraints...)
}

// Horizontal creates a layout that places segments left to right.
func Horizontal(constraints ...Constraint) Layout {
	return New(DirectionHorizontal, constraints...)
}

// WithMargin returns a copy of l with the given margin.
func (l Layout) WithMargin(m core.Margin) Layout {
	l.Margin = m
	return l
}

// WithSpacing returns a copy of l with the given spacing between segments.
func (l Layout) WithSpacing(spacing uint16) Layout {
	l.Spacing = spacing
	return l
}

// WithFlex returns a copy of l with the given flex mode.
func (l Layout) WithFlex(f Flex) Layout {
	l.Flex = f
	return l
}

// Split divides area into one rectangle per constraint.
func (l Layout) Split(area core.Rect) []core.Rect {
	segments, _ := l.SplitWithSpacers(area)
	return segments
}

// SplitWithSpacers divides area and also returns the len(Constraints)+1
// spacer rectangles: the leading gap, each inner gap, and the trailing gap.
// An empty constraint list yields no segments and no spacers.
func (l Layout) SplitWithSpacers(area core.Rect) (segments, spacers []core.Rect) {
	n := len(l.Constraints)
	if n == 0 {
		return []core.Rect{}, []core.Rect{}
	}

	inner := area.Inner(l.Margin)
	total := inner.Height
	if l.Direction == DirectionHorizontal {
		total = inner.Width
	}

	sizes, gaps := solve(int(total), l.Constraints, int(l.Spacing), l.Flex)

	segments = make([]core.Rect, n)
	spacers = make([]core.Rect, n+1)
	pos := 0
	for i := 0; i <= n; i++ {
		spacers[i] = l.slice(inner, pos, gaps[i])
		pos += gaps[i]
		if i == n {
			break
		}
		segments[i] = l.slice(inner, pos, sizes[i])
		pos += sizes[i]
	}
	return segments, spacers
}

// slice returns the part of inner at [start, start+length) along the split axis,
// spanning the full cross axis.
func (l Layout) slice(inner core.Rect, start, length int) core.Rect {
	if l.Direction == DirectionHorizontal {
		return core.Rect{X: inner.X + uint16(start), Y: inner.Y, Width: uint16(length), Height: inner.Height}
	}
	return core.Rect{X: inner.X, Y: inner.Y + uint16(start), Width: inner.Width, Height: uint16(length)}
}

// key returns a string that identifies the layout for caching.
func (l Layout) key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d|%d|%d|%d,%d", l.Direction, l.Flex, l.Spacing, l.Margin.Horizontal, l.Margin.Vertical)
	for _, c := range l.Constraints {
		sb.WriteByte('|')
		sb.WriteString(c.String())
	}
	return sb.String()
}
