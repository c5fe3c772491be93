package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/dshills/cellgrid/internal/renderer"
	"github.com/dshills/cellgrid/internal/renderer/buffer"
	"github.com/dshills/cellgrid/internal/renderer/core"
)

// ScrollDirection is the direction Scroll moves the position.
type ScrollDirection int

const (
	ScrollForward ScrollDirection = iota
	ScrollBackward
)

// ScrollbarState is the caller-owned scroll position.
// A zero ContentLength hides the scrollbar.
type ScrollbarState struct {
	ContentLength int
	Position      int
	// ViewportContentLength is how much content is visible at once.
	// Zero means the track length.
	ViewportContentLength int
}

// NewScrollbarState creates a state for content of the given length.
func NewScrollbarState(contentLength int) ScrollbarState {
	return ScrollbarState{ContentLength: contentLength}
}

// Prev moves back one position, stopping at zero.
func (s *ScrollbarState) Prev() {
	s.Position = max(s.Position-1, 0)
}

// Next moves forward one position, stopping at the last content index.
func (s *ScrollbarState) Next() {
	s.Position = min(s.Position+1, max(s.ContentLength-1, 0))
}

// First moves to the start.
func (s *ScrollbarState) First() {
	s.Position = 0
}

// Last moves to the last content index.
func (s *ScrollbarState) Last() {
	s.Position = max(s.ContentLength-1, 0)
}

// Scroll moves one position in direction.
func (s *ScrollbarState) Scroll(direction ScrollDirection) {
	if direction == ScrollBackward {
		s.Prev()
		return
	}
	s.Next()
}

// ScrollbarOrientation places the scrollbar on one edge of its area.
type ScrollbarOrientation int

const (
	VerticalRight ScrollbarOrientation = iota
	VerticalLeft
	HorizontalBottom
	HorizontalTop
)

var orientationNames = []string{"vertical-right", "vertical-left", "horizontal-bottom", "horizontal-top"}

func (o ScrollbarOrientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return fmt.Sprintf("ScrollbarOrientation(%d)", int(o))
}

// ParseScrollbarOrientation parses names such as "vertical-right".
func ParseScrollbarOrientation(s string) (ScrollbarOrientation, error) {
	for i, name := range orientationNames {
		if strings.EqualFold(s, name) {
			return ScrollbarOrientation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scrollbar orientation %q", s)
}

// IsVertical returns true for the two vertical orientations.
func (o ScrollbarOrientation) IsVertical() bool {
	return o == VerticalRight || o == VerticalLeft
}

// ScrollbarSymbols is the set of glyphs a scrollbar draws with.
// An empty Track, Begin or End is not drawn.
type ScrollbarSymbols struct {
	Track string
	Thumb string
	Begin string
	End   string
}

var (
	DoubleVerticalSymbols   = ScrollbarSymbols{Track: "║", Thumb: "█", Begin: "▲", End: "▼"}
	DoubleHorizontalSymbols = ScrollbarSymbols{Track: "═", Thumb: "█", Begin: "◄", End: "►"}
	VerticalSymbols         = ScrollbarSymbols{Track: "│", Thumb: "█", Begin: "↑", End: "↓"}
	HorizontalSymbols       = ScrollbarSymbols{Track: "─", Thumb: "█", Begin: "←", End: "→"}
)

// Scrollbar draws a track, a thumb proportional to the visible content and
// optional arrows at both ends.
type Scrollbar struct {
	Orientation ScrollbarOrientation
	Symbols     ScrollbarSymbols
	ThumbStyle  core.Style
	TrackStyle  core.Style
	ArrowStyle  core.Style
}

var _ renderer.StatefulWidget[ScrollbarState] = Scrollbar{}

// NewScrollbar creates a scrollbar with the double-line symbols for its orientation.
func NewScrollbar(o ScrollbarOrientation) Scrollbar {
	sb := Scrollbar{Orientation: o, Symbols: DoubleHorizontalSymbols}
	if o.IsVertical() {
		sb.Symbols = DoubleVerticalSymbols
	}
	return sb
}

// WithSymbols returns a copy drawing with symbols.
func (sb Scrollbar) WithSymbols(symbols ScrollbarSymbols) Scrollbar {
	sb.Symbols = symbols
	return sb
}

// WithoutArrows returns a copy without begin and end symbols.
func (sb Scrollbar) WithoutArrows() Scrollbar {
	sb.Symbols.Begin, sb.Symbols.End = "", ""
	return sb
}

// WithStyle returns a copy using style for every part.
func (sb Scrollbar) WithStyle(style core.Style) Scrollbar {
	sb.ThumbStyle, sb.TrackStyle, sb.ArrowStyle = style, style, style
	return sb
}

// ThumbSpan maps the scroll position onto a track of trackLen cells.
// The thumb covers [start, end) and is at least one cell long. Both are
// zero when there is nothing to draw.
func ThumbSpan(trackLen int, state ScrollbarState) (start, end int) {
	if trackLen <= 0 || state.ContentLength <= 0 {
		return 0, 0
	}
	viewport := state.ViewportContentLength
	if viewport <= 0 {
		viewport = trackLen
	}

	maxPosition := float64(state.ContentLength - 1)
	position := min(max(float64(state.Position), 0), maxPosition)
	span := maxPosition + float64(viewport)
	track := float64(trackLen)

	start = int(math.Round(position * track / span))
	end = int(math.Round((position + float64(viewport)) * track / span))
	start = min(max(start, 0), trackLen-1)
	end = min(max(end, 0), trackLen)
	return start, start + max(end-start, 1)
}

// RenderStateful draws the scrollbar along one edge of area.
func (sb Scrollbar) RenderStateful(area core.Rect, buf *buffer.Buffer, state *ScrollbarState) {
	if area.IsEmpty() || state.ContentLength <= 0 {
		return
	}

	length := int(area.Width)
	if sb.Orientation.IsVertical() {
		length = int(area.Height)
	}
	cell := func(i int) (uint16, uint16) {
		switch sb.Orientation {
		case VerticalLeft:
			return area.X, area.Y + uint16(i)
		case HorizontalBottom:
			return area.X + uint16(i), area.Bottom() - 1
		case HorizontalTop:
			return area.X + uint16(i), area.Y
		default:
			return area.Right() - 1, area.Y + uint16(i)
		}
	}
	put := func(i int, symbol string, style core.Style) {
		x, y := cell(i)
		_ = buf.SetCell(x, y, core.NewStyledCell(symbol, style))
	}

	trackStart, trackEnd := 0, length
	if sb.Symbols.Begin != "" && trackEnd > trackStart {
		put(trackStart, sb.Symbols.Begin, sb.ArrowStyle)
		trackStart++
	}
	if sb.Symbols.End != "" && trackEnd > trackStart {
		trackEnd--
		put(trackEnd, sb.Symbols.End, sb.ArrowStyle)
	}

	if sb.Symbols.Track != "" {
		for i := trackStart; i < trackEnd; i++ {
			put(i, sb.Symbols.Track, sb.TrackStyle)
		}
	}
	start, end := ThumbSpan(trackEnd-trackStart, *state)
	for i := start; i < end; i++ {
		put(trackStart+i, sb.Symbols.Thumb, sb.ThumbStyle)
	}
}
