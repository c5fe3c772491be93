package widgets

import (
	"fmt"
	"strings"

	"github.com/dshills/cellgrid/internal/renderer/buffer"
	"github.com/dshills/cellgrid/internal/renderer/core"
)

// Alignment positions text horizontally within an area.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// ParseAlignment parses "left", "center" or "right".
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(s) {
	case "left":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return 0, fmt.Errorf("unknown alignment %q", s)
}

// Label draws one line of text per area row. Lines past the area height
// are dropped and long lines are cut at the area width.
type Label struct {
	Text      string
	Style     core.Style
	Alignment Alignment
}

// NewLabel creates a left-aligned label.
func NewLabel(text string) Label {
	return Label{Text: text}
}

// WithStyle returns a copy drawn in style.
func (l Label) WithStyle(style core.Style) Label {
	l.Style = style
	return l
}

// WithAlignment returns a copy aligned with a.
func (l Label) WithAlignment(a Alignment) Label {
	l.Alignment = a
	return l
}

func (l Label) Render(area core.Rect, buf *buffer.Buffer) {
	buf.SetStyle(area, l.Style)
	for i, line := range strings.Split(l.Text, "\n") {
		if i >= int(area.Height) {
			return
		}
		width := core.StringWidth(line)
		x := area.X
		if width < int(area.Width) {
			switch l.Alignment {
			case AlignCenter:
				x += uint16((int(area.Width) - width) / 2)
			case AlignRight:
				x += uint16(int(area.Width) - width)
			}
		}
		buf.SetStringN(x, area.Y+uint16(i), line, int(area.Right()-x), l.Style)
	}
}
