package main

import (
	"fmt"
	"strings"

	"github.com/dshills/cellgrid/internal/config"
	"github.com/dshills/cellgrid/internal/renderer"
	"github.com/dshills/cellgrid/internal/renderer/backend"
	"github.com/dshills/cellgrid/internal/renderer/core"
	"github.com/dshills/cellgrid/internal/renderer/layout"
	"github.com/dshills/cellgrid/internal/widgets"
)

var (
	titleStyle   = core.NewStyle(core.ColorYellow).Bold()
	segmentStyle = core.NewStyle(core.ColorCyan)
	spacerStyle  = core.DefaultStyle().Bg(core.Indexed(236))
	statusStyle  = core.DefaultStyle().Reverse()
	activeStyle  = core.NewStyle(core.ColorGreen).Bold()

	// Segment labels shade from gradientFrom to gradientTo.
	gradientFrom = core.RGB(0x5f, 0xd7, 0xff)
	gradientTo   = core.RGB(0xff, 0x87, 0xaf)
)

// explorer is the constraint explorer shown by the demo: the configured
// layout split across the screen, one bordered block per segment.
type explorer struct {
	layout   layout.Layout
	selected widgets.ScrollbarState
	help     bool
	quit     bool
	message  string
}

func newExplorer(cfg *config.Config) (*explorer, error) {
	e := &explorer{}
	if err := e.apply(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// apply replaces the layout with the one described by cfg.
func (e *explorer) apply(cfg *config.Config) error {
	l, err := cfg.Demo.Layout()
	if err != nil {
		return err
	}
	e.layout = l
	e.selected.ContentLength = len(l.Constraints)
	e.selected.ViewportContentLength = 1
	e.selected.Position = min(e.selected.Position, max(len(l.Constraints)-1, 0))
	return nil
}

func (e *explorer) draw(f *renderer.Frame) {
	rows := f.Split(layout.Vertical(layout.Length(1), layout.Fill(1), layout.Length(1)), f.Area())
	f.RenderWidget(widgets.NewLabel("cellgrid constraint explorer").
		WithStyle(titleStyle).
		WithAlignment(widgets.AlignCenter), rows[0])

	body := f.Split(layout.Horizontal(layout.Fill(1), layout.Length(1)), rows[1])
	segments, spacers := f.SplitWithSpacers(e.layout, body[0])
	for _, sp := range spacers {
		f.Buffer().SetStyle(sp, spacerStyle)
	}
	for i, seg := range segments {
		block := widgets.NewBlock(fmt.Sprintf("%d %v", i, e.layout.Constraints[i]))
		block.BorderStyle = segmentStyle
		if i == e.selected.Position {
			block.BorderStyle = activeStyle
			block.Border = widgets.DoubleBorder
		}
		f.RenderWidget(block, seg)
		label := widgets.NewLabel(seg.String()).
			WithStyle(core.NewStyle(segmentColor(i, len(segments)))).
			WithAlignment(widgets.AlignCenter)
		f.RenderWidget(label, block.Inner(seg))
	}

	renderer.RenderStatefulWidget(f, widgets.NewScrollbar(widgets.VerticalRight), body[1], &e.selected)

	status := fmt.Sprintf(" %v | flex %v | spacing %d | frame %d ", e.layout.Direction, e.layout.Flex, e.layout.Spacing, f.Count())
	if e.message != "" {
		status += "| " + e.message + " "
	}
	f.RenderWidget(widgets.NewLabel(status).WithStyle(statusStyle), rows[2])

	if e.help {
		drawHelp(f)
	}
}

func segmentColor(i, n int) core.Color {
	if n < 2 {
		return gradientFrom
	}
	return gradientFrom.Blend(gradientTo, float64(i)/float64(n-1))
}

// handle applies one input event. It returns true if the screen should be redrawn.
func (e *explorer) handle(ev backend.Event) bool {
	switch ev.Type {
	case backend.EventResize:
		return true
	case backend.EventKey:
	default:
		return false
	}

	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		e.quit = true
	case backend.KeyTab:
		e.layout.Flex = (e.layout.Flex + 1) % (layout.FlexSpaceAround + 1)
	case backend.KeyDown, backend.KeyRight:
		e.selected.Next()
	case backend.KeyUp, backend.KeyLeft:
		e.selected.Prev()
	case backend.KeyHome, backend.KeyPageUp:
		e.selected.First()
	case backend.KeyEnd, backend.KeyPageDown:
		e.selected.Last()
	case backend.KeyRune:
		switch ev.Rune {
		case 'q':
			e.quit = true
		case '?':
			e.help = !e.help
		case 'd':
			e.layout.Direction = 1 - e.layout.Direction
		case '+':
			e.layout.Spacing++
		case '-':
			e.layout.Spacing = max(e.layout.Spacing, 1) - 1
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// drawHelp shows the key bindings in a box centred over the layout.
func drawHelp(f *renderer.Frame) {
	lines := []string{
		"tab   next flex mode",
		"d     swap direction",
		"+ -   spacing",
		"↑ ↓   select segment",
		"home  first, end last",
		"?     toggle help",
		"q     quit",
	}
	vertical := layout.Vertical(layout.Length(uint16(len(lines)+2))).WithFlex(layout.FlexCenter)
	horizontal := layout.Horizontal(layout.Length(26)).WithFlex(layout.FlexCenter)
	area := f.Split(horizontal, f.Split(vertical, f.Area())[0])[0]

	block := widgets.NewBlock("help")
	block.Border = widgets.RoundedBorder
	f.RenderWidget(widgets.Clear{}, area)
	f.RenderWidget(block, area)
	f.RenderWidget(widgets.NewLabel(strings.Join(lines, "\n")), block.Inner(area))
}
