package backend

import (
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cellgrid/internal/renderer/buffer"
	"github.com/dshills/cellgrid/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen        tcell.Screen
	mu            sync.Mutex
	cursor        core.Position
	cursorVisible bool
}

// NewTerminal creates a terminal backend on the controlling terminal.
// Init must be called before drawing.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing screen, such as a simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init puts the terminal into full-screen mode.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Draw(instructions []buffer.Instruction) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, ins := range instructions {
		style := convertStyle(ins.Style)
		x := int(ins.X)
		for _, g := range core.Graphemes(ins.Content) {
			if g.Width == 0 {
				continue
			}
			runes := []rune(g.Symbol)
			t.screen.SetContent(x, int(ins.Y), runes[0], runes[1:], style)
			x += g.Width
		}
	}
	return nil
}

func (t *Terminal) HideCursor() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
	t.cursorVisible = false
	return nil
}

func (t *Terminal) ShowCursor() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(int(t.cursor.X), int(t.cursor.Y))
	t.cursorVisible = true
	return nil
}

// CursorPosition returns the last position set; tcell does not report the real one.
func (t *Terminal) CursorPosition() (core.Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cursor, nil
}

func (t *Terminal) SetCursorPosition(pos core.Position) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor = pos
	if t.cursorVisible {
		t.screen.ShowCursor(int(pos.X), int(pos.Y))
	}
	return nil
}

func (t *Terminal) SetCursorStyle(style CursorStyle) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var tcellStyle tcell.CursorStyle
	switch style {
	case CursorUnderline:
		tcellStyle = tcell.CursorStyleSteadyUnderline
	case CursorBar:
		tcellStyle = tcell.CursorStyleSteadyBar
	default:
		tcellStyle = tcell.CursorStyleSteadyBlock
	}
	t.screen.SetCursorStyle(tcellStyle)
	return nil
}

func (t *Terminal) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	return nil
}

// ClearRegion supports only ClearAll; tcell redraws from its own cell model.
func (t *Terminal) ClearRegion(ct ClearType) error {
	return ClearRegionDefault(t.Clear, ct)
}

func (t *Terminal) Size() (core.Size, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	return core.NewSize(clampU16(w), clampU16(h)), nil
}

func (t *Terminal) WindowSize() (WindowSize, error) {
	size, err := t.Size()
	if err != nil {
		return WindowSize{}, err
	}
	ws := WindowSize{ColumnsRows: size}

	t.mu.Lock()
	defer t.mu.Unlock()

	tty, ok := t.screen.Tty()
	if !ok {
		return ws, nil
	}
	tws, err := tty.WindowSize()
	if err != nil {
		return WindowSize{}, fmt.Errorf("query window size: %w", err)
	}
	ws.Pixels = core.NewSize(clampU16(tws.PixelWidth), clampU16(tws.PixelHeight))
	return ws, nil
}

func (t *Terminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
	return nil
}

// Sync forces tcell to repaint every cell on the next flush.
func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Sync()
}

// Interrupt wakes a goroutine blocked in PollEvent, which returns EventNone.
func (t *Terminal) Interrupt() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// PollEvent blocks until the next input event. It returns EventNone after Shutdown.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	return convertEvent(ev)
}

// convertStyle maps a Style onto tcell. Reset colors become tcell.ColorDefault.
func convertStyle(s core.Style) tcell.Style {
	a := s.Attributes
	return tcell.StyleDefault.
		Foreground(convertColor(s.Foreground)).
		Background(convertColor(s.Background)).
		Bold(a.Has(core.AttrBold)).
		Dim(a.Has(core.AttrDim)).
		Italic(a.Has(core.AttrItalic)).
		Underline(a.Has(core.AttrUnderline)).
		Blink(a.Has(core.AttrBlink)).
		Reverse(a.Has(core.AttrReverse)).
		StrikeThrough(a.Has(core.AttrStrikethrough))
}

func convertColor(c core.Color) tcell.Color {
	switch c.Kind {
	case core.ColorKindIndexed:
		return tcell.PaletteColor(int(c.Index))
	case core.ColorKindRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.ColorDefault
}

func clampU16(v int) uint16 {
	return uint16(min(max(v, 0), math.MaxUint16))
}
