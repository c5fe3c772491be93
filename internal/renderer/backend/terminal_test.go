package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cellgrid/internal/renderer/buffer"
	"github.com/dshills/cellgrid/internal/renderer/core"
)

func newSimTerminal(t *testing.T, width, height int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.Shutdown)
	screen.SetSize(width, height)
	return term, screen
}

func TestTerminalDraw(t *testing.T) {
	term, screen := newSimTerminal(t, 10, 2)

	err := term.Draw([]buffer.Instruction{
		{X: 1, Y: 1, Style: core.NewStyle(core.ColorRed), Content: "a中b", Width: 4},
	})
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if err := term.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	cells, width, _ := screen.GetContents()
	row := cells[width : 2*width]
	for _, want := range []struct {
		x int
		r rune
	}{{1, 'a'}, {2, '中'}, {4, 'b'}} {
		if len(row[want.x].Runes) == 0 || row[want.x].Runes[0] != want.r {
			t.Errorf("cell %d: expected %q, got %q", want.x, want.r, row[want.x].Runes)
		}
	}
}

func TestTerminalSize(t *testing.T) {
	term, _ := newSimTerminal(t, 12, 5)

	size, err := term.Size()
	if err != nil {
		t.Fatal(err)
	}
	if size != core.NewSize(12, 5) {
		t.Errorf("expected 12x5, got %v", size)
	}

	ws, err := term.WindowSize()
	if err != nil {
		t.Fatal(err)
	}
	if ws.ColumnsRows != size {
		t.Errorf("expected columns/rows %v, got %v", size, ws.ColumnsRows)
	}
}

func TestTerminalClearRegionUnsupported(t *testing.T) {
	term, _ := newSimTerminal(t, 4, 4)

	if err := term.ClearRegion(ClearAll); err != nil {
		t.Errorf("ClearAll should succeed: %v", err)
	}
	if err := term.ClearRegion(ClearAfterCursor); !IsUnsupported(err) {
		t.Errorf("expected unsupported error, got %v", err)
	}
}

func TestTerminalCursor(t *testing.T) {
	term, _ := newSimTerminal(t, 4, 4)

	if err := term.SetCursorPosition(core.NewPosition(2, 3)); err != nil {
		t.Fatal(err)
	}
	if err := term.ShowCursor(); err != nil {
		t.Fatal(err)
	}
	pos, _ := term.CursorPosition()
	if pos != core.NewPosition(2, 3) {
		t.Errorf("expected (2, 3), got %v", pos)
	}
	if err := term.HideCursor(); err != nil {
		t.Fatal(err)
	}
}

func TestConvertStyle(t *testing.T) {
	s := convertStyle(core.NewStyle(core.ColorRed).Bg(core.Indexed(4)).Bold())
	want := tcell.StyleDefault.
		Foreground(tcell.PaletteColor(1)).
		Background(tcell.PaletteColor(4)).
		Bold(true)
	if s != want {
		t.Errorf("expected %v, got %v", want, s)
	}

	if convertStyle(core.DefaultStyle()) != tcell.StyleDefault {
		t.Error("default style should map to tcell.StyleDefault")
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in       tcell.Key
		expected Key
	}{
		{tcell.KeyRune, KeyRune},
		{tcell.KeyEscape, KeyEscape},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyCtrlC, KeyCtrlC},
		{tcell.KeyHome, KeyHome},
		{tcell.KeyPgDn, KeyPageDown},
		{tcell.KeyF5, KeyOther},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.expected {
			t.Errorf("convertKey(%v) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}

func TestTerminalEvents(t *testing.T) {
	term, screen := newSimTerminal(t, 4, 4)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	ev := term.PollEvent()
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'q' {
		t.Errorf("expected rune q, got %+v", ev)
	}

	term.Interrupt()
	if ev := term.PollEvent(); ev.Type != EventNone {
		t.Errorf("interrupt should surface as EventNone, got %+v", ev)
	}
}
