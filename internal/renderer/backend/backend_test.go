package backend

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/cellgrid/internal/renderer/buffer"
	"github.com/dshills/cellgrid/internal/renderer/core"
)

func TestClearTypeString(t *testing.T) {
	tests := []struct {
		ct       ClearType
		expected string
	}{
		{ClearAll, "All"},
		{ClearAfterCursor, "AfterCursor"},
		{ClearBeforeCursor, "BeforeCursor"},
		{ClearCurrentLine, "CurrentLine"},
		{ClearUntilNewLine, "UntilNewLine"},
		{ClearType(42), "ClearType(42)"},
	}

	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.expected {
			t.Errorf("ClearType(%d).String() = %q, expected %q", int(tt.ct), got, tt.expected)
		}
	}
}

func TestParseClearType(t *testing.T) {
	ct, err := ParseClearType("untilnewline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct != ClearUntilNewLine {
		t.Errorf("expected UntilNewLine, got %v", ct)
	}
	if _, err := ParseClearType("sideways"); err == nil {
		t.Error("expected error for unknown clear type")
	}
}

func TestParseCursorStyle(t *testing.T) {
	tests := []struct {
		input    string
		expected CursorStyle
	}{
		{"block", CursorBlock},
		{"", CursorBlock},
		{"Underline", CursorUnderline},
		{"bar", CursorBar},
	}
	for _, tt := range tests {
		got, err := ParseCursorStyle(tt.input)
		if err != nil || got != tt.expected {
			t.Errorf("ParseCursorStyle(%q) = %v, %v; expected %v", tt.input, got, err, tt.expected)
		}
	}
	if _, err := ParseCursorStyle("triangle"); err == nil {
		t.Error("expected error for unknown cursor style")
	}
}

func TestClearRegionDefault(t *testing.T) {
	calls := 0
	clear := func() error {
		calls++
		return nil
	}

	if err := ClearRegionDefault(clear, ClearAll); err != nil {
		t.Fatalf("ClearAll should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected clear to be called once, got %d", calls)
	}

	err := ClearRegionDefault(clear, ClearCurrentLine)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	var uerr *UnsupportedError
	if !errors.As(err, &uerr) || uerr.Clear != ClearCurrentLine {
		t.Errorf("expected UnsupportedError for CurrentLine, got %#v", err)
	}
	if !IsUnsupported(err) {
		t.Error("IsUnsupported should report true")
	}
	if calls != 1 {
		t.Error("unsupported clear should not call clear")
	}
	if got := err.Error(); got != "clear region CurrentLine: operation not supported by backend" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestTestBackendDraw(t *testing.T) {
	b := NewTestBackend(6, 2)
	red := core.NewStyle(core.ColorRed)

	err := b.Draw([]buffer.Instruction{
		{X: 1, Y: 0, Style: red, Content: "ab", Width: 2},
		{X: 0, Y: 1, Style: core.DefaultStyle(), Content: "中x", Width: 3},
	})
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	want := []string{" ab   ", "中x   "}
	if diff := cmp.Diff(want, b.Lines()); diff != "" {
		t.Errorf("screen mismatch (-want +got):\n%s", diff)
	}
	c, _ := b.Buffer().Cell(2, 0)
	if !c.Style.Equals(red) {
		t.Errorf("expected red style, got %v", c.Style)
	}
	if len(b.Draws()) != 1 || len(b.Draws()[0]) != 2 {
		t.Errorf("expected one recorded draw with two instructions, got %v", b.Draws())
	}
}

func TestTestBackendCursor(t *testing.T) {
	b := NewTestBackend(10, 5)

	if !b.CursorVisible() {
		t.Error("cursor should start visible")
	}
	if err := b.HideCursor(); err != nil {
		t.Fatal(err)
	}
	if b.CursorVisible() {
		t.Error("cursor should be hidden")
	}
	if err := b.SetCursorPosition(core.NewPosition(3, 4)); err != nil {
		t.Fatal(err)
	}
	pos, err := b.CursorPosition()
	if err != nil {
		t.Fatal(err)
	}
	if pos != core.NewPosition(3, 4) {
		t.Errorf("expected (3, 4), got %v", pos)
	}
	if err := b.ShowCursor(); err != nil {
		t.Fatal(err)
	}
	if !b.CursorVisible() {
		t.Error("cursor should be visible")
	}
	if err := b.SetCursorStyle(CursorBar); err != nil {
		t.Fatal(err)
	}
	if b.CursorStyleValue() != CursorBar {
		t.Error("expected bar cursor style")
	}
}

func TestTestBackendClearRegion(t *testing.T) {
	tests := []struct {
		ct       ClearType
		expected []string
	}{
		{ClearAll, []string{"   ", "   ", "   "}},
		{ClearAfterCursor, []string{"abc", "d  ", "   "}},
		{ClearBeforeCursor, []string{"   ", "  f", "ghi"}},
		{ClearCurrentLine, []string{"abc", "   ", "ghi"}},
		{ClearUntilNewLine, []string{"abc", "d  ", "ghi"}},
	}

	for _, tt := range tests {
		t.Run(tt.ct.String(), func(t *testing.T) {
			b := NewTestBackend(3, 3)
			b.Buffer().SetString(0, 0, "abc", core.DefaultStyle())
			b.Buffer().SetString(0, 1, "def", core.DefaultStyle())
			b.Buffer().SetString(0, 2, "ghi", core.DefaultStyle())
			_ = b.SetCursorPosition(core.NewPosition(1, 1))

			if err := b.ClearRegion(tt.ct); err != nil {
				t.Fatalf("ClearRegion failed: %v", err)
			}
			if diff := cmp.Diff(tt.expected, b.Lines()); diff != "" {
				t.Errorf("screen mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]ClearType{tt.ct}, b.Clears()); diff != "" {
				t.Errorf("recorded clears mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTestBackendFailures(t *testing.T) {
	b := NewTestBackend(4, 4)
	ioErr := errors.New("broken pipe")

	b.Fail("flush", ioErr)
	if err := b.Flush(); !errors.Is(err, ioErr) {
		t.Errorf("expected injected error, got %v", err)
	}
	if b.Flushes() != 0 {
		t.Error("failed flush should not be counted")
	}

	b.Fail("flush", nil)
	if err := b.Flush(); err != nil {
		t.Errorf("expected failure to be cleared, got %v", err)
	}
	if b.Flushes() != 1 {
		t.Errorf("expected 1 flush, got %d", b.Flushes())
	}

	b.Fail("size", ioErr)
	if _, err := b.Size(); !errors.Is(err, ioErr) {
		t.Errorf("expected injected size error, got %v", err)
	}
}

func TestTestBackendResizeAndWindowSize(t *testing.T) {
	b := NewTestBackend(4, 2)
	b.Buffer().SetString(0, 0, "wxyz", core.DefaultStyle())

	b.Resize(2, 3)
	size, err := b.Size()
	if err != nil {
		t.Fatal(err)
	}
	if size != core.NewSize(2, 3) {
		t.Errorf("expected 2x3, got %v", size)
	}
	if got := b.Lines()[0]; got != "wx" {
		t.Errorf("resize should keep overlapping content, got %q", got)
	}

	b.SetPixelSize(core.NewSize(20, 48))
	ws, err := b.WindowSize()
	if err != nil {
		t.Fatal(err)
	}
	if ws.ColumnsRows != core.NewSize(2, 3) || ws.Pixels != core.NewSize(20, 48) {
		t.Errorf("unexpected window size %+v", ws)
	}
}

func TestTestBackendAppendLines(t *testing.T) {
	b := NewTestBackend(2, 2)
	b.Buffer().SetString(0, 0, "ab", core.DefaultStyle())
	b.Buffer().SetString(0, 1, "cd", core.DefaultStyle())
	_ = b.SetCursorPosition(core.NewPosition(1, 0))

	if err := b.AppendLines(2); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"cd", "  "}, b.Lines()); diff != "" {
		t.Errorf("screen mismatch (-want +got):\n%s", diff)
	}
	pos, _ := b.CursorPosition()
	if pos != core.NewPosition(0, 1) {
		t.Errorf("expected cursor at (0, 1), got %v", pos)
	}
}

func TestTestBackendAppendLinesEmptyScreen(t *testing.T) {
	tests := []struct {
		width, height uint16
	}{
		{5, 0},
		{0, 3},
		{0, 0},
	}

	for _, tt := range tests {
		b := NewTestBackend(tt.width, tt.height)
		if err := b.AppendLines(3); err != nil {
			t.Errorf("%dx%d: unexpected error: %v", tt.width, tt.height, err)
		}
		if pos, _ := b.CursorPosition(); pos != core.NewPosition(0, 0) {
			t.Errorf("%dx%d: expected cursor at origin, got %v", tt.width, tt.height, pos)
		}
	}
}
