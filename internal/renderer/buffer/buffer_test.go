package buffer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/cellgrid/internal/renderer/core"
)

func mustCell(t *testing.T, b *Buffer, x, y uint16) core.Cell {
	t.Helper()
	c, err := b.Cell(x, y)
	if err != nil {
		t.Fatalf("Cell(%d, %d): %v", x, y, err)
	}
	return c
}

func TestNewBuffer(t *testing.T) {
	b := New(core.NewRect(2, 3, 4, 5))

	if b.Len() != 20 {
		t.Errorf("expected 20 cells, got %d", b.Len())
	}
	for _, c := range b.Cells() {
		if !c.Equals(core.EmptyCell()) {
			t.Fatalf("new buffer should be blank, got %+v", c)
		}
	}
}

func TestBufferIndexing(t *testing.T) {
	b := New(core.NewRect(10, 20, 5, 3))

	i, err := b.IndexOf(12, 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i != 7 {
		t.Errorf("expected index 7, got %d", i)
	}

	p, err := b.PosOf(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != core.NewPosition(12, 21) {
		t.Errorf("expected (12, 21), got %v", p)
	}

	for _, pos := range []core.Position{{X: 9, Y: 20}, {X: 15, Y: 20}, {X: 10, Y: 23}, {X: 0, Y: 0}} {
		if _, err := b.IndexOf(pos.X, pos.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("IndexOf(%v): expected ErrOutOfBounds, got %v", pos, err)
		}
	}
	if _, err := b.PosOf(15); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("PosOf(15): expected ErrOutOfBounds, got %v", err)
	}
	if err := b.SetCell(0, 0, core.NewCell("x")); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetCell out of bounds: expected ErrOutOfBounds, got %v", err)
	}
}

func TestBufferSetString(t *testing.T) {
	b := New(core.NewRect(0, 0, 5, 2))
	style := core.NewStyle(core.ColorRed)

	x, y := b.SetString(1, 0, "abc", style)
	if x != 4 || y != 0 {
		t.Errorf("expected end (4, 0), got (%d, %d)", x, y)
	}
	if diff := cmp.Diff([]string{" abc ", "     "}, b.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if c := mustCell(t, b, 2, 0); !c.Style.Equals(style) {
		t.Errorf("expected red style, got %v", c.Style)
	}
}

func TestBufferSetStringClipsAtEdge(t *testing.T) {
	b := New(core.NewRect(0, 0, 4, 1))

	x, _ := b.SetString(2, 0, "hello", core.DefaultStyle())
	if x != 4 {
		t.Errorf("expected end 4, got %d", x)
	}
	if got := b.Lines()[0]; got != "  he" {
		t.Errorf("expected %q, got %q", "  he", got)
	}

	// Out of bounds start writes nothing.
	x, y := b.SetString(9, 9, "zz", core.DefaultStyle())
	if x != 9 || y != 9 {
		t.Errorf("expected unchanged position, got (%d, %d)", x, y)
	}
}

func TestBufferSetStringWide(t *testing.T) {
	b := New(core.NewRect(0, 0, 5, 1))

	x, _ := b.SetString(0, 0, "a中b", core.DefaultStyle())
	if x != 4 {
		t.Errorf("expected end 4, got %d", x)
	}
	if c := mustCell(t, b, 1, 0); c.Symbol != "中" {
		t.Errorf("expected wide glyph at 1, got %q", c.Symbol)
	}
	if c := mustCell(t, b, 2, 0); !c.Continuation {
		t.Error("expected continuation at 2")
	}
	if got := b.Lines()[0]; got != "a中b " {
		t.Errorf("expected %q, got %q", "a中b ", got)
	}
}

func TestBufferSetStringWideTruncated(t *testing.T) {
	b := New(core.NewRect(0, 0, 4, 1))

	x, _ := b.SetString(0, 0, "abc中", core.DefaultStyle())
	if x != 3 {
		t.Errorf("wide glyph that does not fit should not be written, end=%d", x)
	}
	if c := mustCell(t, b, 3, 0); !c.IsEmpty() {
		t.Errorf("expected blank last column, got %+v", c)
	}

	b.Reset()
	x, _ = b.SetStringN(0, 0, "中中", 3, core.DefaultStyle())
	if x != 2 {
		t.Errorf("SetStringN should stop before straddling the limit, end=%d", x)
	}
}

func TestBufferOverwriteWideHalf(t *testing.T) {
	b := New(core.NewRect(0, 0, 4, 1))
	b.SetString(0, 0, "中", core.DefaultStyle())

	if err := b.SetCell(1, 0, core.NewCell("x")); err != nil {
		t.Fatal(err)
	}
	if got := b.Lines()[0]; got != " x  " {
		t.Errorf("overwriting continuation should blank owner, got %q", got)
	}

	b.Reset()
	b.SetString(1, 0, "中", core.DefaultStyle())
	if err := b.SetCell(1, 0, core.NewCell("y")); err != nil {
		t.Fatal(err)
	}
	if c := mustCell(t, b, 2, 0); c.Continuation {
		t.Error("overwriting owner should blank its continuation")
	}
	if got := b.Lines()[0]; got != " y  " {
		t.Errorf("expected %q, got %q", " y  ", got)
	}
}

func TestBufferSetStyleAndFill(t *testing.T) {
	b := New(core.NewRect(0, 0, 4, 4))
	style := core.DefaultStyle().Bold()

	b.SetStyle(core.NewRect(2, 2, 10, 10), style)
	if c := mustCell(t, b, 3, 3); !c.Style.Equals(style) {
		t.Error("SetStyle should style cells inside area")
	}
	if c := mustCell(t, b, 1, 1); !c.Style.IsDefault() {
		t.Error("SetStyle should not touch cells outside area")
	}

	b.Fill(core.NewRect(0, 0, 2, 1), core.NewCell("#"))
	if got := b.Lines()[0]; got != "##  " {
		t.Errorf("expected %q, got %q", "##  ", got)
	}
}

func TestBufferResizePreservesOverlap(t *testing.T) {
	b := FromLines("abcd", "efgh")

	b.Resize(core.NewRect(1, 0, 4, 3))
	if b.Area() != core.NewRect(1, 0, 4, 3) {
		t.Fatalf("unexpected area %v", b.Area())
	}
	want := []string{"bcd ", "fgh ", "    "}
	if diff := cmp.Diff(want, b.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferResizeCutsWideGlyph(t *testing.T) {
	b := FromLines("ab中")

	b.Resize(core.NewRect(0, 0, 3, 1))
	if got := b.Lines()[0]; got != "ab " {
		t.Errorf("wide glyph cut by resize should be blanked, got %q", got)
	}

	b = FromLines("中ab")
	b.Resize(core.NewRect(1, 0, 3, 1))
	if c := mustCell(t, b, 1, 0); c.Continuation {
		t.Error("orphaned continuation should be blanked")
	}
}

func TestBufferMerge(t *testing.T) {
	one := FromLines("11", "11")
	two := New(core.NewRect(2, 2, 2, 2))
	two.SetString(2, 2, "22", core.DefaultStyle())
	two.SetString(2, 3, "22", core.DefaultStyle())

	one.Merge(two)
	if one.Area() != core.NewRect(0, 0, 4, 4) {
		t.Fatalf("expected union area, got %v", one.Area())
	}
	want := []string{"11  ", "11  ", "  22", "  22"}
	if diff := cmp.Diff(want, one.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferMergeOverlapOtherWins(t *testing.T) {
	base := FromLines("aaaa")
	top := New(core.NewRect(1, 0, 2, 1))
	top.SetString(1, 0, "bb", core.DefaultStyle())

	base.Merge(top)
	if got := base.Lines()[0]; got != "abba" {
		t.Errorf("expected %q, got %q", "abba", got)
	}
}

func TestBufferMergeAt(t *testing.T) {
	base := New(core.NewRect(0, 0, 4, 2))
	patch := FromLines("xy")

	base.MergeAt(patch, core.NewOffset(2, 1))
	if base.Area() != core.NewRect(0, 0, 4, 2) {
		t.Fatalf("area should not grow, got %v", base.Area())
	}
	want := []string{"    ", "  xy"}
	if diff := cmp.Diff(want, base.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferCloneAndEquals(t *testing.T) {
	b := FromLines("abc")
	c := b.Clone()

	if !b.Equals(c) {
		t.Error("clone should equal original")
	}
	c.SetString(0, 0, "z", core.DefaultStyle())
	if b.Equals(c) {
		t.Error("modifying clone should not affect original")
	}
	if b.Equals(New(core.NewRect(0, 0, 3, 2))) {
		t.Error("buffers with different areas should not be equal")
	}
}

func TestBufferString(t *testing.T) {
	b := FromLines("ab", "cd")
	if got := b.String(); got != "ab\ncd" {
		t.Errorf("expected %q, got %q", "ab\ncd", got)
	}
}
