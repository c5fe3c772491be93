package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/cellgrid/internal/config"
	"github.com/dshills/cellgrid/internal/logging"
	"github.com/dshills/cellgrid/internal/renderer"
	"github.com/dshills/cellgrid/internal/renderer/backend"
	"github.com/dshills/cellgrid/internal/renderer/layout"
)

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "none.toml")
}

func TestRunANSI(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-c", missingConfig(t), "-backend", "ansi", "-frames", "2", "-log-level", "error"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "cellgrid constraint explorer") {
		t.Errorf("expected title in output, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "frame 0") {
		t.Error("expected the first frame's status line")
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "cellgrid dev") {
		t.Errorf("unexpected version output %q", stdout.String())
	}
}

func TestRunInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[demo]\nflex = \"sideways\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-c", path, "-backend", "ansi"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "demo.flex") {
		t.Errorf("expected the failing setting in stderr, got %q", stderr.String())
	}
}

func TestRunBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-nope"}, &stdout, &stderr); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
}

func newTestExplorer(t *testing.T) (*explorer, *renderer.Renderer, *backend.TestBackend) {
	t.Helper()
	e, err := newExplorer(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	b := backend.NewTestBackend(40, 12)
	opts := renderer.DefaultOptions()
	opts.Logger = logging.Nop()
	r, err := renderer.New(b, opts)
	if err != nil {
		t.Fatal(err)
	}
	return e, r, b
}

func TestExplorerDraw(t *testing.T) {
	e, r, b := newTestExplorer(t)

	if _, err := r.Draw(e.draw); err != nil {
		t.Fatal(err)
	}
	lines := b.Lines()

	if !strings.Contains(lines[0], "cellgrid constraint explorer") {
		t.Errorf("unexpected title row %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "╔0 Length(3)") {
		t.Errorf("selected segment should have a double border, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[11], " vertical | flex start | spacing 0 | frame 0 ") {
		t.Errorf("unexpected status row %q", lines[11])
	}
}

func TestExplorerHandle(t *testing.T) {
	e, _, _ := newTestExplorer(t)
	key := func(k backend.Key) backend.Event { return backend.Event{Type: backend.EventKey, Key: k} }
	char := func(r rune) backend.Event { return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r} }

	if !e.handle(key(backend.KeyTab)) || e.layout.Flex != layout.FlexCenter {
		t.Errorf("tab should advance flex, got %v", e.layout.Flex)
	}
	for range 4 {
		e.handle(key(backend.KeyTab))
	}
	if e.layout.Flex != layout.FlexStart {
		t.Errorf("flex should wrap around, got %v", e.layout.Flex)
	}

	e.handle(char('d'))
	if e.layout.Direction != layout.DirectionHorizontal {
		t.Errorf("d should swap direction, got %v", e.layout.Direction)
	}

	e.handle(char('+'))
	e.handle(char('-'))
	e.handle(char('-'))
	if e.layout.Spacing != 0 {
		t.Errorf("spacing should not go below zero, got %d", e.layout.Spacing)
	}

	e.handle(key(backend.KeyDown))
	if e.selected.Position != 1 {
		t.Errorf("down should select the next segment, got %d", e.selected.Position)
	}
	e.handle(key(backend.KeyEnd))
	if e.selected.Position != 2 {
		t.Errorf("end should select the last segment, got %d", e.selected.Position)
	}
	e.handle(key(backend.KeyHome))
	if e.selected.Position != 0 {
		t.Errorf("home should select the first segment, got %d", e.selected.Position)
	}

	if e.handle(char('z')) {
		t.Error("unbound keys should not request a redraw")
	}
	if !e.handle(backend.Event{Type: backend.EventResize, Width: 10, Height: 5}) {
		t.Error("resize should request a redraw")
	}

	e.handle(char('q'))
	if !e.quit {
		t.Error("q should quit")
	}
}

func TestExplorerHelp(t *testing.T) {
	e, r, b := newTestExplorer(t)
	e.handle(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: '?'})

	if _, err := r.Draw(e.draw); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "╭help") {
		t.Errorf("expected help box, got:\n%s", b)
	}
	if !strings.Contains(b.String(), "q     quit") {
		t.Errorf("expected key bindings, got:\n%s", b)
	}
}

func TestExplorerApplyClampsSelection(t *testing.T) {
	e, _, _ := newTestExplorer(t)
	e.selected.Last()

	cfg := config.Default()
	cfg.Demo.Constraints = []string{"Fill(1)"}
	if err := e.apply(cfg); err != nil {
		t.Fatal(err)
	}
	if e.selected.Position != 0 || e.selected.ContentLength != 1 {
		t.Errorf("selection should follow the new layout, got %+v", e.selected)
	}
}

func TestSegmentColor(t *testing.T) {
	if got := segmentColor(0, 1); got != gradientFrom {
		t.Errorf("single segment: expected %v, got %v", gradientFrom, got)
	}
	if got := segmentColor(0, 3); got != gradientFrom {
		t.Errorf("first: expected %v, got %v", gradientFrom, got)
	}
	if got := segmentColor(2, 3); got != gradientTo {
		t.Errorf("last: expected %v, got %v", gradientTo, got)
	}
}
