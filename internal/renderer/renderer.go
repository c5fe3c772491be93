package renderer

import (
	"sync"

	"github.com/dshills/cellgrid/internal/logging"
	"github.com/dshills/cellgrid/internal/renderer/backend"
	"github.com/dshills/cellgrid/internal/renderer/buffer"
	"github.com/dshills/cellgrid/internal/renderer/core"
	"github.com/dshills/cellgrid/internal/renderer/layout"
)

// ViewportKind selects how the drawing area follows the terminal size.
type ViewportKind int

const (
	// ViewportFullscreen tracks the backend size on every frame.
	ViewportFullscreen ViewportKind = iota
	// ViewportFixed draws into a fixed area and never queries the size.
	ViewportFixed
)

// Viewport is the area the renderer draws into.
type Viewport struct {
	Kind ViewportKind
	Area Rect
}

// Fullscreen returns a viewport covering the whole terminal.
func Fullscreen() Viewport {
	return Viewport{Kind: ViewportFullscreen}
}

// Fixed returns a viewport that always draws into area.
func Fixed(area Rect) Viewport {
	return Viewport{Kind: ViewportFixed, Area: area}
}

// Options configures the renderer.
type Options struct {
	Viewport Viewport

	// ClearOnRepaint clears the backend before a full repaint.
	// Backends that keep their own cell model (tcell) can skip it.
	ClearOnRepaint bool

	// CacheSize is the capacity of the layout split cache.
	CacheSize int

	// Logger defaults to logging.Default().
	Logger *logging.Logger
}

// DefaultOptions returns a fullscreen configuration.
func DefaultOptions() Options {
	return Options{
		Viewport:       Fullscreen(),
		ClearOnRepaint: true,
		CacheSize:      layout.DefaultCacheSize,
	}
}

// CompletedFrame describes a frame that reached the backend.
type CompletedFrame struct {
	// Buffer holds the frame's cells. It is reused two frames later.
	Buffer *buffer.Buffer
	Area   Rect
	Count  uint64
	// Instructions is the number of runs sent to the backend.
	Instructions int
	// FullRepaint is set when the whole area was redrawn, after a resize or Clear.
	FullRepaint bool
}

// Renderer double-buffers frames and sends only the differences to a backend.
type Renderer struct {
	mu sync.Mutex

	opts    Options
	backend backend.Backend
	log     *logging.Logger
	cache   *layout.SplitCache

	buffers [2]*buffer.Buffer
	current int
	area    Rect

	// repaint forces the next Draw to redraw every cell.
	repaint bool

	cursor      buffer.Cursor
	cursorKnown bool

	frameCount uint64
}

// New creates a renderer. For a fullscreen viewport the backend is queried for its size.
func New(b backend.Backend, opts Options) (*Renderer, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = layout.DefaultCacheSize
	}
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}

	r := &Renderer{
		opts:    opts,
		backend: b,
		log:     log.WithComponent("renderer"),
		cache:   layout.NewSplitCache(opts.CacheSize),
		repaint: true,
	}

	area := opts.Viewport.Area
	if opts.Viewport.Kind == ViewportFullscreen {
		size, err := b.Size()
		if err != nil {
			return nil, &FrameError{Stage: StageSize, Err: err}
		}
		area = core.RectFromSize(size)
	}
	r.area = area
	r.buffers[0] = buffer.New(area)
	r.buffers[1] = buffer.New(area)
	return r, nil
}

// Draw renders one frame.
//
// The current buffer is resized to the viewport and blanked, render fills
// it, and the difference from the previous frame is sent to the backend
// followed by the cursor directive and a flush. On error nothing is
// swapped and the next frame is a full repaint.
func (r *Renderer) Draw(render func(*Frame)) (CompletedFrame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.autoresize(); err != nil {
		return CompletedFrame{}, r.fail(StageSize, err)
	}

	cur := r.buffers[r.current]
	cur.Resize(r.area)
	cur.Reset()

	frame := &Frame{
		area:   r.area,
		buf:    cur,
		count:  r.frameCount,
		cursor: buffer.HiddenCursor,
		cache:  r.cache,
	}
	render(frame)

	var prev *buffer.Buffer
	if !r.repaint {
		prev = r.buffers[1-r.current]
	}
	patch := buffer.Diff(prev, cur, frame.cursor)

	if patch.FullRepaint {
		r.log.Debug("full repaint of %v", r.area)
		if r.opts.ClearOnRepaint {
			if err := r.backend.ClearRegion(backend.ClearAll); err != nil {
				return CompletedFrame{}, r.fail(StageClear, err)
			}
		}
	}
	if !patch.Empty() {
		if err := r.backend.Draw(patch.Instructions); err != nil {
			return CompletedFrame{}, r.fail(StageDraw, err)
		}
	}
	if err := r.applyCursor(patch.Cursor); err != nil {
		return CompletedFrame{}, r.fail(StageCursor, err)
	}
	if err := r.backend.Flush(); err != nil {
		return CompletedFrame{}, r.fail(StageFlush, err)
	}

	if r.log.Enabled(logging.LogLevelDebug) {
		r.log.Debug("frame %d: %d runs, %d cells", r.frameCount, len(patch.Instructions), patch.Cells())
	}

	done := CompletedFrame{
		Buffer:       cur,
		Area:         r.area,
		Count:        r.frameCount,
		Instructions: len(patch.Instructions),
		FullRepaint:  patch.FullRepaint,
	}
	r.repaint = false
	r.current = 1 - r.current
	r.frameCount++
	return done, nil
}

func (r *Renderer) fail(stage Stage, err error) error {
	r.repaint = true
	r.cursorKnown = false
	fe := &FrameError{Stage: stage, Frame: r.frameCount, Err: err}
	r.log.Error("%v", fe)
	return fe
}

func (r *Renderer) applyCursor(c buffer.Cursor) error {
	if r.cursorKnown && r.cursor == c {
		return nil
	}
	if c.Visible {
		if err := r.backend.SetCursorPosition(c.Position); err != nil {
			return err
		}
		if err := r.backend.ShowCursor(); err != nil {
			return err
		}
	} else if err := r.backend.HideCursor(); err != nil {
		return err
	}
	r.cursor, r.cursorKnown = c, true
	return nil
}

// Autoresize matches a fullscreen viewport to the backend size.
func (r *Renderer) Autoresize() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.autoresize()
}

func (r *Renderer) autoresize() error {
	if r.opts.Viewport.Kind != ViewportFullscreen {
		return nil
	}
	size, err := r.backend.Size()
	if err != nil {
		return err
	}
	if area := core.RectFromSize(size); area != r.area {
		r.resize(area)
	}
	return nil
}

// Resize sets the drawing area. The next frame is a full repaint.
func (r *Renderer) Resize(area Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.opts.Viewport.Kind == ViewportFixed {
		r.opts.Viewport.Area = area
	}
	r.resize(area)
}

func (r *Renderer) resize(area Rect) {
	if area == r.area {
		return
	}
	r.log.WithFields(map[string]any{"from": r.area, "to": area}).Info("resize")
	r.area = area
	r.cache.InvalidateAll()
	r.repaint = true
}

// Clear clears the whole backend and blanks the previous buffer, so the
// next frame draws every non-blank cell.
func (r *Renderer) Clear() error {
	return r.ClearRegion(backend.ClearAll)
}

// ClearRegion clears part of the screen. Regions the backend does not
// support fall back to a full clear.
func (r *Renderer) ClearRegion(ct backend.ClearType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.backend.ClearRegion(ct)
	if backend.IsUnsupported(err) && ct != backend.ClearAll {
		r.log.Debug("clear %v unsupported, clearing all", ct)
		err = r.backend.ClearRegion(backend.ClearAll)
	}
	if err != nil {
		r.repaint = true
		return &FrameError{Stage: StageClear, Frame: r.frameCount, Err: err}
	}
	// The screen no longer matches the previous frame.
	if ct == backend.ClearAll {
		r.buffers[1-r.current].Reset()
	} else {
		r.repaint = true
	}
	return nil
}

// HideCursor hides the cursor immediately.
func (r *Renderer) HideCursor() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.backend.HideCursor(); err != nil {
		return err
	}
	r.cursor.Visible = false
	return nil
}

// ShowCursor shows the cursor at its last position.
func (r *Renderer) ShowCursor() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.backend.ShowCursor(); err != nil {
		return err
	}
	r.cursor.Visible = true
	return nil
}

// SetCursorPosition moves the cursor immediately.
func (r *Renderer) SetCursorPosition(p Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.backend.SetCursorPosition(p); err != nil {
		return err
	}
	r.cursor.Position = p
	return nil
}

// SetCursorStyle changes the cursor shape if the backend supports it.
func (r *Renderer) SetCursorStyle(style backend.CursorStyle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cs, ok := r.backend.(backend.CursorStyler)
	if !ok {
		return ErrNoCursorSupport
	}
	return cs.SetCursorStyle(style)
}

// AppendLines asks the backend to insert n lines below the cursor,
// scrolling older output up.
func (r *Renderer) AppendLines(n uint16) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	la, ok := r.backend.(backend.LineAppender)
	if !ok {
		return &backend.UnsupportedError{Op: "append lines"}
	}
	if err := la.AppendLines(n); err != nil {
		return err
	}
	r.repaint = true
	return nil
}

// Area returns the current drawing area.
func (r *Renderer) Area() Rect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.area
}

// CurrentBuffer returns the buffer the next frame will draw into.
func (r *Renderer) CurrentBuffer() *buffer.Buffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buffers[r.current]
}

// FrameCount returns the number of completed frames.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// CacheStats returns the layout cache statistics.
func (r *Renderer) CacheStats() layout.CacheStats {
	return r.cache.Stats()
}
