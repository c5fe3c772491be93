package renderer

import (
	"github.com/dshills/cellgrid/internal/renderer/buffer"
	"github.com/dshills/cellgrid/internal/renderer/layout"
)

// Frame is the drawing handle passed to the Draw closure.
// It is only valid for the duration of that call.
type Frame struct {
	area   Rect
	buf    *buffer.Buffer
	count  uint64
	cursor buffer.Cursor
	cache  *layout.SplitCache
}

// Area returns the area being drawn.
func (f *Frame) Area() Rect {
	return f.area
}

// Buffer returns the buffer being drawn into.
func (f *Frame) Buffer() *buffer.Buffer {
	return f.buf
}

// Count returns the index of this frame, starting at zero.
func (f *Frame) Count() uint64 {
	return f.count
}

// RenderWidget renders w into the part of area that lies inside the frame.
func (f *Frame) RenderWidget(w Widget, area Rect) {
	area = area.Intersection(f.area)
	if area.IsEmpty() {
		return
	}
	w.Render(area, f.buf)
}

// RenderStatefulWidget renders a stateful widget into the part of area inside the frame.
func RenderStatefulWidget[S any](f *Frame, w StatefulWidget[S], area Rect, state *S) {
	area = area.Intersection(f.area)
	if area.IsEmpty() {
		return
	}
	w.RenderStateful(area, f.buf, state)
}

// SetCursorPosition shows the cursor at p once the frame is drawn.
// Frames that never call it hide the cursor.
func (f *Frame) SetCursorPosition(p Position) {
	f.cursor = buffer.VisibleCursor(p)
}

// Split partitions area with l, reusing results from earlier frames.
func (f *Frame) Split(l layout.Layout, area Rect) []Rect {
	return f.cache.Split(l, area)
}

// SplitWithSpacers is Split that also returns the gaps between segments.
func (f *Frame) SplitWithSpacers(l layout.Layout, area Rect) (segments, spacers []Rect) {
	return f.cache.SplitWithSpacers(l, area)
}
