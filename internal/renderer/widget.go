package renderer

import "github.com/dshills/cellgrid/internal/renderer/buffer"

// Widget draws itself into buf within area.
// Implementations must not write outside area.
type Widget interface {
	Render(area Rect, buf *buffer.Buffer)
}

// WidgetFunc adapts a function to the Widget interface.
type WidgetFunc func(area Rect, buf *buffer.Buffer)

// Render calls f.
func (f WidgetFunc) Render(area Rect, buf *buffer.Buffer) {
	f(area, buf)
}

// StatefulWidget is a widget whose rendering reads and may update state owned by the caller,
// such as a scroll position kept between frames.
type StatefulWidget[S any] interface {
	RenderStateful(area Rect, buf *buffer.Buffer, state *S)
}
