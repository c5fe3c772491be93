// Package renderer drives one terminal frame at a time.
//
// A Renderer owns two cell buffers. Each call to Draw resets the current
// buffer, hands it to a caller-supplied closure through a Frame, diffs it
// against the buffer drawn last time, sends only the changed runs to the
// backend, and swaps the two buffers.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│        Renderer / Frame / Widget        │
//	├─────────────────────────────────────────┤
//	│  layout (solver, cache) │ buffer (diff) │
//	├─────────────────────────────────────────┤
//	│   core (geometry, style, cell, width)   │
//	├─────────────────────────────────────────┤
//	│  backend: tcell │ ANSI writer │ test    │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	_ = term.Init()
//	defer term.Shutdown()
//
//	r, _ := renderer.New(term, renderer.DefaultOptions())
//	_, err := r.Draw(func(f *renderer.Frame) {
//		rows := f.Split(layout.Vertical(layout.Length(1), layout.Fill(1)), f.Area())
//		f.RenderWidget(widgets.NewLabel("title"), rows[0])
//	})
package renderer
