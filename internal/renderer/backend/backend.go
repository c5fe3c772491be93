// Package backend defines the output device the renderer draws to and
// provides terminal, raw ANSI and in-memory implementations.
package backend

import (
	"fmt"
	"strings"

	"github.com/dshills/cellgrid/internal/renderer/buffer"
	"github.com/dshills/cellgrid/internal/renderer/core"
)

// ClearType selects which part of the screen ClearRegion erases.
type ClearType int

const (
	ClearAll          ClearType = iota // whole screen
	ClearAfterCursor                   // cursor cell to end of screen
	ClearBeforeCursor                  // start of screen to cursor cell
	ClearCurrentLine                   // the cursor's row
	ClearUntilNewLine                  // cursor cell to end of row
)

var clearTypeNames = [...]string{
	ClearAll:          "All",
	ClearAfterCursor:  "AfterCursor",
	ClearBeforeCursor: "BeforeCursor",
	ClearCurrentLine:  "CurrentLine",
	ClearUntilNewLine: "UntilNewLine",
}

// String returns the clear type name.
func (c ClearType) String() string {
	if c >= 0 && int(c) < len(clearTypeNames) {
		return clearTypeNames[c]
	}
	return fmt.Sprintf("ClearType(%d)", int(c))
}

// ParseClearType parses a clear type name, case-insensitively.
func ParseClearType(s string) (ClearType, error) {
	for i, name := range clearTypeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return ClearType(i), nil
		}
	}
	return ClearAll, fmt.Errorf("unknown clear type %q", s)
}

// WindowSize is the terminal size in cells and, when known, in pixels.
type WindowSize struct {
	ColumnsRows core.Size
	Pixels      core.Size
}

// CursorStyle defines how the cursor appears.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
)

// ParseCursorStyle parses "block", "underline" or "bar".
func ParseCursorStyle(s string) (CursorStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block", "":
		return CursorBlock, nil
	case "underline":
		return CursorUnderline, nil
	case "bar":
		return CursorBar, nil
	}
	return CursorBlock, fmt.Errorf("unknown cursor style %q", s)
}

// Backend is the output device a renderer draws to.
// Every method that touches the device may fail with an I/O error.
type Backend interface {
	// Draw writes the instructions. Output may be buffered until Flush.
	Draw(instructions []buffer.Instruction) error

	HideCursor() error
	ShowCursor() error
	CursorPosition() (core.Position, error)
	SetCursorPosition(pos core.Position) error

	// Clear erases the whole screen.
	Clear() error

	// ClearRegion erases part of the screen. Backends that cannot erase a
	// region return an error matching ErrUnsupported.
	ClearRegion(ct ClearType) error

	// Size returns the screen size in cells.
	Size() (core.Size, error)

	// WindowSize returns the screen size in cells and pixels. Pixels are zero when unknown.
	WindowSize() (WindowSize, error)

	// Flush makes all buffered output visible.
	Flush() error
}

// LineAppender is implemented by backends that can insert line breaks
// below the cursor, scrolling the screen when needed.
type LineAppender interface {
	AppendLines(n uint16) error
}

// CursorStyler is implemented by backends that can change the cursor shape.
type CursorStyler interface {
	SetCursorStyle(style CursorStyle) error
}

// ClearRegionDefault is the region clear for backends that can only clear
// the whole screen: ClearAll calls clear, every other type is unsupported.
func ClearRegionDefault(clear func() error, ct ClearType) error {
	if ct == ClearAll {
		return clear()
	}
	return &UnsupportedError{Op: "clear region", Clear: ct}
}
