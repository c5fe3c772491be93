package backend

import (
	"fmt"
	"strings"

	"github.com/dshills/cellgrid/internal/renderer/buffer"
	"github.com/dshills/cellgrid/internal/renderer/core"
)

// TestBackend is an in-memory Backend for tests.
// It applies draw instructions to a buffer and records cursor, clear and flush activity.
type TestBackend struct {
	buf           *buffer.Buffer
	cursor        core.Position
	cursorVisible bool
	cursorStyle   CursorStyle
	pixels        core.Size
	flushes       int
	draws         [][]buffer.Instruction
	clears        []ClearType
	failures      map[string]error
}

// NewTestBackend creates a test backend with the given dimensions.
func NewTestBackend(width, height uint16) *TestBackend {
	return &TestBackend{
		buf:           buffer.New(core.NewRect(0, 0, width, height)),
		cursorVisible: true,
		failures:      make(map[string]error),
	}
}

// Fail makes every later call of op ("draw", "flush", "size", "clear",
// "cursor", "window size") return err. A nil err removes the failure.
func (b *TestBackend) Fail(op string, err error) {
	if err == nil {
		delete(b.failures, op)
		return
	}
	b.failures[op] = err
}

func (b *TestBackend) fail(op string) error {
	return b.failures[op]
}

func (b *TestBackend) Draw(instructions []buffer.Instruction) error {
	if err := b.fail("draw"); err != nil {
		return err
	}
	recorded := make([]buffer.Instruction, len(instructions))
	copy(recorded, instructions)
	b.draws = append(b.draws, recorded)

	for _, ins := range instructions {
		b.buf.SetString(ins.X, ins.Y, ins.Content, ins.Style)
	}
	return nil
}

func (b *TestBackend) HideCursor() error {
	if err := b.fail("cursor"); err != nil {
		return err
	}
	b.cursorVisible = false
	return nil
}

func (b *TestBackend) ShowCursor() error {
	if err := b.fail("cursor"); err != nil {
		return err
	}
	b.cursorVisible = true
	return nil
}

func (b *TestBackend) CursorPosition() (core.Position, error) {
	if err := b.fail("cursor"); err != nil {
		return core.Position{}, err
	}
	return b.cursor, nil
}

func (b *TestBackend) SetCursorPosition(pos core.Position) error {
	if err := b.fail("cursor"); err != nil {
		return err
	}
	b.cursor = pos
	return nil
}

func (b *TestBackend) SetCursorStyle(style CursorStyle) error {
	b.cursorStyle = style
	return nil
}

func (b *TestBackend) Clear() error {
	return b.ClearRegion(ClearAll)
}

// ClearRegion supports every ClearType, measured from the cursor position.
func (b *TestBackend) ClearRegion(ct ClearType) error {
	if err := b.fail("clear"); err != nil {
		return err
	}
	area := b.buf.Area()
	idx, err := b.buf.IndexOf(b.cursor.X, b.cursor.Y)
	if err != nil && ct != ClearAll {
		return fmt.Errorf("clear %s: cursor %v: %w", ct, b.cursor, err)
	}
	w := int(area.Width)
	rowStart := idx - idx%max(w, 1)

	cells := b.buf.Cells()
	var from, to int
	switch ct {
	case ClearAll:
		from, to = 0, len(cells)
	case ClearAfterCursor:
		from, to = idx, len(cells)
	case ClearBeforeCursor:
		from, to = 0, idx+1
	case ClearCurrentLine:
		from, to = rowStart, rowStart+w
	case ClearUntilNewLine:
		from, to = idx, rowStart+w
	default:
		return &UnsupportedError{Op: "clear region", Clear: ct}
	}
	for i := from; i < to; i++ {
		cells[i].Reset()
	}
	b.clears = append(b.clears, ct)
	return nil
}

// AppendLines moves the cursor down n rows, scrolling the content up when it
// reaches the bottom. An empty screen has nothing to scroll.
func (b *TestBackend) AppendLines(n uint16) error {
	area := b.buf.Area()
	if area.IsEmpty() {
		b.cursor.X = 0
		return nil
	}
	for range n {
		if b.cursor.Y+1 < area.Bottom() {
			b.cursor.Y++
			continue
		}
		cells := b.buf.Cells()
		w := int(area.Width)
		copy(cells, cells[w:])
		for i := len(cells) - w; i < len(cells); i++ {
			cells[i].Reset()
		}
	}
	b.cursor.X = 0
	return nil
}

func (b *TestBackend) Size() (core.Size, error) {
	if err := b.fail("size"); err != nil {
		return core.Size{}, err
	}
	return b.buf.Area().Size(), nil
}

func (b *TestBackend) WindowSize() (WindowSize, error) {
	if err := b.fail("window size"); err != nil {
		return WindowSize{}, err
	}
	return WindowSize{ColumnsRows: b.buf.Area().Size(), Pixels: b.pixels}, nil
}

func (b *TestBackend) Flush() error {
	if err := b.fail("flush"); err != nil {
		return err
	}
	b.flushes++
	return nil
}

// Resize changes the simulated screen size, keeping overlapping content.
func (b *TestBackend) Resize(width, height uint16) {
	b.buf.Resize(core.NewRect(0, 0, width, height))
}

// SetPixelSize sets the pixel size reported by WindowSize.
func (b *TestBackend) SetPixelSize(s core.Size) {
	b.pixels = s
}

// Buffer returns the simulated screen contents.
func (b *TestBackend) Buffer() *buffer.Buffer {
	return b.buf
}

// Lines returns the screen rows as text.
func (b *TestBackend) Lines() []string {
	return b.buf.Lines()
}

// CursorVisible reports whether the cursor is shown.
func (b *TestBackend) CursorVisible() bool {
	return b.cursorVisible
}

// CursorStyleValue returns the last cursor style set.
func (b *TestBackend) CursorStyleValue() CursorStyle {
	return b.cursorStyle
}

// Flushes returns the number of successful Flush calls.
func (b *TestBackend) Flushes() int {
	return b.flushes
}

// Draws returns the instructions passed to each Draw call.
func (b *TestBackend) Draws() [][]buffer.Instruction {
	return b.draws
}

// Clears returns the clear types applied, in order.
func (b *TestBackend) Clears() []ClearType {
	return b.clears
}

// String renders the screen for test failure messages.
func (b *TestBackend) String() string {
	var sb strings.Builder
	for _, l := range b.Lines() {
		sb.WriteString("|")
		sb.WriteString(l)
		sb.WriteString("|\n")
	}
	return sb.String()
}
