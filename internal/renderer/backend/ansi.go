package backend

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/dshills/cellgrid/internal/renderer/buffer"
	"github.com/dshills/cellgrid/internal/renderer/core"
)

const sgrReset = "\x1b[0m"

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// ANSI is a Backend that writes escape sequences to an io.Writer.
// It does not switch terminal modes; callers own raw mode and the alternate screen.
type ANSI struct {
	w        *bufio.Writer
	fd       int
	terminal bool
	fallback core.Size

	cursor      core.Position
	cursorKnown bool
	style       core.Style
	styleKnown  bool
}

// NewANSI creates an ANSI backend writing to out. When out is not a
// terminal, Size reports fallback.
func NewANSI(out io.Writer, fallback core.Size) *ANSI {
	a := &ANSI{
		w:        bufio.NewWriter(out),
		fd:       -1,
		fallback: fallback,
	}
	if f, ok := out.(fder); ok {
		a.fd = int(f.Fd())
		a.terminal = term.IsTerminal(a.fd)
	}
	return a
}

func (a *ANSI) Draw(instructions []buffer.Instruction) error {
	for _, ins := range instructions {
		pos := core.NewPosition(ins.X, ins.Y)
		if !a.cursorKnown || a.cursor != pos {
			if _, err := a.w.WriteString(ansi.CursorPosition(int(ins.X)+1, int(ins.Y)+1)); err != nil {
				return fmt.Errorf("move cursor: %w", err)
			}
		}
		if !a.styleKnown || !a.style.Equals(ins.Style) {
			if _, err := a.w.WriteString(sgr(ins.Style)); err != nil {
				return fmt.Errorf("set style: %w", err)
			}
			a.style, a.styleKnown = ins.Style, true
		}
		if _, err := a.w.WriteString(ins.Content); err != nil {
			return fmt.Errorf("write text: %w", err)
		}
		a.cursor = core.NewPosition(ins.X+uint16(ins.Width), ins.Y)
		a.cursorKnown = true
	}
	if len(instructions) > 0 {
		if _, err := a.w.WriteString(sgrReset); err != nil {
			return fmt.Errorf("reset style: %w", err)
		}
		a.style, a.styleKnown = core.DefaultStyle(), true
	}
	return nil
}

func (a *ANSI) HideCursor() error {
	_, err := a.w.WriteString(ansi.HideCursor)
	return err
}

func (a *ANSI) ShowCursor() error {
	_, err := a.w.WriteString(ansi.ShowCursor)
	return err
}

// CursorPosition returns the position the backend last moved the cursor to.
// Querying the terminal would need the input side, which this backend does not own.
func (a *ANSI) CursorPosition() (core.Position, error) {
	return a.cursor, nil
}

func (a *ANSI) SetCursorPosition(pos core.Position) error {
	if _, err := a.w.WriteString(ansi.CursorPosition(int(pos.X)+1, int(pos.Y)+1)); err != nil {
		return err
	}
	a.cursor, a.cursorKnown = pos, true
	return nil
}

func (a *ANSI) SetCursorStyle(style CursorStyle) error {
	// DECSCUSR steady shapes: 2 block, 4 underline, 6 bar.
	n := 2
	switch style {
	case CursorUnderline:
		n = 4
	case CursorBar:
		n = 6
	}
	_, err := a.w.WriteString("\x1b[" + strconv.Itoa(n) + " q")
	return err
}

func (a *ANSI) Clear() error {
	return a.ClearRegion(ClearAll)
}

func (a *ANSI) ClearRegion(ct ClearType) error {
	var seq string
	switch ct {
	case ClearAll:
		seq = ansi.EraseEntireScreen
	case ClearAfterCursor:
		seq = ansi.EraseScreenBelow
	case ClearBeforeCursor:
		seq = ansi.EraseScreenAbove
	case ClearCurrentLine:
		seq = ansi.EraseEntireLine
	case ClearUntilNewLine:
		seq = ansi.EraseLineRight
	default:
		return &UnsupportedError{Op: "clear region", Clear: ct}
	}
	_, err := a.w.WriteString(seq)
	return err
}

// AppendLines writes n line breaks.
func (a *ANSI) AppendLines(n uint16) error {
	_, err := a.w.WriteString(strings.Repeat("\n", int(n)))
	a.cursorKnown = false
	return err
}

func (a *ANSI) Size() (core.Size, error) {
	if !a.terminal {
		return a.fallback, nil
	}
	w, h, err := term.GetSize(a.fd)
	if err != nil {
		return core.Size{}, fmt.Errorf("query terminal size: %w", err)
	}
	return core.NewSize(clampU16(w), clampU16(h)), nil
}

func (a *ANSI) WindowSize() (WindowSize, error) {
	size, err := a.Size()
	if err != nil {
		return WindowSize{}, err
	}
	ws := WindowSize{ColumnsRows: size}
	if a.terminal {
		px, err := pixelSize(a.fd)
		if err != nil {
			return WindowSize{}, fmt.Errorf("query pixel size: %w", err)
		}
		ws.Pixels = px
	}
	return ws, nil
}

func (a *ANSI) Flush() error {
	return a.w.Flush()
}

// sgr returns the sequence that sets exactly style, starting from a reset.
func sgr(s core.Style) string {
	params := []string{"0"}
	for _, at := range []struct {
		attr core.Attribute
		code string
	}{
		{core.AttrBold, "1"},
		{core.AttrDim, "2"},
		{core.AttrItalic, "3"},
		{core.AttrUnderline, "4"},
		{core.AttrBlink, "5"},
		{core.AttrReverse, "7"},
		{core.AttrHidden, "8"},
		{core.AttrStrikethrough, "9"},
	} {
		if s.Attributes.Has(at.attr) {
			params = append(params, at.code)
		}
	}
	params = appendColor(params, s.Foreground, "38")
	params = appendColor(params, s.Background, "48")
	return "\x1b[" + strings.Join(params, ";") + "m"
}

func appendColor(params []string, c core.Color, base string) []string {
	switch c.Kind {
	case core.ColorKindIndexed:
		return append(params, base, "5", strconv.Itoa(int(c.Index)))
	case core.ColorKindRGB:
		return append(params, base, "2",
			strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B)))
	}
	return params
}
