package core

import "strings"

// Cell represents a single terminal cell.
//
// A wide grapheme occupies its owning cell plus Width()-1 continuation
// cells to the right. Continuation cells carry no symbol of their own and
// are never emitted by the diff.
type Cell struct {
	// Symbol is one grapheme cluster. An empty symbol renders as a space.
	Symbol string

	// Style is the visual style for this cell.
	Style Style

	// Continuation marks the trailing half of a wide grapheme.
	Continuation bool
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{
		Symbol: " ",
		Style:  DefaultStyle(),
	}
}

// NewCell creates a cell with the given symbol and default style.
func NewCell(symbol string) Cell {
	return Cell{
		Symbol: symbol,
		Style:  DefaultStyle(),
	}
}

// NewStyledCell creates a cell with the given symbol and style.
func NewStyledCell(symbol string, style Style) Cell {
	return Cell{
		Symbol: symbol,
		Style:  style,
	}
}

// ContinuationCell returns the trailing half of a wide grapheme drawn in style.
func ContinuationCell(style Style) Cell {
	return Cell{
		Style:        style,
		Continuation: true,
	}
}

// WithStyle returns a new cell with the given style.
func (c Cell) WithStyle(style Style) Cell {
	c.Style = style
	return c
}

// WithSymbol returns a new cell with the given symbol.
func (c Cell) WithSymbol(symbol string) Cell {
	c.Symbol = symbol
	c.Continuation = false
	return c
}

// WithRune returns a new cell whose symbol is r.
func (c Cell) WithRune(r rune) Cell {
	return c.WithSymbol(string(r))
}

// Content returns the text the terminal should print for this cell.
func (c Cell) Content() string {
	if c.Continuation {
		return ""
	}
	if c.Symbol == "" {
		return " "
	}
	return c.Symbol
}

// Width returns the number of columns the cell's symbol covers.
// Continuation cells have width 0; every other cell covers at least one column.
func (c Cell) Width() int {
	if c.Continuation {
		return 0
	}
	return max(GraphemeWidth(c.Content()), 1)
}

// IsEmpty returns true if this is an empty (space) cell.
func (c Cell) IsEmpty() bool {
	return !c.Continuation && (c.Symbol == " " || c.Symbol == "")
}

// IsContinuation returns true if this is a continuation cell.
func (c Cell) IsContinuation() bool {
	return c.Continuation
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Continuation == other.Continuation &&
		c.Content() == other.Content() &&
		c.Style.Equals(other.Style)
}

// Reset turns the cell back into an empty cell.
func (c *Cell) Reset() {
	*c = EmptyCell()
}

// CellsFromString splits s into cells, adding continuation cells after wide graphemes.
// Zero-width clusters such as control characters are dropped.
func CellsFromString(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, g := range Graphemes(s) {
		if g.Width == 0 {
			continue
		}
		cells = append(cells, NewStyledCell(g.Symbol, style))
		for i := 1; i < g.Width; i++ {
			cells = append(cells, ContinuationCell(style))
		}
	}
	return cells
}

// StringFromCells converts cells back to a string, skipping continuation cells.
func StringFromCells(cells []Cell) string {
	var sb strings.Builder
	for _, c := range cells {
		sb.WriteString(c.Content())
	}
	return sb.String()
}
