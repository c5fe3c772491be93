package core

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Grapheme is one user-perceived character and its display width.
type Grapheme struct {
	Symbol string
	Width  int
}

// RuneWidth returns the display width of a rune.
// Control characters have width 0.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// GraphemeWidth returns the display width of a grapheme cluster or string.
func GraphemeWidth(s string) int {
	if s == "" {
		return 0
	}
	if len(s) == 1 {
		return RuneWidth(rune(s[0]))
	}
	return uniseg.StringWidth(s)
}

// Graphemes splits s into grapheme clusters.
func Graphemes(s string) []Grapheme {
	out := make([]Grapheme, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		if len(cluster) == 1 {
			width = RuneWidth(rune(cluster[0]))
		}
		out = append(out, Grapheme{Symbol: cluster, Width: width})
	}
	return out
}

// StringWidth returns the total display width of s.
func StringWidth(s string) int {
	w := 0
	for _, g := range Graphemes(s) {
		w += g.Width
	}
	return w
}
