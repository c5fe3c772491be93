// Package core provides the value types shared by every renderer package:
// geometry, colors, styles and cells.
// It has no dependencies on the rest of the renderer so that layout,
// buffer and backend can all import it without cycles.
package core

import (
	"fmt"
	"strings"
)

// Attribute is a set of text modifiers.
type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrStrikethrough
	AttrHidden

	AttrNone Attribute = 0
)

var attrNames = [...]string{
	"bold", "dim", "italic", "underline", "blink", "reverse", "strikethrough", "hidden",
}

func (a Attribute) Has(attr Attribute) bool { return a&attr == attr && attr != 0 }

func (a Attribute) With(attr Attribute) Attribute { return a | attr }

func (a Attribute) Without(attr Attribute) Attribute { return a &^ attr }

// String lists the set members joined by '|', or "none".
func (a Attribute) String() string {
	if a == AttrNone {
		return "none"
	}
	var parts []string
	for i, name := range attrNames {
		if a&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseAttribute parses one modifier name, or a '|'-separated list of them.
func ParseAttribute(s string) (Attribute, error) {
	var a Attribute
	for _, part := range strings.Split(s, "|") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "none" {
			continue
		}
		i := indexOf(attrNames[:], part)
		if i < 0 {
			return AttrNone, fmt.Errorf("unknown attribute %q", part)
		}
		a |= 1 << i
	}
	return a, nil
}

func indexOf(names []string, s string) int {
	for i, n := range names {
		if n == s {
			return i
		}
	}
	return -1
}

// Style is the look of a cell. The zero value uses the terminal defaults
// and no modifiers.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the zero Style.
func DefaultStyle() Style {
	return Style{}
}

// NewStyle returns a style with foreground fg.
func NewStyle(fg Color) Style {
	return Style{Foreground: fg}
}

// Fg returns s with foreground c.
func (s Style) Fg(c Color) Style {
	s.Foreground = c
	return s
}

// Bg returns s with background c.
func (s Style) Bg(c Color) Style {
	s.Background = c
	return s
}

// Add returns s with attrs turned on.
func (s Style) Add(attrs Attribute) Style {
	s.Attributes |= attrs
	return s
}

// Remove returns s with attrs turned off.
func (s Style) Remove(attrs Attribute) Style {
	s.Attributes &^= attrs
	return s
}

func (s Style) Bold() Style      { return s.Add(AttrBold) }
func (s Style) Dim() Style       { return s.Add(AttrDim) }
func (s Style) Italic() Style    { return s.Add(AttrItalic) }
func (s Style) Underline() Style { return s.Add(AttrUnderline) }
func (s Style) Reverse() Style   { return s.Add(AttrReverse) }

// Patch layers other on top of s. Colors in other replace those in s
// unless they are reset; modifiers are added.
func (s Style) Patch(other Style) Style {
	if !other.Foreground.IsReset() {
		s.Foreground = other.Foreground
	}
	if !other.Background.IsReset() {
		s.Background = other.Background
	}
	s.Attributes |= other.Attributes
	return s
}

// Equals reports whether two styles render the same.
func (s Style) Equals(other Style) bool {
	return s.Attributes == other.Attributes &&
		s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background)
}

// IsDefault reports whether s renders like the zero Style.
func (s Style) IsDefault() bool {
	return s.Equals(Style{})
}

func (s Style) String() string {
	return fmt.Sprintf("fg=%s bg=%s attrs=%s", s.Foreground, s.Background, s.Attributes)
}
