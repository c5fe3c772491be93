package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorKind says how a Color is encoded for the terminal.
type ColorKind uint8

const (
	// ColorKindReset leaves the color to the terminal. It is the zero value.
	ColorKindReset ColorKind = iota
	// ColorKindIndexed selects an entry of the 256-color palette.
	ColorKindIndexed
	// ColorKindRGB is a 24-bit color.
	ColorKindRGB
)

// Color is a foreground or background color. The zero value is the
// terminal's default color.
type Color struct {
	Kind    ColorKind
	Index   uint8
	R, G, B uint8
}

// ColorReset is the terminal's default color.
var ColorReset = Color{}

// The sixteen ANSI colors. How they look is up to the terminal theme.
var (
	ColorBlack        = Indexed(0)
	ColorRed          = Indexed(1)
	ColorGreen        = Indexed(2)
	ColorYellow       = Indexed(3)
	ColorBlue         = Indexed(4)
	ColorMagenta      = Indexed(5)
	ColorCyan         = Indexed(6)
	ColorGray         = Indexed(7)
	ColorDarkGray     = Indexed(8)
	ColorLightRed     = Indexed(9)
	ColorLightGreen   = Indexed(10)
	ColorLightYellow  = Indexed(11)
	ColorLightBlue    = Indexed(12)
	ColorLightMagenta = Indexed(13)
	ColorLightCyan    = Indexed(14)
	ColorWhite        = Indexed(15)
)

var colorNames = map[string]Color{
	"black":         ColorBlack,
	"red":           ColorRed,
	"green":         ColorGreen,
	"yellow":        ColorYellow,
	"blue":          ColorBlue,
	"magenta":       ColorMagenta,
	"cyan":          ColorCyan,
	"gray":          ColorGray,
	"grey":          ColorGray,
	"dark-gray":     ColorDarkGray,
	"light-red":     ColorLightRed,
	"light-green":   ColorLightGreen,
	"light-yellow":  ColorLightYellow,
	"light-blue":    ColorLightBlue,
	"light-magenta": ColorLightMagenta,
	"light-cyan":    ColorLightCyan,
	"white":         ColorWhite,
}

// Indexed returns the palette color i.
func Indexed(i uint8) Color {
	return Color{Kind: ColorKindIndexed, Index: i}
}

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorKindRGB, R: r, G: g, B: b}
}

// HexColor parses "#rrggbb" or "#rgb"; the '#' may be omitted.
func HexColor(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("hex color %q: want 3 or 6 digits", s)
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return Color{}, fmt.Errorf("hex color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// ParseColor accepts the forms produced by String: "reset", a palette
// index ("42" or "idx(42)"), a hex color, or an ANSI color name such as
// "light-blue".
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "reset" || s == "default" {
		return ColorReset, nil
	}
	if c, ok := colorNames[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return HexColor(s)
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(s, "idx("), ")")
	if n, err := strconv.ParseUint(digits, 10, 8); err == nil {
		return Indexed(uint8(n)), nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}

// IsReset reports whether c is the terminal default.
func (c Color) IsReset() bool {
	return c.Kind == ColorKindReset
}

// Equals reports whether both colors render the same. Fields unused by
// the kind are ignored.
func (c Color) Equals(other Color) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case ColorKindIndexed:
		return c.Index == other.Index
	case ColorKindRGB:
		return c.R == other.R && c.G == other.G && c.B == other.B
	}
	return true
}

func (c Color) String() string {
	switch c.Kind {
	case ColorKindIndexed:
		return fmt.Sprintf("idx(%d)", c.Index)
	case ColorKindRGB:
		return strings.ToUpper(c.colorful().Hex())
	}
	return "reset"
}

// Blend mixes c toward other by t in [0, 1], interpolating in CIE L*u*v*.
// Colors that are not RGB cannot be mixed; the result flips from c to
// other at t = 0.5.
func (c Color) Blend(other Color, t float64) Color {
	if c.Kind != ColorKindRGB || other.Kind != ColorKindRGB {
		if t < 0.5 {
			return c
		}
		return other
	}
	switch {
	case t <= 0:
		return c
	case t >= 1:
		return other
	}
	return fromColorful(c.colorful().BlendLuv(other.colorful(), t).Clamped())
}

// Lighten moves an RGB color toward white.
func (c Color) Lighten(t float64) Color {
	if c.Kind != ColorKindRGB {
		return c
	}
	return c.Blend(RGB(255, 255, 255), t)
}

// Darken moves an RGB color toward black.
func (c Color) Darken(t float64) Color {
	if c.Kind != ColorKindRGB {
		return c
	}
	return c.Blend(RGB(0, 0, 0), t)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.RGB255()
	return RGB(r, g, b)
}
