package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/cellgrid/internal/logging"
	"github.com/dshills/cellgrid/internal/renderer/backend"
	"github.com/dshills/cellgrid/internal/renderer/core"
	"github.com/dshills/cellgrid/internal/renderer/layout"
)

// Config is the complete settings tree.
type Config struct {
	Renderer RendererConfig `toml:"renderer"`
	Log      LogConfig      `toml:"log"`
	Demo     DemoConfig     `toml:"demo"`
}

// RendererConfig controls the render pipeline.
type RendererConfig struct {
	// Viewport is "fullscreen" or "fixed".
	Viewport       string     `toml:"viewport"`
	Fixed          AreaConfig `toml:"fixed"`
	ClearOnRepaint bool       `toml:"clear_on_repaint"`
	// CursorStyle is "block", "underline" or "bar".
	CursorStyle string `toml:"cursor_style"`
	CacheSize   int    `toml:"cache_size"`
}

// AreaConfig is a rectangle in cells.
type AreaConfig struct {
	X      uint16 `toml:"x"`
	Y      uint16 `toml:"y"`
	Width  uint16 `toml:"width"`
	Height uint16 `toml:"height"`
}

// Rect returns the area as a rectangle.
func (a AreaConfig) Rect() core.Rect {
	return core.NewRect(a.X, a.Y, a.Width, a.Height)
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
	// File receives log output. Empty means stderr.
	File string `toml:"file"`
}

// DemoConfig describes the layout the demo binary shows.
type DemoConfig struct {
	// Backend is "tcell" or "ansi".
	Backend     string   `toml:"backend"`
	Direction   string   `toml:"direction"`
	Flex        string   `toml:"flex"`
	Spacing     uint16   `toml:"spacing"`
	MarginX     uint16   `toml:"margin_x"`
	MarginY     uint16   `toml:"margin_y"`
	Constraints []string `toml:"constraints"`
	// Frames is how many frames the ANSI backend draws before exiting.
	Frames int `toml:"frames"`
	// Watch reloads the config file while the tcell demo runs.
	Watch bool `toml:"watch"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Renderer: RendererConfig{
			Viewport:       "fullscreen",
			ClearOnRepaint: true,
			CursorStyle:    "block",
			CacheSize:      layout.DefaultCacheSize,
		},
		Log: LogConfig{
			Level: "info",
		},
		Demo: DemoConfig{
			Backend:     "tcell",
			Direction:   "vertical",
			Flex:        "start",
			Constraints: []string{"Length(3)", "Fill(1)", "Percentage(25)"},
			Frames:      1,
		},
	}
}

// Validate checks every setting that is later parsed into a typed value.
// All failures are reported together.
func (c *Config) Validate() error {
	var errs []error
	check := func(setting string, value any, err error) {
		if err != nil {
			errs = append(errs, &ValidationError{Setting: setting, Value: value, Err: err})
		}
	}

	switch strings.ToLower(c.Renderer.Viewport) {
	case "fullscreen":
	case "fixed":
		if c.Renderer.Fixed.Rect().IsEmpty() {
			check("renderer.fixed", c.Renderer.Fixed, errors.New("fixed viewport needs a non-empty area"))
		}
	default:
		check("renderer.viewport", c.Renderer.Viewport, errors.New(`must be "fullscreen" or "fixed"`))
	}
	_, err := backend.ParseCursorStyle(c.Renderer.CursorStyle)
	check("renderer.cursor_style", c.Renderer.CursorStyle, err)
	if c.Renderer.CacheSize < 0 {
		check("renderer.cache_size", c.Renderer.CacheSize, errors.New("must not be negative"))
	}

	if _, ok := logging.ParseLogLevel(c.Log.Level); !ok {
		check("log.level", c.Log.Level, errors.New("unknown level"))
	}

	switch strings.ToLower(c.Demo.Backend) {
	case "tcell", "ansi":
	default:
		check("demo.backend", c.Demo.Backend, errors.New(`must be "tcell" or "ansi"`))
	}
	_, err = layout.ParseDirection(c.Demo.Direction)
	check("demo.direction", c.Demo.Direction, err)
	_, err = layout.ParseFlex(c.Demo.Flex)
	check("demo.flex", c.Demo.Flex, err)
	_, err = layout.ParseConstraints(c.Demo.Constraints)
	check("demo.constraints", c.Demo.Constraints, err)
	if c.Demo.Frames < 0 {
		check("demo.frames", c.Demo.Frames, errors.New("must not be negative"))
	}

	return errors.Join(errs...)
}

// FixedViewport returns true when the renderer draws into a fixed area.
func (r RendererConfig) FixedViewport() bool {
	return strings.EqualFold(r.Viewport, "fixed")
}

// LogLevel returns the configured level.
func (l LogConfig) LogLevel() logging.LogLevel {
	level, _ := logging.ParseLogLevel(l.Level)
	return level
}

// Layout builds the demo layout. The config must have passed Validate.
func (d DemoConfig) Layout() (layout.Layout, error) {
	dir, err := layout.ParseDirection(d.Direction)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("demo layout: %w", err)
	}
	flex, err := layout.ParseFlex(d.Flex)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("demo layout: %w", err)
	}
	cs, err := layout.ParseConstraints(d.Constraints)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("demo layout: %w", err)
	}
	return layout.New(dir, cs...).
		WithFlex(flex).
		WithSpacing(d.Spacing).
		WithMargin(core.NewMargin(d.MarginX, d.MarginY)), nil
}
