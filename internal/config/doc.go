// Package config loads cellgrid settings.
//
// Settings are resolved in three layers, each overriding the one before:
//
//	┌─────────────────────────────┐
//	│  3. Environment CELLGRID_*  │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. TOML file               │  ← cellgrid.toml
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A missing file is not an error. The result is validated before it is
// returned, so callers can convert it to renderer and layout values
// without further checks.
//
// Example file:
//
//	[renderer]
//	viewport = "fixed"
//	fixed = { x = 0, y = 0, width = 80, height = 10 }
//
//	[log]
//	level = "debug"
//	file = "/tmp/cellgrid.log"
//
//	[demo]
//	direction = "horizontal"
//	flex = "space-between"
//	constraints = ["Length(10)", "Fill(1)", "Ratio(1/4)"]
package config
