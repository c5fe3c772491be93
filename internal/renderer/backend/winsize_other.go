//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package backend

import "github.com/dshills/cellgrid/internal/renderer/core"

// pixelSize is unknown on platforms without TIOCGWINSZ.
func pixelSize(int) (core.Size, error) {
	return core.Size{}, nil
}
