//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package backend

import (
	"golang.org/x/sys/unix"

	"github.com/dshills/cellgrid/internal/renderer/core"
)

func pixelSize(fd int) (core.Size, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return core.Size{}, err
	}
	return core.NewSize(ws.Xpixel, ws.Ypixel), nil
}
