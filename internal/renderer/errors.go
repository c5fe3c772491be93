package renderer

import (
	"errors"
	"fmt"
)

// ErrNoCursorSupport is returned by SetCursorStyle when the backend cannot change the cursor shape.
var ErrNoCursorSupport = errors.New("backend does not support cursor styles")

// Stage identifies the step of a frame that failed.
type Stage int

const (
	StageSize Stage = iota
	StageClear
	StageDraw
	StageCursor
	StageFlush
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageSize:
		return "size"
	case StageClear:
		return "clear"
	case StageDraw:
		return "draw"
	case StageCursor:
		return "cursor"
	case StageFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// FrameError reports a backend failure during Draw.
// The previous buffer is left as it was, so the next Draw starts from a known state.
type FrameError struct {
	Stage Stage
	Frame uint64
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %s: %v", e.Frame, e.Stage, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// StageOf returns the failed stage of a FrameError anywhere in err's chain.
func StageOf(err error) (Stage, bool) {
	var fe *FrameError
	if errors.As(err, &fe) {
		return fe.Stage, true
	}
	return 0, false
}
