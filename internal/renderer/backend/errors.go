package backend

import (
	"errors"
	"fmt"
)

// ErrUnsupported is matched by errors for operations a backend does not implement.
var ErrUnsupported = errors.New("operation not supported by backend")

// UnsupportedError reports an operation the backend cannot perform.
type UnsupportedError struct {
	Op    string
	Clear ClearType
}

func (e *UnsupportedError) Error() string {
	if e.Op == "clear region" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Clear, ErrUnsupported)
	}
	return fmt.Sprintf("%s: %v", e.Op, ErrUnsupported)
}

// Is reports whether target is ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// IsUnsupported returns true if err reports an unsupported operation.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
