package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// ParseError reports a file that is not valid TOML or does not match the settings layout.
type ParseError struct {
	Path string
	// Line and Column are 1-based, or zero when unknown.
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError names the setting that failed validation.
type ValidationError struct {
	Setting string
	Value   any
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s = %v: %v", ErrInvalidConfig, e.Setting, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}
