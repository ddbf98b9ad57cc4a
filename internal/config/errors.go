package config

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported props file format")

// ParseError reports a props file that could not be read or decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("props file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
