package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled is delivered by Wait after Cancel. It is not a failure.
	ErrCanceled = errors.New("loader: canceled")
	// ErrUnsupportedFormat is returned for asset files that are neither YAML
	// nor TOML.
	ErrUnsupportedFormat = errors.New("loader: unsupported file format")
)

// IsCanceled reports whether err is a cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// FileError reports a failure loading one asset file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("loader: %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
