package engine

import "errors"

var (
	// ErrNilMount is returned by Create when no mount point is given.
	ErrNilMount = errors.New("engine: nil mount")
	// ErrMountInUse is returned by Create when the mount already hosts a live
	// instance.
	ErrMountInUse = errors.New("engine: mount already hosts an instance")
	// ErrDisposed is returned by operations on a disposed instance.
	ErrDisposed = errors.New("engine: instance disposed")
	// ErrUnknownTheme is returned when applying a theme that was never defined.
	ErrUnknownTheme = errors.New("engine: unknown theme")
	// ErrInvalidTheme is returned by DefineTheme for malformed definitions.
	ErrInvalidTheme = errors.New("engine: invalid theme")
)
