package editor

import (
	"log/slog"

	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/loader"
)

// Initializer starts engine initialization. *loader.Loader implements it.
type Initializer interface {
	Init() *loader.Pending
}

// Option configures a Model.
type Option func(*controller)

// WithLoader sets the engine source. The default is loader.Default().
func WithLoader(l Initializer) Option {
	return func(c *controller) {
		if l != nil {
			c.loader = l
		}
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records lifecycle events on m.
func WithMetrics(m *Metrics) Option {
	return func(c *controller) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithOnMount registers fn to run once each time an instance is created. It
// receives a getter for the current text and the instance.
func WithOnMount(fn func(value func() string, inst *engine.Instance)) Option {
	return func(c *controller) { c.onMount = fn }
}

// WithOnChange registers fn for edits made through the editing surface. A
// controlled host stores value and passes it back in Props.Value.
func WithOnChange(fn func(value string, ev engine.ContentChangeEvent)) Option {
	return func(c *controller) { c.onChange = fn }
}
