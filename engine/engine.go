package engine

import (
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Engine is the namespace shared by every instance it creates.
type Engine struct {
	id     uuid.UUID
	logger *slog.Logger

	mu        sync.Mutex
	themes    map[string]Theme
	providers []*providerEntry
	instances map[uuid.UUID]*Instance
	mounts    map[Mount]*Instance
	closed    bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithThemes defines additional themes at construction. Invalid definitions
// are logged and skipped.
func WithThemes(themes map[string]ThemeData) Option {
	return func(e *Engine) {
		names := make([]string, 0, len(themes))
		for name := range themes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			th, err := resolveTheme(name, themes[name])
			if err != nil {
				e.logger.Warn("theme skipped", "theme", name, "error", err)
				continue
			}
			e.themes[name] = th
		}
	}
}

// New returns an engine with the built-in themes defined and the default
// theme active.
func New(opts ...Option) *Engine {
	e := &Engine{
		id:        uuid.New(),
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		themes:    make(map[string]Theme, len(builtinThemes)),
		instances: make(map[uuid.UUID]*Instance),
		mounts:    make(map[Mount]*Instance),
	}
	for name, data := range builtinThemes {
		th, err := resolveTheme(name, data)
		if err != nil {
			panic("engine: builtin theme " + name + ": " + err.Error())
		}
		e.themes[name] = th
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("engine", e.id.String())
	return e
}

// ID identifies the engine. Theme state is keyed by it.
func (e *Engine) ID() uuid.UUID { return e.id }

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Instances returns the live instances in no particular order.
func (e *Engine) Instances() []*Instance {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Instance, 0, len(e.instances))
	for _, inst := range e.instances {
		out = append(out, inst)
	}
	return out
}

// Close disposes every live instance and forgets the engine's theme state.
// Create fails afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	live := make([]*Instance, 0, len(e.instances))
	for _, inst := range e.instances {
		live = append(live, inst)
	}
	e.mu.Unlock()

	for _, inst := range live {
		inst.Dispose()
	}
	sharedThemes.forget(e.id)
}

func (e *Engine) release(inst *Instance) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.instances, inst.id)
	if cur, ok := e.mounts[inst.mount]; ok && cur == inst {
		delete(e.mounts, inst.mount)
	}
}

func (e *Engine) restyleInstances() {
	e.mu.Lock()
	live := make([]*Instance, 0, len(e.instances))
	for _, inst := range e.instances {
		live = append(live, inst)
	}
	e.mu.Unlock()

	for _, inst := range live {
		inst.styleGen.Add(1)
	}
}
