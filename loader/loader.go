package loader

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/iw2rmb/inkwell/engine"
)

const maxParallelAssets = 4

// Config lists the assets a build loads.
type Config struct {
	ThemeFiles   []string `mapstructure:"themeFiles" yaml:"themeFiles" toml:"themeFiles"`
	SnippetFiles []string `mapstructure:"snippetFiles" yaml:"snippetFiles" toml:"snippetFiles"`
	Extensions   []string `mapstructure:"extensions" yaml:"extensions" toml:"extensions"`
}

// Loader builds and memoizes an engine.
type Loader struct {
	cfg        Config
	logger     *slog.Logger
	engineOpts []engine.Option

	group singleflight.Group

	mu     sync.Mutex
	engine *engine.Engine

	builds      atomic.Int32
	beforeBuild func() // test hook
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used by the loader and the engines it builds.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithEngineOptions passes options to engine.New.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(l *Loader) {
		l.engineOpts = append(l.engineOpts, opts...)
	}
}

func New(cfg Config, opts ...Option) *Loader {
	l := &Loader{
		cfg:    cfg,
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var defaultLoader = sync.OnceValue(func() *Loader { return New(Config{}) })

// Default returns the process-wide loader with no extra assets.
func Default() *Loader { return defaultLoader() }

// Init starts or joins engine initialization and returns immediately.
func (l *Loader) Init() *Pending {
	if e, ok := l.Engine(); ok {
		return Resolved(e)
	}

	p := NewPending()
	ch := l.group.DoChan("engine", func() (any, error) { return l.build() })
	go func() {
		select {
		case r := <-ch:
			if r.Err != nil {
				p.Fail(r.Err)
				return
			}
			p.Resolve(r.Val.(*engine.Engine))
		case <-p.Done():
			// Canceled. The shared build keeps running for other callers.
		}
	}()
	return p
}

// Engine returns the memoized engine, if a build has succeeded.
func (l *Loader) Engine() (*engine.Engine, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine, l.engine != nil
}

// Builds returns how many builds ran.
func (l *Loader) Builds() int { return int(l.builds.Load()) }

func (l *Loader) build() (*engine.Engine, error) {
	if e, ok := l.Engine(); ok {
		return e, nil
	}
	l.builds.Add(1)
	if l.beforeBuild != nil {
		l.beforeBuild()
	}
	start := time.Now()

	files := make([]string, 0, len(l.cfg.ThemeFiles)+len(l.cfg.SnippetFiles))
	files = append(files, l.cfg.ThemeFiles...)
	files = append(files, l.cfg.SnippetFiles...)
	loaded := make([]assets, len(files)+len(l.cfg.Extensions))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(maxParallelAssets)
	for i, path := range files {
		g.Go(func() error {
			a, err := readAssetFile(path)
			loaded[i] = a
			return err
		})
	}
	for i, path := range l.cfg.Extensions {
		g.Go(func() error {
			a, err := runExtension(ctx, path)
			loaded[len(files)+i] = a
			return err
		})
	}
	if err := g.Wait(); err != nil {
		l.logger.Error("engine load failed", "error", err)
		return nil, err
	}

	opts := append([]engine.Option{engine.WithLogger(l.logger)}, l.engineOpts...)
	e := engine.New(opts...)
	for _, a := range loaded {
		if err := l.apply(e, a); err != nil {
			e.Close()
			l.logger.Error("engine load failed", "error", err)
			return nil, err
		}
	}

	l.mu.Lock()
	l.engine = e
	l.mu.Unlock()

	l.logger.Info("engine loaded",
		"engine", e.ID().String(),
		"assets", len(loaded),
		"themes", len(e.Themes()),
		"elapsed", time.Since(start),
	)
	return e, nil
}
