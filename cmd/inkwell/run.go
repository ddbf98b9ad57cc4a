package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/internal/config"
	"github.com/iw2rmb/inkwell/loader"
)

var errNotTerminal = errors.New("stdin is not a terminal")

type runOptions struct {
	propsFile   string
	watch       bool
	theme       string
	language    string
	readOnly    bool
	engine      loader.Config
	logFile     string
	logLevel    slog.Level
	metricsAddr string
}

func runOptionsFromFlags(cmd *cobra.Command, args []string) (runOptions, error) {
	f := cmd.Flags()
	var o runOptions
	if len(args) > 0 {
		o.propsFile = args[0]
	}
	o.watch, _ = f.GetBool("watch")
	o.theme, _ = f.GetString("theme")
	o.language, _ = f.GetString("language")
	o.readOnly, _ = f.GetBool("read-only")
	o.engine.ThemeFiles, _ = f.GetStringSlice("theme-file")
	o.engine.SnippetFiles, _ = f.GetStringSlice("snippet-file")
	o.engine.Extensions, _ = f.GetStringSlice("extension")
	o.logFile, _ = f.GetString("log-file")
	o.metricsAddr, _ = f.GetString("metrics-addr")

	level, _ := f.GetString("log-level")
	if err := o.logLevel.UnmarshalText([]byte(level)); err != nil {
		return runOptions{}, fmt.Errorf("--log-level: %w", err)
	}
	if o.watch && o.propsFile == "" {
		return runOptions{}, errors.New("--watch needs a props file")
	}
	return o, nil
}

// resolveProps layers command-line overrides over the props file. dark
// selects the default theme when neither names one.
func resolveProps(file config.File, o runOptions, dark bool) editor.Props {
	p := file.Props
	if o.theme != "" {
		p.Theme = o.theme
	}
	if p.Theme == "" {
		p.Theme = "light"
		if dark {
			p.Theme = "vs-dark"
		}
	}
	if o.language != "" {
		p.Language = o.language
	}
	if o.readOnly {
		opts := make(map[string]any, len(p.Options)+1)
		for k, v := range p.Options {
			opts[k] = v
		}
		opts[engine.OptionReadOnly] = true
		p.Options = opts
	}
	return p
}

func mergeEngineConfig(a, b loader.Config) loader.Config {
	return loader.Config{
		ThemeFiles:   append(append([]string(nil), a.ThemeFiles...), b.ThemeFiles...),
		SnippetFiles: append(append([]string(nil), a.SnippetFiles...), b.SnippetFiles...),
		Extensions:   append(append([]string(nil), a.Extensions...), b.Extensions...),
	}
}

func newLogger(o runOptions) (*slog.Logger, func(), error) {
	if o.logFile == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: o.logLevel}))
	return logger, func() { f.Close() }, nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func run(ctx context.Context, o runOptions) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logger, closeLog, err := newLogger(o)
	if err != nil {
		return err
	}
	defer closeLog()

	var file config.File
	if o.propsFile != "" {
		if file, err = config.Load(o.propsFile); err != nil {
			return err
		}
		if len(file.Unused) > 0 {
			logger.Warn("unknown props keys", "path", file.Path, "keys", file.Unused)
		}
	}

	reg := prometheus.NewRegistry()
	metrics, err := editor.NewMetrics(reg)
	if err != nil {
		return err
	}
	if o.metricsAddr != "" {
		stop := serveMetrics(o.metricsAddr, reg, logger)
		defer stop()
	}

	ld := loader.New(mergeEngineConfig(file.Engine, o.engine),
		loader.WithLogger(logger),
		loader.WithEngineOptions(engine.WithLogger(logger)),
	)

	dark := termenv.HasDarkBackground()
	props := resolveProps(file, o, dark)
	ed := editor.New(props,
		editor.WithLoader(ld),
		editor.WithLogger(logger),
		editor.WithMetrics(metrics),
	)

	var w *config.Watcher
	if o.watch {
		w, err = config.Watch(o.propsFile, config.WithTarget(ed.ID()), config.WithWatchLogger(logger))
		if err != nil {
			return err
		}
		defer w.Close()
	}

	p := tea.NewProgram(newApp(ed, w, o, dark), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if a, ok := final.(app); ok {
		a.editor.Deactivate()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
