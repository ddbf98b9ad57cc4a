package config

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/iw2rmb/inkwell/editor"
)

// ReloadErrorMsg reports a props file change that could not be decoded.
// The editor keeps its previous props.
type ReloadErrorMsg struct {
	Path string
	Err  error
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithTarget addresses reloaded props to the editor with the given ID.
// Without it, PropsMsg is broadcast.
func WithTarget(id string) WatchOption {
	return func(w *Watcher) { w.target = id }
}

// WithDebounce sets how long the watcher waits for a burst of writes to
// settle before reloading. Default 50ms.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithWatchLogger sets the logger.
func WithWatchLogger(l *slog.Logger) WatchOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher reloads a props file when it changes and delivers the result as
// Bubble Tea messages.
//
// The parent directory is watched rather than the file, so editors that
// save by rename are seen.
type Watcher struct {
	path     string
	name     string
	target   string
	debounce time.Duration
	logger   *slog.Logger

	fsw  *fsnotify.Watcher
	msgs chan tea.Msg
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Watch starts watching the props file at path.
func Watch(path string, opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     abs,
		name:     filepath.Base(abs),
		debounce: 50 * time.Millisecond,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		msgs:     make(chan tea.Msg, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string { return w.path }

// Next returns a command that waits for the next reload. Re-issue it after
// each message. It yields nil once the watcher is closed.
func (w *Watcher) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.msgs:
			return msg
		case <-w.done:
			return nil
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("props watcher error", "path", w.path, "error", err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	var msg tea.Msg
	f, err := Load(w.path)
	if err != nil {
		w.logger.Warn("props reload failed", "path", w.path, "error", err)
		msg = ReloadErrorMsg{Path: w.path, Err: err}
	} else {
		w.logger.Debug("props reloaded", "path", w.path)
		msg = editor.PropsMsg{ID: w.target, Props: f.Props}
	}

	// Only the latest reload matters to a slow consumer.
	select {
	case <-w.msgs:
	default:
	}
	select {
	case w.msgs <- msg:
	case <-w.done:
	}
}
