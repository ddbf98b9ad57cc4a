package engine

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/iw2rmb/inkwell/buffer"
)

// Mount is the host surface an instance is bound to. Implementations must
// be comparable; pointer types are typical.
type Mount interface {
	// Size returns the cell dimensions available to the instance.
	Size() (width, height int)
}

// CreateOptions is the creation-time configuration of an instance.
type CreateOptions struct {
	Value    string
	Language string
	Options  map[string]any
}

// Instance is one live editing surface bound to a Mount.
type Instance struct {
	id     uuid.UUID
	engine *Engine
	logger *slog.Logger
	mount  Mount

	model     *Model
	options   *optionsDoc
	keymap    KeyMap
	clipboard Clipboard

	viewport  viewport.Model
	scrollTop int
	focused   bool
	lastEdit  editKind

	content    contentKey
	completion completionState
	docs       docCache
	styleGen   atomic.Uint64

	owned    []Disposable
	disposed bool
}

// Create binds a new instance to mount.
func (e *Engine) Create(mount Mount, cfg CreateOptions, overrides Overrides) (*Instance, error) {
	if mount == nil {
		return nil, ErrNilMount
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrDisposed
	}
	if _, ok := e.mounts[mount]; ok {
		e.mu.Unlock()
		return nil, ErrMountInUse
	}
	inst := &Instance{
		id:       uuid.New(),
		engine:   e,
		mount:    mount,
		model:    newModel(cfg.Value, cfg.Language),
		options:  newOptionsDoc(),
		keymap:   DefaultKeyMap(),
		viewport: viewport.New(0, 0),
		focused:  true,
	}
	e.instances[inst.id] = inst
	e.mounts[mount] = inst
	e.mu.Unlock()

	inst.logger = e.logger.With("instance", inst.id.String())
	if err := inst.options.merge(cfg.Options); err != nil {
		inst.logger.Warn("invalid options ignored", "error", err)
	}
	inst.applyOverrides(overrides)
	inst.Layout()

	inst.logger.Debug("instance created",
		"language", inst.model.Language(),
		"lines", inst.model.LineCount(),
	)
	return inst, nil
}

func (in *Instance) applyOverrides(overrides Overrides) {
	for name, svc := range overrides {
		switch name {
		case ServiceClipboard:
			c, ok := svc.(Clipboard)
			if !ok {
				in.logger.Warn("clipboard override ignored", "type", fmt.Sprintf("%T", svc))
				continue
			}
			in.clipboard = c
		case ServiceKeyMap:
			switch km := svc.(type) {
			case KeyMap:
				in.keymap = km
			case *KeyMap:
				if km != nil {
					in.keymap = *km
				}
			default:
				in.logger.Warn("keymap override ignored", "type", fmt.Sprintf("%T", svc))
			}
		default:
			in.logger.Debug("unknown service override ignored", "service", name)
		}
	}
}

// ID identifies the instance.
func (in *Instance) ID() uuid.UUID { return in.id }

// Engine returns the engine that created the instance.
func (in *Instance) Engine() *Engine { return in.engine }

// GetModel returns the instance's text model.
func (in *Instance) GetModel() *Model { return in.model }

// GetValue returns the full text of the model.
func (in *Instance) GetValue() string { return in.model.GetValue() }

// SetValue replaces the text, discarding undo history.
func (in *Instance) SetValue(v string) {
	if in.disposed {
		return
	}
	in.closeCompletion()
	in.model.SetValue(v)
	in.lastEdit = editNone
}

// ExecuteEdits applies edits as one programmatic operation joined to the
// open undo element. It reports false when nothing changed or the instance
// is read-only.
func (in *Instance) ExecuteEdits(source string, edits []buffer.TextEdit) bool {
	if in.disposed || in.ReadOnly() {
		return false
	}
	changed := in.model.mutate(func() { in.model.buf.Apply(edits...) })
	if changed {
		in.logger.Debug("edits executed", "source", source, "edits", len(edits))
		in.refreshCompletion()
	}
	return changed
}

// PushUndoStop closes the open undo element.
func (in *Instance) PushUndoStop() bool {
	if in.disposed {
		return false
	}
	in.lastEdit = editNone
	return in.model.buf.PushUndoStop()
}

// GetOption reads a value from the option document by gjson path.
func (in *Instance) GetOption(path string) gjson.Result {
	return in.options.get(path)
}

// ReadOnly reports the readOnly option.
func (in *Instance) ReadOnly() bool {
	return in.options.bool(OptionReadOnly, false)
}

// UpdateOptions merges opts into the option document leaf by leaf.
func (in *Instance) UpdateOptions(opts map[string]any) {
	if in.disposed {
		return
	}
	if err := in.options.merge(opts); err != nil {
		in.logger.Warn("invalid options ignored", "error", err)
	}
	in.content = contentKey{}
}

// SetScrollTop scrolls so that row top is the first visible row. The
// requested value is kept as given; rendering clamps it.
func (in *Instance) SetScrollTop(top int) {
	if in.disposed {
		return
	}
	in.scrollTop = top
	in.viewport.SetYOffset(top)
}

// ScrollTop returns the last requested scroll offset.
func (in *Instance) ScrollTop() int { return in.scrollTop }

// Layout re-measures the mount and resizes the instance.
func (in *Instance) Layout() {
	if in.disposed {
		return
	}
	w, h := in.mount.Size()
	in.viewport.Width = max(w, 0)
	in.viewport.Height = max(h, 0)
	in.content = contentKey{}
	in.viewport.SetYOffset(in.scrollTop)
}

// Size returns the laid-out dimensions.
func (in *Instance) Size() (width, height int) {
	return in.viewport.Width, in.viewport.Height
}

func (in *Instance) Focus() { in.focused = true }

func (in *Instance) Blur() {
	in.focused = false
	in.closeCompletion()
}

func (in *Instance) Focused() bool { return in.focused }

// OnDidChangeModelContent registers fn for content changes of the model. The
// registration is released with the instance.
func (in *Instance) OnDidChangeModelContent(fn func(ContentChangeEvent)) Disposable {
	d := in.model.OnDidChangeContent(fn)
	in.Own(d)
	return d
}

// Own ties d to the instance lifetime. Owning after dispose releases d
// immediately.
func (in *Instance) Own(d Disposable) {
	if d == nil {
		return
	}
	if in.disposed {
		d.Dispose()
		return
	}
	in.owned = append(in.owned, d)
}

// Dispose releases the instance, its owned registrations, and its mount.
// It is idempotent.
func (in *Instance) Dispose() {
	if in.disposed {
		return
	}
	in.disposed = true
	in.closeCompletion()
	for i := len(in.owned) - 1; i >= 0; i-- {
		in.owned[i].Dispose()
	}
	in.owned = nil
	in.engine.release(in)
	in.logger.Debug("instance disposed")
}

// IsDisposed reports whether Dispose ran.
func (in *Instance) IsDisposed() bool { return in.disposed }
