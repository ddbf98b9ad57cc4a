package editor

import (
	"context"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/loader"
)

// engineLoadedMsg delivers the outcome of one activation's initialization.
type engineLoadedMsg struct {
	id     string
	cycle  int
	engine *engine.Engine
	err    error
}

// controller holds the state of a Model. It is only touched from Update.
type controller struct {
	id      string
	logger  *slog.Logger
	metrics *Metrics
	loader  Initializer

	onMount  func(value func() string, inst *engine.Instance)
	onChange func(value string, ev engine.ContentChangeEvent)

	props     Props // latest
	applied   Props // last reconciled with the instance
	container *container

	cycle   int
	started time.Time
	pending *loader.Pending
	engine  *engine.Engine
	inst    *engine.Instance
	phase   Phase

	engineLoaded    bool
	instanceCreated bool
}

func newController(p Props, opts ...Option) *controller {
	p = p.withDefaults()
	c := &controller{
		id:        uuid.NewString(),
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		props:     p,
		container: newContainer(p),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.loader == nil {
		c.loader = loader.Default()
	}
	if c.metrics == nil {
		c.metrics, _ = NewMetrics(nil)
	}
	c.logger = c.logger.With("component", c.id)
	return c
}

// activate starts engine initialization for a new cycle. It is a no-op while
// a cycle is in progress.
func (c *controller) activate() tea.Cmd {
	switch c.phase {
	case PhaseInitializing, PhaseReady, PhaseCreated:
		return nil
	}
	c.cycle++
	c.phase = PhaseInitializing
	c.engineLoaded = false
	c.instanceCreated = false
	c.started = time.Now()
	c.metrics.Activations.Inc()

	p := c.loader.Init()
	c.pending = p
	id, cycle := c.id, c.cycle
	c.logger.Debug("engine initialization started", "cycle", cycle)

	wait := func() tea.Msg {
		e, err := p.Wait(context.Background())
		return engineLoadedMsg{id: id, cycle: cycle, engine: e, err: err}
	}
	return tea.Batch(wait, c.container.tick())
}

func (c *controller) handleLoaded(msg engineLoadedMsg) {
	if msg.id != c.id || msg.cycle != c.cycle {
		return
	}
	if msg.err != nil {
		if loader.IsCanceled(msg.err) {
			return
		}
		if c.phase != PhaseInitializing {
			return
		}
		c.phase = PhaseFailed
		c.pending = nil
		c.metrics.InitFailures.Inc()
		c.logger.Error("engine initialization failed", "error", msg.err)
		return
	}
	if c.phase != PhaseInitializing {
		return
	}

	c.pending = nil
	c.engine = msg.engine
	c.engineLoaded = true
	c.phase = PhaseReady
	c.create()
}

// create builds the instance from the current props. It runs at most once
// per cycle.
func (c *controller) create() {
	if !c.engineLoaded || c.instanceCreated || c.inst != nil {
		return
	}
	p := c.props
	e := c.engine

	inst, err := e.Create(c.container, engine.CreateOptions{
		Value:    p.Value,
		Language: p.Language,
		Options:  creationOptions(p.Options),
	}, p.Overrides)
	if err != nil {
		c.phase = PhaseFailed
		c.metrics.InitFailures.Inc()
		c.logger.Error("instance creation failed", "error", err)
		return
	}
	c.inst = inst

	if err := e.SetTheme(p.Theme); err != nil {
		c.logger.Warn("theme not applied", "theme", p.Theme, "error", err)
	}
	c.registerSnippets(p.Snippets)
	if c.onChange != nil {
		inst.OnDidChangeModelContent(func(ev engine.ContentChangeEvent) {
			if ev.Source == buffer.ChangeSourceLocal {
				c.onChange(inst.GetValue(), ev)
			}
		})
	}

	c.applied = p.snapshot()
	c.instanceCreated = true
	c.phase = PhaseCreated
	c.metrics.InstancesCreated.Inc()
	c.metrics.InitDuration.Observe(time.Since(c.started).Seconds())
	c.logger.Info("editor instance created",
		"instance", inst.ID().String(),
		"language", inst.GetModel().Language(),
		"theme", p.Theme,
	)

	if c.onMount != nil {
		c.onMount(inst.GetValue, inst)
	}
}

// registerSnippets registers one completion provider per snippet set. The
// registrations are owned by the instance.
func (c *controller) registerSnippets(sets []Snippet) {
	for _, set := range sets {
		items := make([]engine.CompletionItem, 0, len(set.Suggestions))
		for _, s := range set.Suggestions {
			item, ok := s.Item()
			if !ok {
				c.logger.Warn("unknown completion kind, using Snippet", "label", s.Label, "kind", s.Kind)
			}
			items = append(items, item)
		}
		provider := engine.StaticCompletions(items)
		c.inst.Own(c.engine.RegisterCompletionItemProvider(set.Language, provider))
	}
}

// deactivate disposes the instance if one exists, otherwise cancels a
// pending initialization. It is idempotent.
func (c *controller) deactivate() {
	switch {
	case c.inst != nil:
		c.inst.Dispose()
		c.inst = nil
		c.instanceCreated = false
		c.phase = PhaseDisposed
		c.metrics.InstancesDisposed.Inc()
		c.logger.Info("editor instance disposed")
	case c.phase == PhaseInitializing:
		if c.pending != nil {
			c.pending.Cancel()
		}
		c.phase = PhaseCanceled
		c.metrics.InitCanceled.Inc()
		c.logger.Debug("engine initialization canceled")
	}
	c.pending = nil
}

func (c *controller) resize(width, height int) {
	if c.container.resize(width, height) {
		c.layout()
	}
}

func (c *controller) layout() {
	if c.instanceCreated && c.inst.GetOption(engine.OptionAutomaticLayout).Bool() {
		c.inst.Layout()
	}
}

func (c *controller) view() string {
	if c.instanceCreated {
		return c.inst.View()
	}
	return c.container.placeholder()
}
