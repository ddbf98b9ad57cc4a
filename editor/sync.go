package editor

import (
	"github.com/iw2rmb/inkwell/buffer"
)

// syncRule reconciles one prop with the instance.
type syncRule struct {
	name    string
	changed func(prev, next Props) bool
	apply   func(c *controller, next Props)
}

// syncRules run in order. options precedes value so that a readOnly change
// arriving with a new value is in effect when the value is applied.
var syncRules = []syncRule{
	{
		name:    "options",
		changed: func(prev, next Props) bool { return !optionsEqual(prev.Options, next.Options) },
		apply:   func(c *controller, next Props) { c.inst.UpdateOptions(next.Options) },
	},
	{
		name:    "value",
		changed: func(prev, next Props) bool { return prev.Value != next.Value },
		apply:   (*controller).syncValue,
	},
	{
		name:    "language",
		changed: func(prev, next Props) bool { return prev.Language != next.Language },
		apply: func(c *controller, next Props) {
			c.engine.SetModelLanguage(c.inst.GetModel(), next.Language)
		},
	},
	{
		name:    "line",
		changed: func(prev, next Props) bool { return prev.Line != next.Line },
		apply:   func(c *controller, next Props) { c.inst.SetScrollTop(next.Line) },
	},
	{
		name:    "theme",
		changed: func(prev, next Props) bool { return prev.Theme != next.Theme },
		apply: func(c *controller, next Props) {
			if err := c.engine.SetTheme(next.Theme); err != nil {
				c.logger.Warn("theme not applied", "theme", next.Theme, "error", err)
			}
		},
	},
}

// syncValue pushes a new value into the instance. Read-only instances are
// overwritten; editable ones get an undoable full-range edit, skipped when
// the content already matches.
func (c *controller) syncValue(next Props) {
	inst := c.inst
	if inst.ReadOnly() {
		inst.SetValue(next.Value)
		return
	}
	if next.Value == inst.GetValue() {
		return
	}
	model := inst.GetModel()
	inst.ExecuteEdits("", []buffer.TextEdit{{
		Range:            model.FullModelRange(),
		Text:             next.Value,
		ForceMoveMarkers: true,
	}})
	if next.ControlledMode {
		model.ForceTokenization(model.LineCount())
	}
	inst.PushUndoStop()
}

// setProps records next and, once the instance exists, applies every rule
// whose prop changed since the last reconciliation.
func (c *controller) setProps(next Props) {
	next = next.withDefaults()
	c.props = next
	resized := c.container.setProps(next)

	if !c.instanceCreated {
		return
	}
	prev := c.applied
	for _, r := range syncRules {
		if !r.changed(prev, next) {
			continue
		}
		r.apply(c, next)
		c.metrics.SyncApplied.WithLabelValues(r.name).Inc()
		c.logger.Debug("prop applied", "rule", r.name)
	}
	c.applied = next.snapshot()
	if resized {
		c.layout()
	}
}
