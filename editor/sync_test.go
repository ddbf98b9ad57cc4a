package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
)

func TestSyncValue_EditableIsUndoable(t *testing.T) {
	metrics := newMetrics(t)
	m := mount(t, New(Props{Value: "one"}, WithLoader(sharedLoader{engine.New()}), WithMetrics(metrics)))
	inst := m.Instance()

	m = m.SetProps(Props{Value: "two"})
	assert.Equal(t, "two", inst.GetValue())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SyncApplied.WithLabelValues("value")))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	assert.Equal(t, "one", inst.GetValue())
}

func TestSyncValue_EqualContentIsNoop(t *testing.T) {
	m := mount(t, New(Props{Value: "same"}, WithLoader(sharedLoader{engine.New()})))
	inst := m.Instance()

	// The host echoes a value the user typed.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	require.Equal(t, "!same", inst.GetValue())
	depth := inst.GetModel().Buffer().UndoDepth()

	m = m.SetProps(Props{Value: "!same"})
	assert.Equal(t, "!same", inst.GetValue())
	assert.Equal(t, depth, inst.GetModel().Buffer().UndoDepth())
}

func TestSyncValue_ReadOnlyOverwrites(t *testing.T) {
	m := mount(t, New(Props{Value: "a", Options: map[string]any{"readOnly": true}},
		WithLoader(sharedLoader{engine.New()})))
	inst := m.Instance()

	m = m.SetProps(Props{Value: "b", Options: map[string]any{"readOnly": true}})
	assert.Equal(t, "b", inst.GetValue())
	assert.False(t, inst.GetModel().Buffer().CanUndo())
}

func TestSyncValue_ReadOnlyToggledInSameUpdate(t *testing.T) {
	m := mount(t, New(Props{Value: "a"}, WithLoader(sharedLoader{engine.New()})))
	inst := m.Instance()

	m = m.SetProps(Props{Value: "b", Options: map[string]any{"readOnly": true}})
	assert.True(t, inst.ReadOnly())
	assert.Equal(t, "b", inst.GetValue())
	assert.False(t, inst.GetModel().Buffer().CanUndo())
}

func TestSyncValue_PreservesCursorAtEnd(t *testing.T) {
	m := mount(t, New(Props{Value: "abc"}, WithLoader(sharedLoader{engine.New()})))
	buf := m.Instance().GetModel().Buffer()
	buf.SetCursor(buffer.Pos{Col: 3})

	m = m.SetProps(Props{Value: "abcd"})
	assert.Equal(t, buffer.Pos{Col: 4}, buf.Cursor())
}

func TestSyncValue_ControlledModeTokenizes(t *testing.T) {
	e := engine.New()
	controlled := mount(t, New(Props{Value: "x := 1", Language: "go", ControlledMode: true}, WithLoader(sharedLoader{e})))
	plain := mount(t, New(Props{Value: "x := 1", Language: "go"}, WithLoader(sharedLoader{e})))

	controlled = controlled.SetProps(Props{Value: "y := 2\nz := 3", Language: "go", ControlledMode: true})
	plain = plain.SetProps(Props{Value: "y := 2\nz := 3", Language: "go"})

	assert.True(t, controlled.Instance().GetModel().IsTokenized())
	assert.False(t, plain.Instance().GetModel().IsTokenized())
}

func TestSyncValue_ControlledModeIsReadLive(t *testing.T) {
	m := mount(t, New(Props{Value: "a", Language: "go"}, WithLoader(sharedLoader{engine.New()})))

	m = m.SetProps(Props{Value: "package x", Language: "go", ControlledMode: true})
	assert.True(t, m.Instance().GetModel().IsTokenized())

	m = m.SetProps(Props{Value: "package y", Language: "go"})
	assert.False(t, m.Instance().GetModel().IsTokenized())
}

func TestSyncLanguage_KeepsText(t *testing.T) {
	m := mount(t, New(Props{Value: "print(1)", Language: "go"}, WithLoader(sharedLoader{engine.New()})))
	m = m.SetProps(Props{Value: "print(1)", Language: "python"})

	assert.Equal(t, "python", m.Instance().GetModel().Language())
	assert.Equal(t, "print(1)", m.Instance().GetValue())
}

func TestSyncLine_SetsRawScrollOffset(t *testing.T) {
	m := mount(t, New(Props{Value: "a\nb\nc"}, WithLoader(sharedLoader{engine.New()})))
	m = m.SetProps(Props{Value: "a\nb\nc", Line: 7})
	assert.Equal(t, 7, m.Instance().ScrollTop())
}

func TestSyncTheme_GlobalAcrossInstances(t *testing.T) {
	e := engine.New()
	a := mount(t, New(Props{}, WithLoader(sharedLoader{e})))
	b := mount(t, New(Props{Theme: "light"}, WithLoader(sharedLoader{e})))

	a = a.SetProps(Props{Theme: "vs-dark"})
	assert.Equal(t, "vs-dark", engine.ActiveTheme(e))
	assert.Equal(t, "vs-dark", b.Instance().Engine().Theme().Name)

	a = a.SetProps(Props{Theme: "missing"})
	assert.Equal(t, "vs-dark", engine.ActiveTheme(e))
}

func TestCreate_AppliesTheme(t *testing.T) {
	e := engine.New()
	mount(t, New(Props{Theme: "hc-black"}, WithLoader(sharedLoader{e})))
	assert.Equal(t, "hc-black", engine.ActiveTheme(e))
}

func TestSyncOptions_MergesAndDetectsInPlaceEdits(t *testing.T) {
	opts := map[string]any{"minimap": map[string]any{"enabled": true}}
	m := mount(t, New(Props{Options: opts}, WithLoader(sharedLoader{engine.New()})))
	inst := m.Instance()

	opts["minimap"].(map[string]any)["side"] = "left"
	m = m.SetProps(Props{Options: opts})

	assert.True(t, inst.GetOption("minimap.enabled").Bool())
	assert.Equal(t, "left", inst.GetOption("minimap.side").String())
}

func TestSyncOptions_DetectsInPlaceEditsOfListsAndAnyMaps(t *testing.T) {
	rulers := []any{80}
	scroll := map[any]any{"vertical": "auto"}
	opts := map[string]any{"rulers": rulers, "scrollbar": scroll}
	m := mount(t, New(Props{Options: opts}, WithLoader(sharedLoader{engine.New()})))
	inst := m.Instance()

	rulers[0] = 120
	m = m.SetProps(Props{Options: opts})
	assert.EqualValues(t, 120, inst.GetOption("rulers.0").Int())

	scroll["vertical"] = "hidden"
	m = m.SetProps(Props{Options: opts})
	assert.Equal(t, "hidden", inst.GetOption("scrollbar.vertical").String())
}

func TestCloneOptions_CopiesNestedValues(t *testing.T) {
	src := map[string]any{
		"list":   []any{1, map[string]any{"a": 1}},
		"anyMap": map[any]any{"k": []any{"x"}},
	}
	dst := cloneOptions(src)
	require.True(t, optionsEqual(src, dst))

	src["list"].([]any)[1].(map[string]any)["a"] = 2
	assert.False(t, optionsEqual(src, dst))

	dst = cloneOptions(src)
	src["anyMap"].(map[any]any)["k"].([]any)[0] = "y"
	assert.False(t, optionsEqual(src, dst))
}

func TestSync_OnlyChangedRulesRun(t *testing.T) {
	metrics := newMetrics(t)
	m := mount(t, New(Props{Value: "v", Language: "go"}, WithLoader(sharedLoader{engine.New()}), WithMetrics(metrics)))

	m = m.SetProps(Props{Value: "v", Language: "go", Line: 2})
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SyncApplied.WithLabelValues("line")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SyncApplied.WithLabelValues("value")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SyncApplied.WithLabelValues("language")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SyncApplied.WithLabelValues("theme")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SyncApplied.WithLabelValues("options")))
}

func TestPropsMsg_TargetsByID(t *testing.T) {
	m := mount(t, New(Props{Value: "a"}, WithLoader(sharedLoader{engine.New()})))

	m, _ = m.Update(PropsMsg{ID: "someone-else", Props: Props{Value: "b"}})
	assert.Equal(t, "a", m.Instance().GetValue())

	m, _ = m.Update(PropsMsg{ID: m.ID(), Props: Props{Value: "c"}})
	assert.Equal(t, "c", m.Instance().GetValue())

	m, _ = m.Update(PropsMsg{Props: Props{Value: "d"}})
	assert.Equal(t, "d", m.Instance().GetValue())
}

func TestOnChange_ReportsUserEditsOnly(t *testing.T) {
	var values []string
	m := mount(t, New(Props{Value: "", ControlledMode: true}, WithLoader(sharedLoader{engine.New()}),
		WithOnChange(func(value string, ev engine.ContentChangeEvent) {
			assert.Equal(t, buffer.ChangeSourceLocal, ev.Source)
			values = append(values, value)
		})))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	m = m.SetProps(Props{Value: "hi", ControlledMode: true})
	m = m.SetProps(Props{Value: "reset", ControlledMode: true})

	assert.Equal(t, []string{"h", "hi"}, values)
	assert.Equal(t, "reset", m.Instance().GetValue())
}

func TestScenario_EditThenDeactivate(t *testing.T) {
	metrics := newMetrics(t)
	var accessor func() string
	mounts := 0
	m := New(Props{Value: "print(1)", Language: "python"},
		WithLoader(sharedLoader{engine.New()}),
		WithMetrics(metrics),
		WithOnMount(func(value func() string, _ *engine.Instance) {
			mounts++
			accessor = value
		}))
	m = mount(t, m)
	inst := m.Instance()

	require.Equal(t, 1, mounts)
	assert.Equal(t, "print(1)", accessor())
	depth := inst.GetModel().Buffer().UndoDepth()

	m = m.SetProps(Props{Value: "print(2)", Language: "python"})
	assert.Equal(t, "print(2)", inst.GetValue())
	assert.Equal(t, depth+1, inst.GetModel().Buffer().UndoDepth())

	m = m.Deactivate()
	assert.True(t, inst.IsDisposed())
	assert.Equal(t, PhaseDisposed, m.Phase())

	m = m.SetProps(Props{Value: "print(3)", Language: "go", Theme: "vs-dark", Line: 4})
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SyncApplied.WithLabelValues("value")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SyncApplied.WithLabelValues("language")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.InstancesDisposed))

	m = m.Deactivate()
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.InstancesDisposed))
}
