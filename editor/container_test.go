package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/iw2rmb/inkwell/engine"
)

func TestDimension_Resolve(t *testing.T) {
	cases := []struct {
		d     Dimension
		avail int
		want  int
	}{
		{"100%", 80, 80},
		{"50%", 80, 40},
		{"33%", 10, 3},
		{"40", 80, 40},
		{"40", 20, 20},
		{Cells(12), 80, 12},
		{"", 30, 30},
		{"wide", 30, 30},
		{"-5", 30, 30},
		{"100%", -1, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.d.Resolve(tc.avail), "%q of %d", tc.d, tc.avail)
	}
}

func TestDefaultProps(t *testing.T) {
	d := DefaultProps()
	assert.Equal(t, "light", d.Theme)
	assert.Equal(t, Dimension("100%"), d.Width)
	assert.Equal(t, Dimension("100%"), d.Height)
	assert.Equal(t, "Loading...", d.Loading)
	assert.NotNil(t, d.Options)
	assert.Empty(t, d.Options)
	assert.NotNil(t, d.Overrides)
	assert.False(t, d.ControlledMode)

	m := New(Props{})
	assert.Equal(t, d.Theme, m.Props().Theme)
	assert.Equal(t, d.Loading, m.Props().Loading)
}

func TestContainer_PlaceholderUntilCreated(t *testing.T) {
	fl := &fakeLoader{}
	m := New(Props{}, WithLoader(fl))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 4})

	cmd := m.Init()
	view := m.View()
	assert.Contains(t, view, "Loading...")
	assert.Len(t, strings.Split(view, "\n"), 4)

	fl.last().Resolve(engine.New())
	m, _ = m.Update(loaded(t, cmd))
	defer m.Deactivate()
	assert.NotContains(t, stripANSI(m.View()), "Loading...")
}

func TestContainer_AutomaticLayout(t *testing.T) {
	m := mount(t, New(Props{Width: "50%", Height: Cells(10)}, WithLoader(sharedLoader{engine.New()})))

	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	w, h := m.Instance().Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 10, h)

	m = m.SetProps(Props{Width: "100%", Height: Cells(10)})
	w, _ = m.Instance().Size()
	assert.Equal(t, 80, w)
}

func TestContainer_NoAutomaticLayout(t *testing.T) {
	m := mount(t, New(Props{Options: map[string]any{"automaticLayout": false}}, WithLoader(sharedLoader{engine.New()})))

	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	w, h := m.Instance().Size()
	assert.Equal(t, 0, w)
	assert.Equal(t, 0, h)
}

func TestView_RendersInstance(t *testing.T) {
	m := New(Props{Value: "hello inkwell"}, WithLoader(sharedLoader{engine.New()}))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 3})
	m = mount(t, m)

	assert.Contains(t, stripANSI(m.View()), "hello inkwell")
}
