package editor

import (
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/loader"
)

// fakeLoader hands out tokens the test settles by hand.
type fakeLoader struct {
	pendings []*loader.Pending
}

func (f *fakeLoader) Init() *loader.Pending {
	p := loader.NewPending()
	f.pendings = append(f.pendings, p)
	return p
}

func (f *fakeLoader) last() *loader.Pending { return f.pendings[len(f.pendings)-1] }

// sharedLoader resolves every request with the same engine.
type sharedLoader struct {
	engine *engine.Engine
}

func (s sharedLoader) Init() *loader.Pending { return loader.Resolved(s.engine) }

// loaded runs the commands returned by Init and returns the engine message.
// It blocks until the token settles.
func loaded(t *testing.T, cmd tea.Cmd) engineLoadedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case engineLoadedMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if m, ok := c().(engineLoadedMsg); ok {
				return m
			}
		}
	}
	t.Fatalf("no engine message in command")
	return engineLoadedMsg{}
}

func newMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

// mount activates m against a resolved engine and returns the created model.
func mount(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = m.Update(loaded(t, m.Init()))
	require.True(t, m.Ready())
	t.Cleanup(func() { m.Deactivate() })
	return m
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }
