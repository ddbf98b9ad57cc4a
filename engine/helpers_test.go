package engine

import (
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type fakeMount struct {
	w, h int
}

func (m *fakeMount) Size() (int, int) { return m.w, m.h }

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

func newTestInstance(t *testing.T, e *Engine, cfg CreateOptions) *Instance {
	t.Helper()
	inst, err := e.Create(&fakeMount{w: 40, h: 10}, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(inst.Dispose)
	return inst
}

func typeText(in *Instance, s string) {
	for _, r := range s {
		in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(in *Instance, k tea.KeyType) {
	in.Update(tea.KeyMsg{Type: k})
}
