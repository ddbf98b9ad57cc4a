package engine

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/inkwell/buffer"
)

func TestModel_SetValueIsFlush(t *testing.T) {
	m := newModel("one\ntwo", "plaintext")
	m.buf.InsertText("x")
	require.True(t, m.buf.CanUndo())

	var events []ContentChangeEvent
	d := m.OnDidChangeContent(func(ev ContentChangeEvent) { events = append(events, ev) })
	defer d.Dispose()

	m.SetValue("three")

	require.Len(t, events, 1)
	assert.True(t, events[0].IsFlush)
	assert.Equal(t, buffer.ChangeSourceRemote, events[0].Source)
	assert.Equal(t, "three", m.GetValue())
	assert.False(t, m.buf.CanUndo())
}

func TestModel_ListenerDispose(t *testing.T) {
	m := newModel("", "")
	calls := 0
	d := m.OnDidChangeContent(func(ContentChangeEvent) { calls++ })
	m.SetValue("a")
	d.Dispose()
	d.Dispose()
	m.SetValue("b")
	assert.Equal(t, 1, calls)
}

func TestModel_CursorMoveKeepsVersion(t *testing.T) {
	m := newModel("abc", "")
	v := m.VersionID()
	m.mutate(func() { m.buf.SetCursor(buffer.Pos{Col: 2}) })
	assert.Equal(t, v, m.VersionID())
}

func TestModel_Tokenization(t *testing.T) {
	m := newModel("package main\n\nfunc main() {}\n", "go")
	assert.False(t, m.IsTokenized())

	m.ForceTokenization(m.LineCount())
	require.True(t, m.IsTokenized())

	var sawKeyword bool
	for _, tok := range m.Tokens(0) {
		if tok.Type.InCategory(chroma.Keyword) && tok.Text == "package" {
			sawKeyword = true
		}
	}
	assert.True(t, sawKeyword)

	m.mutate(func() { m.buf.Apply(buffer.TextEdit{Range: buffer.Range{}, Text: "// x\n"}) })
	assert.False(t, m.IsTokenized())
}

func TestModel_LanguageChangeKeepsText(t *testing.T) {
	m := newModel("SELECT 1;", "sql")
	m.ForceTokenization(1)
	require.True(t, m.IsTokenized())

	m.setLanguage("python")
	assert.Equal(t, "python", m.Language())
	assert.Equal(t, "SELECT 1;", m.GetValue())
	assert.False(t, m.IsTokenized())
}

func TestModel_UnknownLanguageIsPlainText(t *testing.T) {
	m := newModel("x", "no-such-language")
	assert.Equal(t, PlainText, m.Language())
}

func TestEngine_SetModelLanguage(t *testing.T) {
	e := New()
	inst := newTestInstance(t, e, CreateOptions{Value: "a = 1", Language: "python"})
	e.SetModelLanguage(inst.GetModel(), "ruby")
	assert.Equal(t, "ruby", inst.GetModel().Language())
	assert.Equal(t, "a = 1", inst.GetValue())

	e.SetModelLanguage(nil, "go")
}
