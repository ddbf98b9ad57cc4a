package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/inkwell/editor"
)

func next(t *testing.T, w *Watcher) tea.Msg {
	t.Helper()
	ch := make(chan tea.Msg, 1)
	go func() { ch <- w.Next()() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
		return nil
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "props.yaml", "value: one\n")

	w, err := Watch(path, WithTarget("ed-1"), WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "props.yaml", "value: two\ntheme: vs-dark\n")

	msg := next(t, w)
	pm, ok := msg.(editor.PropsMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "ed-1", pm.ID)
	assert.Equal(t, "two", pm.Props.Value)
	assert.Equal(t, "vs-dark", pm.Props.Theme)
}

func TestWatcher_ReportsDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "props.yaml", "value: one\n")

	w, err := Watch(path, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "props.yaml", "value: [broken")

	msg := next(t, w)
	em, ok := msg.(ReloadErrorMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, w.Path(), em.Path)
	assert.Error(t, em.Err)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "props.yaml", "value: one\n")

	w, err := Watch(path, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "other.yaml", "value: nope\n")
	require.NoError(t, os.Rename(filepath.Join(dir, "other.yaml"), filepath.Join(dir, "third.yaml")))
	writeFile(t, dir, "props.yaml", "value: yes\n")

	pm, ok := next(t, w).(editor.PropsMsg)
	require.True(t, ok)
	assert.Equal(t, "yes", pm.Props.Value)
}

func TestWatcher_CloseEndsNext(t *testing.T) {
	path := writeFile(t, t.TempDir(), "props.yaml", "value: one\n")
	w, err := Watch(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.Nil(t, w.Next()())
}
