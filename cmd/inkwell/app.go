package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/internal/config"
)

var statusStyle = lipgloss.NewStyle().Faint(true)

// app hosts one editor and a status line. Watched props overrides from the
// command line are kept across reloads.
type app struct {
	editor  editor.Model
	watcher *config.Watcher
	opts    runOptions
	dark    bool

	width, height int
	status        string
}

func newApp(ed editor.Model, w *config.Watcher, o runOptions, dark bool) app {
	return app{editor: ed, watcher: w, opts: o, dark: dark}
}

func (a app) Init() tea.Cmd {
	cmds := []tea.Cmd{a.editor.Init()}
	if a.watcher != nil {
		cmds = append(cmds, a.watcher.Next())
	}
	return tea.Batch(cmds...)
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "ctrl+q" {
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-1, 0)})
		return a, cmd
	case editor.PropsMsg:
		msg.Props = resolveProps(config.File{Props: msg.Props}, a.opts, a.dark)
		a.editor, _ = a.editor.Update(msg)
		a.status = "reloaded " + a.watcher.Path()
		return a, a.watcher.Next()
	case config.ReloadErrorMsg:
		a.status = fmt.Sprintf("reload failed: %v", msg.Err)
		return a, a.watcher.Next()
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

func (a app) View() string {
	status := a.status
	if status == "" {
		status = a.editor.Phase().String()
		if inst := a.editor.Instance(); inst != nil {
			status = fmt.Sprintf("%s  %s  ctrl+q quit", inst.GetModel().Language(), a.editor.Props().Theme)
		}
	}
	if a.width > 0 {
		status = lipgloss.NewStyle().MaxWidth(a.width).Render(status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.editor.View(), statusStyle.Render(status))
}
