package editor

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/engine"
)

// PropsMsg replaces the props of the Model with the given ID, or of every
// Model receiving it when ID is empty.
type PropsMsg struct {
	ID    string
	Props Props
}

// Model is a Bubble Tea component hosting one editor instance.
//
// Model is a value type; copies share state.
type Model struct {
	c *controller
}

func New(props Props, opts ...Option) Model {
	return Model{c: newController(props, opts...)}
}

// ID identifies the component in logs and messages.
func (m Model) ID() string { return m.c.id }

// Init activates the component: engine initialization starts and the
// loading placeholder animates.
func (m Model) Init() tea.Cmd { return m.c.activate() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	c := m.c
	switch msg := msg.(type) {
	case engineLoadedMsg:
		c.handleLoaded(msg)
		return m, nil
	case PropsMsg:
		if msg.ID == "" || msg.ID == c.id {
			c.setProps(msg.Props)
		}
		return m, nil
	case tea.WindowSizeMsg:
		c.resize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		if c.instanceCreated {
			return m, nil
		}
		return m, c.container.updateSpinner(msg)
	}

	if c.instanceCreated {
		return m, c.inst.Update(msg)
	}
	return m, nil
}

func (m Model) View() string { return m.c.view() }

// SetProps reconciles the instance with p.
func (m Model) SetProps(p Props) Model {
	m.c.setProps(p)
	return m
}

// Props returns the latest props.
func (m Model) Props() Props { return m.c.props }

// Deactivate disposes the instance, or cancels initialization in progress.
func (m Model) Deactivate() Model {
	m.c.deactivate()
	return m
}

func (m Model) Phase() Phase { return m.c.phase }

// Ready reports whether the instance exists.
func (m Model) Ready() bool { return m.c.instanceCreated }

// Instance returns the live instance, or nil.
func (m Model) Instance() *engine.Instance { return m.c.inst }

// Focus and Blur forward focus to the instance.
func (m Model) Focus() Model {
	if m.c.instanceCreated {
		m.c.inst.Focus()
	}
	return m
}

func (m Model) Blur() Model {
	if m.c.instanceCreated {
		m.c.inst.Blur()
	}
	return m
}
