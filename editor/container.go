package editor

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// container is the mount point of the instance. It owns the available space
// reported by the terminal and the loading placeholder.
type container struct {
	width, height Dimension
	availW        int
	availH        int
	loading       string
	spinner       spinner.Model
}

func newContainer(p Props) *container {
	c := &container{spinner: spinner.New(spinner.WithSpinner(spinner.Dot))}
	c.setProps(p)
	return c
}

// Size implements engine.Mount.
func (c *container) Size() (width, height int) {
	return c.width.Resolve(c.availW), c.height.Resolve(c.availH)
}

// setProps reports whether the resolved size changed.
func (c *container) setProps(p Props) bool {
	w, h := c.Size()
	c.width, c.height, c.loading = p.Width, p.Height, p.Loading
	nw, nh := c.Size()
	return w != nw || h != nh
}

// resize reports whether the resolved size changed.
func (c *container) resize(width, height int) bool {
	w, h := c.Size()
	c.availW, c.availH = width, height
	nw, nh := c.Size()
	return w != nw || h != nh
}

func (c *container) tick() tea.Cmd { return c.spinner.Tick }

func (c *container) updateSpinner(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	c.spinner, cmd = c.spinner.Update(msg)
	return cmd
}

func (c *container) placeholder() string {
	s := c.spinner.View() + " " + c.loading
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return s
	}
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, s)
}
