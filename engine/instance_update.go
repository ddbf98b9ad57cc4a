package engine

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/buffer"
)

type editKind uint8

const (
	editNone editKind = iota
	editTyping
	editDeleting
)

const wheelStep = 3

// Update handles keyboard and mouse input. Other messages are ignored.
func (in *Instance) Update(msg tea.Msg) tea.Cmd {
	if in.disposed {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if in.focused {
			in.updateKey(msg)
		}
	case tea.MouseMsg:
		in.updateMouse(msg)
	}
	return nil
}

func (in *Instance) updateMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		in.SetScrollTop(max(in.viewport.YOffset-wheelStep, 0))
	case tea.MouseButtonWheelDown:
		in.SetScrollTop(in.viewport.YOffset + wheelStep)
	}
}

func (in *Instance) updateKey(msg tea.KeyMsg) {
	km := in.keymap
	buf := in.model.buf
	readOnly := in.ReadOnly()

	if in.completion.visible {
		switch {
		case key.Matches(msg, km.SuggestDismiss):
			in.closeCompletion()
			return
		case key.Matches(msg, km.SuggestPrev):
			in.completion.move(-1)
			return
		case key.Matches(msg, km.SuggestNext):
			in.completion.move(1)
			return
		case key.Matches(msg, km.SuggestAccept):
			if !readOnly {
				in.acceptCompletion()
			}
			return
		}
	}

	// Pasted text is literal and never triggers shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !readOnly {
			in.insertBlock(normalizeNewlines(string(msg.Runes)))
		}
		return
	}

	switch {
	case key.Matches(msg, km.TriggerSuggest):
		in.openCompletion()
		return

	case key.Matches(msg, km.Left):
		in.move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		in.move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight})
	case key.Matches(msg, km.Up):
		in.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp})
	case key.Matches(msg, km.Down):
		in.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown})
	case key.Matches(msg, km.ShiftLeft):
		in.move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		in.move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		in.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		in.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown, Extend: true})
	case key.Matches(msg, km.WordLeft):
		in.move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		in.move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})
	case key.Matches(msg, km.Home):
		in.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		in.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, km.PageUp):
		in.page(-1)
	case key.Matches(msg, km.PageDown):
		in.page(1)

	case key.Matches(msg, km.Backspace):
		if !readOnly {
			in.edit(editDeleting, buf.DeleteBackward)
		}
	case key.Matches(msg, km.Delete):
		if !readOnly {
			in.edit(editDeleting, buf.DeleteForward)
		}
	case key.Matches(msg, km.Enter):
		if !readOnly {
			in.insertBlock("\n")
		}

	case key.Matches(msg, km.Undo):
		if !readOnly {
			in.lastEdit = editNone
			in.model.mutate(func() { buf.Undo() })
		}
	case key.Matches(msg, km.Redo):
		if !readOnly {
			in.lastEdit = editNone
			in.model.mutate(func() { buf.Redo() })
		}

	case key.Matches(msg, km.Copy):
		in.copySelection()
	case key.Matches(msg, km.Cut):
		if readOnly {
			in.copySelection()
		} else {
			in.cutSelection()
		}
	case key.Matches(msg, km.Paste):
		if !readOnly {
			in.pasteClipboard()
		}

	default:
		if readOnly {
			break
		}
		switch {
		case msg.Type == tea.KeyTab:
			in.edit(editTyping, func() { buf.InsertText("\t") })
		case msg.Type == tea.KeySpace:
			in.edit(editTyping, func() { buf.InsertText(" ") })
		case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
			in.edit(editTyping, func() { buf.InsertText(string(msg.Runes)) })
		}
	}

	in.refreshCompletion()
	in.followCursor()
}

// edit runs fn as a user edit. Consecutive edits of the same kind share an
// undo element; switching kinds closes it.
func (in *Instance) edit(kind editKind, fn func()) {
	if in.lastEdit != kind {
		in.model.buf.PushUndoStop()
	}
	if in.model.mutate(fn) {
		in.lastEdit = kind
	}
}

// insertBlock inserts text as its own undo element.
func (in *Instance) insertBlock(s string) {
	buf := in.model.buf
	buf.PushUndoStop()
	in.model.mutate(func() { buf.InsertText(s) })
	buf.PushUndoStop()
	in.lastEdit = editNone
}

func (in *Instance) move(m buffer.Move) {
	in.model.buf.Move(m)
	if in.lastEdit != editNone {
		in.model.buf.PushUndoStop()
		in.lastEdit = editNone
	}
	in.closeCompletion()
}

func (in *Instance) page(dir int) {
	h := max(in.viewport.Height, 1)
	buf := in.model.buf
	cur := buf.Cursor()
	row := min(max(cur.Row+dir*h, 0), buf.LineCount()-1)
	buf.SetCursor(buffer.Pos{Row: row, Col: cur.Col})
	in.SetScrollTop(max(in.viewport.YOffset+dir*h, 0))
	in.lastEdit = editNone
	in.closeCompletion()
}

func (in *Instance) followCursor() {
	h := in.viewport.Height
	if h <= 0 {
		return
	}
	row := in.model.buf.Cursor().Row
	y := in.viewport.YOffset
	switch {
	case row < y:
		in.SetScrollTop(row)
	case row >= y+h:
		in.SetScrollTop(row - h + 1)
	}
}

func (in *Instance) copySelection() {
	if in.clipboard == nil {
		return
	}
	r, ok := in.model.buf.Selection()
	if !ok {
		return
	}
	if s := in.model.buf.TextInRange(r); s != "" {
		_ = in.clipboard.WriteText(s)
	}
}

func (in *Instance) cutSelection() {
	if in.clipboard == nil {
		return
	}
	buf := in.model.buf
	r, ok := buf.Selection()
	if !ok {
		return
	}
	if s := buf.TextInRange(r); s != "" {
		_ = in.clipboard.WriteText(s)
	}
	buf.PushUndoStop()
	in.model.mutate(buf.DeleteSelection)
	buf.PushUndoStop()
	in.lastEdit = editNone
}

func (in *Instance) pasteClipboard() {
	if in.clipboard == nil {
		return
	}
	s, err := in.clipboard.ReadText()
	if err != nil || s == "" {
		return
	}
	in.insertBlock(normalizeNewlines(s))
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
