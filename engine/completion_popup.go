package engine

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/internal/grapheme"
)

const (
	completionMaxRows  = 8
	completionMaxWidth = 48
	docsMaxWidth       = 44
	docsMaxRows        = 10
)

type completionState struct {
	visible  bool
	items    []CompletionItem
	selected int
	offset   int
	anchor   buffer.Pos // start of the word being completed
}

func (s *completionState) move(delta int) {
	n := len(s.items)
	if n == 0 {
		return
	}
	s.selected = (s.selected + delta + n) % n
	switch {
	case s.selected < s.offset:
		s.offset = s.selected
	case s.selected >= s.offset+completionMaxRows:
		s.offset = s.selected - completionMaxRows + 1
	}
}

// CompletionVisible reports whether the suggestion popup is open.
func (in *Instance) CompletionVisible() bool { return in.completion.visible }

// CompletionItems returns the suggestions currently offered.
func (in *Instance) CompletionItems() []CompletionItem {
	return append([]CompletionItem(nil), in.completion.items...)
}

func (in *Instance) openCompletion() {
	cur := in.model.buf.Cursor()
	items, start := in.engine.ProvideCompletions(in.model, cur)
	if len(items) == 0 {
		in.closeCompletion()
		return
	}
	in.completion = completionState{
		visible: true,
		items:   items,
		anchor:  buffer.Pos{Row: cur.Row, Col: start},
	}
}

// refreshCompletion re-filters an open popup against the word at the cursor.
func (in *Instance) refreshCompletion() {
	if !in.completion.visible {
		return
	}
	cur := in.model.buf.Cursor()
	if cur.Row != in.completion.anchor.Row || cur.Col < in.completion.anchor.Col {
		in.closeCompletion()
		return
	}
	in.openCompletion()
}

func (in *Instance) closeCompletion() {
	in.completion = completionState{}
}

func (in *Instance) acceptCompletion() {
	s := in.completion
	in.closeCompletion()
	if len(s.items) == 0 {
		return
	}
	item := s.items[s.selected]
	buf := in.model.buf
	cur := buf.Cursor()

	buf.PushUndoStop()
	in.model.mutate(func() {
		if s.anchor.Col < cur.Col {
			buf.SetSelection(buffer.Range{Start: s.anchor, End: cur})
		}
		buf.InsertText(item.insertText())
	})
	buf.PushUndoStop()
	in.lastEdit = editNone
	in.logger.Debug("completion accepted", "label", item.Label, "kind", item.Kind.String())
}

func (in *Instance) renderCompletionPopup(base string, gutterWidth int) string {
	s := in.completion
	if !s.visible || len(s.items) == 0 {
		return base
	}
	vw, vh := in.viewport.Width, in.viewport.Height
	if vw <= 0 || vh <= 0 {
		return base
	}

	st := in.engine.Theme().Style()
	end := min(s.offset+completionMaxRows, len(s.items))
	visible := s.items[s.offset:end]

	width := 0
	for _, it := range visible {
		width = max(width, cellWidth(completionRowText(it)))
	}
	width = min(width, completionMaxWidth, vw)
	if width <= 0 {
		return base
	}

	rows := make([]string, 0, len(visible))
	for i, it := range visible {
		style := st.CompletionItem
		if s.offset+i == s.selected {
			style = st.CompletionSelected
		}
		rows = append(rows, style.Render(fitCells(completionRowText(it), width)))
	}

	x := gutterWidth + cellsBefore(in.model.buf.Line(s.anchor.Row), s.anchor.Col, in.tabSize())
	x = min(max(x, 0), max(vw-width, 0))

	anchorY := s.anchor.Row - in.viewport.YOffset
	y := anchorY + 1
	if y+len(rows) > vh && anchorY-len(rows) >= 0 {
		y = anchorY - len(rows)
	}
	y = min(max(y, 0), max(vh-len(rows), 0))

	out := overlay.Composite(strings.Join(rows, "\n"), base, overlay.Left, overlay.Top, x, y)

	if docs := in.renderDocs(s.items[s.selected], vw-x-width, vh); docs != "" {
		out = overlay.Composite(docs, out, overlay.Left, overlay.Top, x+width, y)
	}
	return out
}

func completionRowText(it CompletionItem) string {
	text := fmt.Sprintf(" %s %s", kindBadge(it.Kind), it.Label)
	if it.Detail != "" {
		text += "  " + it.Detail
	}
	return text + " "
}

func kindBadge(k CompletionItemKind) string {
	switch k {
	case CompletionItemKindSnippet:
		return "≡"
	case CompletionItemKindFunction, CompletionItemKindMethod, CompletionItemKindConstructor:
		return "ƒ"
	case CompletionItemKindVariable, CompletionItemKindField, CompletionItemKindProperty:
		return "◆"
	case CompletionItemKindKeyword:
		return "▪"
	case CompletionItemKindClass, CompletionItemKindStruct, CompletionItemKindInterface:
		return "◇"
	default:
		return "·"
	}
}

type docKey struct {
	label, doc string
	width      int
	dark       bool
	gen        uint64
}

type docCache struct {
	key      docKey
	rendered string
}

// renderDocs renders the markdown documentation of it with glamour. Results
// are cached per item, width, and theme generation.
func (in *Instance) renderDocs(it CompletionItem, avail, maxRows int) string {
	if it.Documentation == "" {
		return ""
	}
	width := min(avail, docsMaxWidth)
	if width < 12 {
		return ""
	}
	th := in.engine.Theme()
	k := docKey{label: it.Label, doc: it.Documentation, width: width, dark: th.Dark(), gen: in.styleGen.Load()}
	if in.docs.key == k && in.docs.rendered != "" {
		return in.docs.rendered
	}

	styleName := "light"
	if th.Dark() {
		styleName = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styleName),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		in.logger.Warn("docs renderer unavailable", "error", err)
		return ""
	}
	md, err := r.Render(it.Documentation)
	if err != nil {
		in.logger.Warn("docs render failed", "label", it.Label, "error", err)
		return ""
	}

	lines := strings.Split(strings.Trim(md, "\n"), "\n")
	lines = lines[:min(len(lines), docsMaxRows, maxRows)]
	in.docs = docCache{key: k, rendered: strings.Join(lines, "\n")}
	return in.docs.rendered
}

func cellWidth(s string) int {
	w := 0
	for _, g := range grapheme.Split(s) {
		w += grapheme.Width(g, w, 4)
	}
	return w
}

// fitCells truncates or pads s to exactly width cells.
func fitCells(s string, width int) string {
	var sb strings.Builder
	used := 0
	for _, g := range grapheme.Split(s) {
		w := grapheme.Width(g, used, 4)
		if used+w > width {
			break
		}
		if g == "\t" {
			g = strings.Repeat(" ", w)
		}
		sb.WriteString(g)
		used += w
	}
	if used < width {
		sb.WriteString(strings.Repeat(" ", width-used))
	}
	return sb.String()
}
