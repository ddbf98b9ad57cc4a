package engine

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// contentKey identifies the rendered viewport content.
type contentKey struct {
	valid     bool
	versionID uint64
	language  string
	cursor    buffer.Pos
	sel       buffer.Range
	selOK     bool
	focused   bool
	width     int
	theme     string
	styleGen  uint64
}

// View renders the visible part of the model, with the suggestion popup on
// top when open.
func (in *Instance) View() string {
	if in.disposed || in.viewport.Width <= 0 || in.viewport.Height <= 0 {
		return ""
	}
	gutter := in.rebuildContent()
	return in.renderCompletionPopup(in.viewport.View(), gutter)
}

// rebuildContent re-renders the document into the viewport when anything it
// depends on changed, and returns the gutter width.
func (in *Instance) rebuildContent() int {
	buf := in.model.buf
	sel, selOK := buf.Selection()
	key := contentKey{
		valid:     true,
		versionID: in.model.VersionID(),
		language:  in.model.Language(),
		cursor:    buf.Cursor(),
		sel:       sel,
		selOK:     selOK,
		focused:   in.focused,
		width:     in.viewport.Width,
		theme:     ActiveTheme(in.engine),
		styleGen:  in.styleGen.Load(),
	}
	gutter := in.gutterWidth()
	if key == in.content {
		return gutter
	}

	th := in.engine.Theme()
	lines := make([]string, buf.LineCount())
	for row := range lines {
		lines[row] = in.renderLine(row, th, gutter)
	}
	in.viewport.SetContent(strings.Join(lines, "\n"))
	in.viewport.SetYOffset(in.scrollTop)
	in.content = key
	return gutter
}

func (in *Instance) lineNumbers() bool {
	return in.options.string(OptionLineNumbers, "on") != "off"
}

func (in *Instance) tabSize() int {
	if n := in.options.int(OptionTabSize, 4); n > 0 {
		return n
	}
	return 4
}

func (in *Instance) gutterWidth() int {
	if !in.lineNumbers() {
		return 0
	}
	return gutterDigits(in.model.LineCount()) + 1
}

func gutterDigits(lines int) int {
	d := 1
	for lines >= 10 {
		lines /= 10
		d++
	}
	return max(d, 2)
}

type runStyle struct {
	tt     chroma.TokenType
	sel    bool
	cursor bool
}

func (in *Instance) renderLine(row int, th Theme, gutter int) string {
	st := th.Style()
	buf := in.model.buf
	cursor := buf.Cursor()
	sel, selOK := buf.Selection()
	current := in.focused && row == cursor.Row && in.options.string(OptionRenderLineHighlight, "line") != "none"

	var sb strings.Builder
	if gutter > 0 {
		num := st.LineNum
		if row == cursor.Row {
			num = st.LineNumActive
		}
		sb.WriteString(num.Render(fmt.Sprintf("%*d", gutter-1, row+1)))
		sb.WriteString(st.Gutter.Render(" "))
	}

	base := func(tt chroma.TokenType) lipgloss.Style {
		s := th.TokenStyle(tt)
		if current {
			s = s.Background(st.LineHighlight.GetBackground())
		}
		return s
	}

	width := in.viewport.Width - gutter
	clusters := grapheme.Split(buf.Line(row))
	types := columnTypes(in.model.Tokens(row), len(clusters))
	tabSize := in.tabSize()

	used := 0
	var run strings.Builder
	var cur runStyle
	flush := func() {
		if run.Len() == 0 {
			return
		}
		s := base(cur.tt)
		if cur.sel {
			s = s.Background(st.Selection.GetBackground())
		}
		if cur.cursor {
			s = s.Inherit(st.Cursor).Reverse(true)
		}
		sb.WriteString(s.Render(run.String()))
		run.Reset()
	}

	for col, g := range clusters {
		w := grapheme.Width(g, used, tabSize)
		if used+w > width {
			break
		}
		rs := runStyle{
			tt:     types[col],
			sel:    selOK && inRange(sel, row, col),
			cursor: in.focused && row == cursor.Row && col == cursor.Col,
		}
		if rs != cur {
			flush()
			cur = rs
		}
		if g == "\t" {
			g = strings.Repeat(" ", w)
		}
		run.WriteString(g)
		used += w
	}
	flush()

	if in.focused && row == cursor.Row && cursor.Col >= len(clusters) && used < width {
		sb.WriteString(base(chroma.Text).Inherit(st.Cursor).Reverse(true).Render(" "))
		used++
	}
	if used < width {
		sb.WriteString(base(chroma.Text).Render(strings.Repeat(" ", width-used)))
	}
	return sb.String()
}

// columnTypes maps each grapheme column to the token covering it. Columns
// past the tokens' text keep the plain text type.
func columnTypes(tokens []Token, n int) []chroma.TokenType {
	out := make([]chroma.TokenType, n)
	for i := range out {
		out[i] = chroma.Text
	}
	col := 0
	for _, tok := range tokens {
		for range grapheme.Split(tok.Text) {
			if col >= n {
				return out
			}
			out[col] = tok.Type
			col++
		}
	}
	return out
}

func inRange(r buffer.Range, row, col int) bool {
	p := buffer.Pos{Row: row, Col: col}
	return buffer.ComparePos(p, r.Start) >= 0 && buffer.ComparePos(p, r.End) < 0
}

// cellsBefore returns the cell offset of column col on line.
func cellsBefore(line string, col, tabSize int) int {
	used := 0
	for i, g := range grapheme.Split(line) {
		if i >= col {
			break
		}
		used += grapheme.Width(g, used, tabSize)
	}
	return used
}
