package engine

import (
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/google/uuid"

	"github.com/iw2rmb/inkwell/buffer"
)

// Token is one highlighted run of text on a single line.
type Token struct {
	Type chroma.TokenType
	Text string
}

// ContentChangeEvent describes one content mutation of a model.
type ContentChangeEvent struct {
	// VersionID increases by one on every content change.
	VersionID uint64
	Source    buffer.ChangeSource
	IsFlush   bool
	IsUndo    bool
	IsRedo    bool
	Changes   []buffer.AppliedEdit
}

type contentListener struct {
	fn func(ContentChangeEvent)
}

// Model is the text model of an instance: a buffer, a language, and the
// tokenization state for the current content.
type Model struct {
	uri string
	buf *buffer.Buffer

	language string
	lexer    chroma.Lexer

	versionID   uint64
	lastChange  uint64 // buffer version of the last observed change
	tokens      [][]Token
	tokenized   bool
	tokensValid uint64 // versionID tokens were computed for

	mu        sync.Mutex
	listeners []*contentListener
}

func newModel(value, language string) *Model {
	m := &Model{
		uri: "inmemory://model/" + uuid.NewString(),
		buf: buffer.New(value, buffer.Options{}),
	}
	m.lexer, m.language = lexerFor(language)
	return m
}

// URI identifies the model.
func (m *Model) URI() string { return m.uri }

// Language returns the model's language id.
func (m *Model) Language() string { return m.language }

// Buffer exposes the underlying document.
func (m *Model) Buffer() *buffer.Buffer { return m.buf }

// VersionID returns the content version. Cursor movement does not change it.
func (m *Model) VersionID() uint64 { return m.versionID }

// GetValue returns the full text.
func (m *Model) GetValue() string { return m.buf.Text() }

// SetValue replaces the whole text and discards undo history.
func (m *Model) SetValue(v string) {
	m.mutate(func() { m.buf.SetText(v) })
}

// FullModelRange returns the range covering the whole document.
func (m *Model) FullModelRange() buffer.Range { return m.buf.FullRange() }

// LineCount returns the number of lines; never less than 1.
func (m *Model) LineCount() int { return m.buf.LineCount() }

// GetLineContent returns the text of a 1-based line number.
func (m *Model) GetLineContent(lineNumber int) string {
	return m.buf.Line(lineNumber - 1)
}

// OnDidChangeContent registers fn for content changes.
func (m *Model) OnDidChangeContent(fn func(ContentChangeEvent)) Disposable {
	l := &contentListener{fn: fn}
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
	return DisposableFunc(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, cur := range m.listeners {
			if cur == l {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	})
}

// mutate runs fn against the buffer and, if it produced a content change,
// invalidates tokens and notifies listeners.
func (m *Model) mutate(fn func()) bool {
	fn()
	c, ok := m.buf.LastChange()
	if !ok || c.VersionAfter == m.lastChange {
		return false
	}
	m.lastChange = c.VersionAfter
	m.versionID++
	m.tokenized = false

	ev := ContentChangeEvent{
		VersionID: m.versionID,
		Source:    c.Source,
		IsFlush:   c.IsFlush,
		IsUndo:    c.IsUndo,
		IsRedo:    c.IsRedo,
		Changes:   c.AppliedEdits,
	}
	m.mu.Lock()
	listeners := append([]*contentListener(nil), m.listeners...)
	m.mu.Unlock()
	for _, l := range listeners {
		l.fn(ev)
	}
	return true
}

func (m *Model) setLanguage(language string) {
	m.lexer, m.language = lexerFor(language)
	m.tokenized = false
	m.tokens = nil
}

// IsTokenized reports whether tokens are current for every line.
func (m *Model) IsTokenized() bool {
	return m.tokenized && m.tokensValid == m.versionID && len(m.tokens) >= m.LineCount()
}

// ForceTokenization brings tokens up to date through the 1-based line
// lineNumber. The lexer runs over the whole document, so the result covers
// every line.
func (m *Model) ForceTokenization(lineNumber int) {
	if lineNumber <= 0 || m.IsTokenized() {
		return
	}
	m.tokenize()
}

// Tokens returns the tokens of a 0-based row, tokenizing first if needed.
func (m *Model) Tokens(row int) []Token {
	if !m.IsTokenized() {
		m.tokenize()
	}
	if row < 0 || row >= len(m.tokens) {
		return nil
	}
	return m.tokens[row]
}

func (m *Model) tokenize() {
	text := m.buf.Text()
	lines := make([][]Token, m.LineCount())

	it, err := m.lexer.Tokenise(nil, text)
	if err != nil {
		for row := range lines {
			lines[row] = []Token{{Type: chroma.Text, Text: m.buf.Line(row)}}
		}
	} else {
		row := 0
		for _, line := range chroma.SplitTokensIntoLines(it.Tokens()) {
			if row >= len(lines) {
				break
			}
			for _, tok := range line {
				v := trimNewline(tok.Value)
				if v == "" {
					continue
				}
				lines[row] = append(lines[row], Token{Type: tok.Type, Text: v})
			}
			row++
		}
	}

	m.tokens = lines
	m.tokensValid = m.versionID
	m.tokenized = true
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
