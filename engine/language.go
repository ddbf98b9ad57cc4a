package engine

import (
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainText is the language id used when no lexer matches.
const PlainText = "plaintext"

// lexerFor resolves a language id to a lexer and the canonical id stored on
// the model. Unknown ids resolve to plain text.
func lexerFor(language string) (chroma.Lexer, string) {
	id := languageKey(language)
	if id != "" && id != PlainText {
		if l := lexers.Get(id); l != nil {
			return chroma.Coalesce(l), languageKey(l.Config().Name)
		}
	}
	if l := lexers.Get(PlainText); l != nil {
		return l, PlainText
	}
	return lexers.Fallback, PlainText
}

// Languages returns the names of every registered language, sorted.
func (e *Engine) Languages() []string {
	names := lexers.Names(false)
	sort.Strings(names)
	return names
}

// SetModelLanguage switches the language of m. Text is untouched; tokens
// are invalidated.
func (e *Engine) SetModelLanguage(m *Model, language string) {
	if m == nil {
		return
	}
	m.setLanguage(language)
	e.logger.Debug("model language set", "uri", m.URI(), "language", m.Language())
}

func languageKey(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

// canonicalLanguage maps a language name, alias or file extension to the
// id models store, so "py" and "python" select the same providers. Ids no
// lexer knows are kept lowercased.
func canonicalLanguage(language string) string {
	id := languageKey(language)
	if id == "" || id == PlainText {
		return id
	}
	if l := lexers.Get(id); l != nil {
		return languageKey(l.Config().Name)
	}
	return id
}
