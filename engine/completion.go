package engine

import (
	"regexp"
	"strings"

	"github.com/iw2rmb/inkwell/buffer"
)

// CompletionItemKind classifies a completion item. The numbering follows the
// order of the symbolic names accepted by CompletionItemKindFromName.
type CompletionItemKind int

const (
	CompletionItemKindMethod CompletionItemKind = iota
	CompletionItemKindFunction
	CompletionItemKindConstructor
	CompletionItemKindField
	CompletionItemKindVariable
	CompletionItemKindClass
	CompletionItemKindStruct
	CompletionItemKindInterface
	CompletionItemKindModule
	CompletionItemKindProperty
	CompletionItemKindEvent
	CompletionItemKindOperator
	CompletionItemKindUnit
	CompletionItemKindValue
	CompletionItemKindConstant
	CompletionItemKindEnum
	CompletionItemKindEnumMember
	CompletionItemKindKeyword
	CompletionItemKindText
	CompletionItemKindColor
	CompletionItemKindFile
	CompletionItemKindReference
	CompletionItemKindCustomcolor
	CompletionItemKindFolder
	CompletionItemKindTypeParameter
	CompletionItemKindUser
	CompletionItemKindIssue
	CompletionItemKindSnippet
)

var completionItemKindNames = [...]string{
	"Method", "Function", "Constructor", "Field", "Variable", "Class", "Struct",
	"Interface", "Module", "Property", "Event", "Operator", "Unit", "Value",
	"Constant", "Enum", "EnumMember", "Keyword", "Text", "Color", "File",
	"Reference", "Customcolor", "Folder", "TypeParameter", "User", "Issue",
	"Snippet",
}

func (k CompletionItemKind) String() string {
	if k < 0 || int(k) >= len(completionItemKindNames) {
		return "Unknown"
	}
	return completionItemKindNames[k]
}

// CompletionItemKindFromName resolves a symbolic kind name such as "Snippet"
// or "Function". Matching is exact.
func CompletionItemKindFromName(name string) (CompletionItemKind, bool) {
	for i, n := range completionItemKindNames {
		if n == name {
			return CompletionItemKind(i), true
		}
	}
	return 0, false
}

// CompletionItem is one suggestion offered by a provider.
type CompletionItem struct {
	Label         string
	Kind          CompletionItemKind
	InsertText    string
	Detail        string
	Documentation string // markdown
}

// CompletionList is a provider result.
type CompletionList struct {
	Suggestions []CompletionItem
}

// CompletionContext describes where completion was requested.
type CompletionContext struct {
	Model    *Model
	Position buffer.Pos
	// Word is the word fragment immediately left of Position.
	Word string
}

// CompletionItemProvider supplies suggestions for one language.
type CompletionItemProvider interface {
	ProvideCompletionItems(ctx CompletionContext) CompletionList
}

// CompletionItemProviderFunc adapts a function to CompletionItemProvider.
type CompletionItemProviderFunc func(ctx CompletionContext) CompletionList

func (f CompletionItemProviderFunc) ProvideCompletionItems(ctx CompletionContext) CompletionList {
	return f(ctx)
}

// StaticCompletions returns a provider that always offers items.
func StaticCompletions(items []CompletionItem) CompletionItemProvider {
	items = append([]CompletionItem(nil), items...)
	return CompletionItemProviderFunc(func(CompletionContext) CompletionList {
		return CompletionList{Suggestions: append([]CompletionItem(nil), items...)}
	})
}

type providerEntry struct {
	language string
	provider CompletionItemProvider
}

// RegisterCompletionItemProvider registers p for models whose language is
// language. Disposing the result unregisters it.
func (e *Engine) RegisterCompletionItemProvider(language string, p CompletionItemProvider) Disposable {
	entry := &providerEntry{language: canonicalLanguage(language), provider: p}

	e.mu.Lock()
	e.providers = append(e.providers, entry)
	e.mu.Unlock()

	return DisposableFunc(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, pe := range e.providers {
			if pe == entry {
				e.providers = append(e.providers[:i], e.providers[i+1:]...)
				return
			}
		}
	})
}

// CompletionProviderCount returns the number of providers registered for
// language.
func (e *Engine) CompletionProviderCount(language string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	language = canonicalLanguage(language)
	for _, pe := range e.providers {
		if pe.language == language {
			n++
		}
	}
	return n
}

// ProvideCompletions collects suggestions from every provider registered for
// the model's language and keeps those matching the word at pos.
func (e *Engine) ProvideCompletions(m *Model, pos buffer.Pos) (items []CompletionItem, wordStart int) {
	if m == nil {
		return nil, pos.Col
	}
	word, start := m.buf.WordBefore(pos)

	e.mu.Lock()
	providers := make([]CompletionItemProvider, 0, len(e.providers))
	for _, pe := range e.providers {
		if pe.language == m.Language() {
			providers = append(providers, pe.provider)
		}
	}
	e.mu.Unlock()

	ctx := CompletionContext{Model: m, Position: pos, Word: word}
	for _, p := range providers {
		for _, it := range p.ProvideCompletionItems(ctx).Suggestions {
			if matchesWord(it.Label, word) {
				items = append(items, it)
			}
		}
	}
	return items, start
}

func matchesWord(label, word string) bool {
	if word == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(label), strings.ToLower(word))
}

var (
	snippetPlaceholderRE = regexp.MustCompile(`\$\{(\d+):([^}]*)\}`)
	snippetTabstopRE     = regexp.MustCompile(`\$\{(\d+)\}|\$(\d+)`)
)

// ExpandSnippet replaces snippet placeholders with their default text. Bare
// tab stops mirror the default of the placeholder with the same number, or
// vanish: "print(${1:x}, $1)$0" becomes "print(x, x)".
func ExpandSnippet(s string) string {
	defaults := make(map[string]string)
	for _, m := range snippetPlaceholderRE.FindAllStringSubmatch(s, -1) {
		if _, ok := defaults[m[1]]; !ok {
			defaults[m[1]] = m[2]
		}
	}
	s = snippetPlaceholderRE.ReplaceAllString(s, "$2")
	return snippetTabstopRE.ReplaceAllStringFunc(s, func(stop string) string {
		m := snippetTabstopRE.FindStringSubmatch(stop)
		n := m[1]
		if n == "" {
			n = m[2]
		}
		return defaults[n]
	})
}

func (it CompletionItem) insertText() string {
	text := it.InsertText
	if text == "" {
		text = it.Label
	}
	if it.Kind == CompletionItemKindSnippet {
		return ExpandSnippet(text)
	}
	return text
}
