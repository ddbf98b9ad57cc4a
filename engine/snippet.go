package engine

// Suggestion is a declarative completion item whose kind is given by name,
// as it appears in props and snippet files.
type Suggestion struct {
	Label         string `yaml:"label" toml:"label" mapstructure:"label"`
	Kind          string `yaml:"kind" toml:"kind" mapstructure:"kind"`
	InsertText    string `yaml:"insertText" toml:"insertText" mapstructure:"insertText"`
	Detail        string `yaml:"detail" toml:"detail" mapstructure:"detail"`
	Documentation string `yaml:"documentation" toml:"documentation" mapstructure:"documentation"`
}

// SnippetSet is a group of suggestions for one language.
type SnippetSet struct {
	Language    string       `yaml:"language" toml:"language" mapstructure:"language"`
	Suggestions []Suggestion `yaml:"suggestions" toml:"suggestions" mapstructure:"suggestions"`
}

// Item converts s to a CompletionItem. An empty kind means Snippet. An
// unrecognized kind also yields Snippet and ok is false.
func (s Suggestion) Item() (item CompletionItem, ok bool) {
	kind := CompletionItemKindSnippet
	ok = true
	if s.Kind != "" {
		if k, found := CompletionItemKindFromName(s.Kind); found {
			kind = k
		} else {
			ok = false
		}
	}
	return CompletionItem{
		Label:         s.Label,
		Kind:          kind,
		InsertText:    s.InsertText,
		Detail:        s.Detail,
		Documentation: s.Documentation,
	}, ok
}
