package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/inkwell/engine"
)

// assets are the theme and snippet definitions contributed by one source.
type assets struct {
	Source   string                      `mapstructure:"-"`
	Themes   map[string]engine.ThemeData `mapstructure:"themes"`
	Snippets []engine.SnippetSet         `mapstructure:"snippets"`
}

// readAssetFile decodes a YAML or TOML file of the form
//
//	themes:
//	  name: {base: vs-dark, style: monokai, colors: {...}}
//	snippets:
//	  - language: go
//	    suggestions: [{label: ..., insertText: ..., kind: ...}]
func readAssetFile(path string) (assets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return assets{}, &FileError{Path: path, Err: err}
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return assets{}, &FileError{Path: path, Err: err}
	}

	a, err := decodeAssets(raw)
	if err != nil {
		return assets{}, &FileError{Path: path, Err: err}
	}
	a.Source = path
	return a, nil
}

func decodeAssets(raw map[string]any) (assets, error) {
	var out assets
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return assets{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return assets{}, fmt.Errorf("decode assets: %w", err)
	}
	return out, nil
}

// apply defines the themes and registers the snippets of a on e. Snippet
// providers registered here live as long as the engine.
func (l *Loader) apply(e *engine.Engine, a assets) error {
	names := make([]string, 0, len(a.Themes))
	for name := range a.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := e.DefineTheme(name, a.Themes[name]); err != nil {
			return &FileError{Path: a.Source, Err: err}
		}
	}

	for _, set := range a.Snippets {
		items := make([]engine.CompletionItem, 0, len(set.Suggestions))
		for _, s := range set.Suggestions {
			item, ok := s.Item()
			if !ok {
				l.logger.Warn("unknown completion kind, using Snippet",
					"source", a.Source, "label", s.Label, "kind", s.Kind)
			}
			items = append(items, item)
		}
		e.RegisterCompletionItemProvider(set.Language, engine.StaticCompletions(items))
	}
	return nil
}
