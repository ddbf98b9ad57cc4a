package engine

import (
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Option keys interpreted by instances. Any other key is stored and
// readable through GetOption.
const (
	OptionReadOnly            = "readOnly"
	OptionLineNumbers         = "lineNumbers"
	OptionTabSize             = "tabSize"
	OptionAutomaticLayout     = "automaticLayout"
	OptionRenderLineHighlight = "renderLineHighlight"
)

// optionsDoc is an instance's option document, stored as JSON.
type optionsDoc struct {
	json string
}

func newOptionsDoc() *optionsDoc {
	return &optionsDoc{json: "{}"}
}

// merge writes every leaf of opts into the document. Nested maps merge
// key-wise into existing objects; any other value replaces what is stored at
// its path.
func (d *optionsDoc) merge(opts map[string]any) error {
	for _, leaf := range flattenOptions("", opts) {
		out, err := sjson.Set(d.json, leaf.path, leaf.value)
		if err != nil {
			return err
		}
		d.json = out
	}
	return nil
}

func (d *optionsDoc) get(path string) gjson.Result {
	return gjson.Get(d.json, path)
}

func (d *optionsDoc) bool(path string, def bool) bool {
	r := d.get(path)
	if !r.Exists() {
		return def
	}
	return r.Bool()
}

func (d *optionsDoc) int(path string, def int) int {
	r := d.get(path)
	if !r.Exists() {
		return def
	}
	return int(r.Int())
}

func (d *optionsDoc) string(path string, def string) string {
	r := d.get(path)
	if !r.Exists() {
		return def
	}
	return r.String()
}

type optionLeaf struct {
	path  string
	value any
}

func flattenOptions(prefix string, opts map[string]any) []optionLeaf {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []optionLeaf
	for _, k := range keys {
		path := escapeOptionKey(k)
		if prefix != "" {
			path = prefix + "." + path
		}
		v := opts[k]
		if nested, ok := asOptionMap(v); ok && len(nested) > 0 {
			out = append(out, flattenOptions(path, nested)...)
			continue
		}
		out = append(out, optionLeaf{path: path, value: v})
	}
	return out
}

func asOptionMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, vv := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = vv
		}
		return out, true
	default:
		return nil, false
	}
}

var optionKeyEscaper = strings.NewReplacer(`\`, `\\`, `.`, `\.`, `*`, `\*`, `?`, `\?`, `|`, `\|`, `#`, `\#`, `@`, `\@`)

func escapeOptionKey(k string) string {
	return optionKeyEscaper.Replace(k)
}
