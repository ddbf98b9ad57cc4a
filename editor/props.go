package editor

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/iw2rmb/inkwell/engine"
)

// Snippet is a group of completion suggestions for one language.
type Snippet = engine.SnippetSet

// Suggestion is one snippet suggestion; Kind is a completion kind name such
// as "Snippet" or "Function".
type Suggestion = engine.Suggestion

// Dimension is a container size: a percentage of the available space
// ("100%") or a number of cells ("40").
type Dimension string

// Cells returns a fixed-size dimension.
func Cells(n int) Dimension { return Dimension(strconv.Itoa(n)) }

// Resolve returns the size in cells given the available space. Malformed or
// empty values take all of it.
func (d Dimension) Resolve(avail int) int {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return max(avail, 0)
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		p, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil || p < 0 {
			return max(avail, 0)
		}
		return max(int(float64(avail)*p/100), 0)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return max(avail, 0)
	}
	return min(n, max(avail, 0))
}

// Props is the reactive input set of a Model.
type Props struct {
	Value    string `mapstructure:"value"`
	Language string `mapstructure:"language"`
	Theme    string `mapstructure:"theme"`
	// Line is a scroll offset in rows, applied as given.
	Line int `mapstructure:"line"`

	Width   Dimension `mapstructure:"width"`
	Height  Dimension `mapstructure:"height"`
	Loading string    `mapstructure:"loading"`

	Options   map[string]any   `mapstructure:"options"`
	Snippets  []Snippet        `mapstructure:"snippets"`
	Overrides engine.Overrides `mapstructure:"-"`

	// ControlledMode makes value syncs retokenize the whole model. It is read
	// whenever Value changes.
	ControlledMode bool `mapstructure:"controlledMode"`
}

// DefaultProps returns the defaults applied to unset props.
func DefaultProps() Props {
	return Props{
		Theme:     engine.DefaultTheme,
		Width:     "100%",
		Height:    "100%",
		Loading:   "Loading...",
		Options:   map[string]any{},
		Overrides: engine.Overrides{},
	}
}

// withDefaults fills the zero-valued props that have defaults.
func (p Props) withDefaults() Props {
	d := DefaultProps()
	if p.Theme == "" {
		p.Theme = d.Theme
	}
	if p.Width == "" {
		p.Width = d.Width
	}
	if p.Height == "" {
		p.Height = d.Height
	}
	if p.Loading == "" {
		p.Loading = d.Loading
	}
	if p.Options == nil {
		p.Options = d.Options
	}
	if p.Overrides == nil {
		p.Overrides = d.Overrides
	}
	return p
}

// snapshot copies p deeply enough that later in-place edits of the caller's
// option map are seen as changes.
func (p Props) snapshot() Props {
	p.Options = cloneOptions(p.Options)
	return p
}

func cloneOptions(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneOptionValue(v)
	}
	return out
}

// cloneOptionValue copies the container shapes YAML, TOML and hosts produce.
// Scalars are returned as is.
func cloneOptionValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneOptions(v)
	case map[any]any:
		if v == nil {
			return v
		}
		out := make(map[any]any, len(v))
		for k, vv := range v {
			out[k] = cloneOptionValue(vv)
		}
		return out
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, vv := range v {
			out[i] = cloneOptionValue(vv)
		}
		return out
	case []map[string]any:
		if v == nil {
			return v
		}
		out := make([]map[string]any, len(v))
		for i, vv := range v {
			out[i] = cloneOptions(vv)
		}
		return out
	default:
		return v
	}
}

func optionsEqual(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

// creationOptions returns opts layered over the options every instance is
// created with.
func creationOptions(opts map[string]any) map[string]any {
	out := map[string]any{engine.OptionAutomaticLayout: true}
	for k, v := range opts {
		out[k] = v
	}
	return out
}
