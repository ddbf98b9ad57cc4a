package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Theme bases.
const (
	BaseLight        = "vs"
	BaseDark         = "vs-dark"
	BaseHighContrast = "hc-black"
)

// DefaultTheme is active until a theme is applied.
const DefaultTheme = "light"

// Color keys understood in ThemeData.Colors.
const (
	ColorBackground        = "editor.background"
	ColorForeground        = "editor.foreground"
	ColorLineNumber        = "editorLineNumber.foreground"
	ColorLineNumberActive  = "editorLineNumber.activeForeground"
	ColorSelection         = "editor.selectionBackground"
	ColorCursor            = "editorCursor.foreground"
	ColorSuggestBackground = "editorSuggestWidget.background"
	ColorSuggestSelected   = "editorSuggestWidget.selectedBackground"
	ColorSuggestForeground = "editorSuggestWidget.foreground"
	ColorSuggestDetail     = "editorSuggestWidget.detailForeground"
	ColorLineHighlight     = "editor.lineHighlightBackground"
)

// ThemeData defines a theme: a base, a chroma style for token colors, and
// editor chrome colors that override the base defaults.
type ThemeData struct {
	Base   string            `yaml:"base" toml:"base" mapstructure:"base"`
	Style  string            `yaml:"style" toml:"style" mapstructure:"style"`
	Colors map[string]string `yaml:"colors" toml:"colors" mapstructure:"colors"`
}

// Theme is a resolved theme ready for rendering.
type Theme struct {
	Name string
	Data ThemeData

	chroma *chroma.Style
	style  Style
	tokens *sync.Map // chroma.TokenType -> lipgloss.Style
}

// Dark reports whether the theme is drawn on a dark background.
func (t Theme) Dark() bool { return t.Data.Base != BaseLight }

// Style returns the chrome styles for the theme.
func (t Theme) Style() Style { return t.style }

// TokenStyle returns the style for a token type, inheriting the text style.
func (t Theme) TokenStyle(tt chroma.TokenType) lipgloss.Style {
	if t.tokens == nil || t.chroma == nil {
		return t.style.Text
	}
	if v, ok := t.tokens.Load(tt); ok {
		return v.(lipgloss.Style)
	}
	st := t.style.Text
	entry := t.chroma.Get(tt)
	if entry.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	t.tokens.Store(tt, st)
	return st
}

var builtinThemes = map[string]ThemeData{
	"light":    {Base: BaseLight, Style: "vs"},
	"vs":       {Base: BaseLight, Style: "vs"},
	"dark":     {Base: BaseDark, Style: "monokai"},
	"vs-dark":  {Base: BaseDark, Style: "monokai"},
	"hc-black": {Base: BaseHighContrast, Style: "native"},
}

var baseColors = map[string]map[string]string{
	BaseLight: {
		ColorBackground:        "#ffffff",
		ColorForeground:        "#000000",
		ColorLineNumber:        "#237893",
		ColorLineNumberActive:  "#0b216f",
		ColorSelection:         "#add6ff",
		ColorCursor:            "#000000",
		ColorSuggestBackground: "#f3f3f3",
		ColorSuggestSelected:   "#d6ebff",
		ColorSuggestForeground: "#000000",
		ColorSuggestDetail:     "#717171",
		ColorLineHighlight:     "#eeeeee",
	},
	BaseDark: {
		ColorBackground:        "#1e1e1e",
		ColorForeground:        "#d4d4d4",
		ColorLineNumber:        "#858585",
		ColorLineNumberActive:  "#c6c6c6",
		ColorSelection:         "#264f78",
		ColorCursor:            "#aeafad",
		ColorSuggestBackground: "#252526",
		ColorSuggestSelected:   "#04395e",
		ColorSuggestForeground: "#d4d4d4",
		ColorSuggestDetail:     "#9d9d9d",
		ColorLineHighlight:     "#282828",
	},
	BaseHighContrast: {
		ColorBackground:        "#000000",
		ColorForeground:        "#ffffff",
		ColorLineNumber:        "#ffffff",
		ColorLineNumberActive:  "#f38518",
		ColorSelection:         "#ffffff",
		ColorCursor:            "#ffffff",
		ColorSuggestBackground: "#0c141f",
		ColorSuggestSelected:   "#0f4a85",
		ColorSuggestForeground: "#ffffff",
		ColorSuggestDetail:     "#ffffff",
		ColorLineHighlight:     "#000000",
	},
}

func resolveTheme(name string, data ThemeData) (Theme, error) {
	if name == "" {
		return Theme{}, fmt.Errorf("%w: empty name", ErrInvalidTheme)
	}
	if data.Base == "" {
		data.Base = BaseLight
	}
	base, ok := baseColors[data.Base]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %s: unknown base %q", ErrInvalidTheme, name, data.Base)
	}

	cs := styles.Fallback
	if data.Style != "" {
		s, ok := styles.Registry[data.Style]
		if !ok {
			return Theme{}, fmt.Errorf("%w: %s: unknown style %q", ErrInvalidTheme, name, data.Style)
		}
		cs = s
	}

	colors := make(map[string]string, len(base)+len(data.Colors))
	for k, v := range base {
		colors[k] = v
	}
	for k, v := range data.Colors {
		colors[k] = v
	}
	data.Colors = colors

	return Theme{
		Name:   name,
		Data:   data,
		chroma: cs,
		style:  styleFromColors(colors),
		tokens: &sync.Map{},
	}, nil
}

// DefineTheme adds or replaces a named theme. Redefining the active theme
// restyles live instances.
func (e *Engine) DefineTheme(name string, data ThemeData) error {
	th, err := resolveTheme(name, data)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.themes[name] = th
	e.mu.Unlock()

	if sharedThemes.active(e.id) == name {
		e.restyleInstances()
	}
	return nil
}

// Themes returns the names of all defined themes, sorted.
func (e *Engine) Themes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.themes))
	for name := range e.themes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Theme returns the theme currently applied to this engine's instances.
func (e *Engine) Theme() Theme {
	name := sharedThemes.active(e.id)
	e.mu.Lock()
	defer e.mu.Unlock()
	if th, ok := e.themes[name]; ok {
		return th
	}
	return e.themes[DefaultTheme]
}

// SetTheme applies a theme to every instance of this engine.
func (e *Engine) SetTheme(name string) error {
	return ApplyThemeGlobally(e, name)
}

// ThemeRegistry records the active theme per engine identity.
type ThemeRegistry struct {
	mu    sync.RWMutex
	names map[uuid.UUID]string
}

var sharedThemes = &ThemeRegistry{names: make(map[uuid.UUID]string)}

func (r *ThemeRegistry) active(id uuid.UUID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name, ok := r.names[id]; ok {
		return name
	}
	return DefaultTheme
}

func (r *ThemeRegistry) set(id uuid.UUID, name string) {
	r.mu.Lock()
	r.names[id] = name
	r.mu.Unlock()
}

func (r *ThemeRegistry) forget(id uuid.UUID) {
	r.mu.Lock()
	delete(r.names, id)
	r.mu.Unlock()
}

// ActiveTheme returns the name of the theme applied to engine e.
func ActiveTheme(e *Engine) string {
	return sharedThemes.active(e.id)
}

// ApplyThemeGlobally makes name the active theme of engine e. The change is
// observed by every live instance created by e, not only by the caller's.
func ApplyThemeGlobally(e *Engine, name string) error {
	e.mu.Lock()
	_, ok := e.themes[name]
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	sharedThemes.set(e.id, name)
	e.restyleInstances()
	e.logger.Debug("theme applied", "theme", name)
	return nil
}
