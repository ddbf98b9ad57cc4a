package engine

import "github.com/charmbracelet/lipgloss"

// Style controls an instance's rendering. It is derived from the active
// theme's chrome colors.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text          lipgloss.Style
	LineHighlight lipgloss.Style
	Selection     lipgloss.Style
	Cursor        lipgloss.Style

	CompletionItem     lipgloss.Style
	CompletionSelected lipgloss.Style
	CompletionDetail   lipgloss.Style
	CompletionKind     lipgloss.Style
}

func styleFromColors(c map[string]string) Style {
	bg := lipgloss.Color(c[ColorBackground])
	fg := lipgloss.Color(c[ColorForeground])
	suggestBg := lipgloss.Color(c[ColorSuggestBackground])

	text := lipgloss.NewStyle().Foreground(fg).Background(bg)
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color(c[ColorLineNumber])).Background(bg)
	item := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c[ColorSuggestForeground])).
		Background(suggestBg)

	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: gutter.Foreground(lipgloss.Color(c[ColorLineNumberActive])).Bold(true),

		Text:          text,
		LineHighlight: text.Background(lipgloss.Color(c[ColorLineHighlight])),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color(c[ColorSelection])),
		Cursor:        lipgloss.NewStyle().Reverse(true),

		CompletionItem:     item,
		CompletionSelected: item.Background(lipgloss.Color(c[ColorSuggestSelected])).Bold(true),
		CompletionDetail:   lipgloss.NewStyle().Foreground(lipgloss.Color(c[ColorSuggestDetail])),
		CompletionKind:     lipgloss.NewStyle().Foreground(lipgloss.Color(c[ColorSuggestDetail])).Italic(true),
	}
}
