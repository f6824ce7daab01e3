// Package styles provides the lipgloss styles and renderers shared by the
// textedit commands and the terminal demo.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of base colors a Theme is built from.
type Palette struct {
	Background     string
	Surface        string
	SurfaceVariant string
	Text           string
	Muted          string
	Accent         string
	Border         string
	Error          string
	Warning        string
}

// Theme holds lipgloss colors and styles derived from a palette.
type Theme struct {
	Background     lipgloss.Color
	Surface        lipgloss.Color
	SurfaceVariant lipgloss.Color
	Text           lipgloss.Color
	Muted          lipgloss.Color
	Accent         lipgloss.Color
	Border         lipgloss.Color
	Error          lipgloss.Color
	Warning        lipgloss.Color

	Title        lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	// Text fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Placeholder  lipgloss.Style
	Caret        lipgloss.Style
	FieldLabel   lipgloss.Style

	// Virtual keyboard
	Key      lipgloss.Style
	KeyHeld  lipgloss.Style
	KeyShift lipgloss.Style
	Keyboard lipgloss.Style

	HelpKey lipgloss.Style
}

// DefaultDarkPalette returns the built-in dark colors.
func DefaultDarkPalette() Palette {
	return Palette{
		Background:     "#0a0a0b",
		Surface:        "#1a1a1b",
		SurfaceVariant: "#2d2d2d",
		Text:           "#ffffff",
		Muted:          "#909090",
		Accent:         "#4ade80",
		Border:         "#333333",
		Error:          "#ef4444",
		Warning:        "#f59e0b",
	}
}

// NewTheme creates the dark Theme.
func NewTheme() *Theme {
	return NewThemeFromPalette(DefaultDarkPalette())
}

// NewThemeFromPalette creates a Theme from a Palette. Success reuses the
// accent color.
func NewThemeFromPalette(p Palette) *Theme {
	t := &Theme{
		Background:     lipgloss.Color(p.Background),
		Surface:        lipgloss.Color(p.Surface),
		SurfaceVariant: lipgloss.Color(p.SurfaceVariant),
		Text:           lipgloss.Color(p.Text),
		Muted:          lipgloss.Color(p.Muted),
		Accent:         lipgloss.Color(p.Accent),
		Border:         lipgloss.Color(p.Border),
		Error:          lipgloss.Color(p.Error),
		Warning:        lipgloss.Color(p.Warning),
	}
	t.buildTextStyles()
	t.buildFieldStyles()
	t.buildKeyboardStyles()
	return t
}

func (t *Theme) fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func (t *Theme) buildTextStyles() {
	t.Title = t.fg(t.Text).Bold(true)
	t.Normal = t.fg(t.Text)
	t.Subtle = t.fg(t.Muted)
	t.Highlight = t.fg(t.Accent).Bold(true)
	t.ErrorStyle = t.fg(t.Error)
	t.WarningStyle = t.fg(t.Warning)
	t.SuccessStyle = t.fg(t.Accent)
	t.HelpKey = t.fg(t.Accent)
}

func (t *Theme) buildFieldStyles() {
	box := t.fg(t.Text).
		Background(t.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1)

	t.Input = box.BorderForeground(t.Border)
	t.InputFocused = box.BorderForeground(t.Accent)
	t.Placeholder = t.fg(t.Muted).Italic(true)
	t.Caret = t.fg(t.Background).Background(t.Accent)
	t.FieldLabel = t.fg(t.Muted).Width(fieldLabelWidth)
}

func (t *Theme) buildKeyboardStyles() {
	t.Key = t.fg(t.Text).
		Background(t.SurfaceVariant).
		Align(lipgloss.Center)
	t.KeyHeld = t.Key.
		Foreground(t.Background).
		Background(t.Accent).
		Bold(true)
	t.KeyShift = t.Key.
		Foreground(t.Accent).
		Bold(true)
	t.Keyboard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)
}
