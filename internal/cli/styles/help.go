package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// EditorKeyMap defines the host bindings of the demo. Everything else is
// forwarded to the editing engine.
type EditorKeyMap struct {
	NextField      key.Binding
	PrevField      key.Binding
	Blur           key.Binding
	Paste          key.Binding
	ToggleKeyboard key.Binding
	Increment      key.Binding
	Decrement      key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Paste, k.ToggleKeyboard, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Blur},
		{k.Paste, k.Increment, k.Decrement},
		{k.ToggleKeyboard, k.Help, k.Quit},
	}
}

// DefaultEditorKeyMap returns the default demo bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev field"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "blur"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("C-v", "paste"),
		),
		ToggleKeyboard: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("C-k", "keyboard"),
		),
		Increment: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "number +1"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "number -1"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
