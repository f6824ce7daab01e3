package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/textedit/internal/domain/build"
)

// AboutRenderer draws the version screen: a caret logo beside build facts.
type AboutRenderer struct {
	theme *Theme
}

// NewAboutRenderer creates a new about renderer with the given theme.
func NewAboutRenderer(theme *Theme) *AboutRenderer {
	return &AboutRenderer{theme: theme}
}

type aboutRow struct {
	icon  string
	label string
	value string
}

const caretLogo = `█████  █
  █    █
  █    █
  █    █
  █    █`

// Render returns the logo and the build rows joined side by side.
func (r *AboutRenderer) Render(info build.Info) string {
	logo := lipgloss.NewStyle().
		Foreground(r.theme.Accent).
		Bold(true).
		Margin(1, 0, 0, 2).
		Render(caretLogo)

	rows := []aboutRow{
		{IconVersion, "Version", info.Version},
		{IconGitBranch, "Commit", info.Commit},
		{IconCalendar, "Built", info.BuildDate},
		{IconGo, "Go", info.GoVersion},
	}
	body := r.table(rows) + "\n\n" + r.footer()

	return lipgloss.JoinHorizontal(lipgloss.Top, logo, "   ", body)
}

func (r *AboutRenderer) table(rows []aboutRow) string {
	icon := lipgloss.NewStyle().Foreground(r.theme.Accent)
	label := r.theme.Subtle.Width(8)

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		value := row.value
		if value == "" {
			value = "unknown"
		}
		out = append(out, icon.Render(row.icon)+" "+label.Render(row.label)+r.theme.Highlight.Render(value))
	}
	return strings.Join(out, "\n")
}

func (r *AboutRenderer) footer() string {
	icon := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return icon.Render(IconGithub) + " " + r.theme.Subtle.Render(build.RepoURL()) + "\n" +
		icon.Render(IconHeart) + " " + r.theme.Subtle.Render("by ") +
		r.theme.Highlight.Render(strings.Join(build.Contributors(), ", "))
}
