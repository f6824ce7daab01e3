package styles

import (
	"fmt"
	"strings"
)

// ConfigRenderer formats the output of the config commands.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// block indents every line by two spaces and surrounds the result with
// blank lines.
func block(lines ...string) string {
	return "\n  " + strings.Join(lines, "\n  ") + "\n"
}

// RenderConfigInfo renders the config file path and whether it exists.
func (r *ConfigRenderer) RenderConfigInfo(path string, exists bool) string {
	lines := []string{r.theme.HelpKey.Render(IconConfig) + " Config " + r.theme.Subtle.Render(path)}
	if !exists {
		lines = append(lines, r.theme.Subtle.Render("Config file will be created on first run with all defaults."))
	}
	return block(lines...)
}

// RenderWritten confirms that a file was written.
func (r *ConfigRenderer) RenderWritten(what, path string) string {
	return block(fmt.Sprintf("%s Wrote %s to %s",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(what),
		r.theme.Subtle.Render(path)))
}

// RenderExists reports that an existing file was left alone.
func (r *ConfigRenderer) RenderExists(path string) string {
	return block(r.theme.WarningStyle.Render(IconWarning) + " " +
		r.theme.Subtle.Render(path) + " already exists (use --force to overwrite)")
}

// RenderValid summarizes a config that passed validation.
func (r *ConfigRenderer) RenderValid(path string, fields, numbers int) string {
	return block(
		r.theme.SuccessStyle.Render(IconConfig)+" Config "+r.theme.Subtle.Render(path),
		fmt.Sprintf("%s Valid: %d fields, %d number inputs", r.theme.SuccessStyle.Render(IconCheck), fields, numbers),
	)
}

// RenderError renders an error. Validation errors span several lines; the
// continuation lines are indented under the first.
func (r *ConfigRenderer) RenderError(err error) string {
	msg := strings.ReplaceAll(err.Error(), "\n", "\n    ")
	return block(r.theme.ErrorStyle.Render(IconX) + " Config error: " + msg)
}
