package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/bnema/textedit/internal/domain/entity"
)

const (
	fieldLabelWidth = 10
	// FieldHeight is the number of lines RenderField produces.
	FieldHeight = 3
	// fieldChrome is border plus padding on both sides.
	fieldChrome = 4
)

// RenderField renders a field snapshot as a labelled input box of the given
// total width. The caret is drawn only on the focused field, and long content
// scrolls horizontally to keep it visible.
func (t *Theme) RenderField(snap entity.FieldSnapshot, width int) string {
	inner := max(width-fieldLabelWidth-fieldChrome, 1)

	var body string
	switch {
	case snap.Content == "" && snap.Focused:
		body = t.Caret.Render(" ") + t.Placeholder.Render(runewidth.Truncate(snap.Placeholder, inner-1, "…"))
	case snap.Content == "":
		body = t.Placeholder.Render(runewidth.Truncate(snap.Placeholder, inner, "…"))
	default:
		body = t.renderContent(snap, inner)
	}

	style := t.Input
	if snap.Focused {
		style = t.InputFocused
	}
	label := t.FieldLabel.Render(runewidth.Truncate(string(snap.ID), fieldLabelWidth-1, "…"))
	box := style.Width(inner + 2).Render(body)
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box)
}

func (t *Theme) renderContent(snap entity.FieldSnapshot, width int) string {
	runes := []rune(snap.Content)
	cursor := min(max(snap.Cursor, 0), len(runes))
	if !snap.Focused {
		return t.Normal.Render(runewidth.Truncate(snap.Content, width, "…"))
	}

	start, end := VisibleWindow(runes, cursor, width)
	var sb strings.Builder
	sb.WriteString(t.Normal.Render(string(runes[start:cursor])))
	if cursor < end {
		sb.WriteString(t.Caret.Render(string(runes[cursor])))
		sb.WriteString(t.Normal.Render(string(runes[cursor+1 : end])))
	} else {
		sb.WriteString(t.Caret.Render(" "))
	}
	return sb.String()
}

// VisibleWindow returns the rune range [start, end) of runes that fits in
// width display cells while keeping the cursor cell visible. A cursor at the
// end of the text needs one extra cell for the caret.
func VisibleWindow(runes []rune, cursor, width int) (start, end int) {
	if width <= 0 || len(runes) == 0 {
		return cursor, cursor
	}

	caretCell := 1
	if cursor < len(runes) {
		caretCell = runewidth.RuneWidth(runes[cursor])
	}

	// Slide start right until the text before the cursor and the caret fit.
	used := caretCell
	start = cursor
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > width {
			break
		}
		used += w
		start--
	}

	end = cursor
	if cursor < len(runes) {
		end = cursor + 1
	}
	for end < len(runes) {
		w := runewidth.RuneWidth(runes[end])
		if used+w > width {
			break
		}
		used += w
		end++
	}
	return start, end
}
