package styles

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/textedit/internal/domain/build"
	"github.com/bnema/textedit/internal/domain/entity"
)

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		cursor    int
		width     int
		wantStart int
		wantEnd   int
	}{
		{"fits", "hello", 5, 10, 0, 5},
		{"empty", "", 0, 10, 0, 0},
		{"caret at end scrolls", "abcdefgh", 8, 4, 5, 8},
		{"caret at start", "abcdefgh", 0, 4, 0, 4},
		{"caret in middle", "abcdefgh", 4, 4, 1, 5},
		{"wide runes", "日本語", 3, 5, 1, 3},
		{"zero width", "abc", 1, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := VisibleWindow([]rune(tt.text), tt.cursor, tt.width)
			assert.Equal(t, tt.wantStart, start, "start")
			assert.Equal(t, tt.wantEnd, end, "end")
		})
	}
}

func TestRenderField(t *testing.T) {
	theme := NewTheme()

	out := theme.RenderField(entity.FieldSnapshot{ID: "name", Content: "Ada", Cursor: 3}, 40)
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "name")
	assert.Equal(t, FieldHeight, lipgloss.Height(out))

	out = theme.RenderField(entity.FieldSnapshot{ID: "email", Placeholder: "you@example.com", Focused: true}, 40)
	assert.Contains(t, out, "you@example.com")
	assert.Equal(t, FieldHeight, lipgloss.Height(out))
}

func TestRenderKeyboard_Zones(t *testing.T) {
	theme := NewTheme()
	layout := entity.NumericLayout()

	view := theme.RenderKeyboard(layout, false, func(id string) bool { return id == "5" })
	require.Len(t, view.Zones, 15)
	assert.Equal(t, len(layout.Rows)+2, view.Height)

	first := view.Zones[0]
	assert.Equal(t, KeyZone{ID: "1", Row: 1, X0: 1, X1: 1 + KeyUnitWidth}, first)

	id, ok := view.HitTest(1+KeyUnitWidth+1, 2)
	require.True(t, ok)
	assert.Equal(t, "5", id)

	_, ok = view.HitTest(0, 0)
	assert.False(t, ok, "border is not a key")
	_, ok = view.HitTest(1+KeyUnitWidth, 1)
	assert.False(t, ok, "gap between keys is not a key")
}

func TestRenderKeyboard_ShiftedLabels(t *testing.T) {
	view := NewTheme().RenderKeyboard(entity.QwertyLayout(), true, nil)
	assert.Contains(t, view.Content, "Q")
	assert.NotContains(t, view.Content, " q ")
}

func TestAboutRenderer(t *testing.T) {
	out := NewAboutRenderer(NewTheme()).Render(build.Info{Version: "v1.2.3", Commit: "abc123"})
	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, build.RepoURL())
}

func TestConfigRenderer(t *testing.T) {
	r := NewConfigRenderer(NewTheme())

	assert.Contains(t, r.RenderConfigInfo("/tmp/config.toml", false), "created on first run")
	assert.NotContains(t, r.RenderConfigInfo("/tmp/config.toml", true), "created on first run")
	assert.Contains(t, r.RenderValid("/tmp/config.toml", 3, 1), "3 fields, 1 number inputs")
	assert.Contains(t, r.RenderError(errors.New("a\nb")), "a\n    b")
}
