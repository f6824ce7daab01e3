package model

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/textedit/internal/bootstrap"
	"github.com/bnema/textedit/internal/cli/styles"
	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/infrastructure/config"
	"github.com/bnema/textedit/internal/logging"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestModel(t *testing.T) (EditorModel, *bootstrap.Engine, *fakeClock) {
	t.Helper()
	ctx := logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
	engine, err := bootstrap.NewEngine(ctx, config.DefaultConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	clock := &fakeClock{t: time.Unix(1000, 0)}
	m := NewEditorModel(ctx, styles.NewTheme(), engine, 16*time.Millisecond, WithClock(clock.now))
	return m, engine, clock
}

func send(t *testing.T, m EditorModel, msg tea.Msg) EditorModel {
	t.Helper()
	next, _ := m.Update(msg)
	em, ok := next.(EditorModel)
	require.True(t, ok)
	return em
}

func tick(t *testing.T, m EditorModel, clock *fakeClock) EditorModel {
	t.Helper()
	return send(t, m, tickMsg(clock.now()))
}

func content(t *testing.T, e *bootstrap.Engine, id entity.FieldID) string {
	t.Helper()
	snap, err := e.Editor.Snapshot(context.Background(), id)
	require.NoError(t, err)
	return snap.Content
}

func TestEditorModel_TypingIsAppliedOnTick(t *testing.T) {
	m, engine, clock := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ada")})
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	assert.Equal(t, "", content(t, engine, "name"), "nothing applied before the tick")

	m = tick(t, m, clock)
	assert.Equal(t, "Ada L", content(t, engine, "name"))
	require.Len(t, m.activity.changes, 1)
	assert.Equal(t, entity.ChangeNotification{FieldID: "name", Text: "Ada L"}, m.activity.changes[0])

	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x y"), Paste: true})
	tick(t, m, clock)
	assert.Equal(t, "Ada x y", content(t, engine, "name"))
}

func TestEditorModel_TabCyclesFocus(t *testing.T) {
	m, engine, clock := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = tick(t, m, clock)
	focused, ok := engine.Editor.Focused()
	require.True(t, ok)
	assert.Equal(t, entity.FieldID("email"), focused)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = tick(t, m, clock)
	focused, _ = engine.Editor.Focused()
	assert.Equal(t, entity.FieldID("name"), focused)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	tick(t, m, clock)
	_, ok = engine.Editor.Focused()
	assert.False(t, ok)
}

func TestEditorModel_TabStaysInGroup(t *testing.T) {
	m, engine, clock := newTestModel(t)

	engine.Editor.ProcessBatch(context.Background(), []entity.InputEvent{entity.FocusClickEvent{FieldID: "search"}})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = tick(t, m, clock)
	focused, ok := engine.Editor.Focused()
	require.True(t, ok)
	assert.Equal(t, entity.FieldID("search"), focused, "search is alone in its group")

	engine.Editor.ProcessBatch(context.Background(), []entity.InputEvent{entity.FocusClickEvent{FieldID: "name"}})
	for range 4 {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		m = tick(t, m, clock)
		group, ok := engine.Editor.ActiveGroup()
		require.True(t, ok)
		assert.Equal(t, "form", group)
	}
}

func TestEditorModel_ClickFocusesField(t *testing.T) {
	m, engine, clock := newTestModel(t)

	_, layout := m.render()
	require.Len(t, layout.fieldIDs, 4)
	require.Equal(t, entity.FieldID("email"), layout.fieldIDs[1])

	m = send(t, m, tea.MouseMsg{X: 15, Y: layout.fieldTops[1] + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	tick(t, m, clock)

	focused, ok := engine.Editor.Focused()
	require.True(t, ok)
	assert.Equal(t, entity.FieldID("email"), focused)
}

func TestEditorModel_VirtualKeyRepeatsWhileHeld(t *testing.T) {
	m, engine, clock := newTestModel(t)

	_, layout := m.render()
	require.True(t, layout.keyboardVisible)
	var zone styles.KeyZone
	for _, z := range layout.keyboard.Zones {
		if z.ID == "a" {
			zone = z
		}
	}
	require.Equal(t, "a", zone.ID)

	m = send(t, m, tea.MouseMsg{
		X: zone.X0, Y: layout.keyboardTop + zone.Row,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})
	assert.True(t, engine.Keyboard.IsHeld("a"))
	m = tick(t, m, clock)
	assert.Equal(t, "a", content(t, engine, "name"))

	clock.advance(650 * time.Millisecond)
	m = tick(t, m, clock)
	assert.Equal(t, "aaa", content(t, engine, "name"))

	m = send(t, m, tea.MouseMsg{Action: tea.MouseActionRelease})
	assert.False(t, engine.Keyboard.IsHeld("a"))
	m = tick(t, m, clock)

	clock.advance(2 * time.Second)
	tick(t, m, clock)
	assert.Equal(t, "aaa", content(t, engine, "name"))
}

func TestEditorModel_HideKeyboardStopsRepeat(t *testing.T) {
	m, engine, clock := newTestModel(t)

	_, layout := m.render()
	zone := layout.keyboard.Zones[0]
	m = send(t, m, tea.MouseMsg{
		X: zone.X0, Y: layout.keyboardTop + zone.Row,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})
	m = tick(t, m, clock)
	before := content(t, engine, "name")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.False(t, engine.Keyboard.Visible())
	m = tick(t, m, clock)

	clock.advance(2 * time.Second)
	tick(t, m, clock)
	assert.Equal(t, before, content(t, engine, "name"))
	assert.False(t, engine.Editor.Repeater().IsHeld(entity.Character("`")))
}

func TestEditorModel_NumberStep(t *testing.T) {
	m, engine, clock := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	v, err := engine.Numbers.Value("age")
	require.NoError(t, err)
	assert.Equal(t, int64(30), v, "only the focused number input steps")

	_, layout := m.render()
	m = send(t, m, tea.MouseMsg{X: 15, Y: layout.fieldTops[3], Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tick(t, m, clock)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	v, err = engine.Numbers.Value("age")
	require.NoError(t, err)
	assert.Equal(t, int64(31), v)
	assert.Equal(t, "31", content(t, engine, "age"))
	require.NotNil(t, m.activity.number)
	assert.Equal(t, int64(31), m.activity.number.Value)
}

func TestEditorModel_ConfigReload(t *testing.T) {
	m, engine, _ := newTestModel(t)

	cfg := config.DefaultConfig()
	cfg.Fields[0].Placeholder = "Full name"
	m = send(t, m, configReloadedMsg{cfg: cfg})

	snap, err := engine.Editor.Snapshot(context.Background(), "name")
	require.NoError(t, err)
	assert.Equal(t, "Full name", snap.Placeholder)
	assert.Equal(t, "config reloaded", m.activity.status)
	assert.Contains(t, m.View(), "Full name")
}

func TestEditorModel_QuitAndHelp(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, m.showHelp)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
