// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/textedit/internal/application/port"
	"github.com/bnema/textedit/internal/bootstrap"
	"github.com/bnema/textedit/internal/cli/styles"
	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/infrastructure/config"
	"github.com/bnema/textedit/internal/logging"
)

const recentChanges = 5

// Message types for async operations
type (
	tickMsg           time.Time
	pasteMsg          struct{ event entity.PasteEvent }
	pasteFailedMsg    struct{ err error }
	configReloadedMsg struct{ cfg *config.Config }
)

// activity collects what the engine reported, for the status area. It is
// shared by value copies of EditorModel and only touched from Update.
type activity struct {
	changes []entity.ChangeNotification
	number  *entity.NumberChanged
	status  string
}

// EditorModel hosts an editing engine in the terminal. Input is collected
// between ticks and applied as one batch per tick, the tick event last.
type EditorModel struct {
	// UI components
	help help.Model
	keys styles.EditorKeyMap

	// State
	pending  []entity.InputEvent
	mouseKey string
	activity *activity
	showHelp bool
	width    int
	height   int

	// Dependencies
	ctx     context.Context
	engine  *bootstrap.Engine
	theme   *styles.Theme
	tick    time.Duration
	start   time.Time
	now     func() time.Time
	reloads <-chan *config.Config
}

// EditorOption customises an EditorModel.
type EditorOption func(*EditorModel)

// WithReloads makes the model apply configs received on ch.
func WithReloads(ch <-chan *config.Config) EditorOption {
	return func(m *EditorModel) { m.reloads = ch }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) EditorOption {
	return func(m *EditorModel) { m.now = now }
}

// NewEditorModel creates the demo model around engine.
func NewEditorModel(
	ctx context.Context,
	theme *styles.Theme,
	engine *bootstrap.Engine,
	tick time.Duration,
	opts ...EditorOption,
) EditorModel {
	ctx = logging.WithComponent(ctx, "demo")
	logging.FromContext(ctx).Debug().Dur("tick", tick).Msg("creating editor model")

	m := EditorModel{
		help:     styles.NewStyledHelp(theme),
		keys:     styles.DefaultEditorKeyMap(),
		activity: &activity{},
		ctx:      ctx,
		engine:   engine,
		theme:    theme,
		tick:     tick,
		now:      time.Now,
		width:    80,
		height:   24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.start = m.now()

	act := m.activity
	engine.Numbers.Subscribe(port.NumberObserverFunc(func(_ context.Context, n entity.NumberChanged) {
		act.number = &n
	}))
	return m
}

// Init starts the tick loop and the config reload listener.
func (m EditorModel) Init() tea.Cmd {
	return tea.Batch(m.scheduleTick(), m.waitForReload())
}

func (m EditorModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m EditorModel) waitForReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	ch := m.reloads
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// elapsed is the host's monotonic clock as seen by the engine.
func (m EditorModel) elapsed() time.Duration {
	return m.now().Sub(m.start)
}

// Update handles messages.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m.handleTick()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pasteMsg:
		m.pending = append(m.pending, msg.event)
		return m, nil

	case pasteFailedMsg:
		m.activity.status = "paste failed: " + msg.err.Error()
		return m, nil

	case configReloadedMsg:
		return m.handleConfigReloaded(msg)
	}
	return m, nil
}

func (m EditorModel) handleTick() (tea.Model, tea.Cmd) {
	batch := append(m.pending, entity.Tick{Now: m.elapsed()})
	m.pending = nil

	m.engine.Editor.ProcessBatch(m.ctx, batch)
	if changes := m.engine.Editor.Feed().Drain(); len(changes) > 0 {
		m.activity.changes = append(m.activity.changes, changes...)
		if n := len(m.activity.changes); n > recentChanges {
			m.activity.changes = m.activity.changes[n-recentChanges:]
		}
	}
	return m, m.scheduleTick()
}

func (m EditorModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.cycleFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Blur):
		if id, ok := m.engine.Editor.Focused(); ok {
			m.pending = append(m.pending, entity.BlurEvent{FieldID: id})
		}
		return m, nil
	case key.Matches(msg, m.keys.Paste):
		return m, m.readClipboard()
	case key.Matches(msg, m.keys.ToggleKeyboard):
		m.toggleKeyboard()
		return m, nil
	case key.Matches(msg, m.keys.Increment):
		m.stepNumber(1)
		return m, nil
	case key.Matches(msg, m.keys.Decrement):
		m.stepNumber(-1)
		return m, nil
	}

	if ev, ok := translateKey(msg); ok {
		m.pending = append(m.pending, ev)
	}
	return m, nil
}

// translateKey maps a terminal key to an engine event. Terminals only report
// presses, so physical keys never repeat through the engine's timer.
func translateKey(msg tea.KeyMsg) (entity.InputEvent, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Paste {
			return entity.PasteEvent{Text: string(msg.Runes)}, true
		}
		return entity.TextInputEvent{Text: string(msg.Runes)}, true
	case tea.KeySpace:
		return entity.Press(entity.Named(entity.KeySpace)), true
	case tea.KeyBackspace:
		return entity.Press(entity.Named(entity.KeyBackspace)), true
	case tea.KeyDelete:
		return entity.Press(entity.Named(entity.KeyDelete)), true
	case tea.KeyLeft:
		return entity.Press(entity.Named(entity.KeyArrowLeft)), true
	case tea.KeyRight:
		return entity.Press(entity.Named(entity.KeyArrowRight)), true
	case tea.KeyHome:
		return entity.Press(entity.Named(entity.KeyHome)), true
	case tea.KeyEnd:
		return entity.Press(entity.Named(entity.KeyEnd)), true
	case tea.KeyEnter:
		return entity.Press(entity.Named(entity.KeyEnter)), true
	}
	return nil, false
}

func (m *EditorModel) cycleFocus(dir int) {
	snaps, err := m.engine.Editor.Snapshots(m.ctx)
	if err != nil {
		return
	}
	// Tab stays inside the active group
	if group, ok := m.engine.Editor.ActiveGroup(); ok {
		snaps = slices.DeleteFunc(snaps, func(s entity.FieldSnapshot) bool { return s.Group != group })
	}
	if len(snaps) == 0 {
		return
	}
	idx := -1
	if id, ok := m.engine.Editor.Focused(); ok {
		for i, s := range snaps {
			if s.ID == id {
				idx = i
				break
			}
		}
	}
	next := (idx + dir + len(snaps)) % len(snaps)
	if idx < 0 && dir < 0 {
		next = len(snaps) - 1
	}
	m.pending = append(m.pending, entity.FocusClickEvent{FieldID: snaps[next].ID})
}

func (m *EditorModel) toggleKeyboard() {
	kb := m.engine.Keyboard
	if kb.Visible() {
		m.pending = append(m.pending, kb.Hide(m.ctx, m.elapsed())...)
		m.mouseKey = ""
		return
	}
	kb.Show(m.ctx, kb.Position())
}

func (m *EditorModel) stepNumber(delta int64) {
	id, ok := m.engine.Editor.Focused()
	if !ok || !m.engine.Numbers.IsNumberInput(id) {
		return
	}
	// Apply queued typing first so the step starts from the visible value.
	m.flush()

	var err error
	if delta > 0 {
		_, err = m.engine.Numbers.Increment(m.ctx, id)
	} else {
		_, err = m.engine.Numbers.Decrement(m.ctx, id)
	}
	if err != nil {
		m.activity.status = err.Error()
	}
}

// flush applies pending input without advancing the repeat timer.
func (m *EditorModel) flush() {
	if len(m.pending) == 0 {
		return
	}
	m.engine.Editor.ProcessBatch(m.ctx, m.pending)
	m.pending = nil
}

func (m EditorModel) readClipboard() tea.Cmd {
	paste := m.engine.Paste
	if paste == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		ev, ok, err := paste.Paste(ctx)
		if err != nil {
			return pasteFailedMsg{err: err}
		}
		if !ok {
			return nil
		}
		return pasteMsg{event: ev}
	}
}

func (m EditorModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	at := m.elapsed()

	if msg.Action == tea.MouseActionRelease {
		if m.mouseKey != "" {
			if ev, ok := m.engine.Keyboard.Release(m.mouseKey, at); ok {
				m.pending = append(m.pending, ev)
			}
			m.mouseKey = ""
		}
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	_, layout := m.render()
	if layout.keyboardVisible {
		if id, ok := layout.keyboard.HitTest(msg.X, msg.Y-layout.keyboardTop); ok {
			ev, ok, err := m.engine.Keyboard.Press(m.ctx, id, at)
			if err != nil {
				logging.FromContext(m.ctx).Warn().Err(err).Msg("virtual key press failed")
				return m, nil
			}
			if ok {
				m.pending = append(m.pending, ev)
				m.mouseKey = id
			}
			return m, nil
		}
	}

	if id, ok := layout.fieldAt(msg.Y); ok {
		m.pending = append(m.pending, entity.FocusClickEvent{FieldID: id})
		return m, nil
	}
	if id, ok := m.engine.Editor.Focused(); ok {
		m.pending = append(m.pending, entity.BlurEvent{FieldID: id})
	}
	return m, nil
}

func (m EditorModel) handleConfigReloaded(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	// Input typed under the old configuration is applied under it.
	m.flush()
	if err := m.engine.Apply(m.ctx, msg.cfg); err != nil {
		logging.FromContext(m.ctx).Error().Err(err).Msg("apply reloaded config")
		m.activity.status = "reload failed: " + err.Error()
	} else {
		m.activity.status = "config reloaded"
	}
	return m, m.waitForReload()
}

// screenLayout records where things were drawn, for mouse hit testing.
type screenLayout struct {
	fieldTops       []int
	fieldIDs        []entity.FieldID
	keyboard        styles.KeyboardView
	keyboardTop     int
	keyboardVisible bool
}

func (l screenLayout) fieldAt(y int) (entity.FieldID, bool) {
	for i, top := range l.fieldTops {
		if y >= top && y < top+styles.FieldHeight {
			return l.fieldIDs[i], true
		}
	}
	return "", false
}

// View renders the model.
func (m EditorModel) View() string {
	view, _ := m.render()
	return view
}

func (m EditorModel) render() (string, screenLayout) {
	var (
		layout screenLayout
		blocks []string
		row    int
	)
	add := func(block string) {
		blocks = append(blocks, block)
		row += lipgloss.Height(block)
	}

	kb := m.engine.Keyboard
	if kb.Visible() {
		layout.keyboardVisible = true
		layout.keyboard = m.theme.RenderKeyboard(kb.Layout(), kb.Shifted(), kb.IsHeld)
	}
	if layout.keyboardVisible && kb.Position() == entity.KeyboardTop {
		layout.keyboardTop = row
		add(layout.keyboard.Content)
	}

	add(m.renderHeader())

	snaps, err := m.engine.Editor.Snapshots(m.ctx)
	if err != nil {
		add(m.theme.ErrorStyle.Render(err.Error()))
	}
	for _, snap := range snaps {
		layout.fieldTops = append(layout.fieldTops, row)
		layout.fieldIDs = append(layout.fieldIDs, snap.ID)
		add(m.renderField(snap))
	}

	add(m.renderActivity())

	if layout.keyboardVisible && kb.Position() == entity.KeyboardBottom {
		layout.keyboardTop = row
		add(layout.keyboard.Content)
	}

	add(m.help.View(m.keys))
	return strings.Join(blocks, "\n"), layout
}

func (m EditorModel) renderHeader() string {
	title := m.theme.Title.Render("textedit")
	focus := m.theme.Subtle.Render("no focus")
	if id, ok := m.engine.Editor.Focused(); ok {
		focus = m.theme.Highlight.Render(string(id))
	}
	return fmt.Sprintf("%s  %s", title, focus)
}

func (m EditorModel) renderField(snap entity.FieldSnapshot) string {
	width := min(m.width, 72)
	out := m.theme.RenderField(snap, width)
	if !m.engine.Numbers.IsNumberInput(snap.ID) {
		return out
	}
	rng, err := m.engine.Numbers.Range(snap.ID)
	if err != nil {
		return out
	}
	hint := m.theme.Subtle.Render(fmt.Sprintf(" %d..%d", rng.Min, rng.Max))
	return lipgloss.JoinHorizontal(lipgloss.Center, out, hint)
}

func (m EditorModel) renderActivity() string {
	var lines []string
	for _, c := range m.activity.changes {
		lines = append(lines, fmt.Sprintf("%s %s %q",
			m.theme.Subtle.Render(styles.IconCursor),
			m.theme.HelpKey.Render(string(c.FieldID)),
			c.Text,
		))
	}
	if n := m.activity.number; n != nil {
		lines = append(lines, m.theme.SuccessStyle.Render(fmt.Sprintf("%s = %d", n.FieldID, n.Value)))
	}
	if m.activity.status != "" {
		lines = append(lines, m.theme.WarningStyle.Render(m.activity.status))
	}
	if len(lines) == 0 {
		return m.theme.Subtle.Render("type in a field, click a key or press C-v to paste")
	}
	return strings.Join(lines, "\n")
}
