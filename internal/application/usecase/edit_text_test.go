package usecase_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/textedit/internal/application/port"
	portmocks "github.com/bnema/textedit/internal/application/port/mocks"
	"github.com/bnema/textedit/internal/application/usecase"
	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/domain/service"
	"github.com/bnema/textedit/internal/infrastructure/persistence/memory"
	"github.com/bnema/textedit/internal/logging"
)

const ms = time.Millisecond

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newEngine() *usecase.EditTextUseCase {
	return usecase.NewEditTextUseCase(
		memory.NewFieldRepository(),
		service.NewFocusArbiter(),
		service.NewKeyRepeater(service.RepeatConfig{InitialDelay: 500 * ms, Interval: 100 * ms, MaxPerTick: 10}),
		usecase.NewChangeFeed(0),
	)
}

func newFocusedField(t *testing.T, uc *usecase.EditTextUseCase, cfg entity.FieldConfig) entity.FieldID {
	t.Helper()
	cfg.Focused = true
	id, err := uc.CreateField(testContext(), cfg)
	require.NoError(t, err)
	return id
}

func content(t *testing.T, uc *usecase.EditTextUseCase, id entity.FieldID) (string, int) {
	t.Helper()
	snap, err := uc.Snapshot(testContext(), id)
	require.NoError(t, err)
	return snap.Content, snap.Cursor
}

func typeKeys(keys ...string) []entity.InputEvent {
	events := make([]entity.InputEvent, len(keys))
	for i, k := range keys {
		key, err := entity.ParseKey(k)
		if err != nil {
			panic(err)
		}
		events[i] = entity.Press(key)
	}
	return events
}

func TestEditText_TypingAndEditing(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id := newFocusedField(t, uc, entity.FieldConfig{ID: "f"})

	uc.ProcessBatch(ctx, typeKeys("h", "e", "l", "o", "left", "l", "end", " ", "space"))
	text, cursor := content(t, uc, id)
	assert.Equal(t, "hello  ", text)
	assert.Equal(t, 7, cursor)

	uc.ProcessBatch(ctx, typeKeys("home", "delete", "right", "backspace", "enter", "shift"))
	text, cursor = content(t, uc, id)
	assert.Equal(t, "llo  ", text)
	assert.Equal(t, 0, cursor)
}

func TestEditText_FilterTypingVsPaste(t *testing.T) {
	ctx := testContext()
	cfg := entity.FieldConfig{FilterIn: []string{"[0-9]"}, FilterOut: []string{"5"}}

	typed := newEngine()
	id := newFocusedField(t, typed, cfg)
	typed.ProcessBatch(ctx, typeKeys("4", "5", "a"))
	text, _ := content(t, typed, id)
	assert.Equal(t, "4", text)

	pasted := newEngine()
	id = newFocusedField(t, pasted, cfg)
	pasted.ProcessBatch(ctx, []entity.InputEvent{entity.TextInputEvent{Text: "4"}, entity.PasteEvent{Text: "45a"}})
	text, _ = content(t, pasted, id)
	assert.Equal(t, "4", text, "the paste is rejected as a whole")
}

func TestEditText_TextInputFilteredPerRune(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id := newFocusedField(t, uc, entity.FieldConfig{FilterIn: []string{"[0-9]"}, FilterOut: []string{"5"}, MaxLength: entity.MaxLen(3)})

	notes := uc.ProcessBatch(ctx, []entity.InputEvent{entity.TextInputEvent{Text: "12"}})
	text, cursor := content(t, uc, id)
	assert.Equal(t, "12", text, "several typed runes in one event are typed one by one")
	assert.Equal(t, 2, cursor)
	assert.Equal(t, []entity.ChangeNotification{{FieldID: id, Text: "12"}}, notes)

	uc.ProcessBatch(ctx, []entity.InputEvent{entity.TextInputEvent{Text: "a5x78"}})
	text, _ = content(t, uc, id)
	assert.Equal(t, "127", text, "rejected runes are skipped and the rest stop at max length")
}

func TestEditText_PasteTruncatesToMaxLength(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id := newFocusedField(t, uc, entity.FieldConfig{Content: "ab", MaxLength: entity.MaxLen(3)})

	notes := uc.ProcessBatch(ctx, []entity.InputEvent{entity.PasteEvent{Text: "cdef"}})

	text, cursor := content(t, uc, id)
	assert.Equal(t, "abc", text)
	assert.Equal(t, 3, cursor)
	assert.Equal(t, []entity.ChangeNotification{{FieldID: id, Text: "abc"}}, notes)

	notes = uc.ProcessBatch(ctx, []entity.InputEvent{entity.PasteEvent{Text: "x"}, entity.TextInputEvent{Text: "y"}})
	assert.Empty(t, notes, "inserts at capacity are silent no-ops")
}

func TestEditText_MaxLengthZeroIsReadOnlyForInserts(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id := newFocusedField(t, uc, entity.FieldConfig{MaxLength: entity.MaxLen(0)})
	require.NoError(t, uc.SetContent(ctx, id, "abc"))

	uc.ProcessBatch(ctx, typeKeys("x", "left", "backspace"))
	text, cursor := content(t, uc, id)
	assert.Equal(t, "ac", text)
	assert.Equal(t, 1, cursor)
}

func TestEditText_EmptyPasteIsNoop(t *testing.T) {
	uc := newEngine()
	newFocusedField(t, uc, entity.FieldConfig{})

	notes := uc.ProcessBatch(testContext(), []entity.InputEvent{entity.PasteEvent{}})
	assert.Empty(t, notes)
}

func TestEditText_NoFocusedField(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id, err := uc.CreateField(ctx, entity.FieldConfig{Content: "x"})
	require.NoError(t, err)

	notes := uc.ProcessBatch(ctx, []entity.InputEvent{
		entity.Press(entity.Character("a")),
		entity.PasteEvent{Text: "bc"},
		entity.Press(entity.Named(entity.KeyBackspace)),
	})

	assert.Empty(t, notes)
	text, _ := content(t, uc, id)
	assert.Equal(t, "x", text)
}

func TestEditText_OneNotificationPerDirtyField(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	a := newFocusedField(t, uc, entity.FieldConfig{ID: "a"})
	b, err := uc.CreateField(ctx, entity.FieldConfig{ID: "b", Content: "keep"})
	require.NoError(t, err)

	notes := uc.ProcessBatch(ctx, []entity.InputEvent{
		entity.TextInputEvent{Text: "1"},
		entity.TextInputEvent{Text: "2"},
		// focus moves inside the batch and applies to the next event
		entity.FocusClickEvent{FieldID: b},
		entity.TextInputEvent{Text: "x"},
		entity.Press(entity.Named(entity.KeyBackspace)),
		entity.FocusClickEvent{FieldID: a},
		entity.TextInputEvent{Text: "3"},
	})

	assert.Equal(t, []entity.ChangeNotification{{FieldID: a, Text: "123"}}, notes,
		"b returned to its batch-start content")
}

func TestEditText_FocusIdempotence(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id := newFocusedField(t, uc, entity.FieldConfig{Content: "abc"})
	before, err := uc.Snapshot(ctx, id)
	require.NoError(t, err)

	uc.ProcessBatch(ctx, []entity.InputEvent{entity.FocusClickEvent{FieldID: id}})
	after, err := uc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	require.NoError(t, uc.Blur(ctx, id))
	once, err := uc.Snapshot(ctx, id)
	require.NoError(t, err)
	uc.ProcessBatch(ctx, []entity.InputEvent{entity.BlurEvent{FieldID: id}})
	twice, err := uc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.False(t, twice.Focused)
	assert.Equal(t, "abc", twice.Content, "focus never touches content")
	assert.Equal(t, 3, twice.Cursor)
}

func TestEditText_FocusExclusivity(t *testing.T) {
	ctx := testContext()
	uc := newEngine()

	var ids []entity.FieldID
	groups := []string{"", "form", "toolbar"}
	for i := range 6 {
		id, err := uc.CreateField(ctx, entity.FieldConfig{
			ID:    entity.FieldID(fmt.Sprintf("f%d", i)),
			Group: groups[i%len(groups)],
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	rng := rand.New(rand.NewSource(7))
	for range 200 {
		uc.ProcessBatch(ctx, []entity.InputEvent{entity.FocusClickEvent{FieldID: ids[rng.Intn(len(ids))]}})

		snaps, err := uc.Snapshots(ctx)
		require.NoError(t, err)
		focused := 0
		for _, s := range snaps {
			if s.Focused {
				focused++
			}
		}
		assert.Equal(t, 1, focused)
	}
}

func TestEditText_FocusAcrossGroups(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	_, err := uc.CreateField(ctx, entity.FieldConfig{ID: "a", Group: "form"})
	require.NoError(t, err)
	_, err = uc.CreateField(ctx, entity.FieldConfig{ID: "b", Group: "toolbar"})
	require.NoError(t, err)

	uc.ProcessBatch(ctx, []entity.InputEvent{
		entity.FocusClickEvent{FieldID: "a"},
		entity.FocusClickEvent{FieldID: "b"},
	})
	a, err := uc.Snapshot(ctx, "a")
	require.NoError(t, err)
	b, err := uc.Snapshot(ctx, "b")
	require.NoError(t, err)
	assert.False(t, a.Focused, "focusing b takes focus from a in another group")
	assert.True(t, b.Focused)
	group, ok := uc.ActiveGroup()
	require.True(t, ok)
	assert.Equal(t, "toolbar", group)

	// re-clicking the focused field changes nothing
	uc.ProcessBatch(ctx, []entity.InputEvent{
		entity.FocusClickEvent{FieldID: "b"},
		entity.TextInputEvent{Text: "x"},
	})
	text, _ := content(t, uc, "a")
	assert.Equal(t, "", text)
	text, _ = content(t, uc, "b")
	assert.Equal(t, "x", text)
}

func TestEditText_CursorInvariantUnderRandomEdits(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id := newFocusedField(t, uc, entity.FieldConfig{MaxLength: entity.MaxLen(12)})

	keys := []entity.InputEvent{
		entity.Press(entity.Character("a")),
		entity.Press(entity.Character("ü")),
		entity.Press(entity.Named(entity.KeyBackspace)),
		entity.Press(entity.Named(entity.KeyDelete)),
		entity.Press(entity.Named(entity.KeyArrowLeft)),
		entity.Press(entity.Named(entity.KeyArrowRight)),
		entity.Press(entity.Named(entity.KeyHome)),
		entity.PasteEvent{Text: "xyz"},
	}

	rng := rand.New(rand.NewSource(42))
	for range 500 {
		uc.ProcessBatch(ctx, []entity.InputEvent{keys[rng.Intn(len(keys))]})
		snap, err := uc.Snapshot(ctx, id)
		require.NoError(t, err)
		n := len([]rune(snap.Content))
		require.GreaterOrEqual(t, snap.Cursor, 0)
		require.LessOrEqual(t, snap.Cursor, n)
		require.LessOrEqual(t, n, 12)
	}
}

func TestEditText_KeyRepeatCadence(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id := newFocusedField(t, uc, entity.FieldConfig{})
	a := entity.Character("a")

	steps := []struct {
		events []entity.InputEvent
		want   string
	}{
		{[]entity.InputEvent{entity.VirtualDown(a, 0)}, "a"},
		{[]entity.InputEvent{entity.Tick{Now: 300 * ms}}, "a"},
		{[]entity.InputEvent{entity.Tick{Now: 500 * ms}}, "aa"},
		{[]entity.InputEvent{entity.Tick{Now: 600 * ms}}, "aaa"},
		{[]entity.InputEvent{entity.Tick{Now: 700 * ms}, entity.VirtualUp(a, 650*ms)}, "aaa"},
		{[]entity.InputEvent{entity.Tick{Now: 2 * time.Second}}, "aaa"},
	}

	for i, step := range steps {
		uc.ProcessBatch(ctx, step.events)
		text, _ := content(t, uc, id)
		assert.Equal(t, step.want, text, "step %d", i)
	}
}

func TestEditText_PhysicalKeysDoNotRepeat(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id := newFocusedField(t, uc, entity.FieldConfig{})

	uc.ProcessBatch(ctx, []entity.InputEvent{
		entity.KeyEvent{Key: entity.Character("a"), Action: entity.KeyDown},
		entity.Tick{Now: time.Second},
		entity.KeyEvent{Key: entity.Character("a"), Action: entity.KeyUp},
	})

	text, _ := content(t, uc, id)
	assert.Equal(t, "a", text)
}

func TestEditText_RepeatsFollowFocus(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	first := newFocusedField(t, uc, entity.FieldConfig{ID: "first"})
	second, err := uc.CreateField(ctx, entity.FieldConfig{ID: "second"})
	require.NoError(t, err)

	x := entity.Character("x")
	uc.ProcessBatch(ctx, []entity.InputEvent{entity.VirtualDown(x, 0)})
	uc.ProcessBatch(ctx, []entity.InputEvent{entity.FocusClickEvent{FieldID: second}, entity.Tick{Now: 500 * ms}})

	text, _ := content(t, uc, first)
	assert.Equal(t, "x", text)
	text, _ = content(t, uc, second)
	assert.Equal(t, "x", text)
}

func TestEditText_SetContentRoundTrip(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id := newFocusedField(t, uc, entity.FieldConfig{FilterIn: []string{"[a-z]+"}, MaxLength: entity.MaxLen(2)})

	var notified bool
	uc.Feed().Subscribe(port.ChangeObserverFunc(func(context.Context, entity.ChangeNotification) {
		notified = true
	}))

	for _, s := range []string{"", "Hello, 世界 🎉", "  spaced  ", "line\nbreak"} {
		require.NoError(t, uc.SetContent(ctx, id, s))
		text, cursor := content(t, uc, id)
		assert.Equal(t, s, text)
		assert.Equal(t, len([]rune(s)), cursor)
	}
	assert.False(t, notified)
	assert.Zero(t, uc.Feed().Pending())
}

func TestEditText_ConfigErrors(t *testing.T) {
	ctx := testContext()
	uc := newEngine()

	_, err := uc.CreateField(ctx, entity.FieldConfig{FilterIn: []string{"[0-9"}})
	assert.ErrorIs(t, err, entity.ErrInvalidPattern)

	_, err = uc.CreateField(ctx, entity.FieldConfig{MaxLength: entity.MaxLen(-2)})
	assert.ErrorIs(t, err, entity.ErrInvalidMaxLength)

	snaps, err := uc.Snapshots(ctx)
	require.NoError(t, err)
	assert.Empty(t, snaps)

	assert.ErrorIs(t, uc.Focus(ctx, "missing"), entity.ErrFieldNotFound)
	assert.ErrorIs(t, uc.SetContent(ctx, "missing", "x"), entity.ErrFieldNotFound)
	assert.ErrorIs(t, uc.RemoveField(ctx, "missing"), entity.ErrFieldNotFound)
	_, err = uc.Snapshot(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrFieldNotFound)
}

func TestEditText_ReconfigureKeepsContent(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id := newFocusedField(t, uc, entity.FieldConfig{Content: "abc"})

	require.NoError(t, uc.Reconfigure(ctx, id, entity.FieldConfig{FilterIn: []string{"[0-9]"}, MaxLength: entity.MaxLen(4)}))
	uc.ProcessBatch(ctx, typeKeys("x", "1", "2"))

	snap, err := uc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "abc1", snap.Content)
	assert.True(t, snap.Focused)

	err = uc.Reconfigure(ctx, id, entity.FieldConfig{FilterOut: []string{"+"}})
	assert.ErrorIs(t, err, entity.ErrInvalidPattern)
}

func TestEditText_RemoveFieldBlurs(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id := newFocusedField(t, uc, entity.FieldConfig{})

	require.NoError(t, uc.RemoveField(ctx, id))
	_, ok := uc.Focused()
	assert.False(t, ok)

	notes := uc.ProcessBatch(ctx, []entity.InputEvent{entity.FocusClickEvent{FieldID: id}, entity.TextInputEvent{Text: "a"}})
	assert.Empty(t, notes)
}

func TestEditText_SubscribersAndDrainSeeSameNotifications(t *testing.T) {
	ctx := testContext()
	uc := newEngine()
	id := newFocusedField(t, uc, entity.FieldConfig{})

	obs := portmocks.NewMockChangeObserver(t)
	obs.EXPECT().
		OnTextChanged(mock.Anything, entity.ChangeNotification{FieldID: id, Text: "hi"}).
		Run(func(_ context.Context, _ entity.ChangeNotification) {
			// every mutation of the batch is visible to subscribers
			text, _ := content(t, uc, id)
			assert.Equal(t, "hi", text)
		}).
		Return().
		Once()
	unsubscribe := uc.Feed().Subscribe(obs)

	uc.ProcessBatch(ctx, []entity.InputEvent{entity.TextInputEvent{Text: "h"}, entity.TextInputEvent{Text: "i"}})
	assert.Equal(t, []entity.ChangeNotification{{FieldID: id, Text: "hi"}}, uc.Feed().Drain())
	assert.Empty(t, uc.Feed().Drain())

	unsubscribe()
	uc.ProcessBatch(ctx, []entity.InputEvent{entity.TextInputEvent{Text: "!"}})
	assert.Len(t, uc.Feed().Drain(), 1)
}
