package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/textedit/internal/application/usecase"
	"github.com/bnema/textedit/internal/domain/entity"
)

func TestVirtualKeyboard_HiddenIgnoresPresses(t *testing.T) {
	kb := usecase.NewVirtualKeyboardUseCase(entity.QwertyLayout(), entity.KeyboardBottom)

	_, ok, err := kb.Press(testContext(), "q", 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVirtualKeyboard_ShiftAndPress(t *testing.T) {
	ctx := testContext()
	kb := usecase.NewVirtualKeyboardUseCase(entity.QwertyLayout(), entity.KeyboardBottom)
	kb.Show(ctx, entity.KeyboardTop)
	assert.Equal(t, entity.KeyboardTop, kb.Position())

	_, ok, err := kb.Press(ctx, "shift", 0)
	require.NoError(t, err)
	assert.False(t, ok, "shift only toggles labels")
	assert.True(t, kb.Shifted())

	ev, ok, err := kb.Press(ctx, "q", 10*ms)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity.VirtualDown(entity.Character("Q"), 10*ms), ev)

	// toggling shift mid-hold does not change what gets released
	_, _, err = kb.Press(ctx, "shift", 20*ms)
	require.NoError(t, err)
	up, ok := kb.Release("q", 30*ms)
	require.True(t, ok)
	assert.Equal(t, entity.VirtualUp(entity.Character("Q"), 30*ms), up)

	_, ok = kb.Release("q", 40*ms)
	assert.False(t, ok)

	_, _, err = kb.Press(ctx, "nope", 0)
	assert.ErrorIs(t, err, entity.ErrUnknownKey)
}

func TestVirtualKeyboard_HideStopsRepeats(t *testing.T) {
	ctx := testContext()
	engine := newEngine()
	id := newFocusedField(t, engine, entity.FieldConfig{})
	kb := usecase.NewVirtualKeyboardUseCase(entity.QwertyLayout(), entity.KeyboardBottom)
	kb.Show(ctx, entity.KeyboardBottom)

	down, ok, err := kb.Press(ctx, "a", 0)
	require.NoError(t, err)
	require.True(t, ok)
	bs, ok, err := kb.Press(ctx, "backspace", 0)
	require.NoError(t, err)
	require.True(t, ok)
	engine.ProcessBatch(ctx, []entity.InputEvent{down, bs})

	batch := kb.Hide(ctx, 100*ms)
	require.Len(t, batch, 2)
	assert.False(t, kb.IsHeld("a"))
	engine.ProcessBatch(ctx, append(batch, entity.Tick{Now: 5 * time.Second}))

	assert.Empty(t, engine.Repeater().Held())
	text, _ := content(t, engine, id)
	assert.Equal(t, "", text)
	assert.Nil(t, kb.Hide(ctx, time.Second), "hiding twice releases nothing")
}

func TestVirtualKeyboard_NumericLayout(t *testing.T) {
	ctx := testContext()
	kb := usecase.NewVirtualKeyboardUseCase(entity.QwertyLayout(), entity.KeyboardBottom)
	kb.Show(ctx, entity.KeyboardBottom)
	_, _, err := kb.Press(ctx, "w", 0)
	require.NoError(t, err)

	released := kb.SetLayout(entity.NumericLayout(), 5*ms)
	assert.Equal(t, []entity.InputEvent{entity.VirtualUp(entity.Character("w"), 5*ms)}, released)

	ev, ok, err := kb.Press(ctx, "-", 6*ms)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity.Character("-"), ev.Key)
}
