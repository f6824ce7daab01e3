package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQwertyLayout(t *testing.T) {
	l := QwertyLayout()
	require.Len(t, l.Rows, 4)

	seen := map[string]bool{}
	for _, row := range l.Rows {
		for _, k := range row {
			assert.False(t, seen[k.ID], "duplicate key id %q", k.ID)
			seen[k.ID] = true
		}
	}

	q, ok := l.Find("q")
	require.True(t, ok)
	assert.Equal(t, Character("q"), q.Logical(false))
	assert.Equal(t, Character("Q"), q.Logical(true))
	assert.Equal(t, "Q", q.Label(true))

	space, ok := l.Find("space")
	require.True(t, ok)
	assert.Equal(t, Named(KeySpace), space.Logical(true))
	assert.InDelta(t, 2.5, space.Size, 0.001)

	_, ok = l.Find("nope")
	assert.False(t, ok)
}

func TestLayoutByName(t *testing.T) {
	l, err := LayoutByName("NUMERIC")
	require.NoError(t, err)
	assert.Equal(t, LayoutNumeric, l.Name)

	l, err = LayoutByName("")
	require.NoError(t, err)
	assert.Equal(t, LayoutQwerty, l.Name)

	_, err = LayoutByName("dvorak")
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestParseKeyboardPosition(t *testing.T) {
	p, err := ParseKeyboardPosition("top")
	require.NoError(t, err)
	assert.Equal(t, KeyboardTop, p)
	assert.Equal(t, "top", p.String())

	_, err = ParseKeyboardPosition("left")
	assert.Error(t, err)
}

func TestNumberRange(t *testing.T) {
	_, err := NewNumberRange(5, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)

	r, err := NewNumberRange(-10, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(-10), r.Clamp(-99))
	assert.Equal(t, int64(250), r.Clamp(1000))
	assert.Equal(t, int64(7), r.Clamp(7))
	assert.Equal(t, 3, r.Width())

	cfg := NumberInputConfig{ID: "n", Value: 999}.FieldConfig(r)
	assert.Equal(t, "250", cfg.Content)
	assert.Equal(t, NumberFilterIn, cfg.FilterIn)
	require.NotNil(t, cfg.MaxLength)
	assert.Equal(t, 3, *cfg.MaxLength)
}
