package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/textedit/internal/domain/entity"
)

func TestFocusArbiter_ExclusiveWithinGroup(t *testing.T) {
	a := NewFocusArbiter()

	assert.True(t, a.Focus("a", ""))
	assert.True(t, a.Focus("b", ""))

	assert.False(t, a.IsFocused("a"))
	assert.True(t, a.IsFocused("b"))
	id, ok := a.Focused()
	require.True(t, ok)
	assert.Equal(t, entity.FieldID("b"), id)
}

func TestFocusArbiter_RefocusIsNoop(t *testing.T) {
	a := NewFocusArbiter()
	a.Focus("a", "")

	assert.False(t, a.Focus("a", ""))
	assert.True(t, a.IsFocused("a"))
}

func TestFocusArbiter_Blur(t *testing.T) {
	a := NewFocusArbiter()
	a.Focus("a", "")

	assert.False(t, a.Blur("other"))
	assert.True(t, a.Blur("a"))
	assert.False(t, a.Blur("a"), "second blur is a no-op")

	_, ok := a.Focused()
	assert.False(t, ok)
}

func TestFocusArbiter_ExclusiveAcrossGroups(t *testing.T) {
	a := NewFocusArbiter()
	a.Focus("name", "form")
	a.Focus("search", "toolbar")

	assert.False(t, a.IsFocused("name"), "focus is exclusive across groups")
	assert.True(t, a.IsFocused("search"))
	group, ok := a.ActiveGroup()
	require.True(t, ok)
	assert.Equal(t, "toolbar", group)

	assert.True(t, a.Focus("name", "form"), "name had lost focus")
	assert.False(t, a.IsFocused("search"))
	id, _ := a.Focused()
	assert.Equal(t, entity.FieldID("name"), id)

	a.BlurAll()
	_, ok = a.Focused()
	assert.False(t, ok)
	_, ok = a.ActiveGroup()
	assert.False(t, ok)
}
