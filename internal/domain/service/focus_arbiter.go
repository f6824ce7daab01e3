// Package service holds the stateful domain services shared by every field:
// the focus arbiter and the key repeat timer.
package service

import "github.com/bnema/textedit/internal/domain/entity"

// FocusArbiter is the single source of truth for focus. At most one field
// is focused across the arbiter; focusing a field takes focus away from
// every other field, whatever its group. The group is recorded so hosts can
// scope navigation such as tab cycling.
type FocusArbiter struct {
	focused entity.FieldID
	group   string
	has     bool
}

// NewFocusArbiter returns an arbiter with nothing focused.
func NewFocusArbiter() *FocusArbiter {
	return &FocusArbiter{}
}

// Focus gives focus to id, which belongs to group. Returns false when id
// already held focus.
func (a *FocusArbiter) Focus(id entity.FieldID, group string) bool {
	if a.has && a.focused == id {
		return false
	}
	a.focused = id
	a.group = group
	a.has = true
	return true
}

// Blur clears focus from id. Returns false when id was not focused.
func (a *FocusArbiter) Blur(id entity.FieldID) bool {
	if !a.has || a.focused != id {
		return false
	}
	a.BlurAll()
	return true
}

// BlurAll clears focus.
func (a *FocusArbiter) BlurAll() {
	a.focused = ""
	a.group = ""
	a.has = false
}

// IsFocused reports whether id holds focus.
func (a *FocusArbiter) IsFocused(id entity.FieldID) bool {
	return a.has && a.focused == id
}

// Focused returns the focused field.
func (a *FocusArbiter) Focused() (entity.FieldID, bool) {
	return a.focused, a.has
}

// ActiveGroup returns the group of the focused field.
func (a *FocusArbiter) ActiveGroup() (string, bool) {
	return a.group, a.has
}
