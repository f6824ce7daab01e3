package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/logging"
)

// VirtualKeyboardUseCase models an on-screen keyboard. It turns key presses
// reported by the host into virtual key events for the engine. Shift toggles
// the alternate labels and produces no event.
type VirtualKeyboardUseCase struct {
	layout   entity.VirtualKeyLayout
	position entity.KeyboardPosition
	visible  bool
	shifted  bool

	// held maps a key id to the logical key sent at press time, so a shift
	// toggle during a hold does not change what gets released.
	held  map[string]entity.Key
	order []string
}

// NewVirtualKeyboardUseCase returns a hidden keyboard.
func NewVirtualKeyboardUseCase(layout entity.VirtualKeyLayout, position entity.KeyboardPosition) *VirtualKeyboardUseCase {
	return &VirtualKeyboardUseCase{
		layout:   layout,
		position: position,
		held:     make(map[string]entity.Key),
	}
}

// Layout returns the active layout.
func (uc *VirtualKeyboardUseCase) Layout() entity.VirtualKeyLayout { return uc.layout }

// Position returns where the keyboard is docked.
func (uc *VirtualKeyboardUseCase) Position() entity.KeyboardPosition { return uc.position }

// Visible reports whether the keyboard is shown.
func (uc *VirtualKeyboardUseCase) Visible() bool { return uc.visible }

// Shifted reports whether the alternate labels are active.
func (uc *VirtualKeyboardUseCase) Shifted() bool { return uc.shifted }

// IsHeld reports whether the key with id is down.
func (uc *VirtualKeyboardUseCase) IsHeld(id string) bool {
	_, ok := uc.held[id]
	return ok
}

// Show displays the keyboard at position.
func (uc *VirtualKeyboardUseCase) Show(ctx context.Context, position entity.KeyboardPosition) {
	uc.visible = true
	uc.position = position
	logging.FromContext(ctx).Debug().Str("position", position.String()).Msg("virtual keyboard shown")
}

// Hide removes the keyboard and returns release events for every held key.
func (uc *VirtualKeyboardUseCase) Hide(ctx context.Context, at time.Duration) []entity.InputEvent {
	if !uc.visible {
		return nil
	}
	uc.visible = false
	uc.shifted = false
	logging.FromContext(ctx).Debug().Int("released", len(uc.order)).Msg("virtual keyboard hidden")
	return uc.releaseAll(at)
}

// SetLayout switches layouts, releasing held keys first.
func (uc *VirtualKeyboardUseCase) SetLayout(layout entity.VirtualKeyLayout, at time.Duration) []entity.InputEvent {
	events := uc.releaseAll(at)
	uc.layout = layout
	uc.shifted = false
	return events
}

// Press reports the key with id going down. ok is false when no event
// results: the keyboard is hidden or the key is Shift.
func (uc *VirtualKeyboardUseCase) Press(ctx context.Context, id string, at time.Duration) (ev entity.KeyEvent, ok bool, err error) {
	if !uc.visible {
		return entity.KeyEvent{}, false, nil
	}
	vk, found := uc.layout.Find(id)
	if !found {
		return entity.KeyEvent{}, false, fmt.Errorf("%w: virtual key %q", entity.ErrUnknownKey, id)
	}

	key := vk.Logical(uc.shifted)
	if key.Code == entity.KeyShift {
		uc.shifted = !uc.shifted
		logging.FromContext(ctx).Trace().Bool("shifted", uc.shifted).Msg("virtual keyboard shift")
		return entity.KeyEvent{}, false, nil
	}

	if _, held := uc.held[id]; !held {
		uc.order = append(uc.order, id)
	}
	uc.held[id] = key
	return entity.VirtualDown(key, at), true, nil
}

// Release reports the key with id going up. ok is false if it was not held.
func (uc *VirtualKeyboardUseCase) Release(id string, at time.Duration) (entity.KeyEvent, bool) {
	key, held := uc.held[id]
	if !held {
		return entity.KeyEvent{}, false
	}
	uc.forget(id)
	return entity.VirtualUp(key, at), true
}

func (uc *VirtualKeyboardUseCase) releaseAll(at time.Duration) []entity.InputEvent {
	if len(uc.order) == 0 {
		return nil
	}
	events := make([]entity.InputEvent, 0, len(uc.order))
	for _, id := range uc.order {
		events = append(events, entity.VirtualUp(uc.held[id], at))
	}
	clear(uc.held)
	uc.order = uc.order[:0]
	return events
}

func (uc *VirtualKeyboardUseCase) forget(id string) {
	delete(uc.held, id)
	for i, other := range uc.order {
		if other == id {
			uc.order = append(uc.order[:i], uc.order[i+1:]...)
			return
		}
	}
}
