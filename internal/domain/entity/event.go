package entity

import "time"

// InputEvent is one item of an input batch. The concrete types below are
// the only implementations.
type InputEvent interface {
	inputEvent()
}

// KeyEvent is a key transition. At is an offset on the host's monotonic
// clock. Virtual events come from an on-screen keyboard and drive the key
// repeat timer; physical events are applied on press only.
type KeyEvent struct {
	Key     Key
	Action  KeyAction
	At      time.Duration
	Virtual bool
}

// TextInputEvent carries printable text already translated by the host's
// keyboard layout.
type TextInputEvent struct {
	Text string
}

// PasteEvent carries clipboard text. It is inserted atomically.
type PasteEvent struct {
	Text string
}

// FocusClickEvent reports that the host's hit-testing picked a field.
type FocusClickEvent struct {
	FieldID FieldID
}

// BlurEvent reports that a field lost focus (click outside, escape).
type BlurEvent struct {
	FieldID FieldID
}

// Tick advances the key repeat timer to Now.
type Tick struct {
	Now time.Duration
}

func (KeyEvent) inputEvent()        {}
func (TextInputEvent) inputEvent()  {}
func (PasteEvent) inputEvent()      {}
func (FocusClickEvent) inputEvent() {}
func (BlurEvent) inputEvent()       {}
func (Tick) inputEvent()            {}

// Press builds a physical key-down event.
func Press(key Key) KeyEvent {
	return KeyEvent{Key: key, Action: KeyDown}
}

// VirtualDown builds a virtual key-down event at the given time.
func VirtualDown(key Key, at time.Duration) KeyEvent {
	return KeyEvent{Key: key, Action: KeyDown, At: at, Virtual: true}
}

// VirtualUp builds a virtual key-up event at the given time.
func VirtualUp(key Key, at time.Duration) KeyEvent {
	return KeyEvent{Key: key, Action: KeyUp, At: at, Virtual: true}
}
