package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// KeyCode is the logical identity of a key.
type KeyCode int

const (
	// KeyUnknown is any key the engine does not act on.
	KeyUnknown KeyCode = iota
	// KeyCharacter produces the text carried in Key.Text.
	KeyCharacter
	KeySpace
	KeyBackspace
	KeyDelete
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyEnter
	KeyShift
)

var keyNames = map[KeyCode]string{
	KeyUnknown:    "unknown",
	KeyCharacter:  "character",
	KeySpace:      "space",
	KeyBackspace:  "backspace",
	KeyDelete:     "delete",
	KeyArrowLeft:  "left",
	KeyArrowRight: "right",
	KeyHome:       "home",
	KeyEnd:        "end",
	KeyEnter:      "enter",
	KeyShift:      "shift",
}

// String returns the lowercase key name.
func (c KeyCode) String() string {
	if name, ok := keyNames[c]; ok {
		return name
	}
	return "unknown"
}

// Key is a logical key. Text is only set for KeyCharacter.
// Key is comparable so it can identify a held key.
type Key struct {
	Code KeyCode
	Text string
}

// Named returns a non-character key.
func Named(code KeyCode) Key {
	return Key{Code: code}
}

// Character returns a key that produces text.
func Character(text string) Key {
	return Key{Code: KeyCharacter, Text: text}
}

// String renders the key for logs and scripts.
func (k Key) String() string {
	if k.Code == KeyCharacter {
		return fmt.Sprintf("%q", k.Text)
	}
	return k.Code.String()
}

// ParseKey turns a key name ("backspace", "left", ...) or a single
// character into a Key. Names are case-insensitive; "arrowleft" and
// "arrowright" are accepted as aliases, "del" for delete.
func ParseKey(name string) (Key, error) {
	if utf8.RuneCountInString(name) == 1 {
		if name == " " {
			return Named(KeySpace), nil
		}
		return Character(name), nil
	}

	switch strings.ToLower(name) {
	case "space":
		return Named(KeySpace), nil
	case "backspace":
		return Named(KeyBackspace), nil
	case "delete", "del":
		return Named(KeyDelete), nil
	case "left", "arrowleft":
		return Named(KeyArrowLeft), nil
	case "right", "arrowright":
		return Named(KeyArrowRight), nil
	case "home":
		return Named(KeyHome), nil
	case "end":
		return Named(KeyEnd), nil
	case "enter":
		return Named(KeyEnter), nil
	case "shift":
		return Named(KeyShift), nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// KeyAction is the physical transition of a key.
type KeyAction int

const (
	KeyDown KeyAction = iota
	KeyUp
)

// String returns "down" or "up".
func (a KeyAction) String() string {
	if a == KeyUp {
		return "up"
	}
	return "down"
}
