package entity

import (
	"fmt"
	"strings"
)

// VirtualKey is one button of an on-screen keyboard.
type VirtualKey struct {
	// ID is unique within a layout; hosts use it to report presses.
	ID string
	// Main and Alt are the labels for the normal and shifted states.
	Main string
	Alt  string
	// MainKey and AltKey are the logical keys produced in each state.
	MainKey Key
	AltKey  Key
	// Size is the width in units of a standard key.
	Size float64
}

// Label returns the label for the given shift state.
func (k VirtualKey) Label(alt bool) string {
	if alt {
		return k.Alt
	}
	return k.Main
}

// Logical returns the logical key for the given shift state.
func (k VirtualKey) Logical(alt bool) Key {
	if alt {
		return k.AltKey
	}
	return k.MainKey
}

// VirtualKeyLayout is a keyboard as rows of keys.
type VirtualKeyLayout struct {
	Name string
	Rows [][]VirtualKey
}

// Find returns the key with the given id.
func (l VirtualKeyLayout) Find(id string) (VirtualKey, bool) {
	for _, row := range l.Rows {
		for _, k := range row {
			if k.ID == id {
				return k, true
			}
		}
	}
	return VirtualKey{}, false
}

// KeyboardPosition is where a renderer docks the virtual keyboard.
type KeyboardPosition int

const (
	KeyboardBottom KeyboardPosition = iota
	KeyboardTop
)

// String returns "bottom" or "top".
func (p KeyboardPosition) String() string {
	if p == KeyboardTop {
		return "top"
	}
	return "bottom"
}

// ParseKeyboardPosition accepts "bottom" and "top".
func ParseKeyboardPosition(s string) (KeyboardPosition, error) {
	switch strings.ToLower(s) {
	case "", "bottom":
		return KeyboardBottom, nil
	case "top":
		return KeyboardTop, nil
	}
	return KeyboardBottom, fmt.Errorf("unknown keyboard position %q", s)
}

// Layout names understood by LayoutByName.
const (
	LayoutQwerty  = "qwerty"
	LayoutNumeric = "numeric"
)

// LayoutByName returns a built-in layout.
func LayoutByName(name string) (VirtualKeyLayout, error) {
	switch strings.ToLower(name) {
	case "", LayoutQwerty:
		return QwertyLayout(), nil
	case LayoutNumeric:
		return NumericLayout(), nil
	}
	return VirtualKeyLayout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
}

// charKey builds a key whose logical keys are the characters of its labels.
func charKey(main, alt string) VirtualKey {
	return VirtualKey{
		ID:      main,
		Main:    main,
		Alt:     alt,
		MainKey: Character(main),
		AltKey:  Character(alt),
		Size:    1,
	}
}

// namedKey builds a key producing the same named key in both states.
func namedKey(id, main, alt string, code KeyCode, size float64) VirtualKey {
	return VirtualKey{
		ID:      id,
		Main:    main,
		Alt:     alt,
		MainKey: Named(code),
		AltKey:  Named(code),
		Size:    size,
	}
}

func charRow(pairs ...string) []VirtualKey {
	row := make([]VirtualKey, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		row = append(row, charKey(pairs[i], pairs[i+1]))
	}
	return row
}

// QwertyLayout is the default four-row US layout.
func QwertyLayout() VirtualKeyLayout {
	row1 := charRow("`", "~", "1", "!", "2", "@", "3", "#", "4", "$", "5", "%",
		"6", "^", "7", "&", "8", "*", "9", "(", "0", ")", "-", "_", "=", "+")
	row1 = append(row1, namedKey("backspace", "Backspace", "BACKSPACE", KeyBackspace, 2))

	row2 := charRow("q", "Q", "w", "W", "e", "E", "r", "R", "t", "T", "y", "Y",
		"u", "U", "i", "I", "o", "O", "p", "P", "[", "{", "]", "}", "\\", "|")
	row2 = append(row2, namedKey("delete", "Del", "DEL", KeyDelete, 1))

	row3 := []VirtualKey{namedKey("shift", "Shift", "SHIFT", KeyShift, 1.5)}
	row3 = append(row3, charRow("a", "A", "s", "S", "d", "D", "f", "F", "g", "G",
		"h", "H", "j", "J", "k", "K", "l", "L", ";", ":", "'", "\"")...)
	row3 = append(row3, namedKey("enter", "Enter", "ENTER", KeyEnter, 1.5))

	row4 := charRow("z", "Z", "x", "X", "c", "C", "v", "V")
	row4 = append(row4, namedKey("space", "Space", "SPACE", KeySpace, 2.5))
	row4 = append(row4, charRow("b", "B", "n", "N", "m", "M", ",", "<", ".", ">", "/", "?")...)
	row4 = append(row4,
		namedKey("left", "<=", "<=", KeyArrowLeft, 1),
		namedKey("right", "=>", "=>", KeyArrowRight, 1),
	)

	return VirtualKeyLayout{
		Name: LayoutQwerty,
		Rows: [][]VirtualKey{row1, row2, row3, row4},
	}
}

// NumericLayout is a keypad with digits, minus, editing keys and arrows.
func NumericLayout() VirtualKeyLayout {
	digit := func(d string) VirtualKey { return charKey(d, d) }
	return VirtualKeyLayout{
		Name: LayoutNumeric,
		Rows: [][]VirtualKey{
			{digit("1"), digit("2"), digit("3")},
			{digit("4"), digit("5"), digit("6")},
			{digit("7"), digit("8"), digit("9")},
			{
				digit("-"),
				digit("0"),
				namedKey("backspace", "<-", "<-", KeyBackspace, 1),
			},
			{
				namedKey("left", "<=", "<=", KeyArrowLeft, 1),
				namedKey("right", "=>", "=>", KeyArrowRight, 1),
				namedKey("delete", "Del", "Del", KeyDelete, 1),
			},
		},
	}
}
