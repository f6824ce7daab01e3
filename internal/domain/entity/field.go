// Package entity defines the text editing domain: fields, keys, input
// events and the notifications they produce.
package entity

import (
	"fmt"

	"github.com/bnema/textedit/internal/domain/filter"
)

// FieldID identifies a field inside a registry. It is opaque to the engine.
type FieldID string

// FieldConfig is the configuration surface of a field. It is applied at
// creation and may later be replaced wholesale, never patched.
type FieldConfig struct {
	// ID names the field. The registry generates one when empty.
	ID FieldID
	// Group names the set of fields Tab cycles through. Focus is engine wide.
	Group string
	// Content is the initial text. The cursor starts at its end.
	Content string
	// Placeholder is shown by renderers while the content is empty.
	Placeholder string
	// FilterIn is the allow-list; an insert must fully match one pattern.
	FilterIn []string
	// FilterOut is the deny-list; an insert containing any match is rejected.
	FilterOut []string
	// MaxLength bounds the content length in runes. Nil means unbounded.
	MaxLength *int
	// Focused requests focus right after creation.
	Focused bool
}

// MaxLen is a helper for building a FieldConfig.MaxLength value.
func MaxLen(n int) *int {
	return &n
}

// FieldState is the data of one editable text region.
//
// Content and cursor are only reachable through methods that keep
// 0 <= cursor <= len(content). Focus is not stored here: the focus arbiter
// owns it and snapshots reflect it.
type FieldState struct {
	id          FieldID
	group       string
	placeholder string
	content     []rune
	cursor      int
	maxLength   int
	bounded     bool
	filters     *filter.Set
}

// NewFieldState validates cfg and builds a field. Invalid filter patterns and
// negative max lengths are configuration errors; no field is returned.
func NewFieldState(id FieldID, cfg FieldConfig) (*FieldState, error) {
	f := &FieldState{
		id:      id,
		group:   cfg.Group,
		content: []rune(cfg.Content),
	}
	if err := f.apply(cfg); err != nil {
		return nil, err
	}
	f.cursor = len(f.content)
	return f, nil
}

// Reconfigure replaces filters, max length and placeholder with the ones in
// cfg. Content, cursor and group are kept; content longer than a new max
// length is left untouched and only further inserts are blocked.
func (f *FieldState) Reconfigure(cfg FieldConfig) error {
	f.mustBeConsistent()

	next := *f
	if err := next.apply(cfg); err != nil {
		return err
	}
	f.placeholder = next.placeholder
	f.filters = next.filters
	f.maxLength = next.maxLength
	f.bounded = next.bounded
	return nil
}

func (f *FieldState) apply(cfg FieldConfig) error {
	if cfg.MaxLength != nil && *cfg.MaxLength < 0 {
		return fmt.Errorf("field %q: %w: %d", f.id, ErrInvalidMaxLength, *cfg.MaxLength)
	}

	filters, err := filter.Compile(cfg.FilterIn, cfg.FilterOut)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.id, err)
	}

	f.placeholder = cfg.Placeholder
	f.filters = filters
	f.bounded = cfg.MaxLength != nil
	f.maxLength = 0
	if f.bounded {
		f.maxLength = *cfg.MaxLength
	}
	return nil
}

// ID returns the field identifier.
func (f *FieldState) ID() FieldID { return f.id }

// Group returns the focus group name.
func (f *FieldState) Group() string { return f.group }

// Placeholder returns the placeholder text.
func (f *FieldState) Placeholder() string { return f.placeholder }

// Content returns the current text.
func (f *FieldState) Content() string { return string(f.content) }

// Cursor returns the cursor offset in runes.
func (f *FieldState) Cursor() int { return f.cursor }

// Len returns the content length in runes.
func (f *FieldState) Len() int { return len(f.content) }

// IsEmpty reports whether the placeholder would be shown.
func (f *FieldState) IsEmpty() bool { return len(f.content) == 0 }

// Filters returns the compiled filter set.
func (f *FieldState) Filters() *filter.Set { return f.filters }

// MaxLength returns the bound and whether one is set.
func (f *FieldState) MaxLength() (int, bool) { return f.maxLength, f.bounded }

// Remaining returns how many runes can still be inserted. ok is false for
// unbounded fields.
func (f *FieldState) Remaining() (n int, ok bool) {
	if !f.bounded {
		return 0, false
	}
	n = f.maxLength - len(f.content)
	if n < 0 {
		n = 0
	}
	return n, true
}

// Insert places runes at the cursor and advances the cursor past them.
// Policy (filters, truncation) belongs to the caller.
func (f *FieldState) Insert(runes []rune) {
	f.mustBeConsistent()
	if len(runes) == 0 {
		return
	}

	next := make([]rune, 0, len(f.content)+len(runes))
	next = append(next, f.content[:f.cursor]...)
	next = append(next, runes...)
	next = append(next, f.content[f.cursor:]...)
	f.content = next
	f.cursor += len(runes)

	f.mustBeConsistent()
}

// DeleteBackward removes the rune before the cursor.
// Returns false at the start of the content.
func (f *FieldState) DeleteBackward() bool {
	f.mustBeConsistent()
	if f.cursor == 0 {
		return false
	}

	f.content = append(f.content[:f.cursor-1], f.content[f.cursor:]...)
	f.cursor--

	f.mustBeConsistent()
	return true
}

// DeleteForward removes the rune at the cursor.
// Returns false at the end of the content.
func (f *FieldState) DeleteForward() bool {
	f.mustBeConsistent()
	if f.cursor == len(f.content) {
		return false
	}

	f.content = append(f.content[:f.cursor], f.content[f.cursor+1:]...)

	f.mustBeConsistent()
	return true
}

// MoveCursor moves the cursor by delta, clamped to the content bounds.
// Returns true if the cursor moved.
func (f *FieldState) MoveCursor(delta int) bool {
	f.mustBeConsistent()
	return f.setCursor(f.cursor + delta)
}

// MoveHome places the cursor before the first rune.
func (f *FieldState) MoveHome() bool {
	f.mustBeConsistent()
	return f.setCursor(0)
}

// MoveEnd places the cursor after the last rune.
func (f *FieldState) MoveEnd() bool {
	f.mustBeConsistent()
	return f.setCursor(len(f.content))
}

// SetContent replaces the whole content verbatim and moves the cursor to the
// end. Filters and max length are not applied.
func (f *FieldState) SetContent(text string) {
	f.content = []rune(text)
	f.cursor = len(f.content)
}

func (f *FieldState) setCursor(pos int) bool {
	if pos < 0 {
		pos = 0
	}
	if pos > len(f.content) {
		pos = len(f.content)
	}
	if pos == f.cursor {
		return false
	}
	f.cursor = pos
	return true
}

// mustBeConsistent panics when the cursor points outside the content.
// Repairing it here would hide whatever corrupted the state.
func (f *FieldState) mustBeConsistent() {
	if f.cursor < 0 || f.cursor > len(f.content) {
		panic(fmt.Sprintf("textedit: field %q cursor %d outside content of length %d",
			f.id, f.cursor, len(f.content)))
	}
}

// Snapshot copies the renderable state. focused comes from the arbiter.
func (f *FieldState) Snapshot(focused bool) FieldSnapshot {
	snap := FieldSnapshot{
		ID:          f.id,
		Group:       f.group,
		Content:     string(f.content),
		Cursor:      f.cursor,
		Placeholder: f.placeholder,
		Focused:     focused,
	}
	if f.bounded {
		snap.MaxLength = MaxLen(f.maxLength)
	}
	return snap
}

// FieldSnapshot is a read-only copy of a field taken between batches.
type FieldSnapshot struct {
	ID          FieldID
	Group       string
	Content     string
	Cursor      int
	Placeholder string
	Focused     bool
	MaxLength   *int
}

// Display returns the text a renderer shows: the content, or the placeholder
// when the content is empty.
func (s FieldSnapshot) Display() string {
	if s.Content == "" {
		return s.Placeholder
	}
	return s.Content
}
