package entity

import (
	"errors"

	"github.com/bnema/textedit/internal/domain/filter"
)

// Sentinel errors for field configuration and lookup.
var (
	// ErrInvalidPattern reports an unparseable filter pattern at field creation.
	ErrInvalidPattern = filter.ErrInvalidPattern
	// ErrInvalidMaxLength reports a negative max length.
	ErrInvalidMaxLength = errors.New("invalid max length")
	// ErrFieldNotFound reports an unknown field id.
	ErrFieldNotFound = errors.New("field not found")
	// ErrDuplicateField reports a field id that is already registered.
	ErrDuplicateField = errors.New("field already exists")
	// ErrInvalidRange reports a number input whose min is greater than its max.
	ErrInvalidRange = errors.New("invalid number range")
	// ErrUnknownLayout reports a virtual keyboard layout name that is not built in.
	ErrUnknownLayout = errors.New("unknown virtual keyboard layout")
	// ErrUnknownKey reports a key name that cannot be parsed.
	ErrUnknownKey = errors.New("unknown key")
)
