package entity

import (
	"fmt"
	"strconv"
)

// NumberInputConfig describes a numeric field.
type NumberInputConfig struct {
	ID          FieldID
	Group       string
	Min         int64
	Max         int64
	Value       int64
	Placeholder string
	Focused     bool
}

// NumberRange is an inclusive integer range.
type NumberRange struct {
	Min int64
	Max int64
}

// NewNumberRange validates min <= max.
func NewNumberRange(lo, hi int64) (NumberRange, error) {
	if lo > hi {
		return NumberRange{}, fmt.Errorf("%w: min %d > max %d", ErrInvalidRange, lo, hi)
	}
	return NumberRange{Min: lo, Max: hi}, nil
}

// Clamp constrains v to the range.
func (r NumberRange) Clamp(v int64) int64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Width is the longest decimal rendering of either bound, used as the
// field's max length.
func (r NumberRange) Width() int {
	return max(len(strconv.FormatInt(r.Min, 10)), len(strconv.FormatInt(r.Max, 10)))
}

// NumberFilterIn is the allow-list applied to number input fields.
var NumberFilterIn = []string{"[0-9-]+"}

// FieldConfig returns the text field configuration backing a number input.
func (c NumberInputConfig) FieldConfig(r NumberRange) FieldConfig {
	return FieldConfig{
		ID:          c.ID,
		Group:       c.Group,
		Content:     strconv.FormatInt(r.Clamp(c.Value), 10),
		Placeholder: c.Placeholder,
		FilterIn:    append([]string(nil), NumberFilterIn...),
		MaxLength:   MaxLen(r.Width()),
		Focused:     c.Focused,
	}
}
