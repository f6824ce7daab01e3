// Package filter decides whether text may be inserted into a field.
//
// A filter set holds two ordered pattern lists. The allow-list (filter-in)
// must match the whole candidate when it is non-empty; the deny-list
// (filter-out) rejects the candidate when any of its patterns occurs in it.
// Patterns are RE2 expressions compiled once, so evaluation is linear in the
// candidate length.
package filter

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidPattern is returned when a pattern cannot be compiled.
var ErrInvalidPattern = errors.New("invalid filter pattern")

// Set is a compiled allow-list / deny-list pair. The zero value and a nil
// *Set reject everything.
type Set struct {
	in     []*regexp.Regexp
	out    []*regexp.Regexp
	inSrc  []string
	outSrc []string
	ready  bool
}

// Compile validates and compiles both pattern lists.
// The first unparseable pattern aborts compilation and is reported with its
// list name and index.
func Compile(filterIn, filterOut []string) (*Set, error) {
	s := &Set{
		in:     make([]*regexp.Regexp, 0, len(filterIn)),
		out:    make([]*regexp.Regexp, 0, len(filterOut)),
		inSrc:  append([]string(nil), filterIn...),
		outSrc: append([]string(nil), filterOut...),
	}

	for i, p := range filterIn {
		// Allow-list patterns must cover the whole candidate.
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("%w: filter_in[%d] %q: %v", ErrInvalidPattern, i, p, err)
		}
		s.in = append(s.in, re)
	}

	for i, p := range filterOut {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: filter_out[%d] %q: %v", ErrInvalidPattern, i, p, err)
		}
		s.out = append(s.out, re)
	}

	s.ready = true
	return s, nil
}

// MustCompile is like Compile but panics on error. Intended for patterns
// known at build time.
func MustCompile(filterIn, filterOut []string) *Set {
	s, err := Compile(filterIn, filterOut)
	if err != nil {
		panic(err)
	}
	return s
}

// Accepts reports whether candidate clears both lists.
func (s *Set) Accepts(candidate string) bool {
	if s == nil || !s.ready {
		return false
	}

	if len(s.in) > 0 {
		matched := false
		for _, re := range s.in {
			if re.MatchString(candidate) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range s.out {
		if re.MatchString(candidate) {
			return false
		}
	}

	return true
}

// In returns the allow-list patterns as configured.
func (s *Set) In() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.inSrc...)
}

// Out returns the deny-list patterns as configured.
func (s *Set) Out() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.outSrc...)
}

// Accepts compiles the lists and evaluates candidate in one call.
// Unparseable patterns fail closed.
func Accepts(candidate string, filterIn, filterOut []string) bool {
	s, err := Compile(filterIn, filterOut)
	if err != nil {
		return false
	}
	return s.Accepts(candidate)
}
