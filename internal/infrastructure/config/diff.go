package config

import (
	"fmt"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// Change is one configuration key whose value differs between two configs.
// Old or New is empty when the key was added or removed.
type Change struct {
	Key string
	Old string
	New string
}

// Diff lists the keys that differ between a and b, sorted by key. Keys are
// dotted TOML paths; array entries use an index ("fields[1].placeholder").
func Diff(a, b *Config) []Change {
	before := flatten(a)
	after := flatten(b)

	var changes []Change
	for key, old := range before {
		if next, ok := after[key]; !ok || next != old {
			changes = append(changes, Change{Key: key, Old: old, New: after[key]})
		}
	}
	for key, next := range after {
		if _, ok := before[key]; !ok {
			changes = append(changes, Change{Key: key, New: next})
		}
	}

	slices.SortFunc(changes, func(x, y Change) int {
		switch {
		case x.Key < y.Key:
			return -1
		case x.Key > y.Key:
			return 1
		}
		return 0
	})
	return changes
}

// FormatDiff renders changes one per line for display.
func FormatDiff(changes []Change) string {
	if len(changes) == 0 {
		return "No changes detected.\n"
	}
	var out []byte
	for _, c := range changes {
		switch {
		case c.Old == "":
			out = fmt.Appendf(out, "  + %s = %s\n", c.Key, c.New)
		case c.New == "":
			out = fmt.Appendf(out, "  - %s = %s\n", c.Key, c.Old)
		default:
			out = fmt.Appendf(out, "  ~ %s: %s -> %s\n", c.Key, c.Old, c.New)
		}
	}
	return string(out)
}

func flatten(cfg *Config) map[string]string {
	out := make(map[string]string)
	if cfg == nil {
		return out
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return out
	}
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return out
	}
	flattenInto(out, "", tree)
	return out
}

func flattenInto(out map[string]string, prefix string, v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flattenInto(out, key, child)
		}
	case []any:
		if len(t) > 0 {
			if _, tables := t[0].(map[string]any); tables {
				for i, child := range t {
					flattenInto(out, fmt.Sprintf("%s[%d]", prefix, i), child)
				}
				return
			}
		}
		out[prefix] = fmt.Sprint(t)
	default:
		out[prefix] = fmt.Sprint(t)
	}
}
