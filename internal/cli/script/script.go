// Package script replays recorded input against an editing engine.
//
// A script declares fields and a list of batches. Each batch is handed to
// the engine as one unit; the notifications it produced and the final field
// snapshots make up the result.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/infrastructure/config"
)

// ErrInvalidScript is returned for scripts that decode but cannot run.
var ErrInvalidScript = errors.New("invalid script")

// Event types.
const (
	EventKey   = "key"
	EventVKey  = "vkey"
	EventText  = "text"
	EventPaste = "paste"
	EventFocus = "focus"
	EventBlur  = "blur"
	EventTick  = "tick"
)

// Script is a decoded replay file.
type Script struct {
	Name         string        `yaml:"name"`
	Editor       *EditorSpec   `yaml:"editor,omitempty"`
	Keyboard     *KeyboardSpec `yaml:"keyboard,omitempty"`
	Fields       []FieldSpec   `yaml:"fields"`
	NumberInputs []NumberSpec  `yaml:"number_inputs,omitempty"`
	Batches      [][]Event     `yaml:"batches"`
	// Expect maps field ids to their required final content.
	Expect map[string]string `yaml:"expect,omitempty"`

	path string
}

// EditorSpec overrides repeat timing, in milliseconds.
type EditorSpec struct {
	RepeatInitialDelayMs int `yaml:"repeat_initial_delay_ms,omitempty"`
	RepeatIntervalMs     int `yaml:"repeat_interval_ms,omitempty"`
	MaxRepeatsPerTick    int `yaml:"max_repeats_per_tick,omitempty"`
}

// KeyboardSpec shows the virtual keyboard so vkey events can be used.
type KeyboardSpec struct {
	Layout string `yaml:"layout,omitempty"`
}

// FieldSpec declares a text field.
type FieldSpec struct {
	ID          string   `yaml:"id"`
	Group       string   `yaml:"group,omitempty"`
	Content     string   `yaml:"content,omitempty"`
	Placeholder string   `yaml:"placeholder,omitempty"`
	FilterIn    []string `yaml:"filter_in,omitempty"`
	FilterOut   []string `yaml:"filter_out,omitempty"`
	MaxLength   *int     `yaml:"max_length,omitempty"`
	Focused     bool     `yaml:"focused,omitempty"`
}

// NumberSpec declares a number input.
type NumberSpec struct {
	ID      string `yaml:"id"`
	Group   string `yaml:"group,omitempty"`
	Min     int64  `yaml:"min"`
	Max     int64  `yaml:"max"`
	Value   int64  `yaml:"value"`
	Focused bool   `yaml:"focused,omitempty"`
}

// Event is one input of a batch. Which fields apply depends on Type.
type Event struct {
	Type string `yaml:"type"`
	// Key is a key name or single character (key), or a virtual key id (vkey).
	Key string `yaml:"key,omitempty"`
	// Action is "down" (default) or "up".
	Action  string `yaml:"action,omitempty"`
	At      int64  `yaml:"at,omitempty"`
	Virtual bool   `yaml:"virtual,omitempty"`
	Text    string `yaml:"text,omitempty"`
	Field   string `yaml:"field,omitempty"`
	Now     int64  `yaml:"now,omitempty"`
}

// Path returns the file the script was loaded from.
func (s *Script) Path() string { return s.path }

// Load reads and decodes the script at path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.path = path
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Parse decodes a script from data.
func Parse(data []byte) (*Script, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a script. Unknown keys are rejected.
func Decode(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty", ErrInvalidScript)
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	var problems []string
	for i, batch := range s.Batches {
		for j, ev := range batch {
			if err := ev.validate(); err != nil {
				problems = append(problems, fmt.Sprintf("batch %d event %d: %v", i, j, err))
			}
			if ev.Type == EventVKey && s.Keyboard == nil {
				problems = append(problems, fmt.Sprintf("batch %d event %d: vkey needs a keyboard section", i, j))
			}
		}
	}
	if err := config.Validate(s.Config()); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidScript, strings.Join(problems, "\n  - "))
	}
	return nil
}

func (e Event) validate() error {
	switch e.Type {
	case EventKey:
		if _, err := entity.ParseKey(e.Key); err != nil {
			return err
		}
	case EventVKey:
		if e.Key == "" {
			return errors.New("vkey needs a key id")
		}
	case EventFocus, EventBlur:
		if e.Field == "" {
			return fmt.Errorf("%s needs a field", e.Type)
		}
	case EventText, EventPaste, EventTick:
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}

	switch e.Action {
	case "", "down", "up":
	default:
		return fmt.Errorf("unknown action %q", e.Action)
	}
	return nil
}

// Config converts the script's declarations to an engine configuration.
// The virtual keyboard is shown only when the script declares one.
func (s *Script) Config() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Fields = nil
	cfg.NumberInputs = nil
	cfg.VirtualKeyboard.Enabled = s.Keyboard != nil
	if s.Keyboard != nil && s.Keyboard.Layout != "" {
		cfg.VirtualKeyboard.Layout = s.Keyboard.Layout
	}

	if e := s.Editor; e != nil {
		if e.RepeatInitialDelayMs > 0 {
			cfg.Editor.RepeatInitialDelayMs = e.RepeatInitialDelayMs
		}
		if e.RepeatIntervalMs > 0 {
			cfg.Editor.RepeatIntervalMs = e.RepeatIntervalMs
		}
		if e.MaxRepeatsPerTick > 0 {
			cfg.Editor.MaxRepeatsPerTick = e.MaxRepeatsPerTick
		}
	}

	for _, f := range s.Fields {
		cfg.Fields = append(cfg.Fields, config.FieldPreset{
			ID:          f.ID,
			Group:       f.Group,
			Content:     f.Content,
			Placeholder: f.Placeholder,
			FilterIn:    f.FilterIn,
			FilterOut:   f.FilterOut,
			MaxLength:   f.MaxLength,
			Focused:     f.Focused,
		})
	}
	for _, n := range s.NumberInputs {
		cfg.NumberInputs = append(cfg.NumberInputs, config.NumberInputPreset{
			ID:      n.ID,
			Group:   n.Group,
			Min:     n.Min,
			Max:     n.Max,
			Value:   n.Value,
			Focused: n.Focused,
		})
	}
	return cfg
}

func ms(v int64) time.Duration {
	return time.Duration(v) * time.Millisecond
}
