// Package config loads, validates and watches the textedit configuration.
package config

import (
	"github.com/bnema/textedit/internal/domain/entity"
)

// Config is the complete configuration file.
type Config struct {
	Logging         LoggingConfig         `mapstructure:"logging" json:"logging" toml:"logging"`
	Editor          EditorConfig          `mapstructure:"editor" json:"editor" toml:"editor"`
	VirtualKeyboard VirtualKeyboardConfig `mapstructure:"virtual_keyboard" json:"virtual_keyboard" toml:"virtual_keyboard"`
	// Fields are created by the demo host, in order.
	Fields []FieldPreset `mapstructure:"fields" json:"fields,omitempty" toml:"fields,omitempty"`
	// NumberInputs are created after Fields.
	NumberInputs []NumberInputPreset `mapstructure:"number_inputs" json:"number_inputs,omitempty" toml:"number_inputs,omitempty"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" json:"format" toml:"format" jsonschema:"enum=console,enum=json"`
	// LogDir is where the demo writes its log file. Empty uses the XDG state dir.
	LogDir     string `mapstructure:"log_dir" json:"log_dir" toml:"log_dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" json:"max_size_mb" toml:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups" toml:"max_backups" jsonschema:"minimum=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" json:"max_age_days" toml:"max_age_days" jsonschema:"minimum=0"`
	Compress   bool   `mapstructure:"compress" json:"compress" toml:"compress"`
}

// EditorConfig holds engine timing and queue settings.
type EditorConfig struct {
	// RepeatInitialDelayMs is how long a virtual key is held before it repeats.
	RepeatInitialDelayMs int `mapstructure:"repeat_initial_delay_ms" json:"repeat_initial_delay_ms" toml:"repeat_initial_delay_ms" jsonschema:"minimum=0"` //nolint:lll // struct tags exceed lll limit
	// RepeatIntervalMs is the time between two repeats.
	RepeatIntervalMs int `mapstructure:"repeat_interval_ms" json:"repeat_interval_ms" toml:"repeat_interval_ms" jsonschema:"minimum=1"`
	// MaxRepeatsPerTick caps catch-up repeats after a stalled host. Zero disables the cap.
	MaxRepeatsPerTick int `mapstructure:"max_repeats_per_tick" json:"max_repeats_per_tick" toml:"max_repeats_per_tick" jsonschema:"minimum=0"` //nolint:lll // struct tags exceed lll limit
	// NotificationQueueSize bounds undrained change notifications.
	NotificationQueueSize int `mapstructure:"notification_queue_size" json:"notification_queue_size" toml:"notification_queue_size" jsonschema:"minimum=0"` //nolint:lll // struct tags exceed lll limit
	// TickIntervalMs is how often the demo host sends ticks.
	TickIntervalMs int `mapstructure:"tick_interval_ms" json:"tick_interval_ms" toml:"tick_interval_ms" jsonschema:"minimum=1"`
}

// VirtualKeyboardConfig configures the on-screen keyboard of the demo.
type VirtualKeyboardConfig struct {
	Enabled  bool   `mapstructure:"enabled" json:"enabled" toml:"enabled"`
	Layout   string `mapstructure:"layout" json:"layout" toml:"layout" jsonschema:"enum=qwerty,enum=numeric"`
	Position string `mapstructure:"position" json:"position" toml:"position" jsonschema:"enum=bottom,enum=top"`
}

// FieldPreset declares one text field.
type FieldPreset struct {
	ID          string   `mapstructure:"id" json:"id" toml:"id"`
	Group       string   `mapstructure:"group" json:"group,omitempty" toml:"group,omitempty"`
	Content     string   `mapstructure:"content" json:"content,omitempty" toml:"content,omitempty"`
	Placeholder string   `mapstructure:"placeholder" json:"placeholder,omitempty" toml:"placeholder,omitempty"`
	FilterIn    []string `mapstructure:"filter_in" json:"filter_in,omitempty" toml:"filter_in,omitempty"`
	FilterOut   []string `mapstructure:"filter_out" json:"filter_out,omitempty" toml:"filter_out,omitempty"`
	// MaxLength is unbounded when absent.
	MaxLength *int `mapstructure:"max_length" json:"max_length,omitempty" toml:"max_length,omitempty" jsonschema:"minimum=0"`
	Focused   bool `mapstructure:"focused" json:"focused,omitempty" toml:"focused,omitempty"`
}

// NumberInputPreset declares one clamped integer input.
type NumberInputPreset struct {
	ID          string `mapstructure:"id" json:"id" toml:"id"`
	Group       string `mapstructure:"group" json:"group,omitempty" toml:"group,omitempty"`
	Min         int64  `mapstructure:"min" json:"min" toml:"min"`
	Max         int64  `mapstructure:"max" json:"max" toml:"max"`
	Value       int64  `mapstructure:"value" json:"value" toml:"value"`
	Placeholder string `mapstructure:"placeholder" json:"placeholder,omitempty" toml:"placeholder,omitempty"`
	Focused     bool   `mapstructure:"focused" json:"focused,omitempty" toml:"focused,omitempty"`
}

// ToFieldConfig converts the preset to an engine field configuration.
func (p FieldPreset) ToFieldConfig() entity.FieldConfig {
	cfg := entity.FieldConfig{
		ID:          entity.FieldID(p.ID),
		Group:       p.Group,
		Content:     p.Content,
		Placeholder: p.Placeholder,
		FilterIn:    append([]string(nil), p.FilterIn...),
		FilterOut:   append([]string(nil), p.FilterOut...),
		Focused:     p.Focused,
	}
	if p.MaxLength != nil {
		cfg.MaxLength = entity.MaxLen(*p.MaxLength)
	}
	return cfg
}

// ToNumberInputConfig converts the preset to a number input configuration.
func (p NumberInputPreset) ToNumberInputConfig() entity.NumberInputConfig {
	return entity.NumberInputConfig{
		ID:          entity.FieldID(p.ID),
		Group:       p.Group,
		Min:         p.Min,
		Max:         p.Max,
		Value:       p.Value,
		Placeholder: p.Placeholder,
		Focused:     p.Focused,
	}
}
