package config

import (
	"time"

	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/domain/service"
)

// Default configuration constants
const (
	// Logging defaults
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultLogMaxSizeMB  = 10 // MB
	defaultLogMaxBackups = 3
	defaultMaxLogAgeDays = 7 // days

	// Editor defaults
	defaultRepeatInitialDelayMs  = 500
	defaultRepeatIntervalMs      = 100
	defaultMaxRepeatsPerTick     = service.DefaultMaxRepeatsPerTick
	defaultNotificationQueueSize = 256
	defaultTickIntervalMs        = 16 // ~60 ticks per second

	// Virtual keyboard defaults
	defaultKeyboardLayout   = entity.LayoutQwerty
	defaultKeyboardPosition = "bottom"
)

// DefaultConfig returns the default configuration: the demo form with a
// name, an email, a search box in its own group and an age input.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultMaxLogAgeDays,
		},
		Editor: EditorConfig{
			RepeatInitialDelayMs:  defaultRepeatInitialDelayMs,
			RepeatIntervalMs:      defaultRepeatIntervalMs,
			MaxRepeatsPerTick:     defaultMaxRepeatsPerTick,
			NotificationQueueSize: defaultNotificationQueueSize,
			TickIntervalMs:        defaultTickIntervalMs,
		},
		VirtualKeyboard: VirtualKeyboardConfig{
			Enabled:  true,
			Layout:   defaultKeyboardLayout,
			Position: defaultKeyboardPosition,
		},
		Fields: []FieldPreset{
			{
				ID:          "name",
				Group:       "form",
				Placeholder: "Your name",
				FilterOut:   []string{"[0-9]"},
				MaxLength:   entity.MaxLen(24),
				Focused:     true,
			},
			{
				ID:          "email",
				Group:       "form",
				Placeholder: "you@example.com",
				FilterOut:   []string{`\s`},
				MaxLength:   entity.MaxLen(48),
			},
			{
				ID:          "search",
				Group:       "toolbar",
				Placeholder: "Search...",
			},
		},
		NumberInputs: []NumberInputPreset{
			{
				ID:    "age",
				Group: "form",
				Min:   0,
				Max:   120,
				Value: 30,
			},
		},
	}
}

// RepeatConfig converts the editor settings to key repeat timing.
func (e EditorConfig) RepeatConfig() service.RepeatConfig {
	return service.RepeatConfig{
		InitialDelay: time.Duration(e.RepeatInitialDelayMs) * time.Millisecond,
		Interval:     time.Duration(e.RepeatIntervalMs) * time.Millisecond,
		MaxPerTick:   e.MaxRepeatsPerTick,
	}
}

// TickInterval returns the demo tick period.
func (e EditorConfig) TickInterval() time.Duration {
	return time.Duration(e.TickIntervalMs) * time.Millisecond
}
