package config

import (
	"fmt"
	"strings"

	"github.com/bnema/textedit/internal/domain/entity"
	"github.com/bnema/textedit/internal/domain/filter"
	"github.com/bnema/textedit/internal/logging"
)

// Validate checks a configuration the way Load does.
func Validate(config *Config) error {
	return validateConfig(config)
}

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateEditor(config)...)
	validationErrors = append(validationErrors, validateVirtualKeyboard(config)...)
	validationErrors = append(validationErrors, validateFields(config)...)

	// If there are validation errors, return them
	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if _, err := logging.ParseLevel(config.Logging.Level); err != nil {
		validationErrors = append(validationErrors, "logging.level must be one of trace, debug, info, warn, error")
	}
	switch config.Logging.Format {
	case "console", "json", "":
	default:
		validationErrors = append(validationErrors, "logging.format must be console or json")
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	return validationErrors
}

func validateEditor(config *Config) []string {
	var validationErrors []string
	positive := []struct {
		key   string
		value int
	}{
		{"editor.repeat_initial_delay_ms", config.Editor.RepeatInitialDelayMs},
		{"editor.repeat_interval_ms", config.Editor.RepeatIntervalMs},
		{"editor.notification_queue_size", config.Editor.NotificationQueueSize},
		{"editor.tick_interval_ms", config.Editor.TickIntervalMs},
	}
	for _, p := range positive {
		if p.value < 1 {
			validationErrors = append(validationErrors, fmt.Sprintf("%s must be positive (got %d)", p.key, p.value))
		}
	}
	if config.Editor.MaxRepeatsPerTick < 0 {
		validationErrors = append(validationErrors, "editor.max_repeats_per_tick must be non-negative")
	}
	return validationErrors
}

func validateVirtualKeyboard(config *Config) []string {
	var validationErrors []string
	if _, err := entity.LayoutByName(config.VirtualKeyboard.Layout); err != nil {
		validationErrors = append(validationErrors, "virtual_keyboard.layout must be qwerty or numeric")
	}
	if _, err := entity.ParseKeyboardPosition(config.VirtualKeyboard.Position); err != nil {
		validationErrors = append(validationErrors, "virtual_keyboard.position must be bottom or top")
	}
	return validationErrors
}

func validateFields(config *Config) []string {
	var validationErrors []string
	seen := make(map[string]string)

	claim := func(key, id string) {
		if id == "" {
			return
		}
		if other, dup := seen[id]; dup {
			validationErrors = append(validationErrors, fmt.Sprintf("%s.id %q already used by %s", key, id, other))
			return
		}
		seen[id] = key
	}

	for i, f := range config.Fields {
		key := fmt.Sprintf("fields[%d]", i)
		claim(key, f.ID)
		if f.MaxLength != nil && *f.MaxLength < 0 {
			validationErrors = append(validationErrors, key+".max_length must be non-negative")
		}
		if _, err := filter.Compile(f.FilterIn, f.FilterOut); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("%s: %v", key, err))
		}
	}

	for i, n := range config.NumberInputs {
		key := fmt.Sprintf("number_inputs[%d]", i)
		if n.ID == "" {
			validationErrors = append(validationErrors, key+".id is required")
		}
		claim(key, n.ID)
		if n.Min > n.Max {
			validationErrors = append(validationErrors, fmt.Sprintf("%s.min (%d) must not exceed max (%d)", key, n.Min, n.Max))
		}
	}
	return validationErrors
}
