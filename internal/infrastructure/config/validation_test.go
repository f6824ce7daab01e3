package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/textedit/internal/domain/entity"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"zero delay", func(c *Config) { c.Editor.RepeatInitialDelayMs = 0 }, "editor.repeat_initial_delay_ms"},
		{"uncapped catch-up", func(c *Config) { c.Editor.MaxRepeatsPerTick = 0 }, ""},
		{"negative catch-up cap", func(c *Config) { c.Editor.MaxRepeatsPerTick = -1 }, "editor.max_repeats_per_tick"},
		{"negative tick", func(c *Config) { c.Editor.TickIntervalMs = -5 }, "editor.tick_interval_ms"},
		{"bad layout", func(c *Config) { c.VirtualKeyboard.Layout = "dvorak" }, "virtual_keyboard.layout"},
		{"bad position", func(c *Config) { c.VirtualKeyboard.Position = "left" }, "virtual_keyboard.position"},
		{"bad pattern", func(c *Config) { c.Fields[0].FilterIn = []string{"[a-"} }, "fields[0]"},
		{"negative max length", func(c *Config) { c.Fields[1].MaxLength = entity.MaxLen(-1) }, "fields[1].max_length"},
		{"duplicate ids", func(c *Config) { c.Fields[1].ID = "name" }, `"name" already used by fields[0]`},
		{"number id clash", func(c *Config) { c.NumberInputs[0].ID = "email" }, "number_inputs[0].id"},
		{"number needs id", func(c *Config) { c.NumberInputs[0].ID = "" }, "number_inputs[0].id is required"},
		{"inverted range", func(c *Config) { c.NumberInputs[0].Min = 200 }, "number_inputs[0].min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
