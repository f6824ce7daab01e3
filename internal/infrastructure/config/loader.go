package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	file      string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	log       *zerolog.Logger
}

// NewManager creates a manager that searches the XDG config directory and
// then the current directory for config.toml.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Configure Viper for TOML as default format
	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	return newManager(v, "")
}

// NewManagerWithFile creates a manager bound to one config file.
func NewManagerWithFile(path string) (*Manager, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	return newManager(v, path)
}

func newManager(v *viper.Viper, file string) (*Manager, error) {
	// TEXTEDIT_EDITOR_REPEAT_INTERVAL_MS overrides editor.repeat_interval_ms
	v.SetEnvPrefix("TEXTEDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names shared with logging.NewFromEnv
	if err := v.BindEnv("logging.level", "TEXTEDIT_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind TEXTEDIT_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "TEXTEDIT_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind TEXTEDIT_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		file:      file,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var configFileNotFoundError viper.ConfigFileNotFoundError
	if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, fs.ErrNotExist) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile = m.file
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	path, createErr := m.createDefaultConfig()
	if createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			path,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf(
			"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
			rereadErr,
		)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		configFile := m.viper.ConfigFileUsed()
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			configFile,
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	config.VirtualKeyboard.Layout = strings.ToLower(strings.TrimSpace(config.VirtualKeyboard.Layout))
	config.VirtualKeyboard.Position = strings.ToLower(strings.TrimSpace(config.VirtualKeyboard.Position))

	if config.VirtualKeyboard.Layout == "" {
		config.VirtualKeyboard.Layout = defaultKeyboardLayout
	}
	if config.VirtualKeyboard.Position == "" {
		config.VirtualKeyboard.Position = defaultKeyboardPosition
	}
	for i := range config.Fields {
		config.Fields[i].ID = strings.TrimSpace(config.Fields[i].ID)
	}
	for i := range config.NumberInputs {
		config.NumberInputs[i].ID = strings.TrimSpace(config.NumberInputs[i].ID)
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	// Return a copy to prevent external modification
	return m.config.Clone()
}

// ConfigFile returns the path to the configuration file being used.
func (m *Manager) ConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return m.file
}

// createDefaultConfig writes the defaults and the JSON schema next to them.
func (m *Manager) createDefaultConfig() (string, error) {
	configFile := m.file
	if configFile == "" {
		var err error
		if configFile, err = GetConfigFile(); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return configFile, err
	}
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return configFile, err
	}
	if err := WriteSchemaFile(filepath.Join(filepath.Dir(configFile), schemaFileName)); err != nil {
		return configFile, err
	}

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s (TOML format)\n", configFile)
	return configFile, nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setLoggingDefaults(defaults)
	m.setEditorDefaults(defaults)
	m.setVirtualKeyboardDefaults(defaults)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

func (m *Manager) setEditorDefaults(defaults *Config) {
	m.viper.SetDefault("editor.repeat_initial_delay_ms", defaults.Editor.RepeatInitialDelayMs)
	m.viper.SetDefault("editor.repeat_interval_ms", defaults.Editor.RepeatIntervalMs)
	m.viper.SetDefault("editor.max_repeats_per_tick", defaults.Editor.MaxRepeatsPerTick)
	m.viper.SetDefault("editor.notification_queue_size", defaults.Editor.NotificationQueueSize)
	m.viper.SetDefault("editor.tick_interval_ms", defaults.Editor.TickIntervalMs)
}

func (m *Manager) setVirtualKeyboardDefaults(defaults *Config) {
	m.viper.SetDefault("virtual_keyboard.enabled", defaults.VirtualKeyboard.Enabled)
	m.viper.SetDefault("virtual_keyboard.layout", defaults.VirtualKeyboard.Layout)
	m.viper.SetDefault("virtual_keyboard.position", defaults.VirtualKeyboard.Position)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Fields = make([]FieldPreset, len(c.Fields))
	for i, f := range c.Fields {
		f.FilterIn = append([]string(nil), f.FilterIn...)
		f.FilterOut = append([]string(nil), f.FilterOut...)
		if f.MaxLength != nil {
			n := *f.MaxLength
			f.MaxLength = &n
		}
		out.Fields[i] = f
	}
	out.NumberInputs = append([]NumberInputPreset(nil), c.NumberInputs...)
	return &out
}
