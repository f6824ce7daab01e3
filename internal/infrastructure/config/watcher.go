package config

import (
	"slices"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/bnema/textedit/internal/logging"
)

// SetLogger makes the watcher log to l instead of stderr. Call it before
// Watch.
func (m *Manager) SetLogger(l zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = &l
}

func (m *Manager) logger() zerolog.Logger {
	if m.log != nil {
		return *m.log
	}
	return logging.NewFromEnv()
}

// Watch reloads the config whenever the file changes on disk. Invalid
// edits are logged and the previous config stays in effect.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	log := m.logger()
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config file changed")
		changes, err := m.reloadAndNotify()
		if err != nil {
			log.Warn().Err(err).Msg("config reload rejected")
			return
		}
		for _, c := range changes {
			log.Debug().Str("key", c.Key).Str("old", c.Old).Str("new", c.New).Msg("config value changed")
		}
	})
	m.viper.WatchConfig()

	m.watching = true
	return nil
}

// OnConfigChange registers a callback run after every successful reload.
// Callbacks receive a copy and run outside the manager lock.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// Reload rereads the file and notifies callbacks, as a watched change would.
func (m *Manager) Reload() error {
	_, err := m.reloadAndNotify()
	return err
}

// reloadAndNotify swaps in the reread config and returns what changed.
// Nothing is notified when the new config does not validate.
func (m *Manager) reloadAndNotify() ([]Change, error) {
	m.mu.Lock()
	previous := m.config
	next, err := m.read()
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.config = next
	callbacks := slices.Clone(m.callbacks)
	m.mu.Unlock()

	var changes []Change
	if previous != nil {
		changes = Diff(previous, next)
	}
	for _, callback := range callbacks {
		callback(next.Clone())
	}
	return changes, nil
}

// read parses and validates the file. m.mu must be held.
func (m *Manager) read() (*Config, error) {
	if err := m.viper.ReadInConfig(); err != nil {
		return nil, err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}
