// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/textedit/internal/cli/styles"
	"github.com/bnema/textedit/internal/domain/build"
	"github.com/bnema/textedit/internal/infrastructure/config"
	"github.com/bnema/textedit/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	// ConfigErr is set when the config file could not be loaded. Config then
	// holds the defaults.
	ConfigErr error

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp loads configuration from configFile, or from the standard
// locations when it is empty, and sets up a stderr logger.
func NewApp(configFile string) (*App, error) {
	mgr, cfg, cfgErr := loadConfig(configFile)

	logCfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(cfg.Logging.Level); err == nil {
		logCfg.Level = level
	}
	logCfg.Format = cfg.Logging.Format
	logCfg.TimeFormat = "15:04:05"
	logger := logging.New(logging.ApplyEnv(logCfg))
	ctx := logging.WithContext(context.Background(), logger)

	if cfgErr != nil {
		logger.Debug().Err(cfgErr).Msg("using default config")
	}

	return &App{
		Config:    cfg,
		Manager:   mgr,
		Theme:     styles.NewTheme(),
		ConfigErr: cfgErr,
		ctx:       ctx,
	}, nil
}

// UseFileLogging redirects the app logger to a size-rotated file, for
// commands that own the terminal. It returns the log file path.
func (a *App) UseFileLogging() (string, error) {
	dir := a.Config.Logging.LogDir
	if dir == "" {
		var err error
		if dir, err = config.GetLogDir(); err != nil {
			return "", err
		}
	}

	rotator, err := logging.NewLogRotator(logging.RotatorConfig{
		Dir:        dir,
		FileName:   logging.DefaultLogFile,
		MaxSizeMB:  a.Config.Logging.MaxSizeMB,
		MaxBackups: a.Config.Logging.MaxBackups,
		MaxAgeDays: a.Config.Logging.MaxAgeDays,
		Compress:   a.Config.Logging.Compress,
	})
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}

	logCfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(a.Config.Logging.Level); err == nil {
		logCfg.Level = level
	}
	logCfg.Format = a.Config.Logging.Format
	logCfg.NoColor = true
	logger := logging.NewWithWriter(logging.ApplyEnv(logCfg), rotator)

	if a.logCleanup != nil {
		a.logCleanup()
	}
	a.ctx = logging.WithContext(context.Background(), logger)
	a.logCleanup = func() { _ = rotator.Close() }
	return rotator.Path(), nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
		a.logCleanup = nil
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// ConfigFile returns the file configuration is read from, or the default
// location when no manager could be created.
func (a *App) ConfigFile() string {
	if a.Manager != nil && a.Manager.ConfigFile() != "" {
		return a.Manager.ConfigFile()
	}
	path, err := config.GetConfigFile()
	if err != nil {
		return ""
	}
	return path
}

// loadConfig never returns a nil config: on failure the defaults are used
// and the error is returned alongside.
func loadConfig(configFile string) (*config.Manager, *config.Config, error) {
	var (
		mgr *config.Manager
		err error
	)
	if configFile != "" {
		mgr, err = config.NewManagerWithFile(configFile)
	} else {
		mgr, err = config.NewManager()
	}
	if err != nil {
		return nil, config.DefaultConfig(), err
	}

	if err := mgr.Load(); err != nil {
		return mgr, config.DefaultConfig(), err
	}
	return mgr, mgr.Get(), nil
}
