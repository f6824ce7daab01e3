package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/textedit/internal/bootstrap"
	"github.com/bnema/textedit/internal/cli/model"
	"github.com/bnema/textedit/internal/infrastructure/clipboard"
	"github.com/bnema/textedit/internal/infrastructure/config"
	"github.com/bnema/textedit/internal/logging"
)

var demoNoWatch bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Edit the configured fields in the terminal",
	Long: `Open an interactive form built from the [[fields]] and [[number_inputs]]
of the config file.

Typing goes to the focused field. Click a field to focus it, click outside to
blur. The on-screen keyboard at the bottom repeats a key while the mouse
button is held. Edits to the config file are applied live.

Logs are written to $XDG_STATE_HOME/textedit/logs/textedit.log since the demo
owns the terminal.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().BoolVar(&demoNoWatch, "no-watch", false, "do not reload the config file on change")
}

func runDemo(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	if app.ConfigErr != nil {
		return app.ConfigErr
	}

	logPath, err := app.UseFileLogging()
	if err != nil {
		return err
	}
	ctx := app.Ctx()
	log := logging.FromContext(ctx)
	log.Info().Str("config", app.ConfigFile()).Str("log", logPath).Msg("demo starting")

	engine, err := bootstrap.NewEngine(ctx, app.Config, clipboard.New())
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer engine.Close()

	var opts []model.EditorOption
	if !demoNoWatch && app.Manager != nil {
		reloads := make(chan *config.Config, 1)
		app.Manager.OnConfigChange(func(cfg *config.Config) {
			// Keep only the newest config if the UI is behind.
			select {
			case reloads <- cfg:
			default:
				select {
				case <-reloads:
				default:
				}
				reloads <- cfg
			}
		})
		app.Manager.SetLogger(*log)
		if err := app.Manager.Watch(); err != nil {
			log.Warn().Err(err).Msg("config watch unavailable")
		}
		opts = append(opts, model.WithReloads(reloads))
	}

	m := model.NewEditorModel(ctx, app.Theme, engine, app.Config.Editor.TickInterval(), opts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	log.Info().Msg("demo finished")
	return nil
}
