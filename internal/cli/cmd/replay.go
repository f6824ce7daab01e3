package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/textedit/internal/cli/script"
)

var replayFormat string

// errReplayFailed makes the process exit non-zero after printing results.
var errReplayFailed = errors.New("some scripts failed their expectations")

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>...",
	Short: "Replay recorded input scripts",
	Long: `Run one or more YAML input scripts, each against its own engine, and print
the change notifications of every batch and the final field states.

Scripts run concurrently. A script fails when its expect section does not
match the final field contents.

Examples:
  textedit replay login.yaml
  textedit replay --format json scripts/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVarP(&replayFormat, "format", "f", script.FormatText, "output format: text, json, yaml")
}

func runReplay(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	results, err := script.RunFiles(app.Ctx(), args)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if err := script.Write(os.Stdout, results, replayFormat); err != nil {
		return err
	}
	for _, r := range results {
		if !r.Passed() {
			return errReplayFailed
		}
	}
	return nil
}
