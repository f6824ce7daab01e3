package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/textedit/internal/cli/styles"
	"github.com/bnema/textedit/internal/infrastructure/config"
)

var (
	configForce      bool
	configSchemaPath string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show where the configuration lives, write defaults, generate the JSON schema and print the effective settings.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Write config.toml with every default setting, and config.schema.json next to
it. An existing file is kept unless --force is given.`,
	RunE: runConfigInit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print or write the JSON schema of the config file",
	RunE:  runConfigSchema,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Validate and print the effective configuration",
	Long: `Print the configuration after defaults and TEXTEDIT_* environment
overrides are applied, as TOML.`,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configInitCmd, configSchemaCmd, configShowCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
	configSchemaCmd.Flags().StringVarP(&configSchemaPath, "output", "o", "", "write the schema to this file instead of stdout")
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	path := app.ConfigFile()
	_, statErr := os.Stat(path)
	fmt.Println(styles.NewConfigRenderer(app.Theme).RenderConfigInfo(path, statErr == nil))
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	path := configFile
	if path == "" {
		if path, err = config.GetConfigFile(); err != nil {
			return err
		}
	}

	// Loading the app may already have created the file; only a file with
	// user content needs --force.
	if _, statErr := os.Stat(path); statErr == nil && !configForce && (app.ConfigErr != nil || !isDefault(app.Config)) {
		fmt.Println(renderer.RenderExists(path))
		return nil
	} else if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
		return statErr
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := config.WriteConfigOrdered(config.DefaultConfig(), path); err != nil {
		return err
	}
	schemaPath := filepath.Join(filepath.Dir(path), "config.schema.json")
	if err := config.WriteSchemaFile(schemaPath); err != nil {
		return err
	}

	fmt.Print(renderer.RenderWritten("defaults", path))
	fmt.Println(renderer.RenderWritten("schema", schemaPath))
	return nil
}

func isDefault(cfg *config.Config) bool {
	return len(config.Diff(config.DefaultConfig(), cfg)) == 0
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	if configSchemaPath != "" {
		if err := config.WriteSchemaFile(configSchemaPath); err != nil {
			return err
		}
		if app := GetApp(); app != nil {
			fmt.Println(styles.NewConfigRenderer(app.Theme).RenderWritten("schema", configSchemaPath))
		}
		return nil
	}

	data, err := config.GenerateSchema()
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	if app.ConfigErr != nil {
		fmt.Fprintln(os.Stderr, renderer.RenderError(app.ConfigErr))
		return app.ConfigErr
	}

	data, err := config.EncodeTOML(app.Config)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, renderer.RenderValid(app.ConfigFile(), len(app.Config.Fields), len(app.Config.NumberInputs)))
	fmt.Print(string(data))
	return nil
}
