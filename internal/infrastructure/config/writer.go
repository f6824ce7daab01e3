package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// schemaDirective lets taplo-based editors pick up the generated schema.
const schemaDirective = "#:schema ./" + schemaFileName + "\n\n"

// EncodeTOML renders the configuration as TOML. Struct fields are written in
// definition order (go-toml v2 behavior), so sections follow Config.
func EncodeTOML(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)

	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteConfigOrdered writes the configuration to disk with consistent ordering.
func WriteConfigOrdered(cfg *Config, path string) error {
	data, err := EncodeTOML(cfg)
	if err != nil {
		return err
	}

	out := append([]byte(schemaDirective), data...)
	if err := os.WriteFile(path, out, filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
