package script

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write renders results in format.
func Write(w io.Writer, results []*Result, format string) error {
	switch format {
	case FormatText, "":
		return writeText(w, results)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

func writeText(w io.Writer, results []*Result) error {
	var sb strings.Builder
	for _, r := range results {
		status := "ok"
		if !r.Passed() {
			status = "FAIL"
		}
		fmt.Fprintf(&sb, "%s  %s\n", status, r.Name)

		for _, b := range r.Batches {
			for _, c := range b.Changes {
				fmt.Fprintf(&sb, "  [%d] %s = %q\n", b.Index, c.FieldID, c.Text)
			}
			for _, n := range b.Numbers {
				fmt.Fprintf(&sb, "  [%d] %s -> %d\n", b.Index, n.FieldID, n.Value)
			}
		}
		for _, f := range r.Fields {
			marker := " "
			if f.Focused {
				marker = "*"
			}
			fmt.Fprintf(&sb, "  %s %s %q (cursor %d)\n", marker, f.ID, f.Content, f.Cursor)
		}
		for _, failure := range r.Failures {
			fmt.Fprintf(&sb, "  ! %s\n", failure)
		}
	}
	fmt.Fprintln(&sb, Summary(results))

	_, err := io.WriteString(w, sb.String())
	return err
}
