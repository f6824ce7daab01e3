package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConfigOrdered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteConfigOrdered(DefaultConfig(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "#:schema ./config.schema.json"))
	logging := strings.Index(text, "[logging]")
	editor := strings.Index(text, "[editor]")
	fields := strings.Index(text, "[[fields]]")
	require.True(t, logging >= 0 && editor >= 0 && fields >= 0)
	assert.Less(t, logging, editor, "sections follow struct order")
	assert.Less(t, editor, fields)

	mgr, err := NewManagerWithFile(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())
	assert.Empty(t, Diff(DefaultConfig(), mgr.Get()), "written defaults load back unchanged")
}

func TestWriteConfigOrdered_Nil(t *testing.T) {
	assert.Error(t, WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "x.toml")))
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "textedit configuration", schema["title"])
	assert.Contains(t, string(data), "repeat_interval_ms")
	assert.Contains(t, string(data), "number_inputs")
}

func TestDiff(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	b.Editor.RepeatIntervalMs = 50
	b.Fields[2].Placeholder = "Find"
	b.Fields = append(b.Fields, FieldPreset{ID: "extra"})

	changes := Diff(a, b)
	keys := make([]string, len(changes))
	for i, c := range changes {
		keys[i] = c.Key
	}

	assert.Contains(t, keys, "editor.repeat_interval_ms")
	assert.Contains(t, keys, "fields[2].placeholder")
	assert.Contains(t, keys, "fields[3].id")

	out := FormatDiff(changes)
	assert.Contains(t, out, "~ editor.repeat_interval_ms: 100 -> 50")
	assert.Contains(t, out, "+ fields[3].id = extra")
	assert.Equal(t, "No changes detected.\n", FormatDiff(nil))
}
