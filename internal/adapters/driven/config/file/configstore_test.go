package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
port = 3001
allowed_origins = ["http://localhost:3000", "https://churchillfalls.example"]

[voice]
monthly_budget = 50000
stability = 0.4
similarity_boost = 1

[documents]
dir = "./content"
watch = true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	store, err := NewConfigStore("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFile, store.Path())
}

func TestNewConfigStore_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	store, err := NewConfigStore(path)
	require.NoError(t, err)

	_, ok := store.Get("server.port")
	assert.False(t, ok)
	assert.NoFileExists(t, path, "constructor must not create the file")
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "[server\nport = ")

	_, err := NewConfigStore(path)
	assert.Error(t, err)
}

func TestConfigStore_FlattensTables(t *testing.T) {
	store, err := NewConfigStore(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 3001, store.GetInt("server.port"))
	assert.Equal(t, []string{"http://localhost:3000", "https://churchillfalls.example"},
		store.GetStringSlice("server.allowed_origins"))
	assert.Equal(t, 50000, store.GetInt("voice.monthly_budget"))
	assert.InDelta(t, 0.4, store.GetFloat("voice.stability"), 1e-9)
	assert.InDelta(t, 1.0, store.GetFloat("voice.similarity_boost"), 1e-9, "integers convert to float")
	assert.Equal(t, "./content", store.GetString("documents.dir"))
	assert.True(t, store.GetBool("documents.watch"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store, err := NewConfigStore(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string from int", store.GetString("server.port"), ""},
		{"int from string", store.GetInt("documents.dir"), 0},
		{"float from string", store.GetFloat("documents.dir"), 0.0},
		{"bool from int", store.GetBool("server.port"), false},
		{"slice from string", store.GetStringSlice("documents.dir"), []string(nil)},
		{"missing slice", store.GetStringSlice("nope"), []string(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Keys(t *testing.T) {
	store, err := NewConfigStore(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"documents.dir",
		"documents.watch",
		"server.allowed_origins",
		"server.port",
		"voice.monthly_budget",
		"voice.similarity_boost",
		"voice.stability",
	}, store.Keys())
}

func TestConfigStore_NeverWrites(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	store, err := NewConfigStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Load())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestConfigStore_Reload(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 3001\n")
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 8080\n"), 0600))
	require.NoError(t, store.Load())
	assert.Equal(t, 8080, store.GetInt("server.port"))
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"a": map[string]any{
			"b": int64(1),
			"c": map[string]any{"d": "x"},
		},
		"top": true,
	}

	assert.Equal(t, map[string]any{"a.b": int64(1), "a.c.d": "x", "top": true}, flattenMap(nested, ""))
}
