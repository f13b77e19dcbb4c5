package opython

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())

	var nilCfg *Config
	assert.Equal(t, DefaultMaxDepth, nilCfg.maxDepth())
}

func TestParseConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := ParseConfig([]byte(`
path:
  - ` + dir + `
preload:
  - json
signals: true
max_depth: 32
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, []string{dir}, cfg.Path)
	assert.Equal(t, []string{"json"}, cfg.Preload)
	assert.True(t, cfg.Signals)
	assert.Equal(t, 32, cfg.MaxDepth)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("preload: [os]\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", "path: [unclosed"},
		{"home is not a dir", "home: /does/not/exist/anywhere"},
		{"depth too large", "max_depth: 100000"},
		{"negative depth", "max_depth: -1"},
		{"log level", "log_level: loud"},
		{"empty preload", "preload: ['']"},
		{"path is not a dir", "path: [/does/not/exist/anywhere]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opython.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 8\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxDepth)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigSchema(t *testing.T) {
	data, err := ConfigSchema()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok, "schema has properties")
	for _, key := range []string{"home", "path", "preload", "signals", "max_depth", "log_level"} {
		assert.Contains(t, props, key)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(&Config{MaxDepth: 5000})
	assert.Error(t, err)

	_, err = NewCore(&Config{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestMaxDepthConfig(t *testing.T) {
	i := newInterpreter(&fakeRuntime{}, &Config{MaxDepth: 2}, true)

	// depth is checked before anything touches python
	_, err := i.toPython([]interface{}{1}, 3)
	assert.ErrorIs(t, err, ErrRecursion)
}
