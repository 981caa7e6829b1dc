package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/quickmeals/internal/ai"
	"github.com/hammamikhairi/quickmeals/internal/logger"
	"github.com/hammamikhairi/quickmeals/internal/storage"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quickmeals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, ".quickmeals", cfg.DataDir)
	assert.Equal(t, storage.DriverFile, cfg.Store)
	assert.Equal(t, "recipes", cfg.SnapshotKey)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 15, cfg.DefaultCookingTime)
	assert.Equal(t, logger.LevelNormal, cfg.Level())
	assert.Equal(t, ai.ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Empty(t, cfg.AI.APIKey)
	assert.Empty(t, cfg.File)
}

func TestLoadLayering(t *testing.T) {
	path := writeYAML(t, `
data_dir: /tmp/from-yaml
store: sqlite
theme: dark
default_cooking_time: 20
ai:
  provider: claude
  model: claude-3-haiku
  timeout: 10s
`)

	tests := []struct {
		name  string
		args  []string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml over defaults",
			args: []string{"-config", path},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/from-yaml", cfg.DataDir)
				assert.Equal(t, storage.DriverSQLite, cfg.Store)
				assert.Equal(t, "dark", cfg.Theme)
				assert.Equal(t, 20, cfg.DefaultCookingTime)
				assert.Equal(t, ai.ProviderClaude, cfg.AI.Provider)
				assert.Equal(t, "claude-3-haiku", cfg.AI.Model)
				assert.Equal(t, 10*time.Second, cfg.AI.Timeout)
				// untouched by the file
				assert.Equal(t, "recipes", cfg.SnapshotKey)
				assert.Equal(t, path, cfg.File)
			},
		},
		{
			name: "env over yaml",
			args: []string{"--config=" + path},
			env:  map[string]string{EnvStore: "memory", EnvAIModel: "claude-3-opus"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, storage.DriverMemory, cfg.Store)
				assert.Equal(t, "claude-3-opus", cfg.AI.Model)
				assert.Equal(t, "dark", cfg.Theme)
			},
		},
		{
			name: "flags over env",
			args: []string{"-store", "file", "-theme", "light", "-provider", "Gemini"},
			env:  map[string]string{EnvConfigFile: path, EnvStore: "memory"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, storage.DriverFile, cfg.Store)
				assert.Equal(t, "light", cfg.Theme)
				assert.Equal(t, ai.ProviderGemini, cfg.AI.Provider)
				assert.Equal(t, "/tmp/from-yaml", cfg.DataDir)
			},
		},
		{
			name: "log level flags",
			args: []string{"-verbose"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, logger.LevelVerbose, cfg.Level())
			},
		},
		{
			name: "quiet wins",
			args: []string{"-verbose", "-quiet"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, logger.LevelOff, cfg.Level())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.args, envMap(tt.env))
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadAPIKey(t *testing.T) {
	env := map[string]string{
		EnvOpenAIKey: "sk-openai",
		EnvClaudeKey: "sk-ant-claude",
		EnvGeminiKey: "AIza-gemini",
	}

	for provider, want := range map[string]string{
		"openai": "sk-openai",
		"claude": "sk-ant-claude",
		"gemini": "AIza-gemini",
	} {
		cfg, err := Load([]string{"-provider", provider}, envMap(env))
		require.NoError(t, err)
		assert.Equal(t, want, cfg.AI.APIKey, provider)
	}

	env[EnvAIAPIKey] = "sk-generic"
	cfg, err := Load([]string{"-provider", "claude"}, envMap(env))
	require.NoError(t, err)
	assert.Equal(t, "sk-generic", cfg.AI.APIKey)
}

func TestAPIKeyNeverReadFromYAML(t *testing.T) {
	path := writeYAML(t, "ai:\n  apikey: sk-leaked\n  api_key: sk-leaked\n")
	cfg, err := Load([]string{"-config", path}, envMap(nil))
	require.NoError(t, err)
	assert.Empty(t, cfg.AI.APIKey)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"unknown store", []string{"-store", "postgres"}, nil},
		{"unknown provider", nil, map[string]string{EnvAIProvider: "llama"}},
		{"bad default time", []string{"-default-time", "0"}, nil},
		{"bad flag value", []string{"-ai-timeout", "soon"}, nil},
		{"missing file", []string{"-config", "/nonexistent/quickmeals.yaml"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args, envMap(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeYAML(t, "store: [unclosed\n")
	_, err := Load([]string{"-config", path}, envMap(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestHelpFlag(t *testing.T) {
	_, err := Load([]string{"-h"}, envMap(nil))
	assert.True(t, errors.Is(err, flag.ErrHelp))

	usage := Usage()
	for _, name := range []string{"-store", "-provider", "-no-ai", "-log-file"} {
		assert.True(t, strings.Contains(usage, name), "usage lacks %s", name)
	}
}
