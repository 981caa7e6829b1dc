// Package config resolves runtime settings. Sources are applied in order,
// later ones winning: built-in defaults, a YAML file, environment variables
// (including a .env file loaded by main), then command-line flags.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hammamikhairi/quickmeals/internal/ai"
	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/draft"
	"github.com/hammamikhairi/quickmeals/internal/logger"
	"github.com/hammamikhairi/quickmeals/internal/storage"
)

// Config holds runtime settings for the recipe tracker.
type Config struct {
	DataDir            string `yaml:"data_dir"`
	Store              string `yaml:"store"`        // memory | file | sqlite
	SnapshotKey        string `yaml:"snapshot_key"` // key the recipe list is stored under
	Theme              string `yaml:"theme"`        // light | dark
	DefaultCookingTime int    `yaml:"default_cooking_time"`

	LogLevel string `yaml:"log_level"` // off | normal | verbose
	LogFile  string `yaml:"log_file"`  // "stderr" logs to the console

	AI AIConfig `yaml:"ai"`

	// Path of the YAML file that was applied, if any.
	File string `yaml:"-"`
}

// AIConfig selects the recipe generator.
type AIConfig struct {
	Disabled    bool          `yaml:"disabled"`
	Provider    string        `yaml:"provider"` // openai | claude | gemini
	Endpoint    string        `yaml:"endpoint"`
	Model       string        `yaml:"model"`
	HeaderStyle string        `yaml:"header_style"` // bearer | azure
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`

	// Only ever read from the environment.
	APIKey string `yaml:"-"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = ".quickmeals"
	c.Store = storage.DriverFile
	c.SnapshotKey = "recipes"
	c.Theme = domain.ThemeLight.String()
	c.DefaultCookingTime = draft.DefaultCookingTime
	c.LogLevel = "normal"
	c.LogFile = filepath.Join(".quickmeals", "logs", "quickmeals.log")
	c.AI = AIConfig{
		Provider:    ai.ProviderOpenAI,
		HeaderStyle: ai.HeaderBearer,
		Temperature: ai.DefaultTemperature,
		MaxTokens:   ai.DefaultMaxTokens,
		Timeout:     ai.DefaultTimeout,
	}
}

// Load builds a Config from defaults, the YAML file named by -config or
// QUICKMEALS_CONFIG, the environment and args (without the program name).
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path := configPath(args, getenv)
	if path != "" {
		if err := parseYAML(cfg, path); err != nil {
			return nil, err
		}
		cfg.File = path
	}

	applyEnv(cfg, getenv)

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	// Resolved last: the provider may have come from a flag.
	cfg.AI.APIKey = apiKey(cfg.AI.Provider, getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.Store {
	case storage.DriverMemory, storage.DriverFile, storage.DriverSQLite:
	default:
		return fmt.Errorf("config: unknown store %q (want memory, file or sqlite)", c.Store)
	}
	switch c.AI.Provider {
	case ai.ProviderOpenAI, ai.ProviderClaude, ai.ProviderGemini:
	default:
		return fmt.Errorf("config: unknown ai provider %q (want openai, claude or gemini)", c.AI.Provider)
	}
	if c.DefaultCookingTime <= 0 {
		return fmt.Errorf("config: default cooking time must be positive, got %d", c.DefaultCookingTime)
	}
	if c.SnapshotKey == "" {
		return fmt.Errorf("config: snapshot key must not be empty")
	}
	return nil
}

// Level maps LogLevel to a logger level.
func (c *Config) Level() logger.Level {
	return logger.ParseLevel(c.LogLevel)
}

// StorageOptions returns the options for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{Driver: c.Store, Dir: c.DataDir, Key: c.SnapshotKey}
}

// GeneratorConfig returns the options for ai.New.
func (c *Config) GeneratorConfig() ai.Config {
	return ai.Config{
		Provider:    c.AI.Provider,
		APIKey:      c.AI.APIKey,
		Endpoint:    c.AI.Endpoint,
		Model:       c.AI.Model,
		HeaderStyle: c.AI.HeaderStyle,
		Temperature: c.AI.Temperature,
		MaxTokens:   c.AI.MaxTokens,
		Timeout:     c.AI.Timeout,
	}
}
