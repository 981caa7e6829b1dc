package config

import (
	"bytes"
	"flag"
	"io"
	"strings"

	"github.com/hammamikhairi/quickmeals/internal/logger"
)

// parseFlags overlays cfg with command-line flags. Every flag defaults to
// the value cfg already holds, so unset flags never clobber the file or the
// environment.
func parseFlags(cfg *Config, args []string) error {
	fs, verbose, quiet := newFlagSet(cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		cfg.LogLevel = "verbose"
	}
	if *quiet {
		cfg.LogLevel = "off"
	}
	cfg.AI.Provider = strings.ToLower(cfg.AI.Provider)

	// Keep the level string canonical for logging at startup.
	cfg.LogLevel = levelName(logger.ParseLevel(cfg.LogLevel))
	return nil
}

// Usage returns the flag help text with built-in defaults.
func Usage() string {
	cfg := &Config{}
	cfg.LoadDefaults()
	fs, _, _ := newFlagSet(cfg)

	var buf bytes.Buffer
	fs.SetOutput(&buf)
	fs.PrintDefaults()
	return buf.String()
}

func newFlagSet(cfg *Config) (fs *flag.FlagSet, verbose, quiet *bool) {
	fs = flag.NewFlagSet("quickmeals", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.String("config", cfg.File, "YAML config file (or $"+EnvConfigFile+")")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for saved recipes")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "recipe store: memory, file or sqlite")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "initial theme: light or dark")
	fs.IntVar(&cfg.DefaultCookingTime, "default-time", cfg.DefaultCookingTime, "default cooking time for new recipes, in minutes")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "file to write logs to (use \"stderr\" to log to console)")
	verbose = fs.Bool("verbose", false, "enable verbose/debug logging")
	quiet = fs.Bool("quiet", false, "disable all logging")

	fs.BoolVar(&cfg.AI.Disabled, "no-ai", cfg.AI.Disabled, "disable recipe generation even if an API key is set")
	fs.StringVar(&cfg.AI.Provider, "provider", cfg.AI.Provider, "AI provider: openai, claude or gemini")
	fs.StringVar(&cfg.AI.Model, "model", cfg.AI.Model, "model name (provider default when empty)")
	fs.StringVar(&cfg.AI.Endpoint, "endpoint", cfg.AI.Endpoint, "API endpoint override")
	fs.DurationVar(&cfg.AI.Timeout, "ai-timeout", cfg.AI.Timeout, "timeout for one generation request")
	return fs, verbose, quiet
}

func levelName(l logger.Level) string {
	switch l {
	case logger.LevelOff:
		return "off"
	case logger.LevelVerbose:
		return "verbose"
	default:
		return "normal"
	}
}
