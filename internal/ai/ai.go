// Package ai turns a handful of ingredients into a recipe suggestion using
// one of several hosted text models. Every provider is reached through the
// same Generator; adapters only know how to send one prompt and return the
// model's raw text.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hammamikhairi/quickmeals/internal/logger"
)

// Supported providers.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
)

// Header styles for the OpenAI adapter.
const (
	HeaderBearer = "bearer" // Authorization: Bearer <key>
	HeaderAzure  = "azure"  // api-key: <key>, endpoint used verbatim
)

// Config selects and tunes the provider. Zero values fall back to the
// provider defaults.
type Config struct {
	Provider    string
	APIKey      string
	Endpoint    string
	Model       string
	HeaderStyle string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Defaults shared by all adapters.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
	DefaultTimeout     = 30 * time.Second
)

// completer sends one system+user prompt pair and returns the reply text.
type completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// New builds the Generator for cfg.Provider. An empty provider selects
// OpenAI. An empty API key is accepted here; every Generate call then fails
// with a GenerationError.
func New(cfg Config, log *logger.Logger) (*Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderOpenAI
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	var c completer
	switch provider {
	case ProviderOpenAI:
		c = NewOpenAIClient(cfg.Endpoint, cfg.APIKey, log,
			WithModel(cfg.Model),
			WithTemperature(cfg.Temperature),
			WithMaxTokens(cfg.MaxTokens),
			WithHTTPTimeout(cfg.Timeout),
			WithHeaderStyle(cfg.HeaderStyle),
		)
	case ProviderClaude:
		c = NewClaudeClient(cfg.Endpoint, cfg.APIKey, cfg.Model, cfg.MaxTokens, cfg.Timeout, log)
	case ProviderGemini:
		c = NewGeminiClient(cfg.Endpoint, cfg.APIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens, cfg.Timeout, log)
	default:
		return nil, fmt.Errorf("ai: unsupported provider %q", cfg.Provider)
	}

	return newGenerator(provider, cfg.APIKey != "", c, log), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
