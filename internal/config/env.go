package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/quickmeals/internal/ai"
)

// Environment variables read by applyEnv and apiKey.
const (
	EnvDataDir     = "QUICKMEALS_DATA_DIR"
	EnvStore       = "QUICKMEALS_STORE"
	EnvTheme       = "QUICKMEALS_THEME"
	EnvLogLevel    = "QUICKMEALS_LOG_LEVEL"
	EnvAIProvider  = "QUICKMEALS_AI_PROVIDER"
	EnvAIEndpoint  = "QUICKMEALS_AI_ENDPOINT"
	EnvAIModel     = "QUICKMEALS_AI_MODEL"
	EnvAIHeader    = "QUICKMEALS_AI_HEADER_STYLE"
	EnvAITimeout   = "QUICKMEALS_AI_TIMEOUT"
	EnvAIMaxTokens = "QUICKMEALS_AI_MAX_TOKENS"
	EnvAIAPIKey    = "QUICKMEALS_AI_API_KEY"

	EnvOpenAIKey = "OPENAI_API_KEY"
	EnvClaudeKey = "ANTHROPIC_API_KEY"
	EnvGeminiKey = "GEMINI_API_KEY"
)

// applyEnv overlays cfg with every variable that is set and parses.
func applyEnv(cfg *Config, getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str(EnvDataDir, &cfg.DataDir)
	str(EnvStore, &cfg.Store)
	str(EnvTheme, &cfg.Theme)
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvAIProvider, &cfg.AI.Provider)
	str(EnvAIEndpoint, &cfg.AI.Endpoint)
	str(EnvAIModel, &cfg.AI.Model)
	str(EnvAIHeader, &cfg.AI.HeaderStyle)

	if v := getenv(EnvAITimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AI.Timeout = d
		}
	}
	if v := getenv(EnvAIMaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AI.MaxTokens = n
		}
	}

	cfg.AI.Provider = strings.ToLower(cfg.AI.Provider)
}

// apiKey returns QUICKMEALS_AI_API_KEY, or the provider's conventional
// variable when that is unset.
func apiKey(provider string, getenv func(string) string) string {
	if k := strings.TrimSpace(getenv(EnvAIAPIKey)); k != "" {
		return k
	}
	switch provider {
	case ai.ProviderClaude:
		return strings.TrimSpace(getenv(EnvClaudeKey))
	case ai.ProviderGemini:
		return strings.TrimSpace(getenv(EnvGeminiKey))
	default:
		return strings.TrimSpace(getenv(EnvOpenAIKey))
	}
}
