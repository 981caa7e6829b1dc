package ai

import "strings"

// ValidateAPIKey performs a basic format check of key for provider. It does
// not contact the provider; a false result is only worth a warning.
func ValidateAPIKey(provider, key string) bool {
	if strings.TrimSpace(key) == "" {
		return false
	}
	switch strings.ToLower(provider) {
	case ProviderOpenAI:
		return strings.HasPrefix(key, "sk-") && len(key) > 20
	case ProviderClaude:
		return strings.HasPrefix(key, "sk-ant-") && len(key) > 20
	case ProviderGemini:
		// Google keys have no fixed prefix.
		return len(key) > 20
	default:
		return len(key) > 10
	}
}
