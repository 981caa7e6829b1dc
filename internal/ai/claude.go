package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hammamikhairi/quickmeals/internal/logger"
)

const (
	DefaultClaudeEndpoint = "https://api.anthropic.com"
	DefaultClaudeModel    = "claude-3-sonnet-20240229"
	anthropicVersion      = "2023-06-01"
)

type claudePayload struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// ClaudeClient talks to the Anthropic Messages API.
type ClaudeClient struct {
	endpoint  string
	apiKey    string
	model     string
	maxTokens int
	http      *http.Client
	log       *logger.Logger
}

// NewClaudeClient creates a Messages API client. Empty endpoint and model
// select the public defaults.
func NewClaudeClient(endpoint, apiKey, model string, maxTokens int, timeout time.Duration, log *logger.Logger) *ClaudeClient {
	if endpoint == "" {
		endpoint = DefaultClaudeEndpoint
	}
	if model == "" {
		model = DefaultClaudeModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ClaudeClient{
		endpoint:  strings.TrimRight(endpoint, "/"),
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		http:      &http.Client{Timeout: timeout},
		log:       log,
	}
}

// Complete sends one message and returns the concatenated text blocks of
// the reply.
func (c *ClaudeClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	jsonData, err := json.Marshal(claudePayload{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("claude: marshal payload: %w", err)
	}

	url := c.endpoint + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("claude: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	c.log.Debug("claude: POST %s (%d bytes)", url, len(jsonData))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("claude: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &statusError{code: resp.StatusCode, body: truncate(string(respBody), 200)}
	}

	var result claudeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("claude: unmarshal response: %w", err)
	}

	var sb strings.Builder
	for _, block := range result.Content {
		if block.Type == "" || block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("claude: empty response (no text blocks)")
	}

	reply := sb.String()
	c.log.Debug("claude: reply (%d chars): %s", len(reply), truncate(reply, 120))
	return reply, nil
}
