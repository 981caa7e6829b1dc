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

// DefaultOpenAIEndpoint is the public OpenAI API base.
const DefaultOpenAIEndpoint = "https://api.openai.com/v1"

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-3.5-turbo"

// ── Wire types ───────────────────────────────────────────────────

// Role constants.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single chat-completion message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatPayload is the request body sent to the chat-completions endpoint.
type chatPayload struct {
	Model       string    `json:"model,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// chatResponse is the top-level response envelope.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the OpenAIClient.
type ClientOption func(*OpenAIClient)

// WithModel overrides the default model name. Empty keeps the default.
func WithModel(model string) ClientOption {
	return func(c *OpenAIClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) ClientOption {
	return func(c *OpenAIClient) { c.temperature = t }
}

// WithMaxTokens sets the response token limit.
func WithMaxTokens(n int) ClientOption {
	return func(c *OpenAIClient) { c.maxTokens = n }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *OpenAIClient) { c.http.Timeout = d }
}

// WithHeaderStyle selects bearer (OpenAI) or azure (api-key header,
// deployment URL) authentication. Empty keeps bearer.
func WithHeaderStyle(style string) ClientOption {
	return func(c *OpenAIClient) {
		if style != "" {
			c.headerStyle = strings.ToLower(style)
		}
	}
}

// OpenAIClient talks to an OpenAI-compatible chat-completions endpoint.
type OpenAIClient struct {
	endpoint    string
	apiKey      string
	model       string
	headerStyle string
	temperature float64
	maxTokens   int
	http        *http.Client
	log         *logger.Logger
}

// NewOpenAIClient creates a chat client.
//   - endpoint: API base (".../v1") for bearer style, or the full
//     deployment URL for azure style
//     (e.g. "https://<resource>.openai.azure.com/openai/deployments/<dep>/chat/completions?api-version=2024-02-01")
//   - apiKey:   the subscription / API key
func NewOpenAIClient(endpoint, apiKey string, log *logger.Logger, opts ...ClientOption) *OpenAIClient {
	if endpoint == "" {
		endpoint = DefaultOpenAIEndpoint
	}
	c := &OpenAIClient{
		endpoint:    endpoint,
		apiKey:      apiKey,
		model:       DefaultOpenAIModel,
		headerStyle: HeaderBearer,
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
		http:        &http.Client{Timeout: DefaultTimeout},
		log:         log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *OpenAIClient) url() string {
	if c.headerStyle == HeaderAzure {
		return c.endpoint
	}
	return strings.TrimRight(c.endpoint, "/") + "/chat/completions"
}

// Complete sends a chat-completion request and returns the assistant's reply.
func (c *OpenAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	body := chatPayload{
		Messages: []Message{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	// Azure deployments pin the model in the URL.
	if c.headerStyle != HeaderAzure {
		body.Model = c.model
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("openai: marshal payload: %w", err)
	}

	url := c.url()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.headerStyle == HeaderAzure {
		req.Header.Set("api-key", c.apiKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.log.Debug("openai: POST %s (%d bytes)", url, len(jsonData))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &statusError{code: resp.StatusCode, body: truncate(string(respBody), 200)}
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("openai: unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response (no choices)")
	}

	reply := result.Choices[0].Message.Content
	c.log.Debug("openai: reply (%d chars): %s", len(reply), truncate(reply, 120))
	return reply, nil
}

// statusError is a non-2xx reply. The generator lifts the code into the
// GenerationError it returns.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API %d %s: %s", e.code, http.StatusText(e.code), e.body)
}
