package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/hammamikhairi/quickmeals/internal/logger"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-pro"

// GeminiClient talks to the Gemini API through the genai SDK.
type GeminiClient struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float32
	maxTokens   int32
	http        *http.Client
	log         *logger.Logger
}

// NewGeminiClient creates a Gemini client. An empty baseURL uses the SDK
// default endpoint.
func NewGeminiClient(baseURL, apiKey, model string, temperature float64, maxTokens int, timeout time.Duration, log *logger.Logger) *GeminiClient {
	if model == "" {
		model = DefaultGeminiModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: float32(temperature),
		maxTokens:   int32(maxTokens),
		http:        &http.Client{Timeout: timeout},
		log:         log,
	}
}

// Complete runs one generateContent call and returns the reply text.
func (c *GeminiClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      c.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  c.http,
		HTTPOptions: genai.HTTPOptions{BaseURL: c.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}

	c.log.Debug("gemini: generateContent model=%s (%d prompt chars)", c.model, len(prompt))

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
		MaxOutputTokens:   c.maxTokens,
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code != 0 {
			return "", &statusError{code: apiErr.Code, body: truncate(apiErr.Message, 200)}
		}
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}

	reply := resp.Text()
	if reply == "" {
		return "", fmt.Errorf("gemini: empty response (no text parts)")
	}
	c.log.Debug("gemini: reply (%d chars): %s", len(reply), truncate(reply, 120))
	return reply, nil
}
