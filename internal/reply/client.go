// internal/reply/client.go

package reply

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/replyforge/postline/internal/utils"
)

// ClientConfig configures the chat-completions backend. The endpoint is
// OpenAI-compatible, so hosted providers and local servers both work.
type ClientConfig struct {
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	APIKey      string        `yaml:"api_key" json:"api_key"`
	Model       string        `yaml:"model" json:"model"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens"`
	Temperature float64       `yaml:"temperature" json:"temperature"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	RetryMax    int           `yaml:"retry_max" json:"retry_max"`
}

// DefaultClientConfig returns settings suitable for most providers.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:     "https://api.fireworks.ai/inference/v1",
		Model:       "accounts/fireworks/models/llama-v3p1-70b-instruct",
		MaxTokens:   256,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
		RetryMax:    3,
	}
}

// Client talks to an OpenAI-compatible chat completions endpoint with
// retries on transient failures.
type Client struct {
	config ClientConfig
	http   *retryablehttp.Client
	log    utils.Logger
}

// NewClient builds a Client. Logger may be nil.
func NewClient(config ClientConfig, log utils.Logger) *Client {
	if log == nil {
		log = utils.NopLogger()
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = config.RetryMax
	rc.HTTPClient.Timeout = config.Timeout
	rc.Logger = nil
	return &Client{config: config, http: rc, log: log}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt to the configured model and returns the
// sanitized draft.
func (c *Client) Generate(ctx context.Context, prompt Prompt) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	url := c.config.BaseURL + "/chat/completions"
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat endpoint: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("chat endpoint error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat endpoint returned no choices")
	}

	draft := Sanitize(parsed.Choices[0].Message.Content, prompt.CharLimit)
	c.log.WithField("length", len(draft)).Debug("generated reply draft")
	return draft, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
