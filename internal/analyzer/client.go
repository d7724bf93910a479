package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultEndpoint is the GitHub Models inference endpoint, which speaks the
// OpenAI chat-completions protocol.
const DefaultEndpoint = "https://models.inference.ai.azure.com"

// Config holds settings for the inference client.
type Config struct {
	Token      string        // GitHub personal access token.
	Model      string        // e.g. "gpt-4o".
	BaseURL    string        // Defaults to DefaultEndpoint.
	Timeout    time.Duration // Per-request HTTP timeout.
	MaxRetries uint          // Attempts for rate-limit/server errors.
}

// Client calls the inference endpoint and returns raw candidate JSON.
// Retries are handled here so callers see only a final success or failure.
type Client struct {
	client     openai.Client
	model      string
	maxRetries uint

	// Stats tracks recent call latencies for the /stats/llm endpoint.
	Stats *Stats
}

// NewClient creates an inference client for the GitHub Models endpoint.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}

	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(strings.TrimSpace(cfg.Token)),
			option.WithBaseURL(cfg.BaseURL),
			option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
			// Retries are driven by retry-go below, not the SDK transport.
			option.WithMaxRetries(0),
		),
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		Stats:      NewStats(time.Hour),
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Complete sends one system+user prompt pair and returns the model's output
// parsed as a raw JSON value. Markdown code fences around the JSON are
// stripped. Rate-limit and server errors are retried with backoff; anything
// still failing after that is returned as-is.
func (c *Client) Complete(ctx context.Context, system, prompt string) (json.RawMessage, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(0.3),
		TopP:        openai.Float(0.9),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
	}

	var content string
	start := time.Now()
	err := retry.Do(
		func() error {
			resp, err := c.client.Chat.Completions.New(ctx, params)
			if err != nil {
				return err
			}
			if len(resp.Choices) == 0 {
				return retry.Unrecoverable(errors.New("empty completion response"))
			}
			content = resp.Choices[0].Message.Content
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetries),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxDelay(30*time.Second),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
	)
	c.Stats.Record(time.Since(start).Milliseconds())
	if err != nil {
		return nil, fmt.Errorf("inference call: %w", err)
	}

	text := stripCodeBlock(content)
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("model returned invalid JSON: %s", truncate(text, 200))
	}
	return json.RawMessage(text), nil
}

// isRetryable treats rate limits and server-side failures as transient.
func isRetryable(err error) bool {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == http.StatusTooManyRequests || apierr.StatusCode >= 500
	}
	return false
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
