// Package ai generates queries from natural language through an
// OpenAI-compatible chat-completions API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Defaults for the configuration layer. The client itself never applies
// the model default; an endpoint is defaulted only when the configured
// URL is empty.
const (
	// DefaultAPIURL is the default chat-completions base URL. The request
	// path is appended by the client, so a bare base URL is enough.
	DefaultAPIURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

	// DefaultModel is the default chat model.
	DefaultModel = "qwen-turbo"
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("ai api key is not configured")

// Config holds the chat-completions endpoint settings.
type Config struct {
	APIKey string
	APIURL string
	Model  string
}

// Client calls a chat-completions endpoint to turn natural-language
// requests into queries.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a client for the configured endpoint.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate produces a query for the given engine from a natural-language
// request. schema describes the relevant tables or keys and is passed to
// the model verbatim. The returned text has markdown fences stripped but
// is otherwise the model's answer.
func (c *Client) Generate(ctx context.Context, engine, schema, request string) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", ErrMissingAPIKey
	}

	endpoint := resolveEndpoint(c.cfg.APIURL)
	model := strings.TrimSpace(c.cfg.Model)
	c.logger.Debug("sending chat completion request", "url", endpoint, "model", model)

	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(engine, schema, request)},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.cfg.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("api error: %s", apiErr.Error.Message)
		}
		return "", fmt.Errorf("api request failed (%s): %s", resp.Status, respBody)
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("api returned no choices")
	}

	return stripFences(chat.Choices[0].Message.Content), nil
}

// resolveEndpoint normalizes the configured URL to a full
// chat-completions endpoint, so both base URLs and complete endpoint
// URLs are accepted.
func resolveEndpoint(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		url = DefaultAPIURL
	}
	if strings.HasSuffix(url, "/chat/completions") || strings.HasSuffix(url, "/chat/completions/") {
		return url
	}
	if strings.HasSuffix(url, "/") {
		return url + "chat/completions"
	}
	return url + "/chat/completions"
}

// stripFences removes a surrounding markdown code fence. Models add one
// despite instructions not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```sql")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func buildPrompt(engine, schema, request string) string {
	var instruction string
	switch strings.ToLower(engine) {
	case "redis":
		instruction = "This is a Redis database. Return Redis commands (GET, HGETALL, LRANGE, ...), not SQL."
	case "postgresql":
		instruction = "Use PostgreSQL dialect (double-quoted identifiers, PostgreSQL date functions)."
	case "mysql":
		instruction = "Use MySQL dialect (backtick-quoted identifiers)."
	default:
		instruction = "Use standard SQL syntax."
	}

	return fmt.Sprintf(`You are a database query expert. Generate an accurate query from the information below.

## Target engine
**%s**

## Engine instruction
%s

## Schema
%s

## Request
%s

## Output requirements
1. Return ONLY the final query (SQL, or Redis commands for Redis).
2. Do not wrap the answer in markdown fences and do not add explanations.
3. The query must be valid for the target engine.`, engine, instruction, schema, request)
}
