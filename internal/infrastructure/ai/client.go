package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/freshlink/backend/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the model
// endpoint (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client is a thin HTTP client for the upstream generative endpoint.
// It only knows how to send a prompt (optionally with an attached
// document) and return the raw completion text; interpreting the
// completion is the caller's job.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	maxInput   int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new model endpoint client
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		maxInput: cfg.MaxInputChars,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger.Named("ai"),
	}
}

type completionRequest struct {
	Model    string `json:"model"`
	Input    string `json:"input"`
	Document string `json:"document,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

type completionResponse struct {
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}

// Complete sends a prompt and returns the completion text
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, completionRequest{Model: c.model, Input: prompt})
}

// CompleteWithDocument sends a prompt plus an attached document (e.g. an
// invoice photo) and returns the completion text
func (c *Client) CompleteWithDocument(ctx context.Context, prompt string, document []byte, mimeType string) (string, error) {
	return c.complete(ctx, completionRequest{
		Model:    c.model,
		Input:    prompt,
		Document: base64.StdEncoding.EncodeToString(document),
		MimeType: mimeType,
	})
}

// MaxInputChars returns the configured input size limit
func (c *Client) MaxInputChars() int {
	return c.maxInput
}

func (c *Client) complete(ctx context.Context, reqBody completionRequest) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("ai endpoint not configured")
	}
	if c.maxInput > 0 && len(reqBody.Input) > c.maxInput {
		return "", fmt.Errorf("input exceeds limit of %d characters", c.maxInput)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read model response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("model endpoint returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.Int("body_size", len(body)),
		)
		return "", fmt.Errorf("model endpoint returned status %d", resp.StatusCode)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}
	if completion.Error != "" {
		return "", fmt.Errorf("model endpoint error: %s", completion.Error)
	}
	if strings.TrimSpace(completion.Output) == "" {
		return "", fmt.Errorf("model returned empty output")
	}

	return completion.Output, nil
}

// extractJSON pulls the first JSON array or object out of a completion.
// Models wrap payloads in prose or markdown fences often enough that
// strict decoding of the raw output is a reliability bug.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+3:]
		s = strings.TrimPrefix(s, "json")
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return ""
	}
	var end int
	if s[start] == '[' {
		end = strings.LastIndex(s, "]")
	} else {
		end = strings.LastIndex(s, "}")
	}
	if end <= start {
		return ""
	}
	return s[start : end+1]
}
