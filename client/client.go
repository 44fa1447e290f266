// Package client provides a thin client for a local model server's HTTP API.
// Each operation builds one JSON request, issues a single HTTP call and
// returns the decoded JSON response.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/kazama/pkg/llm"
)

// Endpoint paths on the model server.
const (
	ChatPath       = "/api/chat"
	PullPath       = "/api/pull"
	EmbeddingsPath = "/api/embeddings"
	TagsPath       = "/api/tags"
	RunningPath    = "/api/ps"
	PushPath       = "/api/push"
)

// Client talks to a model server. It holds no per-call state and is safe for
// concurrent use; the underlying http.Client is shared so connections are reused.
type Client struct {
	config     Config
	logger     *zap.Logger
	httpClient *http.Client
}

// New creates a new Client.
func New(config Config, logger *zap.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the server address requests are sent to.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// ChatCompletion sends a single message with the given role and returns the
// server's reply. The request never asks for streaming.
func (c *Client) ChatCompletion(ctx context.Context, model, content, role string) (llm.Response, error) {
	return c.Chat(ctx, llm.NewChatRequest(model, content, role))
}

// Chat sends a caller-built conversation as is. A nil req fails without
// contacting the server.
func (c *Client) Chat(ctx context.Context, req *llm.ChatRequest) (llm.Response, error) {
	if req == nil {
		return nil, &RequestError{Op: "chat", Method: http.MethodPost, URL: c.config.BaseURL + ChatPath, Err: ErrNilRequest}
	}
	return c.do(ctx, "chat", http.MethodPost, ChatPath, req)
}

// PullModel asks the server to download the named model.
func (c *Client) PullModel(ctx context.Context, name string, streamMode bool) (llm.Response, error) {
	return c.do(ctx, "pull", http.MethodPost, PullPath, &llm.PullRequest{
		Name:   name,
		Stream: streamMode,
	})
}

// GenerateEmbeddings returns the embedding the model computes for prompt.
func (c *Client) GenerateEmbeddings(ctx context.Context, model, prompt string) (llm.Response, error) {
	return c.do(ctx, "embeddings", http.MethodPost, EmbeddingsPath, &llm.EmbeddingsRequest{
		Model:  model,
		Prompt: prompt,
	})
}

// ListModels returns the models available locally.
func (c *Client) ListModels(ctx context.Context) (llm.Response, error) {
	return c.do(ctx, "list", http.MethodGet, TagsPath, nil)
}

// ListRunning returns the models currently loaded in memory.
func (c *Client) ListRunning(ctx context.Context) (llm.Response, error) {
	return c.do(ctx, "ps", http.MethodGet, RunningPath, nil)
}

// PushModel asks the server to upload the named model to its registry.
func (c *Client) PushModel(ctx context.Context, name string, streamMode bool) (llm.Response, error) {
	return c.do(ctx, "push", http.MethodPost, PushPath, &llm.PushRequest{
		Name:   name,
		Stream: streamMode,
	})
}

// do issues one call. A nil body sends no body at all. The response status is
// deliberately not inspected: any body that decodes as JSON is a result.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (llm.Response, error) {
	startTime := time.Now()
	url := c.config.BaseURL + path

	fail := func(err error) (llm.Response, error) {
		c.logger.Debug("request failed",
			zap.String("op", op),
			zap.String("url", url),
			zap.Error(err),
		)
		return nil, &RequestError{Op: op, Method: method, URL: url, Err: err}
	}

	var reqBody io.Reader
	bodySize := 0
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(fmt.Errorf("marshal request: %w", err))
		}
		reqBody = bytes.NewReader(data)
		bodySize = len(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fail(fmt.Errorf("create request: %w", err))
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("sending request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("body_size", bodySize),
	)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fail(fmt.Errorf("do request: %w", err))
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fail(fmt.Errorf("read response: %w", err))
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		c.logger.Warn("server returned error status",
			zap.String("op", op),
			zap.Int("status", httpResp.StatusCode),
			zap.String("body", truncate(string(data), 200)),
		)
	}

	var resp llm.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return fail(fmt.Errorf("unmarshal response: %w", err))
	}

	c.logger.Debug("received response",
		zap.String("op", op),
		zap.Int("status", httpResp.StatusCode),
		zap.Int("body_size", len(data)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return resp, nil
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
