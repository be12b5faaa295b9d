// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultEndpoint    = "http://localhost:11434"
	DefaultModel       = "gemma3:1b"
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
	DefaultTimeout     = 300 * time.Second

	defaultHealthTimeout = 5 * time.Second
	generatePath         = "/api/generate"
	maxErrorBody         = 512
)

// ClientConfig configures the Ollama client. Zero values take the defaults.
type ClientConfig struct {
	Endpoint      string        // Service root URL (default http://localhost:11434)
	Model         string        // Model identifier (default gemma3:1b)
	Temperature   float64       // Sampling temperature (default 0.7)
	TopP          float64       // Nucleus sampling threshold (default 0.9)
	Timeout       time.Duration // Generation request timeout (default 300s)
	HealthTimeout time.Duration // Health check timeout (default 5s)
}

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// OllamaClient is a Backend for a local Ollama server.
type OllamaClient struct {
	doer          HTTPDoer
	endpoint      string
	model         string
	temperature   float64
	topP          float64
	timeout       time.Duration
	healthTimeout time.Duration
}

// NewOllamaClient creates a client backed by a plain http.Client. Timeouts
// are applied per request through the context.
func NewOllamaClient(cfg ClientConfig) *OllamaClient {
	return NewOllamaClientWithDoer(&http.Client{}, cfg)
}

// NewOllamaClientWithDoer creates a client with a caller-supplied HTTP doer.
func NewOllamaClientWithDoer(doer HTTPDoer, cfg ClientConfig) *OllamaClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.TopP == 0 {
		cfg.TopP = DefaultTopP
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HealthTimeout == 0 {
		cfg.HealthTimeout = defaultHealthTimeout
	}
	return &OllamaClient{
		doer:          doer,
		endpoint:      strings.TrimRight(cfg.Endpoint, "/"),
		model:         cfg.Model,
		temperature:   cfg.Temperature,
		topP:          cfg.TopP,
		timeout:       cfg.Timeout,
		healthTimeout: cfg.HealthTimeout,
	}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

// Name returns "ollama:<model>".
func (c *OllamaClient) Name() string {
	return "ollama:" + c.model
}

// Endpoint returns the service root URL.
func (c *OllamaClient) Endpoint() string {
	return c.endpoint
}

// Ping issues an unauthenticated GET against the service root and requires
// a 200 response.
func (c *OllamaClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned status %d", ErrUnreachable, c.endpoint, resp.StatusCode)
	}
	return nil
}

// Generate posts prompt to /api/generate with streaming disabled.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) Result {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: c.temperature,
			TopP:        c.topP,
		},
	})
	if err != nil {
		return empty(fmt.Sprintf("encoding request: %v", err))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+generatePath, bytes.NewReader(body))
	if err != nil {
		return transportError(fmt.Sprintf("building request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return transportError(fmt.Sprintf("request timed out after %s", c.timeout))
		}
		return transportError(err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(fmt.Sprintf("reading response: %v", err))
	}

	if resp.StatusCode/100 != 2 {
		return transportError(fmt.Sprintf("status %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(data)), maxErrorBody)))
	}

	return parseGenerateResponse(data)
}

// Remedy returns the steps for verifying the service and fetching the model.
func (c *OllamaClient) Remedy() []string {
	return []string{
		"Make sure Ollama is running and the model is downloaded.",
		fmt.Sprintf("You can download the model by running: ollama pull %s", c.model),
	}
}

// StartHint returns the command that starts a local Ollama server.
func (c *OllamaClient) StartHint() string {
	return "You can start Ollama by running the 'ollama serve' command."
}

// parseGenerateResponse reads the generated text from the "response" field,
// falling back to "text", or accepts a bare JSON string body.
func parseGenerateResponse(data []byte) Result {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		for _, key := range []string{"response", "text"} {
			raw, found := obj[key]
			if !found {
				continue
			}
			var s string
			if json.Unmarshal(raw, &s) == nil && s != "" {
				return ok(s)
			}
		}
		return empty("response did not contain expected 'response' field")
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "" {
			return ok(s)
		}
		return empty("response body was an empty string")
	}

	return empty("response body is not valid JSON")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
