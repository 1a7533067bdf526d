package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oussamaachahboune/gencommit/internal/config"
	"github.com/oussamaachahboune/gencommit/internal/log"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
)

// APIError represents a failed call to the generation API: a network error,
// a non-success status or a malformed response body.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("API error: %s: %v", e.Message, e.Err)
	}
	return "API error: " + e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// HTTPDoer defines the HTTP operations required by the Anthropic generator.
// This allows injection of test doubles.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// AnthropicGenerator generates commit messages via the Anthropic Messages API.
type AnthropicGenerator struct {
	apiKey     string
	model      string
	maxTokens  int
	baseURL    string
	httpClient HTTPDoer
}

// NewAnthropicGenerator creates the live generator. Fails with
// ErrMissingAPIKey when the credential is absent.
func NewAnthropicGenerator(cfg *config.RunConfig) (*AnthropicGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = config.DefaultMaxTokens
	}

	return &AnthropicGenerator{
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: maxTokens,
		baseURL:   defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Name returns the generator name
func (g *AnthropicGenerator) Name() string {
	return "anthropic"
}

// Anthropic API types.
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt to the Messages API and returns the model's text
// output. One attempt, no retry: failures are surfaced to the caller.
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.model
	if model == "" {
		model = g.pickModel(ctx)
	}
	log.Debug("using model: %s", model)

	body := messagesRequest{
		Model:     model,
		MaxTokens: g.maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	start := time.Now()
	respBody, err := g.doRequest(ctx, http.MethodPost, g.baseURL+"/v1/messages", body)
	if err != nil {
		return "", err
	}
	log.DebugDuration("Messages API call", time.Since(start))

	var result messagesResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &APIError{Message: "failed to parse response", Err: err}
	}

	if result.Error != nil {
		return "", &APIError{Message: result.Error.Message}
	}

	var content strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	if content.Len() == 0 {
		return "", &APIError{Message: "response contained no text content"}
	}

	return strings.TrimSpace(content.String()), nil
}

// doRequest performs an HTTP request with the Anthropic auth headers and
// returns the response body. A nil body sends no payload (for GET).
func (g *AnthropicGenerator) doRequest(ctx context.Context, method, url string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Message: "failed to marshal request", Err: err}
		}
		reader = bytes.NewReader(jsonBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &APIError{Message: "failed to create request", Err: err}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", g.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	log.DebugRequest(method, url, body)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, &APIError{Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: "failed to read response", Err: err}
	}

	log.DebugResponse(resp.StatusCode, string(respBody))

	if resp.StatusCode != http.StatusOK {
		// Truncate the error body to keep messages readable.
		errBody := string(respBody)
		if len(errBody) > 500 {
			errBody = errBody[:500]
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errBody}
	}

	return respBody, nil
}
