package llm

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/oussamaachahboune/gencommit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDoer is a test double for HTTPDoer that records every request.
type fakeDoer struct {
	calls    int
	requests []*http.Request
	respond  func(*http.Request) (*http.Response, error)
}

func (d *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls++
	d.requests = append(d.requests, req)
	return d.respond(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newTestGenerator(t *testing.T, doer HTTPDoer) *AnthropicGenerator {
	t.Helper()

	gen, err := NewAnthropicGenerator(&config.RunConfig{
		APIKey:    "test-key",
		Model:     "claude-sonnet-4-5-20250929",
		MaxTokens: 300,
	})
	require.NoError(t, err)
	gen.httpClient = doer
	return gen
}

func TestNewAnthropicGenerator_MissingKey(t *testing.T) {
	doer := &fakeDoer{respond: func(*http.Request) (*http.Response, error) {
		t.Fatal("no network call expected")
		return nil, nil
	}}

	_, err := NewAnthropicGenerator(&config.RunConfig{APIKey: ""})
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, doer.calls)
}

func TestAnthropicGenerator_Generate(t *testing.T) {
	doer := &fakeDoer{respond: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"content":[{"type":"text","text":"feat: add "},{"type":"text","text":"login"}]}`), nil
	}}
	gen := newTestGenerator(t, doer)

	msg, err := gen.Generate(context.Background(), "some prompt")
	require.NoError(t, err)
	assert.Equal(t, "feat: add login", msg)
	assert.Equal(t, 1, doer.calls)

	req := doer.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/messages", req.URL.Path)
	assert.Equal(t, "test-key", req.Header.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", req.Header.Get("anthropic-version"))
}

func TestAnthropicGenerator_NonSuccessStatus(t *testing.T) {
	doer := &fakeDoer{respond: func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `{"error":{"type":"rate_limit_error","message":"slow down"}}`), nil
	}}
	gen := newTestGenerator(t, doer)

	_, err := gen.Generate(context.Background(), "p")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "slow down")
}

func TestAnthropicGenerator_StructuredError(t *testing.T) {
	doer := &fakeDoer{respond: func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"error":{"type":"invalid_request_error","message":"bad model"}}`), nil
	}}
	gen := newTestGenerator(t, doer)

	_, err := gen.Generate(context.Background(), "p")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "bad model")
}

func TestAnthropicGenerator_MalformedBody(t *testing.T) {
	doer := &fakeDoer{respond: func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "not json at all"), nil
	}}
	gen := newTestGenerator(t, doer)

	_, err := gen.Generate(context.Background(), "p")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "failed to parse response")
}

func TestAnthropicGenerator_EmptyContent(t *testing.T) {
	doer := &fakeDoer{respond: func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"content":[]}`), nil
	}}
	gen := newTestGenerator(t, doer)

	_, err := gen.Generate(context.Background(), "p")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "no text content")
}

func TestAnthropicGenerator_NetworkError(t *testing.T) {
	doer := &fakeDoer{respond: func(*http.Request) (*http.Response, error) {
		return nil, assert.AnError
	}}
	gen := newTestGenerator(t, doer)

	_, err := gen.Generate(context.Background(), "p")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.ErrorIs(t, err, assert.AnError)
}

func TestAnthropicGenerator_SingleAttempt(t *testing.T) {
	doer := &fakeDoer{respond: func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusServiceUnavailable, `{"error":{"type":"overloaded_error","message":"overloaded"}}`), nil
	}}
	gen := newTestGenerator(t, doer)

	_, err := gen.Generate(context.Background(), "p")
	require.Error(t, err)
	// No automatic retry
	assert.Equal(t, 1, doer.calls)
}
