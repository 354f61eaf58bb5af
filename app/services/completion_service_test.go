// Package services provides external service integrations and technical concerns like completions and tokens
package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/brandscope-io/brandscope/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTripFunc lets tests stand in for the HTTP transport
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestCompletionService(rt roundTripFunc) CompletionService {
	cfg := &config.CompletionConfig{
		BaseURL:        "https://llm.example.com/v1",
		APIKey:         "test-api-key",
		SelectorModel:  "selector-model",
		GeneratorModel: "generator-model",
		Timeout:        5 * time.Second,
	}
	return NewCompletionServiceWithClient(cfg, &http.Client{Transport: rt})
}

func TestCompleteReturnsMessageContent(t *testing.T) {
	var captured *http.Request
	var capturedBody []byte

	service := newTestCompletionService(func(r *http.Request) (*http.Response, error) {
		captured = r
		capturedBody, _ = io.ReadAll(r.Body)
		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"hello from the model"}}]}`), nil
	})

	text, err := service.Complete(context.Background(), &CompletionRequest{
		Model:        "generator-model",
		SystemPrompt: "You are a test.",
		UserPrompt:   "Say hello.",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello from the model", text)

	require.NotNil(t, captured)
	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "https://llm.example.com/v1/chat/completions", captured.URL.String())
	assert.Equal(t, "Bearer test-api-key", captured.Header.Get("Authorization"))
	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(capturedBody, &payload))
	assert.Equal(t, "generator-model", payload["model"])

	messages, ok := payload["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "You are a test.", first["content"])
	second := messages[1].(map[string]any)
	assert.Equal(t, "user", second["role"])

	// Free-form calls must not send a response_format
	_, hasFormat := payload["response_format"]
	assert.False(t, hasFormat)
}

func TestCompleteFallsBackToLegacyTextField(t *testing.T) {
	service := newTestCompletionService(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"choices":[{"text":"legacy completion text"}]}`), nil
	})

	text, err := service.Complete(context.Background(), &CompletionRequest{
		Model:      "generator-model",
		UserPrompt: "Say hello.",
	})
	require.NoError(t, err)
	assert.Equal(t, "legacy completion text", text)
}

func TestCompleteSendsStrictSchema(t *testing.T) {
	var capturedBody []byte
	service := newTestCompletionService(func(r *http.Request) (*http.Response, error) {
		capturedBody, _ = io.ReadAll(r.Body)
		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"{}"}}]}`), nil
	})

	schema := &JSONSchemaFormat{
		Name: "test_schema",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"value": map[string]any{"type": "string"},
			},
			"required":             []string{"value"},
			"additionalProperties": false,
		},
	}

	_, err := service.Complete(context.Background(), &CompletionRequest{
		Model:      "selector-model",
		UserPrompt: "Fill the schema.",
		Schema:     schema,
	})
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(capturedBody, &payload))

	format, ok := payload["response_format"].(map[string]any)
	require.True(t, ok, "response_format should be present for schema calls")
	assert.Equal(t, "json_schema", format["type"])

	jsonSchema, ok := format["json_schema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "test_schema", jsonSchema["name"])
	assert.Equal(t, true, jsonSchema["strict"])
	assert.NotNil(t, jsonSchema["schema"])
}

func TestCompleteUpstreamError(t *testing.T) {
	service := newTestCompletionService(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`), nil
	})

	text, err := service.Complete(context.Background(), &CompletionRequest{
		Model:      "generator-model",
		UserPrompt: "Say hello.",
	})
	assert.Empty(t, text)
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "rate limited")
}

func TestCompleteTransportError(t *testing.T) {
	service := newTestCompletionService(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	text, err := service.Complete(context.Background(), &CompletionRequest{
		Model:      "generator-model",
		UserPrompt: "Say hello.",
	})
	assert.Empty(t, text)
	assert.Error(t, err)
}

func TestCompleteEmptyChoices(t *testing.T) {
	service := newTestCompletionService(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"choices":[]}`), nil
	})

	text, err := service.Complete(context.Background(), &CompletionRequest{
		Model:      "generator-model",
		UserPrompt: "Say hello.",
	})
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestCompleteRequestValidation(t *testing.T) {
	service := newTestCompletionService(func(r *http.Request) (*http.Response, error) {
		t.Fatal("no HTTP call expected for invalid requests")
		return nil, nil
	})

	_, err := service.Complete(context.Background(), nil)
	assert.Error(t, err)

	_, err = service.Complete(context.Background(), &CompletionRequest{Model: "   ", UserPrompt: "hi"})
	assert.Error(t, err)
}

func TestSanitizeJSONText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON untouched",
			input:    `{"selected_actions":[]}`,
			expected: `{"selected_actions":[]}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "\n  {\"a\":1}  \n",
			expected: `{"a":1}`,
		},
		{
			name:     "json code fence stripped",
			input:    "```json\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "bare code fence stripped",
			input:    "```\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "fence without closing marker",
			input:    "```json\n{\"a\":1}",
			expected: `{"a":1}`,
		},
		{
			name:     "single line fence",
			input:    "```{\"a\":1}```",
			expected: `{"a":1}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeJSONText(tt.input))
		})
	}
}
