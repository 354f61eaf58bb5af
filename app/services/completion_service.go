// Package services provides external service integrations and technical concerns like completions and tokens
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/brandscope-io/brandscope/config"
)

// CompletionService calls an OpenAI-compatible chat completions endpoint.
// Callers provide a system and user prompt; structured calls additionally
// attach a JSON schema the server must honor in strict mode.
type CompletionService interface {
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}

// CompletionRequest represents one chat completion call
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	Schema       *JSONSchemaFormat // nil for free-form text
}

// JSONSchemaFormat is the strict structured-output contract sent as
// response_format on the wire.
type JSONSchemaFormat struct {
	Name   string
	Schema map[string]any
}

// HTTPError carries a non-2xx upstream status with the response body.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "upstream http error"
	}
	if e.Body == "" {
		return fmt.Sprintf("upstream http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("upstream http error: status=%d body=%s", e.StatusCode, e.Body)
}

// CompletionServiceImpl implements CompletionService
type CompletionServiceImpl struct {
	config *config.CompletionConfig
	client *http.Client
}

// chatMessage is one entry of the messages array on the wire
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionRequest represents the request payload for the completions API
type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature,omitempty"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

// chatCompletionResponse represents the response payload; some servers fill
// message.content, older ones fill text.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content,omitempty"`
		} `json:"message,omitempty"`
		Text string `json:"text,omitempty"`
	} `json:"choices"`
}

// NewCompletionService creates a new completion service instance
func NewCompletionService(cfg *config.CompletionConfig) CompletionService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &CompletionServiceImpl{
		config: cfg,
		client: &http.Client{Transport: tr, Timeout: timeout},
	}
}

// NewCompletionServiceWithClient is intended for tests; it avoids network
// access by using a custom http.Client (typically with a mock RoundTripper).
func NewCompletionServiceWithClient(cfg *config.CompletionConfig, client *http.Client) CompletionService {
	svc := &CompletionServiceImpl{
		config: cfg,
		client: client,
	}
	if svc.client == nil {
		svc.client = http.DefaultClient
	}
	return svc
}

// Complete sends one chat completion call and returns the assistant text.
// The returned text is not validated here; callers own schema validation so
// they can report taxonomy-specific errors.
func (s *CompletionServiceImpl) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	if req == nil {
		return "", fmt.Errorf("completion request is nil")
	}
	if strings.TrimSpace(req.Model) == "" {
		return "", fmt.Errorf("completion model is required")
	}

	body := chatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
	}
	if req.Schema != nil {
		body.ResponseFormat = map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   req.Schema.Name,
				"strict": true,
				"schema": req.Schema.Schema,
			},
		}
	}

	var resp chatCompletionResponse
	if err := s.doJSON(ctx, "POST", "/chat/completions", body, &resp); err != nil {
		return "", err
	}

	return extractChatText(resp), nil
}

// doJSON posts a JSON body and decodes a JSON response
func (s *CompletionServiceImpl) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	base := strings.TrimRight(strings.TrimSpace(s.config.BaseURL), "/")
	req, err := http.NewRequestWithContext(ctx, method, base+path, &buf)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func extractChatText(resp chatCompletionResponse) string {
	for _, c := range resp.Choices {
		if strings.TrimSpace(c.Message.Content) != "" {
			return c.Message.Content
		}
		if strings.TrimSpace(c.Text) != "" {
			return c.Text
		}
	}
	return ""
}

// SanitizeJSONText strips markdown code fences some models wrap around JSON
// payloads even in structured-output mode.
func SanitizeJSONText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	firstNL := strings.IndexByte(s, '\n')
	if firstNL == -1 {
		return strings.TrimSpace(strings.Trim(s, "`"))
	}
	s = s[firstNL+1:]

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
