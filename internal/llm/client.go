package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a new Client. baseURL is the API root without a
// trailing slash, e.g. "https://api.openai.com/v1".
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: http.DefaultClient,
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

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete sends the instruction and user message as system+user
// turns and returns the trimmed completion text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	requestBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", &ProviderError{Message: fmt.Sprintf("failed to marshal request body: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", &ProviderError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyError(0, err.Error(), "")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Message: fmt.Sprintf("failed to read response body: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyError(resp.StatusCode, errorMessage(body, resp.StatusCode), resp.Header.Get("Retry-After"))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ProviderError{Message: fmt.Sprintf("failed to decode response body: %v", err)}
	}
	if parsed.Error != nil {
		return "", classifyError(resp.StatusCode, parsed.Error.Message+" "+parsed.Error.Code, "")
	}
	if len(parsed.Choices) == 0 {
		return "", &ProviderError{Message: "response contained no choices"}
	}

	output := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if output == "" {
		return "", ErrEmptyResponse
	}
	return output, nil
}

// Health reports whether the client has the credentials it needs to
// make calls. It does not contact the provider.
func (c *Client) Health() (bool, string) {
	if c.apiKey == "" {
		return false, "LLM API key not set"
	}
	return true, ""
}

// classifyError maps a failed provider call onto the error taxonomy.
// The transport surfaces heterogeneous error shapes, so rate-limit
// detection is pattern-based: a 429 status, a "too many requests" or
// "rate limit" phrase, or a RESOURCE_EXHAUSTED code all count.
// Everything else becomes a ProviderError.
func classifyError(status int, message, retryAfter string) error {
	lower := strings.ToLower(message)
	rateLimited := status == http.StatusTooManyRequests ||
		strings.Contains(lower, "too many requests") ||
		strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "resource_exhausted")
	if rateLimited {
		return &RateLimitError{Message: message, RetryAfter: parseRetryAfter(retryAfter)}
	}
	return &ProviderError{Message: message}
}

// parseRetryAfter handles the delay-seconds form of the Retry-After
// header. The HTTP-date form is rare on these endpoints and is
// ignored.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// errorMessage extracts a human-readable message from an error
// response body, falling back to the raw body or status code.
func errorMessage(body []byte, status int) string {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil {
		msg := parsed.Error.Message
		if parsed.Error.Code != "" {
			msg += " (" + parsed.Error.Code + ")"
		}
		return msg
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf("unexpected status code %d", status)
}
