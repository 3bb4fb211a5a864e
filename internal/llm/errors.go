package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyResponse reports that the provider returned an empty or
// whitespace-only completion.
var ErrEmptyResponse = errors.New("empty response from LLM")

// ErrRateLimitExceeded reports persistent throttling after the retry
// budget was spent. The message is user-facing.
var ErrRateLimitExceeded = errors.New("provider rate limit exceeded; wait a minute and retry")

// RateLimitError reports that the provider signalled throttling on a
// single call. RetryAfter is the provider-suggested wait, zero when
// the response carried no usable hint.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited by provider: %s", e.Message)
}

// ProviderError is the catch-all for non-rate-limit provider
// failures: network errors, auth rejections, malformed responses.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error: %s", e.Message)
}
