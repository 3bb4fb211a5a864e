package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedCompleter struct {
	results []error
	output  string
	calls   int
}

func (s *scriptedCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.results) && s.results[idx] != nil {
		return "", s.results[idx]
	}
	return s.output, nil
}

func newTestRetrier(next Completer) *RetryingCompleter {
	r := NewRetryingCompleter(next)
	r.delay = time.Millisecond
	return r
}

func TestRetrySucceedsAfterRateLimits(t *testing.T) {
	stub := &scriptedCompleter{
		results: []error{
			&RateLimitError{Message: "too many requests"},
			&RateLimitError{Message: "too many requests"},
			nil,
		},
		output: "generated text",
	}

	output, err := newTestRetrier(stub).Complete(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "generated text", output)
	assert.Equal(t, 3, stub.calls)
}

func TestRetryExhaustsOnPersistentRateLimit(t *testing.T) {
	stub := &scriptedCompleter{
		results: []error{
			&RateLimitError{Message: "too many requests"},
			&RateLimitError{Message: "too many requests"},
			&RateLimitError{Message: "too many requests"},
			&RateLimitError{Message: "too many requests"},
		},
	}

	_, err := newTestRetrier(stub).Complete(context.Background(), "sys", "user")
	require.ErrorIs(t, err, ErrRateLimitExceeded)
	assert.Contains(t, err.Error(), "wait a minute")
	assert.Equal(t, 3, stub.calls)
}

func TestRetryDoesNotRetryProviderError(t *testing.T) {
	providerErr := &ProviderError{Message: "auth failed"}
	stub := &scriptedCompleter{results: []error{providerErr}}

	_, err := newTestRetrier(stub).Complete(context.Background(), "sys", "user")
	require.Error(t, err)

	var gotErr *ProviderError
	require.ErrorAs(t, err, &gotErr)
	assert.Equal(t, 1, stub.calls)
}

func TestRetryDoesNotRetryEmptyResponse(t *testing.T) {
	stub := &scriptedCompleter{results: []error{ErrEmptyResponse}}

	_, err := newTestRetrier(stub).Complete(context.Background(), "sys", "user")
	require.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, 1, stub.calls)
}

func TestRetryHonorsRetryAfterHint(t *testing.T) {
	stub := &scriptedCompleter{
		results: []error{
			&RateLimitError{Message: "too many requests", RetryAfter: 42 * time.Millisecond},
			nil,
		},
		output: "ok",
	}

	var slept []time.Duration
	r := NewRetryingCompleter(stub)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	_, err := r.Complete(context.Background(), "sys", "user")
	require.NoError(t, err)
	require.Len(t, slept, 1)
	assert.Equal(t, 42*time.Millisecond, slept[0])
}

func TestRetryFixedDelayFallback(t *testing.T) {
	stub := &scriptedCompleter{
		results: []error{&RateLimitError{Message: "rate limit"}, nil},
		output:  "ok",
	}

	var slept []time.Duration
	r := NewRetryingCompleter(stub)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	_, err := r.Complete(context.Background(), "sys", "user")
	require.NoError(t, err)
	require.Len(t, slept, 1)
	assert.Equal(t, 30*time.Second, slept[0])
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	stub := &scriptedCompleter{
		results: []error{&RateLimitError{Message: "rate limit"}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := NewRetryingCompleter(stub)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := r.Complete(ctx, "sys", "user")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stub.calls)
}

func TestSleepContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepContext(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultPolicyConstants(t *testing.T) {
	r := NewRetryingCompleter(&scriptedCompleter{})
	assert.Equal(t, 3, r.attempts)
	assert.Equal(t, 30*time.Second, r.delay)
}

func TestRetryErrorIsDistinctFromRawRateLimit(t *testing.T) {
	var rateLimitErr *RateLimitError
	assert.False(t, errors.As(ErrRateLimitExceeded, &rateLimitErr))
}
