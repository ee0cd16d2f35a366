package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/salesai/backend/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// scriptedCompleter returns the queued results in order
type scriptedCompleter struct {
	results []result
	calls   int
	lastReq domain.CompletionRequest
}

type result struct {
	text string
	err  error
}

func (s *scriptedCompleter) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	s.lastReq = req
	r := s.results[s.calls]
	s.calls++
	return r.text, r.err
}

func newTestLimited(next domain.Completer, retries int) (*Limited, *test.Hook) {
	log, hook := test.NewNullLogger()
	l := NewLimited(next, LimitedConfig{PerMinute: 6000, Burst: 10, Retries: retries}, log)
	l.backoff = func(int) time.Duration { return time.Millisecond }
	return l, hook
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt %d", tt.attempt), func(t *testing.T) {
			assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
		})
	}
}

func TestLimited_Success(t *testing.T) {
	next := &scriptedCompleter{results: []result{{text: `{"summary":"ok"}`}}}
	l, _ := newTestLimited(next, 3)

	text, err := l.Complete(context.Background(), domain.CompletionRequest{Prompt: "p"})

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, text)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, "p", next.lastReq.Prompt)
}

func TestLimited_RetriesTransientErrors(t *testing.T) {
	next := &scriptedCompleter{results: []result{
		{err: fmt.Errorf("%w: gemini: %w", domain.ErrCompletionFailure, genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"})},
		{err: fmt.Errorf("%w: gemini: %w", domain.ErrCompletionFailure, genai.APIError{Code: 503, Status: "UNAVAILABLE"})},
		{text: "done"},
	}}
	l, hook := newTestLimited(next, 3)

	text, err := l.Complete(context.Background(), domain.CompletionRequest{})

	require.NoError(t, err)
	assert.Equal(t, "done", text)
	assert.Equal(t, 3, next.calls)

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings)
}

func TestLimited_DoesNotRetryPermanentErrors(t *testing.T) {
	next := &scriptedCompleter{results: []result{
		{err: fmt.Errorf("%w: gemini: %w", domain.ErrCompletionFailure, genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"})},
	}}
	l, _ := newTestLimited(next, 3)

	_, err := l.Complete(context.Background(), domain.CompletionRequest{})

	assert.ErrorIs(t, err, domain.ErrCompletionFailure)
	assert.Equal(t, 1, next.calls)
}

func TestLimited_MissingCredentialIsNotRetried(t *testing.T) {
	l, _ := newTestLimited(Unconfigured{EnvVar: "GEMINI_API_KEY"}, 3)

	_, err := l.Complete(context.Background(), domain.CompletionRequest{})

	assert.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.Contains(t, err.Error(), "Missing GEMINI_API_KEY on server")
}

func TestLimited_GivesUpAfterRetries(t *testing.T) {
	transient := fmt.Errorf("%w: gemini: %w", domain.ErrCompletionFailure, genai.APIError{Code: 500, Status: "INTERNAL"})
	next := &scriptedCompleter{results: []result{{err: transient}, {err: transient}}}
	l, hook := newTestLimited(next, 2)

	_, err := l.Complete(context.Background(), domain.CompletionRequest{})

	assert.ErrorIs(t, err, domain.ErrCompletionFailure)
	assert.Equal(t, 2, next.calls)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestLimited_CancelledContext(t *testing.T) {
	next := &scriptedCompleter{results: []result{{text: "never"}}}
	l, _ := newTestLimited(next, 3)
	l.rateLimiter.SetBurst(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Complete(ctx, domain.CompletionRequest{})

	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, 0, next.calls)
}

// timeoutError is a net.Error that timed out
type timeoutError struct{}

func (timeoutError) Error() string { return "i/o timeout" }
func (timeoutError) Timeout() bool { return true }
func (timeoutError) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "gemini rate limited", err: genai.APIError{Code: 429}, want: true},
		{name: "gemini unavailable", err: fmt.Errorf("%w: gemini: %w", domain.ErrCompletionFailure, genai.APIError{Code: 503}), want: true},
		{name: "gemini pointer error", err: &genai.APIError{Code: 502}, want: true},
		{name: "gemini bad request", err: genai.APIError{Code: 400, Message: "status 500 mentioned in text"}, want: false},
		{name: "openai rate limited", err: errors.New("error, status code: 429, status: 429 Too Many Requests, message: slow down"), want: true},
		{name: "openai bad request", err: errors.New("error, status code: 400, status: 400 Bad Request, message: bad"), want: false},
		{name: "network timeout", err: fmt.Errorf("%w: openai: %w", domain.ErrCompletionFailure, timeoutError{}), want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "cancelled", err: context.Canceled, want: false},
		{name: "number in message", err: errors.New("prompt exceeded 500 characters"), want: false},
		{name: "timeout word in message", err: errors.New("invalid timeout parameter"), want: false},
		{name: "missing credential", err: fmt.Errorf("%w: status code: 500", domain.ErrMissingCredential), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}
