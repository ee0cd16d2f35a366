package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/salesai/backend/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Limited wraps a completer with an outbound rate limiter, a per-attempt
// timeout and retries with exponential backoff on transient failures.
type Limited struct {
	next        domain.Completer
	rateLimiter *rate.Limiter
	retries     int
	timeout     time.Duration
	log         logrus.FieldLogger
	backoff     func(attempt int) time.Duration
}

// LimitedConfig configures the Limited decorator
type LimitedConfig struct {
	PerMinute int
	Burst     int
	Retries   int
	Timeout   time.Duration
}

// NewLimited creates a rate limited completer
func NewLimited(next domain.Completer, cfg LimitedConfig, log logrus.FieldLogger) *Limited {
	perMinute := cfg.PerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	retries := cfg.Retries
	if retries <= 0 {
		retries = 1
	}

	return &Limited{
		next:        next,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst),
		retries:     retries,
		timeout:     cfg.Timeout,
		log:         log,
		backoff:     exponentialBackoff,
	}
}

// Complete runs the wrapped completer, retrying transient errors
func (l *Limited) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= l.retries; attempt++ {
		if err := l.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}

		text, err := l.attempt(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !isTransient(err) || ctx.Err() != nil {
			return "", err
		}

		if attempt < l.retries {
			delay := l.backoff(attempt)
			l.log.WithFields(logrus.Fields{
				"attempt": attempt,
				"delay":   delay,
			}).WithError(err).Warn("completion failed, retrying")

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	l.log.WithError(lastErr).Error("all completion attempts failed")
	return "", lastErr
}

func (l *Limited) attempt(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	return l.next.Complete(ctx, req)
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

var (
	transientStatus = map[int]bool{
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
		http.StatusGatewayTimeout:      true,
	}

	// openai-compatible clients report "error, status code: 429, status: ..."
	statusCodePattern = regexp.MustCompile(`status code: (\d{3})`)
)

// isTransient reports whether a failed completion is worth retrying
func isTransient(err error) bool {
	if errors.Is(err, domain.ErrMissingCredential) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return transientStatus[apiErr.Code]
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return transientStatus[apiErrPtr.Code]
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if m := statusCodePattern.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		return transientStatus[code]
	}
	return false
}
