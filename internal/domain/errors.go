package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrMissingCredential is returned when no model API key is configured
	ErrMissingCredential = errors.New("missing model API key on server")

	// ErrCompletionFailure is returned when the completion backend request fails
	ErrCompletionFailure = errors.New("completion request failed")

	// ErrEmptyCompletion is returned when the model returns no text
	ErrEmptyCompletion = errors.New("Empty response from model")

	// ErrInvalidJSON is returned when the model output cannot be parsed as JSON
	ErrInvalidJSON = errors.New("INVALID_JSON")

	// ErrRateLimited is returned when the outbound rate limit cannot be satisfied
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// InvalidJSONError carries the raw completion that failed to parse
type InvalidJSONError struct {
	Raw string
	Err error
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidJSON, e.Err)
}

func (e *InvalidJSONError) Unwrap() error {
	return ErrInvalidJSON
}

// MissingCredentialError names the environment variable that should hold the
// model API key
type MissingCredentialError struct {
	EnvVar string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("Missing %s on server", e.EnvVar)
}

func (e *MissingCredentialError) Unwrap() error {
	return ErrMissingCredential
}
