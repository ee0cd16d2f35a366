package llm

import (
	"context"

	"github.com/salesai/backend/internal/domain"
)

// Unconfigured stands in for a backend whose credential is missing. The
// server keeps running and every completion fails with ErrMissingCredential.
type Unconfigured struct {
	EnvVar string
}

// Complete always fails
func (u Unconfigured) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	return "", &domain.MissingCredentialError{EnvVar: u.EnvVar}
}

// Name returns the backend name
func (u Unconfigured) Name() string {
	return "unconfigured"
}
