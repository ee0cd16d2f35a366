package domain

import (
	"context"
	"time"
)

// CacheRepository stores serialized values with a TTL
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CompletionRequest is one prompt sent to the hosted model
type CompletionRequest struct {
	System string
	Prompt string
	// Schema constrains the JSON the model must return; nil means free text
	Schema *Schema
}

// Completer is the hosted generative model collaborator. It returns the raw
// completion text; the text may be empty or not valid JSON.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// SchemaType enumerates the JSON schema node types the prompts use
type SchemaType string

const (
	SchemaObject SchemaType = "object"
	SchemaArray  SchemaType = "array"
	SchemaString SchemaType = "string"
)

// Schema is a provider-neutral subset of JSON schema
type Schema struct {
	Type       SchemaType
	Properties map[string]*Schema
	Items      *Schema
	Required   []string
}
