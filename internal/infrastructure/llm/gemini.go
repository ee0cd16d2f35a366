package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/salesai/backend/internal/domain"
	"google.golang.org/genai"
)

// Gemini completes prompts with Google's Gemini API
type Gemini struct {
	client *genai.Client
	model  string
}

// GeminiOptions are optional transport overrides, used by tests
type GeminiOptions struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewGemini creates a Gemini completer
func NewGemini(ctx context.Context, apiKey, model string, opts GeminiOptions) (*Gemini, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingCredential
	}
	if model == "" {
		model = "gemini-1.5-pro"
	}

	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Complete sends one prompt. When a schema is given the model is asked for
// application/json constrained to it.
func (g *Gemini) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGenAISchema(req.Schema)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %w", domain.ErrCompletionFailure, err)
	}

	return resp.Text(), nil
}

// Name returns the backend name
func (g *Gemini) Name() string {
	return "gemini:" + g.model
}

func toGenAISchema(s *domain.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{Required: s.Required}
	switch s.Type {
	case domain.SchemaObject:
		out.Type = genai.TypeObject
	case domain.SchemaArray:
		out.Type = genai.TypeArray
	default:
		out.Type = genai.TypeString
	}

	if s.Items != nil {
		out.Items = toGenAISchema(s.Items)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenAISchema(prop)
		}
	}

	return out
}
