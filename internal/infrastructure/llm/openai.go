package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/salesai/backend/internal/domain"
)

// OpenAI completes prompts with any OpenAI-compatible chat endpoint
type OpenAI struct {
	chat  model.ChatModel
	model string
}

// NewOpenAI creates a completer backed by an eino ChatModel
func NewOpenAI(ctx context.Context, apiKey, baseURL, modelName string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingCredential
	}

	chat, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &OpenAI{chat: chat, model: modelName}, nil
}

// Complete sends the prompt as a system+user exchange. The endpoint cannot be
// forced into a schema, so the expected JSON shape is spelled out in the
// system message instead.
func (o *OpenAI) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	system := req.System
	if req.Schema != nil {
		skeleton, err := json.MarshalIndent(schemaSkeleton(req.Schema), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to describe schema: %w", err)
		}
		system += "\n只輸出符合下列結構的 JSON，不要輸出任何其他內容：\n" + string(skeleton)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: req.Prompt},
	}

	resp, err := o.chat.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: openai: %w", domain.ErrCompletionFailure, err)
	}
	if resp == nil {
		return "", nil
	}

	return resp.Content, nil
}

// Name returns the backend name
func (o *OpenAI) Name() string {
	return "openai:" + o.model
}

// schemaSkeleton renders a schema as an example value the model can imitate
func schemaSkeleton(s *domain.Schema) any {
	switch s.Type {
	case domain.SchemaObject:
		obj := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			obj[name] = schemaSkeleton(prop)
		}
		return obj
	case domain.SchemaArray:
		if s.Items == nil {
			return []any{}
		}
		return []any{schemaSkeleton(s.Items)}
	default:
		return "string"
	}
}
