package usecase

import (
	"encoding/json"
	"strings"

	"github.com/salesai/backend/internal/domain"
)

// decodeCompletion parses the model's text into v. An empty completion yields
// ErrEmptyCompletion; text that is not valid JSON yields an InvalidJSONError
// carrying the raw text.
func decodeCompletion(text string, v any) error {
	cleaned := stripCodeFence(text)
	if cleaned == "" {
		return domain.ErrEmptyCompletion
	}

	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &domain.InvalidJSONError{Raw: text, Err: err}
	}
	return nil
}

// stripCodeFence removes the markdown fences some models wrap JSON in
func stripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
