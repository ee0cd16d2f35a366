package llm

import (
	"context"
	"errors"

	"github.com/salesai/backend/config"
	"github.com/salesai/backend/internal/domain"
	"github.com/sirupsen/logrus"
)

// Backend is a named completer
type Backend interface {
	domain.Completer
	Name() string
}

// New builds the configured backend wrapped in the rate limiter. A missing
// credential yields an Unconfigured backend rather than an error so the
// server can start and report the problem per request.
func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (domain.Completer, string, error) {
	var (
		backend Backend
		err     error
	)

	switch cfg.LLM.Provider {
	case "openai":
		backend, err = NewOpenAI(ctx, cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
	default:
		backend, err = NewGemini(ctx, cfg.LLM.APIKey, cfg.LLM.Model, GeminiOptions{})
	}

	if errors.Is(err, domain.ErrMissingCredential) {
		backend = Unconfigured{EnvVar: credentialEnvFor(cfg.LLM.Provider)}
	} else if err != nil {
		return nil, "", err
	}

	limited := NewLimited(backend, LimitedConfig{
		PerMinute: cfg.RateLimit.LLMPerMinute,
		Burst:     cfg.RateLimit.Burst,
		Retries:   cfg.LLM.Retries,
		Timeout:   cfg.LLM.Timeout,
	}, log)

	return limited, backend.Name(), nil
}

func credentialEnvFor(provider string) string {
	if provider == "openai" {
		return "SALESAI_LLM_API_KEY"
	}
	return config.CredentialEnv
}
