package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/medquery/medquery/internal/config"
)

// ErrModelInit is returned when a generator cannot be built for the configured model.
var ErrModelInit = errors.New("model initialization failed")

// Generator is a hosted text-generation model. Parts are sent in order as one prompt.
type Generator interface {
	Generate(ctx context.Context, parts []string) (string, error)
	// ListModels returns the model IDs the credential can use.
	ListModels(ctx context.Context) ([]string, error)
	Provider() string
	Model() string
}

// NewGenerator builds the client for cfg.Provider. The returned generator is safe for
// concurrent use.
func NewGenerator(cfg config.LLMConfig) (Generator, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("%w: failed to initialize model %q: model name is empty, check the model name and your API key configuration", ErrModelInit, cfg.Model)
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = config.DefaultMaxTokens
	}

	switch cfg.Provider {
	case config.ProviderAnthropic:
		return NewAnthropicGenerator(cfg.AnthropicAPIKey, model, cfg.AnthropicBaseURL, maxTokens), nil
	case config.ProviderOpenAI:
		return NewOpenAIGenerator(cfg.OpenAIAPIKey, model, cfg.OpenAIBaseURL, maxTokens), nil
	default:
		return nil, fmt.Errorf("%w: failed to initialize model %q: unknown provider %q", ErrModelInit, model, cfg.Provider)
	}
}
