package translator

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicGenerator wraps the Anthropic Messages API
type AnthropicGenerator struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicGenerator creates a generator backed by Anthropic Claude or a compatible proxy
func NewAnthropicGenerator(apiKey, model, baseURL string, maxTokens int) *AnthropicGenerator {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &AnthropicGenerator{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (g *AnthropicGenerator) Provider() string { return "anthropic" }

func (g *AnthropicGenerator) Model() string { return g.model }

// Generate sends every part as a text block of a single user turn.
func (g *AnthropicGenerator) Generate(ctx context.Context, parts []string) (string, error) {
	blocks := make([]anthropic.ContentBlockParamUnion, len(parts))
	for i, p := range parts {
		blocks[i] = anthropic.NewTextBlock(p)
	}

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.Model(g.model)),
		MaxTokens: anthropic.F(int64(g.maxTokens)),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		}),
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if b, ok := block.AsUnion().(anthropic.TextBlock); ok {
			text += b.Text
		}
	}
	return text, nil
}

type anthropicModelPage struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ListModels reads the first page of GET /v1/models through the SDK client, which adds
// the credential and version headers.
func (g *AnthropicGenerator) ListModels(ctx context.Context) ([]string, error) {
	var page anthropicModelPage
	if err := g.client.Get(ctx, "v1/models?limit=100", nil, &page); err != nil {
		return nil, fmt.Errorf("anthropic models: %w", err)
	}
	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}
