package providers

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sentinelbot/groupguard/pkg/moderation"
)

// ClaudeProvider classifies content with an Anthropic model. Used as the
// fallback when the primary classifier is unavailable.
type ClaudeProvider struct {
	client *anthropic.Client
	model  string
}

func NewClaudeProvider(apiKey, model string) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)
	return &ClaudeProvider{client: &client, model: model}
}

func (p *ClaudeProvider) Classify(ctx context.Context, req moderation.Request) (moderation.Verdict, error) {
	blocks := []anthropic.ContentBlockParamUnion{
		anthropic.NewTextBlock(req.Subject),
	}
	for _, img := range req.Images {
		blocks = append(blocks, anthropic.NewImageBlockBase64(img.MIME, img.Base64()))
	}

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: moderation.PolicyPrompt}},
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	})
	if err != nil {
		return moderation.Verdict{}, fmt.Errorf("claude API call: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.AsText().Text
		}
	}
	if content == "" {
		return moderation.Verdict{}, fmt.Errorf("claude returned no text content")
	}

	return moderation.ParseVerdict(content)
}
