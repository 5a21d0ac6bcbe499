// Package providers contains the classifier implementations: Gemini through
// its OpenAI-compatible endpoint, Claude as an optional fallback, and a
// wrapper combining the two.
package providers

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/sentinelbot/groupguard/pkg/moderation"
)

// GeminiProvider classifies content with a Gemini model. The Gemini API
// exposes an OpenAI-compatible chat completions surface, so the call goes
// through the OpenAI SDK with an overridden base URL.
type GeminiProvider struct {
	client openai.Client
	model  string
}

func NewGeminiProvider(apiKey, baseURL, model string) *GeminiProvider {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		// One shot per request: a failed classification fails open, and the
		// call already runs under the request deadline.
		option.WithMaxRetries(0),
	)
	return &GeminiProvider{client: client, model: model}
}

func (p *GeminiProvider) Classify(ctx context.Context, req moderation.Request) (moderation.Verdict, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.Subject),
	}
	for _, img := range req.Images {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: img.DataURL(),
		}))
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(moderation.PolicyPrompt),
			openai.UserMessage(parts),
		},
	})
	if err != nil {
		return moderation.Verdict{}, fmt.Errorf("gemini API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return moderation.Verdict{}, fmt.Errorf("gemini returned no choices")
	}

	return moderation.ParseVerdict(resp.Choices[0].Message.Content)
}
