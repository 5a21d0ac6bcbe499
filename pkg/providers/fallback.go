package providers

import (
	"context"
	"fmt"

	"github.com/sentinelbot/groupguard/pkg/logger"
	"github.com/sentinelbot/groupguard/pkg/moderation"
)

// FallbackProvider wraps a primary and a fallback classifier. If the primary
// fails, it transparently retries with the fallback. A timed-out request is
// not retried: once the request deadline is gone there is no budget left for
// a second call, and the caller fails open anyway.
type FallbackProvider struct {
	primary  moderation.Classifier
	fallback moderation.Classifier
}

func NewFallbackProvider(primary, fallback moderation.Classifier) *FallbackProvider {
	return &FallbackProvider{primary: primary, fallback: fallback}
}

func (p *FallbackProvider) Classify(ctx context.Context, req moderation.Request) (moderation.Verdict, error) {
	verdict, err := p.primary.Classify(ctx, req)
	if err == nil {
		return verdict, nil
	}
	if ctx.Err() != nil {
		return moderation.Verdict{}, err
	}

	logger.WarnCF("classifier", fmt.Sprintf("Primary classifier failed, trying fallback: %v", err), nil)

	fbVerdict, fbErr := p.fallback.Classify(ctx, req)
	if fbErr != nil {
		return moderation.Verdict{}, fmt.Errorf("primary failed: %w; fallback also failed: %v", err, fbErr)
	}
	return fbVerdict, nil
}
