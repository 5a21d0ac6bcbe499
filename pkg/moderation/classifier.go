package moderation

import (
	"context"

	"github.com/sentinelbot/groupguard/pkg/media"
)

// Request is one classification unit: the rendered sender/message text plus
// any imagery gathered for the sender (profile picture, attached photo).
type Request struct {
	Subject string
	Images  []*media.Image
}

// Classifier produces a verdict for one request. Implementations must honor
// ctx cancellation; an error return means the verdict could not be obtained
// and the caller fails open.
type Classifier interface {
	Classify(ctx context.Context, req Request) (Verdict, error)
}
