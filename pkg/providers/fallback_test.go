package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/sentinelbot/groupguard/pkg/moderation"
)

type stubClassifier struct {
	verdict moderation.Verdict
	err     error
	calls   int
}

func (s *stubClassifier) Classify(ctx context.Context, req moderation.Request) (moderation.Verdict, error) {
	s.calls++
	return s.verdict, s.err
}

func TestFallbackProvider_PrimarySucceeds(t *testing.T) {
	primary := &stubClassifier{verdict: moderation.Verdict{Category: moderation.CategorySpam}}
	fallback := &stubClassifier{verdict: moderation.Safe("")}

	p := NewFallbackProvider(primary, fallback)
	v, err := p.Classify(context.Background(), moderation.Request{Subject: "x"})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if v.Category != moderation.CategorySpam {
		t.Errorf("Category = %q, want SPAM", v.Category)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback called %d times, want 0", fallback.calls)
	}
}

func TestFallbackProvider_PrimaryFails(t *testing.T) {
	primary := &stubClassifier{err: errors.New("boom")}
	fallback := &stubClassifier{verdict: moderation.Verdict{Category: moderation.CategoryNudity}}

	p := NewFallbackProvider(primary, fallback)
	v, err := p.Classify(context.Background(), moderation.Request{Subject: "x"})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if v.Category != moderation.CategoryNudity {
		t.Errorf("Category = %q, want NUDITY", v.Category)
	}
	if fallback.calls != 1 {
		t.Errorf("fallback called %d times, want 1", fallback.calls)
	}
}

func TestFallbackProvider_BothFail(t *testing.T) {
	primary := &stubClassifier{err: errors.New("primary down")}
	fallback := &stubClassifier{err: errors.New("fallback down")}

	p := NewFallbackProvider(primary, fallback)
	if _, err := p.Classify(context.Background(), moderation.Request{Subject: "x"}); err == nil {
		t.Fatal("expected error when both classifiers fail")
	}
}

func TestFallbackProvider_NoRetryAfterTimeout(t *testing.T) {
	primary := &stubClassifier{err: context.DeadlineExceeded}
	fallback := &stubClassifier{verdict: moderation.Safe("")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewFallbackProvider(primary, fallback)
	if _, err := p.Classify(ctx, moderation.Request{Subject: "x"}); err == nil {
		t.Fatal("expected error on dead context")
	}
	if fallback.calls != 0 {
		t.Errorf("fallback called %d times on dead context, want 0", fallback.calls)
	}
}
