package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flakyGenerator fails the first failures calls, then succeeds.
type flakyGenerator struct {
	failures int
	calls    int
}

func (g *flakyGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	if g.calls <= g.failures {
		return "", errors.New("transient failure")
	}
	return "ok", nil
}

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	inner := &flakyGenerator{failures: 2}
	gen := WithRetry(inner, 3, time.Millisecond)

	out, err := gen.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" {
		t.Errorf("expected %q, got %q", "ok", out)
	}
	if inner.calls != 3 {
		t.Errorf("expected 3 calls, got %d", inner.calls)
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	inner := &flakyGenerator{failures: 10}
	gen := WithRetry(inner, 2, time.Millisecond)

	_, err := gen.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 calls, got %d", inner.calls)
	}
}

func TestWithRetryFirstTrySuccess(t *testing.T) {
	inner := &flakyGenerator{}
	gen := WithRetry(inner, 5, time.Millisecond)

	if _, err := gen.Generate(context.Background(), "prompt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 call, got %d", inner.calls)
	}
}

func TestWithRetryRespectsCanceledContext(t *testing.T) {
	inner := &flakyGenerator{failures: 10}
	gen := WithRetry(inner, 5, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, "prompt")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 call before cancellation stop, got %d", inner.calls)
	}
}

func TestWithRetryClampsAttempts(t *testing.T) {
	inner := &flakyGenerator{failures: 10}
	gen := WithRetry(inner, 0, time.Millisecond)

	_, err := gen.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if inner.calls != 1 {
		t.Errorf("expected exactly 1 call, got %d", inner.calls)
	}
}
