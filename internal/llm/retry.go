package llm

import (
	"context"
	"fmt"
	"time"
)

// Generator is the text generation contract retried generators wrap.
// It mirrors crew.Generator so either side of the boundary can consume a
// retried client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RetryGenerator wraps a Generator with fixed-backoff retries. The crew
// core defines no retry of its own; applications that want one wrap the
// client before handing it to the executor.
type RetryGenerator struct {
	inner       Generator
	maxAttempts int
	backoff     time.Duration
}

// WithRetry wraps gen so each Generate call is attempted up to
// maxAttempts times, sleeping backoff between attempts. maxAttempts
// below 1 is treated as 1.
func WithRetry(gen Generator, maxAttempts int, backoff time.Duration) *RetryGenerator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryGenerator{
		inner:       gen,
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

// Generate attempts the wrapped call, retrying on error until the
// attempt budget is spent or the context ends.
func (r *RetryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		out, err := r.inner.Generate(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.backoff):
		}
	}

	return "", fmt.Errorf("after %d attempts: %w", r.maxAttempts, lastErr)
}
