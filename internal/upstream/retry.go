package upstream

import (
	"context"
	"time"

	"dexScope/internal/model"
)

// withRetry retries transient transport failures with exponential backoff.
// An answered non-2xx carries its status and is returned immediately; the
// upstream has spoken and repeating the request will not change its mind.
func withRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if apiErr, ok := model.AsAPIError(err); ok && apiErr.Status > 0 && apiErr.Status < 500 {
			return err
		}
		if attempt >= maxRetries {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}
