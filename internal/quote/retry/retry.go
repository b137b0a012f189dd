package retry

import (
	"context"
	"time"

	"goldintel/internal/quote"
)

// Fetcher wraps a quote.Fetcher and retries failed fetches a bounded
// number of times with a fixed delay. A canceled context stops the
// retry loop immediately.
type Fetcher struct {
	F        quote.Fetcher
	Attempts int // total attempts, values below 1 mean 1
	Delay    time.Duration
}

func (r *Fetcher) Name() string { return r.F.Name() }

func (r *Fetcher) Fetch(ctx context.Context, symbols []string) ([]quote.Quote, error) {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 && r.Delay > 0 {
			t := time.NewTimer(r.Delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}
		qs, err := r.F.Fetch(ctx, symbols)
		if err == nil {
			return qs, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}
