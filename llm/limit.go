package llm

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// Limited caps the number of in-flight completions across all callers sharing
// it, so a large fan-out stays within the backend's rate limits.
type Limited struct {
	next Completer
	sem  *semaphore.Weighted
}

// NewLimited wraps next with a limit of n concurrent calls.
func NewLimited(next Completer, n int) *Limited {
	if n < 1 {
		n = 1
	}
	return &Limited{next: next, sem: semaphore.NewWeighted(int64(n))}
}

// Complete waits for a free slot, or for ctx to be done.
func (l *Limited) Complete(ctx context.Context, req Request) (*Response, error) {
	return l.CompleteWithin(ctx, req, 0)
}

// CompleteWithin waits for a free slot and only then starts the timeout, so
// time spent queued does not count against the call.
func (l *Limited) CompleteWithin(ctx context.Context, req Request, timeout time.Duration) (*Response, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer l.sem.Release(1)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return l.next.Complete(ctx, req)
}
