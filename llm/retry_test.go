package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestRetrying_RecoversFromTransientFailure(t *testing.T) {
	var calls int32
	next := CompleterFunc(func(ctx context.Context, req Request) (*Response, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return nil, &StatusError{StatusCode: http.StatusServiceUnavailable}
		}
		return &Response{Content: "ok"}, nil
	})

	resp, err := NewRetrying(next, 3, time.Millisecond, nil).Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetrying_StopsOnPermanentFailure(t *testing.T) {
	var calls int32
	next := CompleterFunc(func(ctx context.Context, req Request) (*Response, error) {
		atomic.AddInt32(&calls, 1)
		return nil, &StatusError{StatusCode: http.StatusBadRequest, Body: "bad"}
	})

	_, err := NewRetrying(next, 5, time.Millisecond, nil).Complete(context.Background(), Request{})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetrying_GeminiErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		calls int32
	}{
		{"invalid key", &googleapi.Error{Code: http.StatusBadRequest, Message: "API key not valid"}, 1},
		{"forbidden", fmt.Errorf("gemini: %w", &googleapi.Error{Code: http.StatusForbidden}), 1},
		{"blocked", fmt.Errorf("gemini: %w", &genai.BlockedError{}), 1},
		{"rate limited", fmt.Errorf("gemini: %w", &googleapi.Error{Code: http.StatusTooManyRequests}), 3},
		{"unavailable", &googleapi.Error{Code: http.StatusServiceUnavailable}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			next := CompleterFunc(func(ctx context.Context, req Request) (*Response, error) {
				atomic.AddInt32(&calls, 1)
				return nil, tt.err
			})

			_, err := NewRetrying(next, 3, time.Millisecond, nil).Complete(context.Background(), Request{})
			require.Error(t, err)
			assert.Equal(t, tt.calls, atomic.LoadInt32(&calls))
		})
	}
}

func TestRetrying_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	boom := errors.New("connection reset")
	next := CompleterFunc(func(ctx context.Context, req Request) (*Response, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	})

	_, err := NewRetrying(next, 2, time.Millisecond, nil).Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLimited_CapsConcurrency(t *testing.T) {
	var inFlight, peak int32
	next := CompleterFunc(func(ctx context.Context, req Request) (*Response, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return &Response{Content: "x"}, nil
	})

	l := NewLimited(next, 2)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Complete(context.Background(), Request{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestLimited_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	next := CompleterFunc(func(ctx context.Context, req Request) (*Response, error) {
		<-block
		return &Response{Content: "x"}, nil
	})
	l := NewLimited(next, 1)

	go func() { _, _ = l.Complete(context.Background(), Request{}) }()
	time.Sleep(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Complete(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	close(block)
}

func TestLimited_TimeoutStartsAfterSlot(t *testing.T) {
	var calls int32
	next := CompleterFunc(func(ctx context.Context, req Request) (*Response, error) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-time.After(40 * time.Millisecond):
			return &Response{Content: "x"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	l := NewLimited(next, 1)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := CompleteWithin(context.Background(), l, Request{}, 100*time.Millisecond)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestCompleteWithin_PlainCompleter(t *testing.T) {
	next := CompleterFunc(func(ctx context.Context, req Request) (*Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	_, err := CompleteWithin(context.Background(), next, Request{}, 10*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
