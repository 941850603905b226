package llm

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

// Retrying wraps a Completer with bounded exponential backoff. Transport
// failures and transient status codes (HTTP or Gemini API) are retried; other
// errors are returned on the first attempt.
type Retrying struct {
	next            Completer
	maxAttempts     int
	initialInterval time.Duration
	logger          *zap.Logger
}

// NewRetrying wraps next. maxAttempts counts the first call.
func NewRetrying(next Completer, maxAttempts int, initialInterval time.Duration, logger *zap.Logger) *Retrying {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retrying{
		next:            next,
		maxAttempts:     maxAttempts,
		initialInterval: initialInterval,
		logger:          logger,
	}
}

// Complete calls the wrapped Completer until it succeeds, fails permanently or
// runs out of attempts.
func (r *Retrying) Complete(ctx context.Context, req Request) (*Response, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0.1
	b.MaxElapsedTime = 0

	var resp *Response
	op := func() error {
		var err error
		resp, err = r.next.Complete(ctx, req)
		if err != nil && !retryable(ctx, err) {
			return backoff.Permanent(err)
		}
		return err
	}

	attempt := 0
	notify := func(err error, wait time.Duration) {
		attempt++
		r.logger.Warn("retrying completion",
			zap.String("model", req.Model),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err))
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return resp, nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Transient()
	}
	// Gemini SDK failures arrive as googleapi errors, possibly inside an apierror.
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return transientStatus(apiErr.Code)
	}
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return false
	}
	return true
}
