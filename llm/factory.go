package llm

import (
	"context"
	"fmt"
	"io"
	"time"

	"applauncher-backend/config"

	"go.uber.org/zap"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewFromConfig builds the configured client wrapped in retry and concurrency
// limiting. The returned closer releases the underlying client.
func NewFromConfig(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (Completer, io.Closer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		base   Completer
		closer io.Closer = nopCloser{}
	)
	switch cfg.Provider {
	case ProviderOpenAI, "":
		base = NewHTTPClient(cfg.BaseURL,
			WithAPIKey(cfg.APIKey),
			WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
			WithLogger(logger),
		)
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY not set")
		}
		gc, err := NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, err
		}
		base, closer = gc, gc
	default:
		return nil, nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}

	retrying := NewRetrying(base, cfg.MaxRetries+1, 500*time.Millisecond, logger)
	return NewLimited(retrying, cfg.MaxConcurrency), closer, nil
}
