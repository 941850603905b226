package service

import (
	"context"
	"strings"
	"time"

	"applauncher-backend/llm"
	"applauncher-backend/models"

	"go.uber.org/zap"
)

// Generator produces one candidate rewrite of a chunk.
type Generator struct {
	completer llm.Completer
	timeout   time.Duration
	logger    *zap.Logger
}

// NewGenerator creates a generator. A zero timeout disables the per-call deadline.
func NewGenerator(completer llm.Completer, timeout time.Duration, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{completer: completer, timeout: timeout, logger: logger}
}

// Generate rewrites chunk at the given temperature. It never fails: on any
// error the candidate carries the original text and the error message.
func (g *Generator) Generate(ctx context.Context, chunk models.Chunk, model string, preserved []string, level models.Level, temperature float64) models.Candidate {
	cand := models.Candidate{ChunkIndex: chunk.Index, Temperature: temperature, Text: chunk.Text}
	if strings.TrimSpace(chunk.Text) == "" {
		return cand
	}

	resp, err := llm.CompleteWithin(ctx, g.completer, llm.Request{
		Model:       model,
		Messages:    llm.SystemAndUser(SystemPrompt(StepGeneration, level, preserved), chunk.Text),
		Temperature: temperature,
	}, g.timeout)
	if err != nil {
		g.logger.Warn("candidate generation failed",
			zap.Int("chunk_index", chunk.Index),
			zap.Float64("temperature", temperature),
			zap.String("model", model),
			zap.Error(err))
		cand.Error = err.Error()
		return cand
	}

	text, _ := ExtractDelimited(resp.Content)
	cand.Text = text
	return cand
}
