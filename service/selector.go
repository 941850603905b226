package service

import (
	"context"
	"time"

	"applauncher-backend/llm"
	"applauncher-backend/models"

	"go.uber.org/zap"
)

const (
	selectionTemperature = 0

	msgNoCandidates     = "No successful versions to select from."
	msgNoDelimiters     = "Could not parse delimiters; using the full response."
	msgMissingPreserved = "Preserved words missing from output."
)

// Selector picks or merges the final text of a chunk from its candidates.
type Selector struct {
	completer llm.Completer
	timeout   time.Duration
	logger    *zap.Logger
}

// NewSelector creates a selector.
func NewSelector(completer llm.Completer, timeout time.Duration, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{completer: completer, timeout: timeout, logger: logger}
}

// Select never fails. Without usable candidates, or when the call errors, the
// original chunk text is returned with SelectionError set.
func (s *Selector) Select(ctx context.Context, chunk models.Chunk, candidates []models.Candidate, model string, preserved []string, level models.Level) models.SelectionResult {
	result := models.SelectionResult{Index: chunk.Index, Text: chunk.Text}

	var usable []models.Candidate
	for _, c := range candidates {
		if c.Usable() {
			usable = append(usable, c)
		}
	}
	if len(usable) == 0 {
		s.logger.Warn("no successful candidates", zap.Int("chunk_index", chunk.Index))
		result.SelectionError = msgNoCandidates
		return result
	}

	resp, err := llm.CompleteWithin(ctx, s.completer, llm.Request{
		Model: model,
		Messages: llm.SystemAndUser(
			SystemPrompt(StepSelection, level, preserved),
			SelectionUserPrompt(chunk.Text, usable, preserved),
		),
		Temperature: selectionTemperature,
	}, s.timeout)
	if err != nil {
		s.logger.Warn("selection failed",
			zap.Int("chunk_index", chunk.Index),
			zap.String("model", model),
			zap.Error(err))
		result.SelectionError = err.Error()
		return result
	}

	text, ok := ExtractDelimited(resp.Content)
	if !ok {
		result.SelectionWarning = msgNoDelimiters
	}
	result.Text = NormalizeEmphasis(StripMarkers(text))

	if missing := MissingPreserved(chunk.Text, result.Text, preserved); len(missing) > 0 {
		result.MissingPreservedWords = missing
		if result.SelectionWarning == "" {
			result.SelectionWarning = msgMissingPreserved
		}
	}
	return result
}
